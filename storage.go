package opusmeta

import (
	"fmt"
	"io"
)

// StorageFile is the capability set a rewrite target must satisfy:
// sequential read and write, seeking, and explicit resizing. It is the
// only boundary between the rewrite algorithm and concrete storage;
// *os.File satisfies it directly and MemFile provides an in-memory
// equivalent for tests and dry runs.
type StorageFile interface {
	io.Reader
	io.Writer
	io.Seeker

	// Truncate resizes the target to exactly size bytes, extending with
	// zeros or discarding the tail as needed. It behaves like
	// (*os.File).Truncate and does not move the read/write offset.
	Truncate(size int64) error
}

// MemFile is a seekable, resizable in-memory byte buffer satisfying
// StorageFile. The zero value is an empty file ready for use.
type MemFile struct {
	buf []byte
	off int64
}

// NewMemFile creates a MemFile holding a copy of data.
func NewMemFile(data []byte) *MemFile {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &MemFile{buf: buf}
}

// Bytes returns the current contents. The slice is owned by the MemFile.
func (f *MemFile) Bytes() []byte {
	return f.buf
}

// Read implements io.Reader.
func (f *MemFile) Read(p []byte) (int, error) {
	if f.off >= int64(len(f.buf)) {
		return 0, io.EOF
	}
	n := copy(p, f.buf[f.off:])
	f.off += int64(n)
	return n, nil
}

// Write implements io.Writer, extending the buffer as needed.
func (f *MemFile) Write(p []byte) (int, error) {
	end := f.off + int64(len(p))
	if end > int64(len(f.buf)) {
		grown := make([]byte, end)
		copy(grown, f.buf)
		f.buf = grown
	}
	n := copy(f.buf[f.off:end], p)
	f.off += int64(n)
	return n, nil
}

// Seek implements io.Seeker. Seeking beyond the end is allowed; the gap is
// zero-filled by a subsequent write.
func (f *MemFile) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = f.off + offset
	case io.SeekEnd:
		abs = int64(len(f.buf)) + offset
	default:
		return 0, fmt.Errorf("opusmeta: invalid seek whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("opusmeta: negative seek position %d", abs)
	}
	f.off = abs
	return abs, nil
}

// Truncate resizes the buffer to size bytes.
func (f *MemFile) Truncate(size int64) error {
	if size < 0 {
		return fmt.Errorf("opusmeta: negative truncate size %d", size)
	}
	switch {
	case size <= int64(len(f.buf)):
		f.buf = f.buf[:size]
	default:
		grown := make([]byte, size)
		copy(grown, f.buf)
		f.buf = grown
	}
	return nil
}
