package opusmeta

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/saecki/opusmeta/container/ogg"
)

// Magic signatures of the first two Opus packets, per RFC 7845.
const (
	opusHeadMagic = "OpusHead"
	opusTagsMagic = "OpusTags"
)

// ReadFrom reads a Tag from an Ogg Opus stream.
//
// The first packet must begin with "OpusHead" and the second must be a
// well-formed comment header; there is no recovery or skipping. Errors:
// ErrNotOpus if the stream is Ogg but not Opus, ErrMissingPacket if the
// stream ends before the comment header, ErrInvalidUTF8 for non-UTF-8
// vendor or comment data, and MalformedCommentError for a comment without
// a "=" separator. Underlying framing failures are wrapped.
func ReadFrom(r io.Reader) (*Tag, error) {
	pr := ogg.NewPacketReader(r)

	first, err := pr.ReadPacket()
	if err != nil {
		return nil, packetErr(err)
	}
	if !bytes.HasPrefix(first.Data, []byte(opusHeadMagic)) {
		return nil, ErrNotOpus
	}

	header, err := pr.ReadPacket()
	if err != nil {
		return nil, packetErr(err)
	}
	return parseCommentHeader(header.Data)
}

// ReadFromPath is the file-based convenience around ReadFrom.
func ReadFromPath(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadFrom(f)
}

// packetErr maps a clean end of stream to ErrMissingPacket and wraps
// everything else.
func packetErr(err error) error {
	if errors.Is(err, io.EOF) {
		return ErrMissingPacket
	}
	return fmt.Errorf("opusmeta: reading ogg packet: %w", err)
}

// parseCommentHeader decodes the comment header payload: the "OpusTags"
// magic, the vendor string, and the TAG=value comment list. All length
// fields are u32 little-endian.
func parseCommentHeader(data []byte) (*Tag, error) {
	d := commentDecoder{data: data}

	if !bytes.HasPrefix(data, []byte(opusTagsMagic)) {
		if len(data) < len(opusTagsMagic) {
			return nil, fmt.Errorf("opusmeta: comment header truncated: %w", io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("opusmeta: comment header missing OpusTags signature: %w", ErrNotOpus)
	}
	d.off = len(opusTagsMagic)

	vendorRaw := d.bytes(int(d.uint32()))
	commentCount := d.uint32()
	if d.err != nil {
		return nil, fmt.Errorf("opusmeta: comment header truncated: %w", d.err)
	}
	if !utf8.Valid(vendorRaw) {
		return nil, fmt.Errorf("%w: vendor string %q", ErrInvalidUTF8, vendorRaw)
	}

	tag := &Tag{
		vendor:   string(vendorRaw),
		comments: make(map[string][]string),
	}

	for i := uint32(0); i < commentCount; i++ {
		raw := d.bytes(int(d.uint32()))
		if d.err != nil {
			return nil, fmt.Errorf("opusmeta: comment header truncated: %w", d.err)
		}
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("%w: comment %q", ErrInvalidUTF8, raw)
		}
		comment := string(raw)
		name, value, found := strings.Cut(comment, "=")
		if !found {
			return nil, &MalformedCommentError{Line: comment}
		}
		tag.AddOne(ToLowercase(name), value)
	}

	return tag, nil
}

// commentDecoder is a bounds-checked cursor over the comment header
// payload. The first failure sticks; subsequent reads are no-ops.
type commentDecoder struct {
	data []byte
	off  int
	err  error
}

func (d *commentDecoder) uint32() uint32 {
	if d.err != nil {
		return 0
	}
	if d.off+4 > len(d.data) {
		d.err = io.ErrUnexpectedEOF
		return 0
	}
	v := binary.LittleEndian.Uint32(d.data[d.off:])
	d.off += 4
	return v
}

func (d *commentDecoder) bytes(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || n > len(d.data)-d.off {
		d.err = io.ErrUnexpectedEOF
		return nil
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b
}
