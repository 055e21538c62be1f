package ogg

import (
	"io"
)

// PacketReader extracts logical packets from an Ogg stream.
// Pages are read sequentially; packets spanning page boundaries are
// reassembled. Returns io.EOF once the underlying stream is exhausted.
type PacketReader struct {
	r            io.Reader
	pageBuffer   []byte    // Buffer for reading pages
	bufferOffset int       // Current position in buffer
	bufferLen    int       // Valid data in buffer
	pending      []*Packet // Packets completed but not yet returned
	partial      []byte    // Leading bytes of a packet spanning pages
}

// readerBufferSize is the initial size of the internal read buffer.
const readerBufferSize = 64 * 1024 // 64KB

// NewPacketReader creates a PacketReader over r.
func NewPacketReader(r io.Reader) *PacketReader {
	return &PacketReader{
		r:          r,
		pageBuffer: make([]byte, readerBufferSize),
	}
}

// ReadPacket returns the next logical packet from the stream.
// Returns io.EOF at a clean end of stream, and ErrUnexpectedEOS if the
// stream ends in the middle of a packet.
func (pr *PacketReader) ReadPacket() (*Packet, error) {
	for {
		if len(pr.pending) > 0 {
			p := pr.pending[0]
			pr.pending = pr.pending[1:]
			return p, nil
		}

		page, err := pr.readPage()
		if err != nil {
			if err == io.EOF && len(pr.partial) > 0 {
				return nil, ErrUnexpectedEOS
			}
			return nil, err
		}

		complete, remainder := page.packets()

		if page.IsContinuation() {
			if len(pr.partial) == 0 {
				// Continuation of a packet we never saw the start of.
				return nil, ErrInvalidPage
			}
			if len(complete) == 0 {
				// Mid-packet page, keep accumulating.
				pr.partial = append(pr.partial, remainder...)
				continue
			}
			complete[0] = append(pr.partial, complete[0]...)
			pr.partial = nil
		} else if len(pr.partial) > 0 {
			// Previous page promised a continuation that never came.
			return nil, ErrInvalidPage
		}

		pr.partial = append([]byte(nil), remainder...)
		if len(remainder) == 0 {
			pr.partial = nil
		}

		if len(complete) == 0 {
			// Page carried no completed packets (e.g. empty EOS page).
			if page.IsEOS() && len(pr.partial) == 0 {
				return nil, io.EOF
			}
			continue
		}

		for i, data := range complete {
			last := i == len(complete)-1
			pr.pending = append(pr.pending, &Packet{
				Data:         data,
				Serial:       page.SerialNumber,
				GranulePos:   page.GranulePos,
				LastInPage:   last,
				LastInStream: last && page.IsEOS(),
			})
		}
	}
}

// readPage reads the next Ogg page from the stream.
func (pr *PacketReader) readPage() (*Page, error) {
	// First, try to parse from existing buffer.
	for {
		if pr.bufferLen > pr.bufferOffset {
			page, consumed, err := ParsePage(pr.pageBuffer[pr.bufferOffset:pr.bufferLen])
			if err == nil {
				pr.bufferOffset += consumed
				return page, nil
			}
			if err == ErrBadCRC {
				return nil, err
			}
			// Not enough data, need to read more.
		}

		// Compact buffer if needed.
		if pr.bufferOffset > 0 {
			remaining := pr.bufferLen - pr.bufferOffset
			if remaining > 0 {
				copy(pr.pageBuffer, pr.pageBuffer[pr.bufferOffset:pr.bufferLen])
			}
			pr.bufferLen = remaining
			pr.bufferOffset = 0
		}

		// Read more data.
		if pr.bufferLen >= len(pr.pageBuffer) {
			// Buffer full but no complete page - expand buffer.
			newBuffer := make([]byte, len(pr.pageBuffer)*2)
			copy(newBuffer, pr.pageBuffer[:pr.bufferLen])
			pr.pageBuffer = newBuffer
		}

		n, err := pr.r.Read(pr.pageBuffer[pr.bufferLen:])
		if n > 0 {
			pr.bufferLen += n
		}
		if err != nil {
			if err == io.EOF && pr.bufferLen > pr.bufferOffset {
				// Try to parse remaining data.
				page, consumed, parseErr := ParsePage(pr.pageBuffer[pr.bufferOffset:pr.bufferLen])
				if parseErr == nil {
					pr.bufferOffset += consumed
					return page, nil
				}
				return nil, ErrInvalidPage
			}
			return nil, err
		}
	}
}
