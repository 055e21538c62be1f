package ogg

import (
	"encoding/binary"
)

// Page header flag constants.
const (
	// PageFlagContinuation indicates this page contains data from a packet
	// that began on a previous page.
	PageFlagContinuation = 0x01

	// PageFlagBOS (Beginning of Stream) indicates this is the first page
	// of a logical bitstream.
	PageFlagBOS = 0x02

	// PageFlagEOS (End of Stream) indicates this is the last page of a
	// logical bitstream.
	PageFlagEOS = 0x04
)

// Page header size constants.
const (
	// pageHeaderSize is the fixed portion of the page header (before segment table).
	pageHeaderSize = 27

	// oggMagic is the capture pattern that identifies an Ogg page.
	oggMagic = "OggS"

	// maxSegments is the maximum number of segment table entries per page.
	maxSegments = 255
)

// Page represents a single Ogg page.
type Page struct {
	// Version is the stream structure version (always 0).
	Version byte

	// HeaderType contains page flags (continuation, BOS, EOS).
	HeaderType byte

	// GranulePos is the absolute granule position at the end of this page.
	// Its interpretation is codec-specific; this package treats it as opaque.
	GranulePos uint64

	// SerialNumber identifies the logical bitstream.
	SerialNumber uint32

	// PageSequence is the page sequence number within the bitstream.
	PageSequence uint32

	// Segments contains the segment table entries.
	// Each entry is the size of a segment (0-255).
	Segments []byte

	// Payload contains the concatenated packet data.
	Payload []byte
}

// BuildSegmentTable creates the lacing values for a packet of the given
// length: a run of 255s followed by the remainder. A length that is an
// exact multiple of 255 (including zero) ends with a zero lacing value,
// which is what terminates the packet.
func BuildSegmentTable(packetLen int) []byte {
	full := packetLen / 255
	table := make([]byte, full+1)
	for i := 0; i < full; i++ {
		table[i] = 255
	}
	table[full] = byte(packetLen % 255)
	return table
}

// ParseSegmentTable extracts completed packet lengths from a segment table.
// A segment value of 255 indicates the packet continues; a value less than
// 255 ends the packet. A trailing run of 255 values belongs to a packet that
// continues on the next page and is not reported here.
func ParseSegmentTable(segments []byte) []int {
	if len(segments) == 0 {
		return nil
	}

	var lengths []int
	currentLen := 0

	for _, seg := range segments {
		currentLen += int(seg)
		if seg < 255 {
			// End of packet
			lengths = append(lengths, currentLen)
			currentLen = 0
		}
	}

	return lengths
}

// IsBOS returns true if this is a Beginning of Stream page.
func (p *Page) IsBOS() bool {
	return p.HeaderType&PageFlagBOS != 0
}

// IsEOS returns true if this is an End of Stream page.
func (p *Page) IsEOS() bool {
	return p.HeaderType&PageFlagEOS != 0
}

// IsContinuation returns true if this page continues a packet from a previous page.
func (p *Page) IsContinuation() bool {
	return p.HeaderType&PageFlagContinuation != 0
}

// packets splits the payload into the packets that complete on this page,
// plus the leading bytes of a packet that continues on the next page.
// The remainder is nil if the page's final packet is complete.
func (p *Page) packets() (complete [][]byte, remainder []byte) {
	lengths := ParseSegmentTable(p.Segments)

	offset := 0
	complete = make([][]byte, 0, len(lengths))
	for _, length := range lengths {
		if offset+length > len(p.Payload) {
			// Truncated payload.
			complete = append(complete, p.Payload[offset:])
			return complete, nil
		}
		complete = append(complete, p.Payload[offset:offset+length])
		offset += length
	}

	if offset < len(p.Payload) {
		remainder = p.Payload[offset:]
	}
	return complete, remainder
}

// Encode serializes the page: the 27-byte header, the segment table, and
// the payload. The CRC field is computed over the whole page with the CRC
// bytes zeroed, then patched in.
func (p *Page) Encode() []byte {
	data := make([]byte, 0, pageHeaderSize+len(p.Segments)+len(p.Payload))

	data = append(data, oggMagic...)
	data = append(data, p.Version, p.HeaderType)
	data = binary.LittleEndian.AppendUint64(data, p.GranulePos)
	data = binary.LittleEndian.AppendUint32(data, p.SerialNumber)
	data = binary.LittleEndian.AppendUint32(data, p.PageSequence)
	data = append(data, 0, 0, 0, 0) // CRC, patched below
	data = append(data, byte(len(p.Segments)))
	data = append(data, p.Segments...)
	data = append(data, p.Payload...)

	binary.LittleEndian.PutUint32(data[22:26], oggCRC(data))
	return data
}

// ParsePage parses one Ogg page from the start of data, returning the page
// and the number of bytes it occupied. ErrInvalidPage covers a missing
// "OggS" signature and truncation; a checksum mismatch is ErrBadCRC.
// Truncation is indistinguishable from an incomplete read, so callers
// buffering a stream should retry with more data before treating
// ErrInvalidPage as fatal.
func ParsePage(data []byte) (*Page, int, error) {
	if len(data) < pageHeaderSize {
		return nil, 0, ErrInvalidPage
	}
	if string(data[0:4]) != oggMagic {
		return nil, 0, ErrInvalidPage
	}

	numSegments := int(data[26])
	headerSize := pageHeaderSize + numSegments
	if len(data) < headerSize {
		return nil, 0, ErrInvalidPage
	}
	segments := data[pageHeaderSize:headerSize]

	payloadSize := 0
	for _, seg := range segments {
		payloadSize += int(seg)
	}
	totalSize := headerSize + payloadSize
	if len(data) < totalSize {
		return nil, 0, ErrInvalidPage
	}

	// The CRC covers the whole page with its own field zeroed.
	zeroed := make([]byte, totalSize)
	copy(zeroed, data[:totalSize])
	zeroed[22], zeroed[23], zeroed[24], zeroed[25] = 0, 0, 0, 0
	if oggCRC(zeroed) != binary.LittleEndian.Uint32(data[22:26]) {
		return nil, 0, ErrBadCRC
	}

	p := &Page{
		Version:      data[4],
		HeaderType:   data[5],
		GranulePos:   binary.LittleEndian.Uint64(data[6:14]),
		SerialNumber: binary.LittleEndian.Uint32(data[14:18]),
		PageSequence: binary.LittleEndian.Uint32(data[18:22]),
		Segments:     append([]byte(nil), segments...),
		Payload:      append([]byte(nil), data[headerSize:totalSize]...),
	}
	return p, totalSize, nil
}
