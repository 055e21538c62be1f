package opusmeta

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gabriel-vasile/mimetype"
)

// PictureType classifies an embedded picture, following the APIC picture
// standard used by the FLAC picture block.
type PictureType uint32

// Picture type ordinals 0-20 per the FLAC picture block specification.
const (
	PictureTypeOther PictureType = iota
	PictureTypeFileIcon
	PictureTypeOtherIcon
	PictureTypeCoverFront
	PictureTypeCoverBack
	PictureTypeLeafletPage
	PictureTypeMedia
	PictureTypeLeadArtist
	PictureTypeArtist
	PictureTypeConductor
	PictureTypeBandOrchestra
	PictureTypeComposer
	PictureTypeLyricist
	PictureTypeRecordingLocation
	PictureTypeDuringRecording
	PictureTypeDuringPerformance
	PictureTypeMovieCapture
	PictureTypeBrightColouredFish
	PictureTypeIllustration
	PictureTypeBandLogo
	PictureTypePublisherLogo

	maxPictureType = PictureTypePublisherLogo
)

// pictureTypeNames maps ordinals to display names.
var pictureTypeNames = [...]string{
	"other", "file icon", "other icon", "cover (front)", "cover (back)",
	"leaflet page", "media", "lead artist", "artist", "conductor",
	"band/orchestra", "composer", "lyricist", "recording location",
	"during recording", "during performance", "movie capture",
	"bright coloured fish", "illustration", "band logo", "publisher logo",
}

// PictureTypeFromUint32 converts a wire ordinal into a PictureType.
// Returns ErrInvalidPictureType for ordinals greater than 20; out-of-range
// input is a recoverable error, never silently mapped to a default.
func PictureTypeFromUint32(num uint32) (PictureType, error) {
	if num > uint32(maxPictureType) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPictureType, num)
	}
	return PictureType(num), nil
}

// String returns a human-readable name for the picture type.
func (pt PictureType) String() string {
	if pt > maxPictureType {
		return fmt.Sprintf("invalid(%d)", uint32(pt))
	}
	return pictureTypeNames[pt]
}

// Picture is one embedded image with its metadata.
//
// The FLAC picture block also carries width, height, color depth, and
// color count; those are always written as zero and ignored on read, so
// they are not represented here.
type Picture struct {
	// Type classifies the picture (front cover, band logo, ...).
	Type PictureType

	// MIMEType is the MIME type of Data, e.g. "image/png".
	MIMEType string

	// Description is free-form text describing the picture.
	Description string

	// Data is the raw image data. It is never validated or rendered.
	Data []byte
}

// pictureReservedSize is the width/height/depth/color-count region of the
// FLAC picture block: four u32 fields, zero-filled on encode.
const pictureReservedSize = 16

// Encode serializes the picture into the FLAC picture block layout.
// All length and ordinal fields are big-endian, unlike the little-endian
// comment header; each sub-format follows its own spec.
func (p *Picture) Encode() ([]byte, error) {
	if uint64(len(p.MIMEType)) > math.MaxUint32 {
		return nil, ErrMIMETooLong
	}
	if uint64(len(p.Description)) > math.MaxUint32 {
		return nil, ErrDescriptionTooLong
	}
	if uint64(len(p.Data)) > math.MaxUint32 {
		return nil, ErrDataTooLong
	}

	size := 4 + 4 + len(p.MIMEType) + 4 + len(p.Description) + pictureReservedSize + 4 + len(p.Data)
	out := make([]byte, 0, size)

	out = binary.BigEndian.AppendUint32(out, uint32(p.Type))
	out = binary.BigEndian.AppendUint32(out, uint32(len(p.MIMEType)))
	out = append(out, p.MIMEType...)
	out = binary.BigEndian.AppendUint32(out, uint32(len(p.Description)))
	out = append(out, p.Description...)
	out = append(out, make([]byte, pictureReservedSize)...)
	out = binary.BigEndian.AppendUint32(out, uint32(len(p.Data)))
	out = append(out, p.Data...)

	return out, nil
}

// DecodePicture parses a FLAC picture block. A buffer shorter than its
// declared lengths yields an error wrapping io.ErrUnexpectedEOF; the 16
// reserved bytes are skipped without validation.
func DecodePicture(data []byte) (*Picture, error) {
	d := pictureDecoder{data: data}

	pictureType, err := PictureTypeFromUint32(d.uint32())
	if err != nil && d.err == nil {
		return nil, err
	}
	mimeType := d.bytes(int(d.uint32()))
	description := d.bytes(int(d.uint32()))
	d.skip(pictureReservedSize)
	picData := d.bytes(int(d.uint32()))

	if d.err != nil {
		return nil, fmt.Errorf("opusmeta: picture block truncated: %w", d.err)
	}

	return &Picture{
		Type:        pictureType,
		MIMEType:    string(mimeType),
		Description: string(description),
		Data:        picData,
	}, nil
}

// pictureDecoder is a bounds-checked cursor over a picture block.
// The first failure sticks; subsequent reads are no-ops.
type pictureDecoder struct {
	data []byte
	off  int
	err  error
}

func (d *pictureDecoder) uint32() uint32 {
	if d.err != nil {
		return 0
	}
	if d.off+4 > len(d.data) {
		d.err = io.ErrUnexpectedEOF
		return 0
	}
	v := binary.BigEndian.Uint32(d.data[d.off:])
	d.off += 4
	return v
}

func (d *pictureDecoder) bytes(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || n > len(d.data)-d.off {
		d.err = io.ErrUnexpectedEOF
		return nil
	}
	b := make([]byte, n)
	copy(b, d.data[d.off:d.off+n])
	d.off += n
	return b
}

func (d *pictureDecoder) skip(n int) {
	if d.err != nil {
		return
	}
	if d.off+n > len(d.data) {
		d.err = io.ErrUnexpectedEOF
		return
	}
	d.off += n
}

// EncodeBase64 serializes the picture and wraps it in standard-alphabet
// base64, ready to be stored as a comment value.
func (p *Picture) EncodeBase64() (string, error) {
	raw, err := p.Encode()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodePictureBase64 unwraps standard-alphabet base64 and parses the
// contained picture block. Malformed base64 yields an error wrapping
// ErrBadBase64, distinct from the structural errors of DecodePicture.
func DecodePictureBase64(data string) (*Picture, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadBase64, err)
	}
	return DecodePicture(raw)
}

// ReadPictureFrom reads raw image data from r into a Picture. If mimeType
// is empty, the MIME type is sniffed from the data; sniffing falls back to
// "application/octet-stream" for unrecognized content. Type and
// Description are left at their zero values for the caller to fill in.
func ReadPictureFrom(r io.Reader, mimeType string) (*Picture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("opusmeta: reading picture data: %w", err)
	}
	if mimeType == "" {
		mimeType = mimetype.Detect(data).String()
	}
	return &Picture{MIMEType: mimeType, Data: data}, nil
}

// ReadPictureFromPath is the file-based convenience around ReadPictureFrom.
func ReadPictureFromPath(path, mimeType string) (*Picture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPictureFrom(f, mimeType)
}
