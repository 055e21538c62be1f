// errors.go defines public error types for the opusmeta package.

package opusmeta

import (
	"errors"
	"fmt"
)

// Public error types for reading and rewriting Opus comments.
var (
	// ErrNotOpus indicates the stream is an Ogg stream whose first packet
	// does not start with the "OpusHead" signature.
	ErrNotOpus = errors.New("opusmeta: not an opus stream")

	// ErrMissingPacket indicates an expected packet (for example the
	// comment header packet) was not present before the stream ended.
	ErrMissingPacket = errors.New("opusmeta: expected a packet but the stream ended")

	// ErrInvalidUTF8 indicates the vendor string or a comment was not
	// valid UTF-8, which RFC 7845 requires them to be.
	ErrInvalidUTF8 = errors.New("opusmeta: invalid UTF-8 data")

	// ErrTooBig indicates a vendor string, comment, or comment count
	// exceeds the 32-bit length budget of the comment header. At nearly
	// 4.3 GB per field this should almost never occur.
	ErrTooBig = errors.New("opusmeta: content too big for the comment header")

	// ErrInvalidPictureType indicates a picture type ordinal outside 0-20.
	ErrInvalidPictureType = errors.New("opusmeta: invalid picture type")

	// ErrMIMETooLong indicates a picture MIME type longer than 32 bits allow.
	ErrMIMETooLong = errors.New("opusmeta: picture MIME type too long")

	// ErrDescriptionTooLong indicates a picture description longer than
	// 32 bits allow.
	ErrDescriptionTooLong = errors.New("opusmeta: picture description too long")

	// ErrDataTooLong indicates picture data longer than 32 bits allow.
	ErrDataTooLong = errors.New("opusmeta: picture data too long")

	// ErrBadBase64 indicates a stored picture value was not valid base64.
	// Distinct from the structural errors raised by DecodePicture.
	ErrBadBase64 = errors.New("opusmeta: malformed base64 picture data")
)

// MalformedCommentError is returned when a comment in the header is not in
// TAG=VALUE format. Line carries the offending comment verbatim.
type MalformedCommentError struct {
	Line string
}

func (e *MalformedCommentError) Error() string {
	return fmt.Sprintf("opusmeta: comment not in TAG=VALUE format: %q", e.Line)
}
