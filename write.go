package opusmeta

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/saecki/opusmeta/container/ogg"
)

// WriteTo rewrites the Opus stream held by f with this Tag as its comment
// header. The target must already contain a well-formed Opus stream; this
// method rewrites, it never creates a stream from nothing.
//
// The whole rewritten stream is assembled in memory first: the
// identification packet and all audio packets are copied verbatim with
// their page and stream boundaries preserved, and the comment header
// packet is replaced, always ending its page. The target is then seeked to
// its start, resized to the new length, and overwritten in full.
//
// Length validation happens before the target is touched, so ErrTooBig
// leaves the target intact. An I/O failure during the final overwrite can
// leave the target partially written; callers needing atomicity should
// hand WriteTo a temporary file and rename it into place afterwards.
func (t *Tag) WriteTo(f StorageFile) error {
	payload, err := t.encodePacket()
	if err != nil {
		return err
	}

	var out bytes.Buffer
	pr := ogg.NewPacketReader(f)
	pw := ogg.NewPacketWriter(&out)

	// Identification header, copied verbatim.
	first, err := pr.ReadPacket()
	if err != nil {
		return packetErr(err)
	}
	if err := pw.WritePacket(first.Data, first.Serial, endInfo(first), first.GranulePos); err != nil {
		return err
	}

	// Comment header, replaced. It always gets its own page.
	header, err := pr.ReadPacket()
	if err != nil {
		return packetErr(err)
	}
	if err := pw.WritePacket(payload, header.Serial, ogg.EndInfoEndPage, header.GranulePos); err != nil {
		return err
	}

	// Remaining packets, copied verbatim with their own boundary markers.
	for {
		p, err := pr.ReadPacket()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return packetErr(err)
		}
		if err := pw.WritePacket(p.Data, p.Serial, endInfo(p), p.GranulePos); err != nil {
			return err
		}
	}

	// All-or-nothing replacement of the target's contents.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("opusmeta: seeking rewrite target: %w", err)
	}
	if err := f.Truncate(int64(out.Len())); err != nil {
		return fmt.Errorf("opusmeta: resizing rewrite target: %w", err)
	}
	if _, err := f.Write(out.Bytes()); err != nil {
		return fmt.Errorf("opusmeta: writing rewrite target: %w", err)
	}
	return nil
}

// WriteToPath is the file-based convenience around WriteTo. The file is
// opened read-write and rewritten in place.
func (t *Tag) WriteToPath(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	if err := t.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// endInfo carries a read packet's boundary observation over to the writer.
func endInfo(p *ogg.Packet) ogg.EndInfo {
	switch {
	case p.LastInStream:
		return ogg.EndInfoEndStream
	case p.LastInPage:
		return ogg.EndInfoEndPage
	default:
		return ogg.EndInfoNormal
	}
}

// encodePacket serializes the Tag into a comment header payload. Any
// vendor string, comment, or comment count exceeding the u32 length budget
// yields ErrTooBig.
func (t *Tag) encodePacket() ([]byte, error) {
	if uint64(len(t.vendor)) > math.MaxUint32 {
		return nil, ErrTooBig
	}

	var comments []string
	for name, values := range t.comments {
		for _, v := range values {
			comments = append(comments, name+"="+v)
		}
	}
	if uint64(len(comments)) > math.MaxUint32 {
		return nil, ErrTooBig
	}

	out := []byte(opusTagsMagic)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(t.vendor)))
	out = append(out, t.vendor...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(comments)))
	for _, c := range comments {
		if uint64(len(c)) > math.MaxUint32 {
			return nil, ErrTooBig
		}
		out = binary.LittleEndian.AppendUint32(out, uint32(len(c)))
		out = append(out, c...)
	}
	return out, nil
}
