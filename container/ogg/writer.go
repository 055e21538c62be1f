package ogg

import (
	"io"
)

// noPacketEnds is the granule position of a page on which no packet
// completes, per RFC 3533.
const noPacketEnds = ^uint64(0)

// PacketWriter frames logical packets into Ogg pages.
//
// Packets accumulate on the current page until one is written with
// EndInfoEndPage or EndInfoEndStream, which flushes the page. Packets whose
// segment tables overflow a page are split across continuation pages. The
// first page emitted for a serial number carries the BOS flag; a page
// flushed by EndInfoEndStream carries EOS.
type PacketWriter struct {
	w io.Writer

	// Per-serial page sequence counters and BOS tracking.
	pageSeq   map[uint32]uint32
	bosDone   map[uint32]bool
	serial    uint32 // Serial of the page being assembled
	active    bool   // A page is being assembled
	segments  []byte // Segment table of the page being assembled
	payload   []byte // Payload of the page being assembled
	granule   uint64 // Granule of the last packet added
	splitCont bool   // Next flushed page continues a split packet
}

// NewPacketWriter creates a PacketWriter over w.
func NewPacketWriter(w io.Writer) *PacketWriter {
	return &PacketWriter{
		w:       w,
		pageSeq: make(map[uint32]uint32),
		bosDone: make(map[uint32]bool),
	}
}

// WritePacket queues data as one logical packet for the given bitstream
// serial. granulePos becomes the granule position of the page the packet
// ends on. end controls page and stream boundaries, see EndInfo.
func (pw *PacketWriter) WritePacket(data []byte, serial uint32, end EndInfo, granulePos uint64) error {
	if pw.active && pw.serial != serial {
		// A new bitstream starts; close out the pending page first.
		if err := pw.flush(0); err != nil {
			return err
		}
	}

	pw.serial = serial
	pw.active = true
	pw.segments = append(pw.segments, BuildSegmentTable(len(data))...)
	pw.payload = append(pw.payload, data...)
	pw.granule = granulePos

	// Split oversized pages. The cut lands mid-packet exactly when the last
	// lacing value on the flushed page is 255.
	for len(pw.segments) > maxSegments {
		if err := pw.flushPartial(); err != nil {
			return err
		}
	}

	switch end {
	case EndInfoNormal:
		return nil
	case EndInfoEndPage:
		return pw.flush(0)
	case EndInfoEndStream:
		return pw.flush(PageFlagEOS)
	default:
		return ErrInvalidPage
	}
}

// flushPartial writes a full page of maxSegments lacing values and keeps the
// rest of the pending data for the next page.
func (pw *PacketWriter) flushPartial() error {
	segs := pw.segments[:maxSegments]
	payloadLen := 0
	for _, s := range segs {
		payloadLen += int(s)
	}

	granule := pw.granule
	midPacket := segs[len(segs)-1] == 255
	if midPacket {
		granule = noPacketEnds
	}

	if err := pw.writePage(segs, pw.payload[:payloadLen], granule, 0); err != nil {
		return err
	}

	pw.segments = pw.segments[maxSegments:]
	pw.payload = pw.payload[payloadLen:]
	pw.splitCont = midPacket
	return nil
}

// flush writes the pending page, if any.
func (pw *PacketWriter) flush(flags byte) error {
	if !pw.active {
		return nil
	}
	if err := pw.writePage(pw.segments, pw.payload, pw.granule, flags); err != nil {
		return err
	}
	pw.segments = nil
	pw.payload = nil
	pw.active = false
	pw.splitCont = false
	return nil
}

func (pw *PacketWriter) writePage(segments, payload []byte, granule uint64, flags byte) error {
	if !pw.bosDone[pw.serial] {
		flags |= PageFlagBOS
		pw.bosDone[pw.serial] = true
	}
	if pw.splitCont {
		flags |= PageFlagContinuation
		pw.splitCont = false
	}

	page := &Page{
		Version:      0,
		HeaderType:   flags,
		GranulePos:   granule,
		SerialNumber: pw.serial,
		PageSequence: pw.pageSeq[pw.serial],
		Segments:     segments,
		Payload:      payload,
	}

	if _, err := pw.w.Write(page.Encode()); err != nil {
		return err
	}
	pw.pageSeq[pw.serial]++
	return nil
}
