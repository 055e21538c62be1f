package ogg

// Packet is one logical packet extracted from an Ogg stream.
// Packets that span multiple pages are reassembled before being returned;
// GranulePos and the boundary flags describe the page the packet ended on.
type Packet struct {
	// Data is the packet payload.
	Data []byte

	// Serial is the serial number of the logical bitstream the packet
	// belongs to.
	Serial uint32

	// GranulePos is the absolute granule position of the page the packet
	// ended on.
	GranulePos uint64

	// LastInPage reports whether this was the final packet to complete on
	// its page.
	LastInPage bool

	// LastInStream reports whether this was the final packet of the logical
	// bitstream (its page carried the EOS flag).
	LastInStream bool
}

// EndInfo tells PacketWriter how a packet relates to page and stream
// boundaries.
type EndInfo int

const (
	// EndInfoNormal queues the packet without forcing a page flush.
	EndInfoNormal EndInfo = iota

	// EndInfoEndPage flushes the current page after the packet.
	EndInfoEndPage

	// EndInfoEndStream flushes the current page after the packet and marks
	// it as the end of the logical bitstream.
	EndInfoEndStream
)
