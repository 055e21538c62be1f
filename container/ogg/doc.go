// Package ogg implements Ogg container framing at the logical-packet level.
//
// This package provides the low-level primitives the metadata layer needs:
// parsing Ogg pages, reassembling the logical packets they carry, and
// writing packets back out as valid pages. It follows RFC 3533 (The Ogg
// Encapsulation Format) and makes no assumptions about the codec framed
// inside the container; packet payloads are opaque bytes.
//
// The Ogg format uses pages as atomic units of data, where each page contains:
//   - A 27-byte header with magic signature "OggS"
//   - A segment table describing packet boundaries
//   - Payload data containing one or more packets
//   - CRC-32 checksum for data integrity verification
//
// # Page Structure
//
// An Ogg page has the following structure:
//
//	Bytes 0-3:   "OggS" capture pattern (magic signature)
//	Byte 4:      Stream structure version (always 0)
//	Byte 5:      Header type flags (continuation, BOS, EOS)
//	Bytes 6-13:  Granule position (absolute stream position at page end)
//	Bytes 14-17: Bitstream serial number
//	Bytes 18-21: Page sequence number
//	Bytes 22-25: CRC checksum
//	Byte 26:     Number of segments
//	Bytes 27+:   Segment table (one byte per segment)
//	Remaining:   Page payload data
//
// # Segment Table
//
// Packets are split into segments of up to 255 bytes each. A segment value
// of 255 indicates the packet continues in the next segment. A value less
// than 255 marks the end of a packet. A packet whose final segment value
// is 255 continues on the next page, which carries the continuation flag.
//
// Example: A 600-byte packet uses segments [255, 255, 90] (255+255+90=600)
//
// # CRC Calculation
//
// Ogg uses CRC-32 with polynomial 0x04C11DB7 (NOT the IEEE polynomial used
// by hash/crc32). The CRC is computed over the entire page with the CRC
// field set to zero.
//
// # Packet API
//
// PacketReader consumes an io.Reader page by page and yields logical
// packets, stitching together packets that span pages. Each packet reports
// the serial number and granule position of the page it ended on, plus
// whether it was the last packet of that page or of the whole stream.
//
// PacketWriter is the inverse: packets are queued onto the current page and
// the page is flushed when the caller marks a packet as ending a page or
// ending the stream. Packets too large for a single page are split across
// continuation pages automatically.
//
// Multiplexed (interleaved) bitstreams are not supported: pages are assumed
// to arrive in a single logical stream's order.
//
// # References
//
//   - RFC 3533: The Ogg Encapsulation Format Version 0
//   - RFC 7845: Ogg Encapsulation for the Opus Audio Codec
package ogg
