package ogg

import (
	"bytes"
	"io"
	"testing"
)

// TestOggCRC verifies the Ogg CRC-32 implementation properties.
// The implementation uses polynomial 0x04C11DB7 (not IEEE).
func TestOggCRC(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		got := oggCRC([]byte{})
		if got != 0 {
			t.Errorf("oggCRC([]) = 0x%08x, want 0", got)
		}
	})

	t.Run("update consistency", func(t *testing.T) {
		data := []byte("hello world")
		full := oggCRC(data)
		partial := oggCRCUpdate(oggCRC(data[:5]), data[5:])
		if full != partial {
			t.Errorf("oggCRCUpdate inconsistent: full=0x%08x, partial=0x%08x", full, partial)
		}
	})

	t.Run("non-IEEE polynomial", func(t *testing.T) {
		// IEEE CRC-32 for "OggS" would be different.
		got := oggCRC([]byte("OggS"))
		expected := uint32(0x5fb0a94f)
		if got != expected {
			t.Errorf("oggCRC(OggS) = 0x%08x, want 0x%08x", got, expected)
		}
	})
}

// TestBuildSegmentTable verifies lacing value construction.
func TestBuildSegmentTable(t *testing.T) {
	tests := []struct {
		name      string
		packetLen int
		want      []byte
	}{
		{"empty packet", 0, []byte{0}},
		{"small packet", 100, []byte{100}},
		{"one byte under boundary", 254, []byte{254}},
		{"exactly 255", 255, []byte{255, 0}},
		{"spanning", 600, []byte{255, 255, 90}},
		{"multiple of 255", 510, []byte{255, 255, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSegmentTable(tt.packetLen)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("BuildSegmentTable(%d) = %v, want %v", tt.packetLen, got, tt.want)
			}
		})
	}
}

// TestParseSegmentTable verifies packet length extraction from lacing values.
func TestParseSegmentTable(t *testing.T) {
	tests := []struct {
		name     string
		segments []byte
		want     []int
	}{
		{"nil", nil, nil},
		{"single packet", []byte{100}, []int{100}},
		{"two packets", []byte{100, 50}, []int{100, 50}},
		{"spanning packet", []byte{255, 255, 90}, []int{600}},
		{"trailing continuation", []byte{10, 255, 255}, []int{10}},
		{"zero-length packet", []byte{0}, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSegmentTable(tt.segments)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSegmentTable(%v) = %v, want %v", tt.segments, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSegmentTable(%v)[%d] = %d, want %d", tt.segments, i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestPageRoundTrip verifies that an encoded page parses back identically.
func TestPageRoundTrip(t *testing.T) {
	payload := []byte("test payload data")
	page := &Page{
		Version:      0,
		HeaderType:   PageFlagBOS,
		GranulePos:   12345,
		SerialNumber: 0xdeadbeef,
		PageSequence: 7,
		Segments:     BuildSegmentTable(len(payload)),
		Payload:      payload,
	}

	encoded := page.Encode()
	parsed, consumed, err := ParsePage(encoded)
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}
	if consumed != len(encoded) {
		t.Errorf("consumed %d bytes, want %d", consumed, len(encoded))
	}
	if parsed.GranulePos != page.GranulePos {
		t.Errorf("GranulePos = %d, want %d", parsed.GranulePos, page.GranulePos)
	}
	if parsed.SerialNumber != page.SerialNumber {
		t.Errorf("SerialNumber = 0x%08x, want 0x%08x", parsed.SerialNumber, page.SerialNumber)
	}
	if parsed.PageSequence != page.PageSequence {
		t.Errorf("PageSequence = %d, want %d", parsed.PageSequence, page.PageSequence)
	}
	if !parsed.IsBOS() {
		t.Error("BOS flag lost in round trip")
	}
	if !bytes.Equal(parsed.Payload, payload) {
		t.Errorf("Payload = %q, want %q", parsed.Payload, payload)
	}
}

// TestParsePageErrors verifies malformed page rejection.
func TestParsePageErrors(t *testing.T) {
	t.Run("truncated header", func(t *testing.T) {
		_, _, err := ParsePage([]byte("OggS"))
		if err != ErrInvalidPage {
			t.Errorf("err = %v, want ErrInvalidPage", err)
		}
	})

	t.Run("bad magic", func(t *testing.T) {
		data := make([]byte, 64)
		copy(data, "NotO")
		_, _, err := ParsePage(data)
		if err != ErrInvalidPage {
			t.Errorf("err = %v, want ErrInvalidPage", err)
		}
	})

	t.Run("corrupted CRC", func(t *testing.T) {
		page := &Page{
			Segments: BuildSegmentTable(4),
			Payload:  []byte("data"),
		}
		encoded := page.Encode()
		encoded[len(encoded)-1] ^= 0x01
		_, _, err := ParsePage(encoded)
		if err != ErrBadCRC {
			t.Errorf("err = %v, want ErrBadCRC", err)
		}
	})
}

// writePackets frames the given packets into a buffer, one EndPage per
// packet, marking the last as EndStream.
func writePackets(t *testing.T, serial uint32, packets ...[]byte) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	pw := NewPacketWriter(&buf)
	for i, p := range packets {
		end := EndInfoEndPage
		if i == len(packets)-1 {
			end = EndInfoEndStream
		}
		if err := pw.WritePacket(p, serial, end, uint64(i)); err != nil {
			t.Fatalf("WritePacket: %v", err)
		}
	}
	return &buf
}

// TestPacketRoundTrip verifies writer output reads back packet for packet.
func TestPacketRoundTrip(t *testing.T) {
	const serial = 0x1234
	packets := [][]byte{
		[]byte("first"),
		[]byte("second packet"),
		bytes.Repeat([]byte{0xab}, 1000), // spans multiple segments
		{},                               // zero-length packet
		[]byte("last"),
	}

	buf := writePackets(t, serial, packets...)

	pr := NewPacketReader(buf)
	for i, want := range packets {
		got, err := pr.ReadPacket()
		if err != nil {
			t.Fatalf("ReadPacket %d: %v", i, err)
		}
		if !bytes.Equal(got.Data, want) {
			t.Errorf("packet %d = %q, want %q", i, got.Data, want)
		}
		if got.Serial != serial {
			t.Errorf("packet %d serial = 0x%x, want 0x%x", i, got.Serial, serial)
		}
		if !got.LastInPage {
			t.Errorf("packet %d should be last in its page", i)
		}
		if got.LastInStream != (i == len(packets)-1) {
			t.Errorf("packet %d LastInStream = %v", i, got.LastInStream)
		}
	}

	if _, err := pr.ReadPacket(); err != io.EOF {
		t.Errorf("after last packet: err = %v, want io.EOF", err)
	}
}

// TestPacketSpanningPages verifies reassembly of a packet larger than one page.
func TestPacketSpanningPages(t *testing.T) {
	// 100000 bytes needs ~393 lacing values, i.e. at least two pages.
	big := make([]byte, 100000)
	for i := range big {
		big[i] = byte(i)
	}

	buf := writePackets(t, 42, []byte("head"), big, []byte("tail"))

	pr := NewPacketReader(buf)
	for i, want := range [][]byte{[]byte("head"), big, []byte("tail")} {
		got, err := pr.ReadPacket()
		if err != nil {
			t.Fatalf("ReadPacket %d: %v", i, err)
		}
		if !bytes.Equal(got.Data, want) {
			t.Errorf("packet %d: got %d bytes, want %d", i, len(got.Data), len(want))
		}
	}
}

// TestMultiplePacketsPerPage verifies packet splitting within one page.
func TestMultiplePacketsPerPage(t *testing.T) {
	var buf bytes.Buffer
	pw := NewPacketWriter(&buf)
	if err := pw.WritePacket([]byte("one"), 9, EndInfoNormal, 0); err != nil {
		t.Fatal(err)
	}
	if err := pw.WritePacket([]byte("two"), 9, EndInfoNormal, 0); err != nil {
		t.Fatal(err)
	}
	if err := pw.WritePacket([]byte("three"), 9, EndInfoEndStream, 3); err != nil {
		t.Fatal(err)
	}

	// All three packets must live on a single page.
	page, consumed, err := ParsePage(buf.Bytes())
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if consumed != buf.Len() {
		t.Errorf("expected a single page, %d of %d bytes consumed", consumed, buf.Len())
	}
	if !page.IsEOS() {
		t.Error("EOS flag missing")
	}

	pr := NewPacketReader(&buf)
	for i, want := range []string{"one", "two", "three"} {
		got, err := pr.ReadPacket()
		if err != nil {
			t.Fatalf("ReadPacket %d: %v", i, err)
		}
		if string(got.Data) != want {
			t.Errorf("packet %d = %q, want %q", i, got.Data, want)
		}
		if got.LastInPage != (i == 2) {
			t.Errorf("packet %d LastInPage = %v", i, got.LastInPage)
		}
	}
}

// TestContinuationFromNothing verifies rejection of a continuation page
// with no preceding partial packet.
func TestContinuationFromNothing(t *testing.T) {
	page := &Page{
		HeaderType: PageFlagBOS | PageFlagContinuation,
		Segments:   BuildSegmentTable(4),
		Payload:    []byte("data"),
	}

	pr := NewPacketReader(bytes.NewReader(page.Encode()))
	if _, err := pr.ReadPacket(); err != ErrInvalidPage {
		t.Errorf("err = %v, want ErrInvalidPage", err)
	}
}

// TestTruncatedMidPacket verifies ErrUnexpectedEOS when the stream ends
// inside a spanning packet.
func TestTruncatedMidPacket(t *testing.T) {
	big := make([]byte, 100000)
	buf := writePackets(t, 5, big)

	// Chop off the last page.
	raw := buf.Bytes()
	pr := NewPacketReader(bytes.NewReader(raw[:len(raw)/2]))
	_, err := pr.ReadPacket()
	if err == nil {
		t.Fatal("expected error for truncated stream")
	}
}
