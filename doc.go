// Package opusmeta reads and rewrites the metadata (comments) of Ogg Opus
// streams, including embedded cover art.
//
// Opus streams framed as Ogg carry their metadata in the second logical
// packet, the comment header defined by RFC 7845 section 5.2: a vendor
// string followed by free-form "TAG=value" entries. This package parses
// that header into a Tag, lets callers mutate it, and writes it back by
// rewriting the whole stream with the comment header replaced. Audio
// packets are never touched; they are copied verbatim.
//
// Cover art follows the Vorbis comment cover art convention: a FLAC
// METADATA_BLOCK_PICTURE structure, base64-encoded, stored under the
// reserved comment key "metadata_block_picture". Picture provides the
// binary and base64 codecs for that structure, and Tag exposes typed
// accessors (AddPicture, Pictures, ...) layered over the generic comment
// map.
//
// # Comment Header Format
//
// The comment header payload inside Ogg packet 2:
//
//	Bytes 0-7:   "OpusTags" magic signature
//	Bytes 8-11:  Vendor string length (u32, little-endian)
//	Bytes 12+:   Vendor string (UTF-8)
//	Next 4:      User comment count (u32, little-endian)
//	For each comment:
//	  4 bytes:   Comment length (u32, little-endian)
//	  N bytes:   Comment string ("TAG=value", UTF-8)
//
// # Picture Block Format
//
// The value stored under the reserved key is base64 of (all integers
// big-endian, following the FLAC picture block rather than the comment
// header):
//
//	4 bytes:  Picture type (0-20)
//	4 bytes:  MIME type length, then the MIME type
//	4 bytes:  Description length, then the description
//	16 bytes: Width, height, depth, color count (written as zero, ignored)
//	4 bytes:  Data length, then the image data
//
// # Reading and Writing
//
// ReadFrom parses the first two packets of a stream; ReadFromPath is the
// file-based convenience. Tag.WriteTo rewrites an existing stream held by
// anything satisfying StorageFile: the full rewritten stream is assembled
// in memory, then the target is truncated and overwritten in one step.
// Memory use is proportional to stream size; this is a rewriter, not a
// streaming editor, and it never creates a stream from nothing.
//
// Tag values are not safe for concurrent mutation; callers owning a Tag
// across goroutines must synchronize access themselves.
package opusmeta
