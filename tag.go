package opusmeta

import (
	"iter"
	"slices"
)

// PictureBlockTag is the reserved comment key under which base64-encoded
// pictures are stored, per the Vorbis comment cover art convention.
const PictureBlockTag = "metadata_block_picture"

// Tag holds the comments of an Opus stream: the vendor string and a
// multimap of lowercase tag names to ordered value lists.
//
// Keys are ASCII-lowercased before storage. A key with zero occurrences is
// absent from the map, never present with an empty list. Value order
// within a key is preserved across a read/write round trip; order across
// distinct keys is not.
type Tag struct {
	vendor   string
	comments map[string][]string
}

// NewTag creates a Tag from a vendor string and a list of (tag, value)
// pairs. Tags are lowercased; per-tag value order follows pair order.
func NewTag(vendor string, comments [][2]string) *Tag {
	t := &Tag{
		vendor:   vendor,
		comments: make(map[string][]string),
	}
	for _, c := range comments {
		t.AddOne(ToLowercase(c[0]), c[1])
	}
	return t
}

// AddOne appends one value under the given tag.
func (t *Tag) AddOne(tag Lowercase, value string) {
	if t.comments == nil {
		t.comments = make(map[string][]string)
	}
	t.comments[tag.String()] = append(t.comments[tag.String()], value)
}

// AddMany appends all values under the given tag, preserving their order.
func (t *Tag) AddMany(tag Lowercase, values []string) {
	if len(values) == 0 {
		return
	}
	if t.comments == nil {
		t.comments = make(map[string][]string)
	}
	t.comments[tag.String()] = append(t.comments[tag.String()], values...)
}

// Get returns all values stored under the given tag, or nil if the tag has
// no occurrences. The returned slice is owned by the Tag.
func (t *Tag) Get(tag Lowercase) []string {
	return t.comments[tag.String()]
}

// GetOne returns the first value stored under the given tag.
func (t *Tag) GetOne(tag Lowercase) (string, bool) {
	vs := t.comments[tag.String()]
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// RemoveEntries removes all values stored under the given tag, returning
// the removed values. Returns false if the tag had no occurrences.
func (t *Tag) RemoveEntries(tag Lowercase) ([]string, bool) {
	vs, ok := t.comments[tag.String()]
	if ok {
		delete(t.comments, tag.String())
	}
	return vs, ok
}

// SetEntries replaces all values stored under the given tag, returning the
// previous values if there were any. Setting an empty list removes the tag.
func (t *Tag) SetEntries(tag Lowercase, values []string) []string {
	prev := t.comments[tag.String()]
	if len(values) == 0 {
		delete(t.comments, tag.String())
		return prev
	}
	if t.comments == nil {
		t.comments = make(map[string][]string)
	}
	t.comments[tag.String()] = values
	return prev
}

// Vendor returns the vendor string.
func (t *Tag) Vendor() string {
	return t.vendor
}

// SetVendor replaces the vendor string.
func (t *Tag) SetVendor(vendor string) {
	t.vendor = vendor
}

// AddPicture stores a picture under the reserved picture key. An existing
// picture with the same type is removed first, so the typed accessors see
// at most one picture per type. Other tools may still write raw duplicates
// into the underlying comment list; those are tolerated.
func (t *Tag) AddPicture(pic *Picture) error {
	t.RemovePictureType(pic.Type)
	data, err := pic.EncodeBase64()
	if err != nil {
		return err
	}
	t.AddOne(ToLowercase(PictureBlockTag), data)
	return nil
}

// RemovePictureType removes the first stored picture with the given type,
// returning it. Returns nil if no stored picture has that type. Values
// that fail to decode are skipped, not removed and not reported.
func (t *Tag) RemovePictureType(pictureType PictureType) *Picture {
	values := t.comments[PictureBlockTag]
	for i, v := range values {
		pic, err := DecodePictureBase64(v)
		if err != nil {
			continue
		}
		if pic.Type == pictureType {
			values = slices.Delete(values, i, i+1)
			if len(values) == 0 {
				delete(t.comments, PictureBlockTag)
			} else {
				t.comments[PictureBlockTag] = values
			}
			return pic
		}
	}
	return nil
}

// GetPictureType returns the first stored picture with the given type.
// Values that fail to decode are skipped.
func (t *Tag) GetPictureType(pictureType PictureType) (*Picture, bool) {
	for _, v := range t.comments[PictureBlockTag] {
		pic, err := DecodePictureBase64(v)
		if err != nil {
			continue
		}
		if pic.Type == pictureType {
			return pic, true
		}
	}
	return nil, false
}

// HasPictures reports whether any values are stored under the reserved
// picture key, decodable or not.
func (t *Tag) HasPictures() bool {
	_, ok := t.comments[PictureBlockTag]
	return ok
}

// Pictures returns all stored pictures. Values that fail to decode are
// silently dropped; a comment list polluted by other tools never aborts
// the enumeration.
func (t *Tag) Pictures() []*Picture {
	values := t.comments[PictureBlockTag]
	pics := make([]*Picture, 0, len(values))
	for _, v := range values {
		if pic, err := DecodePictureBase64(v); err == nil {
			pics = append(pics, pic)
		}
	}
	return pics
}

// Comments iterates over all comments except the reserved picture key.
// The yielded value slices are owned by the Tag.
func (t *Tag) Comments() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for k, vs := range t.comments {
			if k == PictureBlockTag {
				continue
			}
			if !yield(k, vs) {
				return
			}
		}
	}
}

// Keys iterates over all comment keys except the reserved picture key.
// To check for pictures, use HasPictures.
func (t *Tag) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for k := range t.comments {
			if k == PictureBlockTag {
				continue
			}
			if !yield(k) {
				return
			}
		}
	}
}
