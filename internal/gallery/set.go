// Package gallery implements the lightbox navigator behind the projects page.
//
// The navigator never holds viewer state between calls. Every operation takes
// a ViewerState and returns the next one, and reports what should be on
// screen through a Sink.
package gallery

// ImageRef identifies one image, either an asset path such as
// "/images/tui-mail.png" or an opaque handle like a data: URI.
type ImageRef string

// GallerySet is the ordered list of images in one page category.
// It is not modified after construction.
type GallerySet struct {
	Category string
	refs     []ImageRef
}

// NewSet copies refs into a new set for category.
func NewSet(category string, refs ...ImageRef) GallerySet {
	cp := make([]ImageRef, len(refs))
	copy(cp, refs)
	return GallerySet{Category: category, refs: cp}
}

func (s GallerySet) Len() int { return len(s.refs) }

// At returns the image at i, which must already be wrapped.
func (s GallerySet) At(i int) ImageRef { return s.refs[i] }

// Refs returns a copy of the images in order.
func (s GallerySet) Refs() []ImageRef {
	cp := make([]ImageRef, len(s.refs))
	copy(cp, s.refs)
	return cp
}

// IndexOf returns the first position of ref, or -1.
// Duplicate refs resolve to their first occurrence.
func (s GallerySet) IndexOf(ref ImageRef) int {
	for i, r := range s.refs {
		if r == ref {
			return i
		}
	}
	return -1
}

// Wrap maps any integer into [0, Len()). It returns 0 for an empty set.
func (s GallerySet) Wrap(i int) int {
	n := len(s.refs)
	if n == 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// neighbors returns the wrapped previous and next positions of i with
// duplicates and i itself removed.
func (s GallerySet) neighbors(i int) []int {
	out := make([]int, 0, 2)
	for _, n := range []int{s.Wrap(i - 1), s.Wrap(i + 1)} {
		if n == i || (len(out) > 0 && out[0] == n) {
			continue
		}
		out = append(out, n)
	}
	return out
}
