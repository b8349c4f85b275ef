package gallery

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrEmptySet is returned by Open when the category has no images.
var ErrEmptySet = errors.New("gallery: empty image set")

const (
	// UnavailableLabel is the placeholder text for an image that failed to load.
	UnavailableLabel = "Image not available"
	// EmptySetNotice is reported when Open is refused.
	EmptySetNotice = "No images available in this gallery"
)

// Direction is a relative navigation step.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// ViewerState is the lightbox state owned by the caller. The zero value is
// closed. While Open, Index is always within [0, Set.Len()).
type ViewerState struct {
	Set   GallerySet
	Index int
	Open  bool
}

// Current returns the image on screen.
func (s ViewerState) Current() (ImageRef, bool) {
	if !s.Open || s.Set.Len() == 0 {
		return "", false
	}
	return s.Set.At(s.Set.Wrap(s.Index)), true
}

// Navigator applies navigation intents to a ViewerState and reports the
// result to its Sink. One navigator serves one viewer; its methods are meant
// to be called from a single event loop.
type Navigator struct {
	sink      Sink
	preloader *Preloader
	log       *logrus.Entry

	// mu serializes sink calls between the event loop and load callbacks.
	mu  sync.Mutex
	gen uint64
}

// NewNavigator returns a navigator reporting to sink. preloader may be nil,
// in which case no loads are issued.
func NewNavigator(sink Sink, preloader *Preloader, log *logrus.Entry) *Navigator {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Navigator{sink: sink, preloader: preloader, log: log.WithField("component", "navigator")}
}

// Open starts a fresh viewer on set positioned at start. A start image that
// is not in the set falls back to the first image. An empty set is refused
// with ErrEmptySet, a Notice is reported and the caller keeps its old state.
func (n *Navigator) Open(set GallerySet, start ImageRef) (ViewerState, error) {
	idx := set.IndexOf(start)
	if idx < 0 && set.Len() > 0 {
		n.log.WithFields(logrus.Fields{"category": set.Category, "ref": start}).
			Debug("start image not in set, showing first")
		idx = 0
	}
	return n.OpenAt(set, idx)
}

// OpenAt is Open with the start position given directly. index is wrapped
// into range.
func (n *Navigator) OpenAt(set GallerySet, index int) (ViewerState, error) {
	if set.Len() == 0 {
		n.mu.Lock()
		n.sink.Notice(EmptySetNotice)
		n.mu.Unlock()
		return ViewerState{}, ErrEmptySet
	}

	st := ViewerState{Set: set, Index: set.Wrap(index), Open: true}
	n.show(st)
	return st, nil
}

// Navigate moves one step in dir, wrapping at both ends. It is a no-op when
// the viewer is closed, the set has at most one image, or dir is not ±1.
func (n *Navigator) Navigate(st ViewerState, dir Direction) ViewerState {
	if !st.Open || st.Set.Len() <= 1 {
		return st
	}
	if dir != Prev && dir != Next {
		return st
	}
	st.Index = st.Set.Wrap(st.Index + int(dir))
	n.show(st)
	return st
}

// JumpTo shows the image at target, wrapped into range, so -1 is the last
// image. It is a no-op while closed.
func (n *Navigator) JumpTo(st ViewerState, target int) ViewerState {
	if !st.Open || st.Set.Len() == 0 {
		return st
	}
	st.Index = st.Set.Wrap(target)
	n.show(st)
	return st
}

func (n *Navigator) First(st ViewerState) ViewerState { return n.JumpTo(st, 0) }

func (n *Navigator) Last(st ViewerState) ViewerState {
	return n.JumpTo(st, st.Set.Len()-1)
}

// Close always succeeds and returns the closed zero state. Load results
// still in flight for the previous image are ignored.
func (n *Navigator) Close(ViewerState) ViewerState {
	n.mu.Lock()
	n.gen++
	n.sink.Hide()
	n.mu.Unlock()
	return ViewerState{}
}

func (n *Navigator) show(st ViewerState) {
	ref := st.Set.At(st.Index)

	n.mu.Lock()
	n.gen++
	gen := n.gen
	n.sink.Show(ref, st.Index, st.Set.Len())
	n.mu.Unlock()

	if n.preloader == nil {
		return
	}

	n.preloader.Fetch(ref, func(err error) {
		if err == nil {
			return
		}
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.gen != gen {
			n.log.WithField("ref", ref).Debug("dropping stale load failure")
			return
		}
		n.log.WithError(err).WithField("ref", ref).Warn("image failed to load")
		n.sink.LoadFailed(UnavailableLabel)
	})

	for _, i := range st.Set.neighbors(st.Index) {
		n.preloader.Fetch(st.Set.At(i), nil)
	}
}
