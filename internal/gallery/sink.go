package gallery

import "sync"

// Sink receives display events from the navigator. LoadFailed may be called
// from a preload goroutine, so implementations must be safe for concurrent use.
type Sink interface {
	Show(ref ImageRef, index, total int)
	Hide()
	LoadFailed(placeholderLabel string)
	Notice(message string)
}

// EventKind names a display event.
type EventKind string

const (
	EventShow       EventKind = "show"
	EventHide       EventKind = "hide"
	EventLoadFailed EventKind = "load-failed"
	EventNotice     EventKind = "notice"
)

// Event is the recorded form of one Sink call.
type Event struct {
	Kind    EventKind `json:"kind"`
	Ref     ImageRef  `json:"ref,omitempty"`
	Index   int       `json:"index"`
	Total   int       `json:"total"`
	Label   string    `json:"label,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Recorder is a Sink that keeps events in order. Once sealed it drops
// further events, which is how late preload results are discarded after a
// request has been answered.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	sealed bool
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return
	}
	r.events = append(r.events, e)
}

func (r *Recorder) Show(ref ImageRef, index, total int) {
	r.add(Event{Kind: EventShow, Ref: ref, Index: index, Total: total})
}

func (r *Recorder) Hide() { r.add(Event{Kind: EventHide}) }

func (r *Recorder) LoadFailed(label string) {
	r.add(Event{Kind: EventLoadFailed, Label: label})
}

func (r *Recorder) Notice(message string) {
	r.add(Event{Kind: EventNotice, Message: message})
}

// Events returns a copy of what has been recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Seal stops recording and returns the final event list.
func (r *Recorder) Seal() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// ShowNavButtons reports whether prev/next controls should be visible.
func ShowNavButtons(total int) bool { return total > 1 }
