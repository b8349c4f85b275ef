package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleKey(t *testing.T) {
	tests := []struct {
		name     string
		key      Key
		start    ImageRef
		want     ViewerState
		consumed bool
	}{
		{"arrow right", KeyArrowRight, "B", ViewerState{Set: abc(), Index: 2, Open: true}, true},
		{"arrow left wraps", KeyArrowLeft, "A", ViewerState{Set: abc(), Index: 2, Open: true}, true},
		{"home", KeyHome, "C", ViewerState{Set: abc(), Index: 0, Open: true}, true},
		{"end", KeyEnd, "A", ViewerState{Set: abc(), Index: 2, Open: true}, true},
		{"escape closes without suppressing default", KeyEscape, "B", ViewerState{}, false},
		{"other key ignored", Key("Enter"), "B", ViewerState{Set: abc(), Index: 1, Open: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := NewNavigator(&Recorder{}, nil, nil)
			st, err := nav.Open(abc(), tt.start)
			assert.NoError(t, err)

			got, consumed := nav.HandleKey(st, tt.key)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.consumed, consumed)
		})
	}
}

func TestHandleKeyWhileClosed(t *testing.T) {
	rec := &Recorder{}
	nav := NewNavigator(rec, nil, nil)
	for _, k := range []Key{KeyArrowLeft, KeyArrowRight, KeyHome, KeyEnd, KeyEscape} {
		st, consumed := nav.HandleKey(ViewerState{}, k)
		assert.False(t, consumed)
		assert.Equal(t, ViewerState{}, st)
	}
	assert.Empty(t, rec.Events())
}

func TestSwipeDirection(t *testing.T) {
	tests := []struct {
		name  string
		swipe Swipe
		dir   Direction
		ok    bool
	}{
		{"left swipe is next", Swipe{StartX: 300, EndX: 100}, Next, true},
		{"right swipe is prev", Swipe{StartX: 100, EndX: 300}, Prev, true},
		{"short travel ignored", Swipe{StartX: 100, EndX: 60}, 0, false},
		{"exact threshold ignored", Swipe{StartX: 100, EndX: 50}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, ok := tt.swipe.Direction()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.dir, dir)
		})
	}
}

func TestHandleSwipe(t *testing.T) {
	nav := NewNavigator(&Recorder{}, nil, nil)
	st, _ := nav.Open(abc(), "A")

	st = nav.HandleSwipe(st, Swipe{StartX: 200, EndX: 20})
	assert.Equal(t, 1, st.Index)
	st = nav.HandleSwipe(st, Swipe{StartX: 20, EndX: 200})
	assert.Equal(t, 0, st.Index)
	st = nav.HandleSwipe(st, Swipe{StartX: 20, EndX: 40})
	assert.Equal(t, 0, st.Index)
}
