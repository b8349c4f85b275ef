package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Zachkp/portfolio-gallery/internal/catalog"
	"github.com/Zachkp/portfolio-gallery/internal/gallery"
)

// viewerState is the wire form of gallery.ViewerState. The client holds it
// between requests; the image set is looked up again from the category.
type viewerState struct {
	Category string `json:"category"`
	Index    int    `json:"index"`
	Open     bool   `json:"open"`
}

type stepResponse struct {
	State      viewerState     `json:"state"`
	Events     []gallery.Event `json:"events"`
	NavButtons bool            `json:"nav_buttons"`
	Consumed   *bool           `json:"consumed,omitempty"`
}

var errIndexOutOfRange = errors.New("index out of range")

// defaultAlt labels the placeholder of an image without alt text.
const defaultAlt = "Project Image"

func toWire(st gallery.ViewerState) viewerState {
	if !st.Open {
		return viewerState{}
	}
	return viewerState{Category: st.Set.Category, Index: st.Index, Open: true}
}

// resolve rebuilds the viewer state a client sent back.
func (s *Server) resolve(c *gin.Context, ws viewerState) (gallery.ViewerState, bool) {
	if !ws.Open {
		return gallery.ViewerState{}, true
	}
	cat, err := s.catalog.Category(c.Request.Context(), ws.Category)
	if err == nil && (ws.Index < 0 || ws.Index >= len(cat.Images)) {
		err = errIndexOutOfRange
	}
	if err != nil {
		s.fail(c, err)
		return gallery.ViewerState{}, false
	}
	return gallery.ViewerState{Set: s.gallerySet(cat), Index: ws.Index, Open: true}, true
}

// gallerySet builds the category's set with every image already known to be
// broken replaced by its placeholder, so the viewer does not show a dead
// image before the failure is reported again.
func (s *Server) gallerySet(cat catalog.Category) gallery.GallerySet {
	set := cat.Set()
	if s.preloader == nil {
		return set
	}
	refs := set.Refs()
	for i, img := range cat.Images {
		if s.preloader.State(refs[i]) != gallery.LoadFailed {
			continue
		}
		alt := img.Alt
		if alt == "" {
			alt = defaultAlt
		}
		refs[i] = gallery.PlaceholderURI(alt)
	}
	return gallery.NewSet(cat.Slug, refs...)
}

func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, errIndexOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.log.WithError(err).Error("gallery request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load gallery"})
	}
}

// step runs one navigation step against a fresh navigator and answers with
// the resulting state and the events emitted while handling it.
func (s *Server) step(c *gin.Context, ws viewerState, apply func(*gallery.Navigator, gallery.ViewerState) gallery.ViewerState) {
	st, ok := s.resolve(c, ws)
	if !ok {
		return
	}
	rec := &gallery.Recorder{}
	nav := gallery.NewNavigator(rec, s.preloader, s.log)
	next := apply(nav, st)
	s.respond(c, http.StatusOK, next, rec.Seal(), nil)
}

func (s *Server) respond(c *gin.Context, status int, st gallery.ViewerState, events []gallery.Event, consumed *bool) {
	c.JSON(status, stepResponse{
		State:      toWire(st),
		Events:     events,
		NavButtons: st.Open && gallery.ShowNavButtons(st.Set.Len()),
		Consumed:   consumed,
	})
}

func (s *Server) handleOpen(c *gin.Context) {
	var req struct {
		Category string `json:"category" binding:"required"`
		Ref      string `json:"ref"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat, err := s.catalog.Category(c.Request.Context(), req.Category)
	if err != nil {
		s.fail(c, err)
		return
	}

	// The start image is matched against the catalog refs, before any
	// placeholder substitution.
	start := cat.Set().IndexOf(gallery.ImageRef(req.Ref))
	if start < 0 {
		start = 0
	}

	rec := &gallery.Recorder{}
	nav := gallery.NewNavigator(rec, s.preloader, s.log)
	st, err := nav.OpenAt(s.gallerySet(cat), start)
	if errors.Is(err, gallery.ErrEmptySet) {
		s.log.WithField("category", req.Category).Info("open refused, category has no images")
		s.respond(c, http.StatusUnprocessableEntity, st, rec.Seal(), nil)
		return
	}
	s.log.WithFields(logrus.Fields{"category": req.Category, "index": st.Index}).Debug("gallery opened")
	s.respond(c, http.StatusOK, st, rec.Seal(), nil)
}

func (s *Server) handleNavigate(c *gin.Context) {
	var req struct {
		State     viewerState `json:"state"`
		Direction int         `json:"direction" binding:"oneof=-1 1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.step(c, req.State, func(nav *gallery.Navigator, st gallery.ViewerState) gallery.ViewerState {
		return nav.Navigate(st, gallery.Direction(req.Direction))
	})
}

func (s *Server) handleJump(c *gin.Context) {
	var req struct {
		State viewerState `json:"state"`
		Index int         `json:"index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.step(c, req.State, func(nav *gallery.Navigator, st gallery.ViewerState) gallery.ViewerState {
		return nav.JumpTo(st, req.Index)
	})
}

func (s *Server) handleKey(c *gin.Context) {
	var req struct {
		State viewerState `json:"state"`
		Key   string      `json:"key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, ok := s.resolve(c, req.State)
	if !ok {
		return
	}
	rec := &gallery.Recorder{}
	nav := gallery.NewNavigator(rec, s.preloader, s.log)
	next, consumed := nav.HandleKey(st, gallery.Key(req.Key))
	s.respond(c, http.StatusOK, next, rec.Seal(), &consumed)
}

func (s *Server) handleSwipe(c *gin.Context) {
	var req struct {
		State  viewerState `json:"state"`
		StartX float64     `json:"start_x"`
		EndX   float64     `json:"end_x"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.step(c, req.State, func(nav *gallery.Navigator, st gallery.ViewerState) gallery.ViewerState {
		return nav.HandleSwipe(st, gallery.Swipe{StartX: req.StartX, EndX: req.EndX})
	})
}

// handleClose ignores the body; closing succeeds from any state.
func (s *Server) handleClose(c *gin.Context) {
	rec := &gallery.Recorder{}
	nav := gallery.NewNavigator(rec, s.preloader, s.log)
	s.respond(c, http.StatusOK, nav.Close(gallery.ViewerState{}), rec.Seal(), nil)
}
