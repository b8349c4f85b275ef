// Package server serves the projects page and the JSON gallery API.
package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Zachkp/portfolio-gallery/internal/catalog"
	"github.com/Zachkp/portfolio-gallery/internal/gallery"
)

//go:embed templates/*.html
var templates embed.FS

// ImagesPrefix is the URL path the asset directory is served under. Catalog
// refs below it are checked against the same directory.
const ImagesPrefix = "/images/"

// NewFileLoader returns a loader that checks refs under ImagesPrefix
// against root.
func NewFileLoader(root string) gallery.FileLoader {
	return gallery.FileLoader{Root: root, Prefix: ImagesPrefix}
}

// Catalog is the content the server needs from the catalog store.
type Catalog interface {
	Categories(ctx context.Context) ([]catalog.Category, error)
	Category(ctx context.Context, slug string) (catalog.Category, error)
}

type Server struct {
	catalog   Catalog
	preloader *gallery.Preloader
	imagesDir string
	log       *logrus.Entry
}

func New(cat Catalog, pre *gallery.Preloader, imagesDir string, log *logrus.Entry) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Server{catalog: cat, preloader: pre, imagesDir: imagesDir, log: log}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))
	r.SetHTMLTemplate(template.Must(template.ParseFS(templates, "templates/*.html")))

	r.Static(strings.TrimSuffix(ImagesPrefix, "/"), s.imagesDir)

	r.GET("/", s.handleHome)
	r.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api/gallery")
	api.GET("", s.handleCategories)
	api.GET("/status", s.handleStatus)
	api.GET("/placeholder", s.handlePlaceholder)
	api.POST("/open", s.handleOpen)
	api.POST("/navigate", s.handleNavigate)
	api.POST("/jump", s.handleJump)
	api.POST("/key", s.handleKey)
	api.POST("/swipe", s.handleSwipe)
	api.POST("/close", s.handleClose)

	return r
}

func requestLogger(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Debug("request")
	}
}

func (s *Server) handleHome(c *gin.Context) {
	cats, err := s.catalog.Categories(c.Request.Context())
	if err != nil {
		s.log.WithError(err).Error("loading categories for home page")
		c.String(http.StatusInternalServerError, "Failed to load projects")
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":      "Projects",
		"categories": cats,
	})
}

func (s *Server) handleCategories(c *gin.Context) {
	cats, err := s.catalog.Categories(c.Request.Context())
	if err != nil {
		s.log.WithError(err).Error("listing categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (s *Server) handleStatus(c *gin.Context) {
	ref := c.Query("ref")
	if ref == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ref is required"})
		return
	}
	state := gallery.LoadUnknown
	if s.preloader != nil {
		state = s.preloader.State(gallery.ImageRef(ref))
	}
	body := gin.H{"ref": ref, "state": state.String()}
	if state == gallery.LoadFailed {
		body["label"] = gallery.UnavailableLabel
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) handlePlaceholder(c *gin.Context) {
	label := c.DefaultQuery("label", gallery.UnavailableLabel)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/svg+xml", []byte(gallery.Placeholder(label)))
}
