// Package web is the HTTP surface: the page, the HTMX endpoints that drive a
// page view's state, the typed-text stream and the admin pages.
package web

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	g "maragu.dev/gomponents"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/pageview"
	"github.com/Zachkp/portfolio/internal/visitors"
	assets "github.com/Zachkp/portfolio/web"
)

type Server struct {
	cfg       config.Config
	site      *content.Site
	views     *pageview.Registry
	submitter *contact.Submitter
	// store is nil when visitor tracking is off.
	store      *visitors.Store
	adminToken string
	// bg tracks visit and impression writes still running.
	bg sync.WaitGroup
}

// New builds a server. store may be nil.
func New(cfg config.Config, site *content.Site, store *visitors.Store) (*Server, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:        cfg,
		site:       site,
		submitter:  contact.NewSubmitter(cfg.SubmitDelay),
		store:      store,
		adminToken: token,
	}
	s.views = pageview.NewRegistry(pageview.Options{
		Sections:  site.Sections,
		TTL:       cfg.ViewTTL,
		OnVisible: s.recordImpression,
	})
	return s, nil
}

// Views exposes the page-view registry so the caller can run its janitor.
func (s *Server) Views() *pageview.Registry {
	return s.views
}

func (s *Server) recordImpression(v *pageview.View, section string) {
	if s.store == nil || !v.Track {
		return
	}
	s.bg.Go(func() {
		if err := s.store.RecordImpression(context.Background(), section); err != nil {
			log.Printf("Error recording impression: %v", err)
		}
	})
}

// Wait blocks until background visitor writes have finished. Call it after the
// HTTP server has stopped and before closing the store.
func (s *Server) Wait() {
	s.bg.Wait()
}

// Engine wires every route.
func (s *Server) Engine() *gin.Engine {
	r := gin.Default()
	r.Use(tracing())
	if s.store != nil {
		r.Use(s.visitorTracking())
	}

	static, err := fs.Sub(assets.StaticFS, "static")
	if err != nil {
		panic(err)
	}
	r.StaticFS("/static", http.FS(static))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "views": s.views.Len()})
	})

	r.GET("/", s.handleIndex)
	r.GET("/hero/typed", s.handleTyped)

	views := r.Group("/views/:id")
	views.POST("/scroll", s.handleScroll)
	views.POST("/nav/:section", s.handleNav)
	views.POST("/menu", s.handleMenu)
	views.POST("/contact", s.handleContact)
	views.POST("/contact/field", s.handleField)
	views.POST("/close", s.handleClose)

	s.setupAdminRoutes(r)
	return r
}

// nodeRender lets gin render gomponents nodes.
type nodeRender struct {
	node g.Node
}

func (r nodeRender) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)
	return r.node.Render(w)
}

func (r nodeRender) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if len(header["Content-Type"]) == 0 {
		header["Content-Type"] = []string{"text/html; charset=utf-8"}
	}
}

func render(c *gin.Context, status int, nodes ...g.Node) {
	c.Render(status, nodeRender{node: g.Group(nodes)})
}
