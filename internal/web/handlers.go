package web

import (
	"encoding/json"
	"errors"
	"html"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	g "maragu.dev/gomponents"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/pageview"
	"github.com/Zachkp/portfolio/internal/scroll"
	"github.com/Zachkp/portfolio/internal/telemetry"
	"github.com/Zachkp/portfolio/internal/typewriter"
	"github.com/Zachkp/portfolio/internal/views"
)

// scrollReport is what site.js posts. From a form, layout is a JSON object of
// {id: {top, height}} sent as a string so it survives form encoding; JSON
// bodies may send the object itself or the same string.
type scrollReport struct {
	ScrollY        float64         `form:"scrollY" json:"scrollY"`
	ViewportHeight float64         `form:"viewportHeight" json:"viewportHeight"`
	Layout         json.RawMessage `form:"-" json:"layout"`
	LayoutText     string          `form:"layout" json:"-"`
}

func (r scrollReport) snapshot() (scroll.Snapshot, error) {
	snap := scroll.Snapshot{ScrollY: r.ScrollY, ViewportHeight: r.ViewportHeight}
	raw := []byte(r.LayoutText)
	if len(r.Layout) > 0 {
		raw = r.Layout
		if raw[0] == '"' {
			var text string
			if err := json.Unmarshal(raw, &text); err != nil {
				return snap, err
			}
			raw = []byte(text)
		}
	}
	if len(raw) == 0 || string(raw) == "null" {
		return snap, nil
	}
	if err := json.Unmarshal(raw, &snap.Layout); err != nil {
		return snap, err
	}
	return snap, nil
}

func (s *Server) pageData(v *pageview.View) views.PageData {
	return views.PageData{
		ViewID:  v.ID,
		Site:    s.site,
		Nav:     v.Nav.State(),
		Visible: v.Visible.Visible,
		Form:    v.Form.Data(),
		Busy:    v.Form.Submitting(),
	}
}

// view loads the page view named in the path. Unknown views (expired or
// closed) tell htmx to reload the page, which mounts a fresh one.
func (s *Server) view(c *gin.Context) (*pageview.View, bool) {
	v, err := s.views.Get(c.Param("id"))
	if errors.Is(err, pageview.ErrNotFound) {
		c.Header("HX-Refresh", "true")
		c.Status(http.StatusGone)
		return nil, false
	}
	return v, true
}

func (s *Server) handleIndex(c *gin.Context) {
	v := s.views.Open(c.GetHeader("DNT") != "1")
	c.Header("Cache-Control", "no-store")
	render(c, http.StatusOK, views.Page(s.pageData(v)))
}

func (s *Server) handleScroll(c *gin.Context) {
	v, ok := s.view(c)
	if !ok {
		return
	}
	var rep scrollReport
	if err := c.ShouldBind(&rep); err != nil {
		c.String(http.StatusBadRequest, "invalid scroll report")
		return
	}
	snap, err := rep.snapshot()
	if err != nil {
		c.String(http.StatusBadRequest, "invalid layout")
		return
	}

	_, span := telemetry.Tracer().Start(c.Request.Context(), "view.scroll")
	latched := v.Scroll(snap)
	span.SetAttributes(
		attribute.String("view.active", v.Nav.Active()),
		attribute.Int("view.latched", len(latched)),
	)
	span.End()

	p := s.pageData(v)
	nodes := []g.Node{views.NavBar(v.ID, s.site.Owner.Brand, p.Nav)}
	for _, id := range latched {
		if n, ok := views.Animated(id, p); ok {
			nodes = append(nodes, n)
		}
	}
	render(c, http.StatusOK, nodes...)
}

func (s *Server) handleNav(c *gin.Context) {
	v, ok := s.view(c)
	if !ok {
		return
	}
	section := c.Param("section")
	if !s.site.HasSection(section) || !v.Nav.Select(section) {
		c.String(http.StatusNotFound, "unknown section")
		return
	}
	render(c, http.StatusOK, views.NavBar(v.ID, s.site.Owner.Brand, v.Nav.State()))
}

func (s *Server) handleMenu(c *gin.Context) {
	v, ok := s.view(c)
	if !ok {
		return
	}
	v.Nav.ToggleMenu()
	render(c, http.StatusOK, views.NavBar(v.ID, s.site.Owner.Brand, v.Nav.State()))
}

// handleContact runs the simulated submission. Fragments are always returned
// with 200 so htmx swaps them, the same way success and error messages are.
func (s *Server) handleContact(c *gin.Context) {
	v, ok := s.view(c)
	if !ok {
		return
	}

	var d contact.Data
	if err := c.ShouldBind(&d); err != nil {
		render(c, http.StatusOK, views.ContactForm(v.ID, d, false, d.Missing()))
		return
	}

	ctx, span := telemetry.Tracer().Start(c.Request.Context(), "contact.submit")
	defer span.End()

	notice, err := s.submitter.Submit(ctx, v.Form, d)
	switch {
	case errors.Is(err, contact.ErrBusy):
		s.renderBusy(c, v)
		return
	case err != nil:
		// The client went away during the delay; nobody is left to answer.
		span.RecordError(err)
		c.Abort()
		return
	}

	log.Printf("Contact form submitted (simulated) from view %s", v.ID)
	render(c, http.StatusOK,
		views.ContactForm(v.ID, v.Form.Data(), false, nil),
		views.Toast(notice),
	)
}

// handleField stores what the visitor has typed so far. The inputs post the
// whole form, so every known field is set.
func (s *Server) handleField(c *gin.Context) {
	v, ok := s.view(c)
	if !ok {
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	for field, values := range c.Request.PostForm {
		if len(values) == 0 {
			continue
		}
		err := v.Form.Set(field, values[0])
		switch {
		case errors.Is(err, contact.ErrUnknownField):
			c.String(http.StatusBadRequest, err.Error())
			return
		case errors.Is(err, contact.ErrBusy):
			c.Status(http.StatusConflict)
			return
		}
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) renderBusy(c *gin.Context, v *pageview.View) {
	render(c, http.StatusOK,
		views.ContactForm(v.ID, v.Form.Data(), true, nil),
		views.ErrorFragment("Your message is still being sent."),
	)
}

func (s *Server) handleClose(c *gin.Context) {
	if err := s.views.Close(c.Param("id")); err != nil && !errors.Is(err, pageview.ErrNotFound) {
		log.Printf("Error closing view: %v", err)
	}
	c.Status(http.StatusNoContent)
}

// handleTyped streams the hero tagline one character at a time, then a
// "done" event that closes the htmx SSE connection.
func (s *Server) handleTyped(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	tw := typewriter.New(s.site.Hero.Tagline, s.cfg.TypeInterval)
	err := tw.Run(c.Request.Context(), func(frame string) error {
		c.SSEvent("frame", html.EscapeString(frame))
		c.Writer.Flush()
		return c.Request.Context().Err()
	})
	if err != nil {
		return
	}
	c.SSEvent("done", "")
	c.Writer.Flush()
}
