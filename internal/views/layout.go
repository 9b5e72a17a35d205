// Package views renders the page and its HTMX fragments with gomponents.
package views

import (
	"fmt"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/nav"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"
const htmxSSESrc = "https://unpkg.com/htmx-ext-sse@2.2.2/sse.js"

// PageData is everything the full page renders from.
type PageData struct {
	ViewID  string
	Site    *content.Site
	Nav     nav.State
	Visible func(section string) bool
	Form    contact.Data
	Busy    bool
}

func (p PageData) visible(id string) bool {
	return p.Visible != nil && p.Visible(id)
}

// Page is the whole single-page site for one mounted view.
func Page(p PageData) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:       fmt.Sprintf("%s | %s", p.Site.Owner.Name, p.Site.Hero.Tagline),
		Description: p.Site.Hero.Intro,
		Language:    "en",
		Head: []g.Node{
			Link(Rel("stylesheet"), Href("/static/site.css")),
			Script(Src(htmxSrc)),
			Script(Src(htmxSSESrc)),
			Script(Src("/static/site.js"), Defer()),
		},
		Body: []g.Node{
			Data("view", p.ViewID),
			NavBar(p.ViewID, p.Site.Owner.Brand, p.Nav),
			scrollReporter(p.ViewID),
			Main(
				Hero(p.Site),
				About(p.Site, p.visible("about")),
				Projects(p.Site, p.visible("projects")),
				Skills(p.Site, p.visible("skills")),
				Contact(p.ViewID, p.Site, p.visible("contact"), p.Form, p.Busy),
				Social(p.Site),
			),
			Div(ID("toasts"), Class("toasts"), Role("status"), Aria("live", "polite")),
		},
	})
}

// scrollReporter posts the scroll snapshot on load and on throttled scroll.
// site.js supplies the metrics; the response replaces the nav and swaps in
// newly visible sections out of band.
func scrollReporter(viewID string) g.Node {
	return Div(ID("scroll-reporter"),
		g.Attr("hx-post", "/views/"+viewID+"/scroll"),
		g.Attr("hx-trigger", "load, scroll throttle:100ms from:window, resize throttle:250ms from:window"),
		g.Attr("hx-vals", "js:{...portfolio.metrics()}"),
		g.Attr("hx-target", "#nav"),
		g.Attr("hx-swap", "outerHTML"),
	)
}

// reveal is the class attribute of an animated element: base plus either the
// entrance animation or opacity-0, depending only on the section's latch.
func reveal(base string, visible bool, animation string) g.Node {
	return c.Classes{
		base:        base != "",
		animation:   visible,
		"opacity-0": !visible,
	}
}

// stagger sets an element's animation delay.
func stagger(delay string) g.Node {
	return g.Attr("style", "animation-delay: "+delay)
}
