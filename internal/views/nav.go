package views

import (
	"fmt"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"github.com/Zachkp/portfolio/internal/motion"
	"github.com/Zachkp/portfolio/internal/nav"
)

// NavBar renders the fixed navigation bar. Every button both posts the click
// (so the entry turns active at once) and asks site.js to smooth-scroll.
func NavBar(viewID, brand string, st nav.State) g.Node {
	return Nav(ID("nav"),
		c.Classes{"navbar": true, "navbar-scrolled": st.Scrolled},
		Div(Class("navbar-inner"),
			Button(Class("brand"), Type("button"),
				navClick(viewID, "home"),
				g.Text(brand),
			),
			Div(Class("nav-desktop"),
				g.Map(st.Items, func(it nav.Item) g.Node {
					return navButton(viewID, it, "nav-link")
				}),
			),
			Button(Class("nav-toggle"), Type("button"),
				Aria("expanded", fmt.Sprint(st.MenuOpen)),
				Aria("label", "Toggle menu"),
				g.Attr("hx-post", "/views/"+viewID+"/menu"),
				g.Attr("hx-target", "#nav"),
				g.Attr("hx-swap", "outerHTML"),
				g.If(st.MenuOpen, g.Text("✕")),
				g.If(!st.MenuOpen, g.Text("☰")),
			),
		),
		g.If(st.MenuOpen, mobileMenu(viewID, st.Items)),
	)
}

func mobileMenu(viewID string, items []nav.Item) g.Node {
	nodes := make([]g.Node, 0, len(items))
	for i, it := range items {
		nodes = append(nodes, Div(Class("animate-slide-in-down"),
			stagger(motion.CSS(motion.Card(i))),
			navButton(viewID, it, "nav-link-mobile"),
		))
	}
	return Div(Class("nav-mobile"), g.Group(nodes))
}

func navButton(viewID string, it nav.Item, class string) g.Node {
	return Button(Type("button"),
		c.Classes{class: true, "active": it.Active},
		g.If(it.Active, Aria("current", "true")),
		navClick(viewID, it.ID),
		g.Text(it.Label),
		g.If(it.Active, Span(Class("nav-indicator"))),
	)
}

func navClick(viewID, section string) g.Node {
	return g.Group{
		Data("scroll-to", section),
		g.Attr("hx-post", "/views/"+viewID+"/nav/"+section),
		g.Attr("hx-target", "#nav"),
		g.Attr("hx-swap", "outerHTML"),
	}
}
