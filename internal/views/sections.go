package views

import (
	"fmt"
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/motion"
)

// Hero is the landing banner. It animates on load rather than on entry. The
// tagline types itself out over SSE; the full text is in its aria-label.
func Hero(site *content.Site) g.Node {
	h := site.Hero
	return Section(ID("home"), Class("hero"),
		Div(Class("hero-inner animate-fade-in-up"),
			Div(Class("avatar"), g.Text(site.Owner.Initials)),
			H1(Class("hero-name"), g.Text(site.Owner.Name)),
			P(Class("hero-tagline"), Aria("label", h.Tagline),
				Span(ID("typed"),
					g.Attr("hx-ext", "sse"),
					g.Attr("sse-connect", "/hero/typed"),
					g.Attr("sse-swap", "frame"),
					g.Attr("sse-close", "done"),
				),
				Span(Class("caret"), g.Text("|")),
			),
			P(Class("hero-intro"), g.Text(h.Intro)),
			Div(Class("hero-actions"),
				jumpButton(h.Primary, "btn btn-primary"),
				jumpButton(h.Secondary, "btn btn-outline"),
			),
			Div(Class("hero-links"),
				g.Map(h.Links, func(l content.Link) g.Node { return outbound(l, "icon-link", g.Text(l.Name)) }),
			),
		),
		Button(Class("scroll-indicator"), Type("button"), Data("scroll-to", "about"), Aria("label", "Scroll to about"), g.Text("↓")),
	)
}

func jumpButton(j content.Jump, class string) g.Node {
	return Button(Class(class), Type("button"), Data("scroll-to", j.Target), g.Text(j.Label))
}

// outbound renders a link that leaves the page. External sites open in a new
// browsing context without an opener; mailto:/tel: stay in this one.
func outbound(l content.Link, class string, children ...g.Node) g.Node {
	return A(Class(class), Href(l.Href),
		g.If(l.External(), g.Group{Target("_blank"), Rel("noopener noreferrer")}),
		Aria("label", l.Name),
		g.Group(children),
	)
}

func About(site *content.Site, visible bool, attrs ...g.Node) g.Node {
	a := site.About
	highlights := make([]g.Node, 0, len(a.Highlights))
	for i, h := range a.Highlights {
		highlights = append(highlights, Div(
			reveal("card highlight", visible, "animate-fade-in-up"),
			stagger(motion.CSS(motion.Highlight(i))),
			H3(g.Text(h.Title)),
			P(g.Text(h.Description)),
		))
	}
	return Section(ID("about"), Class("section"), g.Group(attrs),
		H2(reveal("section-title", visible, "animate-fade-in-up"), g.Text(a.Title)),
		Div(Class("about-grid"),
			Div(reveal("about-copy", visible, "animate-slide-in-left"),
				g.Map(a.Paragraphs, func(p string) g.Node { return P(g.Text(p)) }),
			),
			Div(Class("highlights"), g.Group(highlights)),
		),
	)
}

func Projects(site *content.Site, visible bool, attrs ...g.Node) g.Node {
	ps := site.Projects
	cards := make([]g.Node, 0, len(ps.Items))
	for i, p := range ps.Items {
		cards = append(cards, projectCard(p, i, visible))
	}
	return Section(ID("projects"), Class("section"), g.Group(attrs),
		H2(reveal("section-title", visible, "animate-fade-in-up"), g.Text(ps.Title)),
		P(Class("section-intro"), g.Text(ps.Intro)),
		Div(Class("project-grid"), g.Group(cards)),
	)
}

func projectCard(p content.Project, index int, visible bool) g.Node {
	base := "card project"
	if p.Featured {
		base += " project-featured"
	}
	return Div(reveal(base, visible, "animate-fade-in-up"),
		stagger(motion.CSS(motion.Card(index))),
		Div(Class("project-overlay"),
			g.If(p.GithubURL != "", outbound(content.Link{Name: p.Title + " source", Href: p.GithubURL}, "btn btn-small", g.Text("Code"))),
			g.If(p.AppStoreURL != "", outbound(content.Link{Name: p.Title + " on the App Store", Href: p.AppStoreURL}, "btn btn-small", g.Text("App Store"))),
		),
		g.If(p.Featured, Span(Class("badge badge-featured"), g.Text("Featured"))),
		H3(g.Text(p.Title)),
		P(g.Text(p.Description)),
		Ul(Class("tech"),
			g.Map(p.Technologies, func(t string) g.Node { return Li(Class("badge"), g.Text(t)) }),
		),
	)
}

// Skills renders the category cards. Bars stay at 0% until the section has
// been seen, then fill to their level on the staggered schedule. Each fill
// keeps a stable id so the out-of-band swap settles its width from 0% and the
// transition runs.
func Skills(site *content.Site, visible bool, attrs ...g.Node) g.Node {
	sk := site.Skills
	cards := make([]g.Node, 0, len(sk.Categories))
	for ci, cat := range sk.Categories {
		bars := make([]g.Node, 0, len(cat.Skills))
		for si, s := range cat.Skills {
			bar := motion.SkillBar(visible, ci, si, s.Level)
			bars = append(bars, Div(Class("skill"),
				Div(Class("skill-head"),
					Span(g.Text(s.Name)),
					Span(Class("skill-level"), g.Textf("%d%%", s.Level)),
				),
				Div(Class("bar"), Role("progressbar"),
					Aria("valuemin", "0"), Aria("valuemax", "100"), Aria("valuenow", strconv.Itoa(bar.Width)),
					Div(ID(fmt.Sprintf("skill-%d-%d", ci, si)), Class("bar-fill"),
						g.Attr("style", "width: "+strconv.Itoa(bar.Width)+"%; transition-delay: "+motion.CSS(bar.Delay)),
					),
				),
			))
		}
		cards = append(cards, Div(reveal("card skill-card", visible, "animate-fade-in-up"),
			stagger(motion.CSS(motion.Card(ci))),
			H3(g.Text(cat.Title)),
			g.Group(bars),
		))
	}

	tools := make([]g.Node, 0, len(sk.Tools))
	for i, t := range sk.Tools {
		tools = append(tools, Span(reveal("badge", visible, "animate-fade-in"),
			stagger(motion.CSS(motion.Card(i)/2)),
			g.Text(t),
		))
	}

	return Section(ID("skills"), Class("section"), g.Group(attrs),
		H2(reveal("section-title", visible, "animate-fade-in-up"), g.Text(sk.Title)),
		P(Class("section-intro"), g.Text(sk.Intro)),
		Div(Class("skill-grid"), g.Group(cards)),
		Div(Class("skill-extras"),
			Div(reveal("card", visible, "animate-slide-in-left delay-300"),
				H3(g.Text("Tools & Technologies")),
				Div(Class("badges"), g.Group(tools)),
			),
			Div(reveal("card", visible, "animate-slide-in-right delay-300"),
				H3(g.Text("Certifications")),
				Ul(g.Map(sk.Certifications, func(c string) g.Node { return Li(g.Text(c)) })),
			),
		),
	)
}

func Social(site *content.Site) g.Node {
	s := site.Social
	return Section(ID("social"), Class("section social"),
		H2(Class("section-title"), g.Text(s.Title)),
		P(Class("section-intro"), g.Text(s.Intro)),
		Div(Class("social-grid"),
			g.Map(s.Links, func(l content.Link) g.Node {
				return outbound(l, "card social-link",
					H3(g.Text(l.Name)),
					P(g.Text(l.Description)),
				)
			}),
		),
		Button(Class("btn btn-primary"), Type("button"), Data("scroll-to", "contact"), g.Text(s.CTA)),
	)
}

// Animated returns the markup of a latched section for an out-of-band swap.
// It reports false for sections that do not animate on entry.
func Animated(id string, p PageData) (g.Node, bool) {
	visible := p.visible(id)
	oob := g.Attr("hx-swap-oob", "true")
	switch id {
	case "about":
		return About(p.Site, visible, oob), true
	case "projects":
		return Projects(p.Site, visible, oob), true
	case "skills":
		return Skills(p.Site, visible, oob), true
	case "contact":
		return Contact(p.ViewID, p.Site, visible, p.Form, p.Busy, oob), true
	}
	return nil, false
}
