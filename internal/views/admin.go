package views

import (
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"github.com/Zachkp/portfolio/internal/visitors"
)

func plainPage(title string, body ...g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    title,
		Language: "en",
		Head: []g.Node{
			Link(Rel("stylesheet"), Href("/static/site.css")),
			Script(Src(htmxSrc)),
		},
		Body: []g.Node{Main(Class("admin"), g.Group(body))},
	})
}

func LoginPage(errMsg string) g.Node {
	return plainPage("Admin Login",
		H1(g.Text("Admin Login")),
		g.If(errMsg != "", P(Class("error"), Role("alert"), g.Text(errMsg))),
		g.El("form", Method("post"), Action("/admin/login"), Class("card"),
			Label(For("username"), g.Text("Username")),
			Input(ID("username"), Name("username"), Type("text"), Required()),
			Label(For("password"), g.Text("Password")),
			Input(ID("password"), Name("password"), Type("password"), Required()),
			Button(Type("submit"), Class("btn btn-primary"), g.Text("Sign in")),
		),
	)
}

func Dashboard(stats *visitors.Stats) g.Node {
	return plainPage("Admin Dashboard",
		H1(g.Text("Dashboard")),
		Div(Class("admin-actions"),
			A(Href("/admin/export/stats"), g.Text("Export JSON")),
			Button(Type("button"),
				g.Attr("hx-post", "/admin/privacy/cleanup"),
				g.Attr("hx-swap", "none"),
				g.Text("Run privacy cleanup"),
			),
			A(Href("/admin/logout"), g.Text("Log out")),
		),
		Div(Class("stat-grid"),
			stat("Total visits", stats.TotalVisitors),
			stat("Unique visitors", stats.UniqueVisitors),
			stat("Today", stats.VisitorsToday),
			stat("This week", stats.VisitorsThisWeek),
		),
		H2(g.Text("Sections reached")),
		Table(
			THead(Tr(Th(g.Text("Section")), Th(g.Text("Views")))),
			TBody(g.Map(stats.TopSections, func(s visitors.SectionCount) g.Node {
				return Tr(Td(g.Text(s.Section)), Td(g.Textf("%d", s.Views)))
			})),
		),
		H2(g.Text("Recent visitors")),
		Table(
			THead(Tr(Th(g.Text("Visitor")), Th(g.Text("Path")), Th(g.Text("User agent")), Th(g.Text("When")))),
			TBody(g.Map(stats.RecentVisitors, func(v visitors.Visit) g.Node {
				return Tr(
					Td(Code(g.Text(v.HashedIP))),
					Td(g.Text(v.Path)),
					Td(g.Text(v.UserAgent)),
					Td(g.Text(v.Timestamp.Format("2006-01-02 15:04"))),
				)
			})),
		),
	)
}

func stat(label string, n int64) g.Node {
	return Div(Class("card stat"), Strong(g.Textf("%d", n)), Span(g.Text(label)))
}

func ErrorPage(msg string) g.Node {
	return plainPage("Error", H1(g.Text("Something went wrong")), P(Class("error"), g.Text(msg)))
}

// ErrorFragment is swapped into the page when an HTMX request fails.
func ErrorFragment(msg string) g.Node {
	return Div(ID("toasts"), g.Attr("hx-swap-oob", "innerHTML"),
		Div(Class("toast toast-error"), Role("alert"), g.Text(msg)),
	)
}

func PrivacyPage() g.Node {
	return plainPage("Privacy Policy",
		H1(g.Text("Privacy Policy")),
		P(g.Text("This site counts page visits to understand which sections people read. IP addresses are never stored: each one is hashed with a random key that exists only in server memory, and the hash is truncated.")),
		P(g.Text("Requests sent with the Do Not Track header are not counted. Records older than twelve months are deleted automatically.")),
		P(g.Text("Messages sent through the contact form are not stored.")),
	)
}
