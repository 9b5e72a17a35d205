package views

import (
	"slices"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
)

func Contact(viewID string, site *content.Site, visible bool, form contact.Data, busy bool, attrs ...g.Node) g.Node {
	ct := site.Contact
	return Section(ID("contact"), Class("section"), g.Group(attrs),
		H2(reveal("section-title", visible, "animate-fade-in-up"), g.Text(ct.Title)),
		P(Class("section-intro"), g.Text(ct.Intro)),
		Div(Class("contact-grid"),
			Div(reveal("card", visible, "animate-slide-in-left"),
				H3(g.Text("Send Message")),
				ContactForm(viewID, form, busy, nil),
			),
			Div(reveal("contact-side", visible, "animate-slide-in-right"),
				Ul(Class("contact-info"),
					g.Map(ct.Info, func(i content.Info) g.Node {
						return Li(
							Span(Class("contact-label"), g.Text(i.Label)),
							g.If(i.Href != "", A(Href(i.Href), g.Text(i.Value))),
							g.If(i.Href == "", Span(g.Text(i.Value))),
						)
					}),
				),
				Div(Class("contact-links"),
					g.Map(ct.Links, func(l content.Link) g.Node { return outbound(l, "icon-link", g.Text(l.Name)) }),
				),
			),
		),
	)
}

// ContactForm is the form fragment the submit handler swaps back in. Invalid
// lists the fields a request arrived without.
func ContactForm(viewID string, d contact.Data, busy bool, invalid []string) g.Node {
	return g.El("form", ID("contact-form"), Class("contact-form"),
		g.Attr("hx-post", "/views/"+viewID+"/contact"),
		g.Attr("hx-target", "this"),
		g.Attr("hx-swap", "outerHTML"),
		g.Attr("hx-disabled-elt", "find button[type=submit]"),
		Div(Class("form-row"),
			field(viewID, "name", "Name", "text", "Your full name", d.Name, invalid),
			field(viewID, "email", "Email", "email", "your.email@example.com", d.Email, invalid),
		),
		field(viewID, "subject", "Subject", "text", "What's this about?", d.Subject, invalid),
		Div(c.Classes{"field": true, "field-invalid": slices.Contains(invalid, "message")},
			Label(For("message"), g.Text("Message")),
			Textarea(ID("message"), Name("message"), Rows("6"), Required(),
				Placeholder("Tell me about your project..."),
				syncField(viewID),
				g.Text(d.Message),
			),
		),
		Button(Type("submit"), Class("btn btn-primary btn-block"),
			g.If(busy, Disabled()),
			g.If(busy, g.Text("Sending...")),
			g.If(!busy, g.Text("Send Message")),
		),
	)
}

func field(viewID, name, label, typ, placeholder, value string, invalid []string) g.Node {
	return Div(c.Classes{"field": true, "field-invalid": slices.Contains(invalid, name)},
		Label(For(name), g.Text(label)),
		Input(ID(name), Name(name), Type(typ), Placeholder(placeholder), Value(value), Required(),
			syncField(viewID),
		),
	)
}

// syncField posts the form's values as the visitor types so the view's copy
// survives a re-render.
func syncField(viewID string) g.Node {
	return g.Group{
		g.Attr("hx-post", "/views/"+viewID+"/contact/field"),
		g.Attr("hx-trigger", "input changed delay:300ms"),
		g.Attr("hx-swap", "none"),
	}
}

// Toast replaces whatever notification the toast region shows, out of band.
func Toast(n contact.Notice) g.Node {
	return Div(ID("toasts"), g.Attr("hx-swap-oob", "innerHTML"),
		Div(Class("toast animate-slide-in-up"), Role("alert"),
			Strong(g.Text(n.Title)),
			P(g.Text(n.Description)),
		),
	)
}
