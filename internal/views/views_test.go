package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/nav"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func site(t *testing.T) *content.Site {
	t.Helper()
	s, err := content.Default()
	require.NoError(t, err)
	return s
}

func TestNavBarMarksActive(t *testing.T) {
	s := site(t)
	spy := nav.NewSpy(s.Sections)
	spy.Select("skills")

	html := render(t, NavBar("v1", s.Owner.Brand, spy.State()))
	assert.Contains(t, html, `id="nav"`)
	assert.Contains(t, html, `hx-post="/views/v1/nav/skills"`)
	assert.Equal(t, 1, strings.Count(html, `aria-current="true"`))
	assert.Contains(t, html, `class="active nav-link"`)
	assert.NotContains(t, html, "nav-mobile")
}

func TestNavBarMobileMenu(t *testing.T) {
	s := site(t)
	spy := nav.NewSpy(s.Sections)
	spy.ToggleMenu()
	html := render(t, NavBar("v1", s.Owner.Brand, spy.State()))
	assert.Contains(t, html, "nav-mobile")
	assert.Contains(t, html, `aria-expanded="true"`)
}

func TestRevealIsPureFunctionOfLatch(t *testing.T) {
	s := site(t)
	hidden := render(t, Projects(s, false))
	shown := render(t, Projects(s, true))

	assert.Contains(t, hidden, "opacity-0")
	assert.NotContains(t, hidden, "animate-fade-in-up")
	assert.Contains(t, shown, "animate-fade-in-up")
	assert.NotContains(t, shown, "opacity-0")
	assert.Equal(t, shown, render(t, Projects(s, true)))
}

func TestSkillBarsEmptyUntilVisible(t *testing.T) {
	s := site(t)
	hidden := render(t, Skills(s, false))
	assert.NotContains(t, hidden, "width: 95%")
	assert.Contains(t, hidden, "width: 0%; transition-delay: 0ms")

	shown := render(t, Skills(s, true))
	assert.Contains(t, shown, "width: 95%; transition-delay: 500ms")
	assert.Contains(t, shown, "width: 85%; transition-delay: 1400ms")

	// The same id before and after the latch lets the swap settle the width.
	for _, html := range []string{hidden, shown} {
		assert.Contains(t, html, `<div id="skill-0-0" class="bar-fill" style="width: `)
		assert.Contains(t, html, `id="skill-3-0"`)
	}
}

func TestToastReplacesPrevious(t *testing.T) {
	html := render(t, Toast(contact.SentNotice))
	assert.Contains(t, html, `<div id="toasts" hx-swap-oob="innerHTML">`)
	assert.Contains(t, html, "Message sent successfully!")

	assert.Contains(t, render(t, ErrorFragment("busy")), `hx-swap-oob="innerHTML"`)
}

func TestOutboundLinks(t *testing.T) {
	html := render(t, Social(site(t)))
	assert.Contains(t, html, `href="https://github.com" target="_blank" rel="noopener noreferrer"`)
	assert.NotContains(t, html, `href="mailto:alex.chen@example.com" target`)
}

func TestContactFormStates(t *testing.T) {
	idle := render(t, ContactForm("v1", contact.Data{Name: "A"}, false, nil))
	assert.Contains(t, idle, `hx-post="/views/v1/contact"`)
	assert.Contains(t, idle, `value="A"`)
	assert.Contains(t, idle, "Send Message")
	assert.NotContains(t, idle, "disabled>")
	assert.Equal(t, 4, strings.Count(idle, `hx-post="/views/v1/contact/field"`))

	busy := render(t, ContactForm("v1", contact.Data{}, true, []string{"email"}))
	assert.Contains(t, busy, "disabled>Sending...")
	assert.Contains(t, busy, "field-invalid")
}

func TestAnimated(t *testing.T) {
	s := site(t)
	p := PageData{ViewID: "v1", Site: s, Visible: func(string) bool { return true }}

	n, ok := Animated("about", p)
	require.True(t, ok)
	assert.Contains(t, render(t, n), `hx-swap-oob="true"`)

	_, ok = Animated("home", p)
	assert.False(t, ok)
}

func TestPage(t *testing.T) {
	s := site(t)
	spy := nav.NewSpy(s.Sections)
	html := render(t, Page(PageData{ViewID: "v1", Site: s, Nav: spy.State()}))

	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	for _, id := range []string{"home", "about", "projects", "skills", "contact", "social", "toasts", "scroll-reporter"} {
		assert.Contains(t, html, `id="`+id+`"`)
	}
	assert.Contains(t, html, `data-view="v1"`)
	assert.Contains(t, html, "Alex Chen")
}
