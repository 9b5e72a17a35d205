package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/scroll"
)

var sections = []Section{
	{ID: "home", Label: "Home"},
	{ID: "about", Label: "About"},
	{ID: "projects", Label: "Projects"},
	{ID: "skills", Label: "Skills"},
	{ID: "contact", Label: "Contact"},
}

var layout = map[string]scroll.Bounds{
	"home":     {Top: 0, Height: 800},
	"about":    {Top: 800, Height: 900},
	"projects": {Top: 1700, Height: 1200},
	"skills":   {Top: 2900, Height: 1000},
	"contact":  {Top: 3900, Height: 900},
}

func at(y float64) scroll.Snapshot {
	return scroll.Snapshot{ScrollY: y, ViewportHeight: 800, Layout: layout}
}

func TestSpyStartsOnFirstSection(t *testing.T) {
	s := NewSpy(sections)
	assert.Equal(t, "home", s.Active())
	assert.False(t, s.Scrolled())
}

func TestSpyObserve(t *testing.T) {
	tests := []struct {
		name    string
		scrollY float64
		want    string
	}{
		{"top of page", 0, "home"},
		{"offset reaches about", 700, "about"},
		{"just before about", 699, "home"},
		{"inside projects", 1700 + 50, "projects"},
		{"last pixel of skills", 3799, "skills"},
		{"contact", 3900, "contact"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSpy(sections)
			s.Observe(at(tt.scrollY))
			if got := s.Active(); got != tt.want {
				t.Errorf("Active() after scrollY=%v = %q, want %q", tt.scrollY, got, tt.want)
			}
		})
	}
}

func TestSpyRetainsActiveWhenNothingMatches(t *testing.T) {
	s := NewSpy(sections)
	s.Observe(at(1800))
	require.Equal(t, "projects", s.Active())

	s.Observe(at(10000))
	assert.Equal(t, "projects", s.Active())
}

func TestSpyFirstMatchWinsOnOverlap(t *testing.T) {
	s := NewSpy(sections)
	s.Observe(scroll.Snapshot{ScrollY: 400, Layout: map[string]scroll.Bounds{
		"about":    {Top: 300, Height: 500},
		"projects": {Top: 200, Height: 800},
	}})
	assert.Equal(t, "about", s.Active())
}

func TestSpySkipsMissingSections(t *testing.T) {
	s := NewSpy(sections)
	s.Observe(scroll.Snapshot{ScrollY: 0, Layout: map[string]scroll.Bounds{
		"skills": {Top: 0, Height: 500},
	}})
	assert.Equal(t, "skills", s.Active())
}

func TestSpyScrolled(t *testing.T) {
	s := NewSpy(sections)
	s.Observe(at(10))
	assert.False(t, s.Scrolled())
	s.Observe(at(11))
	assert.True(t, s.Scrolled())
}

func TestSelectOverridesScrollDerivedState(t *testing.T) {
	s := NewSpy(sections)
	s.Observe(at(3000))
	require.Equal(t, "skills", s.Active())

	assert.True(t, s.Select("about"))
	assert.Equal(t, "about", s.Active())
}

func TestSelectUnknownSection(t *testing.T) {
	s := NewSpy(sections)
	assert.False(t, s.Select("blog"))
	assert.Equal(t, "home", s.Active())
}

func TestSelectClosesMenu(t *testing.T) {
	s := NewSpy(sections)
	require.True(t, s.ToggleMenu())
	s.Select("contact")
	assert.False(t, s.MenuOpen())
}

func TestItemsExactlyOneActive(t *testing.T) {
	s := NewSpy(sections)
	for y := 0.0; y < 5000; y += 37 {
		s.Observe(at(y))
		active := 0
		for _, it := range s.Items() {
			if it.Active {
				active++
				assert.Equal(t, s.Active(), it.ID)
			}
		}
		if active != 1 {
			t.Fatalf("Items() at scrollY=%v has %d active entries, want 1", y, active)
		}
	}
}
