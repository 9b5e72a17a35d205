package pageview

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/nav"
	"github.com/Zachkp/portfolio/internal/scroll"
)

var sections = []nav.Section{
	{ID: "home", Label: "Home"},
	{ID: "about", Label: "About"},
	{ID: "projects", Label: "Projects"},
}

var layout = map[string]scroll.Bounds{
	"home":     {Top: 0, Height: 800},
	"about":    {Top: 800, Height: 800},
	"projects": {Top: 1600, Height: 1600},
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestOpenWiresObservers(t *testing.T) {
	r := NewRegistry(Options{Sections: sections})
	v := r.Open(true)

	assert.NotEmpty(t, v.ID)
	assert.Equal(t, "home", v.Nav.Active())
	assert.Equal(t, 2, v.feed.Len())
	for _, s := range sections {
		assert.True(t, v.Visible.Watching(s.ID), s.ID)
	}
}

func TestScrollDrivesNavAndLatches(t *testing.T) {
	type seen struct{ view, section string }
	var got []seen
	r := NewRegistry(Options{
		Sections:  sections,
		OnVisible: func(v *View, section string) { got = append(got, seen{v.ID, section}) },
	})
	v := r.Open(true)

	latched := v.Scroll(scroll.Snapshot{ScrollY: 0, ViewportHeight: 900, Layout: layout})
	assert.Equal(t, []string{"home", "about"}, latched)
	assert.Equal(t, "home", v.Nav.Active())
	assert.Equal(t, 2, v.feed.Len())

	latched = v.Scroll(scroll.Snapshot{ScrollY: 1600, ViewportHeight: 900, Layout: layout})
	assert.Equal(t, []string{"projects"}, latched)
	assert.Equal(t, "projects", v.Nav.Active())
	// Every section has latched, so only the nav spy is still listening.
	assert.Equal(t, 1, v.feed.Len())

	latched = v.Scroll(scroll.Snapshot{ScrollY: 0, ViewportHeight: 900, Layout: layout})
	assert.Empty(t, latched)
	assert.Equal(t, "home", v.Nav.Active())
	assert.True(t, v.Visible.Visible("projects"))

	assert.Equal(t, []seen{{v.ID, "home"}, {v.ID, "about"}, {v.ID, "projects"}}, got)
}

func TestCloseTearsDown(t *testing.T) {
	r := NewRegistry(Options{Sections: sections})
	v := r.Open(true)
	require.NoError(t, r.Close(v.ID))

	assert.Zero(t, v.feed.Len())
	assert.False(t, v.Visible.Watching("home"))

	_, err := r.Get(v.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, r.Close(v.ID), ErrNotFound)
}

func TestSweepClosesIdleViews(t *testing.T) {
	c := &clock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(Options{Sections: sections, TTL: time.Minute, Now: c.Now})

	idle := r.Open(true)
	busy := r.Open(true)

	c.Advance(50 * time.Second)
	_, err := r.Get(busy.ID)
	require.NoError(t, err)

	c.Advance(20 * time.Second)
	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())

	_, err = r.Get(idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunClosesEverythingOnCancel(t *testing.T) {
	r := NewRegistry(Options{Sections: sections})
	v := r.Open(true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Hour)
		close(done)
	}()
	cancel()
	<-done

	assert.Zero(t, r.Len())
	assert.Zero(t, v.feed.Len())
}
