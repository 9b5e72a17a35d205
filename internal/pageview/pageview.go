// Package pageview owns the per-tab UI state. Mounting a view wires a scroll
// feed, a nav spy and a visibility tracker together; closing it tears the
// subscriptions down.
package pageview

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/nav"
	"github.com/Zachkp/portfolio/internal/scroll"
	"github.com/Zachkp/portfolio/internal/visibility"
)

// ErrNotFound is returned for ids that were never opened or already closed.
var ErrNotFound = errors.New("page view not found")

// View is one loaded page.
type View struct {
	ID      string
	Nav     *nav.Spy
	Visible *visibility.Tracker
	Form    *contact.Form
	// Track is false for visitors who sent Do Not Track.
	Track bool

	feed    *scroll.Feed
	cancels []func()

	// mu serializes scroll handling; latched is only touched under it.
	mu      sync.Mutex
	latched []string

	seenMu   sync.Mutex
	lastSeen time.Time
}

// Scroll publishes snap to the view's observers and returns the sections that
// became visible because of it, in document order.
func (v *View) Scroll(snap scroll.Snapshot) []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.latched = nil
	v.feed.Publish(snap)
	return v.latched
}

func (v *View) touch(now time.Time) {
	v.seenMu.Lock()
	v.lastSeen = now
	v.seenMu.Unlock()
}

func (v *View) idleSince() time.Time {
	v.seenMu.Lock()
	defer v.seenMu.Unlock()
	return v.lastSeen
}

func (v *View) close() {
	for _, c := range v.cancels {
		c()
	}
	v.Visible.Disconnect()
	v.feed.Close()
}

// Options configure a Registry.
type Options struct {
	Sections  []nav.Section
	Threshold float64
	TTL       time.Duration
	// OnVisible runs once per view and section when the section's latch flips.
	OnVisible func(v *View, section string)
	Now       func() time.Time
}

// Registry holds the open views.
type Registry struct {
	opts  Options
	mu    sync.Mutex
	views map[string]*View
}

func NewRegistry(opts Options) *Registry {
	if opts.Threshold <= 0 {
		opts.Threshold = visibility.DefaultThreshold
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Registry{opts: opts, views: make(map[string]*View)}
}

// Open mounts a new view.
func (r *Registry) Open(track bool) *View {
	v := &View{
		ID:       uuid.NewString(),
		Track:    track,
		Nav:      nav.NewSpy(r.opts.Sections),
		Visible:  visibility.NewTracker(),
		Form:     &contact.Form{},
		feed:     scroll.NewFeed(),
		lastSeen: r.opts.Now(),
	}
	for _, sec := range r.opts.Sections {
		v.Visible.Watch(sec.ID, r.opts.Threshold, r.onVisible(v))
	}

	v.cancels = append(v.cancels, v.feed.Subscribe(v.Nav))

	// The tracker leaves the feed once every section has latched.
	var stopVisible func()
	stopVisible = v.feed.Subscribe(scroll.ObserverFunc(func(snap scroll.Snapshot) {
		v.Visible.Observe(snap)
		if !r.watching(v) {
			stopVisible()
		}
	}))
	v.cancels = append(v.cancels, stopVisible)

	r.mu.Lock()
	r.views[v.ID] = v
	r.mu.Unlock()
	return v
}

func (r *Registry) watching(v *View) bool {
	for _, sec := range r.opts.Sections {
		if v.Visible.Watching(sec.ID) {
			return true
		}
	}
	return false
}

// onVisible runs inside Publish, so v.mu is already held by Scroll.
func (r *Registry) onVisible(v *View) func(string) {
	return func(section string) {
		v.latched = append(v.latched, section)
		if r.opts.OnVisible != nil {
			r.opts.OnVisible(v, section)
		}
	}
}

// Get returns the view and marks it as recently used.
func (r *Registry) Get(id string) (*View, error) {
	r.mu.Lock()
	v, ok := r.views[id]
	r.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	v.touch(r.opts.Now())
	return v, nil
}

// Close unmounts the view.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	v.close()
	return nil
}

// Len returns the number of open views.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Sweep closes views idle for longer than the TTL and returns how many it closed.
func (r *Registry) Sweep() int {
	cutoff := r.opts.Now().Add(-r.opts.TTL)

	r.mu.Lock()
	var stale []*View
	for id, v := range r.views {
		if v.idleSince().Before(cutoff) {
			stale = append(stale, v)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, v := range stale {
		v.close()
	}
	return len(stale)
}

// Run sweeps every interval until ctx is done, then closes every view.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.Printf("Closed %d idle page views", n)
			}
		}
	}
}

func (r *Registry) closeAll() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[string]*View)
	r.mu.Unlock()
	for _, v := range views {
		v.close()
	}
}
