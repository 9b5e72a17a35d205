// Package scroll is the scroll-position service a page view's observers share.
// The browser reports one Snapshot per throttled scroll event and every
// subscriber (nav spy, visibility tracker) sees the same snapshot.
package scroll

import (
	"sync"
)

// Bounds is a section's offsetTop/offsetHeight pair in document pixels.
type Bounds struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Contains reports whether y falls in [Top, Top+Height).
func (b Bounds) Contains(y float64) bool {
	return y >= b.Top && y < b.Top+b.Height
}

// Snapshot is the viewport position plus the current section layout.
type Snapshot struct {
	ScrollY        float64           `json:"scrollY"`
	ViewportHeight float64           `json:"viewportHeight"`
	Layout         map[string]Bounds `json:"layout"`
}

// Observer receives every snapshot published on a Feed.
type Observer interface {
	Observe(Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Snapshot)

func (f ObserverFunc) Observe(s Snapshot) { f(s) }

// Feed fans snapshots out to subscribers in subscription order.
type Feed struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
	closed bool
}

type subscription struct {
	id int
	o  Observer
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{}
}

// Subscribe registers o and returns the function that removes it. Cancel is
// idempotent. Subscribing to a closed feed returns a no-op cancel.
func (f *Feed) Subscribe(o Observer) (cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return func() {}
	}
	f.nextID++
	id := f.nextID
	f.subs = append(f.subs, subscription{id: id, o: o})

	var once sync.Once
	return func() {
		once.Do(func() { f.remove(id) })
	}
}

func (f *Feed) remove(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.subs {
		if s.id == id {
			f.subs = append(f.subs[:i:i], f.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers s to every current subscriber. Observers may cancel their
// own subscription from inside Observe.
func (f *Feed) Publish(s Snapshot) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	subs := make([]subscription, len(f.subs))
	copy(subs, f.subs)
	f.mu.Unlock()

	for _, sub := range subs {
		sub.o.Observe(s)
	}
}

// Len returns the number of live subscriptions.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Close drops every subscriber; later publishes are ignored.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.subs = nil
}
