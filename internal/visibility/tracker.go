package visibility

import (
	"cmp"
	"slices"
	"sync"

	"github.com/Zachkp/portfolio/internal/scroll"
)

// DefaultThreshold is the fraction of a section that must be on screen.
const DefaultThreshold = 0.1

// Tracker owns one latch per watched section and evaluates them against
// snapshots from a shared scroll feed.
type Tracker struct {
	mu       sync.Mutex
	latches  map[string]*Latch
	watchers map[string]*watcher
	seq      int
}

type watcher struct {
	order     int
	threshold float64
	onVisible func(id string)
}

func NewTracker() *Tracker {
	return &Tracker{
		latches:  make(map[string]*Latch),
		watchers: make(map[string]*watcher),
	}
}

// Watch starts watching id. onVisible, if non-nil, runs once when the latch
// flips. Watching an id that already latched is a no-op.
func (t *Tracker) Watch(id string, threshold float64, onVisible func(id string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	l := t.latch(id)
	if l.Visible() {
		return
	}
	t.seq++
	t.watchers[id] = &watcher{order: t.seq, threshold: threshold, onVisible: onVisible}
}

func (t *Tracker) latch(id string) *Latch {
	l, ok := t.latches[id]
	if !ok {
		l = &Latch{}
		t.latches[id] = l
	}
	return l
}

// Observe latches every watched section that meets its threshold in snap and
// disconnects its watcher. Callbacks run after the tracker's lock is released.
func (t *Tracker) Observe(snap scroll.Snapshot) {
	t.ObserveLatched(snap)
}

// ObserveLatched is Observe returning the ids latched by this snapshot, in
// the order they were watched.
func (t *Tracker) ObserveLatched(snap scroll.Snapshot) []string {
	type fired struct {
		order int
		id    string
		fn    func(string)
	}
	var done []fired

	t.mu.Lock()
	for id, w := range t.watchers {
		b, ok := snap.Layout[id]
		if !ok {
			continue
		}
		if !Intersects(b, snap.ScrollY, snap.ViewportHeight, w.threshold) {
			continue
		}
		if t.latch(id).Set() {
			done = append(done, fired{order: w.order, id: id, fn: w.onVisible})
		}
		delete(t.watchers, id)
	}
	t.mu.Unlock()

	slices.SortFunc(done, func(a, b fired) int { return cmp.Compare(a.order, b.order) })
	ids := make([]string, 0, len(done))
	for _, f := range done {
		ids = append(ids, f.id)
		if f.fn != nil {
			f.fn(f.id)
		}
	}
	return ids
}

// Visible reports the latch for id; unknown ids are not visible.
func (t *Tracker) Visible(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.latches[id]
	return ok && l.Visible()
}

// Watching reports whether id still has a connected watcher.
func (t *Tracker) Watching(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.watchers[id]
	return ok
}

// Disconnect drops every watcher. Latches keep their values.
func (t *Tracker) Disconnect() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.watchers)
}

// Ratio is the fraction of b inside the viewport [scrollY, scrollY+viewport).
func Ratio(b scroll.Bounds, scrollY, viewport float64) float64 {
	if b.Height <= 0 {
		if b.Top >= scrollY && b.Top < scrollY+viewport {
			return 1
		}
		return 0
	}
	top := max(b.Top, scrollY)
	bottom := min(b.Top+b.Height, scrollY+viewport)
	if bottom <= top {
		return 0
	}
	return (bottom - top) / b.Height
}

// Intersects applies the intersection-observer rule: some part of b is on
// screen and at least threshold of it is.
func Intersects(b scroll.Bounds, scrollY, viewport, threshold float64) bool {
	r := Ratio(b, scrollY, viewport)
	return r > 0 && r >= threshold
}
