// Package nav holds the navigation bar's state: which section is active, whether
// the page has scrolled past the top, and whether the mobile menu is open.
package nav

import (
	"sync"

	"github.com/Zachkp/portfolio/internal/scroll"
)

const (
	// ScrollOffset is added to scrollY before matching so a section becomes
	// active slightly before its top reaches the viewport edge.
	ScrollOffset = 100
	// ScrolledThreshold is the scrollY past which the bar gets its backdrop.
	ScrolledThreshold = 10
)

// Section is a nav entry and scroll target.
type Section struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// Item is a Section as rendered in the bar.
type Item struct {
	Section
	Active bool
}

// Spy tracks the active section from scroll snapshots.
type Spy struct {
	mu       sync.Mutex
	sections []Section
	active   string
	scrolled bool
	menuOpen bool
}

// NewSpy returns a Spy over sections in document order. The first section is
// active until a snapshot or a click says otherwise.
func NewSpy(sections []Section) *Spy {
	s := &Spy{sections: append([]Section(nil), sections...)}
	if len(sections) > 0 {
		s.active = sections[0].ID
	}
	return s
}

// Observe recomputes the active section. Sections missing from the layout are
// skipped; if none contains scrollY+ScrollOffset the previous id stays.
func (s *Spy) Observe(snap scroll.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scrolled = snap.ScrollY > ScrolledThreshold
	if id, ok := match(s.sections, snap); ok {
		s.active = id
	}
}

// match returns the first section in order whose bounds contain the offset
// scroll position. Overlapping bounds resolve to the earlier section.
func match(sections []Section, snap scroll.Snapshot) (string, bool) {
	pos := snap.ScrollY + ScrollOffset
	for _, sec := range sections {
		b, ok := snap.Layout[sec.ID]
		if !ok {
			continue
		}
		if b.Contains(pos) {
			return sec.ID, true
		}
	}
	return "", false
}

// Select makes id active immediately and closes the mobile menu. It reports
// false and changes nothing when id is not a known section.
func (s *Spy) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.has(id) {
		return false
	}
	s.active = id
	s.menuOpen = false
	return true
}

func (s *Spy) has(id string) bool {
	for _, sec := range s.sections {
		if sec.ID == id {
			return true
		}
	}
	return false
}

// ToggleMenu flips the mobile menu and returns the new state.
func (s *Spy) ToggleMenu() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menuOpen = !s.menuOpen
	return s.menuOpen
}

func (s *Spy) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Spy) Scrolled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrolled
}

func (s *Spy) MenuOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menuOpen
}

// Items returns the sections with the active one flagged.
func (s *Spy) Items() []Item {
	return s.State().Items
}

// State is a consistent copy of everything the bar renders from.
type State struct {
	Items    []Item
	Active   string
	Scrolled bool
	MenuOpen bool
}

func (s *Spy) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Item, len(s.sections))
	for i, sec := range s.sections {
		items[i] = Item{Section: sec, Active: sec.ID == s.active}
	}
	return State{Items: items, Active: s.active, Scrolled: s.scrolled, MenuOpen: s.menuOpen}
}
