// Package visibility implements the one-way "has this section been seen"
// latches that drive entrance animations.
package visibility

import "sync/atomic"

// Latch is a boolean that can only go from false to true.
type Latch struct {
	v atomic.Bool
}

// Set flips the latch and reports whether this call was the one that flipped it.
func (l *Latch) Set() bool {
	return l.v.CompareAndSwap(false, true)
}

func (l *Latch) Visible() bool {
	return l.v.Load()
}
