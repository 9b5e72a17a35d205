// Package typewriter reveals a line of text one character at a time.
package typewriter

import (
	"context"
	"time"
)

// DefaultInterval is the delay between characters.
const DefaultInterval = 100 * time.Millisecond

type Typewriter struct {
	Text     string
	Interval time.Duration
}

func New(text string, interval time.Duration) *Typewriter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Typewriter{Text: text, Interval: interval}
}

// Frames returns every non-empty prefix of Text, one rune longer each time.
func (t *Typewriter) Frames() []string {
	runes := []rune(t.Text)
	frames := make([]string, 0, len(runes))
	for i := 1; i <= len(runes); i++ {
		frames = append(frames, string(runes[:i]))
	}
	return frames
}

// Run emits each frame one interval apart, the first after one interval. It
// returns nil once the full text has been emitted, ctx's error on
// cancellation, or the first error emit returns.
func (t *Typewriter) Run(ctx context.Context, emit func(frame string) error) error {
	frames := t.Frames()
	if len(frames) == 0 {
		return nil
	}
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	for _, f := range frames {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := emit(f); err != nil {
			return err
		}
	}
	return nil
}
