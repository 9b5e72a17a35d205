package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundsContains(t *testing.T) {
	b := Bounds{Top: 100, Height: 50}
	tests := []struct {
		y    float64
		want bool
	}{
		{99, false},
		{100, true},
		{149.5, true},
		{150, false},
	}
	for _, tt := range tests {
		if got := b.Contains(tt.y); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.y, got, tt.want)
		}
	}
}

func TestFeedPublishOrder(t *testing.T) {
	f := NewFeed()
	var got []string
	f.Subscribe(ObserverFunc(func(Snapshot) { got = append(got, "a") }))
	f.Subscribe(ObserverFunc(func(Snapshot) { got = append(got, "b") }))

	f.Publish(Snapshot{ScrollY: 1})
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestFeedCancelFromObserver(t *testing.T) {
	f := NewFeed()
	calls := 0
	var cancel func()
	cancel = f.Subscribe(ObserverFunc(func(Snapshot) {
		calls++
		cancel()
	}))

	f.Publish(Snapshot{})
	f.Publish(Snapshot{})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, f.Len())

	cancel()
}

func TestFeedClose(t *testing.T) {
	f := NewFeed()
	calls := 0
	f.Subscribe(ObserverFunc(func(Snapshot) { calls++ }))
	f.Close()
	f.Publish(Snapshot{})
	assert.Zero(t, calls)

	cancel := f.Subscribe(ObserverFunc(func(Snapshot) { calls++ }))
	cancel()
	assert.Zero(t, f.Len())
}
