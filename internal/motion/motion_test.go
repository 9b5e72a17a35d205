package motion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSkillFill(t *testing.T) {
	tests := []struct {
		category, skill int
		want            time.Duration
	}{
		{0, 0, 500 * time.Millisecond},
		{0, 3, 800 * time.Millisecond},
		{1, 0, 700 * time.Millisecond},
		{3, 3, 1400 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := SkillFill(tt.category, tt.skill); got != tt.want {
			t.Errorf("SkillFill(%d, %d) = %v, want %v", tt.category, tt.skill, got, tt.want)
		}
	}
}

func TestSkillBarHiddenIsEmpty(t *testing.T) {
	assert.Equal(t, Bar{}, SkillBar(false, 2, 1, 90))
	assert.Equal(t, Bar{Width: 90, Delay: 1000 * time.Millisecond}, SkillBar(true, 2, 1, 90))
	assert.Equal(t, 100, SkillBar(true, 0, 0, 140).Width)
}

func TestStagger(t *testing.T) {
	assert.Equal(t, time.Duration(0), Card(0))
	assert.Equal(t, 300*time.Millisecond, Card(3))
	assert.Equal(t, 700*time.Millisecond, Highlight(2))
}

func TestCSS(t *testing.T) {
	assert.Equal(t, "700ms", CSS(700*time.Millisecond))
	assert.Equal(t, "0ms", CSS(0))
	assert.Equal(t, "1500ms", CSS(1500*time.Millisecond))
}
