// Package motion computes the staggered delays the entrance animations use.
package motion

import (
	"fmt"
	"time"
)

const (
	// CardStep separates consecutive cards in a grid.
	CardStep = 100 * time.Millisecond
	// HighlightBase delays the about highlights behind the intro copy.
	HighlightBase = 500 * time.Millisecond

	// SkillBase is the pause after the skills section latches before any bar fills.
	SkillBase = 500 * time.Millisecond
	// SkillCategoryStep separates skill categories.
	SkillCategoryStep = 200 * time.Millisecond
	// SkillStep separates skills within a category.
	SkillStep = 100 * time.Millisecond
)

// Card is the delay for the index-th card.
func Card(index int) time.Duration {
	return time.Duration(index) * CardStep
}

// Highlight is the delay for the index-th about highlight.
func Highlight(index int) time.Duration {
	return HighlightBase + time.Duration(index)*CardStep
}

// SkillFill is when bar (category, skill) starts filling after the latch.
func SkillFill(category, skill int) time.Duration {
	return SkillBase + time.Duration(category)*SkillCategoryStep + time.Duration(skill)*SkillStep
}

// Bar is one progress bar's rendered state.
type Bar struct {
	Width int
	Delay time.Duration
}

// SkillBar returns the bar for (category, skill) at level. Before the section
// is visible every bar is empty.
func SkillBar(visible bool, category, skill, level int) Bar {
	if !visible {
		return Bar{}
	}
	return Bar{Width: clampPercent(level), Delay: SkillFill(category, skill)}
}

func clampPercent(v int) int {
	return min(max(v, 0), 100)
}

// CSS formats d as a CSS time value in whole milliseconds, e.g. "700ms".
func CSS(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}
