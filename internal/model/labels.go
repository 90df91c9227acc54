package model

import (
	"fmt"
	"strings"
)

// AlignmentLabel describes an alignment score in words.
func AlignmentLabel(score int) string {
	switch {
	case score >= 85:
		return "Fully Aligned"
	case score >= 70:
		return "Mostly Aligned"
	case score >= 50:
		return "Mixed / In Progress"
	case score >= 30:
		return "Off Track / Draining"
	default:
		return "Silencing Myself"
	}
}

// ProgressSections is the number of sections counted by Progress.
const ProgressSections = 4

// Progress counts filled sections: reflection, expression, relationships
// and the decision prompt. Whitespace-only text does not count.
func (r MonthRecord) Progress() int {
	filled := 0
	for _, s := range []string{r.Reflection, r.Expression, r.Relationships, r.Decision.Prompt} {
		if strings.TrimSpace(s) != "" {
			filled++
		}
	}
	return filled
}

// ProgressSummary renders Progress as "n/4 sections filled".
func (r MonthRecord) ProgressSummary() string {
	return fmt.Sprintf("%d/%d sections filled", r.Progress(), ProgressSections)
}
