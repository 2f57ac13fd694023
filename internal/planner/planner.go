// Package planner assigns selected recipes to the days of a week.
package planner

import "pantrychef/internal/catalog"

// Days are the seven slot labels of a weekly plan, Monday first.
var Days = [7]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// DayPlan is the assignment for a single day. Recipe is nil for an
// unassigned slot.
type DayPlan struct {
	Day    string          `json:"day"`
	Recipe *catalog.Recipe `json:"recipe,omitempty"`
}

// Week is an ordered weekly plan, one entry per day label.
type Week struct {
	Plan []DayPlan `json:"plan"`
}

// PlanWeek assigns the selected recipes to Monday..Sunday in order. The
// policy is truncation on both sides: with fewer than seven recipes the
// remaining days stay unassigned rather than repeating a recipe, and with
// more than seven only the first seven are scheduled.
func PlanWeek(selected []catalog.Recipe) Week {
	week := Week{Plan: make([]DayPlan, len(Days))}
	for i, day := range Days {
		week.Plan[i] = DayPlan{Day: day}
		if i < len(selected) {
			rec := selected[i]
			week.Plan[i].Recipe = &rec
		}
	}
	return week
}

// Assigned counts the days that have a recipe.
func (w Week) Assigned() int {
	n := 0
	for _, dp := range w.Plan {
		if dp.Recipe != nil {
			n++
		}
	}
	return n
}
