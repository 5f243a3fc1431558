package app

import (
	"strings"

	"taskman/internal/service"
)

// Filter narrows the snapshot. Empty fields impose no constraint.
type Filter struct {
	// Text matches a case-insensitive substring of the title or description.
	Text string

	// Status matches the task status exactly, ignoring case.
	Status string

	// Deadline is a calendar date (YYYY-MM-DD) matched against the deadline's date portion.
	Deadline string

	// StorageType matches the storage partition exactly.
	StorageType string
}

// IsZero reports whether f imposes no constraint.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Apply returns the tasks matching every set field of f, in snapshot order.
// The snapshot is not modified.
func Apply(snapshot []service.Task, f Filter) []service.Task {
	text := strings.ToLower(f.Text)
	result := make([]service.Task, 0, len(snapshot))
	for _, task := range snapshot {
		if text != "" && !matchesText(task, text) {
			continue
		}
		if f.Status != "" && !strings.EqualFold(task.Status, f.Status) {
			continue
		}
		if f.Deadline != "" && DatePart(task.DeadlineText()) != f.Deadline {
			continue
		}
		if f.StorageType != "" && task.StorageType != f.StorageType {
			continue
		}
		result = append(result, task)
	}
	return result
}

func matchesText(task service.Task, lowered string) bool {
	if strings.Contains(strings.ToLower(task.Title), lowered) {
		return true
	}
	return strings.Contains(strings.ToLower(task.DescriptionText()), lowered)
}

// DatePart returns the calendar date of a deadline in either
// "YYYY-MM-DD HH:MM:SS" or ISO "YYYY-MM-DDTHH:MM:SS" form.
// Returns "" for an absent deadline.
func DatePart(deadline string) string {
	if i := strings.IndexAny(deadline, " T"); i >= 0 {
		return deadline[:i]
	}
	return deadline
}
