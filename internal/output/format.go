// Package output provides text formatters shared by the CLI and the terminal UI.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskman/internal/service"
)

// Placeholders shown for absent or empty values.
const (
	NoDescription = "No description"
	NoDeadline    = "No deadline"
	NoTasks       = "No tasks found."
	LoadError     = "Error loading tasks from server."
)

// FormatTask writes one list entry.
// Format:
//
//	{TITLE} - {DESCRIPTION}
//	    Status: {STATUS} | Deadline: {DEADLINE} | Storage: {STORAGE} | ID: {ID}
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "%s - %s\n", normalizeText(task.Title), orPlaceholder(task.DescriptionText(), NoDescription))
	fmt.Fprintf(w, "    Status: %s | Deadline: %s | Storage: %s | ID: %s\n",
		task.Status,
		orPlaceholder(task.DeadlineText(), NoDeadline),
		task.StorageType,
		task.ID,
	)
}

// FormatTasks writes every entry, or the empty placeholder when there are none.
// The placeholder is skipped when quiet is set.
func FormatTasks(w io.Writer, tasks []service.Task, quiet bool) {
	if len(tasks) == 0 {
		if !quiet {
			fmt.Fprintln(w, NoTasks)
		}
		return
	}
	for _, task := range tasks {
		FormatTask(w, task)
	}
}

// TaskDetails renders the find dialog body.
func TaskDetails(task service.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", task.Title)
	fmt.Fprintf(&b, "Description: %s\n", orPlaceholder(task.DescriptionText(), NoDescription))
	fmt.Fprintf(&b, "Status: %s\n", task.Status)
	fmt.Fprintf(&b, "Deadline: %s\n", orPlaceholder(task.DeadlineText(), NoDeadline))
	fmt.Fprintf(&b, "Storage: %s", task.StorageType)
	if task.CreatedAt != "" {
		fmt.Fprintf(&b, "\nCreated: %s", task.CreatedAt)
	}
	if task.UpdatedAt != "" {
		fmt.Fprintf(&b, "\nUpdated: %s", task.UpdatedAt)
	}
	return b.String()
}

// normalizeText keeps an entry on its line.
// Newlines are replaced with spaces.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// orPlaceholder returns the normalized value, or placeholder if it is empty or whitespace-only.
func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return normalizeText(s)
}
