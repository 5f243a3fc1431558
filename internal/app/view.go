// Package app is the task client core: snapshot and filter state, form validation,
// and the Controller that runs user actions against the task API.
//
// Presentation is injected through View, Notifier and Downloader, so the core runs the
// same under the CLI, the terminal UI and tests.
package app

import (
	"io"

	"taskman/internal/service"
)

// Section is one top-level UI section. Exactly one is visible at a time.
type Section string

const (
	SectionList   Section = "list"
	SectionAdd    Section = "add"
	SectionFind   Section = "find"
	SectionUpdate Section = "update"
	SectionDelete Section = "delete"
	SectionExport Section = "export"
)

// Sections lists every section in display order.
var Sections = []Section{SectionList, SectionAdd, SectionFind, SectionUpdate, SectionDelete, SectionExport}

// ListView is what the list section shows.
type ListView struct {
	// Version increases with every state change; adapters drop older views.
	Version uint64

	// Tasks is the filtered view of the snapshot.
	Tasks []service.Task

	// Err, if set, replaces the list with an inline error.
	Err string

	// Filter is the filter that produced Tasks.
	Filter Filter
}

// View renders state. Implementations must not call back into the Controller.
type View interface {
	// Render replaces the list section's content.
	Render(ListView)

	// ShowSection makes s the only visible section.
	ShowSection(s Section)

	// ResetForm clears every input of a section's form.
	ResetForm(s Section)

	// ClearID clears only the task id input of a section.
	ClearID(s Section)
}

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Notification is a message for the user.
type Notification struct {
	Level   Level
	Message string
}

// Notifier presents notifications.
type Notifier interface {
	Notify(n Notification)
}

// Downloader stores an exported stream under name and returns where it went.
type Downloader interface {
	Save(name string, r io.Reader) (string, error)
}
