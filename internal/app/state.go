package app

import (
	"taskman/internal/output"
	"taskman/internal/service"
)

// State is the client's whole mutable state.
// Every transition returns a new State; the snapshot is replaced, never merged.
type State struct {
	version  uint64
	snapshot []service.Task
	filter   Filter
	scope    string
	loadErr  string
	section  Section
}

// NewState returns the initial state: empty snapshot, list section visible.
func NewState() State {
	return State{section: SectionList}
}

// Loaded replaces the snapshot with the result of a successful fetch.
func (s State) Loaded(scope string, tasks []service.Task) State {
	snapshot := make([]service.Task, len(tasks))
	copy(snapshot, tasks)
	s.snapshot = snapshot
	s.scope = scope
	s.loadErr = ""
	s.version++
	return s
}

// LoadFailed records a failed fetch. The previous snapshot is kept for later filtering
// but the list shows the error.
func (s State) LoadFailed(scope string) State {
	s.scope = scope
	s.loadErr = output.LoadError
	s.version++
	return s
}

// Filtered sets the active filter. The view is derived from the in-memory snapshot again,
// replacing any load error.
func (s State) Filtered(f Filter) State {
	s.filter = f
	s.loadErr = ""
	s.version++
	return s
}

// Showing switches the visible section.
func (s State) Showing(section Section) State {
	s.section = section
	s.version++
	return s
}

// Snapshot returns a copy of the last successful fetch.
func (s State) Snapshot() []service.Task {
	out := make([]service.Task, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// Filter returns the active filter.
func (s State) Filter() Filter { return s.filter }

// Scope returns the storage type of the last load, "" for all.
func (s State) Scope() string { return s.scope }

// Section returns the visible section.
func (s State) Section() Section { return s.section }

// View derives the list section's content.
func (s State) View() ListView {
	if s.loadErr != "" {
		return ListView{Version: s.version, Tasks: []service.Task{}, Err: s.loadErr, Filter: s.filter}
	}
	return ListView{Version: s.version, Tasks: Apply(s.snapshot, s.filter), Filter: s.filter}
}
