package testutil

import (
	"sync"

	"taskman/internal/app"
)

// Recorder is an app.View and app.Notifier that records every call.
type Recorder struct {
	mu sync.Mutex

	Renders       []app.ListView
	Sections      []app.Section
	Resets        []app.Section
	ClearedIDs    []app.Section
	Notifications []app.Notification
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Render implements app.View.
func (r *Recorder) Render(v app.ListView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Renders = append(r.Renders, v)
}

// ShowSection implements app.View.
func (r *Recorder) ShowSection(s app.Section) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sections = append(r.Sections, s)
}

// ResetForm implements app.View.
func (r *Recorder) ResetForm(s app.Section) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Resets = append(r.Resets, s)
}

// ClearID implements app.View.
func (r *Recorder) ClearID(s app.Section) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ClearedIDs = append(r.ClearedIDs, s)
}

// Notify implements app.Notifier.
func (r *Recorder) Notify(n app.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notifications = append(r.Notifications, n)
}

// LastRender returns the most recent list view, or the zero view.
func (r *Recorder) LastRender() app.ListView {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Renders) == 0 {
		return app.ListView{}
	}
	return r.Renders[len(r.Renders)-1]
}

// LastNotification returns the most recent notification, or the zero value.
func (r *Recorder) LastNotification() app.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Notifications) == 0 {
		return app.Notification{}
	}
	return r.Notifications[len(r.Notifications)-1]
}
