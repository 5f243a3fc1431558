package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"taskman/internal/app"
)

// Messages carrying controller output onto the event loop.
type (
	renderMsg  struct{ view app.ListView }
	sectionMsg struct{ section app.Section }
	resetMsg   struct{ section app.Section }
	clearIDMsg struct{ section app.Section }
	notifyMsg  struct{ n app.Notification }
)

// bridge implements app.View and app.Notifier by posting messages to the program.
// send blocks until the event loop takes the message, so it must only be called
// from command goroutines, never from Update.
type bridge struct {
	send func(tea.Msg)
}

func (b *bridge) post(msg tea.Msg) {
	if b.send != nil {
		b.send(msg)
	}
}

func (b *bridge) Render(v app.ListView) { b.post(renderMsg{view: v}) }
func (b *bridge) ShowSection(s app.Section) { b.post(sectionMsg{section: s}) }
func (b *bridge) ResetForm(s app.Section) { b.post(resetMsg{section: s}) }
func (b *bridge) ClearID(s app.Section) { b.post(clearIDMsg{section: s}) }
func (b *bridge) Notify(n app.Notification) { b.post(notifyMsg{n: n}) }
