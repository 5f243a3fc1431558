// Package tui is the interactive terminal client. It shows one section at a time and
// drives an app.Controller from bubbletea commands.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskman/internal/app"
	"taskman/internal/output"
	"taskman/internal/service"
)

// Input positions within each section's form.
const (
	listText = iota
	listStatus
	listDeadline
	listStorage
)

const (
	addTitle = iota
	addDescription
	addDeadline
	addStatus
	addStorage
)

const (
	refID = iota
	refStorage
)

const (
	updID = iota
	updTitle
	updDescription
	updDeadline
	updStatus
	updStorage
)

const (
	expFilename = iota
	expFormat
	expStorage
)

const (
	storageHint = "memory | jsonfile | sqlite"
	statusHint  = "pending | completed"
	dateHint    = "YYYY-MM-DD"

	// chromeHeight is the number of lines around the task list on the list section.
	chromeHeight = 10
)

var sectionTitles = map[app.Section]string{
	app.SectionList:   "Tasks",
	app.SectionAdd:    "Add",
	app.SectionFind:   "Find",
	app.SectionUpdate: "Update",
	app.SectionDelete: "Delete",
	app.SectionExport: "Export",
}

// Model is the bubbletea model. Controller output arrives as messages from the bridge.
type Model struct {
	ctx  context.Context
	ctrl *app.Controller

	section app.Section
	forms   map[app.Section]*form
	list    app.ListView
	dialog  *app.Notification
	tasks   viewport.Model

	width, height int
}

func newModel(ctx context.Context, ctrl *app.Controller, storageType string) *Model {
	return &Model{
		ctx:     ctx,
		ctrl:    ctrl,
		section: app.SectionList,
		forms: map[app.Section]*form{
			app.SectionList: newForm(
				field{label: "Search", placeholder: "title or description"},
				field{label: "Status", placeholder: statusHint},
				field{label: "Deadline", placeholder: dateHint},
				field{label: "Storage", placeholder: storageHint},
			),
			app.SectionAdd: newForm(
				field{label: "Title"},
				field{label: "Description"},
				field{label: "Deadline", placeholder: dateHint},
				field{label: "Status", placeholder: statusHint},
				field{label: "Storage", placeholder: storageHint, value: storageType},
			),
			app.SectionFind: newForm(
				field{label: "Task ID"},
				field{label: "Storage", placeholder: storageHint, value: storageType},
			),
			app.SectionUpdate: newForm(
				field{label: "Task ID"},
				field{label: "Title", placeholder: "unchanged"},
				field{label: "Description", placeholder: "unchanged"},
				field{label: "Deadline", placeholder: dateHint},
				field{label: "Status", placeholder: statusHint},
				field{label: "Storage", placeholder: storageHint, value: storageType},
			),
			app.SectionDelete: newForm(
				field{label: "Task ID"},
				field{label: "Storage", placeholder: storageHint, value: storageType},
			),
			app.SectionExport: newForm(
				field{label: "Filename", value: "tasks"},
				field{label: "Format", placeholder: "json | csv | markdown", value: "json"},
				field{label: "Storage", placeholder: storageHint, value: storageType},
			),
		},
		tasks: viewport.New(80, 20),
	}
}

// Run starts the interactive client and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, svc service.Service, opts app.Options) error {
	b := &bridge{}
	ctrl := app.NewController(svc, b, b, opts)
	p := tea.NewProgram(newModel(ctx, ctrl, opts.StorageType), tea.WithContext(ctx), tea.WithAltScreen())
	b.send = p.Send

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// action runs fn off the event loop. Its results come back through the bridge.
func (m *Model) action(fn func() error) tea.Cmd {
	return func() tea.Msg {
		_ = fn()
		return nil
	}
}

func (m *Model) Init() tea.Cmd {
	return m.action(func() error { return m.ctrl.Load(m.ctx, "") })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case renderMsg:
		if msg.view.Version >= m.list.Version {
			m.list = msg.view
			m.tasks.SetContent(m.listContent())
		}
		return m, nil
	case sectionMsg:
		m.section = msg.section
		return m, nil
	case resetMsg:
		if f, ok := m.forms[msg.section]; ok {
			f.reset()
		}
		return m, nil
	case clearIDMsg:
		if f, ok := m.forms[msg.section]; ok {
			f.setValue(refID, "")
		}
		return m, nil
	case notifyMsg:
		n := msg.n
		m.dialog = &n
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.dialog != nil {
		if key == "enter" || key == "esc" {
			m.dialog = nil
		}
		return m, nil
	}

	if s, ok := sectionKey(key); ok {
		return m, m.action(func() error {
			m.ctrl.ShowSection(s)
			return nil
		})
	}

	f := m.forms[m.section]
	switch key {
	case "tab":
		f.next()
		return m, nil
	case "shift+tab":
		f.prev()
		return m, nil
	case "ctrl+r":
		return m, m.action(func() error { return m.ctrl.Reload(m.ctx) })
	case "enter":
		return m, m.submit()
	case "up", "down", "pgup", "pgdown":
		if m.section == app.SectionList {
			var cmd tea.Cmd
			m.tasks, cmd = m.tasks.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	cmd, changed := f.update(msg)
	if changed && m.section == app.SectionList {
		filter := m.filter()
		return m, tea.Batch(cmd, m.action(func() error {
			m.ctrl.SetFilter(filter)
			return nil
		}))
	}
	return m, cmd
}

// sectionKey maps F1..F6 to the sections in display order.
func sectionKey(key string) (app.Section, bool) {
	for i, s := range app.Sections {
		if key == fmt.Sprintf("f%d", i+1) {
			return s, true
		}
	}
	return "", false
}

// filter reads the list section's inputs.
func (m *Model) filter() app.Filter {
	f := m.forms[app.SectionList]
	return app.Filter{
		Text:        f.value(listText),
		Status:      f.value(listStatus),
		Deadline:    f.value(listDeadline),
		StorageType: f.value(listStorage),
	}
}

// submit builds the visible section's request from its inputs.
// Form values are read here, on the event loop, before the command runs.
func (m *Model) submit() tea.Cmd {
	f := m.forms[m.section]
	ctx, ctrl := m.ctx, m.ctrl

	switch m.section {
	case app.SectionList:
		return m.action(func() error { return ctrl.Reload(ctx) })
	case app.SectionAdd:
		form := app.AddForm{
			Title:       f.value(addTitle),
			Description: f.value(addDescription),
			Deadline:    f.value(addDeadline),
			Status:      f.value(addStatus),
			StorageType: f.value(addStorage),
		}
		return m.action(func() error { return ctrl.Add(ctx, form) })
	case app.SectionFind:
		ref := app.TaskRef{ID: f.value(refID), StorageType: f.value(refStorage)}
		return m.action(func() error {
			_, err := ctrl.Find(ctx, ref)
			return err
		})
	case app.SectionUpdate:
		form := app.UpdateForm{
			ID:          f.value(updID),
			Title:       f.value(updTitle),
			Description: f.value(updDescription),
			Deadline:    f.value(updDeadline),
			Status:      f.value(updStatus),
			StorageType: f.value(updStorage),
		}
		return m.action(func() error { return ctrl.Update(ctx, form) })
	case app.SectionDelete:
		ref := app.TaskRef{ID: f.value(refID), StorageType: f.value(refStorage)}
		return m.action(func() error { return ctrl.Delete(ctx, ref) })
	case app.SectionExport:
		form := app.ExportForm{
			Filename:    f.value(expFilename),
			Format:      f.value(expFormat),
			StorageType: f.value(expStorage),
		}
		return m.action(func() error {
			_, err := ctrl.Export(ctx, form)
			return err
		})
	}
	return nil
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.tasks.Width = w
	m.tasks.Height = max(h-chromeHeight, 3)
	for _, f := range m.forms {
		f.setWidth(min(max(w-8, 20), 60))
	}
	m.forms[app.SectionList].setWidth(max(w/4-6, 10))
}

func (m *Model) listContent() string {
	switch {
	case m.list.Err != "":
		return errorTextStyle.Render(m.list.Err)
	case len(m.list.Tasks) == 0:
		return output.NoTasks
	}
	var b strings.Builder
	output.FormatTasks(&b, m.list.Tasks, false)
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) View() string {
	body := m.sectionView()
	if m.dialog != nil {
		body = m.dialogView()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.tabsView(),
		"",
		body,
		"",
		mutedStyle.Render("F1-F6: section • tab/shift+tab: move • enter: submit • ctrl+r: reload • ctrl+c: quit"),
	)
}

func (m *Model) tabsView() string {
	tabs := make([]string, 0, len(app.Sections))
	for i, s := range app.Sections {
		label := fmt.Sprintf("F%d %s", i+1, sectionTitles[s])
		if s == m.section {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) sectionView() string {
	f := m.forms[m.section]
	if m.section != app.SectionList {
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(sectionTitles[m.section]+" task"),
			f.view(),
		)
	}

	filters := make([]string, 0, len(f.inputs))
	for i, in := range f.inputs {
		style := inputStyle
		if i == f.focus {
			style = inputFocusedStyle
		}
		filters = append(filters, lipgloss.JoinVertical(lipgloss.Left,
			labelStyle.Render(f.fields[i].label),
			style.Render(in.View()),
		))
	}

	content := m.tasks.View()
	if m.list.Version == 0 {
		content = mutedStyle.Render("Loading tasks...")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, filters...),
		content,
	)
}

func (m *Model) dialogView() string {
	box := dialogStyle.
		BorderForeground(levelColor(m.dialog.Level)).
		Render(m.dialog.Message + "\n\n" + mutedStyle.Render("enter/esc: close"))
	if m.width == 0 {
		return box
	}
	return lipgloss.Place(m.width, max(m.height-chromeHeight/2, lipgloss.Height(box)), lipgloss.Center, lipgloss.Center, box)
}
