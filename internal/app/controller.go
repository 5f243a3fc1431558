package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"taskman/internal/metrics"
	"taskman/internal/output"
	"taskman/internal/service"
)

// Options configures a Controller.
type Options struct {
	// StorageType is used by export when the form leaves it empty.
	StorageType string

	// DefaultStatus is sent with every create request that has no status.
	DefaultStatus string

	// Downloader receives export streams. Required for Export.
	Downloader Downloader

	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Controller runs user actions: validate, request, re-fetch, re-render.
// It is safe for concurrent use; the most recently completed fetch wins.
type Controller struct {
	svc      service.Service
	view     View
	notifier Notifier
	opts     Options
	log      *zap.Logger

	mu    sync.Mutex
	state State
}

// NewController creates a Controller with an empty snapshot and the list section visible.
func NewController(svc service.Service, view View, notifier Notifier, opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		svc:      svc,
		view:     view,
		notifier: notifier,
		opts:     opts,
		log:      log,
		state:    NewState(),
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// update applies a transition and returns the resulting list view.
func (c *Controller) update(fn func(State) State) ListView {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = fn(c.state)
	return c.state.View()
}

// Load fetches the snapshot, optionally scoped to one storage type, and renders it
// through the active filter. On failure the list shows an inline error.
func (c *Controller) Load(ctx context.Context, storageType string) error {
	tasks, err := c.svc.ListTasks(ctx, storageType)
	if err != nil {
		c.log.Error("Error loading tasks", zap.String("storage_type", storageType), zap.Error(err))
		metrics.IncrementAction("load", metrics.OutcomeFailed)
		c.view.Render(c.update(func(s State) State { return s.LoadFailed(storageType) }))
		return err
	}

	c.log.Debug("Tasks loaded", zap.Int("count", len(tasks)), zap.String("storage_type", storageType))
	metrics.IncrementAction("load", metrics.OutcomeOK)
	c.view.Render(c.update(func(s State) State { return s.Loaded(storageType, tasks) }))
	return nil
}

// Reload repeats the last load with the same scope.
func (c *Controller) Reload(ctx context.Context) error {
	return c.Load(ctx, c.State().Scope())
}

// SetFilter replaces the active filter and re-renders. No request is made.
func (c *Controller) SetFilter(f Filter) {
	c.view.Render(c.update(func(s State) State { return s.Filtered(f) }))
}

// ShowSection makes section the only visible one.
func (c *Controller) ShowSection(section Section) {
	c.update(func(s State) State { return s.Showing(section) })
	c.view.ShowSection(section)
}

// Add creates a task. On success the add form is reset, the snapshot reloaded and the
// list section shown.
func (c *Controller) Add(ctx context.Context, f AddForm) error {
	req, err := BuildCreate(f, c.opts.DefaultStatus)
	if err != nil {
		return c.reject("add", err)
	}

	c.log.Debug("Sending add request", zap.String("title", req.Title), zap.String("storage_type", req.StorageType))
	task, err := c.svc.CreateTask(ctx, req)
	if err != nil {
		return c.fail("add", "Error adding task", err)
	}

	c.log.Info("Task added", zap.String("id", task.ID), zap.String("storage_type", req.StorageType))
	metrics.IncrementAction("add", metrics.OutcomeOK)
	c.notify(LevelSuccess, "Task added successfully!")
	c.view.ResetForm(SectionAdd)
	c.afterMutation(ctx, true)
	return nil
}

// Find fetches one task and presents its fields.
// Any failure is reported as not found.
func (c *Controller) Find(ctx context.Context, ref TaskRef) (service.Task, error) {
	ref, err := ref.Validate(msgFindRequired)
	if err != nil {
		return service.Task{}, c.reject("find", err)
	}

	task, err := c.svc.GetTask(ctx, ref.ID, ref.StorageType)
	if err != nil {
		c.log.Error("Error finding task", zap.String("id", ref.ID), zap.String("storage_type", ref.StorageType), zap.Error(err))
		metrics.IncrementAction("find", metrics.OutcomeFailed)
		c.notify(LevelError, "Error: Task not found")
		return service.Task{}, err
	}

	metrics.IncrementAction("find", metrics.OutcomeOK)
	c.notify(LevelInfo, output.TaskDetails(task))
	c.view.ClearID(SectionFind)
	return task, nil
}

// Update sends a partial update with only the filled fields.
// On success the update form is reset, the snapshot reloaded and the list section shown.
func (c *Controller) Update(ctx context.Context, f UpdateForm) error {
	id, req, err := BuildUpdate(f)
	if err != nil {
		return c.reject("update", err)
	}
	return c.sendUpdate(ctx, "update", id, req, SectionUpdate)
}

// Complete marks a task completed.
func (c *Controller) Complete(ctx context.Context, ref TaskRef) error {
	ref, err := ref.Validate(msgUpdateRequired)
	if err != nil {
		return c.reject("done", err)
	}
	status := service.StatusCompleted
	req := service.UpdateRequest{Status: &status, StorageType: ref.StorageType}
	return c.sendUpdate(ctx, "done", ref.ID, req, SectionUpdate)
}

func (c *Controller) sendUpdate(ctx context.Context, action, id string, req service.UpdateRequest, section Section) error {
	c.log.Debug("Sending update request", zap.String("id", id), zap.String("storage_type", req.StorageType))
	if _, err := c.svc.UpdateTask(ctx, id, req); err != nil {
		return c.fail(action, "Error updating task", err)
	}

	c.log.Info("Task updated", zap.String("id", id))
	metrics.IncrementAction(action, metrics.OutcomeOK)
	c.notify(LevelSuccess, "Task updated successfully!")
	c.view.ResetForm(section)
	c.afterMutation(ctx, true)
	return nil
}

// Delete removes a task. On success the id input is cleared and the snapshot reloaded.
func (c *Controller) Delete(ctx context.Context, ref TaskRef) error {
	ref, err := ref.Validate(msgDeleteRequired)
	if err != nil {
		return c.reject("delete", err)
	}

	if err := c.svc.DeleteTask(ctx, ref.ID, ref.StorageType); err != nil {
		return c.fail("delete", "Error deleting task", err)
	}

	c.log.Info("Task deleted", zap.String("id", ref.ID), zap.String("storage_type", ref.StorageType))
	metrics.IncrementAction("delete", metrics.OutcomeOK)
	c.notify(LevelSuccess, "Task deleted successfully!")
	c.view.ClearID(SectionDelete)
	c.afterMutation(ctx, false)
	return nil
}

// Export downloads the server's export as <filename>.<format>.
// Returns the path the download was saved to.
func (c *Controller) Export(ctx context.Context, f ExportForm) (string, error) {
	req, err := BuildExport(f, c.opts.StorageType)
	if err != nil {
		return "", c.reject("export", err)
	}
	if c.opts.Downloader == nil {
		return "", c.fail("export", "Error exporting tasks", errors.New("no download target configured"))
	}

	stream, err := c.svc.ExportTasks(ctx, req)
	if err != nil {
		return "", c.fail("export", "Error exporting tasks", err)
	}
	defer stream.Close()

	path, err := c.opts.Downloader.Save(ExportName(req), stream)
	if err != nil {
		return "", c.fail("export", "Error exporting tasks", fmt.Errorf("failed to save export: %w", err))
	}

	c.log.Info("Tasks exported", zap.String("path", path), zap.String("format", req.Format))
	metrics.IncrementAction("export", metrics.OutcomeOK)
	c.notify(LevelSuccess, "Tasks exported to "+path)
	return path, nil
}

// afterMutation reloads the snapshot and optionally returns to the list section.
// A failed reload is already rendered inline; the mutation itself succeeded.
func (c *Controller) afterMutation(ctx context.Context, showList bool) {
	_ = c.Reload(ctx)
	if showList {
		c.ShowSection(SectionList)
	}
}

// reject reports a validation failure. Nothing was sent.
func (c *Controller) reject(action string, err error) error {
	metrics.IncrementAction(action, metrics.OutcomeInvalid)
	c.notify(LevelWarning, err.Error())
	return err
}

// fail logs and reports a transport or server failure.
func (c *Controller) fail(action, prefix string, err error) error {
	c.log.Error(prefix, zap.String("action", action), zap.Error(err))
	metrics.IncrementAction(action, metrics.OutcomeFailed)
	c.notify(LevelError, prefix+": "+err.Error())
	return err
}

func (c *Controller) notify(level Level, msg string) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(Notification{Level: level, Message: msg})
}
