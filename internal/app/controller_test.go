package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"

	"taskman/internal/app"
	"taskman/internal/service"
	"taskman/internal/testutil"
)

func strPtr(s string) *string { return &s }

func newController(t *testing.T, svc *testutil.FakeService) (*app.Controller, *testutil.Recorder) {
	t.Helper()
	rec := testutil.NewRecorder()
	ctrl := app.NewController(svc, rec, rec, app.Options{
		StorageType:   "memory",
		DefaultStatus: "pending",
		Downloader:    app.DirDownloader{Dir: t.TempDir()},
		Logger:        zaptest.NewLogger(t),
	})
	return ctrl, rec
}

func seeded() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddTask(service.Task{ID: "1", Title: "Buy milk", Status: "pending", Deadline: strPtr("2024-05-01 23:59:00"), StorageType: "memory"})
	svc.AddTask(service.Task{ID: "2", Title: "File taxes", Status: "completed", StorageType: "memory"})
	return svc
}

func TestLoad_RendersSnapshot(t *testing.T) {
	ctrl, rec := newController(t, seeded())

	if err := ctrl.Load(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view := rec.LastRender()
	if view.Err != "" {
		t.Errorf("unexpected error view %q", view.Err)
	}
	if len(view.Tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(view.Tasks))
	}
	if len(ctrl.State().Snapshot()) != 2 {
		t.Errorf("expected snapshot of 2")
	}
}

func TestLoad_FailureRendersInlineError(t *testing.T) {
	svc := seeded()
	svc.ListTasksErr = testutil.ErrUnavailable
	ctrl, rec := newController(t, svc)

	err := ctrl.Load(context.Background(), "sqlite")
	if !errors.Is(err, testutil.ErrUnavailable) {
		t.Fatalf("expected transport error, got %v", err)
	}

	view := rec.LastRender()
	if view.Err != "Error loading tasks from server." {
		t.Errorf("unexpected error text %q", view.Err)
	}
	if len(view.Tasks) != 0 {
		t.Errorf("expected empty list, got %d", len(view.Tasks))
	}
	if ctrl.State().Scope() != "sqlite" {
		t.Errorf("expected scope to be remembered")
	}
}

func TestLoad_ReplacesSnapshot(t *testing.T) {
	svc := seeded()
	ctrl, _ := newController(t, svc)
	ctx := context.Background()

	if err := ctrl.Load(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteTask(ctx, "1", "memory"); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Load(ctx, ""); err != nil {
		t.Fatal(err)
	}

	snap := ctrl.State().Snapshot()
	if len(snap) != 1 || snap[0].ID != "2" {
		t.Errorf("expected snapshot replaced by the last fetch, got %+v", snap)
	}
}

func TestSetFilter_NoRequest(t *testing.T) {
	svc := seeded()
	ctrl, rec := newController(t, svc)
	if err := ctrl.Load(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	calls := svc.CallCount()

	ctrl.SetFilter(app.Filter{Status: "done"})

	if svc.CallCount() != calls {
		t.Error("filtering must not hit the server")
	}
	view := rec.LastRender()
	if len(view.Tasks) != 0 {
		t.Errorf("expected empty view, got %d", len(view.Tasks))
	}
	if view.Filter.Status != "done" {
		t.Errorf("expected filter in view, got %+v", view.Filter)
	}

	ctrl.SetFilter(app.Filter{Status: "PENDING"})
	if got := rec.LastRender().Tasks; len(got) != 1 || got[0].ID != "1" {
		t.Errorf("expected task 1, got %+v", got)
	}
}

func TestSetFilter_AfterLoadFailureShowsSnapshot(t *testing.T) {
	svc := seeded()
	ctrl, rec := newController(t, svc)
	ctx := context.Background()
	if err := ctrl.Load(ctx, ""); err != nil {
		t.Fatal(err)
	}
	svc.ListTasksErr = testutil.ErrUnavailable
	_ = ctrl.Load(ctx, "")

	ctrl.SetFilter(app.Filter{})

	view := rec.LastRender()
	if view.Err != "" || len(view.Tasks) != 2 {
		t.Errorf("expected the last snapshot, got %+v", view)
	}
}

func TestRenderVersionsIncrease(t *testing.T) {
	ctrl, rec := newController(t, seeded())
	_ = ctrl.Load(context.Background(), "")
	ctrl.SetFilter(app.Filter{Text: "milk"})
	ctrl.SetFilter(app.Filter{})

	for i := 1; i < len(rec.Renders); i++ {
		if rec.Renders[i].Version <= rec.Renders[i-1].Version {
			t.Fatalf("render %d version %d not after %d", i, rec.Renders[i].Version, rec.Renders[i-1].Version)
		}
	}
}

func TestAdd_RejectedWithoutRequest(t *testing.T) {
	tests := []struct {
		name string
		form app.AddForm
	}{
		{"missing title", app.AddForm{StorageType: "sqlite"}},
		{"blank title", app.AddForm{Title: "   ", StorageType: "sqlite"}},
		{"missing storage type", app.AddForm{Title: "Call bank"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			ctrl, rec := newController(t, svc)

			err := ctrl.Add(context.Background(), tt.form)
			if !errors.Is(err, app.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if svc.CallCount() != 0 {
				t.Errorf("expected no request, got %v", svc.Calls)
			}
			n := rec.LastNotification()
			if n.Level != app.LevelWarning || n.Message != "Task title and storage type are required." {
				t.Errorf("unexpected notification %+v", n)
			}
		})
	}
}

func TestAdd_DefaultsAndNulls(t *testing.T) {
	svc := testutil.NewFakeService()
	ctrl, rec := newController(t, svc)

	err := ctrl.Add(context.Background(), app.AddForm{Title: "Call bank", StorageType: "sqlite"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := svc.LastCreate
	if req.Deadline != nil {
		t.Errorf("expected null deadline, got %q", *req.Deadline)
	}
	if req.Description != nil {
		t.Errorf("expected null description, got %q", *req.Description)
	}
	if req.Status == nil || *req.Status != "pending" {
		t.Errorf("expected default status pending, got %v", req.Status)
	}

	if n := rec.Notifications[0]; n.Level != app.LevelSuccess || n.Message != "Task added successfully!" {
		t.Errorf("unexpected notification %+v", n)
	}
	if len(rec.Resets) != 1 || rec.Resets[0] != app.SectionAdd {
		t.Errorf("expected add form reset, got %v", rec.Resets)
	}
	if len(rec.Sections) == 0 || rec.Sections[len(rec.Sections)-1] != app.SectionList {
		t.Errorf("expected list section shown, got %v", rec.Sections)
	}
	if ctrl.State().Section() != app.SectionList {
		t.Errorf("expected list section in state")
	}
}

func TestAdd_ReloadsWithLastScope(t *testing.T) {
	svc := testutil.NewFakeService()
	ctrl, rec := newController(t, svc)
	ctx := context.Background()
	if err := ctrl.Load(ctx, "sqlite"); err != nil {
		t.Fatal(err)
	}

	if err := ctrl.Add(ctx, app.AddForm{Title: "Call bank", Deadline: "2024-05-01", StorageType: "sqlite"}); err != nil {
		t.Fatal(err)
	}

	last := svc.Calls[len(svc.Calls)-1]
	if last != "ListTasks(sqlite)" {
		t.Errorf("expected reload of sqlite scope, got %q", last)
	}
	view := rec.LastRender()
	if len(view.Tasks) != 1 || view.Tasks[0].DeadlineText() != "2024-05-01 23:59:00" {
		t.Errorf("expected new task with end-of-day deadline, got %+v", view.Tasks)
	}
}

func TestAdd_ServerError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = &service.APIError{Op: "add task", StatusCode: 422, Body: `{"detail":"title too long"}`}
	ctrl, rec := newController(t, svc)

	err := ctrl.Add(context.Background(), app.AddForm{Title: "x", StorageType: "memory"})
	if err == nil {
		t.Fatal("expected error")
	}

	n := rec.LastNotification()
	want := `Error adding task: failed to add task: {"detail":"title too long"}`
	if n.Level != app.LevelError || n.Message != want {
		t.Errorf("expected %q, got %+v", want, n)
	}
	if len(rec.Resets) != 0 {
		t.Error("form must not be reset on failure")
	}
}

func TestFind(t *testing.T) {
	svc := seeded()
	ctrl, rec := newController(t, svc)

	task, err := ctrl.Find(context.Background(), app.TaskRef{ID: " 1 ", StorageType: "memory"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Title != "Buy milk" {
		t.Errorf("unexpected task %+v", task)
	}

	n := rec.LastNotification()
	if n.Level != app.LevelInfo || !strings.HasPrefix(n.Message, "Title: Buy milk\nDescription: No description\n") {
		t.Errorf("unexpected notification %+v", n)
	}
	if len(rec.ClearedIDs) != 1 || rec.ClearedIDs[0] != app.SectionFind {
		t.Errorf("expected find id cleared, got %v", rec.ClearedIDs)
	}
}

func TestFind_WrongPartitionIsNotFound(t *testing.T) {
	ctrl, rec := newController(t, seeded())

	_, err := ctrl.Find(context.Background(), app.TaskRef{ID: "1", StorageType: "sqlite"})
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if n := rec.LastNotification(); n.Level != app.LevelError || n.Message != "Error: Task not found" {
		t.Errorf("unexpected notification %+v", n)
	}
}

func TestFind_RequiresIDAndStorage(t *testing.T) {
	svc := seeded()
	ctrl, rec := newController(t, svc)

	_, err := ctrl.Find(context.Background(), app.TaskRef{ID: "1"})
	if !errors.Is(err, app.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if svc.CallCount() != 0 {
		t.Error("expected no request")
	}
	if rec.LastNotification().Message != "Task ID and storage type are required." {
		t.Errorf("unexpected message %q", rec.LastNotification().Message)
	}
}

func TestUpdate_AllEmptyRejected(t *testing.T) {
	svc := seeded()
	ctrl, rec := newController(t, svc)

	err := ctrl.Update(context.Background(), app.UpdateForm{ID: "1", StorageType: "memory", Title: "  "})
	if !errors.Is(err, app.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if svc.CallCount() != 0 {
		t.Errorf("expected no request, got %v", svc.Calls)
	}
	if rec.LastNotification().Message != "Fill at least one field to update." {
		t.Errorf("unexpected message %q", rec.LastNotification().Message)
	}
}

func TestUpdate_OnlyDescription(t *testing.T) {
	svc := seeded()
	ctrl, rec := newController(t, svc)

	err := ctrl.Update(context.Background(), app.UpdateForm{ID: "1", StorageType: "memory", Description: "semi-skimmed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := svc.LastUpdate
	if req.Title != nil || req.Deadline != nil || req.Status != nil {
		t.Errorf("expected only description, got %+v", req)
	}
	if req.Description == nil || *req.Description != "semi-skimmed" {
		t.Errorf("unexpected description %v", req.Description)
	}
	if rec.LastNotification().Message != "Task updated successfully!" {
		t.Errorf("unexpected message %q", rec.LastNotification().Message)
	}
	if rec.Resets[0] != app.SectionUpdate {
		t.Errorf("expected update form reset, got %v", rec.Resets)
	}
	if rec.Sections[len(rec.Sections)-1] != app.SectionList {
		t.Errorf("expected list section, got %v", rec.Sections)
	}
	if got := rec.LastRender().Tasks[0].DescriptionText(); got != "semi-skimmed" {
		t.Errorf("expected reloaded snapshot, got %q", got)
	}
}

func TestUpdate_ServerError(t *testing.T) {
	ctrl, rec := newController(t, seeded())

	err := ctrl.Update(context.Background(), app.UpdateForm{ID: "missing", StorageType: "memory", Status: "completed"})
	if err == nil {
		t.Fatal("expected error")
	}
	want := `Error updating task: failed to update task: {"detail":"Task not found"}`
	if n := rec.LastNotification(); n.Level != app.LevelError || n.Message != want {
		t.Errorf("expected %q, got %+v", want, n)
	}
}

func TestComplete(t *testing.T) {
	svc := seeded()
	ctrl, _ := newController(t, svc)

	if err := ctrl.Complete(context.Background(), app.TaskRef{ID: "1", StorageType: "memory"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := svc.LastUpdate
	if req.Status == nil || *req.Status != "completed" || req.Title != nil {
		t.Errorf("unexpected request %+v", req)
	}
}

func TestDelete(t *testing.T) {
	svc := seeded()
	ctrl, rec := newController(t, svc)
	ctx := context.Background()
	if err := ctrl.Load(ctx, ""); err != nil {
		t.Fatal(err)
	}

	if err := ctrl.Delete(ctx, app.TaskRef{ID: "1", StorageType: "memory"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.LastNotification().Message != "Task deleted successfully!" {
		t.Errorf("unexpected message %q", rec.LastNotification().Message)
	}
	if len(rec.ClearedIDs) != 1 || rec.ClearedIDs[0] != app.SectionDelete {
		t.Errorf("expected delete id cleared, got %v", rec.ClearedIDs)
	}
	if len(rec.Sections) != 0 {
		t.Errorf("delete must not switch sections, got %v", rec.Sections)
	}
	if got := rec.LastRender().Tasks; len(got) != 1 {
		t.Errorf("expected reloaded list of 1, got %d", len(got))
	}
}

func TestDelete_RequiresIDAndStorage(t *testing.T) {
	svc := seeded()
	ctrl, rec := newController(t, svc)

	err := ctrl.Delete(context.Background(), app.TaskRef{StorageType: "memory"})
	if !errors.Is(err, app.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if svc.CallCount() != 0 {
		t.Error("expected no request")
	}
	if rec.LastNotification().Message != "Task ID and storage type are required for deletion." {
		t.Errorf("unexpected message %q", rec.LastNotification().Message)
	}
}

func TestExport(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ExportData = "id,title\n1,Buy milk\n"
	dir := t.TempDir()
	rec := testutil.NewRecorder()
	ctrl := app.NewController(svc, rec, rec, app.Options{
		StorageType: "jsonfile",
		Downloader:  app.DirDownloader{Dir: dir},
	})

	path, err := ctrl.Export(context.Background(), app.ExportForm{Filename: "tasks", Format: "csv"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, "tasks.csv") {
		t.Errorf("unexpected path %q", path)
	}
	if svc.LastExport.StorageType != "jsonfile" {
		t.Errorf("expected configured storage type, got %q", svc.LastExport.StorageType)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != svc.ExportData {
		t.Errorf("unexpected file content %q", data)
	}
	if n := rec.LastNotification(); n.Level != app.LevelSuccess || n.Message != "Tasks exported to "+path {
		t.Errorf("unexpected notification %+v", n)
	}
}

func TestExport_RequiresFilenameAndFormat(t *testing.T) {
	svc := testutil.NewFakeService()
	ctrl, rec := newController(t, svc)

	_, err := ctrl.Export(context.Background(), app.ExportForm{Filename: "tasks"})
	if !errors.Is(err, app.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if svc.CallCount() != 0 {
		t.Error("expected no request")
	}
	if rec.LastNotification().Message != "Filename and format are required." {
		t.Errorf("unexpected message %q", rec.LastNotification().Message)
	}
}

func TestExport_ServerError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ExportErr = &service.APIError{Op: "export tasks", StatusCode: 400, Body: `{"detail":"Unsupported format"}`}
	ctrl, rec := newController(t, svc)

	_, err := ctrl.Export(context.Background(), app.ExportForm{Filename: "tasks", Format: "xml"})
	if err == nil {
		t.Fatal("expected error")
	}
	want := `Error exporting tasks: failed to export tasks: {"detail":"Unsupported format"}`
	if rec.LastNotification().Message != want {
		t.Errorf("expected %q, got %q", want, rec.LastNotification().Message)
	}
}

func TestShowSection(t *testing.T) {
	ctrl, rec := newController(t, testutil.NewFakeService())

	ctrl.ShowSection(app.SectionExport)

	if ctrl.State().Section() != app.SectionExport {
		t.Errorf("expected export section, got %q", ctrl.State().Section())
	}
	if len(rec.Sections) != 1 || rec.Sections[0] != app.SectionExport {
		t.Errorf("unexpected sections %v", rec.Sections)
	}
}

func TestConcurrentLoads(t *testing.T) {
	ctrl, _ := newController(t, seeded())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ctrl.Load(context.Background(), "")
		}()
	}
	wg.Wait()

	if len(ctrl.State().Snapshot()) != 2 {
		t.Errorf("expected a whole snapshot, got %d tasks", len(ctrl.State().Snapshot()))
	}
}
