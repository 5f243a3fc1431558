// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"taskman/internal/service"
)

// ErrNotFound is returned when a task is not in the requested partition.
var ErrNotFound = &service.APIError{Op: "get task", StatusCode: 404, Body: `{"detail":"Task not found"}`}

// FakeService is an in-memory implementation of service.Service for testing.
// Tasks live in per-storage-type partitions like on the real server.
type FakeService struct {
	mu     sync.RWMutex
	tasks  map[string][]service.Task // storage type -> tasks
	nextID int

	// DefaultStorage answers requests that name no storage type.
	DefaultStorage string

	// ExportData is returned by ExportTasks.
	ExportData string

	// Calls records every method call, e.g. "ListTasks(sqlite)".
	Calls []string

	// Last requests, for body assertions.
	LastCreate service.CreateRequest
	LastUpdate service.UpdateRequest
	LastExport service.ExportRequest

	// Error injection for testing
	ListTasksErr  error
	GetTaskErr    error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error
	ExportErr     error
}

// NewFakeService creates an empty FakeService whose default partition is "memory".
func NewFakeService() *FakeService {
	return &FakeService{
		tasks:          make(map[string][]service.Task),
		DefaultStorage: service.StorageMemory,
	}
}

// AddTask seeds a task into its storage partition.
func (f *FakeService) AddTask(task service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[task.StorageType] = append(f.tasks[task.StorageType], task)
}

// CallCount returns how many calls were recorded.
func (f *FakeService) CallCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.Calls)
}

func (f *FakeService) record(format string, args ...any) {
	f.Calls = append(f.Calls, fmt.Sprintf(format, args...))
}

func (f *FakeService) partition(storageType string) string {
	if storageType == "" {
		return f.DefaultStorage
	}
	return storageType
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, storageType string) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListTasks(%s)", storageType)
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}

	tasks := f.tasks[f.partition(storageType)]
	result := make([]service.Task, len(tasks))
	copy(result, tasks)
	return result, nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id, storageType string) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetTask(%s,%s)", id, storageType)
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}

	for _, t := range f.tasks[f.partition(storageType)] {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, ErrNotFound
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, req service.CreateRequest) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateTask(%s,%s)", req.Title, req.StorageType)
	f.LastCreate = req
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}

	f.nextID++
	task := service.Task{
		ID:          fmt.Sprintf("task-%d", f.nextID),
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Status:      service.StatusPending,
		StorageType: req.StorageType,
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	f.tasks[req.StorageType] = append(f.tasks[req.StorageType], task)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, req service.UpdateRequest) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateTask(%s,%s)", id, req.StorageType)
	f.LastUpdate = req
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}

	tasks := f.tasks[f.partition(req.StorageType)]
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		if req.Title != nil {
			tasks[i].Title = *req.Title
		}
		if req.Description != nil {
			tasks[i].Description = req.Description
		}
		if req.Deadline != nil {
			tasks[i].Deadline = req.Deadline
		}
		if req.Status != nil {
			tasks[i].Status = *req.Status
		}
		return tasks[i], nil
	}
	return service.Task{}, &service.APIError{Op: "update task", StatusCode: 404, Body: `{"detail":"Task not found"}`}
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id, storageType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteTask(%s,%s)", id, storageType)
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}

	key := f.partition(storageType)
	tasks := f.tasks[key]
	for i, t := range tasks {
		if t.ID == id {
			f.tasks[key] = append(tasks[:i], tasks[i+1:]...)
			return nil
		}
	}
	return &service.APIError{Op: "delete task", StatusCode: 404, Body: `{"detail":"Task not found"}`}
}

// ExportTasks implements service.Service.
func (f *FakeService) ExportTasks(ctx context.Context, req service.ExportRequest) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ExportTasks(%s,%s,%s)", req.Filename, req.Format, req.StorageType)
	f.LastExport = req
	if f.ExportErr != nil {
		return nil, f.ExportErr
	}
	return io.NopCloser(strings.NewReader(f.ExportData)), nil
}

// ErrUnavailable simulates a transport failure.
var ErrUnavailable = errors.New("connection refused")
