// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"io"
)

// Service defines the interface for task backend operations.
// All task API calls go through this interface.
// Commands and the core never import the HTTP backend directly.
type Service interface {
	// ListTasks returns every task, optionally scoped to one storage partition.
	// An empty storageType lets the server pick its default.
	ListTasks(ctx context.Context, storageType string) ([]Task, error)

	// GetTask returns a single task. Returns ErrNotFound if the server has no such task.
	GetTask(ctx context.Context, id, storageType string) (Task, error)

	// CreateTask creates a task and returns it as stored by the server.
	CreateTask(ctx context.Context, req CreateRequest) (Task, error)

	// UpdateTask applies a partial update and returns the updated task.
	UpdateTask(ctx context.Context, id string, req UpdateRequest) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id, storageType string) error

	// ExportTasks returns the server-rendered export stream.
	// The caller must close it.
	ExportTasks(ctx context.Context, req ExportRequest) (io.ReadCloser, error)
}
