// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"errors"
	"fmt"
)

// Known task statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Known storage partitions on the server.
const (
	StorageMemory   = "memory"
	StorageJSONFile = "jsonfile"
	StorageSQLite   = "sqlite"
)

// StorageTypes lists the storage partitions the server is known to accept.
var StorageTypes = []string{StorageMemory, StorageJSONFile, StorageSQLite}

// Task represents a single task as returned by the server.
type Task struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
	Status      string  `json:"status"`
	StorageType string  `json:"storage_type"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// DescriptionText returns the description or "" when absent.
func (t Task) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// DeadlineText returns the deadline or "" when absent.
func (t Task) DeadlineText() string {
	if t.Deadline == nil {
		return ""
	}
	return *t.Deadline
}

// CreateRequest is the body of POST /tasks/add.
// Nil pointers are sent as JSON null.
type CreateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
	Status      *string `json:"status"`
	StorageType string  `json:"storage_type"`
}

// UpdateRequest is the body of PUT /tasks/update/{id}.
// Only non-nil fields are changed by the server.
type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
	Status      *string `json:"status"`
	StorageType string  `json:"storage_type"`
}

// ExportRequest holds the query of GET /tasks/export.
type ExportRequest struct {
	Filename    string
	Format      string
	StorageType string
}

// ErrNotFound is returned when the server does not know a task.
var ErrNotFound = errors.New("not found")

// APIError is a non-success response from the server.
// Body holds the server's JSON error verbatim, or "{}" when it sent none.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("failed to %s: %s", e.Op, e.Body)
}

// Is lets errors.Is(err, ErrNotFound) match a 404 response.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}
