package app

import (
	"errors"
	"strings"
	"time"

	"taskman/internal/service"
)

const (
	dateLayout     = "2006-01-02"
	deadlineLayout = "2006-01-02 15:04:05"

	// endOfDay is appended to a date-only deadline.
	endOfDay = "23:59:00"
)

// User-facing validation messages.
const (
	msgAddRequired    = "Task title and storage type are required."
	msgFindRequired   = "Task ID and storage type are required."
	msgUpdateRequired = "Task ID and storage type are required for update."
	msgUpdateEmpty    = "Fill at least one field to update."
	msgDeleteRequired = "Task ID and storage type are required for deletion."
	msgExportRequired = "Filename and format are required."
	msgBadDeadline    = "Deadline must be a date (YYYY-MM-DD)."
)

// ErrValidation matches every ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError is a client-side rejection. No request was sent.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// AddForm holds the add section's inputs.
type AddForm struct {
	Title       string
	Description string
	Deadline    string
	Status      string
	StorageType string
}

// TaskRef identifies one task in one storage partition.
// Used by the find, done and delete actions.
type TaskRef struct {
	ID          string
	StorageType string
}

// UpdateForm holds the update section's inputs. Empty fields are left unchanged.
type UpdateForm struct {
	ID          string
	Title       string
	Description string
	Deadline    string
	Status      string
	StorageType string
}

// ExportForm holds the export section's inputs.
type ExportForm struct {
	Filename    string
	Format      string
	StorageType string
}

// NormalizeDeadline turns a date into the wire timestamp at end of day.
// An empty value yields nil. A full "YYYY-MM-DD HH:MM:SS" timestamp is passed through.
func NormalizeDeadline(s string) (*string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if _, err := time.Parse(dateLayout, s); err == nil {
		v := s + " " + endOfDay
		return &v, nil
	}
	if _, err := time.Parse(deadlineLayout, s); err == nil {
		return &s, nil
	}
	return nil, invalid(msgBadDeadline)
}

// BuildCreate validates an add form and builds the create request.
// defaultStatus is sent when the form leaves the status empty.
func BuildCreate(f AddForm, defaultStatus string) (service.CreateRequest, error) {
	title := strings.TrimSpace(f.Title)
	storageType := strings.TrimSpace(f.StorageType)
	if title == "" || storageType == "" {
		return service.CreateRequest{}, invalid(msgAddRequired)
	}

	deadline, err := NormalizeDeadline(f.Deadline)
	if err != nil {
		return service.CreateRequest{}, err
	}

	status := strings.TrimSpace(f.Status)
	if status == "" {
		status = defaultStatus
	}

	return service.CreateRequest{
		Title:       title,
		Description: optional(f.Description),
		Deadline:    deadline,
		Status:      optional(status),
		StorageType: storageType,
	}, nil
}

// BuildUpdate validates an update form and builds the partial update.
// Returns the trimmed task id alongside the request.
func BuildUpdate(f UpdateForm) (string, service.UpdateRequest, error) {
	id := strings.TrimSpace(f.ID)
	storageType := strings.TrimSpace(f.StorageType)
	if id == "" || storageType == "" {
		return "", service.UpdateRequest{}, invalid(msgUpdateRequired)
	}

	deadline, err := NormalizeDeadline(f.Deadline)
	if err != nil {
		return "", service.UpdateRequest{}, err
	}

	req := service.UpdateRequest{
		Title:       optional(f.Title),
		Description: optional(f.Description),
		Deadline:    deadline,
		Status:      optional(f.Status),
		StorageType: storageType,
	}
	if req.Title == nil && req.Description == nil && req.Deadline == nil && req.Status == nil {
		return "", service.UpdateRequest{}, invalid(msgUpdateEmpty)
	}
	return id, req, nil
}

// Validate trims r and checks both fields are present.
// msg is the rejection shown to the user.
func (r TaskRef) Validate(msg string) (TaskRef, error) {
	r.ID = strings.TrimSpace(r.ID)
	r.StorageType = strings.TrimSpace(r.StorageType)
	if r.ID == "" || r.StorageType == "" {
		return TaskRef{}, invalid(msg)
	}
	return r, nil
}

// BuildExport validates an export form. An empty storage type falls back to defaultStorage.
func BuildExport(f ExportForm, defaultStorage string) (service.ExportRequest, error) {
	filename := strings.TrimSpace(f.Filename)
	format := strings.TrimSpace(f.Format)
	if filename == "" || format == "" {
		return service.ExportRequest{}, invalid(msgExportRequired)
	}
	storageType := strings.TrimSpace(f.StorageType)
	if storageType == "" {
		storageType = defaultStorage
	}
	return service.ExportRequest{
		Filename:    filename,
		Format:      format,
		StorageType: storageType,
	}, nil
}

// ExportName is the local file name of a download.
func ExportName(req service.ExportRequest) string {
	return req.Filename + "." + req.Format
}

// optional returns nil for an empty (trimmed) value.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
