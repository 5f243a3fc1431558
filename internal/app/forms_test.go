package app

import (
	"errors"
	"testing"
)

func TestNormalizeDeadline(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantNil bool
		wantErr bool
	}{
		{in: "", wantNil: true},
		{in: "   ", wantNil: true},
		{in: "2024-05-01", want: "2024-05-01 23:59:00"},
		{in: " 2024-05-01 ", want: "2024-05-01 23:59:00"},
		{in: "2024-05-01 08:30:00", want: "2024-05-01 08:30:00"},
		{in: "2024-13-01", wantErr: true},
		{in: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeDeadline(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if got != nil {
					t.Errorf("expected nil, got %q", *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Errorf("expected %q, got %v", tt.want, got)
			}
		})
	}
}

func TestBuildCreate(t *testing.T) {
	req, err := BuildCreate(AddForm{
		Title:       "  Call bank ",
		Description: "ask about fees",
		Deadline:    "2024-05-01",
		StorageType: "sqlite",
	}, "pending")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Title != "Call bank" {
		t.Errorf("expected trimmed title, got %q", req.Title)
	}
	if req.Description == nil || *req.Description != "ask about fees" {
		t.Errorf("unexpected description %v", req.Description)
	}
	if req.Deadline == nil || *req.Deadline != "2024-05-01 23:59:00" {
		t.Errorf("unexpected deadline %v", req.Deadline)
	}
	if req.Status == nil || *req.Status != "pending" {
		t.Errorf("expected default status, got %v", req.Status)
	}
}

func TestBuildCreate_ExplicitStatus(t *testing.T) {
	req, err := BuildCreate(AddForm{Title: "x", Status: "completed", StorageType: "memory"}, "pending")
	if err != nil {
		t.Fatal(err)
	}
	if *req.Status != "completed" {
		t.Errorf("expected explicit status, got %q", *req.Status)
	}
}

func TestBuildUpdate(t *testing.T) {
	tests := []struct {
		name    string
		form    UpdateForm
		wantMsg string
	}{
		{"missing id", UpdateForm{StorageType: "memory", Title: "x"}, msgUpdateRequired},
		{"missing storage", UpdateForm{ID: "1", Title: "x"}, msgUpdateRequired},
		{"nothing to change", UpdateForm{ID: "1", StorageType: "memory"}, msgUpdateEmpty},
		{"whitespace only", UpdateForm{ID: "1", StorageType: "memory", Title: " ", Status: "\t"}, msgUpdateEmpty},
		{"bad deadline", UpdateForm{ID: "1", StorageType: "memory", Deadline: "05/01/2024"}, msgBadDeadline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := BuildUpdate(tt.form)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Msg != tt.wantMsg {
				t.Errorf("expected %q, got %q", tt.wantMsg, verr.Msg)
			}
		})
	}
}

func TestBuildUpdate_Deadline(t *testing.T) {
	id, req, err := BuildUpdate(UpdateForm{ID: " 7 ", StorageType: "jsonfile", Deadline: "2024-06-30"})
	if err != nil {
		t.Fatal(err)
	}
	if id != "7" {
		t.Errorf("expected trimmed id, got %q", id)
	}
	if req.Deadline == nil || *req.Deadline != "2024-06-30 23:59:00" {
		t.Errorf("unexpected deadline %v", req.Deadline)
	}
	if req.Title != nil || req.Description != nil || req.Status != nil {
		t.Errorf("expected other fields null, got %+v", req)
	}
	if req.StorageType != "jsonfile" {
		t.Errorf("unexpected storage %q", req.StorageType)
	}
}

func TestBuildExport(t *testing.T) {
	req, err := BuildExport(ExportForm{Filename: "tasks", Format: "csv"}, "sqlite")
	if err != nil {
		t.Fatal(err)
	}
	if req.StorageType != "sqlite" {
		t.Errorf("expected default storage, got %q", req.StorageType)
	}
	if ExportName(req) != "tasks.csv" {
		t.Errorf("unexpected name %q", ExportName(req))
	}

	if _, err := BuildExport(ExportForm{Format: "csv"}, "memory"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
