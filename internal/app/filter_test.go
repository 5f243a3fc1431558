package app

import (
	"reflect"
	"testing"

	"taskman/internal/service"
)

func strPtr(s string) *string { return &s }

func sampleSnapshot() []service.Task {
	return []service.Task{
		{ID: "1", Title: "Buy milk", Status: "pending", Deadline: strPtr("2024-05-01 23:59:00"), StorageType: "jsonfile"},
		{ID: "2", Title: "Write report", Description: strPtr("Quarterly MILK numbers"), Status: "completed", StorageType: "sqlite"},
		{ID: "3", Title: "Call bank", Status: "Pending", Deadline: strPtr("2024-05-02T23:59:00"), StorageType: "sqlite"},
		{ID: "4", Title: "Plan trip", Status: "pending", StorageType: "memory"},
	}
}

func ids(tasks []service.Task) []string {
	out := []string{}
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"1", "2", "3", "4"}},
		{"text matches title or description", Filter{Text: "milk"}, []string{"1", "2"}},
		{"text is case-insensitive", Filter{Text: "BANK"}, []string{"3"}},
		{"text without description", Filter{Text: "trip"}, []string{"4"}},
		{"status ignores case", Filter{Status: "pending"}, []string{"1", "3", "4"}},
		{"status done matches nothing", Filter{Status: "done"}, []string{}},
		{"deadline date portion", Filter{Deadline: "2024-05-01"}, []string{"1"}},
		{"deadline ISO form", Filter{Deadline: "2024-05-02"}, []string{"3"}},
		{"deadline excludes tasks without one", Filter{Deadline: "2024-06-01"}, []string{}},
		{"storage type exact", Filter{StorageType: "sqlite"}, []string{"2", "3"}},
		{"conjunction", Filter{Text: "milk", StorageType: "sqlite"}, []string{"2"}},
		{"conjunction no match", Filter{Status: "completed", Deadline: "2024-05-01"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(sampleSnapshot(), tt.filter))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	snapshot := sampleSnapshot()
	f := Filter{Text: "a", Status: "pending"}

	first := Apply(snapshot, f)
	second := Apply(snapshot, f)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results, got %v and %v", ids(first), ids(second))
	}
	if !reflect.DeepEqual(snapshot, sampleSnapshot()) {
		t.Error("snapshot was modified")
	}
}

func TestApply_PendingVersusDone(t *testing.T) {
	snapshot := []service.Task{
		{Title: "Buy milk", Status: "pending", Deadline: strPtr("2024-05-01 23:59:00"), StorageType: "jsonfile"},
	}
	if got := Apply(snapshot, Filter{Status: "pending"}); len(got) != 1 {
		t.Errorf("expected task to match pending, got %d", len(got))
	}
	if got := Apply(snapshot, Filter{Status: "done"}); len(got) != 0 {
		t.Errorf("expected no match for done, got %d", len(got))
	}
}

func TestDatePart(t *testing.T) {
	tests := map[string]string{
		"2024-05-01 23:59:00": "2024-05-01",
		"2024-05-01T23:59:00": "2024-05-01",
		"2024-05-01":          "2024-05-01",
		"":                    "",
	}
	for in, want := range tests {
		if got := DatePart(in); got != want {
			t.Errorf("DatePart(%q) = %q, want %q", in, got, want)
		}
	}
}
