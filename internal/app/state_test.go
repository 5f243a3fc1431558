package app

import (
	"testing"

	"taskman/internal/service"
)

func TestState_LoadedReplacesSnapshot(t *testing.T) {
	s := NewState().Loaded("", []service.Task{{ID: "1"}, {ID: "2"}})
	s = s.Loaded("sqlite", []service.Task{{ID: "3"}})

	snap := s.Snapshot()
	if len(snap) != 1 || snap[0].ID != "3" {
		t.Errorf("expected replaced snapshot, got %+v", snap)
	}
	if s.Scope() != "sqlite" {
		t.Errorf("unexpected scope %q", s.Scope())
	}
}

func TestState_TransitionsDoNotShareMemory(t *testing.T) {
	tasks := []service.Task{{ID: "1", Title: "a"}}
	s := NewState().Loaded("", tasks)
	tasks[0].Title = "changed"

	if s.Snapshot()[0].Title != "a" {
		t.Error("state must copy the fetched tasks")
	}

	snap := s.Snapshot()
	snap[0].Title = "changed"
	if s.Snapshot()[0].Title != "a" {
		t.Error("Snapshot must return a copy")
	}
}

func TestState_LoadFailedKeepsSnapshot(t *testing.T) {
	s := NewState().Loaded("", []service.Task{{ID: "1"}})
	s = s.LoadFailed("")

	v := s.View()
	if v.Err == "" || len(v.Tasks) != 0 {
		t.Errorf("expected inline error view, got %+v", v)
	}
	if len(s.Snapshot()) != 1 {
		t.Error("expected previous snapshot kept")
	}

	v = s.Filtered(Filter{}).View()
	if v.Err != "" || len(v.Tasks) != 1 {
		t.Errorf("expected filtering to show the snapshot again, got %+v", v)
	}
}

func TestState_Versions(t *testing.T) {
	s := NewState()
	var last uint64
	for _, next := range []State{
		s.Loaded("", nil),
		s.Loaded("", nil).Filtered(Filter{Text: "x"}),
		s.Loaded("", nil).Filtered(Filter{Text: "x"}).Showing(SectionAdd),
	} {
		if next.View().Version <= last {
			t.Fatalf("version did not increase: %d after %d", next.View().Version, last)
		}
		last = next.View().Version
	}
}

func TestState_Section(t *testing.T) {
	s := NewState()
	if s.Section() != SectionList {
		t.Errorf("expected list section first, got %q", s.Section())
	}
	if s.Showing(SectionExport).Section() != SectionExport {
		t.Error("expected export section")
	}
}
