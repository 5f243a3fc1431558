package commands

import (
	"errors"
	"testing"
)

func TestParseTaskID(t *testing.T) {
	id, err := ParseTaskID([]string{" 7c9e "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "7c9e" {
		t.Errorf("expected trimmed id, got %q", id)
	}
}

func TestParseTaskID_None(t *testing.T) {
	id, err := ParseTaskID(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "" {
		t.Errorf("expected empty id, got %q", id)
	}
}

func TestParseTaskID_Extra(t *testing.T) {
	_, err := ParseTaskID([]string{"1", "2", "3"})
	if !errors.Is(err, ErrExtraArgs) {
		t.Fatalf("expected ErrExtraArgs, got %v", err)
	}
	if err.Error() != "unexpected arguments: 2 3" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
