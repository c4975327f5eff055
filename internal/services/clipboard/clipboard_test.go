package clipboard_test

import (
	"errors"
	"testing"

	"github.com/temirov/flatten/internal/services/clipboard"
)

func TestRecorderKeepsLastCopy(t *testing.T) {
	recorder := &clipboard.Recorder{}
	for _, text := range []string{"first", "second"} {
		if err := recorder.Copy(text); err != nil {
			t.Fatalf("Copy(%q) error: %v", text, err)
		}
	}
	if recorder.Text != "second" || recorder.Copies != 2 {
		t.Fatalf("unexpected recorder state %+v", recorder)
	}
}

func TestRecorderReturnsConfiguredError(t *testing.T) {
	recorder := &clipboard.Recorder{Err: clipboard.ErrUnavailable}
	if err := recorder.Copy("text"); !errors.Is(err, clipboard.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if recorder.Copies != 0 || recorder.Text != "" {
		t.Fatalf("expected nothing recorded, got %+v", recorder)
	}
}
