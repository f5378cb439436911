package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestGobRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "container.hists")
	hists := sampleHists()

	if err := WriteGob(path, hists); err != nil {
		t.Fatalf("WriteGob: %v", err)
	}

	st, err := OpenGob(path)
	if err != nil {
		t.Fatalf("OpenGob: %v", err)
	}
	defer st.Close()

	for name, want := range hists {
		got, err := st.Histogram(name)
		if err != nil {
			t.Fatalf("Histogram(%s): %v", name, err)
		}
		assertSameH1(t, got, want)
	}

	if _, err := st.Histogram("absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Histogram(absent) error = %v, want ErrNotFound", err)
	}
}

func TestOpenGobMissingFile(t *testing.T) {
	if _, err := OpenGob(filepath.Join(t.TempDir(), "nope.hists")); err == nil {
		t.Error("OpenGob succeeded on a missing file")
	}
}
