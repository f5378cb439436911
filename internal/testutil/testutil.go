package testutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/hist-tools/getyield/internal/storage"
	"github.com/hist-tools/getyield/pkg/hist"
)

// SampleH1 builds a histogram from per-bin contents and errors.
// contents and errs cover the full range including the under/overflow
// sentinels, so len(contents) = N+2.
func SampleH1(t *testing.T, name string, contents, errs []float64, labels []string) *hist.H1 {
	t.Helper()
	if len(contents) != len(errs) || len(contents) < 2 {
		t.Fatalf("SampleH1: bad fixture shape (%d contents, %d errors)", len(contents), len(errs))
	}

	h := hist.New(name, len(contents)-2)
	for i := range contents {
		h.SetBin(i, contents[i], errs[i])
	}
	h.Labels = labels

	if err := h.Validate(); err != nil {
		t.Fatalf("SampleH1: invalid fixture: %v", err)
	}
	return h
}

// WriteContainer writes a container file into dir, dispatching on the
// extension of filename the same way storage.Open does, and returns the
// full path.
func WriteContainer(t *testing.T, dir, filename string, hists map[string]*hist.H1) string {
	t.Helper()
	path := filepath.Join(dir, filename)

	var err error
	switch {
	case strings.HasSuffix(filename, ".json"):
		err = storage.WriteJSON(path, hists)
	case strings.HasSuffix(filename, ".ejson"):
		err = storage.WriteEncrypted(path, hists, Passphrase)
	case strings.HasSuffix(filename, ".duckdb"), strings.HasSuffix(filename, ".ddb"):
		err = storage.WriteDuckDB(path, hists)
	default:
		err = storage.WriteGob(path, hists)
	}
	if err != nil {
		t.Fatalf("Failed to write container %s: %v", filename, err)
	}
	return path
}

// Passphrase is the fixed passphrase WriteContainer uses for encrypted
// containers.
const Passphrase = "test-passphrase"
