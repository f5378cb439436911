package storage

import (
	"path/filepath"
	"testing"
)

func TestEncryptedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "container.ejson")
	hists := sampleHists()

	if err := WriteEncrypted(path, hists, "s3cret"); err != nil {
		t.Fatalf("WriteEncrypted: %v", err)
	}

	t.Setenv(PassphraseEnv, "s3cret")
	st, err := OpenEncrypted(path)
	if err != nil {
		t.Fatalf("OpenEncrypted: %v", err)
	}
	defer st.Close()

	got, err := st.Histogram("mjj")
	if err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	assertSameH1(t, got, hists["mjj"])
}

func TestOpenEncryptedWrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "container.ejson")

	if err := WriteEncrypted(path, sampleHists(), "s3cret"); err != nil {
		t.Fatalf("WriteEncrypted: %v", err)
	}

	t.Setenv(PassphraseEnv, "wrong")
	if _, err := OpenEncrypted(path); err == nil {
		t.Error("OpenEncrypted succeeded with the wrong passphrase")
	}
}

func TestOpenEncryptedWithoutPassphrase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "container.ejson")

	if err := WriteEncrypted(path, sampleHists(), "s3cret"); err != nil {
		t.Fatalf("WriteEncrypted: %v", err)
	}

	t.Setenv(PassphraseEnv, "")
	if _, err := OpenEncrypted(path); err == nil {
		t.Error("OpenEncrypted succeeded without a passphrase")
	}
}

func TestWriteEncryptedEmptyPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "container.ejson")
	if err := WriteEncrypted(path, sampleHists(), ""); err == nil {
		t.Error("WriteEncrypted accepted an empty passphrase")
	}
}
