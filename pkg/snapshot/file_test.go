package snapshot

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSink_WriteAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	sink := NewFileSink(path)

	err := sink.Write(func(w io.Writer) error {
		_, err := io.WriteString(w, "1|hello\n")
		return err
	})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	r, err := sink.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	body, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if string(body) != "1|hello\n" {
		t.Errorf("unexpected snapshot body %q", body)
	}
}

func TestFileSink_OpenMissingFile(t *testing.T) {
	sink := NewFileSink(filepath.Join(t.TempDir(), "never-written.txt"))

	_, err := sink.Open()
	if !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestFileSink_FailedWritePreservesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	sink := NewFileSink(path)

	if err := sink.Write(func(w io.Writer) error {
		_, err := io.WriteString(w, "1|original\n")
		return err
	}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	boom := errors.New("serialization failed")
	err := sink.Write(func(w io.Writer) error {
		_, _ = io.WriteString(w, "2|partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected write error, got %v", err)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot file: %v", err)
	}
	if string(body) != "1|original\n" {
		t.Errorf("previous snapshot corrupted by failed write: %q", body)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the snapshot file, found %d entries", len(entries))
	}
}

func TestFileSink_WriteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "catalog.txt")
	sink := NewFileSink(path)

	err := sink.Write(func(w io.Writer) error {
		_, err := io.WriteString(w, "1|x\n")
		return err
	})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("snapshot file missing: %v", err)
	}
}

func TestFileSink_WriteReplacesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	sink := NewFileSink(path)

	for _, body := range []string{"1|first\n", "2|second\n"} {
		b := body
		if err := sink.Write(func(w io.Writer) error {
			_, err := io.WriteString(w, b)
			return err
		}); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if string(got) != "2|second\n" {
		t.Errorf("expected latest snapshot, got %q", got)
	}
}
