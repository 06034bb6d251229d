package snapshot

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"testing"
)

func newTestSQLiteSink(t *testing.T) *SQLiteSink {
	t.Helper()

	sink, err := NewSQLiteSink(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("NewSQLiteSink failed: %v", err)
	}
	t.Cleanup(func() { sink.Close() })
	return sink
}

func writeBody(t *testing.T, sink Sink, body string) {
	t.Helper()

	err := sink.Write(func(w io.Writer) error {
		_, err := io.WriteString(w, body)
		return err
	})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
}

func TestSQLiteSink_WriteAndOpen(t *testing.T) {
	sink := newTestSQLiteSink(t)

	writeBody(t, sink, "1|hello\n2|world\n")

	r, err := sink.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	body, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if string(body) != "1|hello\n2|world\n" {
		t.Errorf("unexpected snapshot body %q", body)
	}
}

func TestSQLiteSink_OpenEmpty(t *testing.T) {
	sink := newTestSQLiteSink(t)

	_, err := sink.Open()
	if !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestSQLiteSink_OpenReturnsNewest(t *testing.T) {
	sink := newTestSQLiteSink(t)

	writeBody(t, sink, "old\n")
	writeBody(t, sink, "new\n")

	r, err := sink.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	body, _ := io.ReadAll(r)
	if string(body) != "new\n" {
		t.Errorf("expected newest snapshot, got %q", body)
	}
}

func TestSQLiteSink_HistoryBound(t *testing.T) {
	sink, err := NewSQLiteSinkWithConfig(SQLiteSinkConfig{
		Path: filepath.Join(t.TempDir(), "snapshots.db"),
		Keep: 3,
	})
	if err != nil {
		t.Fatalf("NewSQLiteSinkWithConfig failed: %v", err)
	}
	defer sink.Close()

	for i := 0; i < 10; i++ {
		writeBody(t, sink, fmt.Sprintf("snapshot %d\n", i))
	}

	n, err := sink.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 retained snapshots, got %d", n)
	}

	r, err := sink.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	body, _ := io.ReadAll(r)
	if string(body) != "snapshot 9\n" {
		t.Errorf("expected newest snapshot, got %q", body)
	}
}

func TestSQLiteSink_FailedSerializationWritesNothing(t *testing.T) {
	sink := newTestSQLiteSink(t)

	boom := errors.New("serialization failed")
	err := sink.Write(func(w io.Writer) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected write error, got %v", err)
	}

	if _, err := sink.Open(); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("failed write should leave no snapshot, got %v", err)
	}
}

func TestSQLiteSink_CloseIdempotent(t *testing.T) {
	sink := newTestSQLiteSink(t)

	if err := sink.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
