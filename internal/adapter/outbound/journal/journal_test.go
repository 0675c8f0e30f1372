package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "activity.db"), nil)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestJournalAppendAndRecent(t *testing.T) {
	t.Parallel()

	j := openTestJournal(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{At: base, Kind: KindLogin, Username: "jsmith", TokenFP: "ab12cd34"},
		{At: base.Add(time.Minute), Kind: KindRedirect, Detail: "/events -> /"},
		{At: base.Add(2 * time.Minute), Kind: KindLogout, Username: "jsmith"},
	}
	for _, e := range entries {
		if err := j.Append(ctx, e); err != nil {
			t.Fatalf("Append(%s) error: %v", e.Kind, err)
		}
	}

	got, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Recent() returned %d entries, want 3", len(got))
	}
	if got[0].Kind != KindLogout || got[2].Kind != KindLogin {
		t.Errorf("entries not newest-first: %s, %s, %s", got[0].Kind, got[1].Kind, got[2].Kind)
	}
	if got[2].Username != "jsmith" || got[2].TokenFP != "ab12cd34" {
		t.Errorf("login entry = %+v", got[2])
	}
	if got[0].ID == "" {
		t.Error("entry ID was not assigned")
	}
}

func TestJournalRecentLimit(t *testing.T) {
	t.Parallel()

	j := openTestJournal(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		e := Entry{
			At:   time.Date(2026, 8, 30, 12, i, 0, 0, time.UTC),
			Kind: KindHydrate,
		}
		if err := j.Append(ctx, e); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	got, err := j.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Recent(2) returned %d entries", len(got))
	}
}

func TestJournalAppendRequiresKind(t *testing.T) {
	t.Parallel()

	j := openTestJournal(t)
	if err := j.Append(context.Background(), Entry{Username: "jsmith"}); err == nil {
		t.Error("Append() accepted an entry without a kind")
	}
}

func TestJournalOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open("  ", nil); err == nil {
		t.Error("Open() accepted a blank path")
	}
}

func TestJournalSurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "activity.db")
	ctx := context.Background()

	j, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := j.Append(ctx, Entry{Kind: KindRegister, Username: "jsmith"}); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	j2, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer j2.Close()

	got, err := j2.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(got) != 1 || got[0].Kind != KindRegister {
		t.Errorf("Recent() after reopen = %+v", got)
	}
}
