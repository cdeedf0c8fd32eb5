package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/zhyswan/fingerprintjs/internal/component"
	"github.com/zhyswan/fingerprintjs/internal/confidence"
	"github.com/zhyswan/fingerprintjs/internal/identity"
	"github.com/zhyswan/fingerprintjs/internal/logging"
	"github.com/zhyswan/fingerprintjs/internal/probe"
	"github.com/zhyswan/fingerprintjs/internal/testsupport"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store, err := Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleResult(t *testing.T, platform string) *identity.Result {
	t.Helper()
	set, err := component.Zip(
		[]string{"platform", "cpu"},
		[]probe.Outcome{
			{Value: platform, Duration: 2 * time.Millisecond},
			{Value: 8, Duration: time.Millisecond},
		},
	)
	if err != nil {
		t.Fatalf("Zip: %v", err)
	}
	return &identity.Result{
		RunID:         uuid.NewString(),
		Components:    set,
		Confidence:    confidence.FromComponents(set),
		SchemaVersion: identity.SchemaVersion,
		CreatedAt:     time.Now(),
	}
}

func TestRecordAndGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	result := sampleResult(t, "linux")
	if err := store.Record(ctx, result); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entry, err := store.Get(ctx, result.RunID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry.RunID != result.RunID {
		t.Fatalf("RunID = %q, want %q", entry.RunID, result.RunID)
	}
	if entry.Identifier != result.Identifier() {
		t.Fatalf("Identifier = %q, want %q", entry.Identifier, result.Identifier())
	}
	if entry.SchemaVersion != identity.SchemaVersion {
		t.Fatalf("SchemaVersion = %q", entry.SchemaVersion)
	}
	if entry.CreatedAt.IsZero() {
		t.Fatal("CreatedAt not persisted")
	}

	var decoded struct {
		Identifier string `json:"identifier"`
		RunID      string `json:"runId"`
	}
	if err := json.Unmarshal(entry.Result, &decoded); err != nil {
		t.Fatalf("stored result_json invalid: %v", err)
	}
	if decoded.Identifier != result.Identifier() || decoded.RunID != result.RunID {
		t.Fatalf("stored payload mismatch: %+v", decoded)
	}
}

func TestGetMissingRunIsNotFound(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.Get(context.Background(), "no-such-run"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var runIDs []string
	for i := 0; i < 3; i++ {
		result := sampleResult(t, fmt.Sprintf("linux-%d", i))
		if err := store.Record(ctx, result); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
		runIDs = append(runIDs, result.RunID)
	}

	entries, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(entries))
	}
	if entries[0].RunID != runIDs[2] || entries[1].RunID != runIDs[1] {
		t.Fatalf("List order wrong: %q, %q", entries[0].RunID, entries[1].RunID)
	}
}

func TestFindByIdentifierPrefix(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	result := sampleResult(t, "linux")
	if err := store.Record(ctx, result); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := store.FindByIdentifier(ctx, result.Identifier()[:8])
	if err != nil {
		t.Fatalf("FindByIdentifier: %v", err)
	}
	if len(entries) != 1 || entries[0].RunID != result.RunID {
		t.Fatalf("prefix search failed: %+v", entries)
	}

	if _, err := store.FindByIdentifier(ctx, "   "); err == nil {
		t.Fatal("empty prefix should be rejected")
	}
}

func TestPruneKeepsMostRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var runIDs []string
	for i := 0; i < 5; i++ {
		result := sampleResult(t, fmt.Sprintf("host-%d", i))
		if err := store.Record(ctx, result); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
		runIDs = append(runIDs, result.RunID)
	}

	removed, err := store.Prune(ctx, 2)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 3 {
		t.Fatalf("removed = %d, want 3", removed)
	}

	entries, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("%d entries survived, want 2", len(entries))
	}
	if entries[0].RunID != runIDs[4] || entries[1].RunID != runIDs[3] {
		t.Fatalf("wrong survivors: %q, %q", entries[0].RunID, entries[1].RunID)
	}
}

func TestOpenRejectsSecondProcess(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first, err := Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	defer first.Close()

	if second, err := Open(cfg, logging.NewNop()); err == nil {
		second.Close()
		t.Fatal("second Open should fail while the lock is held")
	}
}

func TestOpenRequiresPath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.History.Path = "   "
	if _, err := Open(cfg, logging.NewNop()); err == nil {
		t.Fatal("expected error for empty history path")
	}
}
