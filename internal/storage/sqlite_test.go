package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.SaveMatch(Match{Winner: WinnerPlayer, PlayerShots: 40, PlayerHits: 17})
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	m, err := store.MatchByID(id)
	if err != nil || m == nil {
		t.Fatalf("MatchByID() after reopen = %v, %v", m, err)
	}
}

func TestStoreSaveAndRetrieveMatch(t *testing.T) {
	store := openTestStore(t)

	want := Match{
		Winner:      WinnerAI,
		PlayerShots: 52,
		PlayerHits:  14,
		AIShots:     48,
		AIHits:      17,
		Difficulty:  "hard",
		Seed:        987654321,
		Duration:    3*time.Minute + 250*time.Millisecond,
	}

	id, err := store.SaveMatch(want)
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveMatch() returned non-UUID id %q: %v", id, err)
	}

	got, err := store.MatchByID(id)
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("MatchByID() returned nil for a saved match")
	}

	want.ID = id
	got.CreatedAt = time.Time{}
	if *got != want {
		t.Errorf("MatchByID() = %+v, want %+v", *got, want)
	}
}

func TestStoreKeepsExplicitID(t *testing.T) {
	store := openTestStore(t)
	id := uuid.NewString()

	got, err := store.SaveMatch(Match{ID: id, Winner: WinnerPlayer})
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if got != id {
		t.Errorf("SaveMatch() id = %q, want %q", got, id)
	}

	if _, err := store.SaveMatch(Match{ID: id, Winner: WinnerPlayer}); err == nil {
		t.Error("expected duplicate id to fail")
	}
}

func TestStoreRejectsUnknownWinner(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveMatch(Match{Winner: "draw"}); err == nil {
		t.Error("expected SaveMatch() to reject an unknown winner")
	}
}

func TestStoreMatchByIDMissing(t *testing.T) {
	store := openTestStore(t)

	m, err := store.MatchByID(uuid.NewString())
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if m != nil {
		t.Errorf("MatchByID() = %+v, want nil", m)
	}
}

func TestStoreRecentMatchesOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	// Save 5 matches with increasing shot counts
	for i := range 5 {
		if _, err := store.SaveMatch(Match{Winner: WinnerPlayer, PlayerShots: (i + 1) * 10}); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	matches, err := store.RecentMatches(3)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches with limit, got %d", len(matches))
	}

	// Newest first: 50, 40, 30
	if matches[0].PlayerShots != 50 || matches[1].PlayerShots != 40 || matches[2].PlayerShots != 30 {
		t.Errorf("Matches not in expected order: %+v", matches)
	}

	all, err := store.RecentMatches(0)
	if err != nil {
		t.Fatalf("RecentMatches(0) failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected default limit to return all 5 matches, got %d", len(all))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty store failed: %v", err)
	}
	if empty.Games != 0 || empty.WinRate() != 0 || empty.Accuracy() != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Stats() on empty store = %+v", empty)
	}

	matches := []Match{
		{Winner: WinnerPlayer, PlayerShots: 60, PlayerHits: 17, AIShots: 58, Difficulty: "normal"},
		{Winner: WinnerPlayer, PlayerShots: 45, PlayerHits: 17, AIShots: 44, Difficulty: "hard"},
		{Winner: WinnerAI, PlayerShots: 50, PlayerHits: 6, AIShots: 54, Difficulty: "hard"},
		{Winner: WinnerAI, PlayerShots: 40, PlayerHits: 10, AIShots: 40, Difficulty: "normal"},
	}
	for _, m := range matches {
		if _, err := store.SaveMatch(m); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Games != 4 || st.PlayerWins != 2 || st.AIWins != 2 {
		t.Errorf("game counts = %+v", st)
	}
	if st.TotalShots != 195 || st.TotalHits != 50 {
		t.Errorf("shot totals = %d/%d, want 195/50", st.TotalShots, st.TotalHits)
	}
	if st.BestWinShots != 45 {
		t.Errorf("BestWinShots = %d, want 45", st.BestWinShots)
	}
	if st.AvgAIShots != 49 {
		t.Errorf("AvgAIShots = %v, want 49", st.AvgAIShots)
	}
	if st.WinRate() != 0.5 {
		t.Errorf("WinRate() = %v, want 0.5", st.WinRate())
	}

	byDiff, err := store.StatsByDifficulty()
	if err != nil {
		t.Fatalf("StatsByDifficulty() failed: %v", err)
	}
	if len(byDiff) != 2 {
		t.Fatalf("Expected 2 difficulties, got %d", len(byDiff))
	}
	hard := byDiff["hard"]
	if hard == nil || hard.Games != 2 || hard.PlayerWins != 1 || hard.BestWinShots != 45 {
		t.Errorf("hard stats = %+v", hard)
	}
}

func TestStoreClearMatches(t *testing.T) {
	store := openTestStore(t)

	store.SaveMatch(Match{Winner: WinnerPlayer})
	store.SaveMatch(Match{Winner: WinnerAI})

	if err := store.ClearMatches(); err != nil {
		t.Fatalf("ClearMatches() failed: %v", err)
	}

	matches, _ := store.RecentMatches(10)
	if len(matches) != 0 {
		t.Errorf("Expected 0 matches after clear, got %d", len(matches))
	}
}

func TestMatchPlayerAccuracy(t *testing.T) {
	if got := (Match{}).PlayerAccuracy(); got != 0 {
		t.Errorf("accuracy with no shots = %v, want 0", got)
	}
	if got := (Match{PlayerShots: 40, PlayerHits: 10}).PlayerAccuracy(); got != 0.25 {
		t.Errorf("accuracy = %v, want 0.25", got)
	}
}
