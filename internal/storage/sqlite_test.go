package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/bmkoscak/halloween-haunt/internal/haunt"
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

func TestStoreCreatesNestedDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestLoadProgressWithoutSave(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.LoadProgress()
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if ok {
		t.Error("Empty database should report no save")
	}
}

func TestSaveAndLoadProgressRoundTrip(t *testing.T) {
	store := openTestStore(t)

	want := haunt.SaveState{
		Level:    3,
		Score:    1480,
		Health:   4,
		Unlocked: []haunt.EffectKind{haunt.EffectMagnet, haunt.EffectZombie},
	}
	if err := store.SaveProgress(want); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}

	got, ok, err := store.LoadProgress()
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if !ok {
		t.Fatal("LoadProgress() reported no save after SaveProgress()")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip changed the save: got %+v, want %+v", got, want)
	}
}

func TestSaveProgressReplacesPreviousRun(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveProgress(haunt.SaveState{Level: 2, Score: 400, Health: 3}); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}
	if err := store.SaveProgress(haunt.SaveState{Level: 4, Score: 2100, Health: 1}); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}

	got, ok, err := store.LoadProgress()
	if err != nil || !ok {
		t.Fatalf("LoadProgress() = ok %v, err %v", ok, err)
	}
	if got.Level != 4 || got.Score != 2100 || got.Health != 1 {
		t.Errorf("save slot not replaced: %+v", got)
	}
}

func TestClearProgress(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveProgress(haunt.SaveState{Level: 2, Score: 400, Health: 3}); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}
	if err := store.ClearProgress(); err != nil {
		t.Fatalf("ClearProgress() failed: %v", err)
	}

	_, ok, err := store.LoadProgress()
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if ok {
		t.Error("Save should be gone after ClearProgress()")
	}
}

func TestCorruptUnlockedListIsDropped(t *testing.T) {
	store := openTestStore(t)

	_, err := store.db.Exec(
		"INSERT INTO save_state (id, level, score, health, unlocked) VALUES (1, 2, 300, 3, ?)",
		"1,garbage,99,3",
	)
	if err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}

	got, ok, err := store.LoadProgress()
	if err != nil || !ok {
		t.Fatalf("LoadProgress() = ok %v, err %v", ok, err)
	}
	want := []haunt.EffectKind{haunt.EffectRepel, haunt.EffectZombie}
	if !reflect.DeepEqual(got.Unlocked, want) {
		t.Errorf("Unlocked = %v, want malformed entries dropped: %v", got.Unlocked, want)
	}
}

func TestSubmitHighScoreOrdering(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 500, 300} {
		if _, err := store.SubmitHighScore("bmk", s, 2); err != nil {
			t.Fatalf("SubmitHighScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores()
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 300 || scores[2].Score != 100 {
		t.Errorf("Scores not in descending order: %v", scores)
	}
}

func TestSubmitHighScoreTrimsToLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < TopScoreLimit+3; i++ {
		if _, err := store.SubmitHighScore("bmk", (i+1)*100, 1); err != nil {
			t.Fatalf("SubmitHighScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores()
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != TopScoreLimit {
		t.Fatalf("Expected table trimmed to %d, got %d", TopScoreLimit, len(scores))
	}
	if scores[0].Score != 800 || scores[TopScoreLimit-1].Score != 400 {
		t.Errorf("Trim kept the wrong entries: %v", scores)
	}
}

func TestHighScoreTiesKeepEarlierEntry(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SubmitHighScore("first", 300, 2); err != nil {
		t.Fatalf("SubmitHighScore() failed: %v", err)
	}
	if _, err := store.SubmitHighScore("second", 300, 3); err != nil {
		t.Fatalf("SubmitHighScore() failed: %v", err)
	}

	scores, err := store.TopScores()
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores, got %d", len(scores))
	}
	if scores[0].Name != "first" {
		t.Errorf("Tie order wrong: %q came before %q", scores[0].Name, scores[1].Name)
	}
}

func TestHighScoreEmptyTable(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty table, got %d", high)
	}
}

func TestClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SubmitHighScore("bmk", 100, 1)
	store.SubmitHighScore("bmk", 200, 2)

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores()
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
}
