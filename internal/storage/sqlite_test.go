package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
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

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreKeyValue(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Get("bestFlappyBirdScore"); err != nil || ok {
		t.Fatalf("Get() on empty store = ok %v, err %v; expected absent", ok, err)
	}

	if err := store.Set("bestFlappyBirdScore", "5"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set("bestFlappyBirdScore", "7"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}

	v, ok, err := store.Get("bestFlappyBirdScore")
	if err != nil || !ok || v != "7" {
		t.Errorf("Get() = %q, %v, %v; expected \"7\", true, nil", v, ok, err)
	}

	if err := store.Delete("bestFlappyBirdScore"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := store.Delete("bestFlappyBirdScore"); err != nil {
		t.Fatalf("Delete() of absent key failed: %v", err)
	}
	if _, ok, _ := store.Get("bestFlappyBirdScore"); ok {
		t.Error("key should be absent after Delete()")
	}
}

func TestStoreKeyValueSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Set("best", "12"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if v, ok, _ := store.Get("best"); !ok || v != "12" {
		t.Errorf("Get() after reopen = %q, %v; expected \"12\", true", v, ok)
	}
}

func TestStoreSaveAndTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("alice", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("bob", 150); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	want := []struct {
		player string
		score  int
	}{{"alice", 200}, {"bob", 150}, {"alice", 100}}
	for i, w := range want {
		if scores[i].Player != w.player || scores[i].Score != w.score {
			t.Errorf("scores[%d] = %s/%d, expected %s/%d", i, scores[i].Player, scores[i].Score, w.player, w.score)
		}
	}
}

func TestStoreHighScoreAndStats(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 with no rounds, got %d", high)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Rounds != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore("", 1)
	store.SaveScore("", 3)
	store.SaveScore("", 2)

	high, _ = store.HighScore()
	if high != 3 {
		t.Errorf("Expected high score of 3, got %d", high)
	}

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Rounds != 3 || stats.HighScore != 3 || stats.AvgScore != 2 {
		t.Errorf("stats = %+v, expected 3 rounds, high 3, avg 2", stats)
	}
}

func TestStoreClearScoresKeepsKeyValues(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("", 10)
	store.Set("best", "10")

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores(10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if v, ok, _ := store.Get("best"); !ok || v != "10" {
		t.Error("ClearScores should not touch the key/value table")
	}
}

func TestStoreBusyTimeout(t *testing.T) {
	store := openTestStore(t)

	var timeout int
	if err := store.db.QueryRow("PRAGMA busy_timeout").Scan(&timeout); err != nil {
		t.Fatalf("reading busy_timeout failed: %v", err)
	}
	if timeout != 5000 {
		t.Errorf("busy_timeout = %d, expected 5000", timeout)
	}
}

func TestStoreConcurrentWriters(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shared.db")

	stores := make([]*Store, 2)
	for i := range stores {
		s, err := Open(dbPath)
		if err != nil {
			t.Fatalf("Open() #%d failed: %v", i, err)
		}
		t.Cleanup(func() { s.Close() })
		stores[i] = s
	}

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers*2)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := stores[i%len(stores)]
			if _, err := s.SaveScore(fmt.Sprintf("p%d", i), i+1); err != nil {
				errs <- err
			}
			if err := s.Set("bestFlappyBirdScore", fmt.Sprint(i)); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent write failed: %v", err)
	}

	stats, err := stores[0].Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Rounds != writers {
		t.Errorf("Rounds = %d, expected %d", stats.Rounds, writers)
	}
}
