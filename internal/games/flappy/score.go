package flappy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// DefaultBestKey is the key the best score is persisted under.
const DefaultBestKey = "bestFlappyBirdScore"

// errCorruptBest marks a stored best score that is not a non-negative integer.
var errCorruptBest = errors.New("flappy: corrupt best score")

// persistMu serializes read-modify-write of the best score between games
// running in one process, e.g. SSH sessions sharing a store.
var persistMu sync.Mutex

// KeyValueStore is the persistence the best score is kept in.
type KeyValueStore interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// ScoreStore tracks the current round score and the persisted best score.
// A nil store keeps the best score in memory only.
type ScoreStore struct {
	kv      KeyValueStore
	key     string
	current int
	best    int
}

// NewScoreStore creates a store persisting under key.
func NewScoreStore(kv KeyValueStore, key string) *ScoreStore {
	if key == "" {
		key = DefaultBestKey
	}
	return &ScoreStore{kv: kv, key: key}
}

// Load reads the best score. A missing key counts as zero. An unparsable value
// also counts as zero and is reported.
func (s *ScoreStore) Load() error {
	s.best = 0
	if s.kv == nil {
		return nil
	}

	persistMu.Lock()
	defer persistMu.Unlock()

	n, err := s.stored()
	if err != nil {
		return err
	}
	s.best = n
	return nil
}

// stored reads the persisted best score, zero when absent.
func (s *ScoreStore) stored() (int, error) {
	v, ok, err := s.kv.Get(s.key)
	if err != nil {
		return 0, fmt.Errorf("flappy: load best score: %w", err)
	}
	if !ok {
		return 0, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", errCorruptBest, v)
	}
	return n, nil
}

// Reset zeroes the current score.
func (s *ScoreStore) Reset() {
	s.current = 0
}

// Increment adds one point to the current score.
func (s *ScoreStore) Increment() {
	s.current++
}

// Finalize raises best to the current score if needed and persists it.
// The stored value is re-read first so a higher best written by another game
// sharing the store survives. Best is updated in memory even when persisting
// fails; a corrupt stored value is overwritten.
func (s *ScoreStore) Finalize() error {
	s.best = max(s.best, s.current)
	if s.kv == nil {
		return nil
	}

	persistMu.Lock()
	defer persistMu.Unlock()

	stored, err := s.stored()
	if err != nil && !errors.Is(err, errCorruptBest) {
		return err
	}
	s.best = max(s.best, stored)

	if err := s.kv.Set(s.key, strconv.Itoa(s.best)); err != nil {
		return fmt.Errorf("flappy: save best score: %w", err)
	}
	return nil
}

// Current returns the score of the round in progress.
func (s *ScoreStore) Current() int { return s.current }

// Best returns the highest score seen, persisted or not.
func (s *ScoreStore) Best() int { return s.best }
