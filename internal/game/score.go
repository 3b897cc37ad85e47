package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tomz197/nyanko/internal/storage"
)

// Scoreboard tracks the running score and the high score it has to beat.
type Scoreboard struct {
	store storage.Store
	key   string
	Score int
	High  int
}

// LoadScoreboard reads the high score stored under key. A missing, unreadable
// or malformed value counts as 0; the returned error is informational only and
// the scoreboard is always usable. store may be nil.
func LoadScoreboard(store storage.Store, key string) (*Scoreboard, error) {
	b := &Scoreboard{store: store, key: key}
	if store == nil {
		return b, nil
	}

	raw, ok, err := store.Get(key)
	if err != nil {
		return b, fmt.Errorf("read high score: %w", err)
	}
	if ok {
		b.High = ParseHighScore(raw)
	}
	return b, nil
}

// ParseHighScore parses a stored high score. Anything that is not a
// non-negative decimal integer yields 0.
func ParseHighScore(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Add adds points to the running score.
func (b *Scoreboard) Add(points int) {
	b.Score += points
}

// Finalize records the end of a session. If the score beats the high score it
// becomes the new high score and is written back. The stored value never
// decreases: if another session stored a record at least as high in the
// meantime, that record is kept, adopted as High and this is no new record.
// newRecord is reported even if the write fails.
func (b *Scoreboard) Finalize() (newRecord bool, err error) {
	if b.Score <= b.High {
		return false, nil
	}
	if b.store == nil {
		b.High = b.Score
		return true, nil
	}

	u, ok := b.store.(storage.Updater)
	if !ok {
		b.High = b.Score
		if err := b.store.Set(b.key, strconv.Itoa(b.High)); err != nil {
			return true, fmt.Errorf("write high score: %w", err)
		}
		return true, nil
	}

	stored := 0
	err = u.Update(b.key, func(cur string, ok bool) (string, bool) {
		if ok {
			stored = ParseHighScore(cur)
		}
		if stored >= b.Score {
			return "", false
		}
		return strconv.Itoa(b.Score), true
	})
	if err != nil {
		b.High = b.Score
		return true, fmt.Errorf("write high score: %w", err)
	}
	if stored >= b.Score {
		b.High = stored
		return false, nil
	}
	b.High = b.Score
	return true, nil
}
