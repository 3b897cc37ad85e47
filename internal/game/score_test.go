package game

import (
	"errors"
	"strconv"
	"testing"

	"github.com/tomz197/nyanko/internal/storage"
)

const key = "nyankoHighScore"

func TestParseHighScore(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"100", 100},
		{" 42\n", 42},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"12.5", 0},
		{"-7", 0},
	}
	for _, tt := range tests {
		if got := ParseHighScore(tt.raw); got != tt.want {
			t.Errorf("ParseHighScore(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestFinalizeKeepsMaximum(t *testing.T) {
	tests := []struct {
		name      string
		stored    int
		score     int
		newRecord bool
	}{
		{"beats", 100, 120, true},
		{"ties", 100, 100, false},
		{"below", 100, 50, false},
		{"first game", 0, 50, true},
		{"nothing scored", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemory()
			if err := store.Set(key, strconv.Itoa(tt.stored)); err != nil {
				t.Fatal(err)
			}
			b, err := LoadScoreboard(store, key)
			if err != nil {
				t.Fatal(err)
			}
			b.Add(tt.score)

			newRecord, err := b.Finalize()
			if err != nil {
				t.Fatal(err)
			}
			if newRecord != tt.newRecord {
				t.Fatalf("newRecord = %v, want %v", newRecord, tt.newRecord)
			}
			v, _, _ := store.Get(key)
			if want := strconv.Itoa(max(tt.stored, tt.score)); v != want {
				t.Fatalf("stored = %q, want %q", v, want)
			}
		})
	}
}

func TestFinalizeNeverLowersConcurrentRecord(t *testing.T) {
	store := storage.NewMemory()
	_ = store.Set(key, "100")
	b, _ := LoadScoreboard(store, key)
	b.Add(200)

	// Another session finished with 300 meanwhile.
	_ = store.Set(key, "300")

	if newRecord, err := b.Finalize(); err != nil || newRecord {
		t.Fatalf("Finalize = %v, %v; want no record below the stored 300", newRecord, err)
	}
	if v, _, _ := store.Get(key); v != "300" {
		t.Fatalf("stored = %q, want 300 kept", v)
	}
	if b.High != 300 {
		t.Fatalf("high = %d, want stored 300 adopted", b.High)
	}
}

func TestGameOverShowsConcurrentRecord(t *testing.T) {
	store := storage.NewMemory()
	g, _ := newTestGame(t, store)
	s := g.Session()
	s.Score.Add(200)

	// Another session stored a higher record while this one was playing.
	_ = store.Set(key, "300")
	knockDown(t, g)
	waitOutRevive(g)

	if s.State != StateGameOver {
		t.Fatalf("state = %v, want game over", s.State)
	}
	if s.HUD.GameOverText != "GAME OVER" {
		t.Fatalf("game over text = %q", s.HUD.GameOverText)
	}
	if s.HUD.HighScoreText != "High Score: 300" {
		t.Fatalf("high score text = %q", s.HUD.HighScoreText)
	}
}

type brokenStore struct{}

var errBroken = errors.New("disk on fire")

func (brokenStore) Get(string) (string, bool, error) { return "", false, errBroken }
func (brokenStore) Set(string, string) error         { return errBroken }

func TestStorageFailuresDegrade(t *testing.T) {
	b, err := LoadScoreboard(brokenStore{}, key)
	if !errors.Is(err, errBroken) {
		t.Fatalf("load err = %v", err)
	}
	if b.High != 0 {
		t.Fatalf("high = %d, want 0", b.High)
	}
	b.Add(50)
	newRecord, err := b.Finalize()
	if !newRecord || !errors.Is(err, errBroken) {
		t.Fatalf("Finalize = %v, %v", newRecord, err)
	}
	if b.High != 50 {
		t.Fatalf("in-memory high = %d, want 50", b.High)
	}
}

func TestGameOverRecordsHighScore(t *testing.T) {
	store := storage.NewMemory()
	_ = store.Set(key, "100")
	g, rec := newTestGame(t, store)
	s := g.Session()
	if s.HUD.HighScoreText != "High Score: 100" {
		t.Fatalf("high score text = %q", s.HUD.HighScoreText)
	}

	s.Score.Add(120)
	knockDown(t, g)
	waitOutRevive(g)

	if s.State != StateGameOver {
		t.Fatalf("state = %v", s.State)
	}
	if v, _, _ := store.Get(key); v != "120" {
		t.Fatalf("stored = %q, want 120", v)
	}
	if s.HUD.GameOverText != "NEW RECORD!\n120 pts" || s.HUD.HighScoreText != "High Score: 120" {
		t.Fatalf("hud = %+v", s.HUD)
	}
	e, ok := rec.last(EventGameOver)
	if !ok || !e.NewRecord || e.Score != 120 || e.HighScore != 120 {
		t.Fatalf("game over event = %+v", e)
	}

	if !g.Confirm() {
		t.Fatal("confirm did not restart")
	}
	next := g.Session()
	if next == s {
		t.Fatal("restart reused the session")
	}
	if next.Score.Score != 0 || next.Score.High != 120 || next.State != StateActive {
		t.Fatalf("restarted score=%d high=%d state=%v", next.Score.Score, next.Score.High, next.State)
	}
	if next.Targets.Len() != 0 || next.Now() != 0 || !next.Player.Visible {
		t.Fatal("restart carried state over")
	}
	if rec.count(EventSessionStarted) != 2 {
		t.Fatalf("session started events = %d, want 2", rec.count(EventSessionStarted))
	}
}

func TestGameOverBelowRecord(t *testing.T) {
	store := storage.NewMemory()
	_ = store.Set(key, "100")
	g, _ := newTestGame(t, store)
	s := g.Session()
	s.Score.Add(50)

	knockDown(t, g)
	waitOutRevive(g)

	if v, _, _ := store.Get(key); v != "100" {
		t.Fatalf("stored = %q, want 100", v)
	}
	if s.HUD.GameOverText != "GAME OVER" {
		t.Fatalf("game over text = %q", s.HUD.GameOverText)
	}
}

func TestSessionReportsStorageError(t *testing.T) {
	g, rec := newTestGame(t, brokenStore{})
	if rec.count(EventStorageError) != 1 {
		t.Fatal("load failure not reported")
	}
	g.Session().Score.Add(10)
	knockDown(t, g)
	waitOutRevive(g)
	if rec.count(EventStorageError) != 2 {
		t.Fatal("write failure not reported")
	}
	if g.Session().HUD.GameOverText != "NEW RECORD!\n10 pts" {
		t.Fatalf("game over text = %q", g.Session().HUD.GameOverText)
	}
}
