package daily

import (
	"cmp"
	"slices"
	"sync"

	"github.com/robalobadob/hangman/internal/words"
)

type Result struct {
	PlayerID     string      `json:"playerId"`
	Date         string      `json:"date"`
	Theme        words.Theme `json:"theme"`
	Won          bool        `json:"won"`
	WrongGuesses int         `json:"wrongGuesses"`
	ElapsedMs    int64       `json:"elapsedMs"`

	seq int
}

// Store keeps daily results in memory for the life of the process.
type Store struct {
	mu      sync.Mutex
	results map[string]Result // keyed by player|date|theme
	seq     int
}

func NewStore() *Store { return &Store{results: make(map[string]Result)} }

func key(playerID, date string, theme words.Theme) string {
	return playerID + "|" + date + "|" + string(theme)
}

func (s *Store) AlreadyPlayed(playerID, date string, theme words.Theme) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.results[key(playerID, date, theme)]
	return ok
}

// InsertResult records r unless the player already has a result for that
// date and theme, in which case it is ignored and false is returned.
func (s *Store) InsertResult(r Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(r.PlayerID, r.Date, r.Theme)
	if _, ok := s.results[k]; ok {
		return false
	}
	s.seq++
	r.seq = s.seq
	s.results[k] = r
	return true
}

// Leaderboard returns the top won results for a date and theme, ordered by
// wrong guesses, then elapsed time, then arrival. limit <= 0 means 20.
func (s *Store) Leaderboard(date string, theme words.Theme, limit int) []Result {
	if limit <= 0 {
		limit = 20
	}
	s.mu.Lock()
	out := make([]Result, 0, limit)
	for _, r := range s.results {
		if r.Date == date && r.Theme == theme && r.Won {
			out = append(out, r)
		}
	}
	s.mu.Unlock()

	slices.SortFunc(out, func(a, b Result) int {
		return cmp.Or(
			cmp.Compare(a.WrongGuesses, b.WrongGuesses),
			cmp.Compare(a.ElapsedMs, b.ElapsedMs),
			cmp.Compare(a.seq, b.seq),
		)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
