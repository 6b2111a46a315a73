package httpserver

import (
	"net/http"
	"slices"
	"testing"
	"time"

	"github.com/robalobadob/hangman/internal/words"
)

func startDaily(t *testing.T, s *Server, theme, token string) (string, dailyNewRes) {
	t.Helper()
	w := do(t, s, http.MethodPost, "/api/daily/new", dailyNewReq{Theme: words.Theme(theme)}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("daily new: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if tok := w.Header().Get(sessionHeader); tok != "" {
		token = tok
	}
	return token, decode[dailyNewRes](t, w)
}

func fixedClock(s *Server, at time.Time) *time.Time {
	now := at
	s.now = func() time.Time { return now }
	return &now
}

func TestDailyWinAndLeaderboard(t *testing.T) {
	s := newTestServer(t)
	now := fixedClock(s, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))

	tok, res := startDaily(t, s, "pets", "")
	if res.Played || res.Date != "2026-03-14" || res.State == nil {
		t.Fatalf("daily start = %+v", res)
	}
	if !res.State.Daily || res.State.Status != "playing" {
		t.Errorf("daily state = %+v", res.State)
	}

	*now = now.Add(42 * time.Second)
	final := guessAll(t, s, tok, "CAT")
	if final.State.Status != "won" || !final.State.Daily {
		t.Fatalf("final daily state = %+v", final.State)
	}

	_, again := startDaily(t, s, "pets", tok)
	if !again.Played || again.State != nil {
		t.Errorf("second attempt = %+v", again)
	}

	w := do(t, s, http.MethodGet, "/api/daily/leaderboard?theme=pets", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("leaderboard: expected 200, got %d", w.Code)
	}
	lb := decode[lbRes](t, w)
	if lb.Date != "2026-03-14" || len(lb.Top) != 1 {
		t.Fatalf("leaderboard = %+v", lb)
	}
	if row := lb.Top[0]; row.WrongGuesses != 0 || row.ElapsedMs != 42000 || len(row.Player) != 8 {
		t.Errorf("row = %+v", row)
	}

	// A new day is a new puzzle.
	*now = now.Add(24 * time.Hour)
	_, next := startDaily(t, s, "pets", tok)
	if next.Played || next.Date != "2026-03-15" {
		t.Errorf("next day = %+v", next)
	}
}

func TestDailySamePuzzleForEveryone(t *testing.T) {
	s := newTestServer(t)
	fixedClock(s, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))

	_, a := startDaily(t, s, "long", "")
	_, b := startDaily(t, s, "long", "")
	if !slices.Equal(a.State.HintLetters, b.State.HintLetters) || a.State.Masked != b.State.Masked {
		t.Errorf("players got different puzzles: %v / %v", a.State.HintLetters, b.State.HintLetters)
	}
}

func TestDailyResumeAndAbandon(t *testing.T) {
	s := newTestServer(t)
	fixedClock(s, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))

	tok, _ := startDaily(t, s, "dogs", "")
	guessAll(t, s, tok, "X")

	// Asking again resumes the same puzzle.
	_, res := startDaily(t, s, "dogs", tok)
	if res.Played || res.State.WrongGuesses != 1 {
		t.Fatalf("resume = %+v", res)
	}

	// Leaving for a regular game forfeits the daily.
	w := do(t, s, http.MethodPost, "/api/game/new", newGameReq{Theme: "pets"}, tok)
	if w.Code != http.StatusOK {
		t.Fatalf("new game: expected 200, got %d", w.Code)
	}
	if st := decode[actionRes](t, w).State; st.Daily {
		t.Error("regular game flagged as daily")
	}

	_, res = startDaily(t, s, "dogs", tok)
	if !res.Played {
		t.Errorf("abandoned daily should count as played: %+v", res)
	}

	w = do(t, s, http.MethodGet, "/api/daily/leaderboard?theme=dogs", nil, "")
	if lb := decode[lbRes](t, w); len(lb.Top) != 0 {
		t.Errorf("losses on leaderboard: %+v", lb.Top)
	}
}

func TestDailyErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
	}{
		{"unknown theme", http.MethodPost, "/api/daily/new", dailyNewReq{Theme: "planets"}, http.StatusNotFound},
		{"bad json", http.MethodPost, "/api/daily/new", "{", http.StatusBadRequest},
		{"bad date", http.MethodGet, "/api/daily/leaderboard?date=yesterday", nil, http.StatusBadRequest},
		{"leaderboard unknown theme", http.MethodGet, "/api/daily/leaderboard?theme=planets", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, tt.method, tt.path, tt.body, "")
			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestDailyLeaderboardThemeIsNormalized(t *testing.T) {
	s := newTestServer(t)
	fixedClock(s, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))

	tok, _ := startDaily(t, s, "dogs", "")
	guessAll(t, s, tok, "DOG")

	w := do(t, s, http.MethodGet, "/api/daily/leaderboard?theme=%20Dogs%20", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if lb := decode[lbRes](t, w); lb.Theme != "dogs" || len(lb.Top) != 1 {
		t.Errorf("leaderboard = %+v", lb)
	}
}

func TestDailyKeptWhenNewGameFails(t *testing.T) {
	s := newTestServer(t)
	fixedClock(s, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))

	tok, _ := startDaily(t, s, "dogs", "")
	guessAll(t, s, tok, "X")

	w := do(t, s, http.MethodPost, "/api/game/new", newGameReq{Theme: "planets"}, tok)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	_, res := startDaily(t, s, "dogs", tok)
	if res.Played || res.State == nil || res.State.WrongGuesses != 1 || !res.State.Daily {
		t.Errorf("daily should still be in play: %+v", res)
	}

	// Any game switch forfeits it before the word changes.
	w = do(t, s, http.MethodPost, "/api/game/restart", nil, tok)
	if w.Code != http.StatusOK {
		t.Fatalf("restart: expected 200, got %d", w.Code)
	}
	if st := decode[actionRes](t, w).State; st.Daily || st.WrongGuesses != 0 {
		t.Errorf("after restart = %+v", st)
	}
	if _, res = startDaily(t, s, "dogs", tok); !res.Played {
		t.Errorf("restart should forfeit the daily: %+v", res)
	}
}
