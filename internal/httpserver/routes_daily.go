// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle.
// Exposes two endpoints under /api/daily:
//   - POST /api/daily/new         → start (or resume) today's puzzle for a theme
//   - GET  /api/daily/leaderboard → top results for a date and theme
//
// Every player gets the same word and hint letters for a theme on a given
// UTC day (see daily.Source). A player gets one attempt per theme per day:
// finishing records the result, and leaving an unfinished puzzle for another
// game records it as lost. Results are kept in memory only.

package httpserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/daily"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/words"
)

// dailyServer wraps dependencies for /api/daily endpoints.
type dailyServer struct {
	srv    *Server
	store  *daily.Store
	secret string
	active map[string]*dailyGame // in-progress daily puzzles keyed by session ID
	mu     sync.Mutex            // guards active
}

// dailyGame is the transient state of a daily puzzle being played.
type dailyGame struct {
	Date  string
	Theme words.Theme
	Start time.Time
}

func (d *dailyServer) isActive(sid string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.active[sid]
	return ok
}

// finish records the result of a finished daily puzzle, if one was in play.
func (d *dailyServer) finish(sid string, st game.State) {
	d.mu.Lock()
	dg, ok := d.active[sid]
	delete(d.active, sid)
	d.mu.Unlock()
	if !ok {
		return
	}
	d.store.InsertResult(daily.Result{
		PlayerID:     sid,
		Date:         dg.Date,
		Theme:        dg.Theme,
		Won:          st.Status() == game.StatusWon,
		WrongGuesses: st.WrongGuesses,
		ElapsedMs:    d.srv.now().Sub(dg.Start).Milliseconds(),
	})
	log.Info().Str("session", sid).Str("date", dg.Date).Str("theme", string(dg.Theme)).
		Bool("won", st.Status() == game.StatusWon).Msg("daily puzzle finished")
}

// abandon records an unfinished daily puzzle as lost.
func (d *dailyServer) abandon(sid string) {
	d.mu.Lock()
	dg, ok := d.active[sid]
	delete(d.active, sid)
	d.mu.Unlock()
	if !ok {
		return
	}
	d.store.InsertResult(daily.Result{
		PlayerID:     sid,
		Date:         dg.Date,
		Theme:        dg.Theme,
		WrongGuesses: game.MaxWrongGuesses,
		ElapsedMs:    d.srv.now().Sub(dg.Start).Milliseconds(),
	})
}

// drop forgets in-progress daily puzzles of expired sessions.
func (d *dailyServer) drop(sids []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, sid := range sids {
		delete(d.active, sid)
	}
}

// -----------------------------------------------------------------------------
// /api/daily/new

type dailyNewReq struct {
	Theme words.Theme `json:"theme"`
}

// dailyNewRes is returned by /api/daily/new. State is omitted when Played.
type dailyNewRes struct {
	Date   string      `json:"date"`
	Theme  words.Theme `json:"theme"`
	Played bool        `json:"played"`
	State  *stateView  `json:"state,omitempty"`
}

// handleNew starts today's puzzle for a theme.
//   - Already finished today → Played=true.
//   - Puzzle for this date/theme in progress → current state, unchanged.
//   - Otherwise start it from the day's deterministic source.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	var req dailyNewReq
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	theme := normalizeTheme(string(req.Theme))
	if !d.srv.catalog.Has(theme) {
		writeError(w, http.StatusNotFound, "theme_not_found")
		return
	}

	sess := sessionFrom(r)
	now := d.srv.now()
	date := daily.DateKey(now)

	if d.store.AlreadyPlayed(sess.ID, date, theme) {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Theme: theme, Played: true})
		return
	}

	d.mu.Lock()
	dg, resuming := d.active[sess.ID]
	resuming = resuming && dg.Date == date && dg.Theme == theme
	d.mu.Unlock()

	if !resuming {
		// Leaving another daily puzzle forfeits it.
		d.abandon(sess.ID)
		if err := sess.Engine.StartNewGameWith(theme, daily.Source(d.secret, date, theme)); err != nil {
			status, code := statusFor(err)
			writeError(w, status, code)
			return
		}
		d.mu.Lock()
		d.active[sess.ID] = &dailyGame{Date: date, Theme: theme, Start: now}
		d.mu.Unlock()
	}

	v := d.srv.view(sess.Engine.State(), true)
	writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Theme: theme, State: &v})
}

// -----------------------------------------------------------------------------
// /api/daily/leaderboard

// lbRow is one leaderboard line; players are shown by a short session prefix.
type lbRow struct {
	Player       string `json:"player"`
	WrongGuesses int    `json:"wrongGuesses"`
	ElapsedMs    int64  `json:"elapsedMs"`
}

// lbRes is returned by /api/daily/leaderboard.
type lbRes struct {
	Date  string      `json:"date"`
	Theme words.Theme `json:"theme"`
	Top   []lbRow     `json:"top"`
}

// handleLeaderboard returns the winners for ?date= (default today) and
// ?theme= (default the first catalog theme).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(d.srv.now())
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}
	theme := normalizeTheme(r.URL.Query().Get("theme"))
	if theme == "" {
		theme = d.srv.catalog.Themes()[0]
	}
	if !d.srv.catalog.Has(theme) {
		writeError(w, http.StatusNotFound, "theme_not_found")
		return
	}

	out := lbRes{Date: date, Theme: theme, Top: []lbRow{}}
	for _, res := range d.store.Leaderboard(date, theme, 20) {
		out.Top = append(out.Top, lbRow{
			Player:       shortID(res.PlayerID),
			WrongGuesses: res.WrongGuesses,
			ElapsedMs:    res.ElapsedMs,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
