package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/words"
)

// command is one engine operation, shared by the JSON routes and /ws.
type command struct {
	Action string      `json:"action"` // new | restart | reset | guess | state
	Theme  words.Theme `json:"theme,omitempty"`
	Letter string      `json:"letter,omitempty"`
}

// actionRes is returned by every game endpoint.
type actionRes struct {
	Outcome game.Outcome `json:"outcome,omitempty"` // guess only
	State   stateView    `json:"state"`
}

var errUnknownAction = errors.New("unknown action")

// exec applies cmd to the session's engine and renders the resulting state.
func (s *Server) exec(sess *session, cmd command) (actionRes, error) {
	eng := sess.Engine
	var res actionRes

	// A daily puzzle in play is forfeited before its word is replaced.
	switch cmd.Action {
	case "new":
		theme := normalizeTheme(string(cmd.Theme))
		if !s.catalog.Has(theme) {
			return res, fmt.Errorf("%w: %q", words.ErrThemeNotFound, theme)
		}
		s.daily.abandon(sess.ID)
		if err := eng.StartNewGame(theme); err != nil {
			return res, err
		}
	case "restart":
		if eng.State().Theme == "" {
			return res, game.ErrNotStarted
		}
		s.daily.abandon(sess.ID)
		if err := eng.Restart(); err != nil {
			return res, err
		}
	case "reset":
		s.daily.abandon(sess.ID)
		eng.ResetGame()
	case "guess":
		o, err := eng.MakeGuess(cmd.Letter)
		if err != nil {
			return res, err
		}
		res.Outcome = o
	case "state":
	default:
		return res, errUnknownAction
	}

	st := eng.State()
	daily := s.daily.isActive(sess.ID)
	if cmd.Action == "guess" && res.Outcome != game.OutcomeIgnored && st.GameOver {
		log.Info().Str("session", sess.ID).Str("status", string(st.Status())).
			Int("wins", st.Wins).Int("losses", st.Losses).Msg("game finished")
		s.daily.finish(sess.ID, st)
	}
	res.State = s.view(st, daily)
	return res, nil
}

// normalizeTheme lowercases and trims a theme id from a request.
func normalizeTheme(s string) words.Theme {
	return words.Theme(strings.ToLower(strings.TrimSpace(s)))
}

// statusFor maps engine errors to HTTP status codes and error codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, words.ErrThemeNotFound):
		return http.StatusNotFound, "theme_not_found"
	case errors.Is(err, game.ErrInvalidLetter):
		return http.StatusBadRequest, "invalid_letter"
	case errors.Is(err, game.ErrNotStarted):
		return http.StatusConflict, "not_started"
	case errors.Is(err, errUnknownAction):
		return http.StatusBadRequest, "unknown_action"
	}
	return http.StatusInternalServerError, "internal_error"
}

func (s *Server) run(w http.ResponseWriter, r *http.Request, cmd command) {
	res, err := s.exec(sessionFrom(r), cmd)
	if err != nil {
		status, code := statusFor(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Str("action", cmd.Action).Msg("game action failed")
		}
		writeError(w, status, code)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// themeRes describes one theme for GET /api/themes.
type themeRes struct {
	ID    words.Theme `json:"id"`
	Title string      `json:"title"`
	Words int         `json:"words"`
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	out := []themeRes{}
	for _, t := range s.catalog.Themes() {
		out = append(out, themeRes{ID: t, Title: s.catalog.Title(t), Words: len(s.catalog.Entries(t))})
	}
	writeJSON(w, http.StatusOK, out)
}

// newGameReq is the payload for POST /api/game/new.
type newGameReq struct {
	Theme words.Theme `json:"theme"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Theme == "" {
		writeError(w, http.StatusBadRequest, "theme_required")
		return
	}
	s.run(w, r, command{Action: "new", Theme: req.Theme})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, command{Action: "restart"})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, command{Action: "reset"})
}

// guessReq is the payload for POST /api/game/guess.
type guessReq struct {
	Letter string `json:"letter"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.run(w, r, command{Action: "guess", Letter: req.Letter})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, command{Action: "state"})
}
