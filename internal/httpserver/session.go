package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
)

const (
	sessionCookie = "hangman_session"
	// sessionHeader carries a freshly minted token for clients that do not keep cookies.
	sessionHeader = "X-Session-Token"

	sweepInterval = time.Minute
)

// session is placed into the request context by withSession.
type session struct {
	ID     string
	Engine *game.Engine
}

type ctxSessionKey struct{}

func sessionFrom(r *http.Request) *session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*session)
	return sess
}

// withSession resolves the caller's session, minting a new one (fresh engine,
// zero tally) when the token is missing, invalid, expired or unknown.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.lookupSession(r)
		if sess == nil {
			var err error
			sess, err = s.newSession(w, r)
			if err != nil {
				log.Error().Err(err).Msg("create session")
				writeError(w, http.StatusInternalServerError, "session_failed")
				return
			}
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) lookupSession(r *http.Request) *session {
	tok := bearerOrCookie(r)
	if tok == "" {
		return nil
	}
	sid, err := s.parseToken(tok)
	if err != nil {
		log.Debug().Err(err).Msg("rejecting session token")
		return nil
	}
	eng, err := s.store.Get(r.Context(), sid)
	if err != nil {
		return nil
	}
	return &session{ID: sid, Engine: eng}
}

func (s *Server) newSession(w http.ResponseWriter, r *http.Request) (*session, error) {
	s.sweepSessions(r.Context())

	sid := uuid.NewString()
	tok, exp, err := s.signToken(sid)
	if err != nil {
		return nil, err
	}
	eng := game.New(s.catalog, nil)
	if err := s.store.Save(r.Context(), sid, eng, exp); err != nil {
		return nil, err
	}
	s.setSessionCookie(w, tok, exp)
	w.Header().Set(sessionHeader, tok)
	log.Info().Str("session", sid).Msg("session created")
	return &session{ID: sid, Engine: eng}, nil
}

// sweepSessions drops sessions whose token has expired, together with any
// daily puzzle they left unfinished. It scans at most once per sweepInterval.
func (s *Server) sweepSessions(ctx context.Context) {
	now := s.now()
	s.sweepMu.Lock()
	if now.Before(s.nextSweep) {
		s.sweepMu.Unlock()
		return
	}
	s.nextSweep = now.Add(sweepInterval)
	s.sweepMu.Unlock()

	expired := s.store.Sweep(ctx, now)
	if len(expired) == 0 {
		return
	}
	s.daily.drop(expired)
	log.Info().Int("sessions", len(expired)).Msg("expired sessions removed")
}

// signToken creates an HS256 JWT naming the session, valid for SessionTTL.
func (s *Server) signToken(sid string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.cfg.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// parseToken verifies a token and returns its session ID.
func (s *Server) parseToken(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}
	if !t.Valid {
		return "", errors.New("invalid token")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("token has no session")
	}
	return sid, nil
}

// setSessionCookie writes the session cookie with appropriate security attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	secure := s.cfg.IsProduction()
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or session cookie.
func bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	return ""
}
