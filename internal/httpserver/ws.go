package httpserver

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 1024
)

// wsMessage is sent to the client after every command.
type wsMessage struct {
	Type    string     `json:"type"` // state | error
	Action  string     `json:"action,omitempty"`
	Error   string     `json:"error,omitempty"`
	Outcome string     `json:"outcome,omitempty"`
	State   *stateView `json:"state,omitempty"`
}

func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || origin == s.cfg.ClientOrigin {
				return true
			}
			u, err := url.Parse(origin)
			return err == nil && u.Host == r.Host
		},
	}
}

// handleWS runs the play channel: one JSON command in, one message out.
// Commands use the same shape and rules as the JSON game routes.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	// The handshake response is written by the upgrader, so carry over a
	// freshly minted session cookie explicitly.
	hdr := http.Header{}
	for _, c := range w.Header().Values("Set-Cookie") {
		hdr.Add("Set-Cookie", c)
	}
	conn, err := s.upgrader().Upgrade(w, r, hdr)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()
	log.Info().Str("session", sess.ID).Msg("websocket connected")

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	// Initial snapshot so the client can render immediately.
	if !s.wsReply(conn, sess, command{Action: "state"}) {
		return
	}

	for {
		var cmd command
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("session", sess.ID).Msg("websocket read")
			}
			return
		}
		if !s.wsReply(conn, sess, cmd) {
			return
		}
	}
}

// wsReply executes cmd and writes the result; false means the connection is gone.
func (s *Server) wsReply(conn *websocket.Conn, sess *session, cmd command) bool {
	msg := wsMessage{Type: "state", Action: cmd.Action}
	res, err := s.exec(sess, cmd)
	if err != nil {
		_, code := statusFor(err)
		msg = wsMessage{Type: "error", Action: cmd.Action, Error: code}
	} else {
		msg.Outcome = string(res.Outcome)
		msg.State = &res.State
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		log.Debug().Err(err).Str("session", sess.ID).Msg("websocket write")
		return false
	}
	return true
}
