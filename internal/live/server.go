// Package live recalculates the fuel curve over a websocket while the form is edited.
package live

import (
	"encoding/json"
	"net/http"

	"Olson/internal/calc/olson"
	"Olson/internal/log"
	"Olson/internal/middleware"

	"github.com/gorilla/websocket"
)

// maxMessageSize is far above any form payload.
const maxMessageSize = 4 << 10

// Reply carries either the samples or the message to show under the form.
type Reply struct {
	Samples olson.Series `json:"samples,omitempty"`
	Error   string       `json:"error,omitempty"`
}

type Server struct {
	upgrader websocket.Upgrader
	limiter  *middleware.IPRateLimiter
	maxYears int64
}

// NewServer builds the live endpoint. Every message takes a token from the
// sender's bucket in limiter, the same one the /api routes use.
func NewServer(upgrader websocket.Upgrader, limiter *middleware.IPRateLimiter, maxYears int64) *Server {
	return &Server{upgrader: upgrader, limiter: limiter, maxYears: maxYears}
}

// Answer validates one request and builds the answer for it.
func (s *Server) Answer(in olson.RawInput) Reply {
	params, err := olson.ValidateWithin(in, s.maxYears)
	if err != nil {
		return Reply{Error: olson.UserMessage(err)}
	}
	return Reply{Samples: olson.Calculate(params)}
}

// ServeWs handles websocket requests from the form. Each message is answered
// in order on the same connection.
func (s *Server) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnw("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnw("websocket read", "error", err)
			}
			return
		}
		var reply Reply
		var msg olson.RawInput
		switch {
		case !s.limiter.Allow(r):
			reply = Reply{Error: middleware.TooManyRequests}
		case json.Unmarshal(data, &msg) != nil:
			reply = Reply{Error: "Invalid request payload"}
		default:
			reply = s.Answer(msg)
		}
		if err := conn.WriteJSON(&reply); err != nil {
			log.Warnw("websocket write", "error", err)
			return
		}
	}
}
