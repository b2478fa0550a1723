package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/pefman/duel-arena/internal/game"
	"github.com/pefman/duel-arena/internal/models"
)

// checkOrigin applies the configured CORS origin to websocket upgrades.
// Requests without an Origin header come from non-browser clients.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || s.opts.CORSOrigin == "" || s.opts.CORSOrigin == "*" {
		return true
	}
	return origin == s.opts.CORSOrigin
}

type clientIn struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// GET /ws/battles
// Client sends {"type":"battle","data":{"combatant_a":1,"combatant_b":2}}.
// Server answers with one "turn" message per exchange and a final "result",
// or a single "error".
func (s *Server) battleStream(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: s.checkOrigin}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		log.Printf("ws: upgrade failed from=%s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()
	log.Printf("ws: connect from=%s", r.RemoteAddr)

	ctx := r.Context()
	for {
		var in clientIn
		if err := conn.ReadJSON(&in); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("ws: read error from=%s: %v", r.RemoteAddr, err)
			}
			return
		}
		switch in.Type {
		case "battle":
			var req models.BattleRequest
			if err := json.Unmarshal(in.Data, &req); err != nil {
				if !writeWS(conn, "error", errorBody(http.StatusBadRequest, "invalid request")) {
					return
				}
				continue
			}
			res, err := s.svc.FightStream(ctx, req.CombatantA, req.CombatantB, func(t game.Turn) error {
				return conn.WriteJSON(models.WsMsg{Type: "turn", Data: t})
			})
			if err != nil {
				if res.Battle.ID != "" {
					// Fight succeeded; the stream itself broke.
					log.Printf("ws: stream battle %s aborted: %v", res.Battle.ID, err)
					return
				}
				code, msg := statusFor(err)
				if !writeWS(conn, "error", errorBody(code, msg)) {
					return
				}
				continue
			}
			if !writeWS(conn, "result", newBattleResponse(res)) {
				return
			}
		default:
			if !writeWS(conn, "error", errorBody(http.StatusBadRequest, "unknown message type "+in.Type)) {
				return
			}
		}
	}
}

func writeWS(conn *websocket.Conn, typ string, data any) bool {
	if err := conn.WriteJSON(models.WsMsg{Type: typ, Data: data}); err != nil {
		log.Printf("ws: write error: %v", err)
		return false
	}
	return true
}
