package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"EarthsFirewall/internal/game"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type wsCommand struct {
	Strategy string `json:"strategy,omitempty"`
}

// handleGameWS streams session state to one client and accepts game
// commands over the same socket. The session must already exist. All
// writes happen on this goroutine; the reader only forwards commands.
func (a *App) handleGameWS(w http.ResponseWriter, r *http.Request) {
	s, ok := a.sessionFromQuery(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.Logger.Error("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	commands := make(chan inboundMessage, 8)
	go readCommands(conn, commands)

	ticker := time.NewTicker(time.Duration(float64(time.Second) / game.UpdateRateHz))
	defer ticker.Stop()

	for {
		select {
		case msg, open := <-commands:
			if !open {
				return
			}
			if reply := a.applyCommand(s, msg); reply != nil {
				if err := conn.WriteJSON(reply); err != nil {
					return
				}
			}
		case <-ticker.C:
			snap := s.Snapshot()
			msg := outboundMessage{Type: "state", Payload: toSessionDTO(snap)}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
			// One final frame carries the result, then the feed closes.
			if snap.State == game.StateVictory || snap.State == game.StateGameOver {
				end := outboundMessage{Type: "game_end", Payload: toSessionDTO(snap)}
				_ = conn.WriteJSON(end)
				return
			}
		}
	}
}

func readCommands(conn *websocket.Conn, commands chan<- inboundMessage) {
	defer close(commands)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		commands <- msg
	}
}

// applyCommand executes one inbound command, returning the frame to
// send back, or nil when there is nothing to say.
func (a *App) applyCommand(s *game.Session, msg inboundMessage) *outboundMessage {
	switch msg.Type {
	case "deflect":
		var cmd wsCommand
		if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
			return nil
		}
		res, err := s.Attempt(cmd.Strategy)
		if err != nil {
			return &outboundMessage{Type: "error", Payload: errorDTO{Error: err.Error()}}
		}
		if s.MarkRecorded() {
			a.recordOutcome(s.Snapshot())
		}
		return &outboundMessage{Type: "deflect_result", Payload: res}
	case "pause":
		if err := s.Pause(); err != nil {
			return &outboundMessage{Type: "error", Payload: errorDTO{Error: err.Error()}}
		}
	case "resume":
		if err := s.Resume(); err != nil {
			return &outboundMessage{Type: "error", Payload: errorDTO{Error: err.Error()}}
		}
	case "start", "reset":
		s.Reset()
	default:
		a.Logger.Debug("ws: unknown message type", "type", msg.Type)
	}
	return nil
}
