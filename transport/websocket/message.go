package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

const (
	actionGameUpdate  = "game:update"
	actionGameTurn    = "game:turn"
	actionGameRestart = "game:restart"
	actionGameLeave   = "game:leave"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Game  *entity.Game `json:"game,omitempty"`
	Error string       `json:"error,omitempty"`
}

type turnPayload struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

func newMessage(action string, payload Payload) (*Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Message{Action: action, Payload: raw}, nil
}
