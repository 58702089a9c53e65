package websocket

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// connection serialises writes; gorilla allows one concurrent writer per connection.
type connection struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	gameID string
}

func (that *connection) send(action string, payload Payload) error {
	message, err := newMessage(action, payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err = that.conn.WriteJSON(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *connection) sendError(action, errorMsg string) error {
	return that.send(action, Payload{Error: errorMsg})
}

func (that *connection) closeNormally(reason string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	_ = that.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
