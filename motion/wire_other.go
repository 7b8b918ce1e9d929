//go:build !js

package motion

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
)

// socketWire adapts a gorilla connection; gorilla allows one writer at a time
type socketWire struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func dialWire(ctx context.Context, url string) (wire, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	conn.SetReadLimit(maxMessageSize * 64)
	return &socketWire{conn: conn}, nil
}

func (w *socketWire) ReadMessage() ([]byte, error) {
	_, msg, err := w.conn.ReadMessage()
	return msg, err
}

func (w *socketWire) WriteMessage(msg []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteMessage(websocket.TextMessage, msg)
}

func (w *socketWire) Close() error {
	return w.conn.Close()
}
