package transport

import (
	"sync"

	"github.com/gorilla/websocket"
)

// WSTransport adapts a *websocket.Conn to vis.Transport. Writes are
// serialized with a mutex since gorilla/websocket forbids concurrent
// writers on one connection, and the engine's connection manager may
// call Send from whatever goroutine handled the mutation that dirtied a
// window while the stream handler's read loop runs concurrently on the
// same connection.
type WSTransport struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWSTransport wraps conn.
func NewWSTransport(conn *websocket.Conn) *WSTransport {
	return &WSTransport{conn: conn}
}

// Send writes payload as one binary websocket message.
func (w *WSTransport) Send(payload []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteMessage(websocket.BinaryMessage, payload)
}

// Close closes the underlying connection.
func (w *WSTransport) Close() error {
	return w.conn.Close()
}
