package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// wsConn adapts a gorilla connection to the registry's Conn interface.
// gorilla allows one concurrent writer, so sends serialize on a mutex; each
// write gets a fresh deadline so one stuck peer cannot wedge a broadcast
// goroutine forever.
type wsConn struct {
	conn          *websocket.Conn
	writeDeadline time.Duration

	mu     sync.Mutex
	closed bool
}

func newWSConn(conn *websocket.Conn, writeDeadline time.Duration) *wsConn {
	if writeDeadline <= 0 {
		writeDeadline = 5 * time.Second
	}
	return &wsConn{conn: conn, writeDeadline: writeDeadline}
}

func (c *wsConn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return websocket.ErrCloseSent
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeDeadline)); err != nil {
		return err
	}
	err := c.conn.WriteMessage(websocket.TextMessage, data)
	if err != nil {
		c.closed = true
	}
	return err
}

func (c *wsConn) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

// markClosed flips the open flag; the transport owns the actual socket close.
func (c *wsConn) markClosed() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}
