package connection

import (
	"bytes"
	"context"
	"net"
	"sync"

	"github.com/gorilla/websocket"
)

// WebSocketTransport carries the line protocol over a WebSocket, as exposed
// by browser-facing Pi API bridges. Each Flush sends the buffered lines as a
// single text message; inbound messages are treated as a byte stream.
type WebSocketTransport struct {
	conn    *websocket.Conn
	out     bytes.Buffer
	in      []byte // unread part of the current inbound message
	inbound chan []byte
	done    chan struct{}
	readErr error // set before inbound is closed

	closeOnce sync.Once
}

// NewWebSocketTransport wraps an established WebSocket connection and starts
// its reader.
func NewWebSocketTransport(conn *websocket.Conn) *WebSocketTransport {
	t := &WebSocketTransport{
		conn:    conn,
		inbound: make(chan []byte, 16),
		done:    make(chan struct{}),
	}
	go t.readMessages()
	return t
}

// DialWebSocket opens a WebSocket transport to a ws:// or wss:// URL.
func DialWebSocket(ctx context.Context, url string) (*WebSocketTransport, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, unavailable("dial "+url, err)
	}
	return NewWebSocketTransport(conn), nil
}

// readMessages pumps inbound messages until the connection fails.
func (t *WebSocketTransport) readMessages() {
	defer close(t.inbound)
	for {
		_, message, err := t.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				err = nil
			}
			t.readErr = err
			return
		}
		if len(message) == 0 {
			continue
		}
		select {
		case t.inbound <- message:
		case <-t.done:
			return
		}
	}
}

// Read implements Transport.
func (t *WebSocketTransport) Read(p []byte, mode ReadMode) (int, error) {
	if len(t.in) == 0 {
		var (
			message []byte
			ok      bool
		)
		if mode == NonBlocking {
			select {
			case message, ok = <-t.inbound:
			default:
				return 0, ErrWouldBlock
			}
		} else {
			message, ok = <-t.inbound
		}
		if !ok {
			if t.readErr != nil {
				return 0, t.readErr
			}
			return 0, net.ErrClosed
		}
		t.in = message
	}
	n := copy(p, t.in)
	t.in = t.in[n:]
	return n, nil
}

// Write implements Transport.
func (t *WebSocketTransport) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Flush implements Transport.
func (t *WebSocketTransport) Flush() error {
	if t.out.Len() == 0 {
		return nil
	}
	err := t.conn.WriteMessage(websocket.TextMessage, t.out.Bytes())
	t.out.Reset()
	return err
}

// Close implements Transport.
func (t *WebSocketTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.done)
		_ = t.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		err = t.conn.Close()
	})
	return err
}

// RemoteAddr implements Transport.
func (t *WebSocketTransport) RemoteAddr() string {
	return t.conn.RemoteAddr().String()
}
