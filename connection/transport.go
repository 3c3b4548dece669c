package connection

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"
)

// ReadMode selects whether a transport read may wait for data.
type ReadMode int

const (
	// Blocking reads wait until at least one byte arrives or the stream fails.
	Blocking ReadMode = iota
	// NonBlocking reads return ErrWouldBlock when nothing is ready.
	NonBlocking
)

func (m ReadMode) String() string {
	if m == NonBlocking {
		return "non-blocking"
	}
	return "blocking"
}

// Transport is a duplex byte stream to one remote endpoint.
type Transport interface {
	// Read reads into p. With NonBlocking it returns ErrWouldBlock instead
	// of waiting when no data is ready.
	Read(p []byte, mode ReadMode) (int, error)

	// Write queues p for sending. Data may stay buffered until Flush.
	Write(p []byte) (int, error)

	// Flush pushes buffered writes to the peer.
	Flush() error

	// Close shuts down both directions and releases the endpoint.
	Close() error

	// RemoteAddr returns the remote address as a string.
	RemoteAddr() string
}

// DefaultDrainWindow is how long a NonBlocking read waits before reporting
// ErrWouldBlock on a connection whose socket cannot be polled directly.
const DefaultDrainWindow = time.Millisecond

// TCPTransport is a Transport over a TCP socket.
type TCPTransport struct {
	conn   net.Conn
	writer *bufio.Writer
	window time.Duration
}

// NewTCPTransport wraps an established connection. window bounds each
// NonBlocking read when the socket cannot be polled; zero selects
// DefaultDrainWindow.
func NewTCPTransport(conn net.Conn, window time.Duration) *TCPTransport {
	if window <= 0 {
		window = DefaultDrainWindow
	}
	return &TCPTransport{
		conn:   conn,
		writer: bufio.NewWriter(conn),
		window: window,
	}
}

// DialTCP opens a TCP transport to addr.
func DialTCP(ctx context.Context, addr string, window time.Duration) (*TCPTransport, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, unavailable("dial "+addr, err)
	}
	return NewTCPTransport(conn, window), nil
}

// Read implements Transport. A NonBlocking read polls the socket once and
// never waits when the connection exposes its descriptor.
func (t *TCPTransport) Read(p []byte, mode ReadMode) (int, error) {
	if mode == NonBlocking {
		return t.tryRead(p)
	}
	if err := t.conn.SetReadDeadline(time.Time{}); err != nil {
		return 0, err
	}
	return t.conn.Read(p)
}

// deadlineRead waits at most the drain window for data.
func (t *TCPTransport) deadlineRead(p []byte) (int, error) {
	if err := t.conn.SetReadDeadline(time.Now().Add(t.window)); err != nil {
		return 0, err
	}
	n, err := t.conn.Read(p)
	if err != nil && errors.Is(err, os.ErrDeadlineExceeded) {
		return n, ErrWouldBlock
	}
	return n, err
}

// Write implements Transport.
func (t *TCPTransport) Write(p []byte) (int, error) {
	return t.writer.Write(p)
}

// Flush implements Transport.
func (t *TCPTransport) Flush() error {
	return t.writer.Flush()
}

// Close implements Transport.
func (t *TCPTransport) Close() error {
	if tcp, ok := t.conn.(*net.TCPConn); ok {
		// Both halves are shut down before the descriptor is released.
		_ = tcp.CloseRead()
		_ = tcp.CloseWrite()
	}
	return t.conn.Close()
}

// RemoteAddr implements Transport.
func (t *TCPTransport) RemoteAddr() string {
	return t.conn.RemoteAddr().String()
}

// dialTransport picks a transport from the address form: ws:// and wss://
// URLs use WebSocket, anything else is a TCP host:port.
func dialTransport(ctx context.Context, addr string, o *options) (Transport, error) {
	switch {
	case strings.HasPrefix(addr, "ws://"), strings.HasPrefix(addr, "wss://"):
		return DialWebSocket(ctx, addr)
	case strings.Contains(addr, "://"):
		return nil, fmt.Errorf("dial %s: %w: unsupported scheme", addr, ErrTransportUnavailable)
	default:
		return DialTCP(ctx, addr, o.drainWindow)
	}
}
