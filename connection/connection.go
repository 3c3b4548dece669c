// Package connection implements the line-oriented request/response layer of
// the Minecraft Pi text protocol.
//
// Requests are single lines of the form
//
//	name(arg1,arg2,...)\n
//
// and query commands are answered by exactly one newline-terminated line.
// A Connection is shared by pointer. Its methods are serialized by an
// internal lock, and Call keeps the lock across a request and its reply so a
// reply can never be paired with another goroutine's request.
package connection

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/lawnchairsociety/mcpi/internal/logger"
)

const readChunkSize = 4096

// Connection owns one transport to the game and the request framing on top
// of it.
type Connection struct {
	mu               sync.Mutex
	transport        Transport
	autoFlush        bool
	drainBeforeQuery bool
	recorder         Recorder
	pending          []byte // inbound bytes read but not yet returned
	buf              [readChunkSize]byte
	discarded        int // total bytes dropped by drains
	closed           bool
}

// Dial connects to addr. A ws:// or wss:// URL selects the WebSocket
// transport, anything else is treated as a TCP host:port. Failure to connect
// is reported as ErrTransportUnavailable.
func Dial(ctx context.Context, addr string, opts ...Option) (*Connection, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	transport, err := dialTransport(ctx, addr, o)
	if err != nil {
		logger.Error("Failed to connect to game", "address", addr, "error", err)
		return nil, err
	}
	logger.Info("Connected to game", "address", transport.RemoteAddr())
	return newConnection(transport, o), nil
}

// New wraps an already open transport.
func New(transport Transport, opts ...Option) *Connection {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return newConnection(transport, o)
}

func newConnection(transport Transport, o *options) *Connection {
	return &Connection{
		transport:        transport,
		autoFlush:        o.autoFlush,
		drainBeforeQuery: o.drainBeforeQuery,
		recorder:         o.recorder,
	}
}

// Send writes name(args...) as one line. Stale inbound bytes are drained
// first and the line is flushed when auto-flush is on.
func (c *Connection) Send(name string, args ...any) error {
	line, err := Encode(name, args...)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.drain(); err != nil {
		return err
	}
	return c.writeLine(line, false)
}

// SendRaw writes line verbatim followed by a newline, with the same drain
// and flush behaviour as Send.
func (c *Connection) SendRaw(line string) error {
	if strings.ContainsAny(line, "\r\n") {
		return fmt.Errorf("send %q: %w: embedded line break", line, ErrInvalidArgument)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.drain(); err != nil {
		return err
	}
	return c.writeLine(line, false)
}

// Receive blocks until one full line arrives and returns it without the
// newline. Bytes after the newline stay buffered for the next call.
func (c *Connection) Receive() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.readLine()
}

// Call sends name(args...) and waits for its reply line. The connection is
// locked for the whole round trip.
func (c *Connection) Call(name string, args ...any) (string, error) {
	line, err := Encode(name, args...)
	if err != nil {
		return "", err
	}
	return c.call(line)
}

// CallRaw sends a pre-formatted line and waits for its reply line.
func (c *Connection) CallRaw(line string) (string, error) {
	if strings.ContainsAny(line, "\r\n") {
		return "", fmt.Errorf("call %q: %w: embedded line break", line, ErrInvalidArgument)
	}
	return c.call(line)
}

func (c *Connection) call(line string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drainBeforeQuery {
		if err := c.drain(); err != nil {
			return "", err
		}
	}
	if err := c.writeLine(line, true); err != nil {
		return "", err
	}
	// A query must reach the server even with auto-flush off, otherwise
	// the reply would never come.
	if !c.autoFlush {
		if err := c.flush(); err != nil {
			return "", err
		}
	}
	return c.readLine()
}

// Drain discards inbound bytes that are already available without waiting
// for more, and returns how many were dropped. Bytes arriving while the
// drain runs may or may not be discarded.
func (c *Connection) Drain() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.discarded
	err := c.drain()
	return c.discarded - before, err
}

// Flush pushes buffered request lines to the server.
func (c *Connection) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.flush()
}

// SetAutoFlush changes the flush policy. Enabling it flushes immediately.
func (c *Connection) SetAutoFlush(enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.autoFlush = enabled
	if enabled {
		return c.flush()
	}
	return nil
}

// AutoFlush reports the current flush policy.
func (c *Connection) AutoFlush() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoFlush
}

// RemoteAddr returns the address of the game server.
func (c *Connection) RemoteAddr() string {
	return c.transport.RemoteAddr()
}

// Close flushes any buffered lines and shuts the transport down in both
// directions. A failed flush is returned as ErrTransportUnavailable.
// Operations after Close fail with ErrTransportUnavailable.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	// The transport is released even when the final flush fails; lines
	// still buffered at that point are lost and reported.
	flushErr := c.transport.Flush()
	closeErr := c.transport.Close()
	if err := errors.Join(flushErr, closeErr); err != nil {
		return unavailable("close", err)
	}
	logger.Info("Disconnected from game", "address", c.transport.RemoteAddr())
	return nil
}

// Encode renders name and args as a request line without the trailing
// newline: name(a1,a2,...) or name() for no arguments.
func Encode(name string, args ...any) (string, error) {
	if name == "" || strings.ContainsAny(name, "\r\n") {
		return "", fmt.Errorf("command %q: %w: bad name", name, ErrInvalidArgument)
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		text := FormatArg(arg)
		if strings.ContainsAny(text, "\r\n") {
			return "", fmt.Errorf("command %s argument %d: %w: embedded line break", name, i, ErrInvalidArgument)
		}
		b.WriteString(text)
	}
	b.WriteByte(')')
	return b.String(), nil
}

// FormatArg returns the wire form of a single argument. Floats always carry
// a fractional part, strings are written as-is.
func FormatArg(arg any) string {
	switch v := arg.(type) {
	case string:
		return v
	case float64:
		return formatFloat(v, 64)
	case float32:
		return formatFloat(float64(v), 32)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64, bitSize int) string {
	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// writeLine writes line plus a newline; the caller holds c.mu. query marks
// lines that expect a reply.
func (c *Connection) writeLine(line string, query bool) error {
	if c.closed {
		return unavailable("send", net.ErrClosed)
	}
	if _, err := c.transport.Write([]byte(line + "\n")); err != nil {
		return unavailable("send", err)
	}
	if c.autoFlush {
		if err := c.flush(); err != nil {
			return err
		}
	}
	logger.Debug("Request sent", "line", line)
	if c.recorder != nil {
		c.recorder.Record(line, query)
	}
	return nil
}

func (c *Connection) flush() error {
	if c.closed {
		return unavailable("flush", net.ErrClosed)
	}
	if err := c.transport.Flush(); err != nil {
		return unavailable("flush", err)
	}
	return nil
}

// readLine returns the next complete line; the caller holds c.mu.
func (c *Connection) readLine() (string, error) {
	if c.closed {
		return "", unavailable("receive", net.ErrClosed)
	}
	for {
		if i := bytes.IndexByte(c.pending, '\n'); i >= 0 {
			raw := c.pending[:i]
			valid := utf8.Valid(raw)
			line := string(raw)
			c.pending = c.pending[i+1:]
			if !valid {
				return "", fmt.Errorf("receive %q: %w: not valid UTF-8", line, ErrMalformedResponse)
			}
			logger.Debug("Reply received", "line", line)
			return line, nil
		}

		n, err := c.transport.Read(c.buf[:], Blocking)
		c.pending = append(c.pending, c.buf[:n]...)
		if err == nil || bytes.IndexByte(c.pending, '\n') >= 0 {
			continue
		}
		if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
			partial := string(c.pending)
			c.pending = c.pending[:0]
			return "", fmt.Errorf("receive %q: %w: stream closed before end of line", partial, ErrMalformedResponse)
		}
		return "", unavailable("receive", err)
	}
}
