// Package testserver runs a fake Minecraft Pi server on a loopback port so
// protocol code can be tested against a real socket.
package testserver

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"
)

// Handler answers one request line. Returning ok=false sends no reply, as
// the game does for commands such as world.setBlock.
type Handler func(line string) (reply string, ok bool)

// Server is a fake game server.
type Server struct {
	listener net.Listener
	handler  Handler
	lines    []string
	conns    []net.Conn
	mu       sync.Mutex
	wg       sync.WaitGroup
}

// New starts a server on 127.0.0.1 with a free port. A nil handler never
// replies.
func New(handler Handler) (*Server, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	s := &Server{
		listener: listener,
		handler:  handler,
		lines:    make([]string, 0),
	}
	s.wg.Add(1)
	go s.acceptConnections()
	return s, nil
}

// Replies returns a Handler that answers by command name, the part of the
// line before '('. Commands missing from the map get no reply.
func Replies(replies map[string]string) Handler {
	return func(line string) (string, bool) {
		reply, ok := replies[CommandName(line)]
		return reply, ok
	}
}

// CommandName returns the command part of a request line.
func CommandName(line string) string {
	if i := strings.IndexByte(line, '('); i >= 0 {
		return line[:i]
	}
	return line
}

// Addr returns the host:port the server listens on.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

func (s *Server) acceptConnections() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns = append(s.conns, conn)
		s.mu.Unlock()

		s.wg.Add(1)
		go s.serve(conn)
	}
}

// serve reads request lines until the client goes away.
func (s *Server) serve(conn net.Conn) {
	defer s.wg.Done()
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSuffix(line, "\n")

		s.mu.Lock()
		s.lines = append(s.lines, line)
		s.mu.Unlock()

		if s.handler == nil {
			continue
		}
		if reply, ok := s.handler(line); ok {
			if _, err := conn.Write([]byte(reply + "\n")); err != nil {
				return
			}
		}
	}
}

// Lines returns a copy of every request line received so far.
func (s *Server) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]string, len(s.lines))
	copy(result, s.lines)
	return result
}

// ClearLines forgets the lines received so far.
func (s *Server) ClearLines() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make([]string, 0)
}

// WaitForLines waits until at least n lines have arrived.
func (s *Server) WaitForLines(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if len(s.Lines()) >= n {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return len(s.Lines()) >= n
}

// WaitForConn waits until a client has connected.
func (s *Server) WaitForConn(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		n := len(s.conns)
		s.mu.Unlock()
		if n > 0 {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

// Push writes unsolicited text to every connected client.
func (s *Server) Push(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, conn := range s.conns {
		if _, err := conn.Write([]byte(text)); err != nil {
			return err
		}
	}
	return nil
}

// Disconnect closes every client connection but keeps listening.
func (s *Server) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, conn := range s.conns {
		conn.Close()
	}
	s.conns = nil
}

// Close stops the server and waits for its goroutines.
func (s *Server) Close() error {
	err := s.listener.Close()
	s.Disconnect()
	s.wg.Wait()
	return err
}
