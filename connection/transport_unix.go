//go:build unix

package connection

import (
	"errors"
	"io"
	"syscall"
)

// tryRead reads whatever the socket already holds with a single read(2).
// The runtime keeps sockets in non-blocking mode, so an empty receive
// buffer yields EAGAIN instead of a wait.
func (t *TCPTransport) tryRead(p []byte) (int, error) {
	sc, ok := t.conn.(syscall.Conn)
	if !ok {
		return t.deadlineRead(p)
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return t.deadlineRead(p)
	}

	var (
		n       int
		readErr error
	)
	err = raw.Read(func(fd uintptr) bool {
		n, readErr = syscall.Read(int(fd), p)
		return true
	})
	if err != nil {
		return 0, err
	}

	switch {
	case errors.Is(readErr, syscall.EAGAIN), errors.Is(readErr, syscall.EWOULDBLOCK), errors.Is(readErr, syscall.EINTR):
		return 0, ErrWouldBlock
	case readErr != nil:
		return 0, readErr
	case n == 0 && len(p) > 0:
		return 0, io.EOF
	}
	return n, nil
}
