package connection

import (
	"errors"
	"net"

	"github.com/lawnchairsociety/mcpi/internal/logger"
)

// drain drops buffered inbound bytes and then reads without blocking until
// the transport reports nothing ready. The caller holds c.mu.
//
// Commands without a reply can still make the server print something, and
// leaving it unread would shift every later reply by one line.
func (c *Connection) drain() error {
	if c.closed {
		return unavailable("drain", net.ErrClosed)
	}

	dropped := len(c.pending)
	c.pending = c.pending[:0]
	for {
		n, err := c.transport.Read(c.buf[:], NonBlocking)
		dropped += n
		if err != nil {
			if !errors.Is(err, ErrWouldBlock) {
				// The stream is gone; the next write reports it.
				logger.Debug("Drain stopped", "error", err)
			}
			break
		}
		if n == 0 {
			break
		}
	}

	if dropped > 0 {
		c.discarded += dropped
		logger.Debug("Drained stale input", "bytes", dropped)
	}
	return nil
}
