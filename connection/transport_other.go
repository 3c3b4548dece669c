//go:build !unix

package connection

func (t *TCPTransport) tryRead(p []byte) (int, error) {
	return t.deadlineRead(p)
}
