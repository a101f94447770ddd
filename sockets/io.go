package sockets

import (
	"errors"

	"golang.org/x/sys/unix"
)

// IOResult is the outcome of a single non-blocking Send or Receive
// call: either some progress was made, or the caller must wait for the
// fd to become ready in the given direction and retry.
type IOResult int

const (
	IOComplete IOResult = iota
	IOPartial
	IOWouldBlock
	IOClosed
	IOError
)

// Send writes p to the socket, queuing whatever the kernel (or the TLS
// record layer) won't accept immediately into the moving send buffer
// (sockets.c's SSL_MODE_ENABLE_PARTIAL_WRITE / ACCEPT_MOVING_WRITE_BUFFER
// semantics): a later call to Flush retries the queued bytes first.
func (s *Socket) Send(p []byte) (int, IOResult, error) {
	if s.sendFill > 0 {
		if res, err := s.Flush(); res != IOComplete {
			return 0, res, err
		}
	}
	n, result, err := s.rawWrite(p)
	if n < len(p) && (result == IOPartial || result == IOWouldBlock) {
		s.queueUnsent(p[n:])
	}
	return n, result, err
}

// Flush retries writing out the queued send buffer.
func (s *Socket) Flush() (IOResult, error) {
	if s.sendFill == 0 {
		return IOComplete, nil
	}
	n, result, err := s.rawWrite(s.sendBuf[:s.sendFill])
	if n > 0 {
		copy(s.sendBuf, s.sendBuf[n:s.sendFill])
		s.sendFill -= n
	}
	if s.sendFill == 0 {
		return IOComplete, err
	}
	if result == IOError || result == IOClosed {
		return result, err
	}
	return IOPartial, err
}

func (s *Socket) queueUnsent(p []byte) {
	s.sendBuf = append(s.sendBuf[:s.sendFill], p...)
	s.sendFill += len(p)
}

func (s *Socket) rawWrite(p []byte) (int, IOResult, error) {
	if len(p) == 0 {
		return 0, IOComplete, nil
	}
	var n int
	var err error
	if s.tlsConn != nil {
		n, err = s.tlsConn.Write(p)
	} else {
		n, err = unix.Write(s.fd, p)
	}
	switch {
	case err == nil && n == len(p):
		s.writeRetries = 0
		return n, IOComplete, nil
	case err == nil:
		s.writeRetries++
		return n, IOPartial, nil
	case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EWOULDBLOCK):
		s.setFlag(FlagWantsTLSWrite)
		return 0, IOWouldBlock, nil
	default:
		return n, IOError, err
	}
}

// Receive reads up to len(buf) bytes. IOWouldBlock means the caller
// must wait for readability and retry; IOClosed means the peer closed
// the connection (a zero-length, error-free read).
func (s *Socket) Receive(buf []byte) (int, IOResult, error) {
	var n int
	var err error
	if s.tlsConn != nil {
		n, err = s.tlsConn.Read(buf)
	} else {
		n, err = unix.Read(s.fd, buf)
	}
	switch {
	case err == nil && n == 0:
		return 0, IOClosed, nil
	case err == nil:
		s.readRetries = 0
		return n, IOComplete, nil
	case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EWOULDBLOCK):
		s.setFlag(FlagWantsTLSRead)
		return 0, IOWouldBlock, nil
	default:
		return n, IOError, err
	}
}
