package sockets

import (
	"crypto/tls"

	"golang.org/x/sys/unix"
)

// handshakeResult is delivered once by the goroutine beginTLSHandshake
// starts; pollTLSHandshake drains it non-blockingly.
type handshakeResult struct {
	conn *tls.Conn
	err  error
}

// beginTLSHandshake starts the TLS handshake in the background. The fd
// is flipped to blocking mode for the duration of the handshake (the
// one place this package departs from a fully non-blocking design:
// crypto/tls's Handshake has no WANT_READ/WANT_WRITE-style resumable
// API the way OpenSSL's SSL_connect does, so bridging it onto a
// non-blocking fd would mean re-implementing TLS's record layer by
// hand). ConnectClient still returns immediately either way; callers
// poll the result via pollTLSHandshake exactly like any other
// NeedToRead/NeedToWrite step.
func (s *Socket) beginTLSHandshake(host string) (ConnectResult, error) {
	if err := unix.SetNonblock(s.fd, false); err != nil {
		s.state = StateFailed
		return ResultOperationFailed, err
	}
	ch := make(chan handshakeResult, 1)
	s.tlsHandshakeResult = ch
	conn := fdConn{fd: s.fd}
	var tlsConn *tls.Conn
	if s.HasFlag(FlagTLSServerSide) {
		cfg := s.tlsServerConfig
		if cfg == nil {
			cfg = processTLSConfig
		}
		tlsConn = tls.Server(conn, cfg)
	} else {
		tlsConn = tls.Client(conn, ClientTLSConfig(host))
	}
	go func() {
		ctx, cancel := handshakeContext()
		defer cancel()
		err := tlsConn.HandshakeContext(ctx)
		ch <- handshakeResult{conn: tlsConn, err: err}
	}()
	return ResultNeedToRead, nil
}

// pollTLSHandshake drains the handshake goroutine's result without
// blocking; while it's still running this returns NeedToRead so the
// caller's poll loop simply tries again next tick.
func (s *Socket) pollTLSHandshake() (ConnectResult, error) {
	select {
	case res := <-s.tlsHandshakeResult:
		unix.SetNonblock(s.fd, true)
		if res.err != nil {
			s.state = StateFailed
			return ResultOperationFailed, res.err
		}
		s.tlsConn = res.conn
		s.state = StateReady
		return ResultSuccess, nil
	default:
		return ResultNeedToRead, nil
	}
}
