package sockets

import (
	"net"
	"time"

	"golang.org/x/sys/unix"
)

// fdConn adapts a raw fd to net.Conn so crypto/tls (which only speaks
// net.Conn) can run a handshake over it. The original OpenSSL-based
// code drives its handshake directly off the non-blocking fd with
// SSL_connect/SSL_accept returning WANT_READ/WANT_WRITE; crypto/tls has
// no equivalent incremental API, so the handshake itself runs on a
// blocking fd (see beginTLSHandshake) with this adapter doing ordinary
// blocking Read/Write against it.
type fdConn struct {
	fd int
}

func (c fdConn) Read(p []byte) (int, error)  { return unix.Read(c.fd, p) }
func (c fdConn) Write(p []byte) (int, error) { return unix.Write(c.fd, p) }

// Close shuts the connection down without closing the fd (Socket.Close
// owns the fd); this is what lets a cancelled HandshakeContext interrupt
// a read or write blocked on the fd.
func (c fdConn) Close() error { return unix.Shutdown(c.fd, unix.SHUT_RDWR) }

func (c fdConn) LocalAddr() net.Addr  { return fdAddr{} }
func (c fdConn) RemoteAddr() net.Addr { return fdAddr{} }

func (c fdConn) SetDeadline(t time.Time) error      { return nil }
func (c fdConn) SetReadDeadline(t time.Time) error  { return nil }
func (c fdConn) SetWriteDeadline(t time.Time) error { return nil }

type fdAddr struct{}

func (fdAddr) Network() string { return "tcp" }
func (fdAddr) String() string  { return "fd-socket" }
