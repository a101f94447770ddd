// Package sockets implements non-blocking dual-stack TCP sockets with a
// poll-based readiness abstraction and an explicit connect/TLS state
// machine (spec.md §4.9, component C10).
//
// Grounded in horse64/sockets.h's h64socket struct and horse64/sockets.c's
// sockets_New/sockets_NewBlockingRaw/sockets_SetNonblocking: the fd,
// flag bitset, and buffered-send fields below mirror that layout one
// for one, translated from a manually refcounted C struct into a
// Go value owned by whoever created it. Low-level socket options
// (dual-stack IPV6_V6ONLY, non-blocking mode) are set with
// golang.org/x/sys/unix exactly as the original uses setsockopt/fcntl;
// the TLS handshake itself is bridged through crypto/tls (see tls.go,
// connect.go) since no OpenSSL binding is available in this module.
package sockets

import (
	"crypto/tls"
	"fmt"

	"golang.org/x/sys/unix"
)

// Flag bits, named after sockets.h's SOCKFLAG_*/_SOCKFLAG_* constants.
type Flag uint32

const (
	FlagOutgoing      Flag = 1 << iota // socket initiated an outbound connection
	FlagListener                       // socket is listening for inbound connections
	FlagTLS                            // connection is (or will be) wrapped in TLS
	FlagDualStack                      // IPv4 and IPv6 both accepted on this fd
	FlagPair                           // one half of a loopback-connected pair
	FlagWantsTLSWrite                  // last TLS operation asked to be polled writable
	FlagWantsTLSRead                   // last TLS operation asked to be polled readable
	FlagTLSServerSide                  // accepted connection should run the TLS server handshake
)

// Socket is a single non-blocking TCP socket: a raw file descriptor the
// engine polls readiness on, an optional TLS session layered on top
// once the handshake completes, and a send buffer used when a Write
// call would otherwise block (sockets.c's "moving write buffer").
type Socket struct {
	fd    int
	flags Flag

	tlsConn *tls.Conn // nil until the handshake (if any) completes

	sendBuf  []byte // bytes queued but not yet written to fd
	sendFill int    // bytes currently queued in sendBuf

	state        ConnectState
	connectHost  string // hostname/IP passed to the first ConnectClient call, kept for the TLS SNI step
	readRetries  int
	writeRetries int

	tlsHandshakeResult chan handshakeResult
	tlsServerConfig    *tls.Config // set via SetServerTLSConfig before accepting TLS connections
}

// SetServerTLSConfig attaches the certificate-bearing TLS config a
// listening socket's accepted connections should use for their server
// handshake (ServerTLSConfig builds one from a loaded certificate).
func (s *Socket) SetServerTLSConfig(cfg *tls.Config) { s.tlsServerConfig = cfg }

// Fd returns the raw file descriptor, for use by Sockset.
func (s *Socket) Fd() int { return s.fd }

func (s *Socket) HasFlag(f Flag) bool { return s.flags&f != 0 }
func (s *Socket) setFlag(f Flag)      { s.flags |= f }
func (s *Socket) clearFlag(f Flag)    { s.flags &^= f }

// newRawDualStack creates a non-blocking, dual-stack (IPv4+IPv6) TCP
// socket, mirroring sockets_NewBlockingRaw + sockets_SetNonblocking:
// the original creates an AF_INET6 socket and clears IPV6_V6ONLY so it
// also accepts IPv4 connections via the v4-mapped address range.
func newRawDualStack() (int, error) {
	fd, err := unix.Socket(unix.AF_INET6, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return -1, fmt.Errorf("sockets: socket(AF_INET6): %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.IPPROTO_IPV6, unix.IPV6_V6ONLY, 0); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("sockets: clear IPV6_V6ONLY: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("sockets: set SO_REUSEADDR: %w", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("sockets: set non-blocking: %w", err)
	}
	return fd, nil
}

// New creates a fresh non-blocking socket (sockets_New), optionally
// flagged for TLS use once connected.
func New(useTLS bool) (*Socket, error) {
	fd, err := newRawDualStack()
	if err != nil {
		return nil, err
	}
	s := &Socket{fd: fd, state: StateIdle}
	if useTLS {
		s.setFlag(FlagTLS)
	}
	return s, nil
}

// fromFd wraps an already-open fd (used by Accept and NewPair, which
// both leave the fd non-blocking before returning the socket).
func fromFd(fd int, flags Flag) *Socket {
	return &Socket{fd: fd, flags: flags, state: StateIdle}
}

// Close releases the underlying descriptor. Safe to call once; a
// second call returns the closed-fd error from the OS, matching the
// original's single-owner refcount-to-zero close.
func (s *Socket) Close() error {
	if s.tlsConn != nil {
		s.tlsConn.Close()
	}
	return unix.Close(s.fd)
}
