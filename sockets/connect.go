package sockets

import (
	"context"
	"errors"
	"net"
	"time"

	"golang.org/x/sys/unix"
)

// ConnectState mirrors sockets.h's h64socket connect-progress states:
// IDLE -> WAITING_CONNECT -> CONNECTED -> (WAITING_TLS ->) READY.
type ConnectState int32

const (
	StateIdle ConnectState = iota
	StateWaitingConnect
	StateConnected
	StateWaitingTLS
	StateReady
	StateFailed
)

func (st ConnectState) String() string {
	switch st {
	case StateIdle:
		return "idle"
	case StateWaitingConnect:
		return "waiting-connect"
	case StateConnected:
		return "connected"
	case StateWaitingTLS:
		return "waiting-tls"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ConnectResult is the per-step outcome sockets_ConnectClient returns:
// either the step succeeded outright, the caller needs to wait for the
// fd to become readable/writable and call again, or it failed.
type ConnectResult int

const (
	ResultSuccess ConnectResult = iota
	ResultNeedToRead
	ResultNeedToWrite
	ResultOutOfMemory
	ResultOperationFailed
)

// ConnectClient advances the non-blocking connect state machine one
// step (sockets_ConnectClient). Call it again with ResultNeedToRead /
// ResultNeedToWrite after the Sockset reports the fd ready in the
// requested direction, until it returns ResultSuccess or
// ResultOperationFailed.
func (s *Socket) ConnectClient(ip string, port int) (ConnectResult, error) {
	switch s.state {
	case StateIdle:
		s.connectHost = ip
		return s.beginConnect(ip, port)
	case StateWaitingConnect:
		return s.pollConnect()
	case StateConnected:
		if !s.HasFlag(FlagTLS) {
			s.state = StateReady
			return ResultSuccess, nil
		}
		s.state = StateWaitingTLS
		return s.beginTLSHandshake(s.connectHost)
	case StateWaitingTLS:
		return s.pollTLSHandshake()
	case StateReady:
		return ResultSuccess, nil
	default:
		return ResultOperationFailed, errors.New("sockets: connect called in failed state")
	}
}

func (s *Socket) beginConnect(ip string, port int) (ConnectResult, error) {
	sa, err := sockaddrFor(ip, port)
	if err != nil {
		s.state = StateFailed
		return ResultOperationFailed, err
	}
	s.setFlag(FlagOutgoing)
	err = unix.Connect(s.fd, sa)
	if err == nil {
		s.state = StateConnected
		return s.ConnectClient(ip, port)
	}
	if errors.Is(err, unix.EINPROGRESS) {
		s.state = StateWaitingConnect
		return ResultNeedToWrite, nil
	}
	s.state = StateFailed
	return ResultOperationFailed, err
}

func (s *Socket) pollConnect() (ConnectResult, error) {
	errno, err := unix.GetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		s.state = StateFailed
		return ResultOperationFailed, err
	}
	if errno != 0 {
		s.state = StateFailed
		return ResultOperationFailed, unix.Errno(errno)
	}
	s.state = StateConnected
	return s.ConnectClient(s.connectHost, 0)
}

func sockaddrFor(ip string, port int) (unix.Sockaddr, error) {
	if IsIPv4(ip) {
		addr := net.ParseIP(ip).To4()
		if addr == nil {
			return nil, errors.New("sockets: invalid IPv4 literal")
		}
		sa := &unix.SockaddrInet4{Port: port}
		copy(sa.Addr[:], addr)
		return sa, nil
	}
	addr := net.ParseIP(ip).To16()
	if addr == nil {
		return nil, errors.New("sockets: invalid IPv6 literal")
	}
	sa := &unix.SockaddrInet6{Port: port}
	copy(sa.Addr[:], addr)
	return sa, nil
}

// tlsHandshakeDeadline bounds how long the bridging goroutine in
// beginTLSHandshake will wait on the underlying blocking read/write
// before giving up, so a peer that never responds can't leak a
// goroutine forever.
const tlsHandshakeDeadline = 30 * time.Second

func handshakeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), tlsHandshakeDeadline)
}
