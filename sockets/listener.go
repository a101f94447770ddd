package sockets

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Listen creates a non-blocking, dual-stack listening socket bound to
// ip:port (empty ip binds the wildcard address), mirroring
// sockets_Listen in the original.
func Listen(ip string, port int, useTLS bool) (*Socket, error) {
	fd, err := newRawDualStack()
	if err != nil {
		return nil, err
	}
	bindIP := ip
	if bindIP == "" {
		bindIP = "::"
	} else if IsIPv4(bindIP) {
		// The fd is AF_INET6, so an IPv4 address is bound in its
		// v4-mapped form.
		bindIP = "::ffff:" + bindIP
	}
	sa, err := sockaddrFor(bindIP, port)
	if err != nil {
		unix.Close(fd)
		return nil, err
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("sockets: bind: %w", err)
	}
	if err := unix.Listen(fd, unix.SOMAXCONN); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("sockets: listen: %w", err)
	}
	flags := FlagListener | FlagDualStack
	if useTLS {
		flags |= FlagTLS
	}
	s := fromFd(fd, flags)
	s.state = StateReady
	return s, nil
}

// Accept accepts a single pending connection from a listening socket.
// ResultNeedToRead means no connection is pending yet; the caller
// should wait for the listener's fd to become readable and retry.
func (s *Socket) Accept() (*Socket, ConnectResult, error) {
	if !s.HasFlag(FlagListener) {
		return nil, ResultOperationFailed, errors.New("sockets: Accept called on a non-listening socket")
	}
	fd, _, err := unix.Accept(s.fd)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
			return nil, ResultNeedToRead, nil
		}
		return nil, ResultOperationFailed, err
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, ResultOperationFailed, err
	}
	flags := Flag(0)
	accepted := fromFd(fd, flags)
	if s.HasFlag(FlagTLS) {
		accepted.setFlag(FlagTLS)
		accepted.setFlag(FlagTLSServerSide)
		accepted.tlsServerConfig = s.tlsServerConfig
		accepted.state = StateConnected
	} else {
		accepted.state = StateReady
	}
	return accepted, ResultSuccess, nil
}
