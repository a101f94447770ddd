package sockets

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// pairKeySize is _PAIRKEYSIZE: the random key exchanged over the
// loopback connection so the connecting side of a paired socket can
// confirm it reached the listener it just created (and not some other
// process that happened to grab the same ephemeral port first).
const pairKeySize = 256

// NewPair creates two sockets connected to each other over loopback,
// mirroring sockets_NewPair: bind a listener on an ephemeral loopback
// port, connect a second socket to it, and exchange a random key over
// the new connection to make sure the accepted peer is the one this
// call itself just connected (guards against another process winning a
// race for the same port). Tries IPv6 loopback first, falling back to
// IPv4 if IPv6 loopback isn't available.
func NewPair() (a, b *Socket, err error) {
	ip := "::1"
	listenerFd, port, err := listenLoopback(unix.AF_INET6, "::1")
	if err != nil {
		// The connecting socket is dual-stack, so it reaches the IPv4
		// listener through the v4-mapped form of 127.0.0.1.
		ip = "::ffff:127.0.0.1"
		listenerFd, port, err = listenLoopback(unix.AF_INET, "127.0.0.1")
		if err != nil {
			return nil, nil, fmt.Errorf("sockets: NewPair: no loopback listener available: %w", err)
		}
	}
	defer unix.Close(listenerFd)

	connFd, err := newRawDualStack()
	if err != nil {
		return nil, nil, err
	}
	connSock := fromFd(connFd, FlagPair|FlagOutgoing)

	if err := unix.SetNonblock(connFd, false); err != nil {
		return nil, nil, err
	}
	sa, err := sockaddrFor(ip, port)
	if err != nil {
		sa, err = sockaddrFor("127.0.0.1", port)
		if err != nil {
			return nil, nil, err
		}
	}
	if err := unix.Connect(connFd, sa); err != nil {
		unix.Close(connFd)
		return nil, nil, fmt.Errorf("sockets: NewPair: connect: %w", err)
	}

	acceptFd, _, err := unix.Accept(listenerFd)
	if err != nil {
		unix.Close(connFd)
		return nil, nil, fmt.Errorf("sockets: NewPair: accept: %w", err)
	}
	acceptSock := fromFd(acceptFd, FlagPair)

	if err := exchangePairKey(connFd, acceptFd); err != nil {
		unix.Close(connFd)
		unix.Close(acceptFd)
		return nil, nil, err
	}

	if err := unix.SetNonblock(connFd, true); err != nil {
		unix.Close(connFd)
		unix.Close(acceptFd)
		return nil, nil, err
	}
	if err := unix.SetNonblock(acceptFd, true); err != nil {
		unix.Close(connFd)
		unix.Close(acceptFd)
		return nil, nil, err
	}
	connSock.state = StateReady
	acceptSock.state = StateReady
	return connSock, acceptSock, nil
}

func listenLoopback(family int, addr string) (fd int, port int, err error) {
	fd, err = unix.Socket(family, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return -1, 0, err
	}
	sa, err := sockaddrFor(addr, 0)
	if err != nil {
		unix.Close(fd)
		return -1, 0, err
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return -1, 0, err
	}
	if err := unix.Listen(fd, 1); err != nil {
		unix.Close(fd)
		return -1, 0, err
	}
	boundAddr, err := unix.Getsockname(fd)
	if err != nil {
		unix.Close(fd)
		return -1, 0, err
	}
	switch sa := boundAddr.(type) {
	case *unix.SockaddrInet4:
		port = sa.Port
	case *unix.SockaddrInet6:
		port = sa.Port
	default:
		unix.Close(fd)
		return -1, 0, errors.New("sockets: unexpected sockaddr type from Getsockname")
	}
	return fd, port, nil
}

// exchangePairKey writes a random key on one fd and confirms the exact
// same bytes arrive on the other, proving both fds are the two ends of
// the same connection.
func exchangePairKey(writeFd, readFd int) error {
	key := make([]byte, pairKeySize)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("sockets: NewPair: generate key: %w", err)
	}
	if err := writeFull(writeFd, key); err != nil {
		return fmt.Errorf("sockets: NewPair: send key: %w", err)
	}
	got := make([]byte, pairKeySize)
	if err := readFull(readFd, got); err != nil {
		return fmt.Errorf("sockets: NewPair: receive key: %w", err)
	}
	if !bytes.Equal(key, got) {
		return errors.New("sockets: NewPair: key mismatch, accepted connection is not our own")
	}
	return nil
}

func writeFull(fd int, p []byte) error {
	for len(p) > 0 {
		n, err := unix.Write(fd, p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

func readFull(fd int, p []byte) error {
	for len(p) > 0 {
		n, err := unix.Read(fd, p)
		if err != nil {
			return err
		}
		if n == 0 {
			return errors.New("sockets: connection closed during key exchange")
		}
		p = p[n:]
	}
	return nil
}
