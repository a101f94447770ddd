package sockets

import (
	"golang.org/x/sys/unix"
)

// WaitFlag mirrors sockset.h's SOCKWAIT_*: which direction(s) a socket
// is registered to be polled for.
type WaitFlag uint8

const (
	WaitRead WaitFlag = 1 << iota
	WaitWrite
)

// Sockset is the readiness-poll abstraction (sockset_New /
// sockset_Wait in the original, grounded in this module on
// golang.org/x/sys/unix.Poll). Entries are tracked in a map keyed by fd
// rather than a syscall.FdSet-style bitset because unix.Poll takes the
// fd/event list directly. Wait always uses unix.Poll; the word-indexed
// fdBitset in fdset_fallback.go (styled after a manual readiness bitmap
// seen in the example pack's WASI fd-set code) is not used by Wait.
type Sockset struct {
	entries map[int]WaitFlag // fd -> requested directions
}

func NewSockset() *Sockset {
	return &Sockset{entries: make(map[int]WaitFlag)}
}

// Add registers fd to be polled for the given direction(s), replacing
// any previous registration for that fd.
func (ss *Sockset) Add(fd int, want WaitFlag) {
	ss.entries[fd] = want
}

// Remove drops fd from the set (sockset_Remove).
func (ss *Sockset) Remove(fd int) {
	delete(ss.entries, fd)
}

// Result is one ready fd and which direction(s) became ready.
type Result struct {
	Fd       int
	Readable bool
	Writable bool
	Errored  bool
}

// Wait blocks up to timeoutMillis (negative means forever) and returns
// every fd that became ready, mirroring sockset_Wait's fixed 5-second
// default bound at the call sites that use one (SPEC_FULL.md §4).
func (ss *Sockset) Wait(timeoutMillis int) ([]Result, error) {
	pollFds := make([]unix.PollFd, 0, len(ss.entries))
	fds := make([]int, 0, len(ss.entries))
	for fd, want := range ss.entries {
		var events int16
		if want&WaitRead != 0 {
			events |= unix.POLLIN
		}
		if want&WaitWrite != 0 {
			events |= unix.POLLOUT
		}
		pollFds = append(pollFds, unix.PollFd{Fd: int32(fd), Events: events})
		fds = append(fds, fd)
	}
	n, err := unix.Poll(pollFds, timeoutMillis)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	results := make([]Result, 0, n)
	for i, pfd := range pollFds {
		if pfd.Revents == 0 {
			continue
		}
		results = append(results, Result{
			Fd:       fds[i],
			Readable: pfd.Revents&unix.POLLIN != 0,
			Writable: pfd.Revents&unix.POLLOUT != 0,
			Errored:  pfd.Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0,
		})
	}
	return results, nil
}

// DefaultWaitMillis is the fixed poll bound used by the send-worker's
// idle loop (sockset_wait's 5-second default).
const DefaultWaitMillis = 5000
