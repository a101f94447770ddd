package sockets

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Engine runs the background send-worker: a single goroutine that
// polls every registered socket and flushes queued send buffers as fds
// become writable (the role of sockets.c's _internal_sockets_RequireWorker
// thread). Lifecycle is managed with golang.org/x/sync/errgroup so
// Stop can wait for a clean shutdown and propagate the worker's first
// error; golang.org/x/sync/semaphore.Weighted gives PauseWorker a
// single-holder lock that blocks the poll loop without needing a
// second condition variable, mirroring the original's separate
// pause/resume mutex around the worker thread.
type Engine struct {
	set   *Sockset
	pause *semaphore.Weighted

	group  *errgroup.Group
	cancel context.CancelFunc

	sockets map[int]*Socket
}

// NewEngine creates a stopped engine; call Start to launch the worker.
func NewEngine() *Engine {
	return &Engine{
		set:     NewSockset(),
		pause:   semaphore.NewWeighted(1),
		sockets: make(map[int]*Socket),
	}
}

// Register adds a socket to the set the worker flushes on write-ready.
func (e *Engine) Register(s *Socket, want WaitFlag) {
	e.sockets[s.fd] = s
	e.set.Add(s.fd, want)
}

// Unregister drops a socket from the worker's set.
func (e *Engine) Unregister(s *Socket) {
	delete(e.sockets, s.fd)
	e.set.Remove(s.fd)
}

// Start launches the background poll loop.
func (e *Engine) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	group, gctx := errgroup.WithContext(ctx)
	e.group = group
	group.Go(func() error { return e.run(gctx) })
}

// Stop cancels the worker and waits for it to exit, returning its
// first error, if any (sockets_Kill joining the worker thread).
func (e *Engine) Stop() error {
	if e.cancel == nil {
		return nil
	}
	e.cancel()
	return e.group.Wait()
}

// PauseWorker blocks the poll loop until the returned unlock function
// is called, matching sockets.c's dedicated pause mutex around the
// worker thread (used while the caller mutates shared socket state).
func (e *Engine) PauseWorker(ctx context.Context) (unlock func(), err error) {
	if err := e.pause.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { e.pause.Release(1) }, nil
}

func (e *Engine) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := e.pause.Acquire(ctx, 1); err != nil {
			return err
		}
		results, err := e.set.Wait(DefaultWaitMillis)
		e.pause.Release(1)
		if err != nil {
			return err
		}
		for _, r := range results {
			sock, ok := e.sockets[r.Fd]
			if !ok {
				continue
			}
			if r.Writable {
				sock.Flush()
			}
		}
	}
}
