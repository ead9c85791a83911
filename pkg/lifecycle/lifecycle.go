// Package lifecycle coordinates subsystem startup and shutdown. Subsystems
// register hooks against a shared Coordinator; the server waits for startup
// to finish before reporting ready and drains shutdown hooks with a deadline.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ReadinessChecker reports whether a subsystem is ready to serve traffic.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator tracks startup and shutdown hooks and owns the context that
// signals shutdown to long-running goroutines.
type Coordinator struct {
	ctx      context.Context
	cancel   context.CancelFunc
	starting sync.WaitGroup
	stopping sync.WaitGroup
	mu       sync.RWMutex
	ready    bool
}

// New creates a Coordinator with a cancellable root context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{ctx: ctx, cancel: cancel}
}

// Context returns the coordinator's context. It is cancelled when Shutdown
// is called.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup runs fn concurrently as part of startup. WaitForStartup blocks
// until every registered startup hook has returned.
func (c *Coordinator) OnStartup(fn func()) {
	c.starting.Go(fn)
}

// OnShutdown runs fn concurrently. Hooks should block on
// <-c.Context().Done() before performing cleanup.
func (c *Coordinator) OnShutdown(fn func()) {
	c.stopping.Go(fn)
}

// Ready reports whether startup has completed.
func (c *Coordinator) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// WaitForStartup blocks until all startup hooks finish, then marks the
// coordinator ready.
func (c *Coordinator) WaitForStartup() {
	c.starting.Wait()
	c.mu.Lock()
	c.ready = true
	c.mu.Unlock()
}

// Shutdown cancels the context and waits up to timeout for all shutdown
// hooks to drain.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.stopping.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout after %v", timeout)
	}
}
