package database

import (
	"context"
	"sync"

	"github.com/nebuladb/nebula/internal/errs"
)

// Guard is the exclusive-access wrapper around the live connection. It is
// shared by pointer across every background task of a session; the mutex is
// held for the whole duration of each operation, so concurrently-issued
// operations serialize at this boundary instead of corrupting in-flight
// protocol state.
//
// The raw Connection never leaves the Guard — callers run against it only
// inside Do.
type Guard struct {
	mu   sync.Mutex
	conn Connection
}

// NewGuard returns a Guard with no connection adopted yet.
func NewGuard() *Guard {
	return &Guard{}
}

// Adopt installs conn as the guarded connection, replacing any previous one.
// The previous connection, if any, is returned so the caller can close it.
func (g *Guard) Adopt(conn Connection) Connection {
	g.mu.Lock()
	defer g.mu.Unlock()
	prev := g.conn
	g.conn = conn
	return prev
}

// Connected reports whether a connection is currently adopted.
func (g *Guard) Connected() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.conn != nil
}

// Do runs fn against the guarded connection while holding the exclusive
// lock. It returns a connection failure if nothing is adopted.
func (g *Guard) Do(fn func(Connection) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.conn == nil {
		return errs.New(errs.ErrKindConnectionFailed, "no active connection")
	}
	return fn(g.conn)
}

// Close closes and clears the guarded connection. Safe to call when nothing
// is adopted.
func (g *Guard) Close(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.conn == nil {
		return nil
	}
	err := g.conn.Close(ctx)
	g.conn = nil
	return err
}
