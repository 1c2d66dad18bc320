package loader

import (
	"errors"
	"sync/atomic"
)

// ErrSuperseded is returned by work that noticed a newer load request
// while materializing its result.
var ErrSuperseded = errors.New("load superseded by a newer request")

// Coordinator hands out generation tokens for table-load work. At most
// one load is current at a time: beginning a new load supersedes the
// previous one instead of queueing behind it. Workers are never
// terminated; they carry their token and check it cooperatively.
type Coordinator struct {
	gen atomic.Uint64
}

// NewCoordinator creates a coordinator with no loads issued yet.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Begin starts a new logical load and returns its token. Any token
// handed out earlier becomes stale immediately.
func (c *Coordinator) Begin() *Token {
	return &Token{c: c, gen: c.gen.Add(1)}
}

// Generation returns the generation of the most recent load request.
func (c *Coordinator) Generation() uint64 {
	return c.gen.Load()
}

// Do runs work under the token and gates delivery on currency: a
// result computed by a superseded load is replaced with ErrSuperseded
// so it can never reach the screen, even if the work itself finished.
func Do[T any](tok *Token, work func() (T, error)) (T, error) {
	v, err := work()
	if tok.Stale() {
		var zero T
		return zero, ErrSuperseded
	}
	return v, err
}

// Token identifies one logical load request.
type Token struct {
	c   *Coordinator
	gen uint64
}

// Stale reports whether a newer load has been requested since this
// token was issued. Workers check this at fine granularity (per
// materialized row) and abandon their work when it returns true.
func (t *Token) Stale() bool {
	if t == nil {
		return false
	}
	return t.c.gen.Load() != t.gen
}

// Generation returns the generation this token belongs to.
func (t *Token) Generation() uint64 {
	if t == nil {
		return 0
	}
	return t.gen
}
