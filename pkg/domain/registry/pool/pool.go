// Package pool caches registry clients per project.
//
// A cached client lives for a fixed TTL measured from its creation, not
// from its last use. A periodic sweep evicts expired entries so that
// clients of idle projects do not pile up.
package pool

import (
	"context"
	"sync"
	"time"

	"github.com/modelplane/modelplane/pkg/domain/registry"
	"github.com/modelplane/modelplane/pkg/loop"
)

type entry struct {
	client    registry.Client
	createdAt time.Time
}

// Pool hands out registry clients, one per project.
type Pool interface {
	// Get returns a cached client for the project, dialing a new one
	// when none is cached. Dial failures are returned to the caller
	// and never cached.
	Get(ctx context.Context, projectName string) (registry.Client, error)

	// Sweep evicts every cached client older than the TTL.
	Sweep()

	// Invalidate drops the cached client of the project, if any.
	Invalidate(projectName string)

	// Close evicts everything.
	Close()
}

type pool struct {
	mu      sync.Mutex
	entries map[string]entry
	dialer  registry.Dialer
	ttl     time.Duration
	now     func() time.Time
}

var _ Pool = &pool{}

func New(dialer registry.Dialer, ttl time.Duration) Pool {
	return &pool{
		entries: map[string]entry{},
		dialer:  dialer,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (p *pool) Get(ctx context.Context, projectName string) (registry.Client, error) {
	p.mu.Lock()
	if e, ok := p.entries[projectName]; ok {
		p.mu.Unlock()
		return e.client, nil
	}
	p.mu.Unlock()

	// dial outside the lock; a losing racer's client replaces the
	// winner's, which is harmless.
	c, err := p.dialer.Dial(ctx, projectName)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if prev, ok := p.entries[projectName]; ok {
		prev.client.Close()
	}
	p.entries[projectName] = entry{client: c, createdAt: p.now()}
	return c, nil
}

func (p *pool) Sweep() {
	deadline := p.now().Add(-p.ttl)

	p.mu.Lock()
	defer p.mu.Unlock()
	for name, e := range p.entries {
		if e.createdAt.Before(deadline) {
			e.client.Close()
			delete(p.entries, name)
		}
	}
}

func (p *pool) Invalidate(projectName string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.entries[projectName]; ok {
		e.client.Close()
		delete(p.entries, projectName)
	}
}

func (p *pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for name, e := range p.entries {
		e.client.Close()
		delete(p.entries, name)
	}
}

// StartSweeper runs Sweep every interval until ctx is cancelled.
func StartSweeper(ctx context.Context, p Pool, interval time.Duration) error {
	_, err := loop.Start(ctx, struct{}{}, func(context.Context, struct{}) (struct{}, loop.Next) {
		p.Sweep()
		return struct{}{}, loop.Continue(interval)
	})
	return err
}
