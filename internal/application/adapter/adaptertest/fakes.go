// Package adaptertest provides in-memory doubles of the application ports.
package adaptertest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

// RecordingPublisher keeps every published event. Err, when set, is
// returned from Publish after recording.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []adapter.LedgerEvent
	Err    error
}

// Publish records event.
func (p *RecordingPublisher) Publish(_ context.Context, event adapter.LedgerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.Err
}

// Events returns a copy of the recorded events.
func (p *RecordingPublisher) Events() []adapter.LedgerEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]adapter.LedgerEvent(nil), p.events...)
}

// Last returns the most recent event, or a zero event.
func (p *RecordingPublisher) Last() adapter.LedgerEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return adapter.LedgerEvent{}
	}
	return p.events[len(p.events)-1]
}

// FixedClock always returns At.
type FixedClock struct {
	At time.Time
}

// Now returns At.
func (c FixedClock) Now() time.Time {
	return c.At
}

// MemoryValuationCache is a map-backed adapter.ValuationCache that counts hits.
type MemoryValuationCache struct {
	mu     sync.Mutex
	values map[adapter.ValuationKey]float64
	Hits   int
	Misses int
	Err    error
}

// NewMemoryValuationCache creates an empty cache.
func NewMemoryValuationCache() *MemoryValuationCache {
	return &MemoryValuationCache{values: map[adapter.ValuationKey]float64{}}
}

func normalize(key adapter.ValuationKey) adapter.ValuationKey {
	key.Version = key.Version.UTC()
	return key
}

// Get implements adapter.ValuationCache.
func (c *MemoryValuationCache) Get(_ context.Context, key adapter.ValuationKey) (float64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return 0, false, c.Err
	}
	v, ok := c.values[normalize(key)]
	if ok {
		c.Hits++
	} else {
		c.Misses++
	}
	return v, ok, nil
}

// Set implements adapter.ValuationCache.
func (c *MemoryValuationCache) Set(_ context.Context, key adapter.ValuationKey, value float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.values[normalize(key)] = value
	return nil
}

// Evict implements adapter.ValuationCache.
func (c *MemoryValuationCache) Evict(_ context.Context, investmentID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.values {
		if key.InvestmentID == investmentID {
			delete(c.values, key)
		}
	}
	return c.Err
}

// Len returns the number of cached values.
func (c *MemoryValuationCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}
