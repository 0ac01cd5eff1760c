package app

import (
	"context"
	"log"
	"time"

	"github.com/five82/quay/internal/dataset"
	"github.com/five82/quay/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// Source yields the dataset and reports when its backing file changed.
// dataset.Source implements it.
type Source interface {
	Load() (*dataset.Dataset, error)
	ModTime() (time.Time, error)
}

// poller reloads the dataset only when the source's modification time moves.
type poller struct {
	store    *state.Store
	source   Source
	lastMod  time.Time
	loaded   bool
	failures int
}

// StartPoller launches a background goroutine that keeps the store in sync
// with source. Failed reloads back off exponentially up to maxBackoff. It
// returns immediately.
func StartPoller(ctx context.Context, store *state.Store, source Source, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	p := &poller{store: store, source: source}
	go p.run(ctx, interval)
}

func (p *poller) run(ctx context.Context, interval time.Duration) {
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		p.refresh()
		timer.Reset(calculateBackoff(p.failures, interval))
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}

// refresh reloads the dataset when needed. It reports whether the store
// received a new dataset.
func (p *poller) refresh() bool {
	mod, err := p.source.ModTime()
	if err != nil {
		p.fail(err)
		log.Printf("dataset stat failed: %v", err)
		return false
	}
	if p.loaded && p.failures == 0 && mod.Equal(p.lastMod) {
		return false
	}

	ds, err := p.source.Load()
	if err != nil {
		p.fail(err)
		log.Printf("dataset load failed: %v", err)
		return false
	}

	p.store.Update(ds, nil)
	p.lastMod = mod
	p.loaded = true
	if p.failures > 0 {
		log.Printf("dataset reloaded after %d failed attempts", p.failures)
	}
	p.failures = 0
	return true
}

func (p *poller) fail(err error) {
	p.failures++
	p.store.Update(nil, err)
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
