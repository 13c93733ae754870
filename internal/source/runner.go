package source

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pfrederiksen/eventsync/internal/event"
	"github.com/pfrederiksen/eventsync/internal/extract"
)

// Options configures a Runner.
type Options struct {
	// Delay is the minimum spacing between requests to one host.
	Delay time.Duration
	// Concurrent runs adapters in parallel across hosts. Adapters
	// sharing a host still execute one at a time.
	Concurrent bool
}

// Runner executes a set of adapters and assembles the raw candidate pool.
type Runner struct {
	logger     *slog.Logger
	pacer      *Pacer
	concurrent bool
}

// NewRunner creates a Runner.
func NewRunner(logger *slog.Logger, opts Options) *Runner {
	return &Runner{
		logger:     logger,
		pacer:      NewPacer(opts.Delay),
		concurrent: opts.Concurrent,
	}
}

// Run executes the adapters and concatenates their yields in the
// caller-supplied adapter order. A failing adapter is equivalent to one
// returning no events: the runner logs a warning and moves on, and no
// partial results from the failed adapter are kept.
func (r *Runner) Run(ctx context.Context, adapters []Adapter, q extract.Query) []event.Event {
	results := make([][]event.Event, len(adapters))

	if r.concurrent {
		r.runConcurrent(ctx, adapters, q, results)
	} else {
		for i, a := range adapters {
			results[i] = r.runOne(ctx, a, q)
		}
	}

	var pool []event.Event
	for _, evs := range results {
		pool = append(pool, evs...)
	}
	return pool
}

// runConcurrent runs one worker per distinct host. Adapters on the same
// host execute sequentially within their worker; results land in
// per-adapter slots so the final order matches the caller's adapter list
// regardless of scheduling.
func (r *Runner) runConcurrent(ctx context.Context, adapters []Adapter, q extract.Query, results [][]event.Event) {
	byHost := make(map[string][]int)
	for i, a := range adapters {
		byHost[a.Host()] = append(byHost[a.Host()], i)
	}

	var wg sync.WaitGroup
	for _, indices := range byHost {
		wg.Add(1)
		go func(indices []int) {
			defer wg.Done()
			for _, i := range indices {
				results[i] = r.runOne(ctx, adapters[i], q)
			}
		}(indices)
	}
	wg.Wait()
}

// runOne paces and executes a single adapter, absorbing any failure.
func (r *Runner) runOne(ctx context.Context, a Adapter, q extract.Query) []event.Event {
	log := r.logger.With(slog.String("source", a.Name()))

	if err := r.pacer.Wait(ctx, a.Host()); err != nil {
		log.Warn("pacing interrupted", slog.String("error", err.Error()))
		return nil
	}

	events, err := a.FetchCandidates(ctx, q)
	if err != nil {
		log.Warn("adapter failed, continuing without it", slog.String("error", err.Error()))
		return nil
	}

	log.Info("adapter finished", slog.Int("candidates", len(events)))
	return events
}
