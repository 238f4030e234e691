package monitor

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/avikram/sat2intel/internal/config"
	"github.com/avikram/sat2intel/internal/pipeline"
	"github.com/avikram/sat2intel/internal/report"
	"github.com/avikram/sat2intel/internal/source"
)

// Watcher polls every monitored location on a fixed interval, compares the
// newest capture against the stored baseline, and publishes the resulting
// reports. Locations are independent and run concurrently; the first pass
// over a location only establishes its baseline.
//
// A failing location (missing captures, unreadable file) is reported
// through OnError and does not stop the loop or the other locations; only
// cancellation terminates Run.
type Watcher struct {
	Store     BaselineStore
	Locations []config.Location
	Interval  time.Duration
	Cfg       *config.Config

	// Publish receives each completed report. Nil publishers are allowed;
	// reports are then dropped.
	Publish func(loc config.Location, rep *report.AnalysisReport)

	// OnError receives per-location polling failures. Nil means failures
	// are dropped silently.
	OnError func(loc config.Location, err error)
}

// NewWatcher assembles a watcher over the configured locations.
func NewWatcher(store BaselineStore, cfg *config.Config, publish func(config.Location, *report.AnalysisReport)) *Watcher {
	return &Watcher{
		Store:     store,
		Locations: cfg.Locations,
		Interval:  time.Duration(cfg.IntervalSec) * time.Second,
		Cfg:       cfg,
		Publish:   publish,
	}
}

// Run polls until ctx is cancelled, then returns ctx.Err().
func (w *Watcher) Run(ctx context.Context) error {
	if len(w.Locations) == 0 {
		return fmt.Errorf("no locations configured")
	}

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Tick(ctx); err != nil {
				return err
			}
		}
	}
}

// Tick runs one polling pass over all locations. Location failures go to
// OnError; the returned error is non-nil only when ctx is cancelled.
func (w *Watcher) Tick(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, loc := range w.Locations {
		loc := loc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := w.poll(loc); err != nil && w.OnError != nil {
				w.OnError(loc, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// poll analyzes one location's newest capture against its baseline and
// promotes the capture to the new baseline.
func (w *Watcher) poll(loc config.Location) error {
	path, err := source.FindLatest(loc.CaptureDir)
	if err != nil {
		return fmt.Errorf("location %s: %w", loc.ID, err)
	}

	capture, err := source.Load(path, w.Cfg.DPI)
	if err != nil {
		return fmt.Errorf("location %s: %w", loc.ID, err)
	}

	baseline, ok := w.Store.Baseline(loc.ID)
	if !ok {
		w.Store.SetBaseline(loc.ID, capture)
		return nil
	}

	rep, err := pipeline.Analyze(baseline, capture, loc.ID, loc.Bounds, w.Cfg)
	if err != nil {
		return fmt.Errorf("location %s: %w", loc.ID, err)
	}

	if w.Publish != nil {
		w.Publish(loc, rep)
	}

	w.Store.SetBaseline(loc.ID, capture)
	return nil
}
