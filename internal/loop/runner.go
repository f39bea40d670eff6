// Package loop drives the background cadence of the server: the simulation
// heartbeat, periodic auto-saves and market fluctuation.
package loop

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/egodevrjm/resource-colony/internal/config"
	"github.com/egodevrjm/resource-colony/internal/game"
	"github.com/egodevrjm/resource-colony/internal/market"
	"github.com/egodevrjm/resource-colony/internal/save"
)

// Runner owns the tickers. Start launches one goroutine; Stop waits for it
// to drain.
type Runner struct {
	engine *game.Engine
	store  *save.Store
	mkt    *market.Market
	clock  game.Clock
	bal    config.Balance
	logger *log.Logger

	cancel context.CancelFunc
	done   sync.WaitGroup
}

func NewRunner(engine *game.Engine, store *save.Store, clock game.Clock, logger *log.Logger) *Runner {
	return &Runner{
		engine: engine,
		store:  store,
		mkt:    engine.Market(),
		clock:  clock,
		bal:    engine.Balance(),
		logger: logger,
	}
}

func (r *Runner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done.Add(1)
	go r.run(ctx)
}

// Stop halts the loop and writes a final save.
func (r *Runner) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	r.done.Wait()
	r.save(false)
}

func (r *Runner) run(ctx context.Context) {
	defer r.done.Done()

	tick := time.NewTicker(time.Duration(r.bal.TickIntervalMS) * time.Millisecond)
	defer tick.Stop()
	fluctuate := time.NewTicker(time.Duration(r.bal.MarketIntervalSeconds) * time.Second)
	defer fluctuate.Stop()
	// Auto-save checks on a fixed beat; the interval itself is a setting.
	autosave := time.NewTicker(time.Second)
	defer autosave.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			r.engine.Tick(r.clock.Now())
		case <-fluctuate.C:
			r.mkt.Fluctuate()
		case <-autosave.C:
			r.maybeAutoSave()
		}
	}
}

func (r *Runner) maybeAutoSave() {
	settings := r.engine.Snapshot().Settings
	interval := settings.AutoSaveInterval
	if interval <= 0 {
		return
	}
	if r.clock.Now().Sub(settings.LastSave).Seconds() < interval {
		return
	}
	r.save(false)
}

func (r *Runner) save(manual bool) {
	if err := r.store.SaveGame(r.engine.Snapshot()); err != nil {
		if r.logger != nil {
			r.logger.Printf("auto-save failed: %v", err)
		}
		return
	}
	r.engine.MarkSaved(manual)
}
