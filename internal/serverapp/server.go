// Package serverapp assembles the full server: config, persistence, the
// simulation engine, the websocket hub, the HTTP surface and the background
// loop.
package serverapp

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/egodevrjm/resource-colony/internal/api"
	"github.com/egodevrjm/resource-colony/internal/config"
	"github.com/egodevrjm/resource-colony/internal/game"
	"github.com/egodevrjm/resource-colony/internal/httpmw"
	"github.com/egodevrjm/resource-colony/internal/loop"
	"github.com/egodevrjm/resource-colony/internal/notify"
	"github.com/egodevrjm/resource-colony/internal/save"
	"github.com/egodevrjm/resource-colony/internal/telemetry"
)

type Options struct {
	Config *config.Config
	Logger *log.Logger
}

// App is the assembled server. Close stops the loop and flushes the save.
type App struct {
	Handler http.Handler
	Engine  *game.Engine

	runner *loop.Runner
}

func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	dataDir := strings.TrimSpace(opts.Config.Server.DataDir)
	if dataDir == "" {
		dataDir = "data"
	}

	store, err := save.NewStore(dataDir, opts.Logger)
	if err != nil {
		return nil, err
	}

	hub := api.NewHub(opts.Logger)
	go hub.Run()

	clock := game.RealClock{}
	recorder := telemetry.NewMemoryRecorder(0)
	engine := game.New(game.Options{
		Balance: opts.Config.Balance,
		Clock:   clock,
		Notifier: notify.Multi{
			notify.LogNotifier{Logger: opts.Logger},
			hub,
		},
		Recorder: recorder,
		Logger:   opts.Logger,
	})

	snapshot, err := store.LoadGame()
	if err != nil {
		return nil, err
	}
	if snapshot != nil {
		engine.Load(snapshot)
	}

	mux := http.NewServeMux()
	apiHandler := api.NewHandler(engine, store, hub, opts.Logger)
	apiHandler.SetTelemetry(recorder)
	apiHandler.Register(mux)

	runner := loop.NewRunner(engine, store, clock, opts.Logger)
	runner.Start()

	handler := httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	)

	return &App{Handler: handler, Engine: engine, runner: runner}, nil
}

// Close stops the background loop and persists a final snapshot.
func (a *App) Close() {
	a.runner.Stop()
}
