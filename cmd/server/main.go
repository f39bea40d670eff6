package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/egodevrjm/resource-colony/internal/config"
	"github.com/egodevrjm/resource-colony/internal/serverapp"
)

func main() {
	cfg, err := config.Load("colony.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	app, err := serverapp.New(serverapp.Options{
		Config: cfg,
		Logger: log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: app.Handler}

	go func() {
		log.Printf("listening on http://localhost%s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Print("shutting down")
	app.Close()
	_ = srv.Close()
}
