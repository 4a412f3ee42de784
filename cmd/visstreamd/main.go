// Command visstreamd runs the visualization streaming engine as a
// standalone process: an admin HTTP server exposing the websocket
// stream and debug endpoints, plus the network task driving the
// interval-flush timer.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/kdsutter/visstream/internal/transport"
	"github.com/kdsutter/visstream/pkg/vis"
)

const shutdownGrace = 5 * time.Second

func main() {
	if err := mainInner(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func mainInner() error {
	addrVar := flag.String("addr", "localhost:8090", "the address to listen on")
	autoUpdate := flag.Bool("auto-update", true, "enable the interval auto-flush policy on startup")
	threshold := flag.Int("auto-update-threshold", 32, "dirty-object count that triggers an immediate flush")
	intervalMs := flag.Int("auto-update-interval-ms", 100, "interval-flush period in milliseconds")
	flag.Parse()

	engine := vis.NewEngine()
	engine.SetAutoUpdatePolicy(*autoUpdate, *threshold, *intervalMs)

	hub := transport.NewHub(engine)
	wg := new(sync.WaitGroup)
	wg.Add(1)
	go func() {
		defer wg.Done()
		hub.Run()
	}()

	engine.Run()
	slog.Info("engine started", "auto_update", *autoUpdate, "threshold", *threshold, "interval_ms", *intervalMs)

	srv := transport.NewServer(engine)
	httpServer := &http.Server{Addr: *addrVar, Handler: srv.Router()}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server listen failed", "err", err)
		}
	}()
	slog.Info("listening", "addr", *addrVar)

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-exit
	slog.Info("signal caught", "sig", sig)

	engine.Stop()
	hub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	_ = httpServer.Shutdown(ctx)

	wg.Wait()
	return nil
}
