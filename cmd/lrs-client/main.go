package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/goliatone/lrs-client/apiclient"
	"github.com/goliatone/lrs-client/config"
	"github.com/goliatone/lrs-client/server"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("lrs-client"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)
	log := lgr.GetLogger("main")

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if cfg.IsDev {
		fmt.Println(print.MaybeHighlightJSON(cfg))
	}

	api := apiclient.New(cfg.API.BaseURL,
		apiclient.WithTimeout(cfg.API.Timeout),
	)

	app, err := server.New(cfg, api,
		server.WithLogger(lgr.GetLogger("server")),
	)
	if err != nil {
		log.Error("failed to build the web client", "error", err)
		os.Exit(1)
	}

	go func() {
		log.Info("serving web client", "addr", cfg.HTTP.Addr, "api", cfg.API.BaseURL)
		if err := app.Serve(); err != nil {
			log.Error("server stopped", "error", err)
		}
	}()

	waitExitSignal()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(ctx); err != nil {
		log.Error("shutdown", "error", err)
	}
}

func waitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
