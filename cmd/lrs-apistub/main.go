package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/goliatone/lrs-client/apistub"
	"github.com/goliatone/lrs-client/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("lrs-apistub"),
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

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.Stub.DSN)
	if err != nil {
		log.Error("failed to open database", "error", err, "dsn", cfg.Stub.DSN)
		os.Exit(1)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	ctx := context.Background()
	if err := apistub.Setup(ctx, db); err != nil {
		log.Error("failed to create schema", "error", err)
		os.Exit(1)
	}

	if cfg.Stub.Seed {
		if err := apistub.Seed(ctx, db); err != nil {
			log.Error("failed to seed fixtures", "error", err)
			os.Exit(1)
		}
		log.Info("fixtures loaded")
	}

	tokens := apistub.NewTokenService(
		[]byte(cfg.Stub.SigningKey),
		cfg.Stub.TokenTTL,
		cfg.Stub.Issuer,
	)

	srv := apistub.NewServer(db, apistub.NewRepositoryManager(db), tokens,
		apistub.WithLogger(lgr.GetLogger("api")),
	)

	go func() {
		log.Info("serving stub API", "addr", cfg.Stub.Addr)
		if err := srv.Serve(cfg.Stub.Addr); err != nil {
			log.Error("server stopped", "error", err)
		}
	}()

	waitExitSignal()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
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
