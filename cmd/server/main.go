// Command server runs the multiplayer poker server: websocket gateway,
// auth endpoints, and the room registry over the configured game store.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/benhickson/goroom-poker-njs/game"
	"github.com/benhickson/goroom-poker-njs/internal/auth"
	"github.com/benhickson/goroom-poker-njs/internal/config"
	"github.com/benhickson/goroom-poker-njs/internal/gateway"
	"github.com/benhickson/goroom-poker-njs/internal/room"
	"github.com/benhickson/goroom-poker-njs/internal/store"
)

type cli struct {
	Config   string `help:"Path to the HCL config file." default:"server.hcl" type:"path"`
	Addr     string `help:"Listen address, overrides the config file." placeholder:":5000"`
	LogLevel string `help:"Log level, overrides the config file." enum:",debug,info,warn,error" default:""`
}

func main() {
	var args cli
	kong.Parse(&args,
		kong.Name("server"),
		kong.Description("Multiplayer Texas Hold'em server."),
		kong.UsageOnError(),
	)

	if err := run(&args); err != nil {
		log.Fatal("server exited", "err", err)
	}
}

func run(args *cli) error {
	cfg, err := config.Load(args.Config)
	if err != nil {
		return err
	}
	if args.Addr != "" {
		cfg.Server.Addr = args.Addr
	}
	if args.LogLevel != "" {
		cfg.Server.LogLevel = args.LogLevel
	}

	level, err := log.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})

	idleTTL, err := cfg.RoomIdleTTL()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return err
	}
	defer st.Close()
	logger.Info("game store opened", "driver", cfg.Store.Driver)

	sessions := auth.NewManager()
	gw := gateway.New(sessions, logger)
	rooms := room.NewManager(st, gw, logger, quartz.NewReal(), game.Config{
		SmallBlind:    cfg.Game.SmallBlind,
		BigBlind:      cfg.Game.BigBlind,
		StartingStack: cfg.Game.StartingStack,
	}, idleTTL)
	defer rooms.Close()
	gw.BindRooms(rooms)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gw.HandleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	auth.NewHTTPHandler(sessions).RegisterRoutes(mux)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		if err := rooms.RunReaper(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
