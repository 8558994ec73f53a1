package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	httpServer "github.com/adwski/webrtc-roulette/backend/server/http"
	websocketServer "github.com/adwski/webrtc-roulette/backend/server/websocket"
	"github.com/adwski/webrtc-roulette/backend/service"
	store "github.com/adwski/webrtc-roulette/backend/storage/memory"
	sw "github.com/adwski/webrtc-roulette/backend/switch"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// .env is optional
	_ = godotenv.Load()

	fs := pflag.NewFlagSet("main", pflag.ContinueOnError)

	var (
		apiListenAddr = fs.StringP("api-listen-addr", "a", ":8080", "stats api listen address")
		wsListenAddr  = fs.StringP("ws-listen-addr", "w", ":"+envOr("PORT", "3001"), "websocket signaling listen address")
		logLevel      = fs.StringP("log-level", "l", envOr("LOG_LEVEL", "info"), "log level")
		maxNameLength = fs.Int("max-name-length", 64, "max display name length")
		sendBuffer    = fs.Int("send-buffer", 64, "outbound message buffer per connection")
	)
	if err := fs.Parse(os.Args[1:]); err != nil {
		logger.Fatal().Err(err).Msg("failed to parse command line arguments")
	}

	lvl, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse loglevel")
	}
	logger = logger.Level(lvl)

	rooms := store.NewRoomTable()
	svc := service.NewService(service.Config{
		Registry:  store.NewRegistry(),
		Queue:     store.NewQueue(),
		RoomTable: rooms,
		Switch:    sw.NewSwitch(&logger, rooms),
		Logger:    &logger,
	})
	httpSrv := httpServer.NewServer(httpServer.Config{
		Logger:       &logger,
		StatsService: svc,
		ListenAddr:   *apiListenAddr,
	})
	wsSrv := websocketServer.NewServer(websocketServer.Config{
		Logger:           &logger,
		SignalingService: svc,
		ListenAddr:       *wsListenAddr,
		SendBuffer:       *sendBuffer,
		MaxNameLength:    *maxNameLength,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var (
		wg   = &sync.WaitGroup{}
		errc = make(chan error, 2)
	)
	wg.Add(2)
	go httpSrv.Run(ctx, wg, errc)
	go wsSrv.Run(ctx, wg, errc)

	select {
	case err = <-errc:
		logger.Error().Err(err).Msg("unexpected server error, shutting down")
	case <-ctx.Done():
		logger.Warn().Msg("interrupted")
	}
	cancel()
	wg.Wait()
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
