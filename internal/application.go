package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/arcade-backend/internal/config"
	"github.com/rocketscienceinc/arcade-backend/internal/repository"
	"github.com/rocketscienceinc/arcade-backend/internal/repository/storage"
	"github.com/rocketscienceinc/arcade-backend/internal/service"
	"github.com/rocketscienceinc/arcade-backend/transport/rest"
)

const sweepInterval = time.Minute

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	roomRepo, err := newRoomRepository(ctx, log, conf)
	if err != nil {
		return err
	}

	locker := service.NewRoomLocker()
	roomService := service.NewRoomService(logger, roomRepo, locker)
	gamePlayService := service.NewGamePlayService(logger, roomRepo, locker)

	go runSweeper(ctx, log, roomRepo)

	handlers := rest.NewHandlers(logger, roomService, gamePlayService, conf.Room.OnlineWindow, conf.StaticDir)

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, logger, handlers, conf.HTTPPort); httpErr != nil {
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// newRoomRepository - picks the room store backend from config; memory is the default.
func newRoomRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.RoomRepository, error) {
	switch conf.Storage.Type {
	case config.StorageRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Storage.Redis.GetRedisAddr())
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		go func() {
			<-ctx.Done()
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		return repository.NewRoomRepository(redisStorage.Connection, conf.Room.TTL), nil
	case config.StorageMemory, "":
		return repository.NewMemoryRoomRepository(conf.Room.TTL), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %q", conf.Storage.Type) //nolint: err113 // one-shot config error
	}
}

// runSweeper - drops expired rooms on a fixed interval until the context ends.
func runSweeper(ctx context.Context, log *slog.Logger, roomRepo repository.RoomRepository) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			swept, err := roomRepo.SweepExpired(ctx, now)
			if err != nil {
				log.Error("room sweep failed", "error", err)
				continue
			}

			if swept > 0 {
				log.Info("swept expired rooms", "count", swept)
			}
		}
	}
}
