package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/raingear-service/pkg/auth"
	"github.com/Astemirdum/raingear-service/pkg/kafka"
	"github.com/Astemirdum/raingear-service/pkg/logger"
	"github.com/Astemirdum/raingear-service/pkg/postgres"
	"github.com/Astemirdum/raingear-service/rental/config"
	"github.com/Astemirdum/raingear-service/rental/internal/cache"
	"github.com/Astemirdum/raingear-service/rental/internal/handler"
	"github.com/Astemirdum/raingear-service/rental/internal/repository"
	"github.com/Astemirdum/raingear-service/rental/internal/repository/memory"
	"github.com/Astemirdum/raingear-service/rental/internal/server"
	"github.com/Astemirdum/raingear-service/rental/internal/service"
	"github.com/Astemirdum/raingear-service/rental/migrations"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type closer func() error

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "rental")
	defer log.Sync() //nolint:errcheck

	var closers []closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("close", zap.Error(err))
			}
		}
	}()

	store, err := newStore(cfg, log, &closers)
	if err != nil {
		return err
	}

	opts := []service.Option{
		service.WithTxTimeout(cfg.Rental.TxTimeout),
		service.WithRetries(cfg.Rental.TxRetries),
	}
	if cfg.Redis.Enabled() {
		stationCache := cache.NewStationCache(cache.NewClient(cfg.Redis), cfg.Redis.TTL, log)
		closers = append(closers, stationCache.Close)
		opts = append(opts, service.WithCache(stationCache))
		log.Info("station cache enabled", zap.String("addr", cfg.Redis.Addr))
	}
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return errors.Wrap(err, "kafka.NewProducer")
		}
		pub := kafka.NewPublisher(producer, kafka.RentalTopic)
		closers = append(closers, pub.Close)
		opts = append(opts, service.WithPublisher(pub))
	}
	svc := service.NewService(store, log, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Kafka.Enabled() {
		group, err := kafka.NewConsumer(cfg.Kafka, kafka.StationCacheConsumerGroup)
		if err != nil {
			return errors.Wrap(err, "kafka.NewConsumer")
		}
		closers = append(closers, group.Close)
		g.Go(func() error {
			return kafka.Consume(gCtx, group, handler.NewConsumer(svc.InvalidateStations, log), kafka.RentalTopic)
		})
	}

	h := handler.New(svc, auth.NewIssuer([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL), log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	g.Go(srv.Run)
	g.Go(func() error {
		<-gCtx.Done()
		log.Debug("Graceful shutdown")
		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	if err = g.Wait(); err != nil {
		return err
	}
	log.Info("Graceful shutdown finished")
	return nil
}

func newStore(cfg *config.Config, log *zap.Logger, closers *[]closer) (repository.Store, error) {
	switch cfg.Rental.Storage {
	case config.StorageMemory:
		log.Warn("using in-memory storage, state is lost on restart")
		return memory.NewSeeded(), nil
	default:
		db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
		if err != nil {
			return nil, errors.Wrap(err, "db init")
		}
		*closers = append(*closers, func() error {
			db.Close()
			return nil
		})
		repo, err := repository.NewRepository(db, log)
		if err != nil {
			return nil, errors.Wrap(err, "repo")
		}
		return repo, nil
	}
}
