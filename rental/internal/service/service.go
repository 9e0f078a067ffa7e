package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/Astemirdum/raingear-service/pkg/kafka"
	"github.com/Astemirdum/raingear-service/rental/internal/errs"
	"github.com/Astemirdum/raingear-service/rental/internal/model"
	"github.com/Astemirdum/raingear-service/rental/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultTxTimeout = 5 * time.Second
	defaultRetries   = 1
)

type Service struct {
	store     repository.Store
	publisher Publisher
	cache     StationCache
	log       *zap.Logger
	now       func() time.Time
	txTimeout time.Duration
	retries   int

	// bumped on every invalidation, see ListStations
	stationsGen atomic.Uint64
}

type Option func(*Service)

func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

func WithCache(c StationCache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithTxTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.txTimeout = d
		}
	}
}

func WithRetries(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.retries = n
		}
	}
}

func NewService(store repository.Store, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		store:     store,
		publisher: nopPublisher{},
		cache:     nopCache{},
		log:       log.Named("service"),
		now:       time.Now,
		txTimeout: defaultTxTimeout,
		retries:   defaultRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// inTx runs fn as one unit of work under the transaction timeout, retrying
// conflicts. The returned error always carries a kind.
func (s *Service) inTx(ctx context.Context, op string, fn func(ctx context.Context, tx repository.Tx) error) error {
	var err error
	for attempt := 0; attempt <= s.retries; attempt++ {
		err = s.unit(ctx, s.store.InTx, fn)
		if errs.KindOf(err) != errs.KindConflict {
			return err
		}
		s.log.Warn("transaction conflict", zap.String("op", op), zap.Int("attempt", attempt+1), zap.Error(err))
	}
	return err
}

func (s *Service) view(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	return s.unit(ctx, s.store.View, fn)
}

func (s *Service) unit(ctx context.Context,
	run func(context.Context, func(context.Context, repository.Tx) error) error,
	fn func(ctx context.Context, tx repository.Tx) error,
) error {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	err := run(txCtx, fn)
	if err == nil {
		return nil
	}
	if _, ok := errs.As(err); ok {
		return err
	}
	switch {
	case ctx.Err() != nil:
		return errs.Infrastructure(err)
	case errors.Is(txCtx.Err(), context.DeadlineExceeded):
		return errs.Timeout(err)
	}
	return errs.Infrastructure(err)
}

// fail renders err for the kiosk and logs it at a level matching its kind.
func (s *Service) fail(op string, err error, res model.ServiceResult) model.ServiceResult {
	res.Success = false
	res.Message = errs.UserMessage(err)
	res.Kind = errs.KindOf(err).String()
	res.Reason = errs.ReasonOf(err)

	fields := []zap.Field{zap.String("op", op), zap.String("kind", res.Kind), zap.Error(err)}
	switch errs.KindOf(err) {
	case errs.KindValidation:
		s.log.Info("rejected", append(fields, zap.String("reason", res.Reason))...)
	case errs.KindConflict:
		s.log.Warn("conflict", fields...)
	default:
		s.log.Error("failed", fields...)
	}
	return res
}

// committed runs the post-commit side effects of a state change.
func (s *Service) committed(ctx context.Context, event kafka.RentalEvent) {
	event.ID = uuid.NewString()
	event.Timestamp = s.now().UTC()
	if err := s.InvalidateStations(ctx); err != nil {
		s.log.Warn("cache invalidate", zap.Error(err))
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Error("publish event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, errs.ErrNotFound)
}
