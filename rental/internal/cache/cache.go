package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Astemirdum/raingear-service/pkg/circuit_breaker"
	"github.com/Astemirdum/raingear-service/rental/internal/model"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Config struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB"`
	TTL      time.Duration `envconfig:"STATIONS_CACHE_TTL"`
}

func (c Config) Enabled() bool {
	return c.Addr != ""
}

const stationsKey = "raingear:stations"

func NewClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
}

// StationCache keeps the last station summary snapshot. Redis calls go
// through a circuit breaker so a dead redis costs one fast error per call.
type StationCache struct {
	rdb *redis.Client
	ttl time.Duration
	cb  circuit_breaker.CircuitBreaker
	log *zap.Logger
}

func NewStationCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *StationCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &StationCache{
		rdb: rdb,
		ttl: ttl,
		cb:  circuit_breaker.New(10, 5*time.Second, 0.5, 3),
		log: log.Named("cache"),
	}
}

// Stations returns the cached snapshot; ok is false on a miss.
func (c *StationCache) Stations(ctx context.Context) (stations []model.StationSummary, ok bool, err error) {
	var data []byte
	err = c.cb.Call(func() error {
		var err error
		data, err = c.rdb.Get(ctx, stationsKey).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "cache get")
	}
	if data == nil {
		return nil, false, nil
	}
	if err = json.Unmarshal(data, &stations); err != nil {
		c.log.Warn("drop corrupt snapshot", zap.Error(err))
		return nil, false, nil
	}
	return stations, true, nil
}

func (c *StationCache) SetStations(ctx context.Context, stations []model.StationSummary) error {
	data, err := json.Marshal(stations)
	if err != nil {
		return err
	}
	err = c.cb.Call(func() error {
		return c.rdb.Set(ctx, stationsKey, data, c.ttl).Err()
	})
	return errors.Wrap(err, "cache set")
}

func (c *StationCache) Invalidate(ctx context.Context) error {
	err := c.cb.Call(func() error {
		return c.rdb.Del(ctx, stationsKey).Err()
	})
	return errors.Wrap(err, "cache del")
}

func (c *StationCache) Close() error {
	return c.rdb.Close()
}
