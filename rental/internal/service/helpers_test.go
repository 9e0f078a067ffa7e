package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Astemirdum/raingear-service/rental/internal/model"
	"github.com/Astemirdum/raingear-service/rental/internal/repository"
	"github.com/Astemirdum/raingear-service/rental/internal/repository/memory"
	"github.com/Astemirdum/raingear-service/rental/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	student  = "2021001"
	newcomer = "2021002"
	staff    = "staff01"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type env struct {
	svc   *service.Service
	store *memory.Store
	clock *testClock
}

func newEnv(t *testing.T, opts ...service.Option) env {
	t.Helper()
	store := memory.NewSeeded()
	clock := newTestClock()
	opts = append([]service.Option{service.WithClock(clock.Now)}, opts...)
	return env{
		svc:   service.NewService(store, zap.NewNop(), opts...),
		store: store,
		clock: clock,
	}
}

func (e env) account(t *testing.T, id string) model.Account {
	t.Helper()
	var acc model.Account
	require.NoError(t, e.store.View(context.Background(), func(ctx context.Context, tx repository.Tx) error {
		var err error
		acc, err = tx.Ledger().GetAccount(ctx, id)
		return err
	}))
	return acc
}

func (e env) gear(t *testing.T, id string) model.Gear {
	t.Helper()
	var g model.Gear
	require.NoError(t, e.store.View(context.Background(), func(ctx context.Context, tx repository.Tx) error {
		var err error
		g, err = tx.Inventory().GetGear(ctx, id)
		return err
	}))
	return g
}

func (e env) openRecord(t *testing.T, user string) (model.Record, bool) {
	t.Helper()
	var (
		rec   model.Record
		found bool
	)
	require.NoError(t, e.store.View(context.Background(), func(ctx context.Context, tx repository.Tx) error {
		r, err := tx.Journal().FindOpenRecord(ctx, user)
		if err == nil {
			rec, found = r, true
		}
		return nil
	}))
	return rec, found
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// flakyStore fails the first fails units of work with err.
type flakyStore struct {
	repository.Store
	mu    sync.Mutex
	fails int
	err   error
	calls int
}

func (f *flakyStore) InTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	f.mu.Lock()
	f.calls++
	fail := f.fails > 0
	if fail {
		f.fails--
	}
	f.mu.Unlock()
	if fail {
		return f.err
	}
	return f.Store.InTx(ctx, fn)
}

// stuckStore holds every unit of work until its context ends.
type stuckStore struct {
	repository.Store
}

func (stuckStore) InTx(ctx context.Context, _ func(ctx context.Context, tx repository.Tx) error) error {
	<-ctx.Done()
	return ctx.Err()
}

// hookStore calls afterView when a read-only unit of work has finished.
type hookStore struct {
	repository.Store
	afterView func()
}

func (s *hookStore) View(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	err := s.Store.View(ctx, fn)
	if s.afterView != nil {
		s.afterView()
	}
	return err
}
