package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Astemirdum/raingear-service/rental/internal/errs"
	"github.com/Astemirdum/raingear-service/rental/internal/model"
	"github.com/Astemirdum/raingear-service/rental/internal/repository"
	"github.com/Astemirdum/raingear-service/rental/internal/repository/memory"
	"github.com/Astemirdum/raingear-service/rental/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService_BorrowReturnScenario(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	gearID := memory.GearID(model.StationWende, 1)

	res, err := e.svc.Borrow(ctx, student, model.StationWende, 1)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, gearID, res.GearID)
	require.Equal(t, "20.00", res.Balance.StringFixed(2))
	require.True(t, res.Cost.IsZero())

	g := e.gear(t, gearID)
	require.Equal(t, model.GearBorrowed, g.Status)
	require.False(t, g.Located())
	rec, ok := e.openRecord(t, student)
	require.True(t, ok)
	require.Equal(t, gearID, rec.GearID)
	require.Equal(t, e.clock.Now(), rec.BorrowTime)

	res, err = e.svc.Borrow(ctx, student, model.StationWende, 2)
	require.Error(t, err)
	require.False(t, res.Success)
	require.Equal(t, errs.ReasonExistingRental, res.Reason)
	require.Equal(t, "20.00", e.account(t, student).Credit.StringFixed(2))
	require.Equal(t, model.GearAvailable, e.gear(t, memory.GearID(model.StationWende, 2)).Status)

	e.clock.Advance(30 * time.Hour)
	res, err = e.svc.Return(ctx, student, gearID, model.StationLibrary, 4)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "10.00", res.Cost.StringFixed(2))
	require.Equal(t, "0.00", res.Refund.StringFixed(2))
	require.Equal(t, "20.00", res.Balance.StringFixed(2))
	require.Equal(t, "Returned Standard plastic umbrella. Fee 10.00, refund 0.00", res.Message)

	g = e.gear(t, gearID)
	require.Equal(t, model.GearAvailable, g.Status)
	require.Equal(t, model.StationLibrary, *g.StationID)
	require.Equal(t, 4, *g.SlotID)
	_, ok = e.openRecord(t, student)
	require.False(t, ok)

	// a second return of the same gear has no rental to close
	res, err = e.svc.Return(ctx, student, gearID, model.StationWende, 4)
	require.Error(t, err)
	require.Equal(t, errs.ReasonNoOpenRental, res.Reason)
}

func TestService_ReturnFee(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		slot    int
		back    int
		elapsed time.Duration
		cost    string
		refund  string
	}{
		{name: "plastic 90 minutes", slot: 1, back: 4, elapsed: 90 * time.Minute, cost: "2.00", refund: "8.00"},
		{name: "premium one hour", slot: 5, back: 8, elapsed: time.Hour, cost: "2.00", refund: "18.00"},
		{name: "sunshade started hour", slot: 9, back: 10, elapsed: 2*time.Hour + time.Second, cost: "4.50", refund: "10.50"},
		{name: "raincoat capped", slot: 11, back: 12, elapsed: 48 * time.Hour, cost: "25.00", refund: "0.00"},
		{name: "instant return", slot: 1, back: 4, elapsed: 0, cost: "0.00", refund: "10.00"},
		{name: "clock went back", slot: 1, back: 4, elapsed: -time.Hour, cost: "0.00", refund: "10.00"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newEnv(t)
			ctx := context.Background()

			before := e.account(t, staff).Credit
			res, err := e.svc.Borrow(ctx, staff, model.StationGym, tt.slot)
			require.NoError(t, err)

			e.clock.Advance(tt.elapsed)
			res, err = e.svc.Return(ctx, staff, res.GearID, model.StationGym, tt.back)
			require.NoError(t, err)
			require.Equal(t, tt.cost, res.Cost.StringFixed(2))
			require.Equal(t, tt.refund, res.Refund.StringFixed(2))
			require.True(t, before.Sub(money(tt.cost)).Equal(res.Balance))
		})
	}
}

func TestService_BorrowPreconditions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		prepare func(t *testing.T, e env)
		user    string
		station model.StationID
		slot    int
		reason  string
	}{
		{name: "unknown account", user: "ghost", station: model.StationWende, slot: 1, reason: errs.ReasonAccountNotFound},
		{name: "inactive account", user: newcomer, station: model.StationWende, slot: 1, reason: errs.ReasonAccountInactive},
		{
			name: "open rental checked before station",
			prepare: func(t *testing.T, e env) {
				_, err := e.svc.Borrow(context.Background(), student, model.StationWende, 1)
				require.NoError(t, err)
			},
			user: student, station: model.StationUnknown, slot: 1, reason: errs.ReasonExistingRental,
		},
		{name: "unknown station", user: student, station: model.StationID(99), slot: 1, reason: errs.ReasonStationNotFound},
		{
			name: "offline station",
			prepare: func(t *testing.T, e env) {
				_, err := e.svc.AdminSetStationOnline(context.Background(), model.StationMingde, false)
				require.NoError(t, err)
			},
			user: student, station: model.StationMingde, slot: 1, reason: errs.ReasonStationOffline,
		},
		{name: "slot out of range", user: student, station: model.StationWende, slot: 13, reason: errs.ReasonSlotOutOfRange},
		{name: "empty slot", user: student, station: model.StationWende, slot: 4, reason: errs.ReasonSlotEmpty},
		{
			name: "broken gear",
			prepare: func(t *testing.T, e env) {
				_, err := e.svc.AdminSetGearStatus(context.Background(), memory.GearID(model.StationWende, 2), model.GearBroken)
				require.NoError(t, err)
			},
			user: student, station: model.StationWende, slot: 2, reason: errs.ReasonGearUnavailable,
		},
		{name: "raincoat deposit fits", user: student, station: model.StationWende, slot: 11, reason: ""},
		{
			name: "insufficient credit",
			prepare: func(t *testing.T, e env) {
				e.store.Seed(nil, nil, []model.Account{{ID: "poor", Name: "Poor", Credit: money("9.99"), Role: model.RoleStudent, Active: true}})
			},
			user: "poor", station: model.StationWende, slot: 1, reason: errs.ReasonInsufficientCredit,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newEnv(t)
			if tt.prepare != nil {
				tt.prepare(t, e)
			}
			res, err := e.svc.Borrow(context.Background(), tt.user, tt.station, tt.slot)
			if tt.reason == "" {
				// raincoat deposit 25.00 still fits a 30.00 balance
				require.NoError(t, err)
				require.Equal(t, "5.00", res.Balance.StringFixed(2))
				return
			}
			require.Error(t, err)
			require.Equal(t, errs.KindValidation, errs.KindOf(err))
			require.False(t, res.Success)
			require.Equal(t, tt.reason, res.Reason)
			require.Equal(t, tt.reason, errs.ReasonOf(err))
			require.NotEmpty(t, res.Message)
		})
	}
}

func TestService_ReturnPreconditions(t *testing.T) {
	t.Parallel()
	held := memory.GearID(model.StationWende, 1)
	tests := []struct {
		name    string
		prepare func(t *testing.T, e env)
		gear    string
		station model.StationID
		slot    int
		reason  string
	}{
		{name: "unknown gear", gear: "G99-99", station: model.StationWende, slot: 1, reason: errs.ReasonGearNotFound},
		{name: "unknown station", gear: held, station: model.StationID(42), slot: 4, reason: errs.ReasonStationNotFound},
		{
			name: "offline station",
			prepare: func(t *testing.T, e env) {
				_, err := e.svc.AdminSetStationOnline(context.Background(), model.StationLibrary, false)
				require.NoError(t, err)
			},
			gear: held, station: model.StationLibrary, slot: 4, reason: errs.ReasonStationOffline,
		},
		{name: "occupied slot", gear: held, station: model.StationWende, slot: 2, reason: errs.ReasonSlotOccupied},
		{
			name: "broken slot",
			prepare: func(t *testing.T, e env) {
				_, err := e.svc.AdminMarkSlotBroken(context.Background(), model.StationWende, 4)
				require.NoError(t, err)
			},
			gear: held, station: model.StationWende, slot: 4, reason: errs.ReasonSlotBroken,
		},
		{name: "plastic into premium slot", gear: held, station: model.StationWende, slot: 8, reason: errs.ReasonWrongReturnZone},
		{name: "slot past capacity", gear: held, station: model.StationWende, slot: 13, reason: errs.ReasonWrongReturnZone},
		{
			name: "someone else's gear",
			gear: memory.GearID(model.StationLibrary, 1), station: model.StationWende, slot: 4, reason: errs.ReasonGearMismatch,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newEnv(t)
			ctx := context.Background()
			_, err := e.svc.Borrow(ctx, student, model.StationWende, 1)
			require.NoError(t, err)
			if tt.prepare != nil {
				tt.prepare(t, e)
			}

			res, err := e.svc.Return(ctx, student, tt.gear, tt.station, tt.slot)
			require.Error(t, err)
			require.Equal(t, tt.reason, res.Reason)
			require.Equal(t, "20.00", res.Balance.StringFixed(2))

			// nothing moved
			require.Equal(t, model.GearBorrowed, e.gear(t, held).Status)
			_, open := e.openRecord(t, student)
			require.True(t, open)
			require.Equal(t, "20.00", e.account(t, student).Credit.StringFixed(2))
		})
	}
}

func TestService_ReturnWithoutRental(t *testing.T) {
	e := newEnv(t)
	res, err := e.svc.Return(context.Background(), staff, memory.GearID(model.StationWende, 1), model.StationWende, 4)
	require.Error(t, err)
	require.Equal(t, errs.ReasonNoOpenRental, res.Reason)

	res, err = e.svc.Return(context.Background(), "ghost", memory.GearID(model.StationWende, 1), model.StationWende, 4)
	require.Error(t, err)
	require.Equal(t, errs.ReasonNoOpenRental, res.Reason)
}

func TestService_ConcurrentBorrowSameSlot(t *testing.T) {
	e := newEnv(t)
	users := []string{student, staff}

	type outcome struct {
		res model.ServiceResult
		err error
	}
	results := make(chan outcome, len(users))
	start := make(chan struct{})
	for _, u := range users {
		u := u
		go func() {
			<-start
			res, err := e.svc.Borrow(context.Background(), u, model.StationOufang, 6)
			results <- outcome{res: res, err: err}
		}()
	}
	close(start)

	var success, empty int
	for range users {
		o := <-results
		if o.err == nil {
			success++
			continue
		}
		require.Equal(t, errs.ReasonSlotEmpty, o.res.Reason)
		empty++
	}
	require.Equal(t, 1, success)
	require.Equal(t, 1, empty)
}

func TestService_RetryOnConflict(t *testing.T) {
	t.Parallel()
	conflict := errs.Conflict(errors.New("could not serialize access"))

	t.Run("retried once", func(t *testing.T) {
		t.Parallel()
		store := &flakyStore{Store: memory.NewSeeded(), fails: 1, err: conflict}
		svc := service.NewService(store, zap.NewNop())
		res, err := svc.Borrow(context.Background(), student, model.StationWende, 1)
		require.NoError(t, err)
		require.True(t, res.Success)
		require.Equal(t, 2, store.calls)
	})
	t.Run("gives up", func(t *testing.T) {
		t.Parallel()
		store := &flakyStore{Store: memory.NewSeeded(), fails: 2, err: conflict}
		svc := service.NewService(store, zap.NewNop())
		res, err := svc.Borrow(context.Background(), student, model.StationWende, 1)
		require.Equal(t, errs.KindConflict, errs.KindOf(err))
		require.Equal(t, "conflict", res.Kind)
		require.Equal(t, 2, store.calls)
	})
	t.Run("no retries configured", func(t *testing.T) {
		t.Parallel()
		store := &flakyStore{Store: memory.NewSeeded(), fails: 1, err: conflict}
		svc := service.NewService(store, zap.NewNop(), service.WithRetries(0))
		_, err := svc.Borrow(context.Background(), student, model.StationWende, 1)
		require.Equal(t, errs.KindConflict, errs.KindOf(err))
		require.Equal(t, 1, store.calls)
	})
	t.Run("validation is not retried", func(t *testing.T) {
		t.Parallel()
		store := &flakyStore{Store: memory.NewSeeded()}
		svc := service.NewService(store, zap.NewNop())
		_, err := svc.Borrow(context.Background(), newcomer, model.StationWende, 1)
		require.Equal(t, errs.ReasonAccountInactive, errs.ReasonOf(err))
		require.Equal(t, 1, store.calls)
	})
}

func TestService_TransactionTimeout(t *testing.T) {
	t.Parallel()
	svc := service.NewService(stuckStore{memory.NewSeeded()}, zap.NewNop(), service.WithTxTimeout(20*time.Millisecond))

	res, err := svc.Borrow(context.Background(), student, model.StationWende, 1)
	require.Error(t, err)
	require.Equal(t, errs.KindInfrastructure, errs.KindOf(err))
	require.True(t, errs.IsRetryable(err))
	require.False(t, res.Success)
	require.Equal(t, errs.UserMessage(err), res.Message)
}

func TestService_CallerCancel(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.svc.Borrow(ctx, student, model.StationWende, 1)
	require.Error(t, err)
	require.Equal(t, errs.KindInfrastructure, errs.KindOf(err))
	require.Equal(t, "30.00", e.account(t, student).Credit.StringFixed(2))
	require.Equal(t, model.GearAvailable, e.gear(t, memory.GearID(model.StationWende, 1)).Status)
}

func TestService_IntegrityFailureRollsBack(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	gearID := memory.GearID(model.StationWende, 1)

	// a record pointing at a gear that is still in its slot
	require.NoError(t, e.store.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		_, err := tx.Journal().OpenRecord(ctx, staff, gearID, e.clock.Now())
		return err
	}))
	res, err := e.svc.Return(ctx, staff, gearID, model.StationWende, 4)
	require.Equal(t, errs.KindIntegrity, errs.KindOf(err))
	require.Equal(t, "integrity", res.Kind)
	require.NotContains(t, res.Message, gearID)

	_, open := e.openRecord(t, staff)
	require.True(t, open)
	require.True(t, decimal.NewFromInt(100).Equal(e.account(t, staff).Credit))
}
