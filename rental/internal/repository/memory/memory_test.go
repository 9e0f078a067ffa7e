package memory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Astemirdum/raingear-service/rental/internal/errs"
	"github.com/Astemirdum/raingear-service/rental/internal/model"
	"github.com/Astemirdum/raingear-service/rental/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestStore_InTxRollback(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()
	errAbort := errors.New("abort")

	err := s.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		if _, err := tx.Ledger().AdjustCredit(ctx, "2021001", decimal.NewFromInt(-10)); err != nil {
			return err
		}
		if err := tx.Inventory().SetGearStatusAndLocation(ctx, GearID(model.StationWende, 1), model.GearBorrowed, nil, nil); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	require.NoError(t, s.View(ctx, func(ctx context.Context, tx repository.Tx) error {
		acc, err := tx.Ledger().GetAccount(ctx, "2021001")
		require.NoError(t, err)
		require.True(t, decimal.NewFromInt(30).Equal(acc.Credit))

		g, err := tx.Inventory().GetGear(ctx, GearID(model.StationWende, 1))
		require.NoError(t, err)
		require.Equal(t, model.GearAvailable, g.Status)
		require.True(t, g.Located())
		return nil
	}))
}

func TestStore_ViewIsReadOnly(t *testing.T) {
	s := NewSeeded()
	err := s.View(context.Background(), func(ctx context.Context, tx repository.Tx) error {
		_, err := tx.Ledger().AdjustCredit(ctx, "2021001", decimal.NewFromInt(1))
		return err
	})
	require.Equal(t, errs.KindIntegrity, errs.KindOf(err))
}

func TestStore_Invariants(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	err := s.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		_, err := tx.Ledger().AdjustCredit(ctx, "2021001", decimal.NewFromInt(-31))
		return err
	})
	require.Equal(t, errs.KindIntegrity, errs.KindOf(err))

	err = s.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		st, slot := model.StationWende, 2
		return tx.Inventory().SetGearStatusAndLocation(ctx, GearID(model.StationWende, 1), model.GearAvailable, &st, &slot)
	})
	require.Equal(t, errs.KindIntegrity, errs.KindOf(err))

	err = s.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		return tx.Inventory().SetGearStatusAndLocation(ctx, GearID(model.StationWende, 1), model.GearAvailable, nil, nil)
	})
	require.Equal(t, errs.KindIntegrity, errs.KindOf(err))

	err = s.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		now := time.Now()
		if _, err := tx.Journal().OpenRecord(ctx, "2021001", GearID(model.StationWende, 1), now); err != nil {
			return err
		}
		_, err := tx.Journal().OpenRecord(ctx, "2021001", GearID(model.StationWende, 2), now)
		return err
	})
	require.Equal(t, errs.KindIntegrity, errs.KindOf(err))
}

func TestStore_JournalAndSlots(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()
	borrowed := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	var recID int64
	require.NoError(t, s.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		var err error
		recID, err = tx.Journal().OpenRecord(ctx, "2021001", GearID(model.StationLibrary, 5), borrowed)
		if err != nil {
			return err
		}
		if err = tx.Inventory().MarkSlotBroken(ctx, model.StationLibrary, 4); err != nil {
			return err
		}
		return tx.Inventory().MarkSlotBroken(ctx, model.StationLibrary, 4)
	}))

	require.NoError(t, s.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		rec, err := tx.Journal().FindOpenRecord(ctx, "2021001")
		require.NoError(t, err)
		require.Equal(t, recID, rec.ID)
		require.NoError(t, tx.Journal().CloseRecord(ctx, recID, borrowed.Add(time.Hour), decimal.NewFromInt(2)))
		require.Equal(t, errs.KindIntegrity, errs.KindOf(tx.Journal().CloseRecord(ctx, recID, borrowed, decimal.Zero)))

		st, err := tx.Inventory().GetStation(ctx, model.StationLibrary)
		require.NoError(t, err)
		require.Equal(t, []int{4}, st.BrokenSlots)
		return tx.Inventory().MarkSlotRepaired(ctx, model.StationLibrary, 4)
	}))

	require.NoError(t, s.View(ctx, func(ctx context.Context, tx repository.Tx) error {
		_, err := tx.Journal().FindOpenRecord(ctx, "2021001")
		require.ErrorIs(t, err, errs.ErrNotFound)

		hist, err := tx.Journal().History(ctx, "2021001", 10)
		require.NoError(t, err)
		require.Len(t, hist, 1)
		require.NotNil(t, hist[0].ReturnTime)

		st, err := tx.Inventory().GetStation(ctx, model.StationLibrary)
		require.NoError(t, err)
		require.Empty(t, st.BrokenSlots)

		counts, err := tx.Inventory().CountByStatus(ctx)
		require.NoError(t, err)
		require.Equal(t, len(DefaultGears()), counts[model.GearAvailable])
		return nil
	}))
}

func TestStore_CanceledContext(t *testing.T) {
	s := NewSeeded()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.InTx(ctx, func(ctx context.Context, tx repository.Tx) error { return nil })
	require.Equal(t, errs.KindInfrastructure, errs.KindOf(err))
}

func TestStore_StationJSONHasBrokenSlots(t *testing.T) {
	s := New()
	s.Seed([]model.Station{{ID: model.StationGym, Name: "Gymnasium", Online: true}}, nil, nil)
	ctx := context.Background()

	render := func() string {
		var st model.Station
		require.NoError(t, s.View(ctx, func(ctx context.Context, tx repository.Tx) error {
			var err error
			st, err = tx.Inventory().GetStation(ctx, model.StationGym)
			return err
		}))
		data, err := json.Marshal(st)
		require.NoError(t, err)
		return string(data)
	}
	require.Contains(t, render(), `"brokenSlots":[]`)

	require.NoError(t, s.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		if err := tx.Inventory().MarkSlotBroken(ctx, model.StationGym, 4); err != nil {
			return err
		}
		return tx.Inventory().MarkSlotRepaired(ctx, model.StationGym, 4)
	}))
	require.Contains(t, render(), `"brokenSlots":[]`)
}
