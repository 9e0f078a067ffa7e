package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Astemirdum/raingear-service/rental/internal/errs"
	"github.com/Astemirdum/raingear-service/rental/internal/model"
	"github.com/Astemirdum/raingear-service/rental/internal/repository"
	"github.com/Astemirdum/raingear-service/rental/internal/repository/memory"
	"github.com/Astemirdum/raingear-service/rental/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPostgresService(t *testing.T) (*service.Service, repository.Store) {
	t.Helper()
	pool := repository.SharedTestPool()
	if pool == nil {
		t.Skip("postgres is not available")
	}
	repo, err := repository.NewRepository(pool, zap.NewNop())
	require.NoError(t, err)
	return service.NewService(repo, zap.NewNop(), service.WithRetries(3)), repo
}

func addAccounts(t *testing.T, prefix string, n int, credit int64) []string {
	t.Helper()
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%02d", prefix, i)
		_, err := repository.SharedTestPool().Exec(context.Background(),
			`insert into account (id, name, credit, role, active) values ($1, $2, $3, 'STUDENT', true)`,
			ids[i], "Racer "+ids[i], decimal.NewFromInt(credit))
		require.NoError(t, err)
	}
	return ids
}

type outcome struct {
	res model.ServiceResult
	err error
}

func TestService_Postgres_ConcurrentBorrowSameSlot(t *testing.T) {
	svc, repo := newPostgresService(t)
	ctx := context.Background()
	const (
		racers  = 8
		station = model.StationOufang
		slot    = 1
	)
	users := addAccounts(t, "race-slot-", racers, 100)

	out := make([]outcome, racers)
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
	)
	for i := range users {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			res, err := svc.Borrow(ctx, users[i], station, slot)
			out[i] = outcome{res: res, err: err}
		}()
	}
	close(start)
	wg.Wait()

	winner := -1
	for i, o := range out {
		if o.err == nil {
			require.Equal(t, -1, winner, "second success for %s", users[i])
			require.True(t, o.res.Success)
			winner = i
			continue
		}
		require.False(t, o.res.Success)
		switch errs.KindOf(o.err) {
		case errs.KindValidation:
			require.Equal(t, errs.ReasonSlotEmpty, errs.ReasonOf(o.err), users[i])
		case errs.KindConflict:
		default:
			t.Fatalf("%s: unexpected %v", users[i], o.err)
		}
	}
	require.NotEqual(t, -1, winner)

	gearID := memory.GearID(station, slot)
	require.NoError(t, repo.View(ctx, func(ctx context.Context, tx repository.Tx) error {
		g, err := tx.Inventory().GetGear(ctx, gearID)
		require.NoError(t, err)
		require.Equal(t, model.GearBorrowed, g.Status)
		require.False(t, g.Located())

		total := decimal.Zero
		for i, id := range users {
			acc, err := tx.Ledger().GetAccount(ctx, id)
			require.NoError(t, err)
			total = total.Add(acc.Credit)

			rec, err := tx.Journal().FindOpenRecord(ctx, id)
			if i == winner {
				require.NoError(t, err)
				require.Equal(t, gearID, rec.GearID)
				require.Equal(t, "90.00", acc.Credit.StringFixed(2))
				continue
			}
			require.ErrorIs(t, err, errs.ErrNotFound)
			require.Equal(t, "100.00", acc.Credit.StringFixed(2))
		}
		require.Equal(t, "790.00", total.StringFixed(2))
		return nil
	}))
}

func TestService_Postgres_ConcurrentBorrowOneUser(t *testing.T) {
	svc, repo := newPostgresService(t)
	ctx := context.Background()
	user := addAccounts(t, "race-user-", 1, 100)[0]
	slots := []int{1, 2, 3, 5, 6}
	const station = model.StationBeichen

	out := make([]outcome, len(slots))
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
	)
	for i := range slots {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			res, err := svc.Borrow(ctx, user, station, slots[i])
			out[i] = outcome{res: res, err: err}
		}()
	}
	close(start)
	wg.Wait()

	var won []int
	for i, o := range out {
		if o.err == nil {
			won = append(won, slots[i])
			continue
		}
		switch errs.KindOf(o.err) {
		case errs.KindValidation:
			require.Equal(t, errs.ReasonExistingRental, errs.ReasonOf(o.err))
		case errs.KindConflict:
		default:
			t.Fatalf("slot %d: unexpected %v", slots[i], o.err)
		}
	}
	require.Len(t, won, 1)

	require.NoError(t, repo.View(ctx, func(ctx context.Context, tx repository.Tx) error {
		rec, err := tx.Journal().FindOpenRecord(ctx, user)
		require.NoError(t, err)
		require.Equal(t, memory.GearID(station, won[0]), rec.GearID)

		for _, slot := range slots {
			g, err := tx.Inventory().GetGear(ctx, memory.GearID(station, slot))
			require.NoError(t, err)
			if slot == won[0] {
				require.Equal(t, model.GearBorrowed, g.Status)
				continue
			}
			require.Equal(t, model.GearAvailable, g.Status)
			require.Equal(t, slot, *g.SlotID)
		}
		return nil
	}))
}

func TestService_Postgres_LoginSeededAccount(t *testing.T) {
	svc, _ := newPostgresService(t)
	ctx := context.Background()

	acc, err := svc.Login(ctx, "admin", "Service Desk", memory.DemoPassword)
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, acc.Role)

	_, err = svc.Login(ctx, "admin", "Service Desk", "guess")
	require.Equal(t, errs.ReasonBadCredentials, errs.ReasonOf(err))
	_, err = svc.Login(ctx, "2021002", "New Student", memory.DemoPassword)
	require.Equal(t, errs.ReasonAccountInactive, errs.ReasonOf(err))
}
