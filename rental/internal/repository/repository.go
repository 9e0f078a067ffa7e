package repository

import (
	"context"
	"time"

	"github.com/Astemirdum/raingear-service/rental/internal/errs"
	"github.com/Astemirdum/raingear-service/rental/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store opens units of work. InTx runs fn in a locking read-write
// transaction; View runs it in a read-only snapshot without row locks.
type Store interface {
	InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	View(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Inventory() Inventory
	Ledger() Ledger
	Journal() Journal
}

// Inventory reads inside InTx take row locks.
type Inventory interface {
	GetGear(ctx context.Context, id string) (model.Gear, error)
	GetStation(ctx context.Context, id model.StationID) (model.Station, error)
	ListStations(ctx context.Context) ([]model.Station, error)
	ListStationGears(ctx context.Context, id model.StationID) ([]model.Gear, error)
	GearAtSlot(ctx context.Context, id model.StationID, slot int) (model.Gear, error)
	IsSlotOccupied(ctx context.Context, id model.StationID, slot int) (bool, error)
	SetGearStatusAndLocation(ctx context.Context, gearID string, status model.GearStatus, stationID *model.StationID, slot *int) error
	MarkSlotBroken(ctx context.Context, id model.StationID, slot int) error
	MarkSlotRepaired(ctx context.Context, id model.StationID, slot int) error
	SetStationOnline(ctx context.Context, id model.StationID, online bool) error
	CountByStatus(ctx context.Context) (map[model.GearStatus]int, error)
	CountByStation(ctx context.Context) (map[model.StationID]map[model.GearStatus]int, error)
}

type Ledger interface {
	GetAccount(ctx context.Context, id string) (model.Account, error)
	// AdjustCredit applies delta and returns the new balance. A negative
	// result is an integrity error and aborts the unit of work.
	AdjustCredit(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error)
	Activate(ctx context.Context, id, passwordHash string) error
}

type Journal interface {
	OpenRecord(ctx context.Context, userID, gearID string, borrowTime time.Time) (int64, error)
	FindOpenRecord(ctx context.Context, userID string) (model.Record, error)
	CloseRecord(ctx context.Context, recordID int64, returnTime time.Time, cost decimal.Decimal) error
	Recent(ctx context.Context, limit int) ([]model.Record, error)
	History(ctx context.Context, userID string, limit int) ([]model.Record, error)
}

const (
	gearTableName    = `gear`
	stationTableName = `station`
	accountTableName = `account`
	recordTableName  = `record`

	openRecordIndex   = `record_one_open_per_user`
	gearLocationIndex = `gear_location_key`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

func (r *repository) InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return r.run(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, true, fn)
}

func (r *repository) View(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return r.run(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, false, fn)
}

func (r *repository) run(ctx context.Context, opts pgx.TxOptions, lock bool, fn func(ctx context.Context, tx Tx) error) error {
	tx, err := r.db.BeginTx(ctx, opts)
	if err != nil {
		return classify(errors.Wrap(err, "begin"))
	}
	defer func() {
		if err := tx.Rollback(context.Background()); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			r.log.Warn("rollback", zap.Error(err))
		}
	}()

	if err = fn(ctx, &pgTx{tx: tx, lock: lock, log: r.log}); err != nil {
		return classify(err)
	}
	if err = tx.Commit(ctx); err != nil {
		return classify(errors.Wrap(err, "commit"))
	}
	return nil
}

// classify turns driver failures into the error taxonomy. Errors that
// already carry a kind pass through.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errs.As(err); ok {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.Timeout(err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected, pgerrcode.LockNotAvailable:
			return errs.Conflict(err)
		case pgerrcode.UniqueViolation:
			if pgErr.ConstraintName == gearLocationIndex {
				// two returns raced for one slot; the retry sees it occupied
				return errs.Conflict(err)
			}
			return errs.Integrity("unique violation "+pgErr.ConstraintName, err)
		case pgerrcode.CheckViolation, pgerrcode.ForeignKeyViolation:
			return errs.Integrity("constraint "+pgErr.ConstraintName, err)
		}
	}
	return errs.Infrastructure(err)
}

type pgTx struct {
	tx   pgx.Tx
	lock bool
	log  *zap.Logger
}

func (t *pgTx) Inventory() Inventory { return (*inventory)(t) }
func (t *pgTx) Ledger() Ledger       { return (*ledger)(t) }
func (t *pgTx) Journal() Journal     { return (*journal)(t) }

func (t *pgTx) forUpdate(b sq.SelectBuilder) sq.SelectBuilder {
	if t.lock {
		return b.Suffix("FOR UPDATE")
	}
	return b
}

func (t *pgTx) mutable(op string) error {
	if !t.lock {
		return errs.Integrity(op+" in read-only transaction", nil)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	return err
}
