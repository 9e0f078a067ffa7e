package repository

import (
	"context"
	"time"

	"github.com/Astemirdum/raingear-service/rental/internal/errs"
	"github.com/Astemirdum/raingear-service/rental/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type journal pgTx

var recordColumns = []string{"id", "user_id", "gear_id", "borrow_time", "return_time", "cost"}

func (r *journal) OpenRecord(ctx context.Context, userID, gearID string, borrowTime time.Time) (int64, error) {
	if err := (*pgTx)(r).mutable("OpenRecord"); err != nil {
		return 0, err
	}
	if _, err := r.FindOpenRecord(ctx, userID); err == nil {
		return 0, errs.Integrity("second open record for "+userID, nil)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return 0, err
	}

	q, args, err := qb.Insert(recordTableName).
		Columns("user_id", "gear_id", "borrow_time", "cost").
		Values(userID, gearID, borrowTime.UTC(), "0").
		Suffix("returning id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := r.tx.QueryRow(ctx, q, args...).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "insert record")
	}
	return id, nil
}

func (r *journal) FindOpenRecord(ctx context.Context, userID string) (model.Record, error) {
	q, args, err := (*pgTx)(r).forUpdate(qb.Select(recordColumns...).
		From(recordTableName).
		Where(sq.Eq{"user_id": userID, "return_time": nil})).
		ToSql()
	if err != nil {
		return model.Record{}, err
	}
	rows, err := r.tx.Query(ctx, q, args...)
	if err != nil {
		return model.Record{}, errors.Wrap(err, "select open record")
	}
	rec, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Record])
	if err != nil {
		return model.Record{}, notFound(err)
	}
	return rec, nil
}

func (r *journal) CloseRecord(ctx context.Context, recordID int64, returnTime time.Time, cost decimal.Decimal) error {
	if err := (*pgTx)(r).mutable("CloseRecord"); err != nil {
		return err
	}
	q, args, err := qb.Update(recordTableName).
		Set("return_time", returnTime.UTC()).
		Set("cost", cost.String()).
		Where(sq.Eq{"id": recordID, "return_time": nil}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.tx.Exec(ctx, q, args...)
	if err != nil {
		return errors.Wrap(err, "close record")
	}
	if tag.RowsAffected() == 0 {
		return errs.Integrity("record is not open", nil)
	}
	return nil
}

func (r *journal) Recent(ctx context.Context, limit int) ([]model.Record, error) {
	q, args, err := qb.Select(recordColumns...).
		From(recordTableName).
		OrderBy("borrow_time desc", "id desc").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.records(ctx, q, args)
}

func (r *journal) History(ctx context.Context, userID string, limit int) ([]model.Record, error) {
	q, args, err := qb.Select(recordColumns...).
		From(recordTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("borrow_time desc", "id desc").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.records(ctx, q, args)
}

func (r *journal) records(ctx context.Context, q string, args []any) ([]model.Record, error) {
	rows, err := r.tx.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "select records")
	}
	recs, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Record])
	if err != nil {
		return nil, errors.Wrap(err, "collect records")
	}
	return recs, nil
}
