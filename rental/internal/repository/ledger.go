package repository

import (
	"context"

	"github.com/Astemirdum/raingear-service/rental/internal/errs"
	"github.com/Astemirdum/raingear-service/rental/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type ledger pgTx

func (r *ledger) GetAccount(ctx context.Context, id string) (model.Account, error) {
	q, args, err := (*pgTx)(r).forUpdate(qb.Select("id", "name", "credit", "role", "active", "coalesce(password_hash, '') as password_hash").
		From(accountTableName).
		Where(sq.Eq{"id": id})).
		ToSql()
	if err != nil {
		return model.Account{}, err
	}
	rows, err := r.tx.Query(ctx, q, args...)
	if err != nil {
		return model.Account{}, errors.Wrap(err, "select account")
	}
	acc, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
	if err != nil {
		return model.Account{}, notFound(err)
	}
	return acc, nil
}

func (r *ledger) AdjustCredit(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	if err := (*pgTx)(r).mutable("AdjustCredit"); err != nil {
		return decimal.Zero, err
	}
	q := `
update account
    set credit = credit + @delta::numeric
where id = @id
returning credit`
	var balance decimal.Decimal
	err := r.tx.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "delta": delta.String()}).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, errs.ErrNotFound
		}
		return decimal.Zero, errors.Wrap(err, "adjust credit")
	}
	if balance.IsNegative() {
		return decimal.Zero, errs.Integrity("negative balance for "+id, nil)
	}
	return balance, nil
}

func (r *ledger) Activate(ctx context.Context, id, passwordHash string) error {
	if err := (*pgTx)(r).mutable("Activate"); err != nil {
		return err
	}
	q, args, err := qb.Update(accountTableName).
		Set("active", true).
		Set("password_hash", passwordHash).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.tx.Exec(ctx, q, args...)
	if err != nil {
		return errors.Wrap(err, "activate account")
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
