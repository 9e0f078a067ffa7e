package repository

import (
	"context"

	"github.com/Astemirdum/raingear-service/rental/internal/errs"
	"github.com/Astemirdum/raingear-service/rental/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type inventory pgTx

var (
	gearColumns    = []string{"id", "type", "status", "station_id", "slot_id"}
	stationColumns = []string{"id", "name", "pos_x", "pos_y", "online", "broken_slots"}
)

func (r *inventory) GetGear(ctx context.Context, id string) (model.Gear, error) {
	q, args, err := (*pgTx)(r).forUpdate(qb.Select(gearColumns...).
		From(gearTableName).
		Where(sq.Eq{"id": id})).
		ToSql()
	if err != nil {
		return model.Gear{}, err
	}
	return r.oneGear(ctx, q, args)
}

func (r *inventory) GearAtSlot(ctx context.Context, id model.StationID, slot int) (model.Gear, error) {
	q, args, err := (*pgTx)(r).forUpdate(qb.Select(gearColumns...).
		From(gearTableName).
		Where(sq.Eq{"station_id": id, "slot_id": slot})).
		ToSql()
	if err != nil {
		return model.Gear{}, err
	}
	return r.oneGear(ctx, q, args)
}

func (r *inventory) oneGear(ctx context.Context, q string, args []any) (model.Gear, error) {
	rows, err := r.tx.Query(ctx, q, args...)
	if err != nil {
		return model.Gear{}, errors.Wrap(err, "select gear")
	}
	gear, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Gear])
	if err != nil {
		return model.Gear{}, notFound(err)
	}
	return gear, nil
}

func (r *inventory) GetStation(ctx context.Context, id model.StationID) (model.Station, error) {
	q, args, err := (*pgTx)(r).forUpdate(qb.Select(stationColumns...).
		From(stationTableName).
		Where(sq.Eq{"id": id})).
		ToSql()
	if err != nil {
		return model.Station{}, err
	}
	rows, err := r.tx.Query(ctx, q, args...)
	if err != nil {
		return model.Station{}, errors.Wrap(err, "select station")
	}
	st, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Station])
	if err != nil {
		return model.Station{}, notFound(err)
	}
	withDefaults(&st)
	return st, nil
}

func withDefaults(st *model.Station) {
	st.Capacity = model.StationCapacity
	if st.BrokenSlots == nil {
		st.BrokenSlots = []int{}
	}
}

func (r *inventory) ListStations(ctx context.Context) ([]model.Station, error) {
	q, args, err := qb.Select(stationColumns...).
		From(stationTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.tx.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "select stations")
	}
	stations, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Station])
	if err != nil {
		return nil, errors.Wrap(err, "collect stations")
	}
	for i := range stations {
		withDefaults(&stations[i])
	}
	return stations, nil
}

func (r *inventory) ListStationGears(ctx context.Context, id model.StationID) ([]model.Gear, error) {
	q, args, err := qb.Select(gearColumns...).
		From(gearTableName).
		Where(sq.Eq{"station_id": id}).
		OrderBy("slot_id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.tx.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "select station gears")
	}
	gears, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Gear])
	if err != nil {
		return nil, errors.Wrap(err, "collect gears")
	}
	return gears, nil
}

func (r *inventory) IsSlotOccupied(ctx context.Context, id model.StationID, slot int) (bool, error) {
	q := `select exists(select 1 from gear where station_id = @station and slot_id = @slot)`
	var occupied bool
	err := r.tx.QueryRow(ctx, q, pgx.NamedArgs{"station": id, "slot": slot}).Scan(&occupied)
	if err != nil {
		return false, errors.Wrap(err, "slot occupied")
	}
	return occupied, nil
}

func (r *inventory) SetGearStatusAndLocation(ctx context.Context, gearID string, status model.GearStatus, stationID *model.StationID, slot *int) error {
	if err := (*pgTx)(r).mutable("SetGearStatusAndLocation"); err != nil {
		return err
	}
	if (status == model.GearBorrowed) != (stationID == nil || slot == nil) {
		return errs.Integrity("gear "+gearID+" location does not match status "+status.String(), nil)
	}
	q, args, err := qb.Update(gearTableName).
		Set("status", status).
		Set("station_id", stationID).
		Set("slot_id", slot).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"id": gearID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.tx.Exec(ctx, q, args...)
	if err != nil {
		r.log.Error("SetGearStatusAndLocation", zap.String("q", q), zap.Any("args", args))
		return errors.Wrap(err, "update gear")
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *inventory) MarkSlotBroken(ctx context.Context, id model.StationID, slot int) error {
	if err := (*pgTx)(r).mutable("MarkSlotBroken"); err != nil {
		return err
	}
	q := `
update station
    set broken_slots = array_append(broken_slots, @slot::smallint)
where id = @station and not (@slot::smallint = any(broken_slots))`
	return r.execStation(ctx, q, id, slot)
}

func (r *inventory) MarkSlotRepaired(ctx context.Context, id model.StationID, slot int) error {
	if err := (*pgTx)(r).mutable("MarkSlotRepaired"); err != nil {
		return err
	}
	q := `
update station
    set broken_slots = array_remove(broken_slots, @slot::smallint)
where id = @station`
	return r.execStation(ctx, q, id, slot)
}

func (r *inventory) execStation(ctx context.Context, q string, id model.StationID, slot int) error {
	if _, err := r.tx.Exec(ctx, q, pgx.NamedArgs{"station": id, "slot": slot}); err != nil {
		return errors.Wrap(err, "update station slots")
	}
	return nil
}

func (r *inventory) SetStationOnline(ctx context.Context, id model.StationID, online bool) error {
	if err := (*pgTx)(r).mutable("SetStationOnline"); err != nil {
		return err
	}
	q, args, err := qb.Update(stationTableName).
		Set("online", online).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.tx.Exec(ctx, q, args...)
	if err != nil {
		return errors.Wrap(err, "update station")
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *inventory) CountByStatus(ctx context.Context) (map[model.GearStatus]int, error) {
	rows, err := r.tx.Query(ctx, `select status, count(*) from gear group by status`)
	if err != nil {
		return nil, errors.Wrap(err, "count by status")
	}
	defer rows.Close()

	counts := make(map[model.GearStatus]int)
	for rows.Next() {
		var (
			status model.GearStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *inventory) CountByStation(ctx context.Context) (map[model.StationID]map[model.GearStatus]int, error) {
	q := `
select station_id, status, count(*) from gear
where station_id is not null
group by station_id, status`
	rows, err := r.tx.Query(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "count by station")
	}
	defer rows.Close()

	counts := make(map[model.StationID]map[model.GearStatus]int)
	for rows.Next() {
		var (
			station model.StationID
			status  model.GearStatus
			n       int
		)
		if err := rows.Scan(&station, &status, &n); err != nil {
			return nil, err
		}
		if counts[station] == nil {
			counts[station] = make(map[model.GearStatus]int)
		}
		counts[station][status] = n
	}
	return counts, rows.Err()
}
