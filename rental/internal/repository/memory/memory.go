// Package memory is a Store kept in process memory. A unit of work runs
// against a clone of the state under a mutex; the clone replaces the state
// only when the unit commits.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Astemirdum/raingear-service/rental/internal/errs"
	"github.com/Astemirdum/raingear-service/rental/internal/model"
	"github.com/Astemirdum/raingear-service/rental/internal/repository"
	"github.com/shopspring/decimal"
)

var _ repository.Store = (*Store)(nil)

type Store struct {
	mu    sync.Mutex
	state *state
}

type state struct {
	gears    map[string]model.Gear
	stations map[model.StationID]model.Station
	accounts map[string]model.Account
	records  []model.Record
	nextID   int64
}

func New() *Store {
	return &Store{state: &state{
		gears:    make(map[string]model.Gear),
		stations: make(map[model.StationID]model.Station),
		accounts: make(map[string]model.Account),
		nextID:   1,
	}}
}

func (s *state) clone() *state {
	c := &state{
		gears:    make(map[string]model.Gear, len(s.gears)),
		stations: make(map[model.StationID]model.Station, len(s.stations)),
		accounts: make(map[string]model.Account, len(s.accounts)),
		records:  make([]model.Record, len(s.records)),
		nextID:   s.nextID,
	}
	for id, g := range s.gears {
		c.gears[id] = cloneGear(g)
	}
	for id, st := range s.stations {
		st.BrokenSlots = cloneSlots(st.BrokenSlots)
		c.stations[id] = st
	}
	for id, a := range s.accounts {
		c.accounts[id] = a
	}
	for i, r := range s.records {
		c.records[i] = cloneRecord(r)
	}
	return c
}

// cloneSlots never returns nil so stations always render "brokenSlots":[].
func cloneSlots(slots []int) []int {
	return append(make([]int, 0, len(slots)), slots...)
}

func cloneGear(g model.Gear) model.Gear {
	if g.StationID != nil {
		id := *g.StationID
		g.StationID = &id
	}
	if g.SlotID != nil {
		slot := *g.SlotID
		g.SlotID = &slot
	}
	return g
}

func cloneRecord(r model.Record) model.Record {
	if r.ReturnTime != nil {
		t := *r.ReturnTime
		r.ReturnTime = &t
	}
	return r
}

func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctxErr(ctx); err != nil {
		return err
	}
	work := s.state.clone()
	if err := fn(ctx, &tx{st: work, writable: true}); err != nil {
		return err
	}
	if err := ctxErr(ctx); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) View(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	s.mu.Lock()
	snapshot := s.state.clone()
	s.mu.Unlock()

	if err := ctxErr(ctx); err != nil {
		return err
	}
	return fn(ctx, &tx{st: snapshot})
}

func ctxErr(ctx context.Context) error {
	switch err := ctx.Err(); err {
	case nil:
		return nil
	case context.DeadlineExceeded:
		return errs.Timeout(err)
	default:
		return errs.Infrastructure(err)
	}
}

// Seed loads fixtures, replacing entries with the same id.
func (s *Store) Seed(stations []model.Station, gears []model.Gear, accounts []model.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range stations {
		st.Capacity = model.StationCapacity
		st.BrokenSlots = cloneSlots(st.BrokenSlots)
		s.state.stations[st.ID] = st
	}
	for _, g := range gears {
		s.state.gears[g.ID] = cloneGear(g)
	}
	for _, a := range accounts {
		s.state.accounts[a.ID] = a
	}
}

type tx struct {
	st       *state
	writable bool
}

func (t *tx) Inventory() repository.Inventory { return (*inventory)(t) }
func (t *tx) Ledger() repository.Ledger       { return (*ledger)(t) }
func (t *tx) Journal() repository.Journal     { return (*journal)(t) }

func (t *tx) mutable(op string) error {
	if !t.writable {
		return errs.Integrity(op+" in read-only transaction", nil)
	}
	return nil
}

type inventory tx

func (r *inventory) GetGear(_ context.Context, id string) (model.Gear, error) {
	g, ok := r.st.gears[id]
	if !ok {
		return model.Gear{}, errs.ErrNotFound
	}
	return cloneGear(g), nil
}

func (r *inventory) GetStation(_ context.Context, id model.StationID) (model.Station, error) {
	st, ok := r.st.stations[id]
	if !ok {
		return model.Station{}, errs.ErrNotFound
	}
	st.BrokenSlots = cloneSlots(st.BrokenSlots)
	return st, nil
}

func (r *inventory) ListStations(ctx context.Context) ([]model.Station, error) {
	out := make([]model.Station, 0, len(r.st.stations))
	for id := range r.st.stations {
		st, _ := r.GetStation(ctx, id)
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *inventory) ListStationGears(_ context.Context, id model.StationID) ([]model.Gear, error) {
	var out []model.Gear
	for _, g := range r.st.gears {
		if g.StationID != nil && *g.StationID == id {
			out = append(out, cloneGear(g))
		}
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].SlotID < *out[j].SlotID })
	return out, nil
}

func (r *inventory) GearAtSlot(_ context.Context, id model.StationID, slot int) (model.Gear, error) {
	if g, ok := r.at(id, slot); ok {
		return cloneGear(g), nil
	}
	return model.Gear{}, errs.ErrNotFound
}

func (r *inventory) at(id model.StationID, slot int) (model.Gear, bool) {
	for _, g := range r.st.gears {
		if g.Located() && *g.StationID == id && *g.SlotID == slot {
			return g, true
		}
	}
	return model.Gear{}, false
}

func (r *inventory) IsSlotOccupied(_ context.Context, id model.StationID, slot int) (bool, error) {
	_, ok := r.at(id, slot)
	return ok, nil
}

func (r *inventory) SetGearStatusAndLocation(_ context.Context, gearID string, status model.GearStatus, stationID *model.StationID, slot *int) error {
	if err := (*tx)(r).mutable("SetGearStatusAndLocation"); err != nil {
		return err
	}
	g, ok := r.st.gears[gearID]
	if !ok {
		return errs.ErrNotFound
	}
	if (status == model.GearBorrowed) != (stationID == nil || slot == nil) {
		return errs.Integrity("gear "+gearID+" location does not match status "+status.String(), nil)
	}
	if stationID != nil && slot != nil {
		if other, taken := r.at(*stationID, *slot); taken && other.ID != gearID {
			return errs.Integrity("slot already holds "+other.ID, nil)
		}
	}
	g.Status = status
	g.StationID, g.SlotID = stationID, slot
	r.st.gears[gearID] = cloneGear(g)
	return nil
}

func (r *inventory) MarkSlotBroken(_ context.Context, id model.StationID, slot int) error {
	if err := (*tx)(r).mutable("MarkSlotBroken"); err != nil {
		return err
	}
	st, ok := r.st.stations[id]
	if !ok {
		return errs.ErrNotFound
	}
	if !st.SlotBroken(slot) {
		st.BrokenSlots = append(cloneSlots(st.BrokenSlots), slot)
		sort.Ints(st.BrokenSlots)
		r.st.stations[id] = st
	}
	return nil
}

func (r *inventory) MarkSlotRepaired(_ context.Context, id model.StationID, slot int) error {
	if err := (*tx)(r).mutable("MarkSlotRepaired"); err != nil {
		return err
	}
	st, ok := r.st.stations[id]
	if !ok {
		return errs.ErrNotFound
	}
	kept := make([]int, 0, len(st.BrokenSlots))
	for _, b := range st.BrokenSlots {
		if b != slot {
			kept = append(kept, b)
		}
	}
	st.BrokenSlots = kept
	r.st.stations[id] = st
	return nil
}

func (r *inventory) SetStationOnline(_ context.Context, id model.StationID, online bool) error {
	if err := (*tx)(r).mutable("SetStationOnline"); err != nil {
		return err
	}
	st, ok := r.st.stations[id]
	if !ok {
		return errs.ErrNotFound
	}
	st.Online = online
	r.st.stations[id] = st
	return nil
}

func (r *inventory) CountByStatus(_ context.Context) (map[model.GearStatus]int, error) {
	counts := make(map[model.GearStatus]int)
	for _, g := range r.st.gears {
		counts[g.Status]++
	}
	return counts, nil
}

func (r *inventory) CountByStation(_ context.Context) (map[model.StationID]map[model.GearStatus]int, error) {
	counts := make(map[model.StationID]map[model.GearStatus]int)
	for _, g := range r.st.gears {
		if g.StationID == nil {
			continue
		}
		if counts[*g.StationID] == nil {
			counts[*g.StationID] = make(map[model.GearStatus]int)
		}
		counts[*g.StationID][g.Status]++
	}
	return counts, nil
}

type ledger tx

func (r *ledger) GetAccount(_ context.Context, id string) (model.Account, error) {
	a, ok := r.st.accounts[id]
	if !ok {
		return model.Account{}, errs.ErrNotFound
	}
	return a, nil
}

func (r *ledger) AdjustCredit(_ context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	if err := (*tx)(r).mutable("AdjustCredit"); err != nil {
		return decimal.Zero, err
	}
	a, ok := r.st.accounts[id]
	if !ok {
		return decimal.Zero, errs.ErrNotFound
	}
	balance := a.Credit.Add(delta)
	if balance.IsNegative() {
		return decimal.Zero, errs.Integrity("negative balance for "+id, nil)
	}
	a.Credit = balance
	r.st.accounts[id] = a
	return balance, nil
}

func (r *ledger) Activate(_ context.Context, id, passwordHash string) error {
	if err := (*tx)(r).mutable("Activate"); err != nil {
		return err
	}
	a, ok := r.st.accounts[id]
	if !ok {
		return errs.ErrNotFound
	}
	a.Active = true
	a.PasswordHash = passwordHash
	r.st.accounts[id] = a
	return nil
}

type journal tx

func (r *journal) OpenRecord(ctx context.Context, userID, gearID string, borrowTime time.Time) (int64, error) {
	if err := (*tx)(r).mutable("OpenRecord"); err != nil {
		return 0, err
	}
	if _, err := r.FindOpenRecord(ctx, userID); err == nil {
		return 0, errs.Integrity("second open record for "+userID, nil)
	}
	id := r.st.nextID
	r.st.nextID++
	r.st.records = append(r.st.records, model.Record{
		ID:         id,
		UserID:     userID,
		GearID:     gearID,
		BorrowTime: borrowTime.UTC(),
		Cost:       decimal.Zero,
	})
	return id, nil
}

func (r *journal) FindOpenRecord(_ context.Context, userID string) (model.Record, error) {
	for _, rec := range r.st.records {
		if rec.UserID == userID && rec.Open() {
			return cloneRecord(rec), nil
		}
	}
	return model.Record{}, errs.ErrNotFound
}

func (r *journal) CloseRecord(_ context.Context, recordID int64, returnTime time.Time, cost decimal.Decimal) error {
	if err := (*tx)(r).mutable("CloseRecord"); err != nil {
		return err
	}
	for i, rec := range r.st.records {
		if rec.ID != recordID {
			continue
		}
		if !rec.Open() {
			break
		}
		t := returnTime.UTC()
		r.st.records[i].ReturnTime = &t
		r.st.records[i].Cost = cost
		return nil
	}
	return errs.Integrity("record is not open", nil)
}

func (r *journal) Recent(_ context.Context, limit int) ([]model.Record, error) {
	return r.latest(limit, func(model.Record) bool { return true }), nil
}

func (r *journal) History(_ context.Context, userID string, limit int) ([]model.Record, error) {
	return r.latest(limit, func(rec model.Record) bool { return rec.UserID == userID }), nil
}

func (r *journal) latest(limit int, keep func(model.Record) bool) []model.Record {
	out := make([]model.Record, 0)
	for i := len(r.st.records) - 1; i >= 0 && len(out) < limit; i-- {
		if keep(r.st.records[i]) {
			out = append(out, cloneRecord(r.st.records[i]))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].BorrowTime.After(out[j].BorrowTime) })
	return out
}
