package service

import (
	"context"

	"github.com/Astemirdum/raingear-service/rental/internal/model"
	"github.com/Astemirdum/raingear-service/rental/internal/repository"
	"go.uber.org/zap"
)

// ListStations serves the map view from the cache, reading through on a miss.
// A fresh read is written back only if no invalidation arrived while it ran,
// so a commit in that window is not masked by an older snapshot. Commits of
// other replicas are seen once their event is consumed; until then the
// snapshot may lag by up to the cache TTL.
func (s *Service) ListStations(ctx context.Context) ([]model.StationSummary, error) {
	gen := s.stationsGen.Load()
	cached, ok, err := s.cache.Stations(ctx)
	if err != nil {
		s.log.Warn("cache read", zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	var out []model.StationSummary
	err = s.view(ctx, func(ctx context.Context, tx repository.Tx) error {
		inv := tx.Inventory()
		stations, err := inv.ListStations(ctx)
		if err != nil {
			return err
		}
		counts, err := inv.CountByStation(ctx)
		if err != nil {
			return err
		}
		out = summarize(stations, counts)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.stationsGen.Load() != gen {
		return out, nil
	}
	if err = s.cache.SetStations(ctx, out); err != nil {
		s.log.Warn("cache write", zap.Error(err))
	}
	return out, nil
}

func summarize(stations []model.Station, counts map[model.StationID]map[model.GearStatus]int) []model.StationSummary {
	out := make([]model.StationSummary, 0, len(stations))
	for _, st := range stations {
		c := counts[st.ID]
		capacity := st.Capacity
		if capacity == 0 {
			capacity = model.StationCapacity
		}
		broken := st.BrokenSlots
		if broken == nil {
			broken = []int{}
		}
		out = append(out, model.StationSummary{
			ID:          st.ID,
			Name:        st.Name,
			PosX:        st.PosX,
			PosY:        st.PosY,
			Online:      st.Online,
			Capacity:    capacity,
			Available:   c[model.GearAvailable],
			Broken:      c[model.GearBroken],
			Empty:       capacity - c[model.GearAvailable] - c[model.GearBroken],
			BrokenSlots: broken,
		})
	}
	return out
}

func (s *Service) Overview(ctx context.Context) (model.Overview, error) {
	var ov model.Overview
	err := s.view(ctx, func(ctx context.Context, tx repository.Tx) error {
		counts, err := tx.Inventory().CountByStatus(ctx)
		if err != nil {
			return err
		}
		ov = model.Overview{
			Available: counts[model.GearAvailable],
			Borrowed:  counts[model.GearBorrowed],
			Broken:    counts[model.GearBroken],
		}
		return nil
	})
	return ov, err
}

func (s *Service) ListStationGears(ctx context.Context, stationID model.StationID) ([]model.Gear, error) {
	var gears []model.Gear
	err := s.view(ctx, func(ctx context.Context, tx repository.Tx) error {
		inv := tx.Inventory()
		if _, err := s.station(ctx, inv, stationID); err != nil {
			return err
		}
		var err error
		gears, err = inv.ListStationGears(ctx, stationID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if gears == nil {
		gears = []model.Gear{}
	}
	return gears, nil
}

// InvalidateStations drops the map snapshot. Called after every local commit
// and for rental events committed by other replicas.
func (s *Service) InvalidateStations(ctx context.Context) error {
	s.stationsGen.Add(1)
	return s.cache.Invalidate(ctx)
}
