package service

import (
	"context"
	"fmt"

	"github.com/Astemirdum/raingear-service/pkg/kafka"
	"github.com/Astemirdum/raingear-service/rental/internal/errs"
	"github.com/Astemirdum/raingear-service/rental/internal/model"
	"github.com/Astemirdum/raingear-service/rental/internal/repository"
	"go.uber.org/zap"
)

// AdminSetGearStatus moves a located gear between Available and Broken.
// Borrowed gear is left alone so the open rental keeps matching it.
func (s *Service) AdminSetGearStatus(ctx context.Context, gearID string, status model.GearStatus) (model.Gear, error) {
	if status != model.GearAvailable && status != model.GearBroken {
		return model.Gear{}, errs.Validation(errs.ReasonInvalidStatus, fmt.Sprintf("status %d can not be set by hand", status))
	}
	var gear model.Gear
	err := s.inTx(ctx, "admin_gear_status", func(ctx context.Context, tx repository.Tx) error {
		inv := tx.Inventory()
		var err error
		gear, err = inv.GetGear(ctx, gearID)
		if err != nil {
			if isNotFound(err) {
				return errs.Validation(errs.ReasonGearNotFound, fmt.Sprintf("gear %s does not exist", gearID))
			}
			return err
		}
		if gear.Status == model.GearBorrowed {
			return errs.Validation(errs.ReasonGearBorrowed, fmt.Sprintf("gear %s is out on rental", gearID))
		}
		if gear.Status == status {
			return nil
		}
		if !gear.Located() {
			return errs.Integrity(fmt.Sprintf("gear %s in status %s has no location", gearID, gear.Status), nil)
		}
		if status == model.GearBroken {
			err = inv.MarkSlotBroken(ctx, *gear.StationID, *gear.SlotID)
		} else {
			err = inv.MarkSlotRepaired(ctx, *gear.StationID, *gear.SlotID)
		}
		if err != nil {
			return err
		}
		if err = inv.SetGearStatusAndLocation(ctx, gearID, status, gear.StationID, gear.SlotID); err != nil {
			return err
		}
		gear.Status = status
		return nil
	})
	if err != nil {
		return model.Gear{}, err
	}

	s.log.Info("admin gear status", zap.String("gear", gearID), zap.String("status", status.String()))
	ev := kafka.RentalEvent{Type: kafka.EventAdmin, GearID: gearID}
	if gear.StationID != nil {
		ev.StationID, ev.SlotID = int(*gear.StationID), *gear.SlotID
	}
	s.committed(ctx, ev)
	return gear, nil
}

func (s *Service) AdminSetStationOnline(ctx context.Context, stationID model.StationID, online bool) (model.Station, error) {
	var st model.Station
	err := s.inTx(ctx, "admin_station_online", func(ctx context.Context, tx repository.Tx) error {
		inv := tx.Inventory()
		var err error
		if st, err = s.station(ctx, inv, stationID); err != nil {
			return err
		}
		if err = inv.SetStationOnline(ctx, stationID, online); err != nil {
			return err
		}
		st.Online = online
		return nil
	})
	if err != nil {
		return model.Station{}, err
	}
	s.log.Info("admin station online", zap.Int("station", int(stationID)), zap.Bool("online", online))
	s.committed(ctx, kafka.RentalEvent{Type: kafka.EventAdmin, StationID: int(stationID)})
	return st, nil
}

// AdminMarkSlotBroken takes a slot out of service together with the gear in it.
func (s *Service) AdminMarkSlotBroken(ctx context.Context, stationID model.StationID, slot int) (model.Station, error) {
	return s.setSlot(ctx, "admin_slot_broken", stationID, slot, true)
}

// AdminMarkSlotRepaired puts a slot back into service and releases its gear.
func (s *Service) AdminMarkSlotRepaired(ctx context.Context, stationID model.StationID, slot int) (model.Station, error) {
	return s.setSlot(ctx, "admin_slot_repaired", stationID, slot, false)
}

func (s *Service) setSlot(ctx context.Context, op string, stationID model.StationID, slot int, broken bool) (model.Station, error) {
	var st model.Station
	err := s.inTx(ctx, op, func(ctx context.Context, tx repository.Tx) error {
		inv := tx.Inventory()
		var err error
		if st, err = s.station(ctx, inv, stationID); err != nil {
			return err
		}
		if slot < 1 || slot > model.StationCapacity {
			return errs.Validation(errs.ReasonSlotOutOfRange, fmt.Sprintf("slot %d does not exist", slot))
		}

		from, to := model.GearAvailable, model.GearBroken
		if broken {
			err = inv.MarkSlotBroken(ctx, stationID, slot)
		} else {
			from, to = to, from
			err = inv.MarkSlotRepaired(ctx, stationID, slot)
		}
		if err != nil {
			return err
		}

		gear, err := inv.GearAtSlot(ctx, stationID, slot)
		switch {
		case isNotFound(err):
		case err != nil:
			return err
		case gear.Status == from:
			if err = inv.SetGearStatusAndLocation(ctx, gear.ID, to, gear.StationID, gear.SlotID); err != nil {
				return err
			}
		}

		st, err = inv.GetStation(ctx, stationID)
		return err
	})
	if err != nil {
		return model.Station{}, err
	}
	s.log.Info(op, zap.Int("station", int(stationID)), zap.Int("slot", slot))
	s.committed(ctx, kafka.RentalEvent{Type: kafka.EventAdmin, StationID: int(stationID), SlotID: slot})
	return st, nil
}

func (s *Service) station(ctx context.Context, inv repository.Inventory, id model.StationID) (model.Station, error) {
	st, err := inv.GetStation(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return model.Station{}, errs.Validation(errs.ReasonStationNotFound, fmt.Sprintf("station %d does not exist", id))
		}
		return model.Station{}, err
	}
	return st, nil
}

// RecentRecords lists the latest rentals across all users, newest first.
func (s *Service) RecentRecords(ctx context.Context, limit int) ([]model.Record, error) {
	var recs []model.Record
	err := s.view(ctx, func(ctx context.Context, tx repository.Tx) error {
		var err error
		recs, err = tx.Journal().Recent(ctx, clampLimit(limit))
		return err
	})
	return recs, err
}
