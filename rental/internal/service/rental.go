package service

import (
	"context"
	"fmt"

	"github.com/Astemirdum/raingear-service/pkg/kafka"
	"github.com/Astemirdum/raingear-service/rental/internal/catalog"
	"github.com/Astemirdum/raingear-service/rental/internal/errs"
	"github.com/Astemirdum/raingear-service/rental/internal/model"
	"github.com/Astemirdum/raingear-service/rental/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Borrow takes the gear in slot of stationID for userID against its deposit.
// Preconditions are checked in order and the first failing one is reported.
func (s *Service) Borrow(ctx context.Context, userID string, stationID model.StationID, slot int) (model.ServiceResult, error) {
	var res model.ServiceResult
	err := s.inTx(ctx, "borrow", func(ctx context.Context, tx repository.Tx) error {
		res = model.ServiceResult{}
		inv, led, jr := tx.Inventory(), tx.Ledger(), tx.Journal()

		acc, err := led.GetAccount(ctx, userID)
		if err != nil {
			if isNotFound(err) {
				return errs.Validation(errs.ReasonAccountNotFound, fmt.Sprintf("account %s does not exist", userID))
			}
			return err
		}
		res.Balance = acc.Credit
		if !acc.Active {
			return errs.Validation(errs.ReasonAccountInactive, "account is not activated")
		}

		if open, err := jr.FindOpenRecord(ctx, userID); err == nil {
			return errs.Validation(errs.ReasonExistingRental,
				fmt.Sprintf("gear %s is still out on rental, return it first", open.GearID))
		} else if !isNotFound(err) {
			return err
		}

		st, err := inv.GetStation(ctx, stationID)
		if err != nil {
			if isNotFound(err) {
				return errs.Validation(errs.ReasonStationNotFound, fmt.Sprintf("station %d does not exist", stationID))
			}
			return err
		}
		if !st.Online {
			return errs.Validation(errs.ReasonStationOffline, fmt.Sprintf("station %s is offline", st.Name))
		}
		if slot < 1 || slot > model.StationCapacity {
			return errs.Validation(errs.ReasonSlotOutOfRange, fmt.Sprintf("slot %d does not exist", slot))
		}

		gear, err := inv.GearAtSlot(ctx, stationID, slot)
		if err != nil {
			if isNotFound(err) {
				return errs.Validation(errs.ReasonSlotEmpty, fmt.Sprintf("slot %d is empty", slot))
			}
			return err
		}
		if gear.Status != model.GearAvailable {
			return errs.Validation(errs.ReasonGearUnavailable, fmt.Sprintf("gear in slot %d is out of service", slot))
		}

		policy, ok := catalog.Lookup(gear.Type)
		if !ok {
			return errs.Integrity(fmt.Sprintf("gear %s has unknown type %d", gear.ID, gear.Type), nil)
		}
		if acc.Credit.LessThan(policy.Deposit) {
			return errs.Validation(errs.ReasonInsufficientCredit,
				fmt.Sprintf("deposit is %s, balance is %s", policy.Deposit.StringFixed(2), acc.Credit.StringFixed(2)))
		}

		balance, err := led.AdjustCredit(ctx, userID, policy.Deposit.Neg())
		if err != nil {
			return err
		}
		if err = inv.SetGearStatusAndLocation(ctx, gear.ID, model.GearBorrowed, nil, nil); err != nil {
			return err
		}
		if _, err = jr.OpenRecord(ctx, userID, gear.ID, s.now()); err != nil {
			return err
		}

		res = model.ServiceResult{
			Success: true,
			Message: fmt.Sprintf("Borrowed %s from slot %d, deposit %s", policy.Name, slot, policy.Deposit.StringFixed(2)),
			Cost:    decimal.Zero,
			Refund:  decimal.Zero,
			Balance: balance,
			GearID:  gear.ID,
		}
		return nil
	})
	if err != nil {
		return s.fail("borrow", err, model.ServiceResult{Balance: res.Balance}), err
	}

	s.log.Info("borrow",
		zap.String("user", userID),
		zap.String("gear", res.GearID),
		zap.Int("station", int(stationID)),
		zap.Int("slot", slot),
		zap.String("balance", res.Balance.StringFixed(2)),
	)
	s.committed(ctx, kafka.RentalEvent{
		Type:      kafka.EventBorrow,
		UserID:    userID,
		GearID:    res.GearID,
		StationID: int(stationID),
		SlotID:    slot,
		Cost:      decimal.Zero,
		Refund:    decimal.Zero,
	})
	return res, nil
}

// Return puts gearID back into slot of stationID, closes the open rental of
// userID and refunds the deposit minus the fee.
func (s *Service) Return(ctx context.Context, userID, gearID string, stationID model.StationID, slot int) (model.ServiceResult, error) {
	var res model.ServiceResult
	err := s.inTx(ctx, "return", func(ctx context.Context, tx repository.Tx) error {
		res = model.ServiceResult{}
		inv, led, jr := tx.Inventory(), tx.Ledger(), tx.Journal()

		// rows are locked account, record, station, gear; rules are checked afterwards
		acc, accErr := led.GetAccount(ctx, userID)
		if accErr != nil && !isNotFound(accErr) {
			return accErr
		}
		if accErr == nil {
			res.Balance = acc.Credit
		}
		rec, recErr := jr.FindOpenRecord(ctx, userID)
		if recErr != nil && !isNotFound(recErr) {
			return recErr
		}
		st, stErr := inv.GetStation(ctx, stationID)
		if stErr != nil && !isNotFound(stErr) {
			return stErr
		}
		gear, gearErr := inv.GetGear(ctx, gearID)
		if gearErr != nil && !isNotFound(gearErr) {
			return gearErr
		}

		if gearErr != nil {
			return errs.Validation(errs.ReasonGearNotFound, fmt.Sprintf("gear %s does not exist", gearID))
		}
		if stErr != nil {
			return errs.Validation(errs.ReasonStationNotFound, fmt.Sprintf("station %d does not exist", stationID))
		}
		if !st.Online {
			return errs.Validation(errs.ReasonStationOffline, fmt.Sprintf("station %s is offline", st.Name))
		}

		occupied, err := inv.IsSlotOccupied(ctx, stationID, slot)
		if err != nil {
			return err
		}
		if occupied {
			return errs.Validation(errs.ReasonSlotOccupied, fmt.Sprintf("slot %d is occupied", slot))
		}
		if st.SlotBroken(slot) {
			return errs.Validation(errs.ReasonSlotBroken, fmt.Sprintf("slot %d is out of service", slot))
		}

		policy, ok := catalog.Lookup(gear.Type)
		if !ok {
			return errs.Integrity(fmt.Sprintf("gear %s has unknown type %d", gear.ID, gear.Type), nil)
		}
		if !policy.Fits(slot) {
			return errs.Validation(errs.ReasonWrongReturnZone,
				fmt.Sprintf("%s goes into slots %d-%d", policy.Name, policy.FirstSlot, policy.LastSlot))
		}

		if recErr != nil || accErr != nil {
			return errs.Validation(errs.ReasonNoOpenRental, "you have no gear on rental")
		}
		if rec.GearID != gearID {
			return errs.Validation(errs.ReasonGearMismatch, fmt.Sprintf("your rental is gear %s, not %s", rec.GearID, gearID))
		}
		if gear.Status != model.GearBorrowed {
			return errs.Integrity(fmt.Sprintf("open record %d for gear %s in status %s", rec.ID, gearID, gear.Status), nil)
		}

		now := s.now()
		elapsed := now.Sub(rec.BorrowTime)
		if elapsed <= 0 {
			s.log.Warn("non-positive rental duration",
				zap.Int64("record", rec.ID), zap.Time("borrowTime", rec.BorrowTime), zap.Time("returnTime", now))
		}
		cost := policy.Fee(elapsed)
		refund := policy.Refund(cost)

		if err = jr.CloseRecord(ctx, rec.ID, now, cost); err != nil {
			return err
		}
		if err = inv.SetGearStatusAndLocation(ctx, gearID, model.GearAvailable, &stationID, &slot); err != nil {
			return err
		}
		balance, err := led.AdjustCredit(ctx, userID, refund)
		if err != nil {
			return err
		}

		res = model.ServiceResult{
			Success: true,
			Message: fmt.Sprintf("Returned %s. Fee %s, refund %s", policy.Name, cost.StringFixed(2), refund.StringFixed(2)),
			Cost:    cost,
			Refund:  refund,
			Balance: balance,
			GearID:  gearID,
		}
		return nil
	})
	if err != nil {
		return s.fail("return", err, model.ServiceResult{Balance: res.Balance}), err
	}

	s.log.Info("return",
		zap.String("user", userID),
		zap.String("gear", gearID),
		zap.Int("station", int(stationID)),
		zap.Int("slot", slot),
		zap.String("cost", res.Cost.StringFixed(2)),
		zap.String("refund", res.Refund.StringFixed(2)),
	)
	s.committed(ctx, kafka.RentalEvent{
		Type:      kafka.EventReturn,
		UserID:    userID,
		GearID:    gearID,
		StationID: int(stationID),
		SlotID:    slot,
		Cost:      res.Cost,
		Refund:    res.Refund,
	})
	return res, nil
}
