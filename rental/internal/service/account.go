package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Astemirdum/raingear-service/rental/internal/errs"
	"github.com/Astemirdum/raingear-service/rental/internal/model"
	"github.com/Astemirdum/raingear-service/rental/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

const (
	defaultRecordLimit = 20
	maxRecordLimit     = 200
)

func (s *Service) GetAccount(ctx context.Context, userID string) (model.Account, error) {
	var acc model.Account
	err := s.view(ctx, func(ctx context.Context, tx repository.Tx) error {
		var err error
		acc, err = tx.Ledger().GetAccount(ctx, userID)
		if isNotFound(err) {
			return errs.Validation(errs.ReasonAccountNotFound, fmt.Sprintf("account %s does not exist", userID))
		}
		return err
	})
	if err != nil {
		return model.Account{}, err
	}
	return acc, nil
}

// Login checks that userID exists, belongs to name and is active, then
// verifies password against the stored hash.
func (s *Service) Login(ctx context.Context, userID, name, password string) (model.Account, error) {
	var acc model.Account
	err := s.view(ctx, func(ctx context.Context, tx repository.Tx) error {
		var err error
		acc, err = checkLogin(ctx, tx.Ledger(), userID, name)
		return err
	})
	if err != nil {
		return model.Account{}, err
	}
	if !acc.Active {
		return model.Account{}, errs.Validation(errs.ReasonAccountInactive, "account is not activated, set a password first")
	}
	if acc.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		s.log.Info("login rejected", zap.String("user", userID))
		return model.Account{}, errs.Validation(errs.ReasonBadCredentials, "wrong password")
	}
	s.log.Info("login", zap.String("user", userID), zap.String("role", string(acc.Role)))
	return acc, nil
}

// Activate sets the first password of a fresh account and enables it for
// rentals. The owner name has to match like on login.
func (s *Service) Activate(ctx context.Context, userID, name, password string) (model.Account, error) {
	if len(password) < minPasswordLen {
		return model.Account{}, errs.Validation(errs.ReasonWeakPassword,
			fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.Account{}, errs.Infrastructure(err)
	}

	var acc model.Account
	err = s.inTx(ctx, "activate", func(ctx context.Context, tx repository.Tx) error {
		led := tx.Ledger()
		var err error
		acc, err = checkLogin(ctx, led, userID, name)
		if err != nil {
			return err
		}
		if acc.Active {
			return errs.Validation(errs.ReasonAccountActive, "account is already active")
		}
		if err = led.Activate(ctx, userID, string(hash)); err != nil {
			return err
		}
		acc.Active = true
		acc.PasswordHash = string(hash)
		return nil
	})
	if err != nil {
		return model.Account{}, err
	}
	s.log.Info("account activated", zap.String("user", userID))
	return acc, nil
}

func checkLogin(ctx context.Context, led repository.Ledger, userID, name string) (model.Account, error) {
	acc, err := led.GetAccount(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return model.Account{}, errs.Validation(errs.ReasonAccountNotFound, fmt.Sprintf("account %s does not exist", userID))
		}
		return model.Account{}, err
	}
	if strings.TrimSpace(name) != acc.Name {
		return model.Account{}, errs.Validation(errs.ReasonNameMismatch, "name does not match the account")
	}
	return acc, nil
}

func (s *Service) History(ctx context.Context, userID string, limit int) ([]model.Record, error) {
	var recs []model.Record
	err := s.view(ctx, func(ctx context.Context, tx repository.Tx) error {
		var err error
		recs, err = tx.Journal().History(ctx, userID, clampLimit(limit))
		return err
	})
	return recs, err
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultRecordLimit
	case limit > maxRecordLimit:
		return maxRecordLimit
	}
	return limit
}
