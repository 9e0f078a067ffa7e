// Package catalog holds the per-type rental policy: deposit, hourly rate and
// the block of station slots the type may occupy.
package catalog

import (
	"time"

	"github.com/Astemirdum/raingear-service/rental/internal/model"
	"github.com/shopspring/decimal"
)

type Policy struct {
	Type       model.GearType  `json:"type"`
	Name       string          `json:"name"`
	Deposit    decimal.Decimal `json:"deposit"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
	FirstSlot  int             `json:"firstSlot"`
	LastSlot   int             `json:"lastSlot"`
}

var policies = map[model.GearType]Policy{
	model.GearStandardPlastic: {
		Type:       model.GearStandardPlastic,
		Name:       "Standard plastic umbrella",
		Deposit:    decimal.NewFromInt(10),
		HourlyRate: decimal.NewFromInt(1),
		FirstSlot:  1,
		LastSlot:   4,
	},
	model.GearPremiumWindproof: {
		Type:       model.GearPremiumWindproof,
		Name:       "Premium windproof umbrella",
		Deposit:    decimal.NewFromInt(20),
		HourlyRate: decimal.NewFromInt(2),
		FirstSlot:  5,
		LastSlot:   8,
	},
	model.GearSunshade: {
		Type:       model.GearSunshade,
		Name:       "Sunshade umbrella",
		Deposit:    decimal.NewFromInt(15),
		HourlyRate: decimal.RequireFromString("1.5"),
		FirstSlot:  9,
		LastSlot:   10,
	},
	model.GearRaincoat: {
		Type:       model.GearRaincoat,
		Name:       "Raincoat",
		Deposit:    decimal.NewFromInt(25),
		HourlyRate: decimal.NewFromInt(2),
		FirstSlot:  11,
		LastSlot:   12,
	},
}

func Lookup(t model.GearType) (Policy, bool) {
	p, ok := policies[t]
	return p, ok
}

func All() []Policy {
	out := make([]Policy, 0, len(policies))
	for t := model.GearStandardPlastic; t <= model.GearRaincoat; t++ {
		out = append(out, policies[t])
	}
	return out
}

// TypeForSlot returns the gear type whose block contains slot.
func TypeForSlot(slot int) (model.GearType, bool) {
	for _, p := range policies {
		if p.Fits(slot) {
			return p.Type, true
		}
	}
	return 0, false
}

func (p Policy) Fits(slot int) bool {
	return slot >= p.FirstSlot && slot <= p.LastSlot
}

// Fee charges every started hour at the hourly rate, never more than the deposit.
// Non-positive durations cost nothing.
func (p Policy) Fee(elapsed time.Duration) decimal.Decimal {
	if elapsed <= 0 {
		return decimal.Zero
	}
	hours := int64(elapsed / time.Hour)
	if elapsed%time.Hour != 0 {
		hours++
	}
	cost := p.HourlyRate.Mul(decimal.NewFromInt(hours))
	if cost.GreaterThan(p.Deposit) {
		return p.Deposit
	}
	return cost
}

// Refund is what goes back to the account when a rental costing cost ends.
func (p Policy) Refund(cost decimal.Decimal) decimal.Decimal {
	refund := p.Deposit.Sub(cost)
	if refund.IsNegative() {
		return decimal.Zero
	}
	return refund
}
