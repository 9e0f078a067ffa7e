package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type GearType int16

const (
	GearStandardPlastic  GearType = 1
	GearPremiumWindproof GearType = 2
	GearSunshade         GearType = 3
	GearRaincoat         GearType = 4
)

func (t GearType) Valid() bool {
	return t >= GearStandardPlastic && t <= GearRaincoat
}

func (t GearType) String() string {
	switch t {
	case GearStandardPlastic:
		return "STANDARD_PLASTIC"
	case GearPremiumWindproof:
		return "PREMIUM_WINDPROOF"
	case GearSunshade:
		return "SUNSHADE"
	case GearRaincoat:
		return "RAINCOAT"
	}
	return "UNKNOWN"
}

type GearStatus int16

const (
	GearAvailable GearStatus = 1
	GearBorrowed  GearStatus = 2
	GearBroken    GearStatus = 3
)

func (s GearStatus) Valid() bool {
	return s >= GearAvailable && s <= GearBroken
}

func (s GearStatus) String() string {
	switch s {
	case GearAvailable:
		return "AVAILABLE"
	case GearBorrowed:
		return "BORROWED"
	case GearBroken:
		return "BROKEN"
	}
	return "UNKNOWN"
}

type StationID int16

const (
	StationUnknown StationID = iota
	StationWende
	StationMingde
	StationLibrary
	StationChangwang
	StationOufang
	StationBeichen
	StationDorm1
	StationDorm2
	StationDorm3
	StationDorm4
	StationDorm5
	StationDorm6
	StationGym
	StationAdmin
)

var stationNames = map[StationID]string{
	StationWende:     "Wende Building",
	StationMingde:    "Mingde Building",
	StationLibrary:   "Library",
	StationChangwang: "Changwang Building",
	StationOufang:    "Oufang Canteen",
	StationBeichen:   "Beichen Building",
	StationDorm1:     "Dormitory 1",
	StationDorm2:     "Dormitory 2",
	StationDorm3:     "Dormitory 3",
	StationDorm4:     "Dormitory 4",
	StationDorm5:     "Dormitory 5",
	StationDorm6:     "Dormitory 6",
	StationGym:       "Gymnasium",
	StationAdmin:     "Administration Building",
}

func (id StationID) Valid() bool {
	_, ok := stationNames[id]
	return ok
}

func (id StationID) Name() string {
	if name, ok := stationNames[id]; ok {
		return name
	}
	return "Unknown"
}

func AllStations() []StationID {
	out := make([]StationID, 0, len(stationNames))
	for id := StationWende; id <= StationAdmin; id++ {
		out = append(out, id)
	}
	return out
}

// StationCapacity is the slot count of every kiosk.
const StationCapacity = 12

type Gear struct {
	ID        string     `json:"id" db:"id"`
	Type      GearType   `json:"type" db:"type"`
	Status    GearStatus `json:"status" db:"status"`
	StationID *StationID `json:"stationId,omitempty" db:"station_id"`
	SlotID    *int       `json:"slotId,omitempty" db:"slot_id"`
}

// Located reports whether the gear sits in a station slot.
func (g Gear) Located() bool {
	return g.StationID != nil && g.SlotID != nil
}

type Station struct {
	ID          StationID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	PosX        float64   `json:"posX" db:"pos_x"`
	PosY        float64   `json:"posY" db:"pos_y"`
	Online      bool      `json:"online" db:"online"`
	Capacity    int       `json:"capacity" db:"-"`
	BrokenSlots []int     `json:"brokenSlots" db:"broken_slots"`
}

func (s Station) SlotBroken(slot int) bool {
	for _, b := range s.BrokenSlots {
		if b == slot {
			return true
		}
	}
	return false
}

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleStaff   Role = "STAFF"
	RoleAdmin   Role = "ADMIN"
)

type Account struct {
	ID           string          `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Credit       decimal.Decimal `json:"credit" db:"credit"`
	Role         Role            `json:"role" db:"role"`
	Active       bool            `json:"active" db:"active"`
	PasswordHash string          `json:"-" db:"password_hash"`
}

type Record struct {
	ID         int64           `json:"id" db:"id"`
	UserID     string          `json:"userId" db:"user_id"`
	GearID     string          `json:"gearId" db:"gear_id"`
	BorrowTime time.Time       `json:"borrowTime" db:"borrow_time"`
	ReturnTime *time.Time      `json:"returnTime,omitempty" db:"return_time"`
	Cost       decimal.Decimal `json:"cost" db:"cost"`
}

func (r Record) Open() bool {
	return r.ReturnTime == nil
}

// ServiceResult is what the kiosk renders after a borrow or return attempt.
type ServiceResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Cost    decimal.Decimal `json:"cost"`
	Refund  decimal.Decimal `json:"refund"`
	Balance decimal.Decimal `json:"balance"`
	GearID  string          `json:"gearId,omitempty"`
	Kind    string          `json:"kind,omitempty"`
	Reason  string          `json:"reason,omitempty"`
}

// StationSummary is one station on the map. Borrowed gear has no location,
// so there is no per-station borrowed count: Empty is the number of slots
// holding no gear, capacity minus available and broken. The system-wide
// borrowed total is in Overview.
type StationSummary struct {
	ID          StationID `json:"id"`
	Name        string    `json:"name"`
	PosX        float64   `json:"posX"`
	PosY        float64   `json:"posY"`
	Online      bool      `json:"online"`
	Capacity    int       `json:"capacity"`
	Available   int       `json:"available"`
	Broken      int       `json:"broken"`
	Empty       int       `json:"empty"`
	BrokenSlots []int     `json:"brokenSlots"`
}

type Overview struct {
	Available int `json:"available"`
	Borrowed  int `json:"borrowed"`
	Broken    int `json:"broken"`
}

type BorrowRequest struct {
	StationID StationID `json:"stationId" validate:"required"`
	SlotID    int       `json:"slotId" validate:"required"`
}

type ReturnRequest struct {
	GearID    string    `json:"gearId" validate:"required"`
	StationID StationID `json:"stationId" validate:"required"`
	SlotID    int       `json:"slotId" validate:"required"`
}

// LoginRequest is typed at the kiosk: the student number, the owner name
// and the password. Activation uses the same shape for the first password.
type LoginRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Account   Account   `json:"account"`
}

type GearStatusRequest struct {
	Status GearStatus `json:"status" validate:"required"`
}

type StationOnlineRequest struct {
	Online *bool `json:"online" validate:"required"`
}
