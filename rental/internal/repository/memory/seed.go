package memory

import (
	"fmt"
	"sync"

	"github.com/Astemirdum/raingear-service/rental/internal/catalog"
	"github.com/Astemirdum/raingear-service/rental/internal/model"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the password of the seeded active accounts, set by
// migrations/0003_demo_passwords.sql for postgres.
const DemoPassword = "raingear"

var (
	demoHashOnce sync.Once
	demoHash     string
)

func demoPasswordHash() string {
	demoHashOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		demoHash = string(h)
	})
	return demoHash
}

// Same fixtures as migrations/0002_seed.sql.
var stationPositions = map[model.StationID][2]float64{
	model.StationWende:     {0.22, 0.35},
	model.StationMingde:    {0.30, 0.42},
	model.StationLibrary:   {0.48, 0.50},
	model.StationChangwang: {0.62, 0.38},
	model.StationOufang:    {0.55, 0.66},
	model.StationBeichen:   {0.40, 0.22},
	model.StationDorm1:     {0.12, 0.78},
	model.StationDorm2:     {0.18, 0.84},
	model.StationDorm3:     {0.24, 0.90},
	model.StationDorm4:     {0.76, 0.78},
	model.StationDorm5:     {0.82, 0.84},
	model.StationDorm6:     {0.88, 0.90},
	model.StationGym:       {0.70, 0.55},
	model.StationAdmin:     {0.50, 0.12},
}

var seededSlots = []int{1, 2, 3, 5, 6, 7, 9, 11}

func DefaultStations() []model.Station {
	out := make([]model.Station, 0, len(stationPositions))
	for _, id := range model.AllStations() {
		pos := stationPositions[id]
		out = append(out, model.Station{
			ID:       id,
			Name:     id.Name(),
			PosX:     pos[0],
			PosY:     pos[1],
			Online:   true,
			Capacity: model.StationCapacity,
		})
	}
	return out
}

func DefaultGears() []model.Gear {
	out := make([]model.Gear, 0, len(stationPositions)*len(seededSlots))
	for _, id := range model.AllStations() {
		for _, slot := range seededSlots {
			typ, _ := catalog.TypeForSlot(slot)
			out = append(out, NewGear(GearID(id, slot), typ, id, slot))
		}
	}
	return out
}

func DefaultAccounts() []model.Account {
	hash := demoPasswordHash()
	return []model.Account{
		{ID: "2021001", Name: "Demo Student", Credit: decimal.NewFromInt(30), Role: model.RoleStudent, Active: true, PasswordHash: hash},
		{ID: "2021002", Name: "New Student", Credit: decimal.NewFromInt(50), Role: model.RoleStudent},
		{ID: "staff01", Name: "Demo Staff", Credit: decimal.NewFromInt(100), Role: model.RoleStaff, Active: true, PasswordHash: hash},
		{ID: "admin", Name: "Service Desk", Credit: decimal.Zero, Role: model.RoleAdmin, Active: true, PasswordHash: hash},
	}
}

func GearID(station model.StationID, slot int) string {
	return fmt.Sprintf("G%02d-%02d", station, slot)
}

func NewGear(id string, typ model.GearType, station model.StationID, slot int) model.Gear {
	return model.Gear{
		ID:        id,
		Type:      typ,
		Status:    model.GearAvailable,
		StationID: &station,
		SlotID:    &slot,
	}
}

// NewSeeded returns a store holding the default campus fixtures.
func NewSeeded() *Store {
	s := New()
	s.Seed(DefaultStations(), DefaultGears(), DefaultAccounts())
	return s
}
