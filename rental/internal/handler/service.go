package handler

import (
	"context"

	"github.com/Astemirdum/raingear-service/rental/internal/model"
	"github.com/Astemirdum/raingear-service/rental/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type RentalService interface {
	Borrow(ctx context.Context, userID string, stationID model.StationID, slot int) (model.ServiceResult, error)
	Return(ctx context.Context, userID, gearID string, stationID model.StationID, slot int) (model.ServiceResult, error)
	History(ctx context.Context, userID string, limit int) ([]model.Record, error)

	Login(ctx context.Context, userID, name, password string) (model.Account, error)
	Activate(ctx context.Context, userID, name, password string) (model.Account, error)
	GetAccount(ctx context.Context, userID string) (model.Account, error)

	ListStations(ctx context.Context) ([]model.StationSummary, error)
	Overview(ctx context.Context) (model.Overview, error)
	ListStationGears(ctx context.Context, stationID model.StationID) ([]model.Gear, error)
	InvalidateStations(ctx context.Context) error

	AdminSetGearStatus(ctx context.Context, gearID string, status model.GearStatus) (model.Gear, error)
	AdminSetStationOnline(ctx context.Context, stationID model.StationID, online bool) (model.Station, error)
	AdminMarkSlotBroken(ctx context.Context, stationID model.StationID, slot int) (model.Station, error)
	AdminMarkSlotRepaired(ctx context.Context, stationID model.StationID, slot int) (model.Station, error)
	RecentRecords(ctx context.Context, limit int) ([]model.Record, error)
}

var _ RentalService = (*service.Service)(nil)
