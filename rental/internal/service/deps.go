package service

import (
	"context"

	"github.com/Astemirdum/raingear-service/pkg/kafka"
	"github.com/Astemirdum/raingear-service/rental/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=deps.go -destination=mocks/mock.go

type Publisher interface {
	Publish(ctx context.Context, event kafka.RentalEvent) error
}

type StationCache interface {
	Stations(ctx context.Context) ([]model.StationSummary, bool, error)
	SetStations(ctx context.Context, stations []model.StationSummary) error
	Invalidate(ctx context.Context) error
}

var _ Publisher = (*kafka.Publisher)(nil)

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, kafka.RentalEvent) error { return nil }

type nopCache struct{}

func (nopCache) Stations(context.Context) ([]model.StationSummary, bool, error) {
	return nil, false, nil
}
func (nopCache) SetStations(context.Context, []model.StationSummary) error { return nil }
func (nopCache) Invalidate(context.Context) error                          { return nil }
