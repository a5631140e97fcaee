package location

import (
	"context"

	"go.uber.org/zap"

	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/model"
	locationrepo "github.com/bondyapp/bondy/repository/location"
	cerr "github.com/bondyapp/bondy/utils/errors"
	"github.com/bondyapp/bondy/utils/logger"
)

type LocationApp interface {
	ListLocations(ctx context.Context, userID string) (*model.UserLocations, error)
	AddLocation(ctx context.Context, userID string, req *model.AddLocationRequest) (*model.UserLocations, error)
	RemoveLocation(ctx context.Context, userID string, index int) (*model.UserLocations, error)
	SetDefault(ctx context.Context, userID string, index int) (*model.UserLocations, error)
}

type locationAppImpl struct {
	locationRepo locationrepo.LocationRepository
}

func NewLocationApp(locationRepo locationrepo.LocationRepository) LocationApp {
	return &locationAppImpl{locationRepo: locationRepo}
}

func (s *locationAppImpl) ListLocations(ctx context.Context, userID string) (*model.UserLocations, error) {
	doc, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *locationAppImpl) AddLocation(ctx context.Context, userID string, req *model.AddLocationRequest) (*model.UserLocations, error) {
	doc, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(doc.Locations) >= model.MaxSavedAddresses {
		return nil, cerr.SetCustomError(constant.ErrInvalidState)
	}

	// A new default displaces the old one
	if req.IsDefault {
		for i := range doc.Locations {
			doc.Locations[i].IsDefault = false
		}
	}

	doc.Locations = append(doc.Locations, model.SavedAddress{
		Label:     req.Label,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		IsDefault: req.IsDefault,
	})

	return s.save(ctx, doc)
}

func (s *locationAppImpl) RemoveLocation(ctx context.Context, userID string, index int) (*model.UserLocations, error) {
	doc, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(doc.Locations) {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}

	doc.Locations = append(doc.Locations[:index], doc.Locations[index+1:]...)
	return s.save(ctx, doc)
}

func (s *locationAppImpl) SetDefault(ctx context.Context, userID string, index int) (*model.UserLocations, error) {
	doc, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(doc.Locations) {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}

	for i := range doc.Locations {
		doc.Locations[i].IsDefault = i == index
	}
	return s.save(ctx, doc)
}

func (s *locationAppImpl) load(ctx context.Context, userID string) (*model.UserLocations, error) {
	doc, err := s.locationRepo.Get(ctx, userID)
	if err != nil {
		logger.Error("[location] err locationRepo.Get", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if doc == nil {
		doc = &model.UserLocations{ID: userID, Locations: []model.SavedAddress{}}
	}
	return doc, nil
}

func (s *locationAppImpl) save(ctx context.Context, doc *model.UserLocations) (*model.UserLocations, error) {
	if !doc.Valid() {
		return nil, cerr.SetCustomError(constant.ErrInvalidState)
	}
	if err := s.locationRepo.Save(ctx, doc); err != nil {
		logger.Error("[location] err locationRepo.Save", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return doc, nil
}
