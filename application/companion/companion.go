package companion

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/model"
	companionrepo "github.com/bondyapp/bondy/repository/companion"
	"github.com/bondyapp/bondy/repository/mongodb"
	cerr "github.com/bondyapp/bondy/utils/errors"
	"github.com/bondyapp/bondy/utils/logger"
)

type CompanionApp interface {
	CreateCompanion(ctx context.Context, req *model.CreateCompanionRequest) (*model.CompanionEntity, error)
	GetCompanion(ctx context.Context, id string) (*model.CompanionEntity, error)
	ListCompanions(ctx context.Context, page, limit int) ([]*model.CompanionEntity, int64, error)
	UpdateCompanion(ctx context.Context, id string, req *model.UpdateCompanionRequest) (*model.CompanionEntity, error)
}

type companionAppImpl struct {
	companionRepo companionrepo.CompanionRepository
}

func NewCompanionApp(companionRepo companionrepo.CompanionRepository) CompanionApp {
	return &companionAppImpl{companionRepo: companionRepo}
}

func (s *companionAppImpl) CreateCompanion(ctx context.Context, req *model.CreateCompanionRequest) (*model.CompanionEntity, error) {
	entity := &model.CompanionEntity{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		Specialties:  req.Specialties,
		HourlyRate:   req.HourlyRate,
		Availability: req.Availability,
		IsActive:     true,
		IsVerified:   false,
	}

	entity, err := s.companionRepo.Create(ctx, entity)
	if errors.Is(err, mongodb.ErrDuplicate) {
		return nil, cerr.SetCustomError(constant.ErrCredentialExists)
	}
	if err != nil {
		logger.Error("[CreateCompanion] err companionRepo.Create", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return entity, nil
}

func (s *companionAppImpl) GetCompanion(ctx context.Context, id string) (*model.CompanionEntity, error) {
	entity, err := s.companionRepo.Get(ctx, &model.CompanionFilter{ID: id})
	if err != nil {
		logger.Error("[GetCompanion] err companionRepo.Get", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}
	return entity, nil
}

func (s *companionAppImpl) ListCompanions(ctx context.Context, page, limit int) ([]*model.CompanionEntity, int64, error) {
	items, total, err := s.companionRepo.List(ctx, page, limit)
	if err != nil {
		logger.Error("[ListCompanions] err companionRepo.List", zap.String("error", err.Error()))
		return nil, 0, cerr.SetCustomError(constant.ErrInternal)
	}
	return items, total, nil
}

func (s *companionAppImpl) UpdateCompanion(ctx context.Context, id string, req *model.UpdateCompanionRequest) (*model.CompanionEntity, error) {
	existing, err := s.companionRepo.Get(ctx, &model.CompanionFilter{ID: id})
	if err != nil {
		logger.Error("[UpdateCompanion] err companionRepo.Get", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}

	if err := s.companionRepo.Update(ctx, id, req); err != nil {
		logger.Error("[UpdateCompanion] err companionRepo.Update", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return s.GetCompanion(ctx, id)
}
