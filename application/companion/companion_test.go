package companion_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	appcompanion "github.com/bondyapp/bondy/application/companion"
	"github.com/bondyapp/bondy/constant"
	companionmocks "github.com/bondyapp/bondy/mocks/repository/companion"
	"github.com/bondyapp/bondy/model"
	"github.com/bondyapp/bondy/repository/mongodb"
	cerr "github.com/bondyapp/bondy/utils/errors"
)

func assertErrCode(t *testing.T, err error, want constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[want] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[want])
	}
}

func TestCompanionApp_CreateCompanion(t *testing.T) {
	req := &model.CreateCompanionRequest{
		Name:        "Priya",
		Email:       "priya@bondy.app",
		Mobile:      "+919000000002",
		Specialties: []string{"elderly-care"},
		HourlyRate:  120,
	}

	t.Run("new companion starts active and unverified", func(t *testing.T) {
		companionRepo := companionmocks.NewCompanionRepository(t)
		companionRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.CompanionEntity) bool {
			return c.ID != "" && c.Email == "priya@bondy.app" && c.IsActive && !c.IsVerified
		})).Return(func(_ context.Context, c *model.CompanionEntity) *model.CompanionEntity {
			return c
		}, nil).Once()

		app := appcompanion.NewCompanionApp(companionRepo)
		got, err := app.CreateCompanion(context.Background(), req)
		if err != nil {
			t.Fatalf("CreateCompanion() error = %v", err)
		}
		if got.Name != "Priya" || !got.IsActive || got.IsVerified {
			t.Fatalf("CreateCompanion() = %+v", got)
		}
	})

	t.Run("duplicate email maps to credential exists", func(t *testing.T) {
		companionRepo := companionmocks.NewCompanionRepository(t)
		companionRepo.On("Create", mock.Anything, mock.Anything).Return(nil, mongodb.ErrDuplicate).Once()

		app := appcompanion.NewCompanionApp(companionRepo)
		_, err := app.CreateCompanion(context.Background(), req)
		assertErrCode(t, err, constant.ErrCredentialExists)
	})
}

func TestCompanionApp_UpdateCompanion(t *testing.T) {
	t.Run("returns the refreshed document", func(t *testing.T) {
		name := "Priya K"
		verified := true
		req := &model.UpdateCompanionRequest{Name: &name, IsVerified: &verified}

		companionRepo := companionmocks.NewCompanionRepository(t)
		companionRepo.On("Get", mock.Anything, &model.CompanionFilter{ID: "c-1"}).
			Return(&model.CompanionEntity{ID: "c-1", Name: "Priya"}, nil).Once()
		companionRepo.On("Update", mock.Anything, "c-1", req).Return(nil).Once()
		companionRepo.On("Get", mock.Anything, &model.CompanionFilter{ID: "c-1"}).
			Return(&model.CompanionEntity{ID: "c-1", Name: "Priya K", IsVerified: true}, nil).Once()

		app := appcompanion.NewCompanionApp(companionRepo)
		got, err := app.UpdateCompanion(context.Background(), "c-1", req)
		if err != nil {
			t.Fatalf("UpdateCompanion() error = %v", err)
		}
		if got.Name != "Priya K" || !got.IsVerified {
			t.Fatalf("UpdateCompanion() = %+v", got)
		}
	})

	t.Run("unknown companion", func(t *testing.T) {
		companionRepo := companionmocks.NewCompanionRepository(t)
		companionRepo.On("Get", mock.Anything, &model.CompanionFilter{ID: "missing"}).Return(nil, nil).Once()

		app := appcompanion.NewCompanionApp(companionRepo)
		_, err := app.UpdateCompanion(context.Background(), "missing", &model.UpdateCompanionRequest{})
		assertErrCode(t, err, constant.ErrNotFound)
	})
}

func TestCompanionApp_GetCompanion(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		companionRepo := companionmocks.NewCompanionRepository(t)
		companionRepo.On("Get", mock.Anything, &model.CompanionFilter{ID: "missing"}).Return(nil, nil).Once()

		app := appcompanion.NewCompanionApp(companionRepo)
		_, err := app.GetCompanion(context.Background(), "missing")
		assertErrCode(t, err, constant.ErrNotFound)
	})
}
