package location_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	applocation "github.com/bondyapp/bondy/application/location"
	"github.com/bondyapp/bondy/constant"
	locationmocks "github.com/bondyapp/bondy/mocks/repository/location"
	"github.com/bondyapp/bondy/model"
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

func addr(label string, isDefault bool) model.SavedAddress {
	return model.SavedAddress{
		Label:     label,
		Address:   label + " street 1",
		Latitude:  12.97,
		Longitude: 77.59,
		IsDefault: isDefault,
	}
}

func TestLocationApp_AddLocation(t *testing.T) {
	t.Run("success: first address", func(t *testing.T) {
		repo := locationmocks.NewLocationRepository(t)
		repo.On("Get", mock.Anything, "user-1").Return(nil, nil).Once()
		repo.
			On("Save", mock.Anything, mock.MatchedBy(func(doc *model.UserLocations) bool {
				return doc.ID == "user-1" && len(doc.Locations) == 1 && doc.Locations[0].Label == "Home"
			})).
			Return(nil).
			Once()

		app := applocation.NewLocationApp(repo)
		got, err := app.AddLocation(context.Background(), "user-1", &model.AddLocationRequest{
			Label: "Home", Address: "Home street 1", Latitude: 12.97, Longitude: 77.59,
		})
		if err != nil {
			t.Fatalf("AddLocation() error = %v", err)
		}
		if len(got.Locations) != 1 {
			t.Fatalf("locations = %d, want 1", len(got.Locations))
		}
	})

	t.Run("error: fourth address rejected", func(t *testing.T) {
		repo := locationmocks.NewLocationRepository(t)
		repo.
			On("Get", mock.Anything, "user-1").
			Return(&model.UserLocations{
				ID:        "user-1",
				Locations: []model.SavedAddress{addr("Home", true), addr("Work", false), addr("Gym", false)},
			}, nil).
			Once()

		app := applocation.NewLocationApp(repo)
		_, err := app.AddLocation(context.Background(), "user-1", &model.AddLocationRequest{
			Label: "Parents", Address: "x", Latitude: 1, Longitude: 1,
		})
		assertErrCode(t, err, constant.ErrInvalidState)
	})

	t.Run("new default displaces the old one", func(t *testing.T) {
		repo := locationmocks.NewLocationRepository(t)
		repo.
			On("Get", mock.Anything, "user-1").
			Return(&model.UserLocations{
				ID:        "user-1",
				Locations: []model.SavedAddress{addr("Home", true)},
			}, nil).
			Once()
		repo.
			On("Save", mock.Anything, mock.MatchedBy(func(doc *model.UserLocations) bool {
				return len(doc.Locations) == 2 &&
					!doc.Locations[0].IsDefault &&
					doc.Locations[1].IsDefault
			})).
			Return(nil).
			Once()

		app := applocation.NewLocationApp(repo)
		got, err := app.AddLocation(context.Background(), "user-1", &model.AddLocationRequest{
			Label: "Work", Address: "x", Latitude: 1, Longitude: 1, IsDefault: true,
		})
		if err != nil {
			t.Fatalf("AddLocation() error = %v", err)
		}
		if !got.Valid() {
			t.Fatal("resulting document violates the saved-address invariants")
		}
	})
}

func TestLocationApp_SetDefault(t *testing.T) {
	t.Run("success: default moves", func(t *testing.T) {
		repo := locationmocks.NewLocationRepository(t)
		repo.
			On("Get", mock.Anything, "user-1").
			Return(&model.UserLocations{
				ID:        "user-1",
				Locations: []model.SavedAddress{addr("Home", true), addr("Work", false)},
			}, nil).
			Once()
		repo.
			On("Save", mock.Anything, mock.MatchedBy(func(doc *model.UserLocations) bool {
				return !doc.Locations[0].IsDefault && doc.Locations[1].IsDefault
			})).
			Return(nil).
			Once()

		app := applocation.NewLocationApp(repo)
		if _, err := app.SetDefault(context.Background(), "user-1", 1); err != nil {
			t.Fatalf("SetDefault() error = %v", err)
		}
	})

	t.Run("error: index out of range", func(t *testing.T) {
		repo := locationmocks.NewLocationRepository(t)
		repo.
			On("Get", mock.Anything, "user-1").
			Return(&model.UserLocations{ID: "user-1", Locations: []model.SavedAddress{addr("Home", true)}}, nil).
			Once()

		app := applocation.NewLocationApp(repo)
		_, err := app.SetDefault(context.Background(), "user-1", 3)
		assertErrCode(t, err, constant.ErrNotFound)
	})
}

func TestLocationApp_RemoveLocation(t *testing.T) {
	repo := locationmocks.NewLocationRepository(t)
	repo.
		On("Get", mock.Anything, "user-1").
		Return(&model.UserLocations{
			ID:        "user-1",
			Locations: []model.SavedAddress{addr("Home", true), addr("Work", false)},
		}, nil).
		Once()
	repo.
		On("Save", mock.Anything, mock.MatchedBy(func(doc *model.UserLocations) bool {
			return len(doc.Locations) == 1 && doc.Locations[0].Label == "Work"
		})).
		Return(nil).
		Once()

	app := applocation.NewLocationApp(repo)
	got, err := app.RemoveLocation(context.Background(), "user-1", 0)
	if err != nil {
		t.Fatalf("RemoveLocation() error = %v", err)
	}
	if len(got.Locations) != 1 {
		t.Fatalf("locations = %d, want 1", len(got.Locations))
	}
}
