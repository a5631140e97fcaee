package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/model"
	utilsContext "github.com/bondyapp/bondy/utils/context"
	cerr "github.com/bondyapp/bondy/utils/errors"
	validatorx "github.com/bondyapp/bondy/utils/validator"
)

// AdminListBookings handler
// @Summary List all bookings
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} Response{data=model.BookingListResponse}
// @Router /api/admin/bookings [get]
func (s *RestHandler) AdminListBookings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := utilsContext.GetAdminID(ctx); !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	page, limit := pagination(r)
	status := constant.BookingStatus(r.URL.Query().Get("status"))

	res, err := s.AssignmentApp.ListBookings(ctx, status, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

type assignCompanionRequest struct {
	CompanionID string `json:"companion_id" validate:"required"`
}

// AssignCompanion handler
// @Summary Assign a companion to a booking
// @Description Confirms a pending booking; follow-up notifications are best-effort
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body assignCompanionRequest true "Companion to assign"
// @Success 200 {object} Response{data=model.BookingEntity}
// @Failure 409 {object} Response
// @Router /api/admin/bookings/{id}/assign [post]
func (s *RestHandler) AssignCompanion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	adminID, ok := utilsContext.GetAdminID(ctx)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req assignCompanionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, cerr.SetValidationError(validatorx.Issues(err)))
		return
	}

	res, err := s.AssignmentApp.AssignCompanion(ctx, adminID, mux.Vars(r)["id"], req.CompanionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateCompanion handler
// @Summary Onboard a companion
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateCompanionRequest true "Companion profile"
// @Success 200 {object} Response{data=model.CompanionEntity}
// @Failure 409 {object} Response
// @Router /api/admin/companions [post]
func (s *RestHandler) CreateCompanion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := utilsContext.GetAdminID(ctx); !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.CreateCompanionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, cerr.SetValidationError(validatorx.Issues(err)))
		return
	}

	res, err := s.CompanionApp.CreateCompanion(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListCompanions handler
// @Summary List companions
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]model.CompanionEntity}
// @Router /api/admin/companions [get]
func (s *RestHandler) ListCompanions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := utilsContext.GetAdminID(ctx); !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	page, limit := pagination(r)
	items, total, err := s.CompanionApp.ListCompanions(ctx, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"items":       items,
		"total_count": total,
	})
}

// GetCompanion handler
// @Summary Get one companion
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Companion ID"
// @Success 200 {object} Response{data=model.CompanionEntity}
// @Failure 404 {object} Response
// @Router /api/admin/companions/{id} [get]
func (s *RestHandler) GetCompanion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := utilsContext.GetAdminID(ctx); !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.CompanionApp.GetCompanion(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateCompanion handler
// @Summary Update a companion
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Companion ID"
// @Param request body model.UpdateCompanionRequest true "Fields to update"
// @Success 200 {object} Response{data=model.CompanionEntity}
// @Router /api/admin/companions/{id} [put]
func (s *RestHandler) UpdateCompanion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := utilsContext.GetAdminID(ctx); !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.UpdateCompanionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, cerr.SetValidationError(validatorx.Issues(err)))
		return
	}

	res, err := s.CompanionApp.UpdateCompanion(ctx, mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
