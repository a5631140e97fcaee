package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/model"
	utilsContext "github.com/bondyapp/bondy/utils/context"
	cerr "github.com/bondyapp/bondy/utils/errors"
	validatorx "github.com/bondyapp/bondy/utils/validator"
)

// ListLocations handler
// @Summary List saved addresses
// @Tags Locations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=model.UserLocations}
// @Router /api/user-locations [get]
func (s *RestHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.LocationApp.ListLocations(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AddLocation handler
// @Summary Save an address
// @Description At most three addresses per user; a new default displaces the old one
// @Tags Locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.AddLocationRequest true "Address"
// @Success 200 {object} Response{data=model.UserLocations}
// @Failure 409 {object} Response
// @Router /api/user-locations [post]
func (s *RestHandler) AddLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.AddLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, cerr.SetValidationError(validatorx.Issues(err)))
		return
	}

	res, err := s.LocationApp.AddLocation(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// RemoveLocation handler
// @Summary Remove a saved address by index
// @Tags Locations
// @Produce json
// @Security BearerAuth
// @Param index path int true "Address index"
// @Success 200 {object} Response{data=model.UserLocations}
// @Failure 404 {object} Response
// @Router /api/user-locations/{index} [delete]
func (s *RestHandler) RemoveLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.LocationApp.RemoveLocation(ctx, userID, index)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// SetDefaultLocation handler
// @Summary Mark a saved address as default
// @Tags Locations
// @Produce json
// @Security BearerAuth
// @Param index path int true "Address index"
// @Success 200 {object} Response{data=model.UserLocations}
// @Failure 404 {object} Response
// @Router /api/user-locations/{index}/default [put]
func (s *RestHandler) SetDefaultLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.LocationApp.SetDefault(ctx, userID, index)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
