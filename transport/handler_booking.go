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

// CreateBooking handler
// @Summary Create booking
// @Description Create a booking; must start at least ten minutes from now
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateBookingRequest true "Booking Request"
// @Success 200 {object} Response{data=model.CreateBookingResponse}
// @Failure 400 {object} Response
// @Router /api/bookings [post]
func (s *RestHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, cerr.SetValidationError(validatorx.Issues(err)))
		return
	}

	res, err := s.BookingApp.CreateBooking(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListBookings handler
// @Summary List own bookings
// @Tags Bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} Response{data=model.BookingListResponse}
// @Router /api/bookings [get]
func (s *RestHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	page, limit := pagination(r)
	status := constant.BookingStatus(r.URL.Query().Get("status"))

	res, err := s.BookingApp.ListUserBookings(ctx, userID, status, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// BookingStats handler
// @Summary Booking stats for the caller
// @Tags Bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=model.BookingStats}
// @Router /api/bookings/stats [get]
func (s *RestHandler) BookingStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.BookingApp.GetBookingStats(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateBooking handler
// @Summary Update a pending booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body model.UpdateBookingRequest true "Fields to update"
// @Success 200 {object} Response{data=model.BookingEntity}
// @Failure 409 {object} Response
// @Router /api/bookings/{id} [put]
func (s *RestHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, cerr.SetValidationError(validatorx.Issues(err)))
		return
	}

	res, err := s.BookingApp.UpdateBooking(ctx, userID, mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CancelBooking handler
// @Summary Cancel a booking
// @Tags Bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} Response
// @Failure 409 {object} Response
// @Router /api/bookings/{id}/cancel [post]
func (s *RestHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.BookingApp.CancelBooking(ctx, userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// RateBooking handler
// @Summary Rate a completed booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body model.RateBookingRequest true "Rating"
// @Success 200 {object} Response
// @Failure 409 {object} Response
// @Router /api/bookings/{id}/rate [post]
func (s *RestHandler) RateBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.RateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.BookingApp.RateBooking(ctx, userID, mux.Vars(r)["id"], &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func pagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}
