package transport

import (
	"encoding/json"
	"net/http"

	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/model"
	utilsContext "github.com/bondyapp/bondy/utils/context"
	cerr "github.com/bondyapp/bondy/utils/errors"
	validatorx "github.com/bondyapp/bondy/utils/validator"
)

// CreateOrder handler
// @Summary Create a payment order for a booking
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateOrderRequest true "Order Request"
// @Success 200 {object} Response{data=model.CreateOrderResponse}
// @Failure 403 {object} Response
// @Router /api/payments/orders [post]
func (s *RestHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, cerr.SetValidationError(validatorx.Issues(err)))
		return
	}

	res, err := s.PaymentApp.CreateOrder(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// VerifyPayment handler
// @Summary Verify a payment callback signature
// @Description A signature mismatch yields verified=false, not an error
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.VerifyPaymentRequest true "Gateway callback fields"
// @Success 200 {object} Response{data=model.VerifyPaymentResponse}
// @Router /api/payments/verify [post]
func (s *RestHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, cerr.SetValidationError(validatorx.Issues(err)))
		return
	}

	res, err := s.PaymentApp.VerifyPayment(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
