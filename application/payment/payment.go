package payment

import (
	"context"

	"go.uber.org/zap"

	"github.com/bondyapp/bondy/cmd/config"
	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/model"
	bookingrepo "github.com/bondyapp/bondy/repository/booking"
	paymentgw "github.com/bondyapp/bondy/thirdparty/payment"
	cerr "github.com/bondyapp/bondy/utils/errors"
	"github.com/bondyapp/bondy/utils/logger"
)

type PaymentApp interface {
	CreateOrder(ctx context.Context, userID string, req *model.CreateOrderRequest) (*model.CreateOrderResponse, error)
	VerifyPayment(ctx context.Context, userID string, req *model.VerifyPaymentRequest) (*model.VerifyPaymentResponse, error)
}

type paymentAppImpl struct {
	config      *config.Config
	bookingRepo bookingrepo.BookingRepository
	gateway     paymentgw.Client
}

func NewPaymentApp(config *config.Config, bookingRepo bookingrepo.BookingRepository, gateway paymentgw.Client) PaymentApp {
	return &paymentAppImpl{
		config:      config,
		bookingRepo: bookingRepo,
		gateway:     gateway,
	}
}

func (s *paymentAppImpl) CreateOrder(ctx context.Context, userID string, req *model.CreateOrderRequest) (*model.CreateOrderResponse, error) {
	booking, err := s.ownedBooking(ctx, userID, req.BookingID)
	if err != nil {
		return nil, err
	}

	// Gateway amounts are in the smallest currency unit
	order, err := s.gateway.CreateOrder(ctx, booking.Amount*100, booking.ID)
	if err != nil {
		logger.Error("[CreateOrder] err gateway.CreateOrder", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	booking.Payment.OrderID = order.ID
	booking.Payment.Amount = order.Amount
	booking.Payment.Status = "order_created"
	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		logger.Error("[CreateOrder] err bookingRepo.Save", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	return &model.CreateOrderResponse{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    s.config.Payment.KeyID,
	}, nil
}

// VerifyPayment checks the gateway callback signature. A mismatch is a
// normal negative outcome, not an error.
func (s *paymentAppImpl) VerifyPayment(ctx context.Context, userID string, req *model.VerifyPaymentRequest) (*model.VerifyPaymentResponse, error) {
	booking, err := s.ownedBooking(ctx, userID, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.Payment.OrderID == "" || booking.Payment.OrderID != req.OrderID {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		booking.Payment.Status = "failed"
		if err := s.bookingRepo.Save(ctx, booking); err != nil {
			logger.Warn("[VerifyPayment] err bookingRepo.Save", zap.String("error", err.Error()))
		}
		return &model.VerifyPaymentResponse{Verified: false}, nil
	}

	booking.Payment.PaymentID = req.PaymentID
	booking.Payment.Signature = req.Signature
	booking.Payment.Status = "paid"
	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		logger.Error("[VerifyPayment] err bookingRepo.Save", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	return &model.VerifyPaymentResponse{Verified: true}, nil
}

func (s *paymentAppImpl) ownedBooking(ctx context.Context, userID, bookingID string) (*model.BookingEntity, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		logger.Error("[payment] err bookingRepo.GetByID", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if booking == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}
	if booking.UserID != userID {
		return nil, cerr.SetCustomError(constant.ErrForbidden)
	}
	return booking, nil
}
