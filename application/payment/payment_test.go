package payment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	apppayment "github.com/bondyapp/bondy/application/payment"
	"github.com/bondyapp/bondy/cmd/config"
	"github.com/bondyapp/bondy/constant"
	bookingmocks "github.com/bondyapp/bondy/mocks/repository/booking"
	paymentmocks "github.com/bondyapp/bondy/mocks/thirdparty/payment"
	"github.com/bondyapp/bondy/model"
	paymentgw "github.com/bondyapp/bondy/thirdparty/payment"
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

func testConfig() *config.Config {
	return &config.Config{
		Payment: config.PaymentConfig{KeyID: "rzp_test_key", Currency: "INR"},
	}
}

func ownedBooking() *model.BookingEntity {
	return &model.BookingEntity{
		ID:     "b-1",
		UserID: "u-1",
		Amount: 200,
		Status: constant.BookingStatusConfirmed,
	}
}

func TestPaymentApp_CreateOrder(t *testing.T) {
	t.Run("opens order in paise and stores it on the booking", func(t *testing.T) {
		bookingRepo := bookingmocks.NewBookingRepository(t)
		bookingRepo.On("GetByID", mock.Anything, "b-1").Return(ownedBooking(), nil).Once()
		bookingRepo.On("Save", mock.Anything, mock.MatchedBy(func(b *model.BookingEntity) bool {
			return b.Payment.OrderID == "order_123" && b.Payment.Amount == 20000 && b.Payment.Status == "order_created"
		})).Return(nil).Once()

		gateway := paymentmocks.NewClient(t)
		gateway.On("CreateOrder", mock.Anything, 20000, "b-1").Return(&paymentgw.Order{
			ID:       "order_123",
			Amount:   20000,
			Currency: "INR",
			Receipt:  "b-1",
			Status:   "created",
		}, nil).Once()

		app := apppayment.NewPaymentApp(testConfig(), bookingRepo, gateway)
		resp, err := app.CreateOrder(context.Background(), "u-1", &model.CreateOrderRequest{BookingID: "b-1"})
		if err != nil {
			t.Fatalf("CreateOrder() error = %v", err)
		}
		if resp.OrderID != "order_123" || resp.Amount != 20000 || resp.Currency != "INR" {
			t.Fatalf("CreateOrder() response = %+v", resp)
		}
		if resp.KeyID != "rzp_test_key" {
			t.Fatalf("CreateOrder() key id = %s", resp.KeyID)
		}
	})

	t.Run("someone else's booking is forbidden", func(t *testing.T) {
		bookingRepo := bookingmocks.NewBookingRepository(t)
		bookingRepo.On("GetByID", mock.Anything, "b-1").Return(ownedBooking(), nil).Once()

		app := apppayment.NewPaymentApp(testConfig(), bookingRepo, paymentmocks.NewClient(t))
		_, err := app.CreateOrder(context.Background(), "u-2", &model.CreateOrderRequest{BookingID: "b-1"})
		assertErrCode(t, err, constant.ErrForbidden)
	})

	t.Run("unknown booking", func(t *testing.T) {
		bookingRepo := bookingmocks.NewBookingRepository(t)
		bookingRepo.On("GetByID", mock.Anything, "missing").Return(nil, nil).Once()

		app := apppayment.NewPaymentApp(testConfig(), bookingRepo, paymentmocks.NewClient(t))
		_, err := app.CreateOrder(context.Background(), "u-1", &model.CreateOrderRequest{BookingID: "missing"})
		assertErrCode(t, err, constant.ErrNotFound)
	})

	t.Run("gateway outage surfaces as internal", func(t *testing.T) {
		bookingRepo := bookingmocks.NewBookingRepository(t)
		bookingRepo.On("GetByID", mock.Anything, "b-1").Return(ownedBooking(), nil).Once()

		gateway := paymentmocks.NewClient(t)
		gateway.On("CreateOrder", mock.Anything, 20000, "b-1").Return(nil, errors.New("gateway: 502")).Once()

		app := apppayment.NewPaymentApp(testConfig(), bookingRepo, gateway)
		_, err := app.CreateOrder(context.Background(), "u-1", &model.CreateOrderRequest{BookingID: "b-1"})
		assertErrCode(t, err, constant.ErrInternal)
	})
}

func TestPaymentApp_VerifyPayment(t *testing.T) {
	paidRequest := &model.VerifyPaymentRequest{
		BookingID: "b-1",
		OrderID:   "order_123",
		PaymentID: "pay_456",
		Signature: "sig",
	}

	withOrder := func() *model.BookingEntity {
		b := ownedBooking()
		b.Payment.OrderID = "order_123"
		b.Payment.Amount = 20000
		b.Payment.Status = "order_created"
		return b
	}

	t.Run("valid signature marks the booking paid", func(t *testing.T) {
		bookingRepo := bookingmocks.NewBookingRepository(t)
		bookingRepo.On("GetByID", mock.Anything, "b-1").Return(withOrder(), nil).Once()
		bookingRepo.On("Save", mock.Anything, mock.MatchedBy(func(b *model.BookingEntity) bool {
			return b.Payment.Status == "paid" && b.Payment.PaymentID == "pay_456" && b.Payment.Signature == "sig"
		})).Return(nil).Once()

		gateway := paymentmocks.NewClient(t)
		gateway.On("VerifySignature", "order_123", "pay_456", "sig").Return(true).Once()

		app := apppayment.NewPaymentApp(testConfig(), bookingRepo, gateway)
		resp, err := app.VerifyPayment(context.Background(), "u-1", paidRequest)
		if err != nil {
			t.Fatalf("VerifyPayment() error = %v", err)
		}
		if !resp.Verified {
			t.Fatal("VerifyPayment() verified = false, want true")
		}
	})

	t.Run("bad signature is a negative result, not an error", func(t *testing.T) {
		bookingRepo := bookingmocks.NewBookingRepository(t)
		bookingRepo.On("GetByID", mock.Anything, "b-1").Return(withOrder(), nil).Once()
		bookingRepo.On("Save", mock.Anything, mock.MatchedBy(func(b *model.BookingEntity) bool {
			return b.Payment.Status == "failed" && b.Payment.PaymentID == ""
		})).Return(nil).Once()

		gateway := paymentmocks.NewClient(t)
		gateway.On("VerifySignature", "order_123", "pay_456", "sig").Return(false).Once()

		app := apppayment.NewPaymentApp(testConfig(), bookingRepo, gateway)
		resp, err := app.VerifyPayment(context.Background(), "u-1", paidRequest)
		if err != nil {
			t.Fatalf("VerifyPayment() error = %v", err)
		}
		if resp.Verified {
			t.Fatal("VerifyPayment() verified = true, want false")
		}
	})

	t.Run("order id must match the stored order", func(t *testing.T) {
		bookingRepo := bookingmocks.NewBookingRepository(t)
		bookingRepo.On("GetByID", mock.Anything, "b-1").Return(withOrder(), nil).Once()

		app := apppayment.NewPaymentApp(testConfig(), bookingRepo, paymentmocks.NewClient(t))
		_, err := app.VerifyPayment(context.Background(), "u-1", &model.VerifyPaymentRequest{
			BookingID: "b-1",
			OrderID:   "order_999",
			PaymentID: "pay_456",
			Signature: "sig",
		})
		assertErrCode(t, err, constant.ErrInvalidRequest)
	})

	t.Run("no order opened yet", func(t *testing.T) {
		bookingRepo := bookingmocks.NewBookingRepository(t)
		bookingRepo.On("GetByID", mock.Anything, "b-1").Return(ownedBooking(), nil).Once()

		app := apppayment.NewPaymentApp(testConfig(), bookingRepo, paymentmocks.NewClient(t))
		_, err := app.VerifyPayment(context.Background(), "u-1", paidRequest)
		assertErrCode(t, err, constant.ErrInvalidRequest)
	})

	t.Run("someone else's booking is forbidden", func(t *testing.T) {
		bookingRepo := bookingmocks.NewBookingRepository(t)
		bookingRepo.On("GetByID", mock.Anything, "b-1").Return(withOrder(), nil).Once()

		app := apppayment.NewPaymentApp(testConfig(), bookingRepo, paymentmocks.NewClient(t))
		_, err := app.VerifyPayment(context.Background(), "u-2", paidRequest)
		assertErrCode(t, err, constant.ErrForbidden)
	})
}
