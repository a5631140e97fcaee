package model

// CreateOrderRequest asks the payment gateway for a new order.
type CreateOrderRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
}

type CreateOrderResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int    `json:"amount"`   // smallest currency unit
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

// VerifyPaymentRequest carries the gateway callback fields. The signature is
// an HMAC-SHA256 over "orderID|paymentID" with the gateway secret.
type VerifyPaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

type VerifyPaymentResponse struct {
	Verified bool `json:"verified"`
}
