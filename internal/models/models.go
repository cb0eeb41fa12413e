package models

// PaymentStatus is the backend-reported status of a payment attempt.
// Unknown is client-side only: it is the fallback when the status lookup
// itself fails or the backend sends a string we do not recognize.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusUnknown   PaymentStatus = "unknown"
)

func ParsePaymentStatus(s string) PaymentStatus {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return PaymentStatus(s)
	default:
		return PaymentStatusUnknown
	}
}

// VerificationState is the superset of PaymentStatus rendered on the
// callback page. Verifying means no answer yet; Error means the
// verification call itself failed, distinct from a failed payment.
type VerificationState string

const (
	VerificationVerifying VerificationState = "verifying"
	VerificationCompleted VerificationState = "completed"
	VerificationPending   VerificationState = "pending"
	VerificationFailed    VerificationState = "failed"
	VerificationError     VerificationState = "error"
)

// OrderData is the order-creation request sent to the backend. Amount is
// whole Naira, no minor units. Amount 0 is only valid alongside an applied
// discount code.
type OrderData struct {
	Name         string `json:"name"`
	CardLink     string `json:"cardLink"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Currency     string `json:"currency"`
	Email        string `json:"email"`
	Amount       int64  `json:"amount"`
	DiscountCode string `json:"discountCode,omitempty"`
}

// OrderSnapshot is the backend's view of a created order.
type OrderSnapshot struct {
	ID            string        `json:"_id"`
	Name          string        `json:"name"`
	CardLink      string        `json:"cardLink"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	City          string        `json:"city"`
	State         string        `json:"state"`
	Country       string        `json:"country"`
	Currency      string        `json:"currency"`
	Email         string        `json:"email"`
	Amount        int64         `json:"amount"`
	TransactionID string        `json:"transactionId"`
	Reference     string        `json:"reference"`
	Status        PaymentStatus `json:"status"`
	Discount      string        `json:"discount,omitempty"`
	CreatedAt     string        `json:"createdAt"`
}

type OrderResponse struct {
	Success    bool          `json:"success"`
	Message    string        `json:"message"`
	Data       OrderSnapshot `json:"data"`
	PaymentURL string        `json:"paymentUrl,omitempty"`
	Reference  string        `json:"reference,omitempty"`
}

type DiscountValidationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		ID          string `json:"_id"`
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"data"`
}

type OrderStatusResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Status string        `json:"status"`
		Order  OrderSnapshot `json:"order"`
	} `json:"data"`
}
