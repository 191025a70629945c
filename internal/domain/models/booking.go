package models

// Booking is a rider's paid reservation on a trip. Amounts are recorded at
// registration time: totalAmount = price x seats, systemFee is the 10%
// platform share, ownerEarnings the remainder.
type Booking struct {
	ID            int64   `json:"id"`
	TripID        int64   `json:"tripId"`
	RiderID       int64   `json:"riderId"`
	SeatsBooked   int     `json:"seatsBooked"`
	TotalAmount   float64 `json:"totalAmount"`
	SystemFee     float64 `json:"systemFee"`
	OwnerEarnings float64 `json:"ownerEarnings"`
	PaymentStatus string  `json:"paymentStatus"`
	PaymentMethod string  `json:"paymentMethod"`
	TransactionID string  `json:"transactionId"`
	SettlementID  int64   `json:"settlementId,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
}
