package models

// Settlement is an owner's request to withdraw accrued earnings. Status
// moves requested -> completed via admin approval only.
type Settlement struct {
	ID                   int64     `json:"id"`
	OwnerID              int64     `json:"ownerId"`
	Amount               float64   `json:"amount"`
	PaymentMethod        string    `json:"paymentMethod"`
	PaymentDetails       string    `json:"paymentDetails"`
	Status               string    `json:"status"`
	TransactionReference string    `json:"transactionReference,omitempty"`
	AdminNotes           *string   `json:"adminNotes,omitempty"`
	RequestedAt          string    `json:"requestedAt"`
	ProcessedAt          string    `json:"processedAt,omitempty"`
	Owner                *User     `json:"owner,omitempty"`
	Bookings             []Booking `json:"bookings,omitempty"`
}

// OwnerSummary is the owner-facing balance projection. pendingBalance is
// duplicated at the top level and inside summary so older clients that read
// either shape keep working.
type OwnerSummary struct {
	PendingBalance float64 `json:"pendingBalance"`
	TotalEarned    float64 `json:"totalEarned"`
	TotalWithdrawn float64 `json:"totalWithdrawn"`
}
