package models

// User is an account on the marketplace: rider, trip owner, or admin.
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// PaymentDetails are the owner's stored payout destinations.
type PaymentDetails struct {
	EVCPlus string `json:"evcplus"`
	Bank    string `json:"bank"`
}
