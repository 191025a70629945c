package models

// Trip is an offered route with per-seat price and remaining capacity.
type Trip struct {
	ID          int64   `json:"id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Price       float64 `json:"price"`
	SeatsTotal  int     `json:"seatsTotal"`
	SeatsLeft   int     `json:"seatsLeft"`
	OwnerID     int64   `json:"ownerId"`
	OwnerPhone  string  `json:"ownerPhone,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}
