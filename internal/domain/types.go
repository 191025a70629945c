package domain

// ID is used across domain entities.
type ID = int64

// Payment methods accepted for settlements.
const (
	MethodEVCPlus = "evcplus"
	MethodBank    = "bank"
)

// Settlement statuses. The backend moves a settlement forward only through
// an admin approval; the client never mutates status locally.
const (
	SettlementRequested = "requested"
	SettlementCompleted = "completed"
	SettlementFailed    = "failed"
)

// Booking payment statuses.
const (
	PaymentPaid = "paid"
)

// Roles recognized by the auth middleware.
const (
	RoleRider = "rider"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}

// ValidMethod reports whether a payout method is one of the two known values.
func ValidMethod(m string) bool {
	return m == MethodEVCPlus || m == MethodBank
}
