package services

import (
	"fmt"
	"math"
	"strings"

	"safarpay/internal/domain"
	"safarpay/internal/domain/models"
	"safarpay/internal/repositories"
	"safarpay/internal/utils"
)

// BookingService registers paid bookings. Payment itself happens at the
// gateway before registration; this service only records the result and
// keeps the fee split honest.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	TripRepo    repositories.TripRepository
	RequestID   string
}

type RegisterBookingInput struct {
	TripID        int64   `json:"tripId"`
	SeatsBooked   int     `json:"seatsBooked"`
	TotalAmount   float64 `json:"totalAmount"`
	SystemFee     float64 `json:"systemFee"`
	OwnerEarnings float64 `json:"ownerEarnings"`
	PaymentStatus string  `json:"paymentStatus"`
	PaymentMethod string  `json:"paymentMethod"`
	TransactionID string  `json:"transactionId"`
}

// Register validates and persists a booking. Registering the same gateway
// transaction twice returns the first booking unchanged, so a client retry
// after a network failure cannot double-book seats that are already paid for.
func (s BookingService) Register(riderID int64, in RegisterBookingInput) (models.Booking, error) {
	if in.TripID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "tripId", Msg: "trip is required"}
	}
	if in.SeatsBooked <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "seatsBooked", Msg: "at least one seat is required"}
	}
	if strings.TrimSpace(in.TransactionID) == "" {
		return models.Booking{}, domain.ValidationError{Field: "transactionId", Msg: "transaction id is required"}
	}
	if in.PaymentStatus != domain.PaymentPaid {
		return models.Booking{}, domain.ValidationError{Field: "paymentStatus", Msg: "only paid bookings are registered"}
	}

	if existing, err := s.BookingRepo.GetByTransactionID(in.TransactionID); err == nil {
		utils.LogEvent(s.RequestID, "booking", "register",
			fmt.Sprintf("duplicate transaction_id=%s booking_id=%d", in.TransactionID, existing.ID))
		return existing, nil
	} else if !domain.IsNotFound(err) {
		return models.Booking{}, err
	}

	trip, err := s.TripRepo.GetByID(in.TripID)
	if err != nil {
		return models.Booking{}, err
	}

	total := utils.RoundCents(trip.Price * float64(in.SeatsBooked))
	fee, earnings := utils.SplitFee(total)
	if !centsEqual(in.TotalAmount, total) || !centsEqual(in.SystemFee, fee) || !centsEqual(in.OwnerEarnings, earnings) {
		return models.Booking{}, domain.ValidationError{
			Field: "totalAmount",
			Msg:   fmt.Sprintf("amounts do not match trip price (expected total %s)", utils.FormatMoney(total)),
		}
	}

	booking := models.Booking{
		TripID:        in.TripID,
		RiderID:       riderID,
		SeatsBooked:   in.SeatsBooked,
		TotalAmount:   total,
		SystemFee:     fee,
		OwnerEarnings: earnings,
		PaymentStatus: domain.PaymentPaid,
		PaymentMethod: in.PaymentMethod,
		TransactionID: in.TransactionID,
	}

	id, err := s.BookingRepo.Register(booking)
	if err != nil {
		return models.Booking{}, err
	}
	booking.ID = id

	utils.LogEvent(s.RequestID, "booking", "register",
		fmt.Sprintf("booking_id=%d trip_id=%d seats=%d total=%s", id, in.TripID, in.SeatsBooked, utils.FormatMoney(total)))
	return booking, nil
}

func (s BookingService) ListMine(riderID int64) ([]models.Booking, error) {
	return s.BookingRepo.ListByRider(riderID)
}

func centsEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}
