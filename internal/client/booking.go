package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"safarpay/internal/domain/models"
	"safarpay/internal/utils"
	"safarpay/internal/waafipay"
)

// ErrMissingFields gates submission: no trip or no seats means no payment
// attempt.
var ErrMissingFields = errors.New("select a trip and enter the number of seats")

// TripOption is a selectable route in the booking form.
type TripOption struct {
	Label string
	Value int64
}

// BookingFlow is the rider's booking form: pick a trip, enter seats, pay via
// the wallet gateway, then register the paid booking with the backend.
type BookingFlow struct {
	api     *Client
	gateway *waafipay.Client

	PayerPhone string

	trips   []models.Trip
	Options []TripOption

	TripID int64
	Seats  string
}

func NewBookingFlow(api *Client, gateway *waafipay.Client, payerPhone string) *BookingFlow {
	return &BookingFlow{api: api, gateway: gateway, PayerPhone: payerPhone}
}

// LoadTrips fetches the public catalog and rebuilds the selector options as
// "origin → destination" labels.
func (f *BookingFlow) LoadTrips(ctx context.Context) error {
	var raw json.RawMessage
	if err := f.api.do(ctx, http.MethodGet, "/trips/public", nil, &raw); err != nil {
		return err
	}
	trips, err := normalizeList[models.Trip](raw, "trips")
	if err != nil {
		return err
	}

	f.trips = trips
	f.Options = make([]TripOption, 0, len(trips))
	for _, tr := range trips {
		f.Options = append(f.Options, TripOption{
			Label: fmt.Sprintf("%s → %s (%s)", tr.Origin, tr.Destination, utils.FormatUSD(tr.Price)),
			Value: tr.ID,
		})
	}
	return nil
}

// SelectedTrip returns the trip the form currently points at, or nil.
func (f *BookingFlow) SelectedTrip() *models.Trip {
	for i := range f.trips {
		if f.trips[i].ID == f.TripID {
			return &f.trips[i]
		}
	}
	return nil
}

// Total recomputes the displayed amount from the selected trip and the seats
// field. Unparseable or empty seats read as zero, so the total is zero rather
// than an error while the rider is still typing.
func (f *BookingFlow) Total() float64 {
	trip := f.SelectedTrip()
	if trip == nil {
		return 0
	}
	return utils.RoundCents(trip.Price * float64(utils.ParseSeats(f.Seats)))
}

// BookingResult is what a completed submission reports back to the screen.
type BookingResult struct {
	BookingID     int64
	TransactionID string
	Total         float64
	SystemFee     float64
	OwnerEarnings float64
}

// Submit runs the full payment-then-register sequence. Validation failures
// and gateway rejections happen before any booking is created; a gateway
// error therefore never leaves a half-registered booking behind. Capacity is
// not checked here: the catalog snapshot may be stale, and the backend
// enforces seat availability at registration time. On success the form
// resets for the next booking.
func (f *BookingFlow) Submit(ctx context.Context) (BookingResult, error) {
	trip := f.SelectedTrip()
	seats := utils.ParseSeats(f.Seats)
	if trip == nil || seats <= 0 {
		return BookingResult{}, ErrMissingFields
	}

	total := utils.RoundCents(trip.Price * float64(seats))
	fee, earnings := utils.SplitFee(total)

	pay, err := f.gateway.Purchase(ctx, waafipay.PurchaseInput{
		PayerPhone:  f.PayerPhone,
		ReferenceID: fmt.Sprintf("trip_%d", trip.ID),
		InvoiceID:   "inv_" + strconv.FormatInt(time.Now().UnixMilli(), 10),
		Amount:      total,
		Description: fmt.Sprintf("Payment for %d seat(s) on trip %d", seats, trip.ID),
	})
	if err != nil {
		return BookingResult{}, err
	}

	transactionID := pay.TransactionID
	if transactionID == "" {
		transactionID = pay.RequestID
	}

	body := map[string]any{
		"tripId":        trip.ID,
		"seatsBooked":   seats,
		"totalAmount":   total,
		"systemFee":     fee,
		"ownerEarnings": earnings,
		"paymentStatus": "paid",
		"paymentMethod": "evcplus",
		"transactionId": transactionID,
	}
	var resp struct {
		Booking *struct {
			ID int64 `json:"id"`
		} `json:"booking"`
	}
	if err := f.api.do(ctx, http.MethodPost, "/bookings/registerBooking", body, &resp); err != nil {
		return BookingResult{}, fmt.Errorf("payment succeeded but booking registration failed: %w", err)
	}

	result := BookingResult{
		TransactionID: transactionID,
		Total:         total,
		SystemFee:     fee,
		OwnerEarnings: earnings,
	}
	if resp.Booking != nil {
		result.BookingID = resp.Booking.ID
	}

	f.TripID = 0
	f.Seats = ""
	return result, nil
}
