package repositories

import (
	"database/sql"

	intconfig "safarpay/internal/config"
	"safarpay/internal/domain"
	"safarpay/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `
	id, trip_id, rider_id, seats_booked, total_amount, system_fee,
	owner_earnings, payment_status, payment_method, transaction_id,
	COALESCE(settlement_id, 0), COALESCE(created_at, '')`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.TripID, &b.RiderID, &b.SeatsBooked, &b.TotalAmount,
		&b.SystemFee, &b.OwnerEarnings, &b.PaymentStatus, &b.PaymentMethod,
		&b.TransactionID, &b.SettlementID, &b.CreatedAt)
	return b, err
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	b, err := scanBooking(r.db().QueryRow(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE id = ?
		LIMIT 1
	`, id))
	if err == sql.ErrNoRows {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "query booking failed", Err: err}
	}
	return b, nil
}

// GetByTransactionID looks a booking up by its gateway transaction id, used
// to make registration retries after a successful payment idempotent.
func (r BookingRepository) GetByTransactionID(txID string) (models.Booking, error) {
	b, err := scanBooking(r.db().QueryRow(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE transaction_id = ?
		LIMIT 1
	`, txID))
	if err == sql.ErrNoRows {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "query booking failed", Err: err}
	}
	return b, nil
}

func (r BookingRepository) ListByRider(riderID int64) ([]models.Booking, error) {
	rows, err := r.db().Query(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE rider_id = ?
		ORDER BY id DESC
	`, riderID)
	if err != nil {
		return nil, domain.InternalError{Msg: "query rider bookings failed", Err: err}
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "scan booking failed", Err: err}
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Register decrements the trip's remaining seats and inserts the booking in
// one transaction. A trip without enough seats left yields a conflict.
func (r BookingRepository) Register(b models.Booking) (int64, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return 0, domain.InternalError{Msg: "begin tx failed", Err: err}
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE trips SET seats_left = seats_left - ?
		WHERE id = ? AND seats_left >= ?
	`, b.SeatsBooked, b.TripID, b.SeatsBooked)
	if err != nil {
		return 0, domain.InternalError{Msg: "update seats failed", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, domain.ConflictError{Resource: "trip", Msg: "not enough seats left"}
	}

	res, err = tx.Exec(`
		INSERT INTO bookings
			(trip_id, rider_id, seats_booked, total_amount, system_fee,
			 owner_earnings, payment_status, payment_method, transaction_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.TripID, b.RiderID, b.SeatsBooked, b.TotalAmount, b.SystemFee,
		b.OwnerEarnings, b.PaymentStatus, b.PaymentMethod, b.TransactionID)
	if err != nil {
		return 0, domain.InternalError{Msg: "insert booking failed", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Msg: "read insert id failed", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return 0, domain.InternalError{Msg: "commit failed", Err: err}
	}
	return id, nil
}
