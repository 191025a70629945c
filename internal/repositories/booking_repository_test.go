package repositories

import (
	"testing"

	"safarpay/internal/domain"
	"safarpay/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestBookingRegisterDecrementsSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trips SET seats_left").
		WithArgs(3, int64(7), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	repo := BookingRepository{DB: db}
	id, err := repo.Register(models.Booking{
		TripID:        7,
		RiderID:       4,
		SeatsBooked:   3,
		TotalAmount:   60,
		SystemFee:     6,
		OwnerEarnings: 54,
		PaymentStatus: "paid",
		PaymentMethod: "evcplus",
		TransactionID: "TX-1",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if id != 12 {
		t.Fatalf("Register id = %d, want 12", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingRegisterSeatConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trips SET seats_left").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := BookingRepository{DB: db}
	_, err = repo.Register(models.Booking{TripID: 7, SeatsBooked: 5})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingGetByTransactionID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	cols := []string{"id", "trip_id", "rider_id", "seats_booked", "total_amount",
		"system_fee", "owner_earnings", "payment_status", "payment_method",
		"transaction_id", "settlement_id", "created_at"}
	mock.ExpectQuery("SELECT(.+)FROM bookings").
		WithArgs("TX-9").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(3, 7, 4, 2, 40.0, 4.0, 36.0, "paid", "evcplus", "TX-9", 0, ""))

	repo := BookingRepository{DB: db}
	b, err := repo.GetByTransactionID("TX-9")
	if err != nil {
		t.Fatalf("GetByTransactionID error: %v", err)
	}
	if b.ID != 3 || b.OwnerEarnings != 36 {
		t.Fatalf("unexpected booking: %+v", b)
	}

	mock.ExpectQuery("SELECT(.+)FROM bookings").
		WithArgs("TX-missing").
		WillReturnRows(sqlmock.NewRows(cols))
	if _, err := repo.GetByTransactionID("TX-missing"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
