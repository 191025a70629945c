package services

import (
	"testing"

	"safarpay/internal/domain"
	"safarpay/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func tripRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "origin", "destination", "price",
		"seats_total", "seats_left", "owner_id", "phone", "created_at"})
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "trip_id", "rider_id", "seats_booked",
		"total_amount", "system_fee", "owner_earnings", "payment_status",
		"payment_method", "transaction_id", "settlement_id", "created_at"})
}

func TestRegisterBookingComputesFeeSplit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// no prior booking for this transaction
	mock.ExpectQuery("SELECT(.+)FROM bookings").
		WithArgs("TX-1").
		WillReturnRows(bookingRows())
	mock.ExpectQuery("SELECT(.+)FROM trips t").
		WithArgs(int64(7)).
		WillReturnRows(tripRows().AddRow(7, "Mogadishu", "Baidoa", 20.0, 10, 8, 5, "2526114455", ""))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trips SET seats_left").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(7), int64(4), 3, 60.0, 6.0, 54.0, "paid", "evcplus", "TX-1").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		TripRepo:    repositories.TripRepository{DB: db},
	}
	b, err := svc.Register(4, RegisterBookingInput{
		TripID:        7,
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
	if b.ID != 12 || b.TotalAmount != 60 || b.SystemFee != 6 || b.OwnerEarnings != 54 {
		t.Fatalf("unexpected booking: %+v", b)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterBookingRejectsMismatchedAmounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT(.+)FROM bookings").
		WithArgs("TX-2").
		WillReturnRows(bookingRows())
	mock.ExpectQuery("SELECT(.+)FROM trips t").
		WithArgs(int64(7)).
		WillReturnRows(tripRows().AddRow(7, "Mogadishu", "Baidoa", 20.0, 10, 8, 5, "2526114455", ""))

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		TripRepo:    repositories.TripRepository{DB: db},
	}
	_, err = svc.Register(4, RegisterBookingInput{
		TripID:        7,
		SeatsBooked:   3,
		TotalAmount:   55, // client lied: 3 x $20 is $60
		SystemFee:     5.5,
		OwnerEarnings: 49.5,
		PaymentStatus: "paid",
		PaymentMethod: "evcplus",
		TransactionID: "TX-2",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterBookingIdempotentOnTransactionID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT(.+)FROM bookings").
		WithArgs("TX-3").
		WillReturnRows(bookingRows().
			AddRow(12, 7, 4, 3, 60.0, 6.0, 54.0, "paid", "evcplus", "TX-3", 0, ""))

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		TripRepo:    repositories.TripRepository{DB: db},
	}
	b, err := svc.Register(4, RegisterBookingInput{
		TripID:        7,
		SeatsBooked:   3,
		TotalAmount:   60,
		SystemFee:     6,
		OwnerEarnings: 54,
		PaymentStatus: "paid",
		PaymentMethod: "evcplus",
		TransactionID: "TX-3",
	})
	if err != nil {
		t.Fatalf("Register retry error: %v", err)
	}
	if b.ID != 12 {
		t.Fatalf("expected existing booking 12, got %d", b.ID)
	}
	// no seat update or insert must happen on the retry path
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterBookingValidatesInput(t *testing.T) {
	svc := BookingService{}
	cases := []RegisterBookingInput{
		{TripID: 0, SeatsBooked: 1, TransactionID: "x", PaymentStatus: "paid"},
		{TripID: 1, SeatsBooked: 0, TransactionID: "x", PaymentStatus: "paid"},
		{TripID: 1, SeatsBooked: 1, TransactionID: "  ", PaymentStatus: "paid"},
		{TripID: 1, SeatsBooked: 1, TransactionID: "x", PaymentStatus: "unpaid"},
	}
	for i, in := range cases {
		if _, err := svc.Register(4, in); !domain.IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}
