package services

import (
	"testing"

	"safarpay/internal/domain"
	"safarpay/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectSummary(mock sqlmock.Sqlmock, ownerID int64, pending, earned, withdrawn float64) {
	mock.ExpectQuery("SELECT(.+)FROM bookings b").
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"pending", "earned"}).AddRow(pending, earned))
	mock.ExpectQuery("SELECT(.+)FROM settlements").
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"withdrawn"}).AddRow(withdrawn))
}

func TestSettlementRequestWithdrawsFullPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectSummary(mock, 5, 54, 154, 100)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO settlements").
		WithArgs(int64(5), 54.0, "evcplus", "2526114455").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("UPDATE bookings b").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	svc := SettlementService{SettlementRepo: repositories.SettlementRepository{DB: db}}
	out, err := svc.Request(5, "EVCPlus", " 2526114455 ")
	if err != nil {
		t.Fatalf("Request error: %v", err)
	}
	if out.ID != 9 || out.Amount != 54 || out.Status != domain.SettlementRequested {
		t.Fatalf("unexpected settlement: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSettlementRequestRejectsZeroBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectSummary(mock, 5, 0, 154, 154)

	svc := SettlementService{SettlementRepo: repositories.SettlementRepository{DB: db}}
	if _, err := svc.Request(5, "evcplus", "2526114455"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	// no INSERT may run when balance is zero
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSettlementRequestValidatesMethod(t *testing.T) {
	svc := SettlementService{}
	if _, err := svc.Request(5, "paypal", "x"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown method, got %v", err)
	}
	if _, err := svc.Request(5, "bank", "   "); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for blank details, got %v", err)
	}
}

func TestApproveRequiresReference(t *testing.T) {
	svc := SettlementService{}
	if err := svc.Approve(9, "   ", "notes"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for blank reference, got %v", err)
	}
}

func TestApproveNormalizesBlankNotesToNull(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE settlements").
		WithArgs("WFP-123", nil, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := SettlementService{SettlementRepo: repositories.SettlementRepository{DB: db}}
	if err := svc.Approve(9, " WFP-123 ", "   "); err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
