package services

import (
	"testing"

	"safarpay/internal/domain/models"
)

func TestReceiptServiceGenerate(t *testing.T) {
	svc := ReceiptService{
		SettlementLoader: func(id int64) (models.Settlement, models.User, error) {
			return models.Settlement{
				ID:                   id,
				OwnerID:              5,
				Amount:               54,
				PaymentMethod:        "evcplus",
				PaymentDetails:       "2526114455",
				Status:               "completed",
				TransactionReference: "WFP-123",
				RequestedAt:          "2026-08-30 10:00:00",
				ProcessedAt:          "2026-08-31 09:00:00",
			}, models.User{ID: 5, Name: "Asha", Phone: "2526114455"}, nil
		},
		BookingLoader: func(id int64) (models.Booking, models.Trip, error) {
			return models.Booking{
					ID:            id,
					TripID:        7,
					SeatsBooked:   3,
					TotalAmount:   60,
					PaymentMethod: "evcplus",
					TransactionID: "TX-1",
				}, models.Trip{
					ID:          7,
					Origin:      "Mogadishu",
					Destination: "Baidoa",
					Price:       20,
				}, nil
		},
	}

	pdf, filename, err := svc.SettlementReceipt(9)
	if err != nil {
		t.Fatalf("SettlementReceipt returned error: %v", err)
	}
	if len(pdf) == 0 || filename != "settlement-9.pdf" {
		t.Fatalf("SettlementReceipt returned empty data or wrong name %q", filename)
	}

	ticket, name, err := svc.BookingETicket(12)
	if err != nil {
		t.Fatalf("BookingETicket returned error: %v", err)
	}
	if len(ticket) == 0 || name != "eticket-12.pdf" {
		t.Fatalf("BookingETicket returned empty data or wrong name %q", name)
	}
}
