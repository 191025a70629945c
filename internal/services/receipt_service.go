package services

import (
	"bytes"
	"fmt"
	"strings"

	"safarpay/internal/domain"
	"safarpay/internal/domain/models"
	"safarpay/internal/repositories"
	"safarpay/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService renders settlement receipts and booking e-tickets as PDFs.
type ReceiptService struct {
	SettlementRepo repositories.SettlementRepository
	BookingRepo    repositories.BookingRepository
	TripRepo       repositories.TripRepository
	UserRepo       repositories.UserRepository
	RequestID      string

	// Loaders can be injected by tests to bypass the database.
	SettlementLoader func(int64) (models.Settlement, models.User, error)
	BookingLoader    func(int64) (models.Booking, models.Trip, error)
}

// SettlementReceipt renders the payout receipt for a completed settlement.
func (s ReceiptService) SettlementReceipt(settlementID int64) ([]byte, string, error) {
	settlement, owner, err := s.loadSettlement(settlementID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "receipt", "settlement", fmt.Sprintf("settlement_id=%d", settlementID))
	return buildSettlementPDF(settlement, owner)
}

// BookingETicket renders the rider's e-ticket for a paid booking.
func (s ReceiptService) BookingETicket(bookingID int64) ([]byte, string, error) {
	booking, trip, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "receipt", "eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(booking, trip)
}

func (s ReceiptService) loadSettlement(id int64) (models.Settlement, models.User, error) {
	if s.SettlementLoader != nil {
		return s.SettlementLoader(id)
	}
	settlement, err := s.SettlementRepo.GetByID(id)
	if err != nil {
		return models.Settlement{}, models.User{}, err
	}
	owner, err := s.UserRepo.GetByID(settlement.OwnerID)
	if err != nil && !domain.IsNotFound(err) {
		return models.Settlement{}, models.User{}, err
	}
	return settlement, owner, nil
}

func (s ReceiptService) loadBooking(id int64) (models.Booking, models.Trip, error) {
	if s.BookingLoader != nil {
		return s.BookingLoader(id)
	}
	booking, err := s.BookingRepo.GetByID(id)
	if err != nil {
		return models.Booking{}, models.Trip{}, err
	}
	trip, err := s.TripRepo.GetByID(booking.TripID)
	if err != nil {
		return models.Booking{}, models.Trip{}, err
	}
	return booking, trip, nil
}

func buildSettlementPDF(s models.Settlement, owner models.User) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Settlement Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SETTLEMENT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Settlement   : #%d", s.ID),
		fmt.Sprintf("Owner        : %s", safe(owner.Name, "-")),
		fmt.Sprintf("Contact      : %s", safe(owner.Phone, "-")),
		fmt.Sprintf("Amount       : %s", utils.FormatUSD(s.Amount)),
		fmt.Sprintf("Method       : %s", utils.PaymentMethodLabel(s.PaymentMethod)),
		fmt.Sprintf("Destination  : %s", safe(s.PaymentDetails, "-")),
		fmt.Sprintf("Status       : %s", safe(s.Status, "-")),
		fmt.Sprintf("Reference    : %s", safe(s.TransactionReference, "-")),
		fmt.Sprintf("Requested    : %s", safe(s.RequestedAt, "-")),
		fmt.Sprintf("Processed    : %s", safe(s.ProcessedAt, "-")),
		fmt.Sprintf("Bookings     : %d", len(s.Bookings)),
		fmt.Sprintf("Generated    : %s", utils.FormatDateTime(utils.NowUTC())),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "render receipt failed", Err: err}
	}
	return buf.Bytes(), fmt.Sprintf("settlement-%d.pdf", s.ID), nil
}

func buildETicketPDF(b models.Booking, t models.Trip) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking      : #%d", b.ID),
		fmt.Sprintf("Route        : %s -> %s", safe(t.Origin, "-"), safe(t.Destination, "-")),
		fmt.Sprintf("Seats        : %d", b.SeatsBooked),
		fmt.Sprintf("Total        : %s", utils.FormatUSD(b.TotalAmount)),
		fmt.Sprintf("Paid via     : %s", utils.PaymentMethodLabel(b.PaymentMethod)),
		fmt.Sprintf("Transaction  : %s", safe(b.TransactionID, "-")),
		fmt.Sprintf("Booked at    : %s", safe(b.CreatedAt, "-")),
		fmt.Sprintf("Generated    : %s", utils.FormatDateTime(utils.NowUTC())),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "render e-ticket failed", Err: err}
	}
	return buf.Bytes(), fmt.Sprintf("eticket-%d.pdf", b.ID), nil
}

func safe(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
