package services

import (
	"fmt"
	"strings"

	"safarpay/internal/domain"
	"safarpay/internal/domain/models"
	"safarpay/internal/repositories"
	"safarpay/internal/utils"
)

// SettlementService owns the withdrawal lifecycle: balance reads, request
// creation, and admin approval.
type SettlementService struct {
	SettlementRepo repositories.SettlementRepository
	UserRepo       repositories.UserRepository
	RequestID      string
}

// OwnerOverview returns the owner's balance summary and stored payout
// destinations for the withdrawal screen.
func (s SettlementService) OwnerOverview(ownerID int64) (models.OwnerSummary, models.PaymentDetails, error) {
	summary, err := s.SettlementRepo.OwnerSummary(ownerID)
	if err != nil {
		return models.OwnerSummary{}, models.PaymentDetails{}, err
	}
	details, err := s.UserRepo.PaymentDetails(ownerID)
	if err != nil {
		return models.OwnerSummary{}, models.PaymentDetails{}, err
	}
	return summary, details, nil
}

func (s SettlementService) History(ownerID int64) ([]models.Settlement, error) {
	return s.SettlementRepo.HistoryByOwner(ownerID)
}

// Request opens a settlement for the owner's full pending balance. The
// request always withdraws everything withdrawable; partial withdrawal is
// not offered.
func (s SettlementService) Request(ownerID int64, method, details string) (models.Settlement, error) {
	method = strings.TrimSpace(strings.ToLower(method))
	if !domain.ValidMethod(method) {
		return models.Settlement{}, domain.ValidationError{Field: "paymentMethod", Msg: "unknown payment method"}
	}
	details = utils.TrimOrEmpty(details)
	if details == "" {
		return models.Settlement{}, domain.ValidationError{Field: "paymentDetails", Msg: "payout destination is required"}
	}

	summary, err := s.SettlementRepo.OwnerSummary(ownerID)
	if err != nil {
		return models.Settlement{}, err
	}
	if summary.PendingBalance <= 0 {
		return models.Settlement{}, domain.ValidationError{Field: "amount", Msg: "no pending earnings to withdraw"}
	}

	id, err := s.SettlementRepo.CreateRequest(ownerID, summary.PendingBalance, method, details)
	if err != nil {
		return models.Settlement{}, err
	}

	utils.LogEvent(s.RequestID, "settlement", "request",
		fmt.Sprintf("settlement_id=%d owner_id=%d amount=%s method=%s", id, ownerID, utils.FormatMoney(summary.PendingBalance), method))

	return models.Settlement{
		ID:             id,
		OwnerID:        ownerID,
		Amount:         summary.PendingBalance,
		PaymentMethod:  method,
		PaymentDetails: details,
		Status:         domain.SettlementRequested,
	}, nil
}

// Approvals lists outstanding requests for the admin board.
func (s SettlementService) Approvals() ([]models.Settlement, error) {
	return s.SettlementRepo.ListRequested()
}

// Approve finalizes a requested settlement. The transaction reference is the
// payout proof from the gateway and is mandatory; blank admin notes are
// stored as NULL.
func (s SettlementService) Approve(id int64, transactionReference string, adminNotes string) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	transactionReference = utils.TrimOrEmpty(transactionReference)
	if transactionReference == "" {
		return domain.ValidationError{Field: "transactionReference", Msg: "transaction reference is required"}
	}

	var notes *string
	if trimmed := utils.TrimOrEmpty(adminNotes); trimmed != "" {
		notes = &trimmed
	}

	if err := s.SettlementRepo.Approve(id, transactionReference, notes); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "settlement", "approve",
		fmt.Sprintf("settlement_id=%d reference=%s", id, transactionReference))
	return nil
}
