package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"safarpay/internal/domain/models"
	"safarpay/internal/utils"
)

// ApprovalState is the admin approval screen's modal lifecycle.
type ApprovalState int

const (
	StateIdle ApprovalState = iota
	StateModalOpen
	StateSubmitting
)

var (
	// ErrMissingReference gates confirmation: no transaction reference, no
	// network call.
	ErrMissingReference = errors.New("transaction reference is required")

	errBusy          = errors.New("approval already submitting")
	errNotModalState = errors.New("no approval modal open")
)

// ApprovalItem is what one pending request renders as in the list.
type ApprovalItem struct {
	ID           int64
	OwnerName    string
	MethodLabel  string
	Amount       float64
	RequestedAt  string
	BookingCount int
}

// ApprovalSession drives the admin approval board: load the pending list,
// open one request, confirm it with a payout reference, or cancel.
type ApprovalSession struct {
	api *Client

	state    ApprovalState
	Pending  []models.Settlement
	selected *models.Settlement

	TransactionRef string
	AdminNotes     string
}

func NewApprovalSession(api *Client) *ApprovalSession {
	return &ApprovalSession{api: api}
}

func (s *ApprovalSession) State() ApprovalState { return s.state }

// Load fetches the outstanding requests. The endpoint returns a bare array
// in server order; no client-side sorting is applied.
func (s *ApprovalSession) Load(ctx context.Context) error {
	var raw json.RawMessage
	if err := s.api.do(ctx, http.MethodGet, "/settlements/approvals", nil, &raw); err != nil {
		return err
	}
	items, err := normalizeList[models.Settlement](raw, "data")
	if err != nil {
		return err
	}
	s.Pending = items
	return nil
}

// Items projects the pending list into display rows.
func (s *ApprovalSession) Items() []ApprovalItem {
	out := make([]ApprovalItem, 0, len(s.Pending))
	for _, p := range s.Pending {
		name := "Unknown"
		if p.Owner != nil && strings.TrimSpace(p.Owner.Name) != "" {
			name = p.Owner.Name
		}
		out = append(out, ApprovalItem{
			ID:           p.ID,
			OwnerName:    name,
			MethodLabel:  utils.PaymentMethodLabel(p.PaymentMethod),
			Amount:       p.Amount,
			RequestedAt:  p.RequestedAt,
			BookingCount: len(p.Bookings),
		})
	}
	return out
}

// Open selects a pending request and opens the approval modal pre-populated
// from its snapshot.
func (s *ApprovalSession) Open(id int64) error {
	if s.state == StateSubmitting {
		return errBusy
	}
	for i := range s.Pending {
		if s.Pending[i].ID == id {
			s.selected = &s.Pending[i]
			s.state = StateModalOpen
			return nil
		}
	}
	return fmt.Errorf("settlement %d is not in the pending list", id)
}

// Selected returns the request the modal is showing, or nil.
func (s *ApprovalSession) Selected() *models.Settlement {
	return s.selected
}

// Cancel closes the modal and discards entered values. Not permitted while
// a confirmation is in flight.
func (s *ApprovalSession) Cancel() error {
	if s.state == StateSubmitting {
		return errBusy
	}
	s.clearModal()
	return nil
}

// Confirm submits the approval. A blank (trimmed) transaction reference
// aborts before any network call. On success the item leaves the pending
// list and the modal closes; on failure the modal stays open with the
// entered values intact so the admin can retry or cancel.
func (s *ApprovalSession) Confirm(ctx context.Context) error {
	if s.state != StateModalOpen || s.selected == nil {
		return errNotModalState
	}
	if strings.TrimSpace(s.TransactionRef) == "" {
		return ErrMissingReference
	}

	var notes *string
	if trimmed := strings.TrimSpace(s.AdminNotes); trimmed != "" {
		notes = &trimmed
	}
	body := map[string]any{
		"transactionReference": s.TransactionRef,
		"adminNotes":           notes,
	}

	s.state = StateSubmitting
	err := s.api.do(ctx, http.MethodPost, fmt.Sprintf("/settlements/approve/%d", s.selected.ID), body, nil)
	if err != nil {
		s.state = StateModalOpen
		return err
	}

	s.removePending(s.selected.ID)
	s.clearModal()
	return nil
}

func (s *ApprovalSession) removePending(id int64) {
	kept := s.Pending[:0]
	for _, p := range s.Pending {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.Pending = kept
}

func (s *ApprovalSession) clearModal() {
	s.selected = nil
	s.TransactionRef = ""
	s.AdminNotes = ""
	s.state = StateIdle
}
