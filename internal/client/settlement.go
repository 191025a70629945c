package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"safarpay/internal/domain"
	"safarpay/internal/domain/models"

	"golang.org/x/sync/errgroup"
)

// ErrNoBalance is returned when a withdrawal is attempted with nothing to
// withdraw. No request is sent in that case.
var ErrNoBalance = errors.New("no pending earnings to withdraw")

// SettlementFlow is the owner's withdrawal screen: pending balance, stored
// payout destinations, and settlement history.
type SettlementFlow struct {
	api *Client

	PendingBalance float64
	PaymentDetails models.PaymentDetails
	History        []models.Settlement
}

func NewSettlementFlow(api *Client) *SettlementFlow {
	return &SettlementFlow{api: api}
}

// Refresh loads balance and history concurrently. On failure the last-known
// values stay in place and a single error is returned. Refresh is also the
// reconciliation point after an optimistic update: whatever the server says
// wins.
func (f *SettlementFlow) Refresh(ctx context.Context) error {
	var (
		balance float64
		details models.PaymentDetails
		history []models.Settlement
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		balance, details, err = f.fetchBalance(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = f.fetchHistory(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load settlement data: %w", err)
	}

	f.PendingBalance = balance
	f.PaymentDetails = details
	f.History = history
	return nil
}

// fetchBalance tolerates both wire shapes: a top-level pendingBalance field
// or one nested under a summary object. Anything else is rejected rather
// than silently read as zero.
func (f *SettlementFlow) fetchBalance(ctx context.Context) (float64, models.PaymentDetails, error) {
	var resp struct {
		PendingBalance *float64 `json:"pendingBalance"`
		Summary        *struct {
			PendingBalance *float64 `json:"pendingBalance"`
		} `json:"summary"`
		PaymentDetails *models.PaymentDetails `json:"paymentDetails"`
	}
	if err := f.api.do(ctx, http.MethodGet, "/settlements/owner", nil, &resp); err != nil {
		return 0, models.PaymentDetails{}, err
	}

	var balance float64
	switch {
	case resp.PendingBalance != nil:
		balance = *resp.PendingBalance
	case resp.Summary != nil && resp.Summary.PendingBalance != nil:
		balance = *resp.Summary.PendingBalance
	default:
		return 0, models.PaymentDetails{}, errors.New("unrecognized balance payload")
	}

	details := f.PaymentDetails
	if resp.PaymentDetails != nil {
		details = *resp.PaymentDetails
	}
	return balance, details, nil
}

// fetchHistory accepts a bare array or a {data: [...]} envelope.
func (f *SettlementFlow) fetchHistory(ctx context.Context) ([]models.Settlement, error) {
	var raw json.RawMessage
	if err := f.api.do(ctx, http.MethodGet, "/settlements/history", nil, &raw); err != nil {
		return nil, err
	}
	return normalizeList[models.Settlement](raw, "data")
}

// Destination returns the payout destination stored for a method.
func (f *SettlementFlow) Destination(method string) string {
	if method == domain.MethodEVCPlus {
		return f.PaymentDetails.EVCPlus
	}
	return f.PaymentDetails.Bank
}

// RequestWithdrawal submits a settlement request for the full pending
// balance. On success the local balance is optimistically zeroed without
// waiting for a re-fetch; the returned amount is the server's confirmed
// figure, falling back to the pre-request balance when the server omits it.
func (f *SettlementFlow) RequestWithdrawal(ctx context.Context, method string) (float64, error) {
	if f.PendingBalance <= 0 {
		return 0, ErrNoBalance
	}

	body := map[string]string{
		"paymentMethod":  method,
		"paymentDetails": f.Destination(method),
	}
	var resp struct {
		Settlement *struct {
			ID     int64    `json:"id"`
			Amount *float64 `json:"amount"`
		} `json:"settlement"`
	}
	if err := f.api.do(ctx, http.MethodPost, "/settlements/request", body, &resp); err != nil {
		return 0, err
	}

	approved := f.PendingBalance
	if resp.Settlement != nil && resp.Settlement.Amount != nil {
		approved = *resp.Settlement.Amount
	}
	f.PendingBalance = 0
	return approved, nil
}

// normalizeList accepts either a bare JSON array or an object wrapping the
// array under the given key. Unknown shapes fail explicitly.
func normalizeList[T any](raw json.RawMessage, key string) ([]T, error) {
	var items []T
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if inner, ok := wrapped[key]; ok {
			if err := json.Unmarshal(inner, &items); err == nil {
				return items, nil
			}
		}
	}
	return nil, fmt.Errorf("unrecognized %s payload", key)
}
