package repositories

import (
	"database/sql"

	intconfig "safarpay/internal/config"
	"safarpay/internal/domain"
	"safarpay/internal/domain/models"
)

type SettlementRepository struct {
	DB *sql.DB
}

func (r SettlementRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// OwnerSummary computes the owner's withdrawable position. Pending balance
// is the sum of earnings on paid bookings not yet attached to a settlement.
func (r SettlementRepository) OwnerSummary(ownerID int64) (models.OwnerSummary, error) {
	var s models.OwnerSummary
	err := r.db().QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN b.settlement_id IS NULL THEN b.owner_earnings END), 0),
			COALESCE(SUM(b.owner_earnings), 0)
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		WHERE t.owner_id = ? AND b.payment_status = 'paid'
	`, ownerID).Scan(&s.PendingBalance, &s.TotalEarned)
	if err != nil {
		return models.OwnerSummary{}, domain.InternalError{Msg: "query owner summary failed", Err: err}
	}

	err = r.db().QueryRow(`
		SELECT COALESCE(SUM(amount), 0)
		FROM settlements
		WHERE owner_id = ? AND status = 'completed'
	`, ownerID).Scan(&s.TotalWithdrawn)
	if err != nil {
		return models.OwnerSummary{}, domain.InternalError{Msg: "query withdrawn total failed", Err: err}
	}
	return s, nil
}

const settlementColumns = `
	id, owner_id, amount, payment_method, payment_details, status,
	COALESCE(transaction_reference, ''), admin_notes,
	COALESCE(requested_at, ''), COALESCE(processed_at, '')`

func scanSettlement(row interface{ Scan(...any) error }) (models.Settlement, error) {
	var s models.Settlement
	err := row.Scan(&s.ID, &s.OwnerID, &s.Amount, &s.PaymentMethod, &s.PaymentDetails,
		&s.Status, &s.TransactionReference, &s.AdminNotes, &s.RequestedAt, &s.ProcessedAt)
	return s, err
}

func (r SettlementRepository) HistoryByOwner(ownerID int64) ([]models.Settlement, error) {
	rows, err := r.db().Query(`
		SELECT `+settlementColumns+`
		FROM settlements
		WHERE owner_id = ?
		ORDER BY id DESC
	`, ownerID)
	if err != nil {
		return nil, domain.InternalError{Msg: "query settlement history failed", Err: err}
	}
	defer rows.Close()

	out := []models.Settlement{}
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "scan settlement failed", Err: err}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CreateRequest opens a settlement for everything currently withdrawable and
// attaches the contributing bookings so the balance drops to zero atomically.
func (r SettlementRepository) CreateRequest(ownerID int64, amount float64, method, details string) (int64, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return 0, domain.InternalError{Msg: "begin tx failed", Err: err}
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO settlements (owner_id, amount, payment_method, payment_details, status, requested_at)
		VALUES (?, ?, ?, ?, 'requested', NOW())
	`, ownerID, amount, method, details)
	if err != nil {
		return 0, domain.InternalError{Msg: "insert settlement failed", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Msg: "read insert id failed", Err: err}
	}

	_, err = tx.Exec(`
		UPDATE bookings b
		JOIN trips t ON t.id = b.trip_id
		SET b.settlement_id = ?
		WHERE t.owner_id = ? AND b.payment_status = 'paid' AND b.settlement_id IS NULL
	`, id, ownerID)
	if err != nil {
		return 0, domain.InternalError{Msg: "attach bookings failed", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return 0, domain.InternalError{Msg: "commit failed", Err: err}
	}
	return id, nil
}

// ListRequested returns outstanding settlement requests for the admin board,
// oldest first, each with owner contact info and its earning bookings.
func (r SettlementRepository) ListRequested() ([]models.Settlement, error) {
	rows, err := r.db().Query(`
		SELECT s.id, s.owner_id, s.amount, s.payment_method, s.payment_details,
		       s.status, COALESCE(s.transaction_reference, ''), s.admin_notes,
		       COALESCE(s.requested_at, ''), COALESCE(s.processed_at, ''),
		       COALESCE(u.name, ''), COALESCE(u.phone, '')
		FROM settlements s
		LEFT JOIN users u ON u.id = s.owner_id
		WHERE s.status = 'requested'
		ORDER BY s.id ASC
	`)
	if err != nil {
		return nil, domain.InternalError{Msg: "query pending settlements failed", Err: err}
	}
	defer rows.Close()

	out := []models.Settlement{}
	for rows.Next() {
		var (
			s           models.Settlement
			name, phone string
		)
		err := rows.Scan(&s.ID, &s.OwnerID, &s.Amount, &s.PaymentMethod, &s.PaymentDetails,
			&s.Status, &s.TransactionReference, &s.AdminNotes, &s.RequestedAt, &s.ProcessedAt,
			&name, &phone)
		if err != nil {
			return nil, domain.InternalError{Msg: "scan settlement failed", Err: err}
		}
		if name != "" || phone != "" {
			s.Owner = &models.User{ID: s.OwnerID, Name: name, Phone: phone}
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "iterate settlements failed", Err: err}
	}

	for i := range out {
		bookings, err := r.bookingsFor(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Bookings = bookings
	}
	return out, nil
}

func (r SettlementRepository) bookingsFor(settlementID int64) ([]models.Booking, error) {
	rows, err := r.db().Query(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE settlement_id = ?
		ORDER BY id ASC
	`, settlementID)
	if err != nil {
		return nil, domain.InternalError{Msg: "query settlement bookings failed", Err: err}
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

func (r SettlementRepository) GetByID(id int64) (models.Settlement, error) {
	if id <= 0 {
		return models.Settlement{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	s, err := scanSettlement(r.db().QueryRow(`
		SELECT `+settlementColumns+`
		FROM settlements
		WHERE id = ?
		LIMIT 1
	`, id))
	if err == sql.ErrNoRows {
		return models.Settlement{}, domain.NotFoundError{Resource: "settlement"}
	}
	if err != nil {
		return models.Settlement{}, domain.InternalError{Msg: "query settlement failed", Err: err}
	}

	s.Bookings, err = r.bookingsFor(s.ID)
	if err != nil {
		return models.Settlement{}, err
	}
	return s, nil
}

// Approve finalizes a requested settlement with the gateway reference. Only
// settlements still in "requested" move; anything else is a conflict.
func (r SettlementRepository) Approve(id int64, reference string, notes *string) error {
	res, err := r.db().Exec(`
		UPDATE settlements
		SET status = 'completed', transaction_reference = ?, admin_notes = ?, processed_at = NOW()
		WHERE id = ? AND status = 'requested'
	`, reference, notes, id)
	if err != nil {
		return domain.InternalError{Msg: "approve settlement failed", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var status string
		err := r.db().QueryRow(`SELECT status FROM settlements WHERE id = ?`, id).Scan(&status)
		if err == sql.ErrNoRows {
			return domain.NotFoundError{Resource: "settlement"}
		}
		if err != nil {
			return domain.InternalError{Msg: "query settlement failed", Err: err}
		}
		return domain.ConflictError{Resource: "settlement", Msg: "already " + status}
	}
	return nil
}
