package repositories

import (
	"database/sql"
	"strings"

	intconfig "safarpay/internal/config"
	"safarpay/internal/domain"
	"safarpay/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripColumns = `
	t.id, t.origin, t.destination, t.price, t.seats_total, t.seats_left,
	t.owner_id, COALESCE(u.phone, ''), COALESCE(t.created_at, '')`

func scanTrip(row interface{ Scan(...any) error }) (models.Trip, error) {
	var t models.Trip
	err := row.Scan(&t.ID, &t.Origin, &t.Destination, &t.Price, &t.SeatsTotal,
		&t.SeatsLeft, &t.OwnerID, &t.OwnerPhone, &t.CreatedAt)
	return t, err
}

// ListPublic returns every trip with seats still available, newest first.
func (r TripRepository) ListPublic() ([]models.Trip, error) {
	rows, err := r.db().Query(`
		SELECT ` + tripColumns + `
		FROM trips t
		LEFT JOIN users u ON u.id = t.owner_id
		WHERE t.seats_left > 0
		ORDER BY t.id DESC
	`)
	if err != nil {
		return nil, domain.InternalError{Msg: "query trips failed", Err: err}
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "scan trip failed", Err: err}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) GetByID(id int64) (models.Trip, error) {
	if id <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	t, err := scanTrip(r.db().QueryRow(`
		SELECT `+tripColumns+`
		FROM trips t
		LEFT JOIN users u ON u.id = t.owner_id
		WHERE t.id = ?
		LIMIT 1
	`, id))
	if err == sql.ErrNoRows {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return models.Trip{}, domain.InternalError{Msg: "query trip failed", Err: err}
	}
	return t, nil
}

func (r TripRepository) ListByOwner(ownerID int64) ([]models.Trip, error) {
	rows, err := r.db().Query(`
		SELECT `+tripColumns+`
		FROM trips t
		LEFT JOIN users u ON u.id = t.owner_id
		WHERE t.owner_id = ?
		ORDER BY t.id DESC
	`, ownerID)
	if err != nil {
		return nil, domain.InternalError{Msg: "query owner trips failed", Err: err}
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "scan trip failed", Err: err}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) Create(t models.Trip) (int64, error) {
	if strings.TrimSpace(t.Origin) == "" || strings.TrimSpace(t.Destination) == "" {
		return 0, domain.ValidationError{Field: "route", Msg: "origin and destination are required"}
	}
	if t.Price < 0 {
		return 0, domain.ValidationError{Field: "price", Msg: "price must not be negative"}
	}
	if t.SeatsTotal <= 0 {
		return 0, domain.ValidationError{Field: "seatsTotal", Msg: "at least one seat is required"}
	}
	res, err := r.db().Exec(`
		INSERT INTO trips (owner_id, origin, destination, price, seats_total, seats_left)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.OwnerID, t.Origin, t.Destination, t.Price, t.SeatsTotal, t.SeatsTotal)
	if err != nil {
		return 0, domain.InternalError{Msg: "insert trip failed", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Msg: "read insert id failed", Err: err}
	}
	return id, nil
}

// Delete removes an owner's trip. Trips with bookings are kept to preserve
// the earnings trail.
func (r TripRepository) Delete(id, ownerID int64) error {
	var bookings int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM bookings WHERE trip_id = ?`, id).Scan(&bookings); err != nil {
		return domain.InternalError{Msg: "check trip bookings failed", Err: err}
	}
	if bookings > 0 {
		return domain.ConflictError{Resource: "trip", Msg: "trip has bookings"}
	}
	res, err := r.db().Exec(`DELETE FROM trips WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return domain.InternalError{Msg: "delete trip failed", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}
