package repositories

import (
	"database/sql"
	"strings"

	intconfig "safarpay/internal/config"
	"safarpay/internal/domain"
	"safarpay/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByLogin resolves a user by email or phone and returns the stored hash.
func (r UserRepository) GetByLogin(login string) (models.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return models.User{}, "", domain.ValidationError{Field: "login", Msg: "login is required"}
	}

	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRow(`
		SELECT id, name, email, phone, password_hash, role, status
		FROM users
		WHERE email = ? OR phone = ?
		LIMIT 1
	`, login, login).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &hash, &u.Role, &u.Status)
	if err == sql.ErrNoRows {
		return models.User{}, "", domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, "", domain.InternalError{Msg: "query user failed", Err: err}
	}
	return u, hash, nil
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	if id <= 0 {
		return models.User{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, name, email, phone, role, status
		FROM users
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.Status)
	if err == sql.ErrNoRows {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "query user failed", Err: err}
	}
	return u, nil
}

// Exists reports whether an account with the email or phone is registered.
func (r UserRepository) Exists(email, phone string) (bool, error) {
	var count int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM users WHERE email = ? OR phone = ?
	`, email, phone).Scan(&count)
	if err != nil {
		return false, domain.InternalError{Msg: "check user failed", Err: err}
	}
	return count > 0, nil
}

func (r UserRepository) Create(u models.User, passwordHash string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, email, phone, password_hash, role, status)
		VALUES (?, ?, ?, ?, ?, 'active')
	`, u.Name, u.Email, u.Phone, passwordHash, u.Role)
	if err != nil {
		return 0, domain.InternalError{Msg: "insert user failed", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Msg: "read insert id failed", Err: err}
	}
	return id, nil
}

// PaymentDetails loads the owner's stored payout destinations.
func (r UserRepository) PaymentDetails(ownerID int64) (models.PaymentDetails, error) {
	var pd models.PaymentDetails
	err := r.db().QueryRow(`
		SELECT COALESCE(evcplus_number, phone), COALESCE(bank_account, '')
		FROM users
		WHERE id = ?
		LIMIT 1
	`, ownerID).Scan(&pd.EVCPlus, &pd.Bank)
	if err == sql.ErrNoRows {
		return models.PaymentDetails{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.PaymentDetails{}, domain.InternalError{Msg: "query payment details failed", Err: err}
	}
	return pd, nil
}
