package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourhome-ai/yourhome/internal/domain"
)

// AccountRepository handles realtor account persistence
type AccountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account with its password hash.
func (r *AccountRepository) Create(account *domain.Account, passwordHash string) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	account.CreatedAt = time.Now()

	_, err := r.db.Exec(`
		INSERT INTO accounts (id, email, name, password_hash, subscribed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, account.ID, account.Email, account.Name, passwordHash,
		boolToInt(account.Subscribed), account.CreatedAt)

	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return domain.ErrAccountExists
	}
	return err
}

// GetByEmail retrieves an account and its password hash by email. Returns
// (nil, "", nil) when no such account exists.
func (r *AccountRepository) GetByEmail(email string) (*domain.Account, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	account := &domain.Account{}
	var hash string
	var subscribed int

	err := r.db.QueryRow(`
		SELECT id, email, name, password_hash, subscribed, created_at
		FROM accounts WHERE email = ?
	`, email).Scan(&account.ID, &account.Email, &account.Name, &hash,
		&subscribed, &account.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	account.Subscribed = subscribed != 0
	return account, hash, nil
}

// IsSubscribed reports the subscription flag for an email.
func (r *AccountRepository) IsSubscribed(email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var subscribed int
	err := r.db.QueryRow(`SELECT subscribed FROM accounts WHERE email = ?`, email).Scan(&subscribed)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return subscribed != 0, nil
}

// SetSubscribed updates the subscription flag for an email.
func (r *AccountRepository) SetSubscribed(email string, subscribed bool) error {
	email = strings.ToLower(strings.TrimSpace(email))
	result, err := r.db.Exec(`UPDATE accounts SET subscribed = ? WHERE email = ?`,
		boolToInt(subscribed), email)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
