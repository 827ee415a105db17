package folio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when an email/password pair does not
// match any owner.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Owner is an account allowed to edit the site.
type Owner struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}

// OwnerService manages owner accounts stored in the users table.
type OwnerService struct {
	store *Store
	cost  int
}

func NewOwnerService(s *Store) *OwnerService {
	return &OwnerService{store: s, cost: bcrypt.DefaultCost}
}

// Create hashes password and stores a new owner. Emails are matched
// case-insensitively.
func (o *OwnerService) Create(ctx context.Context, name, email, password string) (*Owner, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("owner: email and password are required")
	}
	if name == "" {
		name = email
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), o.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	var (
		ow      Owner
		created dbTime
	)
	err = o.store.db.QueryRowContext(ctx, o.store.rebind(`
		INSERT INTO users (name, email, password, created_at) VALUES (?, ?, ?, ?)
		RETURNING id, name, email, created_at`),
		name, email, string(hash), time.Now().UTC(),
	).Scan(&ow.ID, &ow.Name, &ow.Email, &created)
	if err != nil {
		return nil, storageError(err)
	}
	ow.CreatedAt = created.Time
	return &ow, nil
}

// Authenticate returns the owner whose credentials match.
func (o *OwnerService) Authenticate(ctx context.Context, email, password string) (*Owner, error) {
	var (
		ow      Owner
		hash    string
		created dbTime
	)
	err := o.store.db.QueryRowContext(ctx, o.store.rebind(
		`SELECT id, name, email, password, created_at FROM users WHERE email = ?`),
		normalizeEmail(email),
	).Scan(&ow.ID, &ow.Name, &ow.Email, &hash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storageError(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	ow.CreatedAt = created.Time
	return &ow, nil
}

// Count returns the number of owner accounts.
func (o *OwnerService) Count(ctx context.Context) (int, error) {
	var n int
	if err := o.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, storageError(err)
	}
	return n, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
