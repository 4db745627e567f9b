package domain

import (
	"context"
	"errors"
	"time"
)

// Account lookup and uniqueness errors. Services translate repository errors
// into these so controllers can map them to status codes.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// User is an organizer account. PasswordHash and Salt never serialize to JSON.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	Name         string    `json:"name"`
	LastName     string    `json:"last_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser builds an account record without credentials. SignUp fills in the
// salt and hash; the repository assigns the ID on create.
func NewUser(email, name, lastName string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:     email,
		Name:      name,
		LastName:  lastName,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Role is a coarse permission bucket, identified by code (organizer, admin).
type Role struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// UserRepository is the storage port for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	AssignRole(ctx context.Context, userID, roleID string) error
}

// RoleRepository is the storage port for roles and role assignments.
type RoleRepository interface {
	GetByCode(ctx context.Context, code string) (*Role, error)
	ListByUserID(ctx context.Context, userID string) ([]*Role, error)
}

// PasswordHasher generates per-user salts and turns passwords into storable
// hashes. Compare reports a mismatch as a non-nil error.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer signs an access token for an authenticated user. A zero expiry
// selects the issuer's configured default.
type TokenIssuer interface {
	Issue(userID, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier checks a presented token and extracts the subject user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserService defines the business logic for accounts and authentication.
type UserService interface {
	SignUp(ctx context.Context, email, password, name, role string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
}
