package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for authentication operations.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrCompanyRefRequired = errors.New("company id or company name required")
)

// AuthUser is the employee view returned by register and login, including
// the company name for display.
type AuthUser struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
}

// AuthResult bundles the authenticated user with a freshly signed token.
type AuthResult struct {
	User  AuthUser `json:"user"`
	Token string   `json:"token"`
}

// RegisterInput carries the self-registration fields. Exactly one of
// CompanyName (create a new company) or CompanyID (join an existing one)
// must be set.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	CompanyName string
	CompanyID   string
	Role        Role
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues signed tokens embedding the caller identity.
type TokenIssuer interface {
	Issue(identity Identity, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the embedded identity.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

// AuthService defines the credential workflow: registration, login, and
// stateless token refresh.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	RefreshToken(ctx context.Context, token string) (string, error)
}
