package payauth

import (
	"context"
	"strings"
	"time"

	"github.com/payrail/payauth/registration"
)

// Role is the coarse authorization level carried inside access tokens.
type Role string

const (
	// RoleUser is an exported constant or variable used by the authentication engine.
	RoleUser Role = "User"
	// RoleAdmin is an exported constant or variable used by the authentication engine.
	RoleAdmin Role = "Admin"
	// RoleMerchant is an exported constant or variable used by the authentication engine.
	RoleMerchant Role = "Merchant"
)

// ParseRole resolves a case-insensitive role name to its canonical [Role].
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	case "merchant":
		return RoleMerchant, nil
	default:
		return "", ErrRoleInvalid
	}
}

// UserRecord is the full account record returned by [UserStore]. It carries
// the stored password digest; it is never returned to API callers directly.
type UserRecord struct {
	UserID       string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	PhoneNumber  string
	Age          int
	Role         string
	Active       bool
}

// User is the digest-free account view returned by Engine operations.
type User struct {
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Role      string
}

// CreateUserInput is the input for [UserStore.CreateUser]. The password
// arrives already hashed; stores must never see plaintext credentials.
type CreateUserInput struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	PhoneNumber  string
	Age          int
	Role         string
	Address      *registration.Address
	Account      *registration.AccountDetails
	Active       bool
}

// UserStore is the interface callers must implement to integrate payauth with
// their user database.
//
// GetUserByEmail returns [ErrUserNotFound] when no account matches.
// CreateUser returns [ErrDuplicateUser] when the email is already taken; the
// engine relies on this for the registration race between the existence check
// and the insert. Any other error is treated as store unavailability.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (UserRecord, error)
	CreateUser(ctx context.Context, input CreateUserInput) (UserRecord, error)
}

// PasswordHashUpdater is an optional extension of [UserStore]. Stores that
// implement it opt in to transparent digest upgrades on successful login when
// [PasswordConfig.UpgradeOnLogin] is set.
type PasswordHashUpdater interface {
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error
}

// LoginResult is returned by [Engine.Login]. User is the digest-free view of
// the authenticated account.
type LoginResult struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresIn  time.Duration
	RefreshExpiresAt time.Time
	User             User
}

// RefreshResult is returned by [Engine.Refresh]. RefreshToken is the next
// token in the rotation chain; the presented token is terminal afterwards.
type RefreshResult struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresIn  time.Duration
	RefreshExpiresAt time.Time
	UserID           string
	Role             string
}

// RegisterResult is returned by [Engine.Register]. Message carries the
// client-facing success summary preserved from the replaced system.
type RegisterResult struct {
	UserID  string
	Email   string
	Role    string
	Message string
}

// AuthResult is returned by [Engine.ValidateAccess]. It contains the
// authenticated user's ID, role, and the token's identity claims.
type AuthResult struct {
	UserID    string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}
