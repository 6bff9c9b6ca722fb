package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired is returned by ParseAccess for structurally valid tokens
	// whose expiry has passed.
	ErrTokenExpired = errors.New("access token expired")
	// ErrTokenInvalid covers every other verification failure: bad signature,
	// wrong issuer or audience, malformed payload.
	ErrTokenInvalid = errors.New("invalid access token")
)

// Config carries the signing material and claim constants for a [Manager].
// All fields except Leeway are required; NewManager rejects incomplete
// configuration so a missing key is a startup failure, never a per-request one.
type Config struct {
	SigningKey []byte
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	Leeway     time.Duration
}

// AccessClaims is the minted claim set: registered claims plus the role claim
// asserted to downstream services.
type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager mints and verifies access tokens. Safe for concurrent use.
type Manager struct {
	config Config
}

// NewManager validates cfg and returns a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.SigningKey) == 0 {
		return nil, errors.New("jwt signing key is required")
	}
	if cfg.AccessTTL <= 0 {
		return nil, errors.New("jwt access TTL must be > 0")
	}
	if cfg.Issuer == "" {
		return nil, errors.New("jwt issuer is required")
	}
	if cfg.Audience == "" {
		return nil, errors.New("jwt audience is required")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("jwt leeway must be between 0 and 2 minutes")
	}

	return &Manager{config: cfg}, nil
}

// CreateAccess mints a signed access token for subject with the given role
// claim. Each call produces a fresh jti so individual tokens stay addressable
// if access-token revocation is ever layered on.
func (m *Manager) CreateAccess(subject, role string) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    m.config.Issuer,
			Audience:  jwt.ClaimStrings{m.config.Audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.AccessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.config.SigningKey)
}

// AccessTTL reports the configured access-token lifetime.
func (m *Manager) AccessTTL() time.Duration {
	return m.config.AccessTTL
}

// ParseAccess verifies signature, issuer, audience, and expiry, returning the
// decoded claims. Expired tokens map to [ErrTokenExpired]; every other failure
// maps to [ErrTokenInvalid].
func (m *Manager) ParseAccess(tokenStr string) (*AccessClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
		jwt.WithExpirationRequired(),
	}
	if m.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(m.config.Leeway))
	}

	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return m.config.SigningKey, nil
	}, options...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
