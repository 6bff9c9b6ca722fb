package refresh

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/payrail/payauth/internal"
)

var (
	// ErrTokenNotFound is returned when no record exists for the presented
	// value, including values this store never issued.
	ErrTokenNotFound = errors.New("refresh token not found")
	// ErrTokenExpired is returned when the record's expiry has passed. The
	// record is marked revoked as a side effect; expiry is terminal.
	ErrTokenExpired = errors.New("refresh token expired")
	// ErrTokenRevoked is returned for records already consumed by rotation or
	// revoked explicitly. Under concurrent rotation every loser sees this.
	ErrTokenRevoked = errors.New("refresh token revoked")
	// ErrRedisUnavailable wraps transport-level Redis failures.
	ErrRedisUnavailable = errors.New("redis unavailable")
)

// terminalRetention is how long terminal records outlive their logical expiry
// so replay attempts classify as revoked/expired instead of not-found.
const terminalRetention = 24 * time.Hour

const (
	rotateStatusNotFound int64 = 0
	rotateStatusExpired  int64 = 1
	rotateStatusRevoked  int64 = 2
	rotateStatusRotated  int64 = 3
)

// rotateScript validates the old record, marks it revoked, and writes the
// successor in one atomic step. Expiry uses exp < now: the exact expiry
// instant still rotates.
const rotateScript = `
local data = redis.call("HMGET", KEYS[1], "user", "role", "exp", "revoked")
if not data[1] then
  return {0}
end
local exp = tonumber(data[3])
if not exp then
  return {0}
end
if data[4] == "1" then
  return {2}
end
local now = tonumber(ARGV[1])
if exp < now then
  redis.call("HSET", KEYS[1], "revoked", "1")
  return {1}
end

redis.call("HSET", KEYS[1], "revoked", "1")
redis.call("HSET", KEYS[2], "user", data[1], "role", data[2], "exp", ARGV[2], "revoked", "0")
redis.call("PEXPIRE", KEYS[2], tonumber(ARGV[3]))
return {3, data[1], data[2]}
`

var rotateLua = redis.NewScript(rotateScript)

const revokeScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
redis.call("HSET", KEYS[1], "revoked", "1")
return 1
`

var revokeLua = redis.NewScript(revokeScript)

// Record is the stored state of one refresh token.
type Record struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
	Revoked   bool
}

// Active reports whether the record can still rotate at the given instant.
func (r Record) Active(now time.Time) bool {
	return !r.Revoked && !r.ExpiresAt.Before(now)
}

// RotationResult carries the successor token minted by a successful Rotate.
type RotationResult struct {
	Token     string
	ExpiresAt time.Time
	UserID    string
	Role      string
}

// Store is the Redis-backed refresh-token state machine.
type Store struct {
	redis  redis.UniversalClient
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// NewStore creates a [Store]. prefix namespaces the Redis keys; ttl is the
// logical lifetime of newly created tokens.
func NewStore(client redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	return &Store{
		redis:  client,
		prefix: prefix,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Create mints a fresh token for userID, stores its record, and returns the
// plaintext value exactly once.
func (s *Store) Create(ctx context.Context, userID, role string) (string, Record, error) {
	value, err := internal.NewRefreshTokenValue()
	if err != nil {
		return "", Record{}, err
	}

	now := s.now().UTC()
	record := Record{
		UserID:    userID,
		Role:      role,
		ExpiresAt: now.Add(s.ttl),
	}

	key := s.key(value)
	pipe := s.redis.TxPipeline()
	pipe.HSet(ctx, key,
		"user", record.UserID,
		"role", record.Role,
		"exp", record.ExpiresAt.Unix(),
		"revoked", "0",
	)
	pipe.PExpire(ctx, key, s.ttl+terminalRetention)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", Record{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return value, record, nil
}

// Rotate atomically consumes the presented value and returns its successor.
// At most one concurrent caller wins; the rest observe [ErrTokenRevoked].
// Expired values are marked revoked and return [ErrTokenExpired] without
// minting anything.
func (s *Store) Rotate(ctx context.Context, value string) (*RotationResult, error) {
	if err := internal.ValidateRefreshTokenValue(value); err != nil {
		return nil, ErrTokenNotFound
	}

	next, err := internal.NewRefreshTokenValue()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)

	raw, err := rotateLua.Run(ctx, s.redis,
		[]string{s.key(value), s.key(next)},
		now.Unix(),
		expiresAt.Unix(),
		(s.ttl + terminalRetention).Milliseconds(),
	).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	reply, ok := raw.([]interface{})
	if !ok || len(reply) == 0 {
		return nil, fmt.Errorf("%w: malformed rotate reply", ErrRedisUnavailable)
	}
	status, ok := reply[0].(int64)
	if !ok {
		return nil, fmt.Errorf("%w: malformed rotate status", ErrRedisUnavailable)
	}

	switch status {
	case rotateStatusRotated:
		if len(reply) != 3 {
			return nil, fmt.Errorf("%w: malformed rotate payload", ErrRedisUnavailable)
		}
		userID, _ := reply[1].(string)
		role, _ := reply[2].(string)
		return &RotationResult{
			Token:     next,
			ExpiresAt: expiresAt,
			UserID:    userID,
			Role:      role,
		}, nil
	case rotateStatusExpired:
		return nil, ErrTokenExpired
	case rotateStatusRevoked:
		return nil, ErrTokenRevoked
	default:
		return nil, ErrTokenNotFound
	}
}

// Revoke marks the record revoked. Revoking an already-terminal record is a
// no-op, not an error; unknown values return [ErrTokenNotFound].
func (s *Store) Revoke(ctx context.Context, value string) error {
	if err := internal.ValidateRefreshTokenValue(value); err != nil {
		return ErrTokenNotFound
	}

	existed, err := revokeLua.Run(ctx, s.redis, []string{s.key(value)}).Int64()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if existed == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// Get reads the record for value without changing its state.
func (s *Store) Get(ctx context.Context, value string) (Record, error) {
	if err := internal.ValidateRefreshTokenValue(value); err != nil {
		return Record{}, ErrTokenNotFound
	}

	fields, err := s.redis.HMGet(ctx, s.key(value), "user", "role", "exp", "revoked").Result()
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if len(fields) != 4 || fields[0] == nil {
		return Record{}, ErrTokenNotFound
	}

	userID, _ := fields[0].(string)
	role, _ := fields[1].(string)
	expStr, _ := fields[2].(string)
	revoked, _ := fields[3].(string)

	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return Record{}, ErrTokenNotFound
	}

	return Record{
		UserID:    userID,
		Role:      role,
		ExpiresAt: time.Unix(exp, 0).UTC(),
		Revoked:   revoked == "1",
	}, nil
}

// Peek returns the record for an active value without changing its state.
// Terminal records classify the same way Rotate does: revoked values return
// [ErrTokenRevoked], values past their expiry second [ErrTokenExpired].
func (s *Store) Peek(ctx context.Context, value string) (Record, error) {
	record, err := s.Get(ctx, value)
	if err != nil {
		return Record{}, err
	}
	if record.Revoked {
		return Record{}, ErrTokenRevoked
	}
	if record.ExpiresAt.Unix() < s.now().Unix() {
		return Record{}, ErrTokenExpired
	}
	return record, nil
}

func (s *Store) key(value string) string {
	sum := internal.HashRefreshTokenValue(value)
	return s.prefix + ":rt:" + hex.EncodeToString(sum[:])
}
