// Package security hashes shopper passwords with Argon2id. Hashes are
// stored in the PHC string format, so the parameters used at hash time
// travel with the hash and old passwords keep verifying after the
// configured parameters are tuned.
package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/storefront-labs/storefront-backend/pkg/config"
	"golang.org/x/crypto/argon2"
)

// ErrInvalidHash signals a stored hash that is not a well-formed
// Argon2id PHC string.
var ErrInvalidHash = errors.New("invalid argon2id hash")

type hashParams struct {
	memory  uint32
	passes  uint32
	threads uint8
	saltLen uint32
	keyLen  uint32
}

// Bounds applied to configured parameters so a bad env value cannot hash
// with trivial cost or pin the process.
const (
	minMemoryKB = 8
	maxMemoryKB = 512 * 1024
	minPasses   = 1
	maxPasses   = 10
	minSaltLen  = 8
	maxSaltLen  = 64
	minKeyLen   = 16
	maxKeyLen   = 64
)

// HashPassword derives an Argon2id hash of password using the configured
// cost parameters and returns it in PHC string form.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}

	p := boundedParams(cfg)
	salt := make([]byte, p.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, p.passes, p.memory, p.threads, p.keyLen)
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.memory, p.passes, p.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword reports whether password matches the stored PHC hash.
// The comparison is constant-time; a malformed hash is an error, never a
// silent mismatch.
func VerifyPassword(password, encoded string) (bool, error) {
	p, salt, want, err := parsePHC(encoded)
	if err != nil {
		return false, err
	}
	got := argon2.IDKey([]byte(password), salt, p.passes, p.memory, p.threads, p.keyLen)
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

func boundedParams(cfg config.PasswordConfig) hashParams {
	return hashParams{
		memory:  uint32(bound(cfg.ArgonMemoryKB, minMemoryKB, maxMemoryKB)),
		passes:  uint32(bound(cfg.ArgonTime, minPasses, maxPasses)),
		threads: uint8(bound(cfg.ArgonParallelism, 1, 255)),
		saltLen: uint32(bound(cfg.ArgonSaltLen, minSaltLen, maxSaltLen)),
		keyLen:  uint32(bound(cfg.ArgonKeyLen, minKeyLen, maxKeyLen)),
	}
}

func bound(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// parsePHC splits "$argon2id$v=19$m=..,t=..,p=..$salt$key" into its
// parameters and decoded salt/key.
func parsePHC(encoded string) (hashParams, []byte, []byte, error) {
	var (
		p       hashParams
		version int
		saltB64 string
		keyB64  string
	)
	n, err := fmt.Sscanf(encoded, "$argon2id$v=%d$m=%d,t=%d,p=%d$%s",
		&version, &p.memory, &p.passes, &p.threads, &saltB64)
	if err != nil || n != 5 || version != argon2.Version {
		return hashParams{}, nil, nil, ErrInvalidHash
	}

	// Sscanf's %s is greedy, so salt and key arrive as one segment.
	sep := -1
	for i, c := range saltB64 {
		if c == '$' {
			sep = i
			break
		}
	}
	if sep <= 0 || sep == len(saltB64)-1 {
		return hashParams{}, nil, nil, ErrInvalidHash
	}
	keyB64 = saltB64[sep+1:]
	saltB64 = saltB64[:sep]

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return hashParams{}, nil, nil, ErrInvalidHash
	}
	key, err := base64.RawStdEncoding.DecodeString(keyB64)
	if err != nil {
		return hashParams{}, nil, nil, ErrInvalidHash
	}

	p.saltLen = uint32(len(salt))
	p.keyLen = uint32(len(key))
	return p, salt, key, nil
}
