// Package crypto hashes user passwords with Argon2id in the PHC string
// format the identity service verifies against.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// saltBytes is the number of random bytes drawn per hash. The bytes are
// hex-encoded and the 16 ASCII characters of that encoding are the salt
// fed to Argon2, byte-compatible with hashes produced by the argon2 CLI
// fed from `openssl rand -hex 8`.
const saltBytes = 8

// Params holds the Argon2id cost parameters. MemoryExp is the log2
// exponent of the memory cost in KiB.
type Params struct {
	Iterations  int
	MemoryExp   int
	Parallelism int
	KeyLength   int
}

// DefaultParams returns the standard cost parameters.
func DefaultParams() Params {
	return Params{Iterations: 3, MemoryExp: 14, Parallelism: 2, KeyLength: 32}
}

// MemoryKiB returns the memory cost in KiB derived from the exponent.
func (p Params) MemoryKiB() uint32 {
	return uint32(1) << p.MemoryExp
}

func (p Params) validate() error {
	if p.Iterations < 1 {
		return fmt.Errorf("argon2 iterations must be at least 1, got %d", p.Iterations)
	}
	if p.MemoryExp < 10 || p.MemoryExp > 30 {
		return fmt.Errorf("argon2 memory exponent must be between 10 and 30, got %d", p.MemoryExp)
	}
	if p.Parallelism < 1 || p.Parallelism > 255 {
		return fmt.Errorf("argon2 parallelism must be between 1 and 255, got %d", p.Parallelism)
	}
	if p.KeyLength < 16 || p.KeyLength > 512 {
		return fmt.Errorf("argon2 key length must be between 16 and 512, got %d", p.KeyLength)
	}
	return nil
}

// Hasher derives Argon2id hashes with fixed cost parameters.
type Hasher struct {
	params Params
}

// NewHasher validates the parameters and returns a Hasher.
func NewHasher(p Params) (*Hasher, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &Hasher{params: p}, nil
}

// Hash derives an Argon2id hash of the password under a fresh random
// salt and returns it PHC-encoded, e.g.
// $argon2id$v=19$m=16384,t=3,p=2$<b64 salt>$<b64 key>.
func (h *Hasher) Hash(password string) (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	salt := []byte(hex.EncodeToString(raw))
	key := argon2.IDKey([]byte(password), salt,
		uint32(h.params.Iterations), h.params.MemoryKiB(),
		uint8(h.params.Parallelism), uint32(h.params.KeyLength))
	return encode(h.params, salt, key), nil
}

func encode(p Params, salt, key []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.MemoryKiB(), p.Iterations, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

// Verify reports whether the password matches a PHC-encoded Argon2id
// hash. The cost parameters are taken from the hash itself, so hashes
// produced under older settings still verify.
func Verify(encoded, password string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return false, fmt.Errorf("malformed argon2id hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("parse argon2 version: %w", err)
	}
	if version != argon2.Version {
		return false, fmt.Errorf("unsupported argon2 version %d", version)
	}

	var memory, iterations, parallelism uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return false, fmt.Errorf("parse argon2 parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("decode salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("decode key: %w", err)
	}

	derived := argon2.IDKey([]byte(password), salt,
		iterations, memory, uint8(parallelism), uint32(len(key)))
	return subtle.ConstantTimeCompare(derived, key) == 1, nil
}
