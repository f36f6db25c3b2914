package credential

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the bcrypt work factor used for stored passwords.
	DefaultCost = 12

	// PasswordLength is the length of system-generated account passwords.
	PasswordLength = 10

	// TokenLength is the length of password reset tokens. Longer than passwords to resist guessing.
	TokenLength = 32

	// MinStrongLength is the minimum length accepted by IsStrong.
	MinStrongLength = 8

	// MaxSecretBytes is the longest input bcrypt accepts.
	MaxSecretBytes = 72
)

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "@#%&*!"

	// Alphabet is the character set secrets are drawn from.
	Alphabet = upperChars + lowerChars + digitChars + symbolChars
)

var (
	ErrEmptyInput    = errors.New("credential: empty input")
	ErrInvalidLength = errors.New("credential: invalid secret length")
	ErrTooLong       = errors.New("credential: input longer than 72 bytes")
)

// Hasher converts plaintext secrets to storable hashes and back.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// Store is the bcrypt-backed Hasher.
type Store struct {
	cost int
}

// NewStore returns a Store hashing with the given bcrypt cost.
// Costs outside bcrypt's accepted range fall back to DefaultCost.
func NewStore(cost int) *Store {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Store{cost: cost}
}

// Cost reports the bcrypt work factor in use.
func (s *Store) Cost() int { return s.cost }

// Hash returns a salted bcrypt hash of plain. Inputs IsStrong accepts always hash.
func (s *Store) Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyInput
	}
	if len(plain) > MaxSecretBytes {
		return "", ErrTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", fmt.Errorf("credential: hash: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plain produced hash. A malformed hash never verifies.
func (s *Store) Verify(plain, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// IsStrong reports whether pw is at least MinStrongLength characters long, fits in
// MaxSecretBytes, and mixes upper and lower case letters with a digit and a character
// outside [A-Za-z0-9].
func IsStrong(pw string) bool {
	if utf8.RuneCountInString(pw) < MinStrongLength || len(pw) > MaxSecretBytes {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// GenerateSecret returns a uniformly random string of length characters drawn from Alphabet.
func GenerateSecret(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}
	out := make([]byte, length)
	for i := range out {
		c, err := pick(Alphabet)
		if err != nil {
			return "", err
		}
		out[i] = c
	}
	return string(out), nil
}

// GeneratePassword returns a random secret of length characters that contains at least one
// character of every class IsStrong requires. length must be at least MinStrongLength.
func GeneratePassword(length int) (string, error) {
	if length < MinStrongLength {
		return "", ErrInvalidLength
	}
	out := make([]byte, 0, length)
	for _, class := range []string{upperChars, lowerChars, digitChars, symbolChars} {
		c, err := pick(class)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for len(out) < length {
		c, err := pick(Alphabet)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	// Fisher-Yates so the guaranteed characters are not always in front.
	for i := len(out) - 1; i > 0; i-- {
		j, err := randIndex(i + 1)
		if err != nil {
			return "", err
		}
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}

func pick(set string) (byte, error) {
	i, err := randIndex(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("credential: random source: %w", err)
	}
	return int(v.Int64()), nil
}
