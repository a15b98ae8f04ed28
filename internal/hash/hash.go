package hash

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

var ErrUnknownMethod = errors.New("unknown hash method")

// ErrPasswordTooLong is returned by the bcrypt hasher for passwords over 72
// bytes.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

type Method string

const (
	Bcrypt   Method = "bcrypt"
	Argon2ID Method = "argon2id"
)

// Hasher performs one-way password hashing and verification.
type Hasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) (bool, error)
}

// ParseMethod maps a configuration value to a Method.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(s)) {
	case Bcrypt:
		return Bcrypt, nil
	case Argon2ID:
		return Argon2ID, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownMethod, s)
}

// Manager hashes new passwords with its default method and verifies stored
// hashes with whichever method produced them, so switching the default does
// not lock out existing users.
type Manager struct {
	hashers       map[Method]Hasher
	defaultMethod Method
}

var _ Hasher = (*Manager)(nil)

// New returns a Manager with the bcrypt and argon2id hashers registered.
func New(defaultMethod Method) (*Manager, error) {
	m := &Manager{
		hashers: map[Method]Hasher{
			Bcrypt:   BcryptHasher{Cost: bcrypt.DefaultCost},
			Argon2ID: Argon2IDHasher{},
		},
		defaultMethod: defaultMethod,
	}
	if _, ok := m.hashers[defaultMethod]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, defaultMethod)
	}
	return m, nil
}

// Hash generates a password hash using the default Method.
func (m *Manager) Hash(password string) (string, error) {
	return m.hashers[m.defaultMethod].Hash(password)
}

// Check verifies a password against a hash produced by any registered Method.
func (m *Manager) Check(password, hash string) (bool, error) {
	return m.hashers[Detect(hash)].Check(password, hash)
}

// Detect guesses the Method from the encoded hash prefix. Anything that is not
// argon2id is handed to bcrypt, which rejects malformed input itself.
func Detect(hash string) Method {
	if strings.HasPrefix(hash, "$argon2id$") {
		return Argon2ID
	}
	return Bcrypt
}

// BcryptHasher implements Hasher using the bcrypt algorithm.
type BcryptHasher struct {
	Cost int
}

var _ Hasher = BcryptHasher{}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(bytes), nil
}

// Check compares a plaintext password against a bcrypt hash in constant time.
func (BcryptHasher) Check(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, fmt.Errorf("bcrypt compare password hash: %w", err)
		}
	}
	return true, nil
}

// Argon2IDHasher implements Hasher using the argon2id algorithm.
type Argon2IDHasher struct{}

var _ Hasher = Argon2IDHasher{}

func (Argon2IDHasher) Hash(password string) (string, error) {
	s, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return "", fmt.Errorf("argon hash: %w", err)
	}
	return s, nil
}

// Check compares a plaintext password against an argon2id hash in constant time.
func (Argon2IDHasher) Check(password, hash string) (bool, error) {
	ok, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false, fmt.Errorf("argon compare password hash: %w", err)
	}
	return ok, nil
}
