package session

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Authenticator checks operator passwords against bcrypt hashes.
type Authenticator struct {
	accounts map[string][]byte
	// dummy is compared against for unknown users so they cost the same as
	// known ones.
	dummy []byte
}

// NewAuthenticator takes a username to bcrypt hash map. Every hash must be a
// well-formed bcrypt hash.
func NewAuthenticator(accounts map[string]string) (*Authenticator, error) {
	if len(accounts) == 0 {
		return nil, errors.New("no admin accounts configured")
	}

	a := &Authenticator{accounts: make(map[string][]byte, len(accounts))}
	cost := bcrypt.DefaultCost
	for username, hash := range accounts {
		c, err := bcrypt.Cost([]byte(hash))
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", username, err)
		}
		cost = c
		a.accounts[username] = []byte(hash)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("unused-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("generate dummy hash: %w", err)
	}
	a.dummy = dummy
	return a, nil
}

// Verify returns ErrInvalidCredentials unless password matches username's
// hash.
func (a *Authenticator) Verify(username, password string) error {
	hash, ok := a.lookup(username)
	if !ok {
		_ = bcrypt.CompareHashAndPassword(a.dummy, []byte(password))
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (a *Authenticator) lookup(username string) ([]byte, bool) {
	var found []byte
	for name, hash := range a.accounts {
		if subtle.ConstantTimeCompare([]byte(name), []byte(username)) == 1 {
			found = hash
		}
	}
	return found, found != nil
}

// HashPassword returns the bcrypt hash to put in the account list.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
