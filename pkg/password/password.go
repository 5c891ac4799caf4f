// Package password implements the password policy and bcrypt hashing
// used by registration and login.
package password

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor applied to every stored hash.
const Cost = 12

const minLength = 8

// specialChars is the fixed punctuation set a password must draw from.
const specialChars = `!@#$%^&*(),.?":{}|<>`

var (
	ErrHashing      = errors.New("error al encriptar la contraseña")
	ErrVerification = errors.New("error al verificar la contraseña")
)

// PolicyResult reports every violated rule, in check order.
type PolicyResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Validate checks the password against the policy and collects all
// violations rather than stopping at the first one.
func Validate(pw string) PolicyResult {
	var errs []string

	if utf8.RuneCountInString(pw) < minLength {
		errs = append(errs, "La contraseña debe tener al menos 8 caracteres")
	}
	if !containsRange(pw, 'A', 'Z') {
		errs = append(errs, "La contraseña debe contener al menos una letra mayúscula")
	}
	if !containsRange(pw, 'a', 'z') {
		errs = append(errs, "La contraseña debe contener al menos una letra minúscula")
	}
	if !containsRange(pw, '0', '9') {
		errs = append(errs, "La contraseña debe contener al menos un número")
	}
	if !strings.ContainsAny(pw, specialChars) {
		errs = append(errs, "La contraseña debe contener al menos un carácter especial")
	}

	return PolicyResult{IsValid: len(errs) == 0, Errors: errs}
}

// Hash produces a salted bcrypt hash of the password.
func Hash(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), Cost)
	if err != nil {
		return "", ErrHashing
	}
	return string(hash), nil
}

// Verify reports whether pw matches the stored hash. A mismatch is not an
// error; ErrVerification is returned only when the primitive itself fails
// (e.g. the stored value is not a bcrypt hash).
func Verify(pw, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrVerification
	}
}

func containsRange(s string, lo, hi rune) bool {
	for _, r := range s {
		if r >= lo && r <= hi {
			return true
		}
	}
	return false
}
