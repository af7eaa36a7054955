package services

import (
	"errors"
	"unicode"
)

var (
	ErrPasswordEmpty     = errors.New("password must not be empty")
	ErrPasswordTooShort  = errors.New("password is too short")
	ErrPasswordNoUpper   = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoLower   = errors.New("password must contain at least one lowercase letter")
	ErrPasswordNoNumber  = errors.New("password must contain at least one number")
	ErrPasswordNoSpecial = errors.New("password must contain at least one special character")
)

// PasswordValidator validates passwords against security requirements
type PasswordValidator struct {
	minLength      int
	requireUpper   bool
	requireLower   bool
	requireNumber  bool
	requireSpecial bool
}

// NewPasswordValidator returns the default validator. The legacy
// storefront accepted any non-empty password, so the default only
// requires presence; StrictPasswordValidator is available where a real
// policy is wanted.
func NewPasswordValidator() *PasswordValidator {
	return &PasswordValidator{minLength: 1}
}

// StrictPasswordValidator enforces length and character classes.
func StrictPasswordValidator() *PasswordValidator {
	return &PasswordValidator{
		minLength:      8,
		requireUpper:   true,
		requireLower:   true,
		requireNumber:  true,
		requireSpecial: true,
	}
}

// ValidatePassword checks if a password meets all requirements
func (pv *PasswordValidator) ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordEmpty
	}
	if len(password) < pv.minLength {
		return ErrPasswordTooShort
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	if pv.requireUpper && !hasUpper {
		return ErrPasswordNoUpper
	}
	if pv.requireLower && !hasLower {
		return ErrPasswordNoLower
	}
	if pv.requireNumber && !hasNumber {
		return ErrPasswordNoNumber
	}
	if pv.requireSpecial && !hasSpecial {
		return ErrPasswordNoSpecial
	}
	return nil
}
