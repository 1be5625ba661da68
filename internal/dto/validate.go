package dto

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{9,14}$`)

// RegisterCustomValidators installs the signup field rules: trimmed name
// length, E.164-style phone and password complexity.
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("fullname", validFullName); err != nil {
		return err
	}
	if err := v.RegisterValidation("phonenum", validPhone); err != nil {
		return err
	}
	return v.RegisterValidation("strongpwd", validPassword)
}

func validFullName(fl validator.FieldLevel) bool {
	return len(strings.TrimSpace(fl.Field().String())) >= 2
}

func validPhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// Passwords need at least 8 characters with an upper, a lower, a digit and
// a special character.
func validPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}
