package utils

import (
	"errors"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalidPhone is returned for numbers that cannot be parsed or are
// not valid in any region.
var ErrInvalidPhone = errors.New("invalid phone number")

// NormalizePhone parses a phone number and formats it as E.164.
// Numbers without a country prefix are rejected; users and contact
// search both match on the normalized form.
func NormalizePhone(phone string) (string, error) {
	parsed, err := phonenumbers.Parse(phone, "")
	if err != nil {
		return "", ErrInvalidPhone
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", ErrInvalidPhone
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
