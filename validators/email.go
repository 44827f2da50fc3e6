// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"errors"
	"net/mail"
)

// RFC 5321 caps the full address at 254 usable characters
const maxEmailLen = 254

var (
	ErrEmailEmpty   = errors.New("no email address provided")
	ErrEmailTooLong = errors.New("email address is too long")
	ErrEmailInvalid = errors.New("invalid email address provided")
)

func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}

	if len(e) > maxEmailLen {
		return ErrEmailTooLong
	}

	a, err := mail.ParseAddress(e)
	if err != nil || a.Address != e {
		// Reject display-name forms like "Bob <bob@example.com>", only the
		// bare address works as a login identifier
		return ErrEmailInvalid
	}

	return nil
}
