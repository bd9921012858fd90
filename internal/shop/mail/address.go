package mail

import (
	"errors"
	netmail "net/mail"
	"strings"
)

var ErrInvalidEmail = errors.New("invalid email address")

// Address is a bare email address without a display name.
type Address string

// ParseAddress trims raw and checks that it is shaped like an email address.
// Inputs with display names or comments are rejected.
func ParseAddress(raw string) (Address, error) {
	trimmed := strings.TrimSpace(raw)

	addr, err := netmail.ParseAddress(trimmed)
	if err != nil {
		return "", ErrInvalidEmail
	}
	// "Alice <alice@example.com>(comment)" parses fine; only the address part is accepted.
	if addr.Address != trimmed {
		return "", ErrInvalidEmail
	}
	return Address(addr.Address), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
