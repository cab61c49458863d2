package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMissingShippingField = errors.New("missing shipping field")

// ShippingInfo matches the backend's expected shipping fields.
type ShippingInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Validate enforces required-field completeness before either payment path
// may proceed. Whitespace-only values count as missing.
func (s ShippingInfo) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", s.Name},
		{"email", s.Email},
		{"phone", s.Phone},
		{"address", s.Address},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingShippingField, f.name)
		}
	}
	return nil
}
