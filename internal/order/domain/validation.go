package domain

import (
	"fmt"
	"net/mail"
	"strings"
)

// Validate checks that every address field is filled and the email parses
func (a ShippingAddress) Validate() error {
	var problems []string

	required := []struct{ name, value string }{
		{"email", a.Email},
		{"first_name", a.FirstName},
		{"last_name", a.LastName},
		{"address", a.Address},
		{"city", a.City},
		{"postal_code", a.PostalCode},
		{"country", a.Country},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			problems = append(problems, f.name+" is required")
		}
	}
	if strings.TrimSpace(a.Email) != "" {
		if _, err := mail.ParseAddress(a.Email); err != nil {
			problems = append(problems, "email is invalid")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidOrder, strings.Join(problems, "; "))
	}
	return nil
}
