package domain

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// ten digits with a leading zero, after spaces and hyphens are stripped
	phonePattern  = regexp.MustCompile(`^0\d{9}$`)
	phoneStripper = strings.NewReplacer(" ", "", "-", "")
)

// Customer is a record of the customer directory
type Customer struct {
	ID        string `json:"id" yaml:"id"`
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`
	Address   string `json:"address" yaml:"address"`
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Validate checks required fields and the email/phone formats
func (c Customer) Validate() error {
	switch {
	case strings.TrimSpace(c.ID) == "":
		return invalid(ErrInvalidCustomer, "id is required")
	case strings.TrimSpace(c.FirstName) == "":
		return invalid(ErrInvalidCustomer, "first_name is required")
	case strings.TrimSpace(c.LastName) == "":
		return invalid(ErrInvalidCustomer, "last_name is required")
	case strings.TrimSpace(c.Address) == "":
		return invalid(ErrInvalidCustomer, "address is required")
	case !emailPattern.MatchString(c.Email):
		return invalid(ErrInvalidCustomer, "email is not valid")
	case !phonePattern.MatchString(phoneStripper.Replace(c.Phone)):
		return invalid(ErrInvalidCustomer, "phone must be 10 digits starting with 0")
	}
	return nil
}
