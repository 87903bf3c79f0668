package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrFoodNotFound       = errors.New("food not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("order status transition not allowed")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// FormErrors maps a form field to its messages. "__all__" holds non-field errors.
type FormErrors map[string][]string

func (fe FormErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe FormErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(fe[f], " "))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

func (fe FormErrors) orNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}
