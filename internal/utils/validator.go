package utils

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// MissingFields lists the struct fields that failed the required tag.
func MissingFields(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make([]string, 0)
	for _, e := range validationErrors {
		if e.Tag() == "required" {
			fields = append(fields, e.Field())
		}
	}
	return fields
}
