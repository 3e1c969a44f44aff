package config

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks field constraints declared in the validate struct tags.
func (c *Config) Validate() error {
	return validate.Struct(c)
}
