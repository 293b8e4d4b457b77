// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// EchoValidator wraps a validator.Validate instance so Echo's c.Validate
// can check struct tags on bound request DTOs.
type EchoValidator struct {
	validate *validator.Validate
}

// New creates an EchoValidator backed by a fresh validator instance.
func New() *EchoValidator {
	return &EchoValidator{validate: validator.New()}
}

// Validate implements the echo.Validator interface. Failures surface as a 400
// so an unhandled validation error never turns into a server error.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
