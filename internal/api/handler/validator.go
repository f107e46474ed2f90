package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// echoValidator adapts go-playground/validator to echo's Validator interface.
type echoValidator struct {
	validate *validator.Validate
}

// NewValidator returns an echo.Validator backed by go-playground/validator.
func NewValidator() echo.Validator {
	return &echoValidator{validate: validator.New()}
}

func (v *echoValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
