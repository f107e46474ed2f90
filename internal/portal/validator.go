package portal

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type portalValidator struct {
	validate *validator.Validate
}

func newValidator() echo.Validator {
	return &portalValidator{validate: validator.New()}
}

func (v *portalValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
