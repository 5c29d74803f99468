package handler

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Abd-ElghanyMohammed/myflash/internal/apierror"
	"github.com/Abd-ElghanyMohammed/myflash/internal/errs"
	"github.com/Abd-ElghanyMohammed/myflash/internal/middleware"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeError maps a service error onto the canonical error envelope.
// Persistence details never leak to the client; the category string
// tells the frontend which class of failure it is. The error is logged
// here, not pushed onto c.Errors: this function writes the response
// itself, and the ErrorHandler middleware must not write a second one.
func writeError(c *gin.Context, err error) {
	status, category := errs.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError && category != "PARTIAL_FAILURE" {
		msg = "internal server error"
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Err(err).
			Msg("request failed")
	}
	c.JSON(status, gin.H{"detail": msg, "category": category})
}
