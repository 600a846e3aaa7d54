package serverutils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a bound request body.
// Returned errors are handled by the error middleware as 400s.
func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}
