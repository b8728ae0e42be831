package utils

import (
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterGinValidators installs the custom rules on gin's binding engine so
// they can be used in `binding:"..."` tags.
func RegisterGinValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterValidations(v)
	}
}

func RegisterValidations(v *validator.Validate) {
	v.RegisterValidation("isphone", IsValidPhone)
	v.RegisterValidation("isdate", IsValidDate)
}

// IsValidPhone accepts 7 to 15 digits with an optional leading + and the
// usual separators.
func IsValidPhone(fl validator.FieldLevel) bool {
	phoneNumber := strings.TrimSpace(fl.Field().String())
	phoneNumber = strings.TrimPrefix(phoneNumber, "+")

	digits := 0
	for _, char := range phoneNumber {
		switch {
		case unicode.IsDigit(char):
			digits++
		case char == ' ' || char == '-' || char == '(' || char == ')' || char == '.':
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

// IsValidDate accepts a YYYY-MM-DD calendar date.
func IsValidDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, strings.TrimSpace(fl.Field().String()))
	return err == nil
}
