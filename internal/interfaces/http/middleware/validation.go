package middleware

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// documentPattern matches a cedula or NIT: 5 to 15 digits with an
// optional check digit (e.g. "900123456-7").
var documentPattern = regexp.MustCompile(`^[0-9]{5,15}(-[0-9])?$`)

// SetupValidator configures gin's validator: error messages use JSON
// field names and the custom "document" tag is registered.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("document", validateDocument)
}

func validateDocument(fl validator.FieldLevel) bool {
	return documentPattern.MatchString(fl.Field().String())
}
