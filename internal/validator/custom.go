package validator

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

func refreshTokenValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return strings.IndexFunc(val, unicode.IsSpace) == -1
}

func webhookURLValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	u, err := url.Parse(val)
	if err != nil {
		return false
	}

	switch u.Scheme {
	case "http", "https":
		return u.Hostname() != ""
	default:
		return false
	}
}
