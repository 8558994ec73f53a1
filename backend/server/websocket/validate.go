package websocket

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

const tagDisplayName = "displayname"

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// RegisterValidation only fails on empty tags or builtin names
	_ = v.RegisterValidation(tagDisplayName, func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !unicode.IsPrint(r) {
				return false
			}
		}
		return true
	})
	return v
}
