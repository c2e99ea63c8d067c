package api

import (
	"github.com/go-playground/validator/v10"
)

var testValidator = validator.New()

func validateStruct(v interface{}) error {
	return testValidator.Struct(v)
}
