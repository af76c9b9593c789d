package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/kubev2v/profit-planner/internal/estimation"
)

func modeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := estimation.ParseMode(val)
	return err == nil
}
