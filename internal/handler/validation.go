package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"statutory-engine/internal/model"
	"statutory-engine/internal/rules"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var setupOnce sync.Once

// SetupValidator registers the custom binding tags and reports fields by their JSON name.
// Safe to call more than once.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		mustRegister(v, "component_code", func(fl validator.FieldLevel) bool {
			return rules.IsValidComponentCode(fl.Field().String())
		})
		mustRegister(v, "iso_date", func(fl validator.FieldLevel) bool {
			_, err := model.ParseDate(fl.Field().String())
			return err == nil
		})
	})
}

// mustRegister panics if tag cannot be registered
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// validationMessage flattens binding errors into one readable line
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request payload: " + err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field(), fieldMessage(e)))
	}
	return "Invalid request payload: " + strings.Join(parts, "; ")
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "oneof":
		return "must be one of: " + e.Param()
	case "component_code":
		return "must be 1-50 characters of A-Z, 0-9, '_' or '-'"
	case "iso_date":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "invalid value"
	}
}
