package validators

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// Struct validates req and returns a field -> message map, empty when valid
func Struct(req interface{}) map[string]string {
	errs := make(map[string]string)

	err := validate.Struct(req)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["request"] = "Invalid request!"
		return errs
	}
	for _, fe := range fieldErrs {
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required!", field)
	case "email":
		return "Invalid email!"
	case "url":
		return fmt.Sprintf("%s must be a valid URL!", field)
	case "slug":
		return "Slug may only contain lowercase letters, digits and single hyphens!"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long!", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s!", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long!", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s!", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid!", field)
}
