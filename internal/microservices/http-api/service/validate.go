package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"yamdb/internal/microservices/http-api/models"

	"github.com/go-playground/validator/v10"
)

var (
	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

	// reservedUsername would shadow the /users/me route.
	reservedUsername = "me"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields under their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "notme", func(fl validator.FieldLevel) bool {
		return fl.Field().String() != reservedUsername
	})
	mustRegister(v, "slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "role", func(fl validator.FieldLevel) bool {
		return models.ValidRole(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// validateStruct runs the struct tags of s and returns field-level messages.
func validateStruct(s any) *ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	out := &ValidationError{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add(NonFieldErrors, err.Error())
		return out
	}
	for _, fe := range verrs {
		out.Add(fieldName(fe), messageFor(fe))
	}
	return out
}

// fieldName strips the struct prefix and keeps slice indices, e.g. "genre[1]".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		if fe.Kind() == reflect.String {
			return "This field may not be blank."
		}
		return fmt.Sprintf("Ensure this field has at least %s elements.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "gte", "lte":
		if fe.StructField() == "Score" {
			return "Score must be an integer from 1 to 10."
		}
		return fmt.Sprintf("Ensure this value is within bounds (%s %s).", fe.Tag(), fe.Param())
	case "email":
		return "Enter a valid email address."
	case "username":
		return "Enter a valid username. It may contain only letters, numbers, and @/./+/-/_ characters."
	case "notme":
		return fmt.Sprintf("Username %q is not available.", reservedUsername)
	case "slug":
		return "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
	case "role":
		return fmt.Sprintf("Must be one of: %s.", strings.Join(models.Roles, ", "))
	default:
		return fe.Error()
	}
}
