package services

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError maps form field names to the message shown next to them.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type SignInForm struct {
	Email    string `json:"email" validate:"required,loose_email"`
	Password string `json:"password" validate:"required"`
}

type SignUpForm struct {
	Email           string `json:"email" validate:"required,loose_email"`
	RetailerID      string `json:"retailerId" validate:"required"`
	SecretCode      string `json:"secretCode" validate:"required,min=6"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// fieldMessages holds the form copy per field and failed rule.
var fieldMessages = map[string]map[string]string{
	"email": {
		"required":    "Email is required",
		"loose_email": "Please enter a valid email address",
	},
	"password": {
		"required": "Password is required",
		"min":      "Password must be at least 8 characters",
	},
	"retailerId": {
		"required": "Please select your restaurant",
	},
	"secretCode": {
		"required": "Secret code is required",
		"min":      "Secret code must be at least 6 characters",
	},
	"confirmPassword": {
		"required": "Please confirm your password",
		"eqfield":  "Passwords do not match",
	},
}

func ValidateSignIn(form SignInForm) error {
	return validateForm(form)
}

func ValidateSignUp(form SignUpForm) error {
	return validateForm(form)
}

func validateForm(form interface{}) error {
	err := formValidator.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := fe.Field()
		if _, seen := fields[name]; seen {
			continue
		}
		if msg, ok := fieldMessages[name][fe.Tag()]; ok {
			fields[name] = msg
		} else {
			fields[name] = "Invalid value"
		}
	}
	return &ValidationError{Fields: fields}
}
