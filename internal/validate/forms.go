package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

func init() {
	err := v.RegisterValidation("strongpw", func(fl validator.FieldLevel) bool {
		return Password(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

type LoginForm struct {
	Email    string `form:"email" json:"email" validate:"required,email,max=80"`
	Password string `form:"password" json:"password" validate:"required,max=64"`
}

type RegisterForm struct {
	Name     string `form:"name" json:"name" validate:"required,max=40"`
	Email    string `form:"email" json:"email" validate:"required,email,max=80"`
	Password string `form:"password" json:"password" validate:"required,strongpw"`
	Confirm  string `form:"confirmPassword" json:"confirmPassword" validate:"required"`
}

type ProfileForm struct {
	Name  string `form:"name" json:"name" validate:"required,max=40"`
	Email string `form:"email" json:"email" validate:"required,email,max=80"`
}

type CheckoutForm struct {
	Name  string `form:"name" json:"name" validate:"required,max=40"`
	Email string `form:"email" json:"email" validate:"required,email,max=80"`
}

// Struct trims string fields in place, validates, and turns the first failure into
// a message fit for a toast.
func Struct(s any) error {
	trim(s)
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return err
	}
	fe := ves[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "email":
		return errors.New("email is not valid")
	case "strongpw":
		return errors.New("password needs 8+ characters with upper, lower, digit and symbol")
	case "max":
		return fmt.Errorf("%s is too long", field)
	default:
		return fmt.Errorf("%s is not valid", field)
	}
}

func trim(s any) {
	switch f := s.(type) {
	case *LoginForm:
		f.Email = strings.TrimSpace(f.Email)
	case *RegisterForm:
		f.Name = strings.TrimSpace(f.Name)
		f.Email = strings.TrimSpace(f.Email)
	case *ProfileForm:
		f.Name = strings.TrimSpace(f.Name)
		f.Email = strings.TrimSpace(f.Email)
	case *CheckoutForm:
		f.Name = strings.TrimSpace(f.Name)
		f.Email = strings.TrimSpace(f.Email)
	}
}
