package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"yatube/internal/shared/forms"
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// SignupForm bind từ POST /auth/signup/
type SignupForm struct {
	Username        string `form:"username" json:"username"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password1" json:"password1"`
	PasswordConfirm string `form:"password2" json:"password2"`
}

// Normalize trim khoảng trắng ở username và email
func (f *SignupForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
}

func (f SignupForm) Validate() forms.FieldErrors {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Username,
			validation.Required.Error(forms.MsgRequired),
			validation.Length(1, 150).Error("Ensure this value has at most 150 characters."),
			validation.Match(usernamePattern).Error("Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."),
		),
		validation.Field(&f.Email,
			is.EmailFormat.Error("Enter a valid email address."),
		),
		validation.Field(&f.Password,
			validation.Required.Error(forms.MsgRequired),
			validation.Length(8, 128).Error("Password must be 8-128 characters."),
		),
		validation.Field(&f.PasswordConfirm,
			validation.Required.Error(forms.MsgRequired),
		),
	)

	fe, convErr := forms.FromValidation(err)
	if convErr != nil {
		fe = forms.FieldErrors{}
		fe.Add("__all__", convErr.Error())
	}
	if f.Password != "" && f.PasswordConfirm != "" && f.Password != f.PasswordConfirm {
		fe.Add("password2", "The two password fields didn't match.")
	}
	return fe
}

// LoginForm bind từ POST /auth/login/
type LoginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func (f LoginForm) Validate() forms.FieldErrors {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Username, validation.Required.Error(forms.MsgRequired)),
		validation.Field(&f.Password, validation.Required.Error(forms.MsgRequired)),
	)
	fe, convErr := forms.FromValidation(err)
	if convErr != nil {
		fe = forms.FieldErrors{}
		fe.Add("__all__", convErr.Error())
	}
	return fe
}
