package auth

import (
	"strings"
	"time"

	"staffdesk/internal/domain/staff"
	"staffdesk/internal/platform/validate"
)

func (f LoginForm) Normalize() LoginForm {
	return LoginForm{Email: strings.TrimSpace(f.Email), Password: f.Password}
}

func (f LoginForm) Validate() []validate.Issue {
	return validate.Struct(f)
}

func (f SignupForm) Normalize() SignupForm {
	return SignupForm{
		FirstName:       strings.TrimSpace(f.FirstName),
		LastName:        strings.TrimSpace(f.LastName),
		Email:           strings.TrimSpace(f.Email),
		Username:        strings.TrimSpace(f.Username),
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
	}
}

func (f SignupForm) Validate() []validate.Issue {
	return validate.Struct(f)
}

// IdentityFromLogin synthesizes the fixed administrator identity. Credentials
// are not checked against any user directory.
func IdentityFromLogin(form LoginForm) SessionIdentity {
	username, _, _ := strings.Cut(form.Email, "@")
	return SessionIdentity{
		ID:        1,
		Username:  username,
		Email:     form.Email,
		FirstName: "John",
		LastName:  "Doe",
		Role:      staff.RoleAdmin,
	}
}

func IdentityFromSignup(form SignupForm, now time.Time) SessionIdentity {
	return SessionIdentity{
		ID:        now.UnixMilli(),
		Username:  form.Username,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Role:      staff.RoleUser,
	}
}
