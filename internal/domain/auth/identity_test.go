package auth

import (
	"testing"
	"time"
)

func TestIdentityFromLogin(t *testing.T) {
	got := IdentityFromLogin(LoginForm{Email: "jane.doe@corp.io", Password: "secret1"})
	want := SessionIdentity{ID: 1, Username: "jane.doe", Email: "jane.doe@corp.io", FirstName: "John", LastName: "Doe", Role: "admin"}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestIdentityFromSignup(t *testing.T) {
	now := time.UnixMilli(1_760_000_000_123)
	form := SignupForm{FirstName: "Sam", LastName: "Lee", Email: "sam@corp.io", Username: "saml"}
	got := IdentityFromSignup(form, now)
	if got.ID != 1_760_000_000_123 || got.Role != "user" || got.Username != "saml" || got.FirstName != "Sam" {
		t.Fatalf("unexpected identity %+v", got)
	}
}

func TestLoginFormValidate(t *testing.T) {
	tests := []struct {
		name  string
		form  LoginForm
		field string
	}{
		{name: "valid", form: LoginForm{Email: "a@b.co", Password: "secret"}},
		{name: "missing email", form: LoginForm{Password: "secret"}, field: "email"},
		{name: "email without dot", form: LoginForm{Email: "a@b", Password: "secret"}, field: "email"},
		{name: "email with space", form: LoginForm{Email: "a b@c.de", Password: "secret"}, field: "email"},
		{name: "short password accepted", form: LoginForm{Email: "a@b.co", Password: "abc"}},
		{name: "missing password", form: LoginForm{Email: "a@b.co"}, field: "password"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			issues := tc.form.Normalize().Validate()
			if tc.field == "" {
				if len(issues) != 0 {
					t.Fatalf("expected no issues, got %+v", issues)
				}
				return
			}
			if len(issues) != 1 || issues[0].Field != tc.field {
				t.Fatalf("expected one issue on %s, got %+v", tc.field, issues)
			}
		})
	}
}

func TestSignupFormValidate(t *testing.T) {
	valid := SignupForm{FirstName: "Sam", LastName: "Lee", Email: "sam@corp.io", Username: "saml", Password: "secret", ConfirmPassword: "secret"}

	tests := []struct {
		name   string
		mutate func(*SignupForm)
		field  string
	}{
		{name: "valid", mutate: func(*SignupForm) {}},
		{name: "confirm mismatch", mutate: func(f *SignupForm) { f.ConfirmPassword = "secreT" }, field: "confirmPassword"},
		{name: "short username", mutate: func(f *SignupForm) { f.Username = "sl" }, field: "username"},
		{name: "short password", mutate: func(f *SignupForm) { f.Password, f.ConfirmPassword = "abc", "abc" }, field: "password"},
		{name: "missing first name", mutate: func(f *SignupForm) { f.FirstName = "  " }, field: "firstName"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			form := valid
			tc.mutate(&form)
			issues := form.Normalize().Validate()
			if tc.field == "" {
				if len(issues) != 0 {
					t.Fatalf("expected no issues, got %+v", issues)
				}
				return
			}
			if len(issues) != 1 || issues[0].Field != tc.field {
				t.Fatalf("expected one issue on %s, got %+v", tc.field, issues)
			}
		})
	}
}
