package auth

// Keys under which the gate persists its state.
const (
	KeyIdentity = "user"
	KeyToken    = "token"
)

type SessionIdentity struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

type LoginForm struct {
	Email    string `json:"email" validate:"required,loginemail"`
	Password string `json:"password" validate:"required"`
}

type SignupForm struct {
	FirstName       string `json:"firstName" validate:"required,min=2"`
	LastName        string `json:"lastName" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,loginemail"`
	Username        string `json:"username" validate:"required,min=3"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}
