package auth

// RegisterRequest represents the request payload for user registration.
type RegisterRequest struct {
	UserName       string `validate:"required,min=3,max=100"`
	AccountNumber  string `validate:"required"`
	EmailAddress   string `validate:"required,email"`
	IdentityNumber string `validate:"required"`
	Password       string `validate:"required,min=6"`
}

// RegisterResponse represents the confirmation returned after registration.
type RegisterResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// LoginRequest represents the request payload for authentication.
type LoginRequest struct {
	EmailAddress string `validate:"required,email"`
	Password     string `validate:"required"`
}

// LoginResponse carries the signed bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}
