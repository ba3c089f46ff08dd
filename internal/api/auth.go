package api

// Request DTOs

// RegisterRequest mirrors the registration form. Every field is required;
// blank fields are rejected before the store is touched.
type RegisterRequest struct {
	DisplayName     string `json:"display_name" validate:"required"`
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type RegisterResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Message     string `json:"message"`
	DisplayName string `json:"display_name"`
	AccessToken string `json:"access_token,omitempty"` // Token for non-cookie clients (mobile, API clients)
}

type LogoutResponse struct {
	Message string `json:"message"`
}

type MeResponse struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	ExpiresAt   int64  `json:"expires_at"` // unix seconds
}
