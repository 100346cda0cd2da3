package dto

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=buyer seller"`
}

// Validate checks field presence and the role enum.
func (r SignupRequest) Validate() error {
	fe, failed := firstFailure(validate.Struct(r))
	if !failed {
		return nil
	}
	if fe.Tag() == "required" {
		return invalid("Email, password, and role are required")
	}
	return invalid("Role must be either buyer or seller")
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate checks field presence.
func (r LoginRequest) Validate() error {
	if _, failed := firstFailure(validate.Struct(r)); failed {
		return invalid("Email and password are required.")
	}
	return nil
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// MessageResponse is the generic success envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the generic failure envelope.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}
