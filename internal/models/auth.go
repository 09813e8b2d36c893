package models

// LoginRequest is the credential payload for POST /auth/login.
// CallbackURL is where the client wants to land after login; the
// redirect policy decides whether to honor it.
type LoginRequest struct {
	Email       string `json:"email" binding:"required,email,max=255"`
	Password    string `json:"password" binding:"required"`
	CallbackURL string `json:"callbackUrl"`
}

// LoginResponse is returned after a successful credential exchange.
type LoginResponse struct {
	Success     bool     `json:"success"`
	Session     *Session `json:"session,omitempty"`
	RedirectURL string   `json:"redirectUrl,omitempty"`
}

// RegisterRequest is the payload for POST /auth/register. Validation
// happens in the auth service so schema failures never reach the
// network; the JSON shape mirrors the signup form.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	UserType        string `json:"userType"`
	AgreeToTerms    bool   `json:"agreeToTerms"`
}

// VerifyOtpRequest is the payload for POST /auth/verify-otp.
type VerifyOtpRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
	Otp   string `json:"otp" binding:"required,min=4,max=10"`
}

// ResendOtpRequest is the payload for POST /auth/resend-otp and
// POST /auth/send-verification-otp.
type ResendOtpRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

// AuthOpResponse is returned by registration and OTP operations.
type AuthOpResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// LogoutResponse is returned after logout.
type LogoutResponse struct {
	Success bool `json:"success"`
}
