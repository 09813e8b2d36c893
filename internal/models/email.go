package models

// EmailType selects a transactional email template.
type EmailType string

const (
	EmailTypeOtp            EmailType = "otp"
	EmailTypePasswordReset  EmailType = "password-reset"
	EmailTypePasswordChange EmailType = "password-change"
	EmailTypeWelcome        EmailType = "welcome"
	EmailTypePurchase       EmailType = "purchase"
)

// EmailRequest is the payload for POST /api/send-email. Email and Type
// are always required; the other fields are required per template type
// (see the email package). A missing variant field is a validation
// failure, never a delivery failure.
type EmailRequest struct {
	Type  EmailType `json:"type"`
	Email string    `json:"email"`
	// OTP email
	Otp string `json:"otp,omitempty"`
	// Password reset
	ResetURL string `json:"resetUrl,omitempty"`
	// Welcome email
	FullName string `json:"fullName,omitempty"`
	// Purchase confirmation
	CourseName string  `json:"courseName,omitempty"`
	Amount     float64 `json:"amount,omitempty"`
	PaymentRef string  `json:"paymentRef,omitempty"`
}

// EmailContent is the rendered output of template selection. It is
// derived, never stored.
type EmailContent struct {
	Subject string
	HTML    string
	Text    string
}

// SendEmailResponse is the success body for POST /api/send-email.
type SendEmailResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}
