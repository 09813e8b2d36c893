package services

import (
	"fmt"

	apperrors "github.com/skillyug/skillyug-api/pkg/errors"
)

// Operation names used in RemoteError and metrics labels.
const (
	OpLogin               = "login"
	OpRegister            = "register"
	OpVerifyOtp           = "verify_otp"
	OpResendOtp           = "resend_otp"
	OpSendVerificationOtp = "send_verification_otp"
)

// ValidationError is a local schema failure. It never reaches the
// network and carries every field violation at once.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	return joinViolations(e.Violations)
}

// Unwrap lets callers match with errors.Is against ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// EmailNotVerifiedError signals that the identity service wants the user
// to finish email verification before logging in. The UI branches to the
// OTP flow on this, so it must stay distinguishable from a plain
// rejection and must carry the submitted email.
type EmailNotVerifiedError struct {
	Email string
}

func (e *EmailNotVerifiedError) Error() string {
	return fmt.Sprintf("email not verified: %s", e.Email)
}

// RemoteError is a structured rejection from the identity service. The
// message is the server-supplied text when present, or an
// operation-specific fallback.
type RemoteError struct {
	Op      string
	Message string
	Cause   error
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// BadRequestError is a local validation failure in the email dispatch
// service; it never reaches the network.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

// UnavailableError means the SMTP relay is unreachable or misconfigured
// (verification failed before any message was attempted).
type UnavailableError struct {
	Details string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("email service unavailable: %s", e.Details)
}

// SendError means the relay was reachable but rejected this message.
type SendError struct {
	Details string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("failed to send email: %s", e.Details)
}
