package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/skillyug/skillyug-api/config"
	"github.com/skillyug/skillyug-api/internal/models"
	"github.com/skillyug/skillyug-api/pkg/httpclient"
	"github.com/skillyug/skillyug-api/pkg/identity"
	"github.com/skillyug/skillyug-api/pkg/jwt"
	"github.com/skillyug/skillyug-api/pkg/logger"
	"github.com/skillyug/skillyug-api/pkg/metrics"
	"go.uber.org/zap"
)

// AuthService bridges credentials to the external identity service and
// owns the mapping from its responses to the session shape. No other
// component constructs sessions.
type AuthService struct {
	identity     *identity.Client
	tokenManager *jwt.TokenManager
	config       *config.Config
}

// NewAuthService creates an AuthService bound to one execution context.
// The API process always runs server-side, but tests and any future
// edge runtime pass their own context rather than inferring it.
func NewAuthService(cfg *config.Config, execCtx identity.ExecutionContext, httpClient httpclient.Client) *AuthService {
	return &AuthService{
		identity:     identity.NewClient(identity.ResolveBaseURL(execCtx, cfg.Identity), httpClient),
		tokenManager: jwt.NewTokenManager(cfg.Session.JWTSecret, cfg.Session.JWTIssuer, cfg.Session.MaxAgeDays),
		config:       cfg,
	}
}

// Login validates credentials locally, exchanges them with the identity
// service and returns the session seed for the authenticated user.
//
// A nil, nil return means the credentials were rejected without detail.
// That soft-null is deliberate: it avoids telling a caller which half of
// the credential pair was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.SessionUser, error) {
	if violations := validateLogin(email, password); len(violations) > 0 {
		metrics.LoginAttempts.WithLabelValues("validation_failed").Inc()
		return nil, &ValidationError{Violations: violations}
	}

	start := time.Now()
	status, resp, err := s.identity.Login(ctx, email, password)
	duration := metrics.MeasureDuration(start)
	metrics.IdentityRequestDuration.WithLabelValues(OpLogin, statusLabel(err)).Observe(duration)
	if err != nil {
		logger.LogAPICall("identity", OpLogin, "error", duration, zap.Error(err))
		// The unverified-account signal can ride in on any status,
		// including a 5xx whose body still carries the message.
		if isVerificationMessage(serverMessage(err)) {
			metrics.LoginAttempts.WithLabelValues("not_verified").Inc()
			return nil, &EmailNotVerifiedError{Email: email}
		}
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, &RemoteError{Op: OpLogin, Message: messageOrFallback(serverMessage(err), "Login failed"), Cause: err}
	}
	logger.LogAPICall("identity", OpLogin, "success", duration)

	if status != 200 && status != 201 {
		if isVerificationMessage(resp.Message) {
			metrics.LoginAttempts.WithLabelValues("not_verified").Inc()
			return nil, &EmailNotVerifiedError{Email: email}
		}
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		return nil, &RemoteError{Op: OpLogin, Message: messageOrFallback(resp.Message, "Login failed")}
	}

	if resp.Status != "success" || resp.Data == nil {
		metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, nil
	}

	// Verification-pending can ride on a 2xx response
	if resp.Data.NeedsVerification {
		metrics.LoginAttempts.WithLabelValues("not_verified").Inc()
		return nil, &EmailNotVerifiedError{Email: email}
	}

	if resp.Data.User == nil || resp.Data.User.ID == "" || resp.Data.Token == "" {
		metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, nil
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return &models.SessionUser{
		ID:                        resp.Data.User.ID,
		Name:                      resp.Data.User.DisplayName(),
		Email:                     resp.Data.User.Email,
		Image:                     resp.Data.User.Image,
		UserType:                  models.Role(resp.Data.User.UserType),
		AccessToken:               resp.Data.Token,
		EmailVerificationRequired: false,
	}, nil
}

// Register validates the signup form and forwards it to the identity
// service. Schema failures are reported locally, before any network call.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthOpResponse, error) {
	if violations := validateRegistration(req); len(violations) > 0 {
		metrics.Registrations.WithLabelValues("validation_failed").Inc()
		return nil, &ValidationError{Violations: violations}
	}

	role, err := models.ParseRole(req.UserType)
	if err != nil {
		metrics.Registrations.WithLabelValues("validation_failed").Inc()
		return nil, &ValidationError{Violations: []FieldViolation{{Field: "userType", Message: err.Error()}}}
	}

	start := time.Now()
	status, resp, err := s.identity.Register(ctx, &identity.RegisterPayload{
		FullName: req.Name,
		Email:    req.Email,
		Password: req.Password,
		UserType: string(role),
	})
	duration := metrics.MeasureDuration(start)
	metrics.IdentityRequestDuration.WithLabelValues(OpRegister, statusLabel(err)).Observe(duration)
	if err != nil {
		logger.LogAPICall("identity", OpRegister, "error", duration, zap.Error(err))
		metrics.Registrations.WithLabelValues("error").Inc()
		return nil, &RemoteError{Op: OpRegister, Message: messageOrFallback(serverMessage(err), "Registration failed"), Cause: err}
	}
	logger.LogAPICall("identity", OpRegister, "success", duration)

	if status != 200 && status != 201 {
		metrics.Registrations.WithLabelValues("rejected").Inc()
		return nil, &RemoteError{Op: OpRegister, Message: messageOrFallback(resp.Message, "Registration failed")}
	}

	metrics.Registrations.WithLabelValues("success").Inc()
	logger.Info("User registered", zap.String("email", req.Email), zap.String("user_type", string(role)))
	return &models.AuthOpResponse{
		Success: true,
		Message: messageOrFallback(resp.Message, "Registration successful"),
	}, nil
}

// VerifyOtp confirms an email verification code.
func (s *AuthService) VerifyOtp(ctx context.Context, email, otp string) (*models.AuthOpResponse, error) {
	return s.otpOperation(ctx, OpVerifyOtp, "OTP verification failed", func(ctx context.Context) (int, *identity.Response, error) {
		return s.identity.VerifyOTP(ctx, email, otp)
	})
}

// ResendOtp requests a fresh verification code.
func (s *AuthService) ResendOtp(ctx context.Context, email string) (*models.AuthOpResponse, error) {
	return s.otpOperation(ctx, OpResendOtp, "Failed to resend OTP", func(ctx context.Context) (int, *identity.Response, error) {
		return s.identity.ResendOTP(ctx, email)
	})
}

// SendVerificationOtp kicks off verification for an unverified account.
// The identity service reuses the resend endpoint for this.
func (s *AuthService) SendVerificationOtp(ctx context.Context, email string) (*models.AuthOpResponse, error) {
	return s.otpOperation(ctx, OpSendVerificationOtp, "Failed to send verification code", func(ctx context.Context) (int, *identity.Response, error) {
		return s.identity.ResendOTP(ctx, email)
	})
}

func (s *AuthService) otpOperation(ctx context.Context, op, fallback string, call func(context.Context) (int, *identity.Response, error)) (*models.AuthOpResponse, error) {
	start := time.Now()
	status, resp, err := call(ctx)
	duration := metrics.MeasureDuration(start)
	metrics.IdentityRequestDuration.WithLabelValues(op, statusLabel(err)).Observe(duration)
	if err != nil {
		logger.LogAPICall("identity", op, "error", duration, zap.Error(err))
		metrics.OtpOperations.WithLabelValues(op, "error").Inc()
		return nil, &RemoteError{Op: op, Message: messageOrFallback(serverMessage(err), fallback), Cause: err}
	}
	logger.LogAPICall("identity", op, "success", duration)

	if status != 200 && status != 201 {
		metrics.OtpOperations.WithLabelValues(op, "rejected").Inc()
		return nil, &RemoteError{Op: op, Message: messageOrFallback(resp.Message, fallback)}
	}

	metrics.OtpOperations.WithLabelValues(op, "success").Inc()
	return &models.AuthOpResponse{
		Success: true,
		Message: resp.Message,
	}, nil
}

// IssueSession encodes a session seed into a signed token and the
// decoded session shape the client sees.
func (s *AuthService) IssueSession(user *models.SessionUser) (string, *models.Session, error) {
	claims := &jwt.SessionClaims{
		UserType:                  string(user.UserType),
		AccessToken:               user.AccessToken,
		EmailVerificationRequired: user.EmailVerificationRequired,
		Email:                     user.Email,
		Name:                      user.Name,
		Image:                     user.Image,
	}
	claims.Subject = user.ID

	token, err := s.tokenManager.GenerateToken(claims)
	if err != nil {
		return "", nil, err
	}

	return token, &models.Session{
		User:      *user,
		ExpiresAt: claims.ExpiresAt.Unix(),
		IssuedAt:  claims.IssuedAt.Unix(),
	}, nil
}

// GetSessionTTL returns the session lifetime in seconds (for cookies).
func (s *AuthService) GetSessionTTL() int {
	return int(s.tokenManager.GetExpirationTime().Seconds())
}

// GetCookieDomain returns the configured session cookie domain.
func (s *AuthService) GetCookieDomain() string {
	return s.config.Session.CookieDomain
}

// GetCookieSecure returns whether the session cookie is Secure-only.
func (s *AuthService) GetCookieSecure() bool {
	return s.config.Session.CookieSecure
}

// GetTokenManager exposes the token manager for the session middleware.
func (s *AuthService) GetTokenManager() *jwt.TokenManager {
	return s.tokenManager
}

// ResolveRedirect is the post-authentication redirect policy. An
// in-progress verification flow is never redirected away from; login
// pages and the bare base URL land on the dashboard; anything else is
// honored as-is. The function is idempotent.
func ResolveRedirect(target, base string) string {
	if strings.Contains(target, "verify-email") {
		return target
	}
	if strings.Contains(target, "/login") || target == base {
		return base + "/dashboard"
	}
	return target
}

// validateLogin checks credential shape before any network call.
func validateLogin(email, password string) []FieldViolation {
	var violations []FieldViolation
	if !validEmail(email) {
		violations = append(violations, FieldViolation{Field: "email", Message: "Invalid email"})
	}
	if password == "" {
		violations = append(violations, FieldViolation{Field: "password", Message: "Password is required"})
	}
	return violations
}

// validateRegistration applies the signup schema and returns every
// violation, matching the form's client-side messages.
func validateRegistration(req *models.RegisterRequest) []FieldViolation {
	var violations []FieldViolation

	if len(req.Name) < 2 {
		violations = append(violations, FieldViolation{Field: "name", Message: "Name must be at least 2 characters"})
	}
	if !validEmail(req.Email) {
		violations = append(violations, FieldViolation{Field: "email", Message: "Invalid email"})
	}
	if len(req.Password) < 8 {
		violations = append(violations, FieldViolation{Field: "password", Message: "Password must be 8+ characters"})
	} else if !validPasswordComposition(req.Password) {
		violations = append(violations, FieldViolation{Field: "password", Message: "Password needs uppercase, lowercase, number and special character"})
	}
	if req.ConfirmPassword == "" {
		violations = append(violations, FieldViolation{Field: "confirmPassword", Message: "Confirm password required"})
	} else if req.Password != req.ConfirmPassword {
		violations = append(violations, FieldViolation{Field: "confirmPassword", Message: "Passwords don't match"})
	}
	if _, err := models.ParseRole(req.UserType); err != nil {
		violations = append(violations, FieldViolation{Field: "userType", Message: "User type must be student, instructor or admin"})
	}
	if !req.AgreeToTerms {
		violations = append(violations, FieldViolation{Field: "agreeToTerms", Message: "Must agree to terms"})
	}

	return violations
}

// isVerificationMessage matches the identity service's unverified-account
// wording regardless of the HTTP status it rode in on.
func isVerificationMessage(msg string) bool {
	return strings.Contains(msg, "verify") || strings.Contains(msg, "not verified")
}

// serverMessage extracts the identity service's own message from a 5xx
// error, when the response body carried one.
func serverMessage(err error) string {
	var statusErr *identity.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return ""
}

func messageOrFallback(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
