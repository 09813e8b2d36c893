package services

import (
	"context"

	"github.com/skillyug/skillyug-api/internal/models"
	"github.com/skillyug/skillyug-api/pkg/jwt"
)

// AuthServiceInterface defines the interface for the auth bridge
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (*models.SessionUser, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthOpResponse, error)
	VerifyOtp(ctx context.Context, email, otp string) (*models.AuthOpResponse, error)
	ResendOtp(ctx context.Context, email string) (*models.AuthOpResponse, error)
	SendVerificationOtp(ctx context.Context, email string) (*models.AuthOpResponse, error)
	IssueSession(user *models.SessionUser) (string, *models.Session, error)
	GetSessionTTL() int
	GetCookieDomain() string
	GetCookieSecure() bool
	GetTokenManager() *jwt.TokenManager
}

// EmailServiceInterface defines the interface for email dispatch
type EmailServiceInterface interface {
	Dispatch(ctx context.Context, req *models.EmailRequest) (string, error)
}
