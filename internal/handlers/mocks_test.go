package handlers

import (
	"context"

	"github.com/skillyug/skillyug-api/internal/models"
	"github.com/skillyug/skillyug-api/pkg/jwt"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of services.AuthServiceInterface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.SessionUser, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionUser), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthOpResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthOpResponse), args.Error(1)
}

func (m *MockAuthService) VerifyOtp(ctx context.Context, email, otp string) (*models.AuthOpResponse, error) {
	args := m.Called(ctx, email, otp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthOpResponse), args.Error(1)
}

func (m *MockAuthService) ResendOtp(ctx context.Context, email string) (*models.AuthOpResponse, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthOpResponse), args.Error(1)
}

func (m *MockAuthService) SendVerificationOtp(ctx context.Context, email string) (*models.AuthOpResponse, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthOpResponse), args.Error(1)
}

func (m *MockAuthService) IssueSession(user *models.SessionUser) (string, *models.Session, error) {
	args := m.Called(user)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.Session), args.Error(2)
}

func (m *MockAuthService) GetSessionTTL() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockAuthService) GetCookieDomain() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAuthService) GetCookieSecure() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockAuthService) GetTokenManager() *jwt.TokenManager {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*jwt.TokenManager)
}

// MockEmailService is a mock implementation of services.EmailServiceInterface
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Dispatch(ctx context.Context, req *models.EmailRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
