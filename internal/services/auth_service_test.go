package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/skillyug/skillyug-api/config"
	"github.com/skillyug/skillyug-api/internal/models"
	"github.com/skillyug/skillyug-api/internal/services"
	"github.com/skillyug/skillyug-api/pkg/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			AppEnv: "development",
		},
		Identity: config.IdentityConfig{
			InternalBaseURL: "http://backend:5000",
			PublicBaseURL:   "https://api.example.com",
		},
		Session: config.SessionConfig{
			JWTSecret:  "test-secret-at-least-32-chars-long!!",
			JWTIssuer:  "skillyug-api",
			MaxAgeDays: 7,
		},
		Frontend: config.FrontendConfig{
			BaseURL: "https://app.example.com",
		},
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)
	ctx := context.Background()

	mockHTTPClient.On("Do", mock.AnythingOfType("*http.Request")).Return(jsonResponse(http.StatusOK, `{
		"status": "success",
		"message": "Login successful",
		"data": {
			"user": {"id": "u-123", "fullName": "Jane Roe", "email": "jane@example.com", "userType": "STUDENT"},
			"token": "access-token-abc"
		}
	}`), nil).Once()

	user, err := service.Login(ctx, "jane@example.com", "Passw0rd!")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u-123", user.ID)
	assert.Equal(t, "Jane Roe", user.Name)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, models.RoleStudent, user.UserType)
	assert.Equal(t, "access-token-abc", user.AccessToken)
	assert.False(t, user.EmailVerificationRequired)

	mockHTTPClient.AssertExpectations(t)
}

func TestAuthService_Login_FullNameFallsBackToName(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)

	mockHTTPClient.On("Do", mock.AnythingOfType("*http.Request")).Return(jsonResponse(http.StatusOK, `{
		"status": "success",
		"data": {
			"user": {"id": "u-9", "name": "social-user", "email": "s@example.com", "userType": "MENTOR"},
			"token": "tok"
		}
	}`), nil).Once()

	user, err := service.Login(context.Background(), "s@example.com", "Passw0rd!")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "social-user", user.Name)
	assert.Equal(t, models.RoleMentor, user.UserType)
}

func TestAuthService_Login_EmailNotVerified_ByMessage(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)

	// Any non-2xx status with a verification message must branch to the
	// OTP flow, carrying the submitted email.
	mockHTTPClient.On("Do", mock.AnythingOfType("*http.Request")).Return(jsonResponse(http.StatusForbidden, `{
		"status": "fail",
		"message": "Please verify your email before logging in"
	}`), nil).Once()

	user, err := service.Login(context.Background(), "jane@example.com", "Passw0rd!")
	assert.Nil(t, user)

	var notVerified *services.EmailNotVerifiedError
	require.ErrorAs(t, err, &notVerified)
	assert.Equal(t, "jane@example.com", notVerified.Email)
}

func TestAuthService_Login_EmailNotVerified_ByFlag(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)

	// Verification-pending can also ride on a 2xx response body.
	mockHTTPClient.On("Do", mock.AnythingOfType("*http.Request")).Return(jsonResponse(http.StatusOK, `{
		"status": "success",
		"data": {"needsVerification": true}
	}`), nil).Once()

	user, err := service.Login(context.Background(), "jane@example.com", "Passw0rd!")
	assert.Nil(t, user)

	var notVerified *services.EmailNotVerifiedError
	require.ErrorAs(t, err, &notVerified)
	assert.Equal(t, "jane@example.com", notVerified.Email)
}

func TestAuthService_Login_SilentRejection(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)

	// A nominally successful response missing the token must yield
	// neither a session nor a detailed error.
	mockHTTPClient.On("Do", mock.AnythingOfType("*http.Request")).Return(jsonResponse(http.StatusOK, `{
		"status": "success",
		"data": {"user": {"id": "u-123"}}
	}`), nil).Once()

	user, err := service.Login(context.Background(), "jane@example.com", "Passw0rd!")
	assert.Nil(t, user)
	assert.NoError(t, err)
}

func TestAuthService_Login_RemoteRejection(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)

	mockHTTPClient.On("Do", mock.AnythingOfType("*http.Request")).Return(jsonResponse(http.StatusUnauthorized, `{
		"status": "fail",
		"message": "Invalid credentials"
	}`), nil).Once()

	user, err := service.Login(context.Background(), "jane@example.com", "wrong-pass1A!")
	assert.Nil(t, user)

	var remoteErr *services.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "Invalid credentials", remoteErr.Message)
}

func TestAuthService_Login_TransportError(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)

	mockHTTPClient.On("Do", mock.AnythingOfType("*http.Request")).Return(nil, errors.New("connection refused")).Once()

	user, err := service.Login(context.Background(), "jane@example.com", "Passw0rd!")
	assert.Nil(t, user)

	var remoteErr *services.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "Login failed", remoteErr.Message)
	assert.Error(t, remoteErr.Cause)
}

func TestAuthService_Login_EmailNotVerified_OnServerError(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)

	mockHTTPClient.On("Do", mock.AnythingOfType("*http.Request")).Return(jsonResponse(http.StatusInternalServerError, `{
		"status": "fail",
		"message": "Email not verified"
	}`), nil).Once()

	user, err := service.Login(context.Background(), "jane@example.com", "Passw0rd!")
	assert.Nil(t, user)

	var notVerified *services.EmailNotVerifiedError
	require.ErrorAs(t, err, &notVerified)
	assert.Equal(t, "jane@example.com", notVerified.Email)
}

func TestAuthService_Login_ServerErrorCarriesMessage(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)

	mockHTTPClient.On("Do", mock.AnythingOfType("*http.Request")).Return(jsonResponse(http.StatusBadGateway, `{
		"status": "error",
		"message": "Auth database unavailable"
	}`), nil).Once()

	user, err := service.Login(context.Background(), "jane@example.com", "Passw0rd!")
	assert.Nil(t, user)

	var remoteErr *services.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "Auth database unavailable", remoteErr.Message)
	assert.Error(t, remoteErr.Cause)
}

func TestAuthService_Login_LocalValidation(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)

	user, err := service.Login(context.Background(), "not-an-email", "")
	assert.Nil(t, user)

	var validationErr *services.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Violations, 2)

	// Schema failures never reach the network.
	mockHTTPClient.AssertNotCalled(t, "Do")
}

func TestAuthService_Register_Success(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)

	mockHTTPClient.On("Do", mock.AnythingOfType("*http.Request")).Return(jsonResponse(http.StatusCreated, `{
		"status": "success",
		"message": "Account created. Check your email for the verification code."
	}`), nil).Once()

	resp, err := service.Register(context.Background(), &models.RegisterRequest{
		Name:            "Jane Roe",
		Email:           "jane@example.com",
		Password:        "Passw0rd!",
		ConfirmPassword: "Passw0rd!",
		UserType:        "student",
		AgreeToTerms:    true,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "Account created. Check your email for the verification code.", resp.Message)

	mockHTTPClient.AssertExpectations(t)
}

func TestAuthService_Register_InstructorMapsToMentor(t *testing.T) {
	role, err := models.ParseRole("instructor")
	require.NoError(t, err)
	assert.Equal(t, models.RoleMentor, role)
}

func TestAuthService_Register_PasswordMismatch(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)

	resp, err := service.Register(context.Background(), &models.RegisterRequest{
		Name:            "Jane Roe",
		Email:           "jane@example.com",
		Password:        "Passw0rd!",
		ConfirmPassword: "Different1!",
		UserType:        "student",
		AgreeToTerms:    true,
	})
	assert.Nil(t, resp)

	var validationErr *services.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "Passwords don't match")

	mockHTTPClient.AssertNotCalled(t, "Do")
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)

	resp, err := service.Register(context.Background(), &models.RegisterRequest{
		Name:            "Jane Roe",
		Email:           "jane@example.com",
		Password:        "alllowercase1",
		ConfirmPassword: "alllowercase1",
		UserType:        "student",
		AgreeToTerms:    true,
	})
	assert.Nil(t, resp)

	var validationErr *services.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "Password needs uppercase, lowercase, number and special character")

	mockHTTPClient.AssertNotCalled(t, "Do")
}

func TestAuthService_Register_CollectsAllViolations(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)

	resp, err := service.Register(context.Background(), &models.RegisterRequest{
		Name:     "J",
		Email:    "bad",
		Password: "short",
		UserType: "wizard",
	})
	assert.Nil(t, resp)

	var validationErr *services.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.GreaterOrEqual(t, len(validationErr.Violations), 5)

	mockHTTPClient.AssertNotCalled(t, "Do")
}

func TestAuthService_Register_RemoteRejection(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)

	mockHTTPClient.On("Do", mock.AnythingOfType("*http.Request")).Return(jsonResponse(http.StatusConflict, `{
		"status": "fail",
		"message": "Email already registered"
	}`), nil).Once()

	resp, err := service.Register(context.Background(), &models.RegisterRequest{
		Name:            "Jane Roe",
		Email:           "jane@example.com",
		Password:        "Passw0rd!",
		ConfirmPassword: "Passw0rd!",
		UserType:        "student",
		AgreeToTerms:    true,
	})
	assert.Nil(t, resp)

	var remoteErr *services.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "Email already registered", remoteErr.Message)
}

func TestAuthService_VerifyOtp(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)

	mockHTTPClient.On("Do", mock.AnythingOfType("*http.Request")).Return(jsonResponse(http.StatusOK, `{
		"status": "success",
		"message": "Email verified"
	}`), nil).Once()

	resp, err := service.VerifyOtp(context.Background(), "jane@example.com", "123456")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Email verified", resp.Message)
}

func TestAuthService_VerifyOtp_Rejected(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)

	mockHTTPClient.On("Do", mock.AnythingOfType("*http.Request")).Return(jsonResponse(http.StatusBadRequest, `{
		"status": "fail",
		"message": ""
	}`), nil).Once()

	resp, err := service.VerifyOtp(context.Background(), "jane@example.com", "000000")
	assert.Nil(t, resp)

	var remoteErr *services.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "OTP verification failed", remoteErr.Message)
}

func TestAuthService_VerifyOtp_ServerErrorCarriesMessage(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)

	mockHTTPClient.On("Do", mock.AnythingOfType("*http.Request")).Return(jsonResponse(http.StatusInternalServerError, `{
		"status": "error",
		"message": "OTP store unreachable"
	}`), nil).Once()

	resp, err := service.VerifyOtp(context.Background(), "jane@example.com", "123456")
	assert.Nil(t, resp)

	var remoteErr *services.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "OTP store unreachable", remoteErr.Message)
	assert.Error(t, remoteErr.Cause)
}

func TestAuthService_SendVerificationOtp_Fallback(t *testing.T) {
	mockHTTPClient := new(MockHTTPClient)
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, mockHTTPClient)

	mockHTTPClient.On("Do", mock.AnythingOfType("*http.Request")).Return(nil, errors.New("timeout")).Once()

	resp, err := service.SendVerificationOtp(context.Background(), "jane@example.com")
	assert.Nil(t, resp)

	var remoteErr *services.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "Failed to send verification code", remoteErr.Message)
}

func TestAuthService_IssueSession_RoundTrip(t *testing.T) {
	service := services.NewAuthService(testAuthConfig(), identity.ServerSide, new(MockHTTPClient))

	seed := &models.SessionUser{
		ID:                        "u-123",
		Name:                      "Jane Roe",
		Email:                     "jane@example.com",
		UserType:                  models.RoleStudent,
		AccessToken:               "access-token-abc",
		EmailVerificationRequired: false,
	}

	token, session, err := service.IssueSession(seed)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotNil(t, session)
	assert.Greater(t, session.ExpiresAt, session.IssuedAt)

	claims, err := service.GetTokenManager().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-123", claims.UserID())
	assert.Equal(t, string(models.RoleStudent), claims.UserType)
	assert.Equal(t, "access-token-abc", claims.AccessToken)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.False(t, claims.EmailVerificationRequired)
}

func TestResolveRedirect(t *testing.T) {
	base := "https://app.example.com"

	tests := []struct {
		name     string
		target   string
		expected string
	}{
		{"verification flow is never redirected away", base + "/verify-email?email=a@b.c", base + "/verify-email?email=a@b.c"},
		{"login page lands on dashboard", base + "/login", base + "/dashboard"},
		{"bare base lands on dashboard", base, base + "/dashboard"},
		{"explicit target is honored", base + "/courses/go-101", base + "/courses/go-101"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, services.ResolveRedirect(tt.target, base))
		})
	}
}

func TestResolveRedirect_Idempotent(t *testing.T) {
	base := "https://app.example.com"
	for _, target := range []string{base, base + "/login", base + "/verify-email", base + "/courses/go-101"} {
		once := services.ResolveRedirect(target, base)
		assert.Equal(t, once, services.ResolveRedirect(once, base))
	}
}
