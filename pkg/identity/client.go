package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/skillyug/skillyug-api/config"
	"github.com/skillyug/skillyug-api/pkg/httpclient"
)

// requestTimeout bounds every identity service call. The service must
// fail rather than hang when the dependency is slow or unreachable.
const requestTimeout = 10 * time.Second

// ExecutionContext selects which identity service address to use.
// Server-side calls go to the internal service address; anything that
// runs in (or is handed to) a browser must use the public address.
type ExecutionContext int

const (
	ServerSide ExecutionContext = iota
	ClientSide
)

// ResolveBaseURL picks the identity service base URL for an execution
// context and normalizes it to end with the fixed API path segment.
func ResolveBaseURL(execCtx ExecutionContext, cfg config.IdentityConfig) string {
	url := cfg.InternalBaseURL
	if execCtx == ClientSide {
		url = cfg.PublicBaseURL
	}

	url = strings.TrimRight(url, "/")
	if !strings.HasSuffix(url, "/api") {
		url += "/api"
	}
	return url
}

// User is the user payload in a successful login response.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Image    string `json:"image"`
	UserType string `json:"userType"`
}

// DisplayName prefers fullName over name, matching what the identity
// service populates for locally-registered versus social accounts.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Name
}

// LoginData is the data envelope of a login response.
type LoginData struct {
	User              *User  `json:"user"`
	Token             string `json:"token"`
	NeedsVerification bool   `json:"needsVerification"`
}

// LoginResponse is the full login response body.
type LoginResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	Data    *LoginData `json:"data"`
}

// Response is the generic response body for register and OTP calls.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RegisterPayload is the request body for user registration. UserType
// must already be the canonical role name (STUDENT, MENTOR, ADMIN).
type RegisterPayload struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

// StatusError is a 5xx response from the identity service. The body is
// still decoded when present so callers can classify the failure by the
// server-provided message instead of losing it behind the status code.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("identity service error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("identity service error: status %d", e.StatusCode)
}

// Client is an HTTP client for the external identity service.
type Client struct {
	baseURL    string
	httpClient httpclient.Client
}

// NewClient creates a new identity service client. The base URL should
// come from ResolveBaseURL so the execution context stays explicit.
func NewClient(baseURL string, httpClient httpclient.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// BaseURL returns the resolved base URL (useful for logging).
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login exchanges credentials with POST /auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (int, *LoginResponse, error) {
	var resp LoginResponse
	status, err := c.post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return 0, nil, err
	}
	return status, &resp, nil
}

// Register creates a new account with POST /auth/register.
func (c *Client) Register(ctx context.Context, payload *RegisterPayload) (int, *Response, error) {
	var resp Response
	status, err := c.post(ctx, "/auth/register", payload, &resp)
	if err != nil {
		return 0, nil, err
	}
	return status, &resp, nil
}

// VerifyOTP confirms an email verification code with POST /auth/verify-otp.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (int, *Response, error) {
	var resp Response
	status, err := c.post(ctx, "/auth/verify-otp", map[string]string{
		"email": email,
		"otp":   otp,
	}, &resp)
	if err != nil {
		return 0, nil, err
	}
	return status, &resp, nil
}

// ResendOTP requests a fresh verification code with POST /auth/resend-otp.
func (c *Client) ResendOTP(ctx context.Context, email string) (int, *Response, error) {
	var resp Response
	status, err := c.post(ctx, "/auth/resend-otp", map[string]string{
		"email": email,
	}, &resp)
	if err != nil {
		return 0, nil, err
	}
	return status, &resp, nil
}

// post sends a JSON POST and decodes the response body into out.
// Statuses below 500 are returned for the caller to classify; 5xx
// responses become a StatusError carrying any decoded message, and
// transport failures are surfaced as-is.
func (c *Client) post(ctx context.Context, path string, payload any, out any) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("identity service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		var envelope Response
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return resp.StatusCode, &StatusError{StatusCode: resp.StatusCode, Message: envelope.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode identity service response: %w", err)
	}

	return resp.StatusCode, nil
}
