package models

import "fmt"

// Role is the canonical user role used for authorization predicates.
// Roles have no ordering; checks are equality only.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleMentor  Role = "MENTOR"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole maps the public-facing account type to its canonical role.
// "instructor" is the marketing name for the mentor role.
func ParseRole(userType string) (Role, error) {
	switch userType {
	case "student":
		return RoleStudent, nil
	case "instructor":
		return RoleMentor, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown user type: %s", userType)
	}
}

// SessionUser is the authenticated-user identity carried by a session.
type SessionUser struct {
	ID                        string `json:"id"`
	Name                      string `json:"name,omitempty"`
	Email                     string `json:"email"`
	Image                     string `json:"image,omitempty"`
	UserType                  Role   `json:"userType"`
	AccessToken               string `json:"accessToken,omitempty"`
	EmailVerificationRequired bool   `json:"emailVerificationRequired"`
}

// Session is the decoded session shape handed to the UI layer. Only the
// auth service constructs sessions; everything else reads them.
type Session struct {
	User      SessionUser `json:"user"`
	ExpiresAt int64       `json:"exp"`
	IssuedAt  int64       `json:"iat"`
}

// IsAuthenticated reports whether the session carries a user identity.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.User.ID != ""
}

// HasRole reports whether the session user holds the given role.
func (s *Session) HasRole(role Role) bool {
	return s != nil && s.User.UserType == role
}

// IsAdmin reports whether the session user is an admin.
func (s *Session) IsAdmin() bool {
	return s.HasRole(RoleAdmin)
}

// IsMentor reports whether the session user is a mentor.
func (s *Session) IsMentor() bool {
	return s.HasRole(RoleMentor)
}

// IsStudent reports whether the session user is a student.
func (s *Session) IsStudent() bool {
	return s.HasRole(RoleStudent)
}
