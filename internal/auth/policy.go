// Package auth describes who is calling and what they may do.
package auth

import (
	"github.com/xteonlyone/portfolio/backend/internal/models"
)

// Subject is the signed-in caller as carried by the session token.
type Subject struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
	Role  string `json:"role"`
}

// Authenticated reports whether the subject came from a valid session.
func (s Subject) Authenticated() bool {
	return s.ID != ""
}

// DisplayName falls back to a neutral placeholder for nameless accounts.
func (s Subject) DisplayName() string {
	if s.Name == "" {
		return "Someone"
	}
	return s.Name
}

func SubjectFromUser(u *models.User) Subject {
	return Subject{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image, Role: u.Role}
}

// Action names a privileged operation.
type Action string

const (
	ActionModerateGuestbook Action = "guestbook:moderate"
	ActionManageMessages    Action = "messages:manage"
	ActionManageBlog        Action = "blog:manage"
	ActionManagePortfolio   Action = "portfolio:manage"
	ActionUploadImages      Action = "images:upload"
	ActionViewDashboard     Action = "dashboard:view"
)

// Policy decides whether a subject may perform an action.
type Policy interface {
	IsAuthorized(subject Subject, action Action) bool
}

// AdminEmailPolicy grants every action to exactly one email address. With
// no address configured it grants nothing.
type AdminEmailPolicy struct {
	AdminEmail string
}

func NewAdminEmailPolicy(adminEmail string) *AdminEmailPolicy {
	return &AdminEmailPolicy{AdminEmail: adminEmail}
}

func (p *AdminEmailPolicy) IsAuthorized(subject Subject, _ Action) bool {
	return p.IsAdminEmail(subject.Email)
}

// IsAdminEmail is exact string equality; no case folding.
func (p *AdminEmailPolicy) IsAdminEmail(email string) bool {
	return p.AdminEmail != "" && email == p.AdminEmail
}
