package services

import (
	"context"
	"errors"
	"strings"

	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/internal/repositories"
	"github.com/xteonlyone/portfolio/backend/pkg/firebase"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdminMatcher recognises the admin account at sign-in.
type AdminMatcher interface {
	IsAdminEmail(email string) bool
}

// AccountService turns a verified Google identity into a local user and a
// session token.
type AccountService struct {
	users  repositories.UserRepository
	tokens *auth.TokenIssuer
	admins AdminMatcher
	logger *zap.Logger
}

func NewAccountService(users repositories.UserRepository, tokens *auth.TokenIssuer, admins AdminMatcher, logger *zap.Logger) *AccountService {
	return &AccountService{users: users, tokens: tokens, admins: admins, logger: logger}
}

// SignIn upserts the user by Firebase UID, falling back to email for
// accounts created before they were linked. Profile fields are refreshed on
// every sign-in.
func (s *AccountService) SignIn(ctx context.Context, id firebase.Identity) (*models.FirebaseLoginResponse, error) {
	email := strings.TrimSpace(id.Email)
	if id.UID == "" || email == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.findUser(ctx, id.UID, email)
	if err != nil {
		return nil, fail(s.logger, "Database error", err, zap.String("firebase_uid", id.UID))
	}

	role := models.RoleUser
	if s.admins.IsAdminEmail(email) {
		role = models.RoleAdmin
	}

	if user == nil {
		user = &models.User{
			FirebaseUID: id.UID,
			Name:        id.Name,
			Email:       email,
			Image:       id.Picture,
			Role:        role,
		}
		if err := s.users.CreateUser(ctx, user); err != nil {
			return nil, fail(s.logger, "Failed to create user", err, zap.String("firebase_uid", id.UID))
		}
	} else {
		user.FirebaseUID = id.UID
		user.Email = email
		if id.Name != "" {
			user.Name = id.Name
		}
		if id.Picture != "" {
			user.Image = id.Picture
		}
		user.Role = role
		if err := s.users.UpdateUser(ctx, user); err != nil {
			return nil, fail(s.logger, "Failed to update user details", err, zap.String("user_id", user.ID))
		}
	}

	token, err := s.tokens.Issue(auth.SubjectFromUser(user))
	if err != nil {
		return nil, fail(s.logger, "Failed to generate token", err, zap.String("user_id", user.ID))
	}
	return &models.FirebaseLoginResponse{Token: token, User: *user}, nil
}

// Me returns the stored profile of the subject.
func (s *AccountService) Me(ctx context.Context, subject auth.Subject) (*models.User, error) {
	if !subject.Authenticated() {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.GetUserByID(ctx, subject.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fail(s.logger, "Failed to fetch user", err, zap.String("user_id", subject.ID))
	}
	return user, nil
}

func (s *AccountService) findUser(ctx context.Context, uid, email string) (*models.User, error) {
	user, err := s.users.GetUserByFirebaseUID(ctx, uid)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err = s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, err
}
