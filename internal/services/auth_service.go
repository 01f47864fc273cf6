// Package services holds the business logic between handlers and repositories.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/avishek100/metmanichaudhary/internal/apperror"
	"github.com/avishek100/metmanichaudhary/internal/auth"
	"github.com/avishek100/metmanichaudhary/internal/models"
	"github.com/avishek100/metmanichaudhary/internal/repository"
)

type AuthService struct {
	users repository.UserRepository
	jwt   *auth.JWTManager
	log   *zap.Logger
}

func NewAuthService(users repository.UserRepository, jwt *auth.JWTManager, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwt: jwt, log: log}
}

// Login validates credentials and issues a session token. Unknown email and
// wrong password produce the same error so the response does not reveal
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, apperror.New(apperror.KindValidation, "auth.invalid_credentials")
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, apperror.New(apperror.KindUnauthenticated, "auth.invalid_credentials")
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperror.New(apperror.KindUnauthenticated, "auth.invalid_credentials")
	}

	now := time.Now().UTC()
	if err := s.users.SetLastLogin(ctx, u.ID, now); err != nil {
		// the session is still valid without a recorded login time
		s.log.Warn("failed to record last login", zap.String("user", u.ID.Hex()), zap.Error(err))
	}
	u.LastLogin = &now

	token, _, err := s.jwt.Generate(u.ID.Hex(), u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// HashPassword produces the bcrypt hash stored on accounts. Used by the
// provisioning command, not by any public endpoint.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(b), err
}
