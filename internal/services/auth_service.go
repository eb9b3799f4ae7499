package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/portfolio-cms/backend/internal/models"
	"github.com/portfolio-cms/backend/internal/repository"
	appErr "github.com/portfolio-cms/backend/pkg/errors"
	"github.com/portfolio-cms/backend/pkg/logger"
)

// TokenTTL is how long an issued credential stays valid. There is no
// refresh mechanism; expiry forces re-login.
const TokenTTL = 24 * time.Hour

type AuthService interface {
	// Login authenticates the configured admin user and returns a signed
	// token. The user is loaded by the fixed admin id, never looked up by
	// the submitted username; every failure mode returns the same
	// unauthorized error so callers cannot probe which check failed.
	Login(ctx context.Context, username, password string) (string, error)
}

type authService struct {
	users       repository.UserRepository
	hmacSecret  []byte
	adminUserID uint
}

func NewAuthService(users repository.UserRepository, secret []byte, adminUserID uint) AuthService {
	return &authService{users: users, hmacSecret: secret, adminUserID: adminUserID}
}

var _ AuthService = (*authService)(nil)

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	invalid := appErr.New(appErr.CodeUnauthorized, "Invalid credentials")

	var u models.User
	if err := s.users.GetByID(ctx, s.adminUserID, &u); err != nil {
		logger.L().Warn("login failed: admin user not loadable", zap.Uint("admin_id", s.adminUserID), zap.Error(err))
		return "", invalid
	}
	if u.Username != username {
		return "", invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", invalid
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   u.ID,
		"role": "admin",
		"exp":  time.Now().Add(TokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "sign token failed")
	}

	logger.L().Info("login successful", zap.Uint("user_id", u.ID))
	return signed, nil
}
