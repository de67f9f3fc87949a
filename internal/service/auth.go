package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Skotchmaster/bargain_shop/internal/domain"
	"github.com/Skotchmaster/bargain_shop/internal/models"
	"github.com/Skotchmaster/bargain_shop/internal/repo"
	"github.com/Skotchmaster/bargain_shop/internal/transport"
	"github.com/Skotchmaster/bargain_shop/pkg/events"
	pkg_hash "github.com/Skotchmaster/bargain_shop/pkg/hash"
	"github.com/Skotchmaster/bargain_shop/pkg/logging"
	"github.com/Skotchmaster/bargain_shop/pkg/tokens"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService struct {
	Repo      *repo.GormRepo
	Events    events.Publisher
	JWTSecret []byte
	TokenTTL  time.Duration
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if name == "" || email == "" || req.Password == "" {
		return nil, fail(ErrValidation, "Name, email and password are required")
	}
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return nil, fail(ErrValidation, "Invalid role")
	}

	pwHash, err := pkg_hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
	}
	if role == domain.RoleVendor {
		user.ShopName = req.ShopName
		user.ShopDescription = req.ShopDescription
		user.ShopAddress = req.ShopAddress
		user.GSTNumber = req.GSTNumber
	}

	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return nil, fail(ErrValidation, "User already exists")
		}
		return nil, err
	}

	publish(ctx, l, s.Events, events.TopicUsers, user.ID.String(), map[string]any{
		"type":   "user_registered",
		"userId": user.ID,
		"role":   user.Role,
	})
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrValidation, "Invalid credentials")
		}
		return nil, err
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, password) {
		return nil, fail(ErrValidation, "Invalid credentials")
	}

	token, exp, err := tokens.SignAccessToken(user.ID.String(), string(user.Role), s.TokenTTL, s.JWTSecret)
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, err
	}

	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

// Authenticate resolves a bearer token to the current account record.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := tokens.AccessClaimsFromToken(token, s.JWTSecret)
	if err != nil {
		return nil, fail(ErrUnauthorized, "Invalid token")
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fail(ErrUnauthorized, "Invalid token")
	}

	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrUnauthorized, "User not found")
		}
		return nil, err
	}
	return user, nil
}
