package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/restobook/pkg/config"
	"github.com/restobook/pkg/dtos"
	"github.com/restobook/pkg/entities"
	"github.com/restobook/pkg/utils"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service interface {
	Register(ctx context.Context, req dtos.DTOForUserCreate) (uint, error)
	Login(ctx context.Context, req dtos.DTOForUserLogin) (string, error)
}

type service struct {
	repository Repository
	authc      config.Auth
}

func NewService(r Repository, authc config.Auth) Service {
	return &service{
		repository: r,
		authc:      authc,
	}
}

func (s *service) Register(ctx context.Context, req dtos.DTOForUserCreate) (uint, error) {
	req.Normalize()

	// Check if user already exists
	_, err := s.repository.FindUserByEmail(ctx, req.Email)
	if err == nil {
		return 0, ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("lookup user: %w", err)
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user := entities.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(passwordHash),
		Role:     s.roleFor(req),
	}

	if err := s.repository.CreateUser(ctx, &user); err != nil {
		// lost a race with a concurrent registration
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("create user: %w", err)
	}

	log.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return user.ID, nil
}

// roleFor elevates to staff only when the shared admin code matches. Anyone
// holding the code can self-elevate.
func (s *service) roleFor(req dtos.DTOForUserCreate) entities.Role {
	if entities.Role(req.Role) == entities.RoleStaff && s.authc.AdminCode != "" && req.AdminCode == s.authc.AdminCode {
		return entities.RoleStaff
	}
	return entities.RoleCustomer
}

func (s *service) Login(ctx context.Context, req dtos.DTOForUserLogin) (string, error) {
	req.Normalize()

	// Find user by email
	user, err := s.repository.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := utils.CreateAccessToken(user.ID, string(user.Role), s.authc.Secret, s.authc.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "SQLSTATE 23505")
}
