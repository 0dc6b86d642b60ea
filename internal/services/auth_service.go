package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pallet-service/internal/models"
	"pallet-service/internal/repository"
	"pallet-service/internal/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService inicio y cierre de sesión de los operarios del muelle
type AuthService interface {
	Login(ctx context.Context, username, password string) (*session.Token, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (string, error)
	SeedUsers(ctx context.Context, users map[string]string) (int, error)
}

type authService struct {
	users    repository.UserRepository
	sessions *session.Manager
	logger   *zap.Logger
}

// NewAuthService crea una nueva instancia del servicio de autenticación
func NewAuthService(users repository.UserRepository, sessions *session.Manager, logger *zap.Logger) AuthService {
	return &authService{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// Login verifica la contraseña y abre una sesión
func (s *authService) Login(ctx context.Context, username, password string) (*session.Token, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo usuario: %w", err)
	}
	if user == nil {
		s.logger.Warn("🔒 Usuario desconocido", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Warn("🔒 Contraseña incorrecta", zap.String("username", username))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error verificando contraseña: %w", err)
	}

	token, err := s.sessions.Issue(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("error creando sesión: %w", err)
	}

	s.logger.Info("🔓 Sesión iniciada",
		zap.String("username", user.Username),
		zap.String("session_id", token.ID))
	return token, nil
}

// Logout revoca la sesión del token
func (s *authService) Logout(ctx context.Context, rawToken string) error {
	if err := s.sessions.Revoke(ctx, rawToken); err != nil {
		return err
	}
	s.logger.Info("🔒 Sesión cerrada")
	return nil
}

// Authenticate devuelve el usuario de una sesión válida
func (s *authService) Authenticate(ctx context.Context, rawToken string) (string, error) {
	claims, err := s.sessions.Validate(ctx, rawToken)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// SeedUsers crea los usuarios que falten; los existentes no se tocan
func (s *authService) SeedUsers(ctx context.Context, users map[string]string) (int, error) {
	created := 0
	for username, password := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return created, fmt.Errorf("error generando hash para %s: %w", username, err)
		}

		ok, err := s.users.CreateIfMissing(ctx, &models.User{Username: username, PasswordHash: string(hash)})
		if err != nil {
			return created, err
		}
		if ok {
			created++
			s.logger.Info("👤 Usuario creado", zap.String("username", username))
		}
	}
	return created, nil
}
