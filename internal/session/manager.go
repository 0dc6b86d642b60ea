// Package session emite y valida los tokens de sesión (JWT firmado)
// y lleva el registro de sesiones activas en Redis para poder revocarlas.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "pallet-service"

// ErrInvalidToken token mal formado, con firma inválida o expirado
var ErrInvalidToken = errors.New("invalid session token")

// Claims contenido del token de sesión; Subject es el usuario, ID el jti
type Claims struct {
	jwt.RegisteredClaims
}

// Token sesión emitida
type Token struct {
	Value     string
	ID        string
	Username  string
	ExpiresAt time.Time
}

// Manager emite, valida y revoca sesiones
type Manager struct {
	secret []byte
	ttl    time.Duration
	store  Store
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration, store Store) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		store:  store,
		now:    time.Now,
	}
}

// TTL duración de las sesiones emitidas
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue firma un token nuevo y registra la sesión
func (m *Manager) Issue(ctx context.Context, username string) (*Token, error) {
	now := m.now()
	id := uuid.NewString()
	expiresAt := now.Add(m.ttl)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := m.store.Save(ctx, id, username, m.ttl); err != nil {
		return nil, err
	}

	return &Token{Value: signed, ID: id, Username: username, ExpiresAt: expiresAt}, nil
}

// Validate comprueba firma, expiración y que la sesión siga registrada
func (m *Manager) Validate(ctx context.Context, raw string) (*Claims, error) {
	claims, err := m.parse(raw)
	if err != nil {
		return nil, err
	}

	username, err := m.store.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if username != claims.Subject {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Revoke elimina la sesión del registro; el token deja de ser válido
func (m *Manager) Revoke(ctx context.Context, raw string) error {
	claims, err := m.parse(raw)
	if err != nil {
		return err
	}
	return m.store.Delete(ctx, claims.ID)
}

// ActiveSessions número de sesiones registradas
func (m *Manager) ActiveSessions(ctx context.Context) (int, error) {
	return m.store.Count(ctx)
}

func (m *Manager) parse(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
