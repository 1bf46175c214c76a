package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User é um usuário da API com acesso ao painel de faturamento
type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	RoleID       int        `json:"role_id"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// Claims são as claims JWT emitidas no login
type Claims struct {
	UserID     int    `json:"user_id"`
	UserRoleID int    `json:"user_role_id"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}
