package core

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is an authenticated account. Its id is stamped as OwnerID on
// warehouses and items the user creates.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// CheckPassword reports whether the given password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UserService provides user lookup and registration.
type UserService interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// CreateUser registers a new user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, email, displayName, password string) (*User, error)
}
