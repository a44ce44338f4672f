package entity

import (
	"errors"
	"time"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user with this email already exists")
)

type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	PhoneNumber  string
	Role         Role
	CreatedAt    time.Time
}
