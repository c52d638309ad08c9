package domain

import (
	"context"
	"strings"
	"time"
)

const (
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Name         string     `gorm:"size:64;not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string     `gorm:"size:100;not null" json:"-"`
	IsBlocked    bool       `gorm:"not null;default:false" json:"isBlocked"`
	LastLogin    *time.Time `gorm:"default:null" json:"lastLogin"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (User) TableName() string { return "users" }

// Status derives the display string from the canonical IsBlocked flag.
func (u *User) Status() string {
	if u.IsBlocked {
		return StatusBlocked
	}
	return StatusActive
}

// PublicUser is the view returned to callers. It never carries the hash.
type PublicUser struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Status    string     `json:"status"`
	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Status:    u.Status(),
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}

// NormalizeEmail is applied before every store and lookup; uniqueness is
// case-insensitive on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// List returns every user ordered by last login, most recent first;
	// users who never logged in sort last.
	List(ctx context.Context) ([]User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	// SetBlocked flips the flag for every matching id; unmatched ids are
	// ignored.
	SetBlocked(ctx context.Context, ids []string, blocked bool) error
	// DeleteByIDs removes matching records permanently.
	DeleteByIDs(ctx context.Context, ids []string) error
}
