package domain

import (
	"context"
	"time"
)

type User struct {
	ID                       string     `gorm:"primaryKey;size:36" json:"id"`
	Email                    string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash             string     `gorm:"size:100;not null" json:"-"`
	ActivityRemindersEnabled bool       `gorm:"not null" json:"-"`
	LastLoginAt              *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt                time.Time  `json:"createdAt"`
	UpdatedAt                time.Time  `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

type Settings struct {
	ActivityRemindersEnabled bool `json:"activityRemindersEnabled"`
}

func (u *User) Settings() Settings {
	return Settings{ActivityRemindersEnabled: u.ActivityRemindersEnabled}
}

// UserRepository 查不到返回 (nil, nil)
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	UpdateSettings(ctx context.Context, id string, s Settings) (bool, error)
}
