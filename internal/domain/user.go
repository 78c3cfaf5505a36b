package domain

import (
	"context"
	"errors"
	"time"
)

// ErrEmailTaken 邮箱唯一约束冲突（并发注册兜底也走这里）
var ErrEmailTaken = errors.New("email already taken")

type User struct {
	ID           string    `gorm:"primaryKey;size:32" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:191" json:"email"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	FirstName    string    `gorm:"size:50" json:"firstName"`
	LastName     string    `gorm:"size:50" json:"lastName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// UserRepository 默认读取不带 password_hash；校验口令时用 WithHash 变体显式取
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByIDWithHash(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByEmailWithHash(ctx context.Context, email string) (*User, error)
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	UpdateProfile(ctx context.Context, id, email, firstName, lastName string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
