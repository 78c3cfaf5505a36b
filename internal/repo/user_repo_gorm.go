package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"go-user-api/internal/domain"
)

// 默认查询列（不含 password_hash）
var userCols = []string{"id", "email", "first_name", "last_name", "created_at", "updated_at"}

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDupKey(err) {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, userCols, "id = ?", id)
}

func (r *UserRepo) FindByIDWithHash(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, nil, "id = ?", id)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, userCols, "email = ?", email)
}

func (r *UserRepo) FindByEmailWithHash(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, nil, "email = ?", email)
}

func (r *UserRepo) findOne(ctx context.Context, cols []string, query string, arg any) (*domain.User, error) {
	var u domain.User
	tx := r.db.WithContext(ctx)
	if cols != nil {
		tx = tx.Select(cols)
	}
	err := tx.First(&u, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id, email, firstName, lastName string) error {
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		Updates(map[string]any{
			"email":      email,
			"first_name": firstName,
			"last_name":  lastName,
		}).Error
	if err != nil && isDupKey(err) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// 不依赖 gorm.ErrDuplicatedKey，避免驱动/版本差异
func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
