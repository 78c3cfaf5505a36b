package service

import (
	"context"
	"errors"
	"strings"

	"go-user-api/internal/core/auth"
	"go-user-api/internal/domain"
	"go-user-api/pkg/utils"
)

type Options struct {
	// 改密码时要求新旧口令不同（见 config security.requireNewPassword）
	RequireNewPassword bool
}

type UserService struct {
	users domain.UserRepository
	jwter *auth.JWTer
	opts  Options
}

func NewUserService(users domain.UserRepository, jwter *auth.JWTer, opts Options) *UserService {
	return &UserService{users: users, jwter: jwter, opts: opts}
}

type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type UpdateProfileInput struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// Signup 注册并直接签发 token
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*domain.User, string, error) {
	email := NormalizeEmail(in.Email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", internal("lookup user failed", err)
	}
	if existing != nil {
		return nil, "", fail(KindDuplicateAccount, "user already exists with this email")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, "", internal("hash password failed", err)
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	}
	if err := s.users.Create(ctx, u); err != nil {
		// 并发注册兜底：唯一索引冲突
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, "", fail(KindDuplicateAccount, "user already exists with this email")
		}
		return nil, "", internal("create user failed", err)
	}

	tok, err := s.jwter.Issue(u.ID)
	if err != nil {
		return nil, "", internal("issue token failed", err)
	}
	u.PasswordHash = ""
	return u, tok, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.users.FindByEmailWithHash(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, "", internal("lookup user failed", err)
	}
	if u == nil {
		return nil, "", fail(KindUserNotFound, "user does not exist")
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, "", fail(KindInvalidCredentials, "invalid credentials")
	}

	tok, err := s.jwter.Issue(u.ID)
	if err != nil {
		return nil, "", internal("issue token failed", err)
	}
	u.PasswordHash = ""
	return u, tok, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, internal("lookup user failed", err)
	}
	if u == nil {
		return nil, fail(KindUserNotFound, "user does not exist")
	}
	return u, nil
}

// UpdateProfile 部分更新；邮箱变更要查重（排除自己）
func (s *UserService) UpdateProfile(ctx context.Context, cur *domain.User, in UpdateProfileInput) (*domain.User, error) {
	email := cur.Email
	firstName := cur.FirstName
	lastName := cur.LastName

	if in.Email != nil {
		email = NormalizeEmail(*in.Email)
	}
	if in.FirstName != nil {
		firstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		lastName = strings.TrimSpace(*in.LastName)
	}

	if email != cur.Email {
		taken, err := s.users.EmailTaken(ctx, email, cur.ID)
		if err != nil {
			return nil, internal("check email failed", err)
		}
		if taken {
			return nil, fail(KindDuplicateEmail, "email already in use")
		}
	}

	if err := s.users.UpdateProfile(ctx, cur.ID, email, firstName, lastName); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, fail(KindDuplicateEmail, "email already in use")
		}
		return nil, internal("update profile failed", err)
	}
	return s.Get(ctx, cur.ID)
}

// ChangePassword 校验旧口令后换新，并签发新 token；旧 token 不作废（无吊销机制）
func (s *UserService) ChangePassword(ctx context.Context, uid, current, next string) (string, error) {
	u, err := s.users.FindByIDWithHash(ctx, uid)
	if err != nil {
		return "", internal("lookup user failed", err)
	}
	if u == nil {
		return "", fail(KindUserNotFound, "user does not exist")
	}
	if !utils.CheckPassword(current, u.PasswordHash) {
		return "", fail(KindInvalidCredentials, "current password is incorrect")
	}
	if s.opts.RequireNewPassword && current == next {
		return "", fail(KindValidation, "new password must differ from current password")
	}

	hash, err := utils.HashPassword(next)
	if err != nil {
		return "", internal("hash password failed", err)
	}
	if err := s.users.UpdatePassword(ctx, uid, hash); err != nil {
		return "", internal("update password failed", err)
	}
	tok, err := s.jwter.Issue(uid)
	if err != nil {
		return "", internal("issue token failed", err)
	}
	return tok, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
