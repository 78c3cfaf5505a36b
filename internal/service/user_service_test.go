package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-user-api/internal/core/auth"
	"go-user-api/internal/repo"
	"go-user-api/internal/service"
	"go-user-api/pkg/utils"
)

func newService(t *testing.T, opts service.Options) (*service.UserService, *repo.MemoryUserRepo, *auth.JWTer) {
	t.Helper()
	users := repo.NewMemoryUserRepo()
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "user-api", TTL: time.Hour}
	return service.NewUserService(users, jwter, opts), users, jwter
}

func signupInput() service.SignupInput {
	return service.SignupInput{
		Email:     "a@b.com",
		Password:  "secret1",
		FirstName: "A",
		LastName:  "B",
	}
}

func TestSignup(t *testing.T) {
	svc, _, jwter := newService(t, service.Options{})
	ctx := context.Background()

	in := signupInput()
	in.Email = "  A@B.Com "
	in.FirstName = " A "

	u, tok, err := svc.Signup(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", u.Email, "email is trimmed and lowercased")
	assert.Equal(t, "A", u.FirstName, "names are trimmed")
	assert.NotEmpty(t, u.ID)
	assert.Empty(t, u.PasswordHash, "hash never leaves the service")

	claims, err := jwter.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UID)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _, _ := newService(t, service.Options{})
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	// 任意大小写都算重复
	in := signupInput()
	in.Email = "A@B.COM"
	_, _, err = svc.Signup(ctx, in)
	require.Error(t, err)
	assert.Equal(t, service.KindDuplicateAccount, service.KindOf(err))
}

func TestLogin(t *testing.T) {
	svc, _, _ := newService(t, service.Options{})
	ctx := context.Background()

	created, _, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	u, tok, err := svc.Login(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.NotEmpty(t, tok)
	assert.Empty(t, u.PasswordHash)

	_, _, err = svc.Login(ctx, "a@b.com", "wrong")
	assert.Equal(t, service.KindInvalidCredentials, service.KindOf(err))

	_, _, err = svc.Login(ctx, "nobody@b.com", "secret1")
	assert.Equal(t, service.KindUserNotFound, service.KindOf(err))
}

func TestUpdateProfile_Partial(t *testing.T) {
	svc, _, _ := newService(t, service.Options{})
	ctx := context.Background()

	u, _, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	first := "Anna"
	updated, err := svc.UpdateProfile(ctx, u, service.UpdateProfileInput{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Anna", updated.FirstName)
	assert.Equal(t, "B", updated.LastName, "unset fields keep their value")
	assert.Equal(t, "a@b.com", updated.Email)
}

func TestUpdateProfile_DuplicateEmail(t *testing.T) {
	svc, _, _ := newService(t, service.Options{})
	ctx := context.Background()

	u1, _, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	other := signupInput()
	other.Email = "c@d.com"
	_, _, err = svc.Signup(ctx, other)
	require.NoError(t, err)

	taken := "C@D.com"
	_, err = svc.UpdateProfile(ctx, u1, service.UpdateProfileInput{Email: &taken})
	assert.Equal(t, service.KindDuplicateEmail, service.KindOf(err))

	// 改回自己的邮箱不算重复
	own := "a@b.com"
	_, err = svc.UpdateProfile(ctx, u1, service.UpdateProfileInput{Email: &own})
	assert.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	svc, users, jwter := newService(t, service.Options{})
	ctx := context.Background()

	u, _, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	// 旧口令错误：401 种类，且存量哈希不变
	_, err = svc.ChangePassword(ctx, u.ID, "wrong", "newsecret")
	assert.Equal(t, service.KindInvalidCredentials, service.KindOf(err))

	stored, err := users.FindByIDWithHash(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword("secret1", stored.PasswordHash), "hash unchanged after failed attempt")

	// 正确换新：新 token 可解析，旧口令失效
	tok, err := svc.ChangePassword(ctx, u.ID, "secret1", "newsecret")
	require.NoError(t, err)
	claims, err := jwter.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UID)

	_, _, err = svc.Login(ctx, "a@b.com", "secret1")
	assert.Equal(t, service.KindInvalidCredentials, service.KindOf(err))
	_, _, err = svc.Login(ctx, "a@b.com", "newsecret")
	assert.NoError(t, err)
}

func TestChangePassword_RequireNewPassword(t *testing.T) {
	svc, _, _ := newService(t, service.Options{RequireNewPassword: true})
	ctx := context.Background()

	u, _, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	_, err = svc.ChangePassword(ctx, u.ID, "secret1", "secret1")
	assert.Equal(t, service.KindValidation, service.KindOf(err))

	_, err = svc.ChangePassword(ctx, u.ID, "secret1", "secret2")
	assert.NoError(t, err)
}
