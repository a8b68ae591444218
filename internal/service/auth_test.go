package service

import (
	"context"
	"testing"
	"time"

	"github.com/converse-ai/converse/internal/domain"
	"github.com/converse-ai/converse/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newTestJWT() *security.JWTManager {
	return security.NewJWTManager("test-secret", 15*time.Minute, time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, newTestJWT())

		userRepo.On("EmailExists", ctx, "a@b.com").Return(false, nil)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "a@b.com" && u.PasswordHash != "secret-pass"
		})).Return(nil)

		user, err := svc.Register(ctx, domain.UserCreate{Email: "a@b.com", Password: "secret-pass"})
		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret-pass")))
		userRepo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, newTestJWT())

		userRepo.On("EmailExists", ctx, "a@b.com").Return(true, nil)

		_, err := svc.Register(ctx, domain.UserCreate{Email: "a@b.com", Password: "secret-pass"})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	user := &domain.User{Email: "a@b.com", PasswordHash: string(hash)}

	t.Run("success", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, newTestJWT())

		userRepo.On("GetByEmail", ctx, "a@b.com").Return(user, nil)

		tokens, err := svc.Login(ctx, domain.UserLogin{Email: "a@b.com", Password: "secret-pass"})
		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, newTestJWT())

		userRepo.On("GetByEmail", ctx, "a@b.com").Return(user, nil)

		_, err := svc.Login(ctx, domain.UserLogin{Email: "a@b.com", Password: "nope"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, newTestJWT())

		userRepo.On("GetByEmail", ctx, "x@b.com").Return(nil, domain.ErrNotFound)

		_, err := svc.Login(ctx, domain.UserLogin{Email: "x@b.com", Password: "secret-pass"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
