package service

import (
	"context"
	"errors"
	"recollect/internal/model"
	"recollect/internal/repo"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *mockUserRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if u, ok := args.Get(0).([]model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("ok, email normalized and hash is not the password", func(t *testing.T) {
		m := new(mockUserRepo)
		svc := NewUserService(m)
		m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "john@example.com" && u.UserID != "" &&
				u.PasswordHash != "" && u.PasswordHash != "p@ss"
		})).Return(&model.User{UserID: "u-10", Email: "john@example.com"}, nil).Once()

		user, err := svc.Register(ctx, "  John@Example.COM ", "p@ss")
		assert.NoError(t, err)
		assert.Equal(t, "u-10", user.UserID)
		m.AssertExpectations(t)
	})

	t.Run("conflict when insert hits unique constraint", func(t *testing.T) {
		m := new(mockUserRepo)
		svc := NewUserService(m)
		m.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, errors.New("UNIQUE constraint failed: users.email")).Once()

		user, err := svc.Register(ctx, "john@example.com", "p@ss")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrEmailTaken)
		m.AssertExpectations(t)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	// готовим хеш для пароля "secret"
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	stored := &model.User{UserID: "u-2", Email: "alice@example.com", PasswordHash: string(hash)}

	t.Run("ok with valid credentials", func(t *testing.T) {
		m := new(mockUserRepo)
		svc := NewUserService(m)
		m.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(stored, nil).Once()

		user, err := svc.Login(ctx, "Alice@Example.com", "secret")
		assert.NoError(t, err)
		assert.Equal(t, "u-2", user.UserID)
		m.AssertExpectations(t)
	})

	t.Run("invalid password", func(t *testing.T) {
		m := new(mockUserRepo)
		svc := NewUserService(m)
		m.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(stored, nil).Once()

		user, err := svc.Login(ctx, "alice@example.com", "wrong")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		m.AssertExpectations(t)
	})

	t.Run("unknown user is indistinguishable from bad password", func(t *testing.T) {
		m := new(mockUserRepo)
		svc := NewUserService(m)
		m.On("GetUserByEmail", mock.Anything, "ghost@example.com").
			Return(nil, gorm.ErrRecordNotFound).Once()

		user, err := svc.Login(ctx, "ghost@example.com", "any")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		m.AssertExpectations(t)
	})
}

func TestUserService_ResetPassword(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.DefaultCost)
	stored := &model.User{UserID: "u-3", Email: "bob@example.com", PasswordHash: string(hash)}

	t.Run("ok", func(t *testing.T) {
		m := new(mockUserRepo)
		svc := NewUserService(m)
		m.On("GetUserByEmail", mock.Anything, "bob@example.com").Return(stored, nil).Once()
		m.On("UpdatePassword", mock.Anything, "u-3", mock.MatchedBy(func(h string) bool {
			return bcrypt.CompareHashAndPassword([]byte(h), []byte("new-pass")) == nil
		})).Return(nil).Once()

		assert.NoError(t, svc.ResetPassword(ctx, "bob@example.com", "old-pass", "new-pass"))
		m.AssertExpectations(t)
	})

	t.Run("wrong old password", func(t *testing.T) {
		m := new(mockUserRepo)
		svc := NewUserService(m)
		m.On("GetUserByEmail", mock.Anything, "bob@example.com").Return(stored, nil).Once()

		err := svc.ResetPassword(ctx, "bob@example.com", "wrong", "new-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		m.AssertExpectations(t)
	})
}
