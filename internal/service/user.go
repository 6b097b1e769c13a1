package service

import (
	"context"
	"errors"
	"strings"

	"recollect/internal/model"
	"recollect/internal/repo"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Ошибки уровня сервиса; хендлеры маппят их на HTTP-статусы.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// UserService инкапсулирует регистрацию, вход и смену пароля.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// NormalizeEmail приводит email к каноничному виду (trim + lowercase).
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создаёт пользователя с bcrypt-хешем пароля.
// Дубликат email распознаётся по нарушению уникального ограничения при вставке,
// без предварительной проверки — пре-чек даёт гонку между проверкой и вставкой.
func (s *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = NormalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

// Login проверяет пароль. Любое несоответствие (нет пользователя, плохой
// пароль, битый хеш) — ErrInvalidCredentials, без уточнения причины.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ResetPassword меняет пароль после проверки старого.
func (s *UserService) ResetPassword(ctx context.Context, email, oldPassword, newPassword string) error {
	user, err := s.Login(ctx, email, oldPassword)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, user.UserID, string(hash))
}

// GetByID возвращает пользователя по id.
func (s *UserService) GetByID(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers — список всех пользователей для админского маршрута.
func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}
