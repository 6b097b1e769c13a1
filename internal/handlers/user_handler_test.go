package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recollect/internal/middleware"
	"recollect/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestAuth_Signup(t *testing.T) {
	m := new(mockUserRepo)
	router := newTestRouter(t, testDeps{users: m})

	t.Run("ok", func(t *testing.T) {
		m.ExpectedCalls = nil
		created := &model.User{UserID: "u-42", Email: "john@example.com"}
		m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "john@example.com" && u.PasswordHash != ""
		})).Return(created, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
			strings.NewReader(`{"email":"John@Example.com","password":"p"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var body struct {
			Token string      `json:"token"`
			User  *model.User `json:"user"`
		}
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "u-42", body.User.UserID)

		// в токене зашит id созданного пользователя
		claims, err := middleware.ParseToken(body.Token, testSecret)
		assert.NoError(t, err)
		assert.Equal(t, "u-42", claims.UserID)
		m.AssertExpectations(t)
	})

	t.Run("conflict on duplicate email", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, errors.New("UNIQUE constraint failed: users.email")).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
			strings.NewReader(`{"email":"john@example.com","password":"p"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		m.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		m.ExpectedCalls = nil
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
			strings.NewReader(`{"email":"john@example.com"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuth_Login(t *testing.T) {
	m := new(mockUserRepo)
	router := newTestRouter(t, testDeps{users: m})

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	stored := &model.User{UserID: "u-2", Email: "alice@example.com", PasswordHash: string(hash)}

	t.Run("ok", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(stored, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"alice@example.com","password":"secret"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var body struct {
			Token string `json:"token"`
		}
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		claims, err := middleware.ParseToken(body.Token, testSecret)
		assert.NoError(t, err)
		assert.Equal(t, "u-2", claims.UserID)
		assert.Equal(t, "alice@example.com", claims.Email)
		m.AssertExpectations(t)
	})

	t.Run("unauthorized on wrong password", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(stored, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"alice@example.com","password":"bad"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		m.AssertExpectations(t)
	})

	t.Run("unauthorized on unknown email", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "ghost@example.com").
			Return(nil, gorm.ErrRecordNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"ghost@example.com","password":"x"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		m.AssertExpectations(t)
	})
}

func TestAuth_ResetPassword(t *testing.T) {
	m := new(mockUserRepo)
	router := newTestRouter(t, testDeps{users: m})

	hash, _ := bcrypt.GenerateFromPassword([]byte("old"), bcrypt.DefaultCost)
	stored := &model.User{UserID: "u-3", Email: "bob@example.com", PasswordHash: string(hash)}

	t.Run("ok", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "bob@example.com").Return(stored, nil).Once()
		m.On("UpdatePassword", mock.Anything, "u-3", mock.Anything).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/reset-password",
			strings.NewReader(`{"email":"bob@example.com","old_password":"old","new_password":"new"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		m.AssertExpectations(t)
	})

	t.Run("unauthorized on wrong old password", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "bob@example.com").Return(stored, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/reset-password",
			strings.NewReader(`{"email":"bob@example.com","old_password":"nope","new_password":"new"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		m.AssertExpectations(t)
	})
}
