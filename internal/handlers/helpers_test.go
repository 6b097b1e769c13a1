package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"recollect/internal/config"
	"recollect/internal/handlers"
	"recollect/internal/middleware"
	"recollect/internal/model"
	"recollect/internal/repo"
	"recollect/internal/service"
	"recollect/internal/storage"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Minimal mocks
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

type mockEntryRepo struct{ mock.Mock }

func (m *mockEntryRepo) Create(ctx context.Context, entry *model.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *mockEntryRepo) GetByID(ctx context.Context, userID string, id uint) (*model.Entry, error) {
	args := m.Called(ctx, userID, id)
	if e, ok := args.Get(0).(*model.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockEntryRepo) ListByUser(ctx context.Context, userID string) ([]model.Entry, error) {
	args := m.Called(ctx, userID)
	if e, ok := args.Get(0).([]model.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockEntryRepo) UpdateFields(ctx context.Context, userID string, id uint, updates map[string]any) (int64, error) {
	args := m.Called(ctx, userID, id, updates)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockEntryRepo) Delete(ctx context.Context, userID string, id uint) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockEntryRepo) Search(ctx context.Context, userID string, query string) ([]model.Entry, error) {
	args := m.Called(ctx, userID, query)
	if e, ok := args.Get(0).([]model.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockEntryRepo) ListBySubject(ctx context.Context, userID string, subject string) ([]model.Entry, error) {
	args := m.Called(ctx, userID, subject)
	if e, ok := args.Get(0).([]model.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockEntryRepo) Subjects(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if s, ok := args.Get(0).([]string); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockEntryRepo) Stats(ctx context.Context, userID string) (*repo.UserStats, error) {
	args := m.Called(ctx, userID)
	if s, ok := args.Get(0).(*repo.UserStats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.EntryRepository = (*mockEntryRepo)(nil)

type mockMediaRepo struct{ mock.Mock }

func (m *mockMediaRepo) Add(ctx context.Context, media *model.Media) error {
	args := m.Called(ctx, media)
	return args.Error(0)
}
func (m *mockMediaRepo) ListByEntry(ctx context.Context, entryID uint) ([]model.Media, error) {
	args := m.Called(ctx, entryID)
	if md, ok := args.Get(0).([]model.Media); ok {
		return md, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.MediaRepository = (*mockMediaRepo)(nil)

// cloudStoreStub имитирует включённое облако для тестов /api/media
type cloudStoreStub struct{}

func (cloudStoreStub) Upload(_ context.Context, key, _ string, _ []byte) (string, error) {
	return "https://media.example.com/" + key, nil
}
func (cloudStoreStub) Delete(_ context.Context, _ string) error { return nil }
func (cloudStoreStub) Cloud() bool                              { return true }

var _ storage.Store = cloudStoreStub{}

// --- Helpers ---

const testSecret = "test-secret"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AuthSecret:  testSecret,
		TokenTTL:    time.Hour,
		MaxUploadMB: 4,
		UploadDir:   t.TempDir(),
		AdminEmails: []string{"admin@example.com"},
	}
}

type testDeps struct {
	users   *mockUserRepo
	entries *mockEntryRepo
	media   *mockMediaRepo
	store   storage.Store
	ocrURL  string
	cfg     *config.Config
}

func newTestRouter(t *testing.T, deps testDeps) http.Handler {
	t.Helper()
	if deps.users == nil {
		deps.users = &mockUserRepo{}
	}
	if deps.entries == nil {
		deps.entries = &mockEntryRepo{}
	}
	if deps.media == nil {
		deps.media = &mockMediaRepo{}
	}
	if deps.cfg == nil {
		deps.cfg = testConfig(t)
	}
	if deps.store == nil {
		deps.store = storage.NewLocalStore(deps.cfg.UploadDir)
	}
	logger := zap.NewNop().Sugar()

	userSvc := service.NewUserService(deps.users)
	entrySvc := service.NewEntryService(deps.entries, deps.media, deps.store, logger)
	ocrSvc := service.NewOCRService(deps.ocrURL, time.Second, logger)

	h := handlers.NewHandler(userSvc, entrySvc, ocrSvc, deps.store, logger, deps.cfg)
	return h.Router
}

func addAuthHeader(t *testing.T, req *http.Request, userID, email string) {
	t.Helper()
	token, err := middleware.BuildToken(userID, email, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
}
