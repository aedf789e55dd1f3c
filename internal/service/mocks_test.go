package service_test

import (
	"context"
	"course-platform-auth/internal/model"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

// ===== MOCKS =====

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, id string, update model.UserUpdate) (*model.User, error) {
	args := m.Called(ctx, id, update)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	args := m.Called(ctx, cursor, limit)
	if users, ok := args.Get(0).([]*model.User); ok {
		return users, args.String(1), args.Error(2)
	}
	return nil, "", args.Error(2)
}

type MockRefreshTokenStore struct {
	mock.Mock
}

func (m *MockRefreshTokenStore) Store(ctx context.Context, userID, token string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, token, expiresAt)
	return args.Error(0)
}

func (m *MockRefreshTokenStore) Validate(ctx context.Context, userID, token string) (bool, error) {
	args := m.Called(ctx, userID, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockRefreshTokenStore) Revoke(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRefreshTokenStore) PurgeExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockTokenDenylist struct {
	mock.Mock
}

func (m *MockTokenDenylist) Add(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenDenylist) Contains(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

type MockRateLimitRepository struct {
	mock.Mock
}

func (m *MockRateLimitRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRateLimitRepository) Seed(ctx context.Context, exec sqlx.ExtContext, clientKey string, resetAt time.Time) error {
	args := m.Called(ctx, exec, clientKey, resetAt)
	return args.Error(0)
}

func (m *MockRateLimitRepository) FindForUpdate(ctx context.Context, exec sqlx.ExtContext, clientKey string) (*model.RateLimit, error) {
	args := m.Called(ctx, exec, clientKey)
	if r, ok := args.Get(0).(*model.RateLimit); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRateLimitRepository) Save(ctx context.Context, exec sqlx.ExtContext, record *model.RateLimit) error {
	args := m.Called(ctx, exec, record)
	return args.Error(0)
}

func (m *MockRateLimitRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	args := m.Called(ctx)
	exec, _ := args.Get(0).(sqlx.ExtContext)
	rollback, _ := args.Get(1).(func() error)
	commit, _ := args.Get(2).(func() error)
	return exec, rollback, commit, args.Error(3)
}

// ==== IN-MEMORY ХРАНИЛИЩА ====

// memRateLimitRepo повторяет семантику SQL репозитория в памяти
type memRateLimitRepo struct {
	mu      sync.Mutex
	records map[string]model.RateLimit
}

func newMemRateLimitRepo() *memRateLimitRepo {
	return &memRateLimitRepo{records: map[string]model.RateLimit{}}
}

func (r *memRateLimitRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for key, rec := range r.records {
		if !rec.ResetAt.After(now) {
			delete(r.records, key)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memRateLimitRepo) Seed(ctx context.Context, exec sqlx.ExtContext, clientKey string, resetAt time.Time) error {
	if _, ok := r.records[clientKey]; !ok {
		r.records[clientKey] = model.RateLimit{ClientKey: clientKey, ResetAt: resetAt}
	}
	return nil
}

func (r *memRateLimitRepo) FindForUpdate(ctx context.Context, exec sqlx.ExtContext, clientKey string) (*model.RateLimit, error) {
	rec, ok := r.records[clientKey]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &rec, nil
}

func (r *memRateLimitRepo) Save(ctx context.Context, exec sqlx.ExtContext, record *model.RateLimit) error {
	r.records[record.ClientKey] = *record
	return nil
}

// BeginTX : транзакция моделируется мьютексом, как блокировка строки в БД
func (r *memRateLimitRepo) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	r.mu.Lock()
	var once sync.Once
	release := func() error {
		once.Do(r.mu.Unlock)
		return nil
	}
	return nil, release, release, nil
}

// memRefreshStore : одна запись на пользователя, как в SQL хранилище
type memRefreshStore struct {
	mu     sync.Mutex
	tokens map[string]model.RefreshToken
	now    func() time.Time
}

func newMemRefreshStore(now func() time.Time) *memRefreshStore {
	return &memRefreshStore{tokens: map[string]model.RefreshToken{}, now: now}
}

func (s *memRefreshStore) Store(ctx context.Context, userID, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userID] = model.RefreshToken{UserID: userID, Token: token, ExpiresAt: expiresAt}
	return nil
}

func (s *memRefreshStore) Validate(ctx context.Context, userID, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tokens[userID]
	return ok && rec.Token == token && rec.ExpiresAt.After(s.now()), nil
}

func (s *memRefreshStore) Revoke(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, userID)
	return nil
}

func (s *memRefreshStore) PurgeExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
