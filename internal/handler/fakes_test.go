package handler_test

import (
	"context"
	"course-platform-auth/internal/model"
	"sort"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

// ==== IN-MEMORY ХРАНИЛИЩА ====

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*model.User{}}
}

func (r *memUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, model.ErrEmailTaken
		}
	}
	created := *user
	created.CreatedAt = time.Now()
	r.users[created.ID] = &created
	out := created
	return &out, nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r *memUserRepo) UpdateUser(ctx context.Context, id string, update model.UserUpdate) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	out := *u
	return &out, nil
}

func (r *memUserRepo) DeleteUser(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		out := *u
		users = append(users, &out)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	if len(users) > limit {
		users = users[:limit]
	}
	return users, "", nil
}

// memRefreshStore : одна запись на пользователя, как в SQL хранилище
type memRefreshStore struct {
	mu     sync.Mutex
	tokens map[string]model.RefreshToken
}

func newMemRefreshStore() *memRefreshStore {
	return &memRefreshStore{tokens: map[string]model.RefreshToken{}}
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
	return ok && rec.Token == token && rec.ExpiresAt.After(time.Now()), nil
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

func (s *memRefreshStore) has(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[userID]
	return ok
}

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

func (r *memRateLimitRepo) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	r.mu.Lock()
	var once sync.Once
	release := func() error {
		once.Do(r.mu.Unlock)
		return nil
	}
	return nil, release, release, nil
}

// ===== MOCKS =====

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	args := m.Called(ctx, cursor, limit)
	if users, ok := args.Get(0).([]*model.User); ok {
		return users, args.String(1), args.Error(2)
	}
	return nil, "", args.Error(2)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id string, update model.UserUpdate) (*model.User, error) {
	args := m.Called(ctx, id, update)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Check(ctx context.Context, clientKey string, limit int, window time.Duration) (*model.RateLimitResult, error) {
	args := m.Called(ctx, clientKey, limit, window)
	if r, ok := args.Get(0).(*model.RateLimitResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
