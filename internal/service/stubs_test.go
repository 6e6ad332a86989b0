package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"visitorlog/internal/config"
	"visitorlog/internal/model"
	"visitorlog/internal/repository"
	"visitorlog/internal/store"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ── In-memory repository stubs ───────────────────────────────────────────────

type stubUserRepo struct {
	nextID int
	users  map[int]model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{nextID: 1, users: make(map[int]model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u model.User) (model.User, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return model.User{}, repository.ErrDuplicateUsername
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = u
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int) (model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return model.User{}, store.ErrNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, store.ErrNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u model.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username && existing.ID != u.ID {
			return repository.ErrDuplicateUsername
		}
	}
	if _, ok := r.users[u.ID]; !ok {
		return store.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type stubVisitorRepo struct {
	nextID   int
	visitors map[int]model.Visitor
}

func newStubVisitorRepo() *stubVisitorRepo {
	return &stubVisitorRepo{nextID: 1, visitors: make(map[int]model.Visitor)}
}

func (r *stubVisitorRepo) Create(_ context.Context, v model.Visitor) (model.Visitor, error) {
	v.ID = r.nextID
	r.nextID++
	r.visitors[v.ID] = v
	return v, nil
}

func (r *stubVisitorRepo) FindByID(_ context.Context, id int) (model.Visitor, error) {
	v, ok := r.visitors[id]
	if !ok {
		return model.Visitor{}, store.ErrNotFound
	}
	return v, nil
}

func (r *stubVisitorRepo) List(_ context.Context) ([]model.Visitor, error) {
	out := make([]model.Visitor, 0, len(r.visitors))
	for _, v := range r.visitors {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubVisitorRepo) Update(_ context.Context, v model.Visitor) error {
	if _, ok := r.visitors[v.ID]; !ok {
		return store.ErrNotFound
	}
	r.visitors[v.ID] = v
	return nil
}

func (r *stubVisitorRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.visitors[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.visitors, id)
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func newTestCfg() *config.Config {
	return &config.Config{
		JWTSecret:          "test_jwt_secret_32_chars_minimum!",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		BcryptCost:         bcrypt.MinCost,
	}
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password string, admin bool) model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := repo.Create(context.Background(), model.User{
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    "TEST",
		LastName:     "USER",
		IsAdmin:      admin,
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
	return u
}
