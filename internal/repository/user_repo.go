package repository

import (
	"context"
	"errors"

	"visitorlog/internal/model"
	"visitorlog/internal/store"
)

// ErrDuplicateUsername is returned by Create and Update when the username
// collides with a different user record. The check runs inside the
// collection's critical section, so concurrent writers cannot both pass it.
var ErrDuplicateUsername = errors.New("repository: username already exists")

type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	FindByID(ctx context.Context, id int) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u model.User) error
	Delete(ctx context.Context, id int) error
}

type userRepo struct{ col *store.Collection[model.User] }

func NewUserRepository(col *store.Collection[model.User]) UserRepository {
	return &userRepo{col: col}
}

func (r *userRepo) Create(_ context.Context, u model.User) (model.User, error) {
	id, err := r.col.InsertIf(uniqueUsername(u.Username, 0), func(id int) model.User {
		u.ID = id
		return u
	})
	if err != nil {
		return model.User{}, err
	}
	u.ID = id
	return u, nil
}

func (r *userRepo) FindByID(_ context.Context, id int) (model.User, error) {
	u, ok := r.col.Get(id)
	if !ok {
		return model.User{}, store.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) FindByUsername(_ context.Context, username string) (model.User, error) {
	// Case-sensitive exact match; usernames are unique across the collection.
	for _, u := range r.col.All() {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, store.ErrNotFound
}

func (r *userRepo) List(_ context.Context) ([]model.User, error) {
	return r.col.All(), nil
}

func (r *userRepo) Update(_ context.Context, u model.User) error {
	return r.col.UpdateIf(u.ID, uniqueUsername(u.Username, u.ID), func(model.User) model.User { return u })
}

func (r *userRepo) Delete(_ context.Context, id int) error {
	return r.col.Delete(id)
}

// uniqueUsername rejects the write when username belongs to a record other
// than selfID. Pass selfID 0 for inserts.
func uniqueUsername(username string, selfID int) func([]model.User) error {
	return func(records []model.User) error {
		for _, rec := range records {
			if rec.Username == username && rec.ID != selfID {
				return ErrDuplicateUsername
			}
		}
		return nil
	}
}
