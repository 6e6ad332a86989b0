package repository

import (
	"context"

	"visitorlog/internal/model"
	"visitorlog/internal/store"
)

type VisitorRepository interface {
	Create(ctx context.Context, v model.Visitor) (model.Visitor, error)
	FindByID(ctx context.Context, id int) (model.Visitor, error)
	List(ctx context.Context) ([]model.Visitor, error)
	Update(ctx context.Context, v model.Visitor) error
	Delete(ctx context.Context, id int) error
}

type visitorRepo struct{ col *store.Collection[model.Visitor] }

func NewVisitorRepository(col *store.Collection[model.Visitor]) VisitorRepository {
	return &visitorRepo{col: col}
}

func (r *visitorRepo) Create(_ context.Context, v model.Visitor) (model.Visitor, error) {
	id, err := r.col.Insert(func(id int) model.Visitor {
		v.ID = id
		return v
	})
	if err != nil {
		return model.Visitor{}, err
	}
	v.ID = id
	return v, nil
}

func (r *visitorRepo) FindByID(_ context.Context, id int) (model.Visitor, error) {
	v, ok := r.col.Get(id)
	if !ok {
		return model.Visitor{}, store.ErrNotFound
	}
	return v, nil
}

func (r *visitorRepo) List(_ context.Context) ([]model.Visitor, error) {
	return r.col.All(), nil
}

func (r *visitorRepo) Update(_ context.Context, v model.Visitor) error {
	return r.col.Update(v.ID, func(model.Visitor) model.Visitor { return v })
}

func (r *visitorRepo) Delete(_ context.Context, id int) error {
	return r.col.Delete(id)
}
