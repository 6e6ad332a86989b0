package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"visitorlog/internal/auth"
	"visitorlog/internal/config"
	"visitorlog/internal/dto"
	"visitorlog/internal/model"
	"visitorlog/internal/repository"
	"visitorlog/internal/store"

	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	List(ctx context.Context, p auth.Principal) ([]dto.UserResponse, error)
	Get(ctx context.Context, p auth.Principal, id int) (*dto.UserResponse, error)
	Create(ctx context.Context, p auth.Principal, req dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, p auth.Principal, id int, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, p auth.Principal, id int) error
}

type userService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewUserService(repo repository.UserRepository, cfg *config.Config) UserService {
	return &userService{repo: repo, cfg: cfg}
}

func (s *userService) List(ctx context.Context, p auth.Principal) ([]dto.UserResponse, error) {
	if err := auth.Authorize(p, auth.UserList, 0); err != nil {
		return nil, err
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out, nil
}

func (s *userService) Get(ctx context.Context, p auth.Principal, id int) (*dto.UserResponse, error) {
	if err := auth.Authorize(p, auth.UserGet, id); err != nil {
		return nil, err
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, userErr(err)
	}
	resp := toUserResponse(u)
	return &resp, nil
}

func (s *userService) Create(ctx context.Context, p auth.Principal, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := auth.Authorize(p, auth.UserAdd, 0); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	first := strings.ToUpper(strings.TrimSpace(req.FirstName))
	last := strings.ToUpper(strings.TrimSpace(req.LastName))

	fe := fieldErrors{}
	if username == "" {
		fe.add("username", "username is required")
	}
	if password == "" {
		fe.add("password", "password is required")
	}
	if first == "" {
		fe.add("first_name", "first name is required")
	}
	if last == "" {
		fe.add("last_name", "last name is required")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, model.User{
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    first,
		LastName:     last,
		IsAdmin:      req.IsAdmin,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return nil, userErr(err)
	}
	resp := toUserResponse(created)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, p auth.Principal, id int, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := auth.Authorize(p, auth.UserUpdate, id); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, userErr(err)
	}

	username := strings.TrimSpace(req.Username)
	first := strings.ToUpper(strings.TrimSpace(req.FirstName))
	last := strings.ToUpper(strings.TrimSpace(req.LastName))
	password := strings.TrimSpace(req.Password)

	fe := fieldErrors{}
	if username == "" {
		fe.add("username", "username is required")
	}
	if first == "" {
		fe.add("first_name", "first name is required")
	}
	if last == "" {
		fe.add("last_name", "last name is required")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	u.Username = username
	u.FirstName = first
	u.LastName = last
	u.IsAdmin = req.IsAdmin
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, userErr(err)
	}
	resp := toUserResponse(u)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, p auth.Principal, id int) error {
	if err := auth.Authorize(p, auth.UserDelete, id); err != nil {
		return err
	}
	// Visitor records created by this user keep their creator_id; listings
	// resolve it to "Unknown" from now on.
	return userErr(s.repo.Delete(ctx, id))
}

// toUserResponse strips the password digest; it never crosses this boundary.
func toUserResponse(u model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// userErr maps store and repository errors onto the service's sentinels.
// The username collision surfaces here because the repository enforces it
// inside the collection's critical section.
func userErr(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicateUsername):
		return ErrUsernameTaken
	}
	return err
}
