// Package bootstrap opens the document collections a server process needs,
// seeding the bootstrap admin on first run.
package bootstrap

import (
	"path/filepath"
	"time"

	"visitorlog/internal/config"
	"visitorlog/internal/model"
	"visitorlog/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// Open opens both document collections in cfg.DataDir. A missing users file
// is seeded with the configured admin so a fresh install can always log in.
func Open(cfg *config.Config) (*store.Collection[model.User], *store.Collection[model.Visitor], error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cfg.BcryptCost)
	if err != nil {
		return nil, nil, err
	}
	admin := model.User{
		ID:           1,
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		FirstName:    cfg.AdminFirstName,
		LastName:     cfg.AdminLastName,
		IsAdmin:      true,
		CreatedAt:    time.Now(),
	}

	users, err := store.Open(filepath.Join(cfg.DataDir, "users.json"), []model.User{admin})
	if err != nil {
		return nil, nil, err
	}
	visitors, err := store.Open(filepath.Join(cfg.DataDir, "visitors.json"), []model.Visitor{})
	if err != nil {
		return nil, nil, err
	}
	return users, visitors, nil
}
