// cmd/seeduser — create or reset the admin account directly in a data dir.
// Recovery tool for a locked-out install. Usage: go run ./cmd/seeduser
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"visitorlog/internal/model"
	"visitorlog/internal/store"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	username := envOr("ADMIN_USERNAME", "admin")
	password := envOr("ADMIN_PASSWORD", "admin")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("data dir error: %v", err)
	}

	seed := model.User{
		ID:           1,
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    envOr("ADMIN_FIRST_NAME", "SYSTEM"),
		LastName:     envOr("ADMIN_LAST_NAME", "ADMIN"),
		IsAdmin:      true,
		CreatedAt:    time.Now(),
	}

	users, err := store.Open(filepath.Join(dataDir, "users.json"), []model.User{seed})
	if err != nil {
		log.Fatalf("store error: %v", err)
	}

	// Open only seeds a missing file. If the collection already exists,
	// reset the password of the matching account or insert a fresh admin.
	for _, u := range users.All() {
		if u.Username == username {
			err := users.Update(u.ID, func(cur model.User) model.User {
				cur.PasswordHash = string(hash)
				cur.IsAdmin = true
				return cur
			})
			if err != nil {
				log.Fatalf("update error: %v", err)
			}
			fmt.Printf("admin %q password reset\n", username)
			return
		}
	}

	if _, err := users.Insert(func(id int) model.User {
		seed.ID = id
		return seed
	}); err != nil {
		log.Fatalf("insert error: %v", err)
	}
	fmt.Printf("admin %q ready (password %q)\n", username, password)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
