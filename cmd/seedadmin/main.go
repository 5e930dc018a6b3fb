package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"smarthire-backend/internal/shared/config"
	"smarthire-backend/internal/shared/storage/db"
	"smarthire-backend/internal/shared/telemetry"
	"smarthire-backend/internal/users"
)

const (
	defaultAdminEmail = "admin@smarthire.com"
	defaultAdminName  = "Admin"
)

// Seeds the initial admin account. Safe to run repeatedly; an existing
// account is left untouched.
func main() {
	cfg := config.Load()

	email := getenv("ADMIN_EMAIL", defaultAdminEmail)
	name := getenv("ADMIN_NAME", defaultAdminName)
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		telemetry.Error("seedadmin.missing_password", map[string]any{"hint": "set ADMIN_PASSWORD"})
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	database, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		telemetry.Error("seedadmin.connect_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, database); err != nil {
		telemetry.Error("seedadmin.migrate_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	repo := &users.PGRepo{DB: database}

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		telemetry.Info("seedadmin.exists", map[string]any{"email": email})
		return
	} else if !errors.Is(err, users.ErrNotFound) {
		telemetry.Error("seedadmin.lookup_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		telemetry.Error("seedadmin.hash_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	now := time.Now().UTC()
	admin := users.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         users.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(ctx, admin); err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			telemetry.Info("seedadmin.exists", map[string]any{"email": email})
			return
		}
		telemetry.Error("seedadmin.create_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	telemetry.Info("seedadmin.created", map[string]any{"email": email})
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
