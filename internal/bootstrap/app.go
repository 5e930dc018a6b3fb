package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"smarthire-backend/internal/llm"
	"smarthire-backend/internal/llm/gemini"
	"smarthire-backend/internal/questions"
	"smarthire-backend/internal/resumes"
	"smarthire-backend/internal/shared/auth"
	"smarthire-backend/internal/shared/config"
	"smarthire-backend/internal/shared/server"
	"smarthire-backend/internal/shared/storage/db"
	"smarthire-backend/internal/shared/storage/object"
	"smarthire-backend/internal/shared/storage/object/local"
	"smarthire-backend/internal/shared/storage/object/s3"
	"smarthire-backend/internal/shared/telemetry"
	"smarthire-backend/internal/users"
)

// App holds the wired application.
type App struct {
	Config config.Config
	DB     *sql.DB
	Router *gin.Engine
	Users  *users.Service
}

// Build wires config, storage, services, handlers and the router. Without a
// DATABASE_URL the app runs on in-memory repositories, which is a dev-only
// mode; production requires the database and a JWT secret.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if cfg.Env == "production" {
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required in production")
		}
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpire)

	var (
		database   *sql.DB
		userRepo   users.Repo
		resumeRepo resumes.Repo
	)
	if cfg.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(ctx, database); err != nil {
			database.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		userRepo = &users.PGRepo{DB: database}
		resumeRepo = &resumes.PGRepo{DB: database}
	} else {
		telemetry.Warn("bootstrap.memory_repos", map[string]any{"env": cfg.Env})
		userRepo = users.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
	}

	store, err := buildObjectStore(ctx, cfg)
	if err != nil {
		if database != nil {
			database.Close()
		}
		return nil, err
	}

	var client llm.Client
	if cfg.GeminiAPIKey != "" {
		client, err = gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
		if err != nil {
			if database != nil {
				database.Close()
			}
			return nil, err
		}
	} else {
		// Uploads still work; the pipeline stores fallback documents.
		telemetry.Warn("bootstrap.llm_unconfigured", nil)
	}

	userSvc := users.NewService(userRepo, tokens)
	resumeSvc := resumes.NewService(resumeRepo, store, client)

	router := server.NewRouter(server.RouterDeps{
		Config:    cfg,
		Tokens:    tokens,
		Users:     users.NewHandler(userSvc),
		Resumes:   resumes.NewHandler(resumeSvc),
		Questions: questions.NewHandler(questions.NewGenerator(client)),
	})

	return &App{
		Config: cfg,
		DB:     database,
		Router: router,
		Users:  userSvc,
	}, nil
}

// Close releases held resources.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func buildObjectStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required when OBJECT_STORE=s3")
		}
		return s3.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return local.New(cfg.UploadDir), nil
	}
}
