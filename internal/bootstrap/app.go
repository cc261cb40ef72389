package bootstrap

import (
	"context"
	"database/sql"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/oops"

	"resume-site/internal/auth"
	"resume-site/internal/resume"
	"resume-site/internal/services/health"
	"resume-site/internal/session"
	"resume-site/internal/shared/config"
	"resume-site/internal/shared/server"
	"resume-site/internal/shared/storage/db"
	"resume-site/internal/shared/telemetry"
	"resume-site/internal/users"
)

// App holds shared dependencies and the assembled router.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	DB            *sql.DB
	UsersRepo     users.Repo
	ResumeRepo    resume.Repo
	Sessions      session.Store
	UsersService  *users.Service
	AuthService   *auth.Service
	ResumeService *resume.Service
	AuthHandler   *auth.Handler
	ResumeHandler *resume.Handler
	Health        *health.Service
}

// Build validates cfg, opens storage and wires every service and handler.
// Without DATABASE_URL in a dev-like environment it runs on in-memory storage.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, oops.Code("CONFIG_INVALID").Wrap(err)
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:   app.Config,
		Sessions: app.Sessions,
		Auth:     app.AuthHandler,
		Resume:   app.ResumeHandler,
		Health:   app.Health,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_storage", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, oops.Code("CONFIG_INVALID").Wrap(config.ErrMissingDatabase)
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_storage", map[string]any{"reason": "connect failed", "error": err})
			return nil, nil
		}
		return nil, oops.Code("DB_CONNECT_FAILED").Wrap(err)
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, oops.Code("MIGRATION_FAILED").Wrap(err)
	}
	return sqlDB, nil
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.ResumeRepo = &resume.PGRepo{DB: app.DB}
		app.Sessions = &session.PGStore{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.ResumeRepo = resume.NewMemoryRepo()
		app.Sessions = session.NewMemoryStore()
	}

	app.UsersService = users.NewService(app.UsersRepo, users.NewBcryptHasher(app.Config.BcryptCost))
	app.AuthService = auth.NewService(app.UsersService, auth.SystemCredential{
		Username: app.Config.SystemLogin.Username,
		Password: app.Config.SystemLogin.Password,
		UserID:   app.Config.SystemLogin.UserID,
	})
	if app.Config.SystemLogin.Enabled() {
		telemetry.Warn("bootstrap.system_login_enabled", map[string]any{"user_id": app.Config.SystemLogin.UserID})
	}
	app.ResumeService = resume.NewService(app.UsersService, app.ResumeRepo)

	app.AuthHandler = auth.NewHandler(app.AuthService)
	app.ResumeHandler = resume.NewHandler(app.ResumeService, app.Config.DiagnosticsAllowed())
	if app.DB != nil {
		app.Health = health.NewService(app.DB)
	} else {
		app.Health = health.NewService(nil)
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
