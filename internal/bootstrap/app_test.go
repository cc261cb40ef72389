package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"resume-site/internal/resume"
	"resume-site/internal/session"
	"resume-site/internal/shared/config"
	"resume-site/internal/users"
)

func TestBuildFallsBackToMemoryInDev(t *testing.T) {
	app, err := Build(context.Background(), config.Config{Env: "dev", BcryptCost: 4})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if app.DB != nil {
		t.Fatalf("expected no database")
	}
	if _, ok := app.UsersRepo.(*users.MemoryRepo); !ok {
		t.Fatalf("expected memory users repo, got %T", app.UsersRepo)
	}
	if _, ok := app.ResumeRepo.(*resume.MemoryRepo); !ok {
		t.Fatalf("expected memory resume repo, got %T", app.ResumeRepo)
	}
	if _, ok := app.Sessions.(*session.MemoryStore); !ok {
		t.Fatalf("expected memory session store, got %T", app.Sessions)
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthy app, got %d", rec.Code)
	}
}

func TestBuildRequiresDatabaseInProduction(t *testing.T) {
	_, err := Build(context.Background(), config.Config{Env: "production"})
	if !errors.Is(err, config.ErrMissingDatabase) {
		t.Fatalf("expected ErrMissingDatabase, got %v", err)
	}
}

func TestBuildRequiresDatabaseInStaging(t *testing.T) {
	_, err := Build(context.Background(), config.Config{Env: "staging"})
	if !errors.Is(err, config.ErrMissingDatabase) {
		t.Fatalf("expected ErrMissingDatabase, got %v", err)
	}
}

func TestBuildRejectsSystemLoginWithoutUserID(t *testing.T) {
	cfg := config.Config{Env: "dev", SystemLogin: config.SystemLogin{Username: "root", Password: "s3cret"}}
	_, err := Build(context.Background(), cfg)
	if !errors.Is(err, config.ErrSystemLoginUserID) {
		t.Fatalf("expected ErrSystemLoginUserID, got %v", err)
	}
}
