package main

// Run database migrations:
//   go run ./cmd/migrate              # apply pending migrations
//   go run ./cmd/migrate -cmd status  # show applied versions
//   go run ./cmd/migrate -cmd down    # roll back the last migration
//   go run ./cmd/migrate -prune-sessions

import (
	"context"
	"flag"
	"log"
	"os"

	"resume-site/internal/session"
	"resume-site/internal/shared/config"
	"resume-site/internal/shared/storage/db"
	"resume-site/internal/shared/telemetry"
)

func main() {
	command := flag.String("cmd", "up", "goose command: up, down or status")
	prune := flag.Bool("prune-sessions", false, "delete expired sessions instead of migrating")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if *prune {
		n, err := (&session.PGStore{DB: sqlDB}).DeleteExpired(ctx)
		if err != nil {
			log.Printf("failed to prune sessions: %v", err)
			os.Exit(1)
		}
		telemetry.Info("sessions.pruned", map[string]any{"deleted": n})
		return
	}

	if err := db.Migrate(ctx, sqlDB, *command); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
}
