package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/faisal/committee-tracker-go/config"
	"github.com/faisal/committee-tracker-go/pkg/logging"
	"github.com/faisal/committee-tracker-go/routes"
	"github.com/faisal/committee-tracker-go/services"
	"github.com/faisal/committee-tracker-go/state"
	"github.com/faisal/committee-tracker-go/store"
)

func main() {
	logging.Setup()
	cfg := config.Load()

	ctx := context.Background()
	st, err := store.NewMongo(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		slog.Error("failed to connect to store", "error", err)
		os.Exit(1)
	}
	defer st.Close(ctx)
	slog.Info("store connected", "database", cfg.DBName)

	appState := state.New()
	if err := appState.Load(ctx, st); err != nil {
		slog.Error("failed to load state", "error", err)
		os.Exit(1)
	}

	settings := services.NewSettingsService(st)
	if err := settings.Load(ctx); err != nil {
		slog.Error("failed to load settings", "error", err)
		os.Exit(1)
	}

	notifications := services.NewNotificationService(st, appState)
	notifications.Lang = settings.Language

	lock := services.NewAutoLock(st, cfg.LockWindow, cfg.LockWarning)
	lock.Touch()
	defer lock.Stop()

	deps := &routes.Deps{
		Committees:    services.NewCommitteeService(st, appState, notifications),
		Installments:  services.NewInstallmentService(st, appState, notifications),
		Notifications: notifications,
		Settings:      settings,
		Backup:        services.NewBackupService(st, appState, settings),
		Lock:          lock,
	}

	r := gin.Default()
	r.Use(cors.Default())
	routes.SetupRoutes(r, cfg, deps)

	slog.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
