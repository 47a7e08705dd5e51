package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/jwsummers/Canopy-Chronicles/api/routes"
	"github.com/jwsummers/Canopy-Chronicles/internal/auth"
	"github.com/jwsummers/Canopy-Chronicles/internal/feed"
	"github.com/jwsummers/Canopy-Chronicles/internal/grows"
	"github.com/jwsummers/Canopy-Chronicles/internal/media"
	"github.com/jwsummers/Canopy-Chronicles/internal/notifications"
	"github.com/jwsummers/Canopy-Chronicles/internal/profiles"
	"github.com/jwsummers/Canopy-Chronicles/internal/reminders"
	"github.com/jwsummers/Canopy-Chronicles/pkg/auth/session"
	"github.com/jwsummers/Canopy-Chronicles/pkg/config"
	"github.com/jwsummers/Canopy-Chronicles/pkg/credstore"
	"github.com/jwsummers/Canopy-Chronicles/pkg/db"
	"github.com/jwsummers/Canopy-Chronicles/pkg/logger"
	"github.com/jwsummers/Canopy-Chronicles/pkg/migrate"
	"github.com/jwsummers/Canopy-Chronicles/pkg/redis"
	"github.com/jwsummers/Canopy-Chronicles/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap object storage", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	credStore, err := credstore.NewStore(redisClient, cfg.Credentials)
	if err != nil {
		logg.Error(context.Background(), "failed to create credential store", err)
		os.Exit(1)
	}

	usersRepo := auth.NewRepository(dbClient.DB())
	growsRepo := grows.NewRepository(dbClient.DB())
	activitiesRepo := feed.NewRepository(dbClient.DB())
	profilesRepo := profiles.NewRepository(dbClient.DB())
	notificationsRepo := notifications.NewRepository(dbClient.DB())
	scheduleStore := reminders.NewScheduleStore(dbClient.DB())

	authService, err := auth.NewService(usersRepo, sessionManager, credStore, cfg.JWT, cfg.Password, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	scheduler, err := reminders.NewScheduler(scheduleStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create reminder scheduler", err)
		os.Exit(1)
	}
	reminderService, err := reminders.NewService(scheduler, profilesRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create reminder service", err)
		os.Exit(1)
	}

	imageStore, err := media.NewStore(gcsClient, cfg.GCS.BucketName)
	if err != nil {
		logg.Error(context.Background(), "failed to create image store", err)
		os.Exit(1)
	}

	growService, err := grows.NewService(growsRepo, activitiesRepo, imageStore, reminderService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create grow service", err)
		os.Exit(1)
	}

	feedService, err := feed.NewService(activitiesRepo, growsRepo, growsRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create feed service", err)
		os.Exit(1)
	}

	profileService, err := profiles.NewService(profilesRepo, usersRepo, reminderService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	notificationService, err := notifications.NewService(notificationsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create notification service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			Sessions:      sessionManager,
			Auth:          authService,
			Grows:         growService,
			Feed:          feedService,
			Profiles:      profileService,
			Notifications: notificationService,
			DBPinger:      dbClient,
			RedisPinger:   redisClient,
			StoragePinger: gcsClient,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
