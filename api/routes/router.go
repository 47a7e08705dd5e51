package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jwsummers/Canopy-Chronicles/api/controllers"
	"github.com/jwsummers/Canopy-Chronicles/api/middleware"
	"github.com/jwsummers/Canopy-Chronicles/internal/auth"
	"github.com/jwsummers/Canopy-Chronicles/internal/feed"
	"github.com/jwsummers/Canopy-Chronicles/internal/grows"
	"github.com/jwsummers/Canopy-Chronicles/internal/notifications"
	"github.com/jwsummers/Canopy-Chronicles/internal/profiles"
	"github.com/jwsummers/Canopy-Chronicles/pkg/auth/session"
	"github.com/jwsummers/Canopy-Chronicles/pkg/config"
	"github.com/jwsummers/Canopy-Chronicles/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	Sessions      session.AccessSessionChecker
	Auth          auth.Service
	Grows         grows.Service
	Feed          feed.Service
	Profiles      profiles.Service
	Notifications notifications.Service

	DBPinger      controllers.Pinger
	RedisPinger   controllers.Pinger
	StoragePinger controllers.Pinger
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DBPinger, deps.RedisPinger, deps.StoragePinger))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(deps.Auth, deps.Logger))
		r.Post("/login", controllers.AuthLogin(deps.Auth, deps.Logger))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, deps.Logger))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, deps.Logger))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Config.JWT, deps.Sessions, deps.Logger))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/grows", func(r chi.Router) {
			r.Get("/", controllers.ListGrows(deps.Grows, deps.Logger))
			r.Post("/", controllers.CreateGrow(deps.Grows, deps.Logger))
			r.Route("/{growID}", func(r chi.Router) {
				r.Get("/", controllers.GetGrow(deps.Grows, deps.Logger))
				r.Put("/", controllers.UpdateGrow(deps.Grows, deps.Logger))
				r.Delete("/", controllers.DeleteGrow(deps.Grows, deps.Logger))
				r.Post("/complete", controllers.CompleteGrow(deps.Grows, deps.Logger))
				r.Post("/events", controllers.AddGrowEvent(deps.Grows, deps.Logger))
				r.Post("/notes", controllers.AddGrowNote(deps.Grows, deps.Logger))
				r.Post("/images", controllers.AddGrowImage(deps.Grows, deps.Logger))
				r.Get("/timeline", controllers.GrowTimeline(deps.Feed, deps.Grows, deps.Logger))
			})
		})

		r.Get("/activities", controllers.ListActivities(deps.Feed, deps.Logger))

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", controllers.GetProfile(deps.Profiles, deps.Logger))
			r.Patch("/", controllers.UpdateProfile(deps.Profiles, deps.Logger))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(deps.Notifications, deps.Logger))
			r.Get("/unseen", controllers.CountUnseenNotifications(deps.Notifications, deps.Logger))
			r.Post("/seen", controllers.MarkNotificationsSeen(deps.Notifications, deps.Logger))
			r.Delete("/", controllers.ClearNotifications(deps.Notifications, deps.Logger))
		})
	})

	return r
}
