// Package server wires the HTTP routes.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hydrate-app/hydrate/internal/activity"
	"github.com/hydrate-app/hydrate/internal/auth"
	"github.com/hydrate-app/hydrate/internal/dashboard"
	"github.com/hydrate-app/hydrate/internal/export"
	"github.com/hydrate-app/hydrate/internal/intake"
	"github.com/hydrate-app/hydrate/internal/middleware"
	"github.com/hydrate-app/hydrate/internal/reminder"
	"github.com/hydrate-app/hydrate/internal/settings"
)

// Store is the relational storage every domain service runs on.
type Store interface {
	auth.UserStore
	intake.Store
	reminder.Store
	settings.Store
	export.IntakeLister
	dashboard.Snapshotter
}

// Deps are the collaborators the router needs. Files may be nil, in which
// case the export routes are not mounted.
type Deps struct {
	Store          Store
	Sessions       *auth.SessionStore
	Activity       activity.Store
	Files          export.FileStore
	DailyGoal      float64
	AllowedOrigins []string
}

func NewRouter(d Deps) http.Handler {
	if d.Activity == nil {
		d.Activity = activity.Nop{}
	}

	authHandler := auth.NewHandler(auth.NewService(d.Store, d.DailyGoal), d.Sessions, d.Activity)
	intakeHandler := intake.NewHandler(intake.NewService(d.Store), d.Sessions, d.Activity)
	reminderHandler := reminder.NewHandler(reminder.NewService(d.Store), d.Sessions, d.Activity)
	settingsHandler := settings.NewHandler(settings.NewService(d.Store), d.Sessions, d.Activity)
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(d.Store), d.Sessions)
	activityHandler := activity.NewHandler(d.Activity)

	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Public routes
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	})
	r.Get("/login", authHandler.Page)
	r.Post("/login", authHandler.Login)
	r.Get("/register", authHandler.Page)
	r.Post("/register", authHandler.Register)

	// Session routes (protected)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(d.Sessions))
		r.Get("/dashboard", dashboardHandler.Show)
		r.Post("/add_water", intakeHandler.AddWater)
		r.Post("/add_reminder", reminderHandler.Add)
		r.Post("/toggle_reminder/{id}", reminderHandler.Toggle)
		r.Post("/delete_reminder/{id}", reminderHandler.Delete)
		r.Post("/update_settings", settingsHandler.UpdateGoal)
		r.Post("/update_theme", settingsHandler.UpdateTheme)
		r.Get("/activity", activityHandler.List)
		r.Get("/logout", authHandler.Logout)

		if d.Files != nil {
			exportHandler := export.NewHandler(export.NewService(d.Store, d.Files), d.Sessions, d.Activity)
			r.Post("/export", exportHandler.Create)
			r.Get("/export/download", exportHandler.Download)
		}
	})

	return r
}
