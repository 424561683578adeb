package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/shire-forum/shire/internal/auth"
	"github.com/shire-forum/shire/internal/database"
	"github.com/shire-forum/shire/internal/handlers"
	"github.com/shire-forum/shire/internal/middleware"
	"github.com/shire-forum/shire/internal/stats"
	"github.com/shire-forum/shire/internal/store"
	"github.com/shire-forum/shire/internal/views"
)

// ChartSize is the edge length, in pixels, of the stats pie charts
const ChartSize = 240

// Options configures the HTTP surface
type Options struct {
	DB           *database.DB
	Hasher       *auth.Hasher
	Codec        *auth.SessionCodec
	CookieName   string
	CookieSecure bool

	// Tracker is optional; nil disables activity tracking
	Tracker handlers.ActivityTracker

	Logger *zap.Logger
}

// New builds the forum's route table wrapped in its middleware chain
func New(opts Options) (http.Handler, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	renderer, err := views.New()
	if err != nil {
		return nil, err
	}

	st := store.New(opts.DB)
	sessions := middleware.NewSessions(opts.Codec, st, opts.CookieName, opts.CookieSecure, logger.Named("auth"))

	authHandler := handlers.NewAuthHandler(st, opts.Hasher, sessions, opts.Tracker, renderer, logger.Named("auth"))
	questHandler := handlers.NewQuestHandler(st, opts.Tracker, renderer, logger.Named("quests"))
	userHandler := handlers.NewUserHandler(st, renderer, logger.Named("http"))
	statsHandler := handlers.NewStatsHandler(st, stats.NewReporter(stats.NewSVGCharter(ChartSize)), opts.Tracker, renderer, logger.Named("stats"))

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handlers.Health(opts.DB, logger.Named("http")))

	mux.HandleFunc("GET /{$}", userHandler.Index)
	mux.HandleFunc("GET /users/{$}", userHandler.List)
	mux.HandleFunc("GET /profile/{$}", userHandler.Profile)

	mux.HandleFunc("GET /quests/{$}", questHandler.List)
	mux.HandleFunc("GET /quests/{id}/{$}", questHandler.Detail)
	mux.HandleFunc("POST /quests/{id}/{$}", questHandler.Detail)
	mux.HandleFunc("GET /add_quest/{$}", questHandler.Add)
	mux.HandleFunc("POST /add_quest/{$}", questHandler.Add)

	for _, path := range []string{"/login", "/login/{$}"} {
		mux.HandleFunc("GET "+path, authHandler.Login)
		mux.HandleFunc("POST "+path, authHandler.Login)
	}
	mux.HandleFunc("GET /signup/{$}", authHandler.Signup)
	mux.HandleFunc("POST /signup/{$}", authHandler.Signup)
	mux.HandleFunc("/logout", authHandler.Logout)
	mux.HandleFunc("/logout/{$}", authHandler.Logout)

	mux.HandleFunc("GET /stats/{$}", statsHandler.Show)

	mux.HandleFunc("/", userHandler.NotFound)

	var handler http.Handler = sessions.Load(mux)
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.Recover(logger.Named("http"))(handler)
	handler = middleware.RequestLog(logger.Named("http"))(handler)
	handler = middleware.RequestID(handler)

	return handler, nil
}
