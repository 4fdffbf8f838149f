package cmd

import (
	"net/http"

	"blog-backend/internal/handlers"
	"blog-backend/internal/middleware"
	"blog-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type routerDeps struct {
	users    *services.UserService
	blogs    *services.BlogService
	images   *services.ImageService
	sessions *services.SessionResolver
	feed     *services.FeedHub
	db       handlers.Pinger
}

func newRouter(deps routerDeps) http.Handler {
	userHandler := handlers.NewUserHandler(deps.users)
	blogHandler := handlers.NewBlogHandler(deps.blogs)
	imageHandler := handlers.NewImageHandler(deps.images)
	feedHandler := handlers.NewFeedHandler(deps.feed)
	healthHandler := handlers.NewHealthHandler(deps.db)

	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)
	r.Use(middleware.Metrics)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(deps.sessions))

		r.Post("/users", userHandler.CreateUser)
		r.Post("/login", userHandler.Login)
		r.Get("/me", userHandler.Me)

		r.Get("/blogs", blogHandler.List)
		r.Get("/blogs/count", blogHandler.Count)
		r.Get("/blogs/{blog_id}", blogHandler.Find)
		r.Post("/blogs", blogHandler.Create)
		r.Put("/blogs/{blog_id}", blogHandler.Edit)
		r.Delete("/blogs/{blog_id}", blogHandler.Delete)

		r.Post("/images/upload", imageHandler.Upload)
	})

	// WebSocket route
	r.Get("/ws", feedHandler.HandleWebSocket)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", healthHandler.Health)

	return r
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
