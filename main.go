// Main entry point of the blog API. It loads configuration, connects to the
// database, runs migrations, wires the services and handlers together, sets up
// the HTTP router and middleware, and starts the server with graceful shutdown.
//
// @title Blog API
// @version 1.0
// @description A blog application API: token-based auth and author-scoped posts.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/auth"
	"github.com/user/blogapi-go/config"
	"github.com/user/blogapi-go/db"
	_ "github.com/user/blogapi-go/docs" // Generated Swagger docs
	"github.com/user/blogapi-go/posts"
	"github.com/user/blogapi-go/users"
)

func main() {
	// .env is a development convenience; in production the environment is set
	// directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if cfg.Server.MigrationsPath != "" {
		if err := db.RunMigrations(cfg.DB, cfg.Server.MigrationsPath); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// The uploads directory is served statically below; make sure it exists.
	if err := os.MkdirAll(cfg.Server.UploadsDir, 0o755); err != nil {
		log.Fatalf("Failed to create uploads directory: %v", err)
	}

	// Manual dependency injection: stores into services, services into handlers.
	userStore := auth.NewUserStore(pool)
	tokenService := auth.NewTokenService(*cfg.Auth)
	authService := auth.NewAuthService(userStore, tokenService)
	authHandlers := auth.NewHandlers(authService)

	userService := users.NewUserService(userStore)
	userHandlers := users.NewUserHandlers(userService)

	postStore := posts.NewPostStore(pool)
	postService := posts.NewPostService(postStore)
	postHandlers := posts.NewPostHandlers(postService)

	requireUser := auth.RequireUser(authService)

	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Convert panics into the standard apperror JSON shape instead of chi's
	// plain-text 500.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Static mount for uploaded images.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Server.UploadsDir))))

	r.Get("/", handleRoot)
	r.Get("/health", handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handleAPIHealth)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandlers.HandleSignup())
			r.Post("/login", authHandlers.HandleLogin())
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(requireUser)
			r.Get("/me", userHandlers.HandleGetProfile())
			r.Put("/me", userHandlers.HandleUpdateProfile())
		})

		r.Route("/posts", func(r chi.Router) {
			postHandlers.RegisterRoutes(r, requireUser)
		})
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run the server in a goroutine so main can wait for shutdown signals.
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// handleRoot serves the welcome payload.
func handleRoot(w http.ResponseWriter, r *http.Request) {
	auth.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Blog API",
		"version": "1.0.0",
		"docs":    "/swagger/",
	})
}

// handleHealth is the process liveness probe.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	auth.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleAPIHealth is the API-level liveness probe.
func handleAPIHealth(w http.ResponseWriter, r *http.Request) {
	auth.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy", "api": "online"})
}

// writeError is a local helper for the panic recovery middleware; handlers use
// auth.WriteError instead.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"error":"Failed to encode error response"}`, http.StatusInternalServerError)
	}
}
