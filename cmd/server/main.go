package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/quizhive/backend/internal/auth"
	"github.com/quizhive/backend/internal/config"
	"github.com/quizhive/backend/internal/database"
	"github.com/quizhive/backend/internal/engine"
	"github.com/quizhive/backend/internal/middleware"
	"github.com/quizhive/backend/internal/progress"
	"github.com/quizhive/backend/internal/quizzes"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Reward engine with the production tables
	eng := engine.New(engine.DefaultConfig())

	// Stores, services, handlers
	progressStore := progress.NewStore(db)
	progressService := progress.NewService(progressStore, eng)
	progressHandler := progress.NewHandler(progressService)

	quizStore := quizzes.NewStore(db)
	quizService := quizzes.NewService(quizStore, progressService, eng)
	quizHandler := quizzes.NewHandler(quizService)

	authHandler := auth.NewHandler(db, []byte(cfg.JWTSecret))

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth([]byte(cfg.JWTSecret)))
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/quizzes", quizHandler.ListQuizzes).Methods("GET")
	protected.HandleFunc("/quizzes/{id:[0-9]+}", quizHandler.GetQuiz).Methods("GET")
	protected.HandleFunc("/quizzes/{id:[0-9]+}/attempts", quizHandler.SubmitAttempt).Methods("POST")
	protected.HandleFunc("/attempts", quizHandler.AttemptHistory).Methods("GET")

	protected.HandleFunc("/progress", progressHandler.GetProgress).Methods("GET")
	protected.HandleFunc("/achievements", progressHandler.GetAchievements).Methods("GET")
	protected.HandleFunc("/leaderboard", progressHandler.Leaderboard).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	log.Printf("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
