package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/quizforge/quizforge/internal/api/http"
	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/db"
	"github.com/quizforge/quizforge/internal/lib/slogx"
	"github.com/quizforge/quizforge/internal/quiz"
)

func main() {
	cfg := config.FromEnv()
	slog.SetDefault(slog.New(slogx.NewHandler(os.Stderr, cfg.LogLevel)))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := quiz.NewSQLStore(dbh)
	svc := quiz.NewService(store, cfg.DefaultPoints)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/quizzes", api.ListQuizzesHandler(svc))
	r.Post("/quizzes", api.CreateQuizHandler(svc))
	r.Get("/quizzes/{quizID}", api.GetQuizHandler(svc))
	r.Put("/quizzes/{quizID}", api.ReplaceQuizHandler(svc))
	r.Post("/quizzes/{quizID}/grade", api.GradeAttemptHandler(svc))

	slog.Info("gateway listening", "addr", cfg.HTTPAddr, "db", cfg.DBDriver)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatalf("http server: %v", err)
	}
}
