package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/config"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/database"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/economy"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/generator"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/jobs"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/middleware"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/quiz"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/reputation"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/review"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/schedule"
)

func main() {
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Generation stack. The arbiter shares the throttled client with the
	// task and quiz generators.
	llm := generator.NewLLMClient(cfg)
	gen := generator.NewGenerator(llm)
	arbiter := generator.NewArbiter(llm)

	// Stores and services
	reputationStore := reputation.NewStore(db)
	reputationService := reputation.NewService(reputationStore)

	economyStore := economy.NewStore(db)
	economyService := economy.NewService(economyStore, reputationService, cfg.DecayInterval)

	scheduleStore := schedule.NewStore(db)
	scheduleService := schedule.NewService(scheduleStore, gen)

	quizStore := quiz.NewStore(db)
	quizService := quiz.NewService(quizStore, gen, economyStore, reputationService)

	reviewStore := review.NewStore(db)
	reviewService := review.NewService(reviewStore, arbiter, economyStore, reputationService)

	// Handlers
	scheduleHandler := schedule.NewHandler(scheduleService)
	quizHandler := quiz.NewHandler(quizService)
	reviewHandler := review.NewHandler(reviewService)
	economyHandler := economy.NewHandler(economyService)
	reputationHandler := reputation.NewHandler(reputationService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth([]byte(cfg.JWTSecret)))

	protected.HandleFunc("/announcements", scheduleHandler.CreateAnnouncement).Methods("POST")
	protected.HandleFunc("/tasks", scheduleHandler.ListTasks).Methods("GET")
	protected.HandleFunc("/tasks/{id}", scheduleHandler.GetTask).Methods("GET")

	protected.HandleFunc("/tasks/{id}/quiz/start", quizHandler.StartQuiz).Methods("POST")
	protected.HandleFunc("/quiz/attempts/{id}/submit", quizHandler.SubmitMCQ).Methods("POST")
	protected.HandleFunc("/quiz/attempts/{id}/theory", quizHandler.SubmitTheory).Methods("POST")
	protected.HandleFunc("/quiz/attempts/{id}", quizHandler.GetAttempt).Methods("GET")

	protected.HandleFunc("/reviews", reviewHandler.CastReview).Methods("POST")
	protected.HandleFunc("/reviews/{id}/respond", reviewHandler.RespondReview).Methods("POST")
	protected.HandleFunc("/reviews/{id}", reviewHandler.GetReview).Methods("GET")

	protected.HandleFunc("/tolerance", economyHandler.GetTolerance).Methods("GET")
	protected.HandleFunc("/ledger", economyHandler.GetLedger).Methods("GET")

	protected.HandleFunc("/leaderboard", reputationHandler.GlobalLeaderboard).Methods("GET")
	protected.HandleFunc("/courses/{id}/leaderboard", reputationHandler.CourseLeaderboard).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Background jobs
	runner := jobs.NewRunner(jobs.NewStore(db), []jobs.Job{
		{
			Name: "stake_decay",
			Next: jobs.Every(cfg.DecayInterval),
			Run: func(ctx context.Context) error {
				_, err := economyService.RunDecay()
				return err
			},
		},
		{
			Name: "tolerance_penalty",
			Next: jobs.Every(cfg.ToleranceInterval),
			Run: func(ctx context.Context) error {
				_, err := economyService.RunTolerance()
				return err
			},
		},
		{
			Name: "fallback_plan",
			Next: jobs.WeeklyOn(cfg.PlanWeekday, 6),
			Run: func(ctx context.Context) error {
				_, err := scheduleService.RunWeeklyFallback(ctx)
				return err
			},
		},
		{
			Name: "weekly_revision",
			Next: jobs.WeeklyOn(cfg.RevisionWeekday, 6),
			Run: func(ctx context.Context) error {
				_, err := scheduleService.RunWeeklyRevision(ctx)
				return err
			},
		},
	})
	runner.Start(context.Background())

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
