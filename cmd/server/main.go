package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"pathway/internal/config"
	"pathway/internal/database"
	"pathway/internal/handlers"
	"pathway/internal/notify"
	"pathway/internal/repository"
	"pathway/internal/scheduler"
	"pathway/internal/security"
	"pathway/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)

	// Outbound notifications; runs in disabled mode when SES is unconfigured
	notifier, err := notify.NewMailNotifier(ctx, userRepo, cfg.AWSRegion, cfg.FromEmail, cfg.FromName)
	if err != nil {
		log.Fatalf("Failed to initialize notifier: %v", err)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo)
	engagementService := service.NewEngagementService(authService)
	quizService := service.NewQuizService(authService, userRepo, engagementService)
	mentorService := service.NewMentorService(authService, notifier)
	goalService := service.NewGoalService(authService)

	// Goal reminders run until shutdown
	reminders := scheduler.NewReminderScheduler(goalService, notifier)
	go reminders.Start(ctx, cfg.ReminderInterval)

	tokens := security.NewTokenIssuer(cfg.TokenSecret, cfg.TokenDuration)
	limiter := security.NewRateLimiter(10, time.Minute)

	// Initialize handlers
	middleware := handlers.NewMiddleware(authService, tokens, limiter)
	authHandler := handlers.NewAuthHandler(authService, goalService, engagementService, tokens)
	quizHandler := handlers.NewQuizHandler(quizService)
	mentorHandler := handlers.NewMentorHandler(mentorService)
	goalHandler := handlers.NewGoalHandler(goalService)
	engagementHandler := handlers.NewEngagementHandler(engagementService)
	linkHandler := handlers.NewLinkHandler(authService, tokens, cfg.DiscordClientID, cfg.DiscordClientSecret, cfg.AppBaseURL)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /api/auth/discord/start", linkHandler.Start)
	mux.HandleFunc("GET /api/auth/discord/callback", linkHandler.Callback)

	// Protected routes
	mux.HandleFunc("POST /api/logout", middleware.RequireAuth(authHandler.Logout))
	mux.HandleFunc("GET /api/profile", middleware.RequireAuth(authHandler.Profile))

	mux.HandleFunc("GET /api/quiz/categories", middleware.RequireAuth(quizHandler.Categories))
	mux.HandleFunc("GET /api/quiz/start", middleware.RequireAuth(quizHandler.Start))
	mux.HandleFunc("POST /api/quiz/answer", middleware.RequireAuth(quizHandler.Answer))
	mux.HandleFunc("GET /api/resources", middleware.RequireAuth(quizHandler.Resources))
	mux.HandleFunc("GET /api/careers", middleware.RequireAuth(quizHandler.CareerAdvice))

	mux.HandleFunc("POST /api/mentors/register", middleware.RequireAuth(mentorHandler.Register))
	mux.HandleFunc("POST /api/mentors/request", middleware.RequireAuth(mentorHandler.Request))
	mux.HandleFunc("POST /api/mentors/accept", middleware.RequireAuth(mentorHandler.Accept))

	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goalHandler.Add))
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goalHandler.List))
	mux.HandleFunc("POST /api/goals/complete", middleware.RequireAuth(goalHandler.Complete))

	mux.HandleFunc("POST /api/rewards/daily", middleware.RequireAuth(engagementHandler.ClaimDaily))
	mux.HandleFunc("GET /api/leaderboard", middleware.RequireAuth(engagementHandler.Leaderboard))
	mux.HandleFunc("POST /api/friends", middleware.RequireAuth(engagementHandler.AddFriend))
	mux.HandleFunc("GET /api/friends", middleware.RequireAuth(engagementHandler.Friends))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	log.Println("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
