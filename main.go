package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"habitQuestAPI/handlers"
	"habitQuestAPI/internal/aiclient"
	"habitQuestAPI/internal/notification"
	"habitQuestAPI/middleware"
	"habitQuestAPI/services"
)

var (
	dbPool              *pgxpool.Pool
	notificationService *services.NotificationService
	profileService      *services.ProfileService
	habitService        *services.HabitService
	sleepService        *services.SleepService
	timetableService    *services.TimetableService
	plannerService      *services.PlannerService
	reminderService     *services.ReminderService
	fcmService          *notification.FCMService
	aiClient            *aiclient.Client
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	clerkSecretKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkSecretKey == "" {
		log.Fatal("CLERK_SECRET_KEY environment variable is not set")
	}
	clerk.SetKey(clerkSecretKey)
	log.Println("Clerk initialized successfully")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to Postgres")

	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		aiClient = aiclient.New(apiKey)
		log.Println("Generative text client initialized")
	} else {
		log.Println("Warning: GEMINI_API_KEY not set, reminders and plans will use fallback text")
	}

	notificationService = services.NewNotificationService(dbPool)
	profileService = services.NewProfileService(dbPool, notificationService)
	habitService = services.NewHabitService(dbPool, profileService)
	sleepService = services.NewSleepService(dbPool, profileService)
	timetableService = services.NewTimetableService(dbPool)
	plannerService = services.NewPlannerService(habitService, timetableService, notificationService, aiClient)
	reminderService = services.NewReminderService(dbPool, habitService, notificationService, aiClient)

	fcmService, err = notification.NewFCMService("./serviceAccountKey.json")
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
	} else {
		notificationService.SetPushProvider(fcmService)
		log.Println("FCM Push Provider initialized successfully")
	}

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	// Initialize handlers
	profileHandler := handlers.NewProfileHandler(profileService)
	habitHandler := handlers.NewHabitHandler(habitService, profileService)
	progressHandler := handlers.NewProgressHandler(habitService, sleepService, profileService)
	sleepHandler := handlers.NewSleepHandler(sleepService, profileService)
	timetableHandler := handlers.NewTimetableHandler(timetableService, profileService)
	plannerHandler := handlers.NewPlannerHandler(plannerService, profileService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, profileService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "habitQuest-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// PROTECTED API V1 ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ClerkAuthMiddleware)

	protected.HandleFunc("/profile", profileHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/profile/dark-mode", profileHandler.UpdateDarkMode).Methods("PUT")

	protected.HandleFunc("/habits", habitHandler.GetHabits).Methods("GET")
	protected.HandleFunc("/habits", habitHandler.CreateHabit).Methods("POST")
	protected.HandleFunc("/habits/logs", habitHandler.GetLogs).Methods("GET")
	protected.HandleFunc("/habits/{id}", habitHandler.UpdateHabit).Methods("PUT")
	protected.HandleFunc("/habits/{id}", habitHandler.DeleteHabit).Methods("DELETE")
	protected.HandleFunc("/habits/{id}/log", habitHandler.LogHabit).Methods("POST")

	protected.HandleFunc("/progress", progressHandler.GetProgress).Methods("GET")

	protected.HandleFunc("/sleep", sleepHandler.GetSleepLogs).Methods("GET")
	protected.HandleFunc("/sleep", sleepHandler.LogSleep).Methods("POST")
	protected.HandleFunc("/sleep/{id}", sleepHandler.DeleteSleepLog).Methods("DELETE")

	protected.HandleFunc("/timetable", timetableHandler.GetEntries).Methods("GET")
	protected.HandleFunc("/timetable", timetableHandler.CreateEntry).Methods("POST")
	protected.HandleFunc("/timetable/{id}", timetableHandler.UpdateEntry).Methods("PUT")
	protected.HandleFunc("/timetable/{id}", timetableHandler.DeleteEntry).Methods("DELETE")

	protected.HandleFunc("/plan", plannerHandler.GeneratePlan).Methods("POST")

	protected.HandleFunc("/notifications", notificationHandler.GetNotifications).Methods("GET")
	protected.HandleFunc("/notifications/read-all", notificationHandler.MarkAllAsRead).Methods("PUT")
	protected.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods("PUT")
	protected.HandleFunc("/notifications/register-device", notificationHandler.RegisterDevice).Methods("POST")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Reminder scheduler runs until shutdown cancels its context.
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	go reminderService.Run(schedulerCtx)

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	stopScheduler()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
