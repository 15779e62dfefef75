package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"haru-byte/internal/adapter"
	"haru-byte/internal/adapter/problemgen"
	"haru-byte/internal/cache"
	"haru-byte/internal/config"
	"haru-byte/internal/database"
	"haru-byte/internal/domain"
	"haru-byte/internal/handler"
	"haru-byte/internal/logger"
	"haru-byte/internal/middleware"
	"haru-byte/internal/repository"
	"haru-byte/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// The configured timezone defines the local day used for problem
	// assignment and streak arithmetic.
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		appLogger.Fatal("Failed to load timezone", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}
	clock := domain.NewSystemClock(location)
	onTimePolicy := domain.OnTimePolicy{Location: location, Grace: cfg.Submission.OnTimeGrace}

	// Initialize LLM client for problem generation
	llm, err := problemgen.NewLLMClient(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	generator := problemgen.NewLLMProblemGenerator(llm, cfg.LLM.Timeout)
	appLogger.Info("Problem generator initialized", zap.String("source", cfg.LLM.Source))

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	problemRepository := repository.NewSQLXProblemRepository(db)
	submissionRepository := repository.NewSQLXSubmissionRepository(db)
	streakRepository := repository.NewSQLXStreakRepository(db)
	preferenceRepository := repository.NewSQLXPreferenceRepository(db)
	userRepository := repository.NewSQLXUserRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize Redis client and cache adapter
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize services
	streakService := service.NewStreakService(streakRepository, cacheAdapter)
	dailyProblemService := service.NewDailyProblemService(
		problemRepository,
		submissionRepository,
		streakRepository,
		preferenceRepository,
		generator,
		txManager,
		streakService,
		clock,
		onTimePolicy,
	)
	preferenceService := service.NewPreferenceService(preferenceRepository, userRepository, clock)
	userService := service.NewUserService(userRepository)

	authService, err := service.NewAuthService(userRepository, cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	// Initialize handlers
	problemHandler := handler.NewProblemHandler(dailyProblemService)
	streakHandler := handler.NewStreakHandler(streakService)
	preferenceHandler := handler.NewPreferenceHandler(preferenceService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	// API group
	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	// Topic catalogue is public
	apiGroup.Get("/categories", preferenceHandler.GetCategories)

	// Daily problem routes (all protected)
	problemGroup := apiGroup.Group("/daily-problem", middleware.Protected(authService))
	problemGroup.Get("/today", problemHandler.GetTodayProblem)
	problemGroup.Get("/history", problemHandler.GetProblemHistory)
	problemGroup.Get("/:problemID", problemHandler.GetProblemDetail)
	problemGroup.Get("/", problemHandler.GetProblemForDate)
	problemGroup.Post("/:problemID/submissions", problemHandler.SubmitAnswer)

	// Streak routes
	apiGroup.Get("/streaks", middleware.Protected(authService), streakHandler.GetStreak)

	// Preference routes
	preferenceGroup := apiGroup.Group("/members/preferences", middleware.Protected(authService))
	preferenceGroup.Post("/", preferenceHandler.RegisterPreference)
	preferenceGroup.Patch("/", preferenceHandler.UpdatePreference)

	// User routes
	apiGroup.Get("/users/me", middleware.Protected(authService), userHandler.GetMe)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
