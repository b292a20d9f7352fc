package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"studyquiz/internal/adapter"
	"studyquiz/internal/cache"
	"studyquiz/internal/config"
	"studyquiz/internal/database"
	"studyquiz/internal/handler"
	"studyquiz/internal/logger"
	"studyquiz/internal/middleware"
	"studyquiz/internal/repository"
	"studyquiz/internal/service"
	"studyquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger logs every HTTP request with its status and duration.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Connect to Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize repositories
	questionRepository := repository.NewQuestionDatabaseAdapter(db)
	contentRepository := repository.NewContentDatabaseAdapter(db)
	resultRepository := repository.NewResultDatabaseAdapter(db)
	userRepository := repository.NewUserDatabaseAdapter(db)
	feedbackRepository := repository.NewFeedbackDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize services
	sessionStore := service.NewRedisSessionStore(cacheAdapter, cfg.Session.TTL)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	sessionService := service.NewSessionService(questionRepository, resultRepository, txManager, sessionStore, rng)
	contentService := service.NewContentService(contentRepository, cacheAdapter, cfg.Cache.ContentTTL)
	authService := service.NewAuthService(userRepository, cfg.JWT)
	feedbackService := service.NewFeedbackService(feedbackRepository)
	appLogger.Info("Services initialized")

	// Initialize handlers
	validator := validation.NewValidator()
	sessionHandler := handler.NewSessionHandler(sessionService, validator)
	contentHandler := handler.NewContentHandler(contentService)
	authHandler := handler.NewAuthHandler(authService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, validator)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	// User routes (all protected)
	userGroup := apiGroup.Group("/users", middleware.Protected(authService))
	userGroup.Get("/me", authHandler.GetMe)
	userGroup.Get("/me/results", sessionHandler.GetMyResults)

	// Content catalog routes (public)
	apiGroup.Get("/subjects", contentHandler.GetSubjects)
	apiGroup.Get("/textbooks", contentHandler.GetTextbooks)
	apiGroup.Get("/chapters", contentHandler.GetChapters)

	// Test session routes. Sessions work anonymously; a bearer token only
	// decides whether the final result is persisted.
	sessionGroup := apiGroup.Group("/sessions", middleware.OptionalAuth(authService))
	sessionGroup.Post("/", sessionHandler.StartSession)
	sessionGroup.Get("/:id", sessionHandler.GetSession)
	sessionGroup.Post("/:id/answers", sessionHandler.SubmitAnswer)
	sessionGroup.Post("/:id/advance", sessionHandler.Advance)
	sessionGroup.Post("/:id/flags", sessionHandler.ToggleFlag)
	sessionGroup.Post("/:id/finalize", sessionHandler.Finalize)
	sessionGroup.Get("/:id/report", sessionHandler.GetReport)

	// Feedback routes
	apiGroup.Post("/feedback", middleware.OptionalAuth(authService), feedbackHandler.SubmitFeedback)
	adminGroup := apiGroup.Group("/feedback", middleware.Protected(authService), middleware.AdminOnly())
	adminGroup.Get("/", feedbackHandler.ListFeedback)
	adminGroup.Patch("/:id", feedbackHandler.UpdateStatus)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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
