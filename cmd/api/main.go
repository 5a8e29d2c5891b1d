package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/emiliell/MatchWise/internal/config"
	"github.com/emiliell/MatchWise/internal/handlers"
	"github.com/emiliell/MatchWise/internal/repositories"
	"github.com/emiliell/MatchWise/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initializes repositories
	candidateRepo := repositories.NewCandidateRepository(db)
	historyRepo := repositories.NewHistoryRepository(db)
	jobRepo := repositories.NewMatchJobRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	extractor := services.NewExtractorService(cfg.Matcher.NERModelPath)
	log.Println("✅ Services initialized successfully")

	// Initialize the embedding model. Without it the semantic signal
	// degrades to zero and scoring carries on.
	embedder, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Printf("⚠️  Gemini unavailable, semantic similarity disabled: %v\n", err)
		embedder = nil
	} else {
		log.Println("✅ Gemini embedder initialized successfully")
	}

	// Initialize the vector index. Also optional: pool matches fall
	// back to a full profile scan without it.
	var vectorStore services.VectorStoreService
	vs, err := services.NewVectorStoreService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Printf("⚠️  Qdrant unavailable, resume index disabled: %v\n", err)
	} else if err := vs.InitCollection(); err != nil {
		log.Printf("⚠️  Qdrant collection init failed, resume index disabled: %v\n", err)
	} else {
		vectorStore = vs
		log.Println("✅ Qdrant initialized successfully")
	}

	similarity := services.NewSimilarityService(embedder)

	// Initialize matcher engine
	matcher := services.NewMatcherService(
		candidateRepo,
		historyRepo,
		extractor,
		similarity,
		embedder,
		vectorStore,
		cfg.Matcher.Policy,
		cfg.Matcher.PoolShortlist,
		cfg.Worker.PoolParallelism,
	)
	log.Printf("✅ Matcher engine initialized (policy: %s)\n", cfg.Matcher.Policy)

	// Initialize worker
	worker := services.NewWorker(
		jobRepo,
		matcher,
		cfg.Worker.Concurrency,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(
		candidateRepo,
		storageService,
		pdfParser,
		extractor,
		embedder,
		vectorStore,
		cfg.Storage.MaxFileSize,
	)
	resumeHandler := handlers.NewResumeHandler(candidateRepo)
	compareHandler := handlers.NewCompareHandler(matcher)
	matchHandler := handlers.NewMatchHandler(jobRepo, worker)
	historyHandler := handlers.NewHistoryHandler(historyRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "MatchWise API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-User-Email",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/resumes", uploadHandler.HandleUpload)
	api.Get("/resumes", resumeHandler.HandleList)
	api.Get("/resumes/:id/file", resumeHandler.HandleDownload)
	api.Post("/compare", compareHandler.HandleCompare)
	api.Post("/match", matchHandler.HandleMatch)
	api.Get("/match/:id", matchHandler.HandleGetMatch)
	api.Get("/history", historyHandler.HandleList)
	api.Delete("/history/:id", historyHandler.HandleDelete)
	api.Delete("/history", historyHandler.HandleDeleteAll)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "MatchWise API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/resumes",
				"GET /api/v1/resumes",
				"GET /api/v1/resumes/:id/file",
				"POST /api/v1/compare",
				"POST /api/v1/match",
				"GET /api/v1/match/:id",
				"GET /api/v1/history",
				"DELETE /api/v1/history/:id",
				"DELETE /api/v1/history",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
