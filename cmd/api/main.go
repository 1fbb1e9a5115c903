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

	"alfredoptarigan/hr-screening/internal/config"
	"alfredoptarigan/hr-screening/internal/extraction"
	"alfredoptarigan/hr-screening/internal/handlers"
	"alfredoptarigan/hr-screening/internal/repositories"
	"alfredoptarigan/hr-screening/internal/sentiment"
	"alfredoptarigan/hr-screening/internal/services"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// History is optional
	var (
		screeningRepo repositories.ScreeningRepository
		feedbackRepo  repositories.FeedbackRepository
	)
	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		screeningRepo = repositories.NewScreeningRepository(db)
		feedbackRepo = repositories.NewFeedbackRepository(db)
		log.Println("✅ Repositories initialized successfully")
	} else {
		log.Println("⚠️  Database disabled, results will not be stored")
	}

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	// Extraction cascade
	runner := extraction.NewExecRunner()
	cascade := extraction.NewCascade(
		storageService,
		extraction.NewTesseractEngine(runner, cfg.Extraction.TesseractBin, cfg.Extraction.TesseractLang),
		extraction.NewPdftoppmRasterizer(runner, cfg.Extraction.PdftoppmBin),
		extraction.Options{
			MinTextLength: cfg.Extraction.MinTextLength,
			OCRScale:      cfg.Extraction.OCRScale,
		},
	)
	log.Printf("✅ Extraction cascade ready for %v\n", cascade.SupportedExtensions())

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Qdrant indexing needs stored rows to index
	var (
		indexer           services.Indexer
		similarityService services.SimilarityService
	)
	if cfg.Qdrant.Enabled && screeningRepo != nil {
		qdrantService, err := services.NewQdrantService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
			cfg.Qdrant.VectorSize,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}

		initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
		err = qdrantService.InitCollection(initCtx)
		cancelInit()
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Qdrant initialized successfully")

		indexer = services.NewIndexer(
			screeningRepo,
			feedbackRepo,
			geminiService,
			qdrantService,
			services.NewTextChunker(chunkSize, chunkOverlap),
			cfg.Worker,
		)
		similarityService = services.NewSimilarityService(geminiService, qdrantService)
	} else {
		log.Println("⚠️  Qdrant disabled, similarity search unavailable")
	}

	promptBuilder := services.NewPromptBuilder(cfg.Gemini.MaxInputChars)
	screeningService := services.NewScreeningService(cascade, geminiService, promptBuilder, screeningRepo, indexer)
	feedbackService := services.NewFeedbackService(sentiment.NewAnalyzer(), geminiService, promptBuilder, feedbackRepo, indexer)
	log.Println("✅ Services initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if indexer != nil {
		indexer.Start(ctx)
	}

	// Initialize Handlers
	h := handlers.Handlers{
		Screening: handlers.NewScreeningHandler(screeningService, cfg.Storage.AllowedExtensions, cfg.Storage.MaxFileSize),
		Feedback:  handlers.NewFeedbackHandler(feedbackService),
	}
	if screeningRepo != nil {
		h.History = handlers.NewHistoryHandler(screeningRepo, feedbackRepo, services.NewExportService())
	}
	if similarityService != nil {
		h.Search = handlers.NewSearchHandler(similarityService)
	}
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "HR Screening API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		// multipart overhead on top of the largest accepted file
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	handlers.RegisterRoutes(app.Group("/api/v1"), h)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "HR Screening API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/screen-resume",
				"POST /api/v1/analyze-sentiment",
				"GET /api/v1/screenings",
				"GET /api/v1/feedback",
				"GET /api/v1/search",
				"GET /api/v1/health",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		// cancel first so workers sleeping in retry backoff return at once
		cancel()
		if indexer != nil {
			indexer.Stop()
		}
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
