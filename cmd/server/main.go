package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"vidinsight/internal/api"
	"vidinsight/internal/audio"
	"vidinsight/internal/config"
	"vidinsight/internal/db"
	"vidinsight/internal/fetcher"
	"vidinsight/internal/pipeline"
	"vidinsight/internal/repository"
	"vidinsight/internal/storage"
	"vidinsight/internal/summarize"
	"vidinsight/internal/transcribe"
	"vidinsight/internal/translate"
	"vidinsight/pkg/executor"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	transcriber, err := transcribe.CreateProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to create transcription provider: %v", err)
	}

	var summarizer summarize.Summarizer = summarize.TruncateSummarizer{}
	if cfg.SummaryMode == "ai" && cfg.OpenAIKey != "" {
		log.Printf("AI summarization enabled")
		summarizer = summarize.NewAISummarizer(cfg.OpenAIKey)
	}

	var translationProvider translate.Provider
	if cfg.TranslateKey != "" {
		translationProvider = translate.NewGoogleProvider(cfg.TranslateKey, cfg.TranslateURL)
	} else {
		log.Println("TRANSLATE_API_KEY not set, analyses will keep the untranslated transcript")
	}
	translator := translate.NewService(translationProvider)

	exec := executor.New()
	runner := pipeline.NewRunner(
		fetcher.New(exec),
		audio.New(exec, cfg.MaxAudioBytes),
		transcriber,
		summarizer,
		translator,
		cfg.TempDir,
		cfg.SummaryMaxLength,
	)

	// Favorites: Postgres when DATABASE_URL is provided, otherwise
	// in-memory with optional flat-file persistence.
	var favorites storage.FavoritesStore
	if cfg.DatabaseURL != "" {
		log.Printf("Initializing database connection with DATABASE_URL...")
		if err := db.Init(); err != nil {
			log.Printf("Warning: Failed to initialize database: %v. Falling back to in-memory favorites.", err)
		} else {
			favorites = repository.NewPostgresFavorites(db.DB)
			log.Println("Database-backed favorites initialized")
		}
	}
	if favorites == nil {
		favorites, err = storage.NewMemoryFavorites(cfg.FavoritesFile)
		if err != nil {
			log.Fatalf("Failed to initialize favorites store: %v", err)
		}
		if cfg.FavoritesFile != "" {
			log.Printf("Favorites persisted to %s", cfg.FavoritesFile)
		}
	}

	server := api.NewServer(runner, storage.NewAnalysisStore(), favorites, storage.NewVisitLog(cfg.VisitLogFile))

	r := gin.Default()

	// Add CORS middleware for the web UI
	r.Use(corsMiddleware())

	// Register routes
	server.RegisterRoutes(r)

	log.Printf("vidinsight backend running on :%s (transcriber: %s)", cfg.Port, transcriber.Name())
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// corsMiddleware adds CORS headers for the web UI
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-User-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
