package api

import (
	"net/http"

	"github.com/converse-ai/converse/internal/api/handler"
	customMiddleware "github.com/converse-ai/converse/internal/api/middleware"
	"github.com/converse-ai/converse/internal/config"
	"github.com/converse-ai/converse/internal/llm/gemini"
	"github.com/converse-ai/converse/internal/repository/postgres"
	"github.com/converse-ai/converse/internal/repository/redis"
	"github.com/converse-ai/converse/internal/security"
	"github.com/converse-ai/converse/internal/service"
	"github.com/converse-ai/converse/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures the HTTP router. redisClient may be
// nil, in which case rate limiting is disabled.
func NewRouter(
	cfg *config.Config,
	db *postgres.DB,
	redisClient *redis.Client,
	model *gemini.Client,
	blobs storage.BlobStore,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize security components
	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	chatRepo := postgres.NewChatRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	documentRepo := postgres.NewDocumentRepository(db)
	suggestionRepo := postgres.NewSuggestionRepository(db)
	fileRepo := postgres.NewFileRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	chatService := service.NewChatService(
		chatRepo, messageRepo, voteRepo,
		model,
		cfg.LLM.MaxTokens, cfg.LLM.MaxSteps,
	)
	documentService := service.NewDocumentService(documentRepo, suggestionRepo)
	uploadService := service.NewUploadService(fileRepo, model, blobs, cfg.Upload.MaxSizeBytes)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	chatHandler := handler.NewChatHandler(chatService, cfg.LLM.TurnTimeout)
	documentHandler := handler.NewDocumentHandler(documentService)
	fileHandler := handler.NewFileHandler(uploadService, cfg.Upload.MaxSizeBytes)

	// Auth middleware
	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)

	// Uploaded blobs
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Upload.Dir))))

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			if redisClient != nil {
				rateLimiter := redis.NewRateLimiter(
					redisClient,
					cfg.Security.RateLimit.RequestsPerMinute,
					cfg.Security.RateLimit.Burst,
				)
				r.Use(customMiddleware.NewRateLimitMiddleware(rateLimiter).Limit)
			}

			r.Get("/me", authHandler.Me)
			r.Get("/models", handler.ListModels)

			// Chat turn streaming runs under its own turn deadline, so
			// no request timeout middleware wraps this group.
			r.Route("/chat", func(r chi.Router) {
				r.Post("/", chatHandler.Stream)
				r.Delete("/", chatHandler.Delete)
				r.Delete("/all", chatHandler.DeleteAll)
				r.Get("/{chatID}", chatHandler.Get)
			})

			r.Get("/history", chatHandler.History)

			r.Route("/vote", func(r chi.Router) {
				r.Get("/", chatHandler.GetVotes)
				r.Patch("/", chatHandler.Vote)
			})

			r.Route("/document", func(r chi.Router) {
				r.Get("/", documentHandler.Get)
				r.Post("/", documentHandler.Save)
			})

			r.Route("/suggestions", func(r chi.Router) {
				r.Get("/", documentHandler.Suggestions)
				r.Post("/", documentHandler.SaveSuggestions)
				r.Patch("/", documentHandler.ResolveSuggestion)
			})

			r.Route("/files", func(r chi.Router) {
				r.Get("/", fileHandler.List)
				r.Post("/upload", fileHandler.Upload)
				r.Post("/gemini", fileHandler.UploadToModelHost)
			})
		})
	})

	return r
}
