package server

import (
	"fmt"
	"net/http"
	"time"

	"catalog-assistant/internal/config"
	"catalog-assistant/internal/database"
	"catalog-assistant/internal/llm"
	custommiddleware "catalog-assistant/internal/middleware"
	"catalog-assistant/internal/repository"
	"catalog-assistant/internal/service"
	"catalog-assistant/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *redis.Client
}

// NewServer wires repositories, services and handlers onto one router.
// redisClient may be nil, which disables rate limiting.
func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service, redisClient *redis.Client, assistant llm.Client) *Server {
	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      NewRouter(cfg, logger, db, redisClient, assistant),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30*time.Second + cfg.LLM.Timeout,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func NewRouter(cfg *config.Config, logger *zap.Logger, db database.Service, redisClient *redis.Client, assistant llm.Client) http.Handler {
	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.IsDevelopment()))

	if redisClient != nil && cfg.Server.RateLimit > 0 {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.Server.RateLimit,
			Window:            cfg.Server.RateWindow,
			KeyPrefix:         "catalog:ratelimit",
		}, logger))
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.DB())
	orderRepo := repository.NewOrderRepository(db.DB())
	statsRepo := repository.NewStatsRepository(db.DB())
	conversationRepo := repository.NewConversationRepository(db.DB())

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, statsRepo)
	orderService := service.NewOrderService(orderRepo, productRepo)
	chatService := service.NewChatService(conversationRepo, assistant, logger)

	// Register routes
	transport.NewHealthHandler(db, catalogService, logger).RegisterRoutes(router)
	transport.NewProductHandler(catalogService, logger).RegisterRoutes(router)
	transport.NewOrderHandler(orderService, logger).RegisterRoutes(router)
	transport.NewChatHandler(chatService, logger).RegisterRoutes(router)

	router.NotFound(transport.NotFound)
	router.MethodNotAllowed(transport.NotFound)

	return router
}

// Close releases the Redis client and the database pool. Failures are
// logged rather than returned.
func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close database connection", zap.Error(err))
	}

	s.logger.Sync()
	return nil
}
