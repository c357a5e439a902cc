package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/legalease/legalease/backend/go-services/handlers"
	"github.com/legalease/legalease/backend/go-services/internal/chat"
	"github.com/legalease/legalease/backend/go-services/internal/config"
	"github.com/legalease/legalease/backend/go-services/internal/database"
	dochandler "github.com/legalease/legalease/backend/go-services/internal/document/handler"
	docservice "github.com/legalease/legalease/backend/go-services/internal/document/service"
	"github.com/legalease/legalease/backend/go-services/internal/export"
	"github.com/legalease/legalease/backend/go-services/internal/form"
	"github.com/legalease/legalease/backend/go-services/internal/llm"
	"github.com/legalease/legalease/backend/go-services/internal/sessions"
	"github.com/legalease/legalease/backend/go-services/internal/storage"
	"github.com/legalease/legalease/backend/go-services/internal/tokens"
	"github.com/legalease/legalease/backend/go-services/internal/users"
	"github.com/legalease/legalease/backend/go-services/pkg/logger"
	"github.com/legalease/legalease/backend/go-services/pkg/metrics"
	"github.com/legalease/legalease/backend/go-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: openai=%v mongo=%v redis=%v minio=%v",
		cfg.OpenAI.APIKey != "", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "")

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Client-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger(), gin.Recovery())

	// shared runtime vars used by handlers/readiness
	var userSvc *users.Service
	var sessionsSvc *sessions.Service
	var historyRepo chat.HistoryRepository
	var messageLog chat.MessageLog

	// Connect to Redis early so the rate-limiter and token blacklist can use it
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(context.Background()).Err(); err == nil {
			sessions.SetBlacklistClient(redisClient)
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		} else {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		}
	}

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["openai"] = cfg.OpenAI.APIKey != ""
		if !deps["openai"] {
			ready = false
		}
		if cfg.Redis.Host != "" {
			deps["redis"] = redisClient != nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}
		deps["auth"] = userSvc != nil && sessionsSvc != nil
		deps["history"] = historyRepo != nil

		status := gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()}
		if !ready {
			status["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		c.JSON(http.StatusOK, status)
	})

	ctx := context.Background()

	// Prefer Redis-based refresh sessions when available
	if redisClient != nil {
		sessionsSvc = sessions.NewService(sessions.NewRedisRepository(redisClient, "session:"))
		logger.Infof("Using Redis for session storage")
	}

	// MongoDB-backed services (profiles + chat history, session fallback)
	if cfg.MongoDB.URI != "" {
		// Retry/backoff when connecting to MongoDB to tolerate startup races
		const maxAttempts = 5
		backoff := time.Second
		var client *mongo.Client
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
		} else {
			defer func() { _ = client.Disconnect(ctx) }()
			db := client.Database(cfg.MongoDB.Database)
			userSvc = users.NewService(users.NewMongoProfileRepository(db.Collection("profiles")))
			historyRepo = chat.NewMongoHistoryRepository(db.Collection("chat_history"))
			messageLog = chat.NewMongoMessageLog(db.Collection("chat_messages"))
			if sessionsSvc == nil {
				sessionsSvc = sessions.NewService(sessions.NewMongoRepository(db.Collection("sessions")))
			}
		}
	}
	if historyRepo == nil {
		logger.Warnf("chat history not persisted: MongoDB unavailable, using in-memory history")
		historyRepo = chat.NewMemoryHistoryRepository()
	}

	// Object storage for chat uploads (optional)
	var blobStore *storage.MinIOStorage
	if cfg.MinIO.Endpoint != "" {
		blobStore, err = storage.NewMinIOStorage(&cfg.MinIO)
		if err != nil {
			logger.Warnf("MinIO unavailable, chat uploads disabled: %v", err)
			blobStore = nil
		}
	}

	// Core services
	drafter := llm.NewOpenAIDrafter(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)
	forms := form.NewManager()
	stores := docservice.NewManager(cfg.Store.DataDir)
	chats := chat.NewManager(historyRepo)
	if messageLog != nil {
		chats.WithMessageLog(messageLog)
	}
	pipeline := export.NewPipeline(cfg.Export.FontDir)

	// HTTP surface
	handlers.NewGenerateHandler(drafter, forms, stores).Register(r)
	handlers.NewChatHandler(drafter, chats).Register(r)
	handlers.NewUploadHandler(blobStore, chats).Register(r)
	dochandler.RegisterDocumentRoutes(r, stores, pipeline)
	handlers.RegisterSwagger(r)

	if userSvc != nil && sessionsSvc != nil {
		handlers.NewAuthHandler(cfg, userSvc, sessionsSvc).Register(r.Group("/"))

		verifier := tokens.NewVerifier(cfg)
		api := r.Group("/api/v1")
		api.GET("/me", middleware.AuthMiddleware(verifier), func(c *gin.Context) {
			claims, _ := c.Get("claims")
			if cm, ok := claims.(map[string]interface{}); ok {
				if sub, ok2 := cm["sub"].(string); ok2 && sub != "" {
					if p, err := userSvc.GetByID(c.Request.Context(), sub); err == nil && p != nil {
						c.JSON(http.StatusOK, gin.H{"user": p})
						return
					}
				}
			}
			c.JSON(http.StatusOK, gin.H{"claims": claims})
		})
	} else {
		logger.Warnf("auth handlers not registered because profile/session services are unavailable")
	}

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("services: auth=%v history=%v uploads=%v", userSvc != nil, historyRepo != nil, blobStore != nil)
	logger.Infof("Starting legalease service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
