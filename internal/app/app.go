package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rlirio/mural-digital/internal/adapter/database"
	"github.com/rlirio/mural-digital/internal/adapter/http"
	"github.com/rlirio/mural-digital/internal/app/auth"
	"github.com/rlirio/mural-digital/internal/app/mural"
	"github.com/rlirio/mural-digital/internal/infra/metrics"
	"github.com/rlirio/mural-digital/internal/infra/middleware"
	"github.com/rlirio/mural-digital/pkg/cache"
	"github.com/rlirio/mural-digital/pkg/config"
	"github.com/rlirio/mural-digital/pkg/ratelimit"
	"github.com/rlirio/mural-digital/pkg/security"
)

// App agrega as dependências da aplicação já injetadas
type App struct {
	Logger       *zap.Logger
	Config       *config.Config
	DB           *database.Database
	Cache        cache.Cache
	Metrics      *metrics.MuralMetrics
	Middleware   *middleware.Middleware
	MuralHandler *http.MuralHandler
	UserHandler  *http.UserHandler
	Health       *http.HealthChecker
	MuralService *mural.Service
	AuthService  *auth.AuthService
}

// NewApp cria uma nova instância da aplicação com todas as dependências injetadas
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	// Banco de dados
	db, err := database.NewDatabase(ctx, database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        parseGormLogLevel(cfg.Database.LogLevel),
		SlowThreshold:   cfg.Database.SlowThreshold,
		MigrationDir:    cfg.Database.MigrationDir,
		SkipMigrations:  cfg.Database.SkipMigrations,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar banco de dados: %w", err)
	}

	// Métricas
	muralMetrics := metrics.NewMuralMetrics()

	// Cache e rate limiter. O limiter só existe quando há Redis.
	appCache, limiter, err := buildCache(cfg, muralMetrics, logger)
	if err != nil {
		return nil, err
	}

	// Repositórios
	comunicadoRepo := database.NewComunicadoRepository(db.DB(), logger)
	reacaoRepo := database.NewReacaoRepository(db.DB(), logger)
	userRepo := database.NewUserRepository(db.DB(), logger)

	// JWT
	keyManager, err := security.NewKeyManager(logger)
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar gerenciador de chaves: %w", err)
	}

	// Serviços
	authService := auth.NewAuthService(keyManager, userRepo, cfg.Auth.TokenExpiration, cfg.Auth.PasswordMinLen, logger)
	muralService := mural.NewService(comunicadoRepo, reacaoRepo, userRepo, appCache, muralMetrics, logger)

	// Middleware
	middlewares := middleware.NewMiddleware(logger, authService, muralMetrics, limiter, cfg)

	// Handlers HTTP
	muralHandler := http.NewMuralHandler(muralService, logger)
	muralHandler.SetMetrics(muralMetrics)
	userHandler := http.NewUserHandler(authService, muralService, logger)
	health := http.NewHealthChecker(db, appCache, logger)

	return &App{
		Logger:       logger,
		Config:       cfg,
		DB:           db,
		Cache:        appCache,
		Metrics:      muralMetrics,
		Middleware:   middlewares,
		MuralHandler: muralHandler,
		UserHandler:  userHandler,
		Health:       health,
		MuralService: muralService,
		AuthService:  authService,
	}, nil
}

// buildCache monta o cache conforme a configuração: redis, memória ou noop
func buildCache(cfg *config.Config, m *metrics.MuralMetrics, logger *zap.Logger) (cache.Cache, *ratelimit.RedisLimiter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("Cache desabilitado, usando implementação noop")
		return &cache.NoOpCache{}, nil, nil
	}

	if cfg.Cache.Type == "redis" {
		client, err := cache.NewRedisClientWithConfig(&redis.Options{
			Addr:         cfg.Cache.Redis.Address,
			Password:     cfg.Cache.Redis.Password,
			DB:           cfg.Cache.Redis.DB,
			PoolSize:     cfg.Cache.Redis.PoolSize,
			MinIdleConns: cfg.Cache.Redis.MinIdleConns,
			ReadTimeout:  cfg.Cache.Redis.ReadTimeout,
			WriteTimeout: cfg.Cache.Redis.WriteTimeout,
			DialTimeout:  cfg.Cache.Redis.DialTimeout,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("erro ao conectar ao Redis: %w", err)
		}

		var limiter *ratelimit.RedisLimiter
		if cfg.RateLimit.Enabled {
			limiter = ratelimit.NewRedisLimiter(client, logger)
		}
		return cache.NewRedisCacheFromClient(client, logger), limiter, nil
	}

	logger.Info("Usando cache em memória", zap.Duration("ttl", cfg.Cache.TTL))
	return cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL, m, logger), nil, nil
}

func parseGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "warn":
		return gormlogger.Warn
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	// Middleware global
	router.Use(a.Middleware.Recovery())
	router.Use(a.Middleware.Logger())
	router.Use(a.Middleware.Security.Headers())
	router.Use(a.Middleware.Security.CORS())
	if a.Config.Tracing.Enabled {
		router.Use(a.Middleware.Tracing())
	}
	router.Use(a.Middleware.Metrics.Middleware())

	// Endpoint Prometheus
	if a.Config.Metrics.Enabled {
		path := a.Config.Metrics.PrometheusPath
		if path == "" {
			path = "/metrics"
		}
		a.Middleware.Metrics.RegisterEndpoint(router, path)
	}

	// Health checks
	router.GET("/health", a.Health.LivenessCheck)
	router.GET("/health/liveness", a.Health.LivenessCheck)
	router.GET("/health/readiness", a.Health.ReadinessCheck)

	// Autenticação
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", a.UserHandler.Login)
	}

	// Leitura do mural é pública
	router.GET("/comunicados", a.MuralHandler.ListPosts)
	router.GET("/comunicados/:id", a.MuralHandler.GetPost)
	router.GET("/comunicados/:id/reacoes", a.MuralHandler.CountReactions)

	// Interações exigem autenticação; escritas frequentes passam pelo
	// rate limiter
	user := router.Group("/")
	user.Use(a.Middleware.Auth.Authenticate)
	{
		user.GET("/me", a.UserHandler.Me)
		user.POST("/comunicados/:id/comentarios", a.Middleware.RateLimit.Limit(), a.MuralHandler.AddComment)
		user.DELETE("/comentarios/:commentID", a.MuralHandler.DeleteComment)
		user.POST("/comunicados/:id/reacoes", a.Middleware.RateLimit.Limit(), a.MuralHandler.ToggleReaction)
		user.DELETE("/comunicados/:id", a.MuralHandler.DeletePost)
	}

	// Rotas administrativas
	admin := router.Group("/admin")
	admin.Use(a.Middleware.Auth.AuthenticateAdmin)
	{
		admin.POST("/comunicados", a.MuralHandler.CreatePost)
		admin.POST("/users", a.UserHandler.Register)
		admin.DELETE("/users/:id", a.UserHandler.DeleteUser)
		admin.GET("/health", a.Health.DetailedHealth)
	}
}

// Shutdown encerra recursos da aplicação
func (a *App) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		done <- a.DB.Close()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
