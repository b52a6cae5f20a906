package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rlirio/mural-digital/internal/app/auth"
	"github.com/rlirio/mural-digital/internal/infra/metrics"
	"github.com/rlirio/mural-digital/pkg/config"
	"github.com/rlirio/mural-digital/pkg/ratelimit"
)

// Middleware agrega os middlewares da aplicação já configurados
type Middleware struct {
	Auth      *AuthMiddleware
	Metrics   *MetricsMiddleware
	Security  *SecurityMiddleware
	RateLimit *RateLimitMiddleware
	recovery  *RecoveryMiddleware
	logger    *zap.Logger
}

// NewMiddleware monta o conjunto de middlewares. O limiter pode ser nil
// quando o Redis não está configurado.
func NewMiddleware(
	logger *zap.Logger,
	authService *auth.AuthService,
	m *metrics.MuralMetrics,
	limiter *ratelimit.RedisLimiter,
	cfg *config.Config,
) *Middleware {
	return &Middleware{
		Auth:      NewAuthMiddleware(authService, logger),
		Metrics:   NewMetricsMiddleware(m, logger),
		Security:  NewSecurityMiddleware(logger),
		RateLimit: NewRateLimitMiddleware(limiter, cfg.RateLimit, m, logger),
		recovery:  NewRecoveryMiddleware(logger),
		logger:    logger,
	}
}

// Recovery retorna o middleware de recuperação de pânico
func (m *Middleware) Recovery() gin.HandlerFunc {
	return m.recovery.Recovery()
}

// Logger registra cada requisição com latência e status
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		m.logger.Info("requisição processada",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// Tracing retorna o middleware de distributed tracing
func (m *Middleware) Tracing() gin.HandlerFunc {
	return TracingMiddleware()
}
