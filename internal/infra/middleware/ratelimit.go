package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rlirio/mural-digital/internal/infra/metrics"
	"github.com/rlirio/mural-digital/pkg/config"
	"github.com/rlirio/mural-digital/pkg/ratelimit"
)

// RateLimitMiddleware limita a frequência de escritas (reações e comentários)
// por usuário autenticado, com fallback para o IP do cliente.
type RateLimitMiddleware struct {
	limiter *ratelimit.RedisLimiter
	cfg     config.RateLimitConfig
	metrics *metrics.MuralMetrics
	logger  *zap.Logger
}

func NewRateLimitMiddleware(limiter *ratelimit.RedisLimiter, cfg config.RateLimitConfig, m *metrics.MuralMetrics, logger *zap.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
	}
}

// Limit retorna o handler de rate limiting. Quando o limiter não está
// configurado (cache desabilitado) a requisição passa direto.
func (m *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter == nil || !m.cfg.Enabled {
			c.Next()
			return
		}

		key := m.clientKey(c)
		allowed, remaining, resetAfter, err := m.limiter.Allow(c.Request.Context(), ratelimit.LimitConfig{
			Key:    key,
			Limit:  m.cfg.Limit,
			Period: m.cfg.Period,
		})
		if err != nil {
			// Redis indisponível não deve derrubar o mural
			m.logger.Warn("rate limiter indisponível, liberando requisição",
				zap.String("key", key),
				zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(m.cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(int(resetAfter.Seconds())))

		if !allowed {
			if m.metrics != nil {
				m.metrics.RateLimitExceeded(c.FullPath(), c.Request.Method)
			}
			m.logger.Warn("limite de requisições excedido",
				zap.String("key", key),
				zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "limite de requisições excedido, tente novamente em instantes",
			})
			return
		}

		c.Next()
	}
}

func (m *RateLimitMiddleware) clientKey(c *gin.Context) string {
	if user, ok := UserFromContext(c); ok {
		return fmt.Sprintf("user:%s", user.ID)
	}
	return fmt.Sprintf("ip:%s", c.ClientIP())
}
