package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MuralMetrics gerencia métricas do mural
type MuralMetrics struct {
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	activeRequests  *prometheus.GaugeVec
	errorsTotal     *prometheus.CounterVec
	rateLimited     *prometheus.CounterVec
	cacheHitRatio   *prometheus.GaugeVec
	reacoesTotal    *prometheus.CounterVec
	comentarios     prometheus.Counter
	comunicados     prometheus.Counter
}

// NewMuralMetrics cria e registra métricas do prometheus
func NewMuralMetrics() *MuralMetrics {
	return &MuralMetrics{
		requestCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mural_requests_total",
				Help: "Total number of HTTP requests by path, method, and status code",
			},
			[]string{"path", "method", "status"},
		),

		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mural_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		activeRequests: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mural_active_requests",
				Help: "Number of in-flight requests being processed",
			},
			[]string{"path", "method"},
		),

		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mural_errors_total",
				Help: "Total number of errors by type",
			},
			[]string{"path", "method", "error_type"},
		),

		rateLimited: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mural_rate_limited_requests_total",
				Help: "Total number of rate limited requests",
			},
			[]string{"path", "method"},
		),

		cacheHitRatio: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mural_cache_hit_ratio",
				Help: "Cache hit ratio (0.0 to 1.0)",
			},
			[]string{"cache_type"},
		),

		reacoesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mural_reacoes_total",
				Help: "Total number of reaction toggles by tipo and resulting action",
			},
			[]string{"tipo", "acao"},
		),

		comentarios: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mural_comentarios_total",
				Help: "Total number of comments created",
			},
		),

		comunicados: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mural_comunicados_total",
				Help: "Total number of announcements published",
			},
		),
	}
}

// RequestStarted registra o início de uma requisição
func (m *MuralMetrics) RequestStarted(path, method string) {
	m.activeRequests.WithLabelValues(path, method).Inc()
}

// RequestCompleted registra a conclusão de uma requisição
func (m *MuralMetrics) RequestCompleted(path, method, status string, duration time.Duration) {
	m.requestCounter.WithLabelValues(path, method, status).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
	m.activeRequests.WithLabelValues(path, method).Dec()
}

// RequestError registra um erro de requisição
func (m *MuralMetrics) RequestError(path, method, errorType string) {
	m.errorsTotal.WithLabelValues(path, method, errorType).Inc()
}

// RateLimitExceeded registra quando um limite de taxa é excedido
func (m *MuralMetrics) RateLimitExceeded(path, method string) {
	m.rateLimited.WithLabelValues(path, method).Inc()
}

// UpdateCacheHitRatio atualiza a taxa de acertos do cache
func (m *MuralMetrics) UpdateCacheHitRatio(cacheType string, hitRatio float64) {
	m.cacheHitRatio.WithLabelValues(cacheType).Set(hitRatio)
}

// ReacaoRegistrada registra o resultado de um toggle de reação
// acao: criada, removida, trocada
func (m *MuralMetrics) ReacaoRegistrada(tipo, acao string) {
	m.reacoesTotal.WithLabelValues(tipo, acao).Inc()
}

// ComentarioCriado registra a criação de um comentário
func (m *MuralMetrics) ComentarioCriado() {
	m.comentarios.Inc()
}

// ComunicadoPublicado registra a publicação de um comunicado
func (m *MuralMetrics) ComunicadoPublicado() {
	m.comunicados.Inc()
}
