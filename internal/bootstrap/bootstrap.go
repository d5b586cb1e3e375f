package bootstrap

import (
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/config"
	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/metrics"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/middleware"
	"github.com/gin-gonic/gin"
)

// Bootstrap builds the gin engine shared by every route group
type Bootstrap struct {
	cfg     *config.Config
	metrics *metrics.Metrics
}

// NewBootstrap creates a new bootstrap instance. m may be nil.
func NewBootstrap(cfg *config.Config, m *metrics.Metrics) *Bootstrap {
	return &Bootstrap{
		cfg:     cfg,
		metrics: m,
	}
}

// SetupEngine creates a gin engine with the common middleware chain:
// recovery, request id, CORS, request deadline, access log + HTTP metrics
func (b *Bootstrap) SetupEngine() *gin.Engine {
	if b.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// gin 기본 로거 대신 slog 사용
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	engine.Use(gin.CustomRecovery(b.recoveryHandler))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(b.cfg))
	engine.Use(middleware.Timeout(b.cfg.Server.RequestTimeout))
	engine.Use(middleware.LoggerMiddleware(b.metrics))

	return engine
}

// recoveryHandler answers with the standard 500 body for any panic value
func (b *Bootstrap) recoveryHandler(c *gin.Context, recovered any) {
	slog.Error("Panic Recovered",
		"panic", recovered,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", middleware.GetRequestID(c),
		"stack", string(debug.Stack()),
	)
	c.AbortWithStatusJSON(sharedError.InternalServerError.Status, sharedError.InternalServerError)
}
