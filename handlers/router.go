package handlers

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-nav-server/observability"
	"campus-nav-server/services"
)

type RouterOptions struct {
	Logger         *zap.Logger
	Metrics        *observability.Collector // nil disables /metrics
	AllowedOrigins []string
}

// NewRouter builds the gin engine serving the navigation API.
func NewRouter(service *services.NavigationService, opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Logger(logger))
	if opts.Metrics != nil {
		r.Use(Metrics(opts.Metrics))
	}

	config := cors.DefaultConfig()
	if len(opts.AllowedOrigins) == 0 || slices.Contains(opts.AllowedOrigins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = opts.AllowedOrigins
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	config.ExposeHeaders = []string{requestIDHeader}
	r.Use(cors.New(config))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	NewNavigationHandler(service, logger).RegisterRoutes(r)

	return r
}
