package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/services"
	"github.com/SscSPs/commerce_lifecycle_app/internal/middleware"
	"github.com/SscSPs/commerce_lifecycle_app/internal/platform/config"
)

// ipRateFormat bounds unauthenticated traffic per client IP before tokens are parsed.
const ipRateFormat = "300-M"

// NewUserLimiter builds the per-caller limiter from the configured rate, e.g. "100-M".
func NewUserLimiter(rateFormat string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(rateFormat)
	if err != nil {
		return nil, err
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	userLimiter *limiter.Limiter,
) {
	// cors.New panics on an empty origin list
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services, userLimiter)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	userLimiter *limiter.Limiter,
) {
	chain := []gin.HandlerFunc{}
	if ipRate, err := limiter.NewRateFromFormatted(ipRateFormat); err == nil {
		chain = append(chain, limitergin.NewMiddleware(limiter.New(memory.NewStore(), ipRate)))
	}
	chain = append(chain, middleware.AuthMiddleware(cfg.JWTSecret))
	if userLimiter != nil {
		chain = append(chain, middleware.RateLimit(userLimiter))
	}

	v1 := r.Group("/api/v1", chain...)

	registerTransactionRoutes(v1, services.Transactions, services.Proofs)
	registerCatalogRoutes(v1, services.Catalog)
	registerCommissionRoutes(v1, services.Commission)
}
