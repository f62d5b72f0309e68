package handlers

import (
	"github.com/cardflow-app/cardflow_backend/cmd/docs"
	portssvc "github.com/cardflow-app/cardflow_backend/internal/core/ports/services"
	"github.com/cardflow-app/cardflow_backend/internal/middleware"
	"github.com/cardflow-app/cardflow_backend/internal/platform/config"
	"github.com/cardflow-app/cardflow_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// registerCustomValidators adds the flexdecimal rule used by amount fields,
// accepting both dot and comma decimal separators.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("flexdecimal", func(fl validator.FieldLevel) bool {
		_, err := utils.ParseFlexibleDecimal(fl.Field().String())
		return err == nil
	})
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Public login/refresh live outside the group; logout needs the middleware
	registerAuthRoutes(r, v1, services.User, services.Token)

	// Delegate route registration to specific handlers, passing required services
	registerUserRoutes(v1, services.User)
	registerCardRoutes(v1, services.Card, services.Balance, services.Timeline, cfg.Timezone)
	registerCardGroupRoutes(v1, services.CardGroup)
	registerClientRoutes(v1, services.Client)
	registerTransactionRoutes(v1, services.Transaction, cfg.Timezone)
	registerWithdrawalRoutes(v1, services.Sheet, services.Withdrawal, cfg.Timezone)
	registerReportingRoutes(v1, services.Reporting, cfg.Timezone)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
