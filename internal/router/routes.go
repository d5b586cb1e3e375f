package router

import (
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/activity"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/attribute"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/auth"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/budget"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/chapter"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/company"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/config"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/costdetail"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/meta"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/project"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/role"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/events"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/metrics"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/middleware"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/repository"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/token"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/user"
	"github.com/gin-gonic/gin"
)

// resource is the handler surface every entity group exposes.
type resource interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Deactivate(c *gin.Context)
}

// Setup configures all application-specific routes using dependency injection
func Setup(router *gin.Engine, cfg *config.Config, pool *database.Pool, m *metrics.Metrics, publisher events.Publisher) {
	// Meta handler (health check, metrics)
	metaHandler := meta.NewHandler(cfg, pool, m)
	router.GET("/health", metaHandler.Health)
	if scrape := metaHandler.Metrics(); scrape != nil {
		router.GET("/metrics", scrape)
	}

	// repository
	opts := []repository.Option{repository.WithMetrics(m)}
	companyRepository := company.NewRepository(pool, opts...)
	projectRepository := project.NewRepository(pool, opts...)
	budgetRepository := budget.NewRepository(pool, opts...)
	chapterRepository := chapter.NewRepository(pool, opts...)
	activityRepository := activity.NewRepository(pool, opts...)
	attributeRepository := attribute.NewRepository(pool, opts...)
	costDetailRepository := costdetail.NewRepository(pool, opts...)
	roleRepository := role.NewRepository(pool, opts...)
	userRepository := user.NewRepository(pool, opts...)

	// shared services
	tokenManager := token.NewJWTManager(cfg)

	// service
	authService := auth.NewAuthService(userRepository, tokenManager)

	// handler
	authHandler := auth.NewAuthHandler(authService)
	companyHandler := company.NewHandler(company.NewService(companyRepository, publisher))
	projectHandler := project.NewHandler(project.NewService(projectRepository, publisher))
	budgetHandler := budget.NewHandler(budget.NewService(budgetRepository, publisher))
	chapterHandler := chapter.NewHandler(chapter.NewService(chapterRepository, publisher))
	activityHandler := activity.NewHandler(activity.NewService(activityRepository, publisher))
	attributeHandler := attribute.NewHandler(attribute.NewService(attributeRepository, publisher))
	costDetailHandler := costdetail.NewHandler(costdetail.NewService(costDetailRepository, publisher))
	roleHandler := role.NewHandler(role.NewService(roleRepository, publisher))
	userHandler := user.NewHandler(user.NewService(userRepository, publisher))

	// API v1 routes
	authV1 := router.Group("/api/v1/auth")
	{
		authV1.POST("/login", authHandler.Login)
	}

	v1 := router.Group("/api/v1")
	v1.Use(middleware.JWT(tokenManager))

	companies := register(v1, "/companies", companyHandler)
	companies.GET("/by-code/:code", companyHandler.GetByCode)

	projects := register(v1, "/projects", projectHandler)
	projects.GET("/by-code/:code", projectHandler.GetByCode)
	projects.POST("/:id/complete", projectHandler.Complete)
	projects.POST("/:id/cancel", projectHandler.Cancel)

	budgets := register(v1, "/budgets", budgetHandler)
	budgets.GET("/by-code/:code", budgetHandler.GetByCode)
	budgets.POST("/:id/complete", budgetHandler.Complete)
	budgets.POST("/:id/cancel", budgetHandler.Cancel)

	chapters := register(v1, "/chapters", chapterHandler)
	chapters.GET("/by-code/:code", chapterHandler.GetByCode)

	activities := register(v1, "/activities", activityHandler)
	activities.GET("/by-code/:code", activityHandler.GetByCode)

	attributes := register(v1, "/attributes", attributeHandler)
	attributes.GET("/by-code/:code", attributeHandler.GetByCode)

	// cost detail는 물리 삭제 허용, 비활성화는 별도 경로
	costDetails := v1.Group("/cost-details")
	{
		costDetails.POST("", costDetailHandler.Create)
		costDetails.GET("", costDetailHandler.List)
		costDetails.GET("/:id", costDetailHandler.Get)
		costDetails.PUT("/:id", costDetailHandler.Update)
		costDetails.POST("/:id/deactivate", costDetailHandler.Deactivate)
		costDetails.DELETE("/:id", costDetailHandler.Delete)
	}

	roles := register(v1, "/roles", roleHandler)
	roles.POST("/:id/activate", roleHandler.Activate)
	roles.POST("/:id/suspend", roleHandler.Suspend)

	users := v1.Group("/users")
	{
		// static segment first so "/me" never reaches "/:id"
		users.GET("/me", userHandler.GetProfile)
	}
	registerOn(users, userHandler)
}

// register mounts the standard CRUD routes of one entity under path.
func register(parent *gin.RouterGroup, path string, h resource) *gin.RouterGroup {
	group := parent.Group(path)
	registerOn(group, h)
	return group
}

func registerOn(group *gin.RouterGroup, h resource) {
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Deactivate)
}
