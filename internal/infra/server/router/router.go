// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	userController        *controller.UserController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	investmentController  *controller.InvestmentController
	dashboardController   *controller.DashboardController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	investmentController *controller.InvestmentController,
	dashboardController *controller.DashboardController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		userController:        userController,
		categoryController:    categoryController,
		transactionController: transactionController,
		investmentController:  investmentController,
		dashboardController:   dashboardController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		// Everything below requires authentication.
		if r.authMiddleware == nil {
			return
		}

		if r.userController != nil {
			users := v1.Group("/users")
			users.Use(r.authMiddleware.Authenticate())
			{
				users.GET("/me", r.userController.Me)
				users.PATCH("/me/name", r.userController.UpdateName)
				users.POST("/me/logout-all", r.userController.LogoutAll)
				users.DELETE("/me", r.userController.DeleteAccount)
			}
		}

		if r.categoryController != nil {
			categories := v1.Group("/categories")
			categories.Use(r.authMiddleware.Authenticate())
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
				categories.GET("/suggestions", r.categoryController.Suggest)
				categories.GET("/:id", r.categoryController.Get)
				categories.PATCH("/:id/label", r.categoryController.UpdateLabel)
				categories.PATCH("/:id/type", r.categoryController.UpdateType)
				categories.DELETE("/:id", r.categoryController.Delete)
			}
		}

		if r.transactionController != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.GET("/:id", r.transactionController.Get)
				transactions.PATCH("/:id/description", r.transactionController.UpdateDescription)
				transactions.PATCH("/:id/value", r.transactionController.UpdateValue)
				transactions.PATCH("/:id/date", r.transactionController.UpdateDate)
				transactions.PATCH("/:id/category", r.transactionController.UpdateCategory)
				transactions.PATCH("/:id/recurrence", r.transactionController.UpdateRecurrence)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		if r.investmentController != nil {
			investments := v1.Group("/investments")
			investments.Use(r.authMiddleware.Authenticate())
			{
				investments.GET("", r.investmentController.List)
				investments.POST("", r.investmentController.Create)
				investments.GET("/:id", r.investmentController.Get)
				investments.GET("/:id/valuation", r.investmentController.Valuation)
				investments.GET("/:id/projection", r.investmentController.Projection)
				investments.PATCH("/:id/description", r.investmentController.UpdateDescription)
				investments.PATCH("/:id/value", r.investmentController.UpdateValue)
				investments.PATCH("/:id/date", r.investmentController.UpdateDate)
				investments.PATCH("/:id/recurrence", r.investmentController.UpdateRecurrence)
				investments.PATCH("/:id/rate", r.investmentController.UpdateRate)
				investments.PATCH("/:id/entrance", r.investmentController.UpdateEntrance)
				investments.PATCH("/:id/recurrence-add", r.investmentController.UpdateRecurrenceAdd)
				investments.PATCH("/:id/months-duration", r.investmentController.UpdateMonthsDuration)
				investments.DELETE("/:id", r.investmentController.Delete)
			}
		}

		if r.dashboardController != nil {
			dashboard := v1.Group("/dashboard")
			dashboard.Use(r.authMiddleware.Authenticate())
			{
				dashboard.GET("/data-range", r.dashboardController.GetDataRange)
				dashboard.GET("/categories", r.dashboardController.GetCategoryBreakdown)
				dashboard.GET("/monthly", r.dashboardController.GetMonthlyTotals)
				dashboard.GET("/recurrence", r.dashboardController.GetRecurrenceBreakdown)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
