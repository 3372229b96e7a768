// Package dependency provides dependency injection for the application.
package dependency

import (
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/auth"
	"github.com/finance-tracker/ledger/internal/application/usecase/category"
	"github.com/finance-tracker/ledger/internal/application/usecase/dashboard"
	"github.com/finance-tracker/ledger/internal/application/usecase/investment"
	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/infra/server/router"
	"github.com/finance-tracker/ledger/internal/integration/adapters"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/ledger/internal/integration/messaging"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
)

// Externals are the collaborators a binary builds itself. Every field is optional.
type Externals struct {
	ValuationCache     adapter.ValuationCache // nil disables valuation caching
	Publisher          adapter.EventPublisher // nil drops ledger events
	Clock              adapter.Clock          // nil uses the system clock
	DBHealthChecker    func() bool
	CacheHealthChecker func() bool
}

// Injector holds all application dependencies.
type Injector struct {
	Config           *config.Config
	DB               *gorm.DB
	Router           *router.Router
	LoginRateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, ext Externals) *Injector {
	publisher := ext.Publisher
	if publisher == nil {
		publisher = messaging.NewNopPublisher()
	}
	dbHealthChecker := ext.DBHealthChecker
	if dbHealthChecker == nil {
		dbHealthChecker = func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		}
	}

	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	investmentRepo := persistence.NewInvestmentRepository(db)
	dashboardRepo := persistence.NewDashboardRepository(db)

	// Services
	passwordService := adapters.NewPasswordService(cfg.Password.HashCost)
	tokenService := adapters.NewTokenServiceWithExpiry(
		cfg.JWT.Secret,
		tokenRepo,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, passwordService, tokenService)
	getCurrentUserUseCase := auth.NewGetCurrentUserUseCase(userRepo)
	updateUserNameUseCase := auth.NewUpdateUserNameUseCase(userRepo)

	// Category use cases
	categoryResolver := category.NewFindOrCreateCategoryUseCase(categoryRepo, publisher)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	getCategoryUseCase := category.NewGetCategoryUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, publisher)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, publisher)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, publisher)
	suggestCategoriesUseCase := category.NewSuggestCategoriesUseCase(categoryRepo)

	// Transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, categoryResolver, publisher)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, publisher)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, publisher)

	// Investment use cases
	listInvestmentsUseCase := investment.NewListInvestmentsUseCase(investmentRepo)
	getInvestmentUseCase := investment.NewGetInvestmentUseCase(investmentRepo)
	createInvestmentUseCase := investment.NewCreateInvestmentUseCase(investmentRepo, categoryResolver, publisher)
	updateInvestmentUseCase := investment.NewUpdateInvestmentUseCase(investmentRepo, ext.ValuationCache, publisher)
	deleteInvestmentUseCase := investment.NewDeleteInvestmentUseCase(investmentRepo, ext.ValuationCache, publisher)
	valuationUseCase := investment.NewGetValuationUseCase(investmentRepo, ext.ValuationCache, ext.Clock)
	projectionUseCase := investment.NewGetProjectionUseCase(investmentRepo)

	// Dashboard use cases
	getDataRangeUseCase := dashboard.NewGetDataRangeUseCase(dashboardRepo)
	getCategoryBreakdownUseCase := dashboard.NewGetCategoryBreakdownUseCase(dashboardRepo)
	getMonthlyTotalsUseCase := dashboard.NewGetMonthlyTotalsUseCase(dashboardRepo)
	getRecurrenceBreakdownUseCase := dashboard.NewGetRecurrenceBreakdownUseCase(dashboardRepo)

	// Controllers
	healthController := controller.NewHealthController(dbHealthChecker, ext.CacheHealthChecker)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	userController := controller.NewUserController(
		getCurrentUserUseCase,
		updateUserNameUseCase,
		logoutUseCase,
		deleteAccountUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		getCategoryUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
		suggestCategoriesUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		getTransactionUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)

	investmentController := controller.NewInvestmentController(
		listInvestmentsUseCase,
		getInvestmentUseCase,
		createInvestmentUseCase,
		updateInvestmentUseCase,
		deleteInvestmentUseCase,
		valuationUseCase,
		projectionUseCase,
	)

	dashboardController := controller.NewDashboardController(
		getDataRangeUseCase,
		getCategoryBreakdownUseCase,
		getMonthlyTotalsUseCase,
		getRecurrenceBreakdownUseCase,
	)

	// Middleware
	loginRateLimiter := middleware.NewRateLimiterWithConfig(
		cfg.RateLimit.MaxAttempts,
		cfg.RateLimit.Window,
		cfg.RateLimit.Enabled,
	)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		userController,
		categoryController,
		transactionController,
		investmentController,
		dashboardController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:           cfg,
		DB:               db,
		Router:           r,
		LoginRateLimiter: loginRateLimiter,
	}
}
