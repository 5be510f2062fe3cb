// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/budgetly/backend/config"
	"github.com/budgetly/backend/internal/application/usecase/auth"
	"github.com/budgetly/backend/internal/application/usecase/budget"
	"github.com/budgetly/backend/internal/application/usecase/category"
	"github.com/budgetly/backend/internal/application/usecase/goal"
	"github.com/budgetly/backend/internal/application/usecase/recurring"
	"github.com/budgetly/backend/internal/application/usecase/report"
	"github.com/budgetly/backend/internal/application/usecase/transaction"
	"github.com/budgetly/backend/internal/infra/scheduler"
	"github.com/budgetly/backend/internal/infra/server/router"
	"github.com/budgetly/backend/internal/integration/adapters"
	"github.com/budgetly/backend/internal/integration/email"
	"github.com/budgetly/backend/internal/integration/email/templates"
	"github.com/budgetly/backend/internal/integration/entrypoint/controller"
	"github.com/budgetly/backend/internal/integration/entrypoint/middleware"
	"github.com/budgetly/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router

	// Background loops, started by main.
	EmailWorker    *email.Worker
	Generator      *scheduler.Generator
	AlertEvaluator *scheduler.AlertEvaluator
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) (*Injector, error) {
	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	recurringRepo := persistence.NewRecurringRepository(db)
	goalRepo := persistence.NewGoalRepository(db, transactionRepo)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	clock := adapters.NewSystemClock()
	insightService := adapters.NewGeminiService(cfg.Insights.GeminiAPIKey)
	notifier := email.NewService(emailQueueRepo)

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	emailSender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	emailWorker := email.NewWorker(emailQueueRepo, emailSender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Budget use cases
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo, transactionRepo, clock)
	getSnapshotUseCase := budget.NewGetSnapshotUseCase(budgetRepo, transactionRepo, clock)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)

	// Recurring use cases
	createRecurringUseCase := recurring.NewCreateRecurringUseCase(recurringRepo, categoryRepo)
	updateRecurringUseCase := recurring.NewUpdateRecurringUseCase(recurringRepo)
	listRecurringUseCase := recurring.NewListRecurringUseCase(recurringRepo)
	deleteRecurringUseCase := recurring.NewDeleteRecurringUseCase(recurringRepo)

	// Goal use cases
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, categoryRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo)
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)

	// Report use cases
	monthlySummaryUseCase := report.NewMonthlySummaryUseCase(transactionRepo)
	exportCSVUseCase := report.NewExportCSVUseCase(transactionRepo)
	exportPDFUseCase := report.NewExportPDFUseCase(monthlySummaryUseCase)
	getInsightsUseCase := report.NewGetInsightsUseCase(monthlySummaryUseCase, insightService)

	// Background schedulers
	generator := scheduler.NewGenerator(recurringRepo, clock, cfg.Scheduler.GeneratorInterval)
	alertEvaluator := scheduler.NewAlertEvaluator(
		budgetRepo,
		transactionRepo,
		goalRepo,
		userRepo,
		categoryRepo,
		notifier,
		clock,
		cfg.Scheduler.AlertsInterval,
	)

	// Controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	categoryController := controller.NewCategoryController(
		createCategoryUseCase,
		updateCategoryUseCase,
		listCategoriesUseCase,
		deleteCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		updateTransactionUseCase,
		listTransactionsUseCase,
		deleteTransactionUseCase,
	)

	budgetController := controller.NewBudgetController(
		createBudgetUseCase,
		updateBudgetUseCase,
		listBudgetsUseCase,
		getSnapshotUseCase,
		deleteBudgetUseCase,
	)

	recurringController := controller.NewRecurringController(
		createRecurringUseCase,
		updateRecurringUseCase,
		listRecurringUseCase,
		deleteRecurringUseCase,
	)

	goalController := controller.NewGoalController(
		createGoalUseCase,
		updateGoalUseCase,
		listGoalsUseCase,
		deleteGoalUseCase,
	)

	reportController := controller.NewReportController(
		monthlySummaryUseCase,
		exportCSVUseCase,
		exportPDFUseCase,
		getInsightsUseCase,
	)

	// Middleware
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(redisClient, "login", 1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter(redisClient, "login")
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		transactionController,
		budgetController,
		recurringController,
		goalController,
		reportController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:         cfg,
		DB:             db,
		Router:         r,
		EmailWorker:    emailWorker,
		Generator:      generator,
		AlertEvaluator: alertEvaluator,
	}, nil
}
