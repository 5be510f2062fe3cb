// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/budgetly/backend/internal/application/adapter"
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
	"github.com/budgetly/backend/internal/integration/persistence/model"
	"github.com/budgetly/backend/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken  string
	refreshToken string

	// Captured values, keyed by alias ("the budget", "Groceries", ...)
	savedIDs map[string]string

	// Infrastructure shared with the background loops
	db             *mock.Db
	clock          *mock.Clock
	generator      *scheduler.Generator
	alertEvaluator *scheduler.AlertEvaluator
	emailWorker    *email.Worker
	emailSender    *email.MockEmailSender
	emailQueueRepo adapter.EmailQueueRepository
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerSchedulerSteps(ctx)
}

// newTestContext wires the full application against the in-memory database,
// miniredis and a settable clock, then starts an HTTP test server.
func newTestContext() (*TestContext, error) {
	testDb := mock.NewDb([]any{
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.BudgetModel{},
		&model.RecurringTransactionModel{},
		&model.GoalModel{},
		&model.EmailQueueModel{},
	})
	if err := testDb.Reset(); err != nil {
		return nil, err
	}

	redisClient := mock.NewRedis()
	if err := mock.ClearRedis(redisClient); err != nil {
		return nil, err
	}

	db := testDb.DbConn
	clock := mock.NewClock()

	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	recurringRepo := persistence.NewRecurringRepository(db)
	goalRepo := persistence.NewGoalRepository(db, transactionRepo)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Adapters
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService("integration-test-secret", tokenRepo)
	insightService := adapters.NewGeminiService("")
	notifier := email.NewService(emailQueueRepo)

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	emailSender := email.NewMockEmailSender()
	emailWorker := email.NewWorker(emailQueueRepo, emailSender, renderer, email.WorkerConfig{
		PollInterval: time.Second,
		BatchSize:    10,
	})

	// Use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo, transactionRepo, clock)
	getSnapshotUseCase := budget.NewGetSnapshotUseCase(budgetRepo, transactionRepo, clock)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)

	createRecurringUseCase := recurring.NewCreateRecurringUseCase(recurringRepo, categoryRepo)
	updateRecurringUseCase := recurring.NewUpdateRecurringUseCase(recurringRepo)
	listRecurringUseCase := recurring.NewListRecurringUseCase(recurringRepo)
	deleteRecurringUseCase := recurring.NewDeleteRecurringUseCase(recurringRepo)

	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, categoryRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo)
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)

	monthlySummaryUseCase := report.NewMonthlySummaryUseCase(transactionRepo)
	exportCSVUseCase := report.NewExportCSVUseCase(transactionRepo)
	exportPDFUseCase := report.NewExportPDFUseCase(monthlySummaryUseCase)
	getInsightsUseCase := report.NewGetInsightsUseCase(monthlySummaryUseCase, insightService)

	// Background loops, driven manually from steps
	generator := scheduler.NewGenerator(recurringRepo, clock, time.Hour)
	alertEvaluator := scheduler.NewAlertEvaluator(
		budgetRepo,
		transactionRepo,
		goalRepo,
		userRepo,
		categoryRepo,
		notifier,
		clock,
		time.Hour,
	)

	// Controllers
	healthController := controller.NewHealthController(func() bool { return true })
	authController := controller.NewAuthController(registerUseCase, loginUseCase, refreshTokenUseCase, logoutUseCase)
	categoryController := controller.NewCategoryController(createCategoryUseCase, updateCategoryUseCase, listCategoriesUseCase, deleteCategoryUseCase)
	transactionController := controller.NewTransactionController(createTransactionUseCase, updateTransactionUseCase, listTransactionsUseCase, deleteTransactionUseCase)
	budgetController := controller.NewBudgetController(createBudgetUseCase, updateBudgetUseCase, listBudgetsUseCase, getSnapshotUseCase, deleteBudgetUseCase)
	recurringController := controller.NewRecurringController(createRecurringUseCase, updateRecurringUseCase, listRecurringUseCase, deleteRecurringUseCase)
	goalController := controller.NewGoalController(createGoalUseCase, updateGoalUseCase, listGoalsUseCase, deleteGoalUseCase)
	reportController := controller.NewReportController(monthlySummaryUseCase, exportCSVUseCase, exportPDFUseCase, getInsightsUseCase)

	loginRateLimiter := middleware.NewRateLimiterWithConfig(redisClient, "login", 1000, time.Minute)
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

	engine := r.Setup("test")

	return &TestContext{
		server:         httptest.NewServer(engine),
		requestHeaders: make(map[string]string),
		savedIDs:       make(map[string]string),
		db:             testDb,
		clock:          clock,
		generator:      generator,
		alertEvaluator: alertEvaluator,
		emailWorker:    emailWorker,
		emailSender:    emailSender,
		emailQueueRepo: emailQueueRepo,
	}, nil
}
