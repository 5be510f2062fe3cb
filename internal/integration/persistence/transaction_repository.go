// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budgetly/backend/internal/application/adapter"
	"github.com/budgetly/backend/internal/domain/entity"
	domainerror "github.com/budgetly/backend/internal/domain/error"
	"github.com/budgetly/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	return r.db.WithContext(ctx).Create(transactionModel).Error
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByFilter retrieves transactions based on filter criteria with pagination.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	query := r.filteredQuery(ctx, filter)

	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (pagination.Page - 1) * pagination.Limit
	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	if totalPages == 0 {
		totalPages = 1
	}

	var transactionModels []model.TransactionModel
	result := query.
		Preload("Category").
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithCategory, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntityWithCategory()
	}

	return &adapter.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

// GetTotals calculates income/expense/net totals for the filter.
func (r *transactionRepository) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	var row struct {
		IncomeTotal  decimal.Decimal
		ExpenseTotal decimal.Decimal
	}

	err := r.filteredQuery(ctx, filter).
		Select(
			"COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS income_total, " +
				"COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expense_total",
		).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &entity.TransactionTotals{
		IncomeTotal:  row.IncomeTotal,
		ExpenseTotal: row.ExpenseTotal,
		NetTotal:     row.IncomeTotal.Sub(row.ExpenseTotal),
	}, nil
}

// Update updates an existing transaction in the database.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Save(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// Delete soft-deletes a transaction from the database.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// FindForBudgetPeriod returns all expense transactions for a user and
// category within [start, end].
func (r *transactionRepository) FindForBudgetPeriod(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND category_id = ? AND type = ? AND date >= ? AND date <= ?",
			userID, categoryID, string(entity.TransactionTypeExpense), start, end).
		Order("date ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// SumExpensesForPeriod returns the total expense amount for a user and
// category within [start, end].
func (r *transactionRepository) SumExpensesForPeriod(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND category_id = ? AND type = ? AND date >= ? AND date <= ?",
			userID, categoryID, string(entity.TransactionTypeExpense), start, end).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// MonthlyExpenseHistory returns per-month expense totals for a user and
// category over the months preceding (beforeMonth, beforeYear), newest first.
// Months with no spend are omitted.
func (r *transactionRepository) MonthlyExpenseHistory(ctx context.Context, userID, categoryID uuid.UUID, beforeMonth, beforeYear, months int) ([]adapter.MonthlySpend, error) {
	periodStart := time.Date(beforeYear, time.Month(beforeMonth), 1, 0, 0, 0, 0, time.UTC)
	windowStart := periodStart.AddDate(0, -months, 0)

	var rows []struct {
		Month int
		Year  int
		Spent decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select(
			"EXTRACT(MONTH FROM date)::int AS month, "+
				"EXTRACT(YEAR FROM date)::int AS year, "+
				"COALESCE(SUM(amount), 0) AS spent",
		).
		Where("user_id = ? AND category_id = ? AND type = ? AND date >= ? AND date < ?",
			userID, categoryID, string(entity.TransactionTypeExpense), windowStart, periodStart).
		Group("year, month").
		Order("year DESC, month DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	history := make([]adapter.MonthlySpend, len(rows))
	for i, row := range rows {
		history[i] = adapter.MonthlySpend{
			Month: row.Month,
			Year:  row.Year,
			Spent: row.Spent,
		}
	}
	return history, nil
}

// SumIncomeSince returns the total income for a user since the given date,
// optionally restricted to one category.
func (r *transactionRepository) SumIncomeSince(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID, since time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND type = ? AND date >= ?",
			userID, string(entity.TransactionTypeIncome), since)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var row struct {
		Total decimal.Decimal
	}
	if err := query.Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// ExistsByRecurringAndDate checks whether an occurrence has already been
// materialized for the (definition, calendar date) pair.
func (r *transactionRepository) ExistsByRecurringAndDate(ctx context.Context, recurringID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("recurring_id = ? AND date = ?", recurringID, date).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// ListForExport returns all transactions with categories for a user within
// [start, end], ordered by date ascending.
func (r *transactionRepository) ListForExport(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.TransactionWithCategory, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithCategory, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntityWithCategory()
	}
	return transactions, nil
}

// CategoryBreakdown returns per-category expense totals for a user within
// [start, end], largest first. Uncategorized spend comes back with a nil
// category ID and an empty name.
func (r *transactionRepository) CategoryBreakdown(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]adapter.CategorySpend, error) {
	var rows []struct {
		CategoryID   *uuid.UUID
		CategoryName *string
		Total        decimal.Decimal
		Count        int
	}
	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select(
			"transactions.category_id AS category_id, "+
				"categories.name AS category_name, "+
				"COALESCE(SUM(transactions.amount), 0) AS total, "+
				"COUNT(*) AS count",
		).
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.type = ? AND transactions.date >= ? AND transactions.date <= ?",
			userID, string(entity.TransactionTypeExpense), start, end).
		Group("transactions.category_id, categories.name").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	breakdown := make([]adapter.CategorySpend, len(rows))
	for i, row := range rows {
		name := ""
		if row.CategoryName != nil {
			name = *row.CategoryName
		}
		breakdown[i] = adapter.CategorySpend{
			CategoryID:   row.CategoryID,
			CategoryName: name,
			Total:        row.Total,
			Count:        row.Count,
		}
	}
	return breakdown, nil
}

// filteredQuery builds the base query for a transaction filter.
func (r *transactionRepository) filteredQuery(ctx context.Context, filter adapter.TransactionFilter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", filter.EndDate)
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(description) LIKE ?", searchPattern)
	}
	return query
}
