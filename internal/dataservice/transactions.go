package dataservice

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"resellpanel_backend/internal/model"
)

type ReportPeriod string

const (
	PeriodDaily   ReportPeriod = "daily"
	PeriodMonthly ReportPeriod = "monthly"
	PeriodYearly  ReportPeriod = "yearly"
)

// MethodBreakdown is one payment-method slice of a summary.
type MethodBreakdown struct {
	Method  string          `json:"method"`
	Total   decimal.Decimal `json:"total"`
	Percent float64         `json:"percent"`
}

type CategoryBreakdown struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Percent  float64         `json:"percent"`
}

type TransactionSummary struct {
	Period       ReportPeriod        `json:"period"`
	From         time.Time           `json:"from"`
	To           time.Time           `json:"to"`
	Income       decimal.Decimal     `json:"income"`
	Expense      decimal.Decimal     `json:"expense"`
	Net          decimal.Decimal     `json:"net"`
	Count        int                 `json:"count"`
	ByMethod     []MethodBreakdown   `json:"by_method"`
	ByCategory   []CategoryBreakdown `json:"by_category"`
}

func (s *Service) CreateTransaction(txn *model.Transaction) error {
	if txn.ID == "" {
		txn.ID = fmt.Sprintf("txn-%s", uuid.NewString())
	}
	return s.db.Create(txn).Error
}

func (s *Service) ListTransactions() ([]model.Transaction, error) {
	var txns []model.Transaction
	if err := s.db.Order("date desc").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *Service) DeleteTransaction(id string) error {
	res := s.db.Delete(&model.Transaction{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SummarizeTransactions aggregates completed transactions over the report
// window containing at. Percentages are computed against the income total
// for payment methods and the expense total for categories.
func (s *Service) SummarizeTransactions(period ReportPeriod, at time.Time) (*TransactionSummary, error) {
	from, to, err := periodBounds(period, at)
	if err != nil {
		return nil, err
	}

	var txns []model.Transaction
	err = s.db.Where("date >= ? AND date < ? AND status = ?", from, to, model.TransactionCompleted).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}

	summary := &TransactionSummary{
		Period:  period,
		From:    from,
		To:      to,
		Income:  decimal.Zero,
		Expense: decimal.Zero,
		Count:   len(txns),
	}

	byMethod := map[string]decimal.Decimal{}
	byCategory := map[string]decimal.Decimal{}

	for _, txn := range txns {
		switch txn.Type {
		case model.TransactionIncome:
			summary.Income = summary.Income.Add(txn.Amount)
			byMethod[txn.PaymentMethod] = byMethod[txn.PaymentMethod].Add(txn.Amount)
		case model.TransactionExpense:
			summary.Expense = summary.Expense.Add(txn.Amount)
			byCategory[txn.Category] = byCategory[txn.Category].Add(txn.Amount)
		}
	}
	summary.Net = summary.Income.Sub(summary.Expense)

	for _, method := range model.PaymentMethods {
		total, ok := byMethod[method]
		if !ok {
			continue
		}
		summary.ByMethod = append(summary.ByMethod, MethodBreakdown{
			Method:  method,
			Total:   total,
			Percent: sharePercent(total, summary.Income),
		})
	}
	for _, category := range model.ExpenseCategories {
		total, ok := byCategory[category]
		if !ok {
			continue
		}
		summary.ByCategory = append(summary.ByCategory, CategoryBreakdown{
			Category: category,
			Total:    total,
			Percent:  sharePercent(total, summary.Expense),
		})
	}

	return summary, nil
}

func sharePercent(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	percent, _ := part.Div(whole).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return percent
}

func periodBounds(period ReportPeriod, at time.Time) (time.Time, time.Time, error) {
	switch period {
	case PeriodDaily:
		from := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
		return from, from.AddDate(0, 0, 1), nil
	case PeriodMonthly:
		from := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, at.Location())
		return from, from.AddDate(0, 1, 0), nil
	case PeriodYearly:
		from := time.Date(at.Year(), 1, 1, 0, 0, 0, 0, at.Location())
		return from, from.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("invalid report period: %q", period)
	}
}
