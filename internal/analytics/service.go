package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/unnikrishnan-sics/FinancePro/internal/core"
	"github.com/unnikrishnan-sics/FinancePro/internal/log"
)

// TransactionSource is the slice of the ledger store the analytics engine
// needs: one owner's entries inside a date range, in any order.
type TransactionSource interface {
	FindByOwner(ctx context.Context, ownerID string, from, to time.Time) ([]core.Transaction, error)
}

type (
	// MonthSummary is one historical bucket at the interface boundary.
	MonthSummary struct {
		Month   string  `json:"monthLabel"`
		Income  float64 `json:"income"`
		Expense float64 `json:"expense"`
	}

	// Prediction is next month's projected income and expense.
	Prediction struct {
		Month   string  `json:"month"`
		Income  float64 `json:"income"`
		Expense float64 `json:"expense"`
	}

	// TrendSummary labels the expense trend.
	TrendSummary struct {
		Trend string  `json:"trend"`
		Slope float64 `json:"slope"`
	}

	// Report is the full analytics result for one owner at one instant.
	// Amounts stay unrounded; rendering rounds.
	Report struct {
		Historical        []MonthSummary   `json:"historical"`
		Prediction        Prediction       `json:"prediction"`
		Summary           TrendSummary     `json:"summary"`
		Recommendations   []Insight        `json:"recommendations"`
		ExpenseByCategory []CategoryAmount `json:"expenseByCategory"`
	}
)

// Service composes the aggregator, the forecaster and the recommendation
// engine over a ledger snapshot. It is stateless: every call reads the store
// once and computes from that snapshot alone.
type Service struct {
	source TransactionSource
	logger *log.Logger
}

func NewService(source TransactionSource, logger *log.Logger) *Service {
	return &Service{
		source: source,
		logger: logger.WithComponent(log.ComponentAnalytics),
	}
}

// Report builds the analytics result for the owner as of now.
func (s *Service) Report(ctx context.Context, ownerID string, now time.Time) (*Report, error) {
	txns, err := s.source.FindByOwner(ctx, ownerID, WindowStart(now), now)
	if err != nil {
		return nil, fmt.Errorf("load window transactions: %w", err)
	}

	// The store returns entries unordered; everything downstream that cares
	// about discovery order needs a deterministic sequence first.
	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].OccurredAt.Equal(txns[j].OccurredAt) {
			return txns[i].OccurredAt.Before(txns[j].OccurredAt)
		}
		return txns[i].ID < txns[j].ID
	})

	buckets := MonthlyBuckets(txns)

	expenseSeries := make([]float64, len(buckets))
	incomeSeries := make([]float64, len(buckets))
	for i, b := range buckets {
		expenseSeries[i] = b.Expense
		incomeSeries[i] = b.Income
	}

	expenseFit := FitLinear(expenseSeries)
	incomeFit := FitLinear(incomeSeries)
	next := len(buckets) + 1
	projectedExpense := expenseFit.Project(next)
	projectedIncome := incomeFit.Project(next)

	currentMonth := currentMonthExpenses(txns, now)

	report := &Report{
		Historical: historicalSummaries(buckets),
		Prediction: Prediction{
			Month:   monthLabelAfter(now),
			Income:  projectedIncome,
			Expense: projectedExpense,
		},
		Summary: TrendSummary{
			Trend: expenseFit.Trend(),
			Slope: expenseFit.Slope,
		},
		Recommendations: Recommend(RecommendationInput{
			CurrentMonth:     currentMonth,
			Averages:         categoryMonthlyAverages(txns),
			Buckets:          buckets,
			ProjectedIncome:  projectedIncome,
			ProjectedExpense: projectedExpense,
		}),
		ExpenseByCategory: expenseByCategory(txns),
	}

	s.logger.DebugContext(ctx, "Analytics report built",
		log.FieldOwnerID, ownerID,
		"months", len(buckets),
		"recommendations", len(report.Recommendations))

	return report, nil
}

func historicalSummaries(buckets []Bucket) []MonthSummary {
	out := make([]MonthSummary, len(buckets))
	for i, b := range buckets {
		out[i] = MonthSummary{
			Month:   b.Label(),
			Income:  b.Income,
			Expense: b.Expense,
		}
	}
	return out
}

// currentMonthExpenses totals this month's expenses per category, preserving
// the order categories first appear in the (sorted) data.
func currentMonthExpenses(txns []core.Transaction, now time.Time) []CategoryAmount {
	totals := make(map[string]float64)
	var order []string
	for _, t := range txns {
		if t.Kind != core.Expense {
			continue
		}
		if t.OccurredAt.Year() != now.Year() || t.OccurredAt.Month() != now.Month() {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] += t.Amount
	}

	out := make([]CategoryAmount, len(order))
	for i, name := range order {
		out[i] = CategoryAmount{Name: name, Value: totals[name]}
	}
	return out
}

// categoryMonthlyAverages computes each expense category's average monthly
// total over the window, averaging only across months where the category
// actually appears (the current month included).
func categoryMonthlyAverages(txns []core.Transaction) map[string]float64 {
	type monthKey struct {
		year  int
		month time.Month
	}

	perMonth := make(map[string]map[monthKey]float64)
	for _, t := range txns {
		if t.Kind != core.Expense {
			continue
		}
		key := monthKey{t.OccurredAt.Year(), t.OccurredAt.Month()}
		months, ok := perMonth[t.Category]
		if !ok {
			months = make(map[monthKey]float64)
			perMonth[t.Category] = months
		}
		months[key] += t.Amount
	}

	averages := make(map[string]float64, len(perMonth))
	for cat, months := range perMonth {
		var total float64
		for _, amount := range months {
			total += amount
		}
		averages[cat] = total / float64(len(months))
	}
	return averages
}

// expenseByCategory totals expenses per category over the whole window,
// sorted descending by value (ties by name for determinism).
func expenseByCategory(txns []core.Transaction) []CategoryAmount {
	totals := make(map[string]float64)
	for _, t := range txns {
		if t.Kind == core.Expense {
			totals[t.Category] += t.Amount
		}
	}

	out := make([]CategoryAmount, 0, len(totals))
	for name, value := range totals {
		out = append(out, CategoryAmount{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func monthLabelAfter(now time.Time) string {
	return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location()).Month().String()[:3]
}
