package analytics

import "strings"

// Insight kinds, in the order the rules can emit them.
const (
	InsightCategorySpike         InsightKind = "category_spike"
	InsightWealthBuilder         InsightKind = "wealth_builder"
	InsightMajorCommitment       InsightKind = "major_commitment"
	InsightLifestyleCheck        InsightKind = "lifestyle_check"
	InsightTopExpense            InsightKind = "top_expense"
	InsightDebtWarning           InsightKind = "debt_warning"
	InsightSavingsGoal           InsightKind = "savings_goal"
	InsightSuperSaver            InsightKind = "super_saver"
	InsightHealthyBalance        InsightKind = "healthy_balance"
	InsightForecastDeficit       InsightKind = "forecast_deficit"
	InsightInvestmentOpportunity InsightKind = "investment_opportunity"
)

type InsightKind string

// Insight is one structured recommendation. Values carry the raw numbers;
// turning them into sentences (and deciding what to round) is the
// presentation layer's job.
type Insight struct {
	Kind     InsightKind        `json:"kind"`
	Category string             `json:"category,omitempty"`
	Values   map[string]float64 `json:"values"`
}

// CategoryAmount pairs a category with a money total.
type CategoryAmount struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// RecommendationInput is the snapshot the rules evaluate over.
type RecommendationInput struct {
	// CurrentMonth holds this month's expense totals per category, in the
	// order the categories were first seen in the data.
	CurrentMonth []CategoryAmount
	// Averages holds each category's historical monthly average over the
	// lookback window.
	Averages map[string]float64
	// Buckets is the calendar-ordered monthly series.
	Buckets []Bucket
	// Projections for next month, already clamped non-negative.
	ProjectedIncome  float64
	ProjectedExpense float64
}

// Rule thresholds.
const (
	spikeRatio          = 1.5
	spikeMinAmount      = 100
	savingsGoalRate     = 20 // percent, the 50/30/20 rule's savings share
	superSaverRate      = 50
	surplusInvestWorthy = 2000
	annualYieldRate     = 0.07
)

// Keyword sets for classifying the highest-spending category. Matching is a
// case-insensitive substring test.
var (
	investmentKeywords    = []string{"investment", "savings", "sip", "mutual fund", "stocks", "gold", "deposit"}
	necessityKeywords     = []string{"rent", "emi", "loan", "medical", "education", "tuition", "utilities", "groceries"}
	discretionaryKeywords = []string{"food", "entertainment", "shopping", "travel", "dining", "movies", "subscriptions"}
)

// Recommend runs the rule set over the snapshot and returns all matching
// insights in a fixed order. Rules append to one accumulator; rule 2 reads
// its length for the "fewer than three so far" gate rather than any shared
// counter.
func Recommend(in RecommendationInput) []Insight {
	insights := []Insight{}

	// 1. Category spikes: current month well above the historical average
	// and large enough to matter. Discovery order, not re-sorted.
	for _, cat := range in.CurrentMonth {
		avg := in.Averages[cat.Name]
		if avg <= 0 {
			continue
		}
		if cat.Value > avg*spikeRatio && cat.Value > spikeMinAmount {
			insights = append(insights, Insight{
				Kind:     InsightCategorySpike,
				Category: cat.Name,
				Values: map[string]float64{
					"amount":             cat.Value,
					"monthlyAverage":     avg,
					"percentOverAverage": (cat.Value/avg - 1) * 100,
					"excess":             cat.Value - avg,
				},
			})
		}
	}

	// 2. Highest-spending category, only while the list is still short.
	if len(insights) < 3 {
		if top, ok := topCategory(in.CurrentMonth); ok {
			insights = append(insights, classifyTopCategory(top))
		}
	}

	// 3. Savings rate over the most recently complete month.
	if insight, ok := savingsRateInsight(in.Buckets); ok {
		insights = append(insights, insight)
	}

	// 4. Projected surplus or deficit for next month.
	surplus := in.ProjectedIncome - in.ProjectedExpense
	if surplus < 0 {
		insights = append(insights, Insight{
			Kind: InsightForecastDeficit,
			Values: map[string]float64{
				"deficit": -surplus,
			},
		})
	} else if surplus > surplusInvestWorthy {
		insights = append(insights, Insight{
			Kind: InsightInvestmentOpportunity,
			Values: map[string]float64{
				"surplus":              surplus,
				"estimatedAnnualYield": surplus * annualYieldRate,
			},
		})
	}

	return insights
}

// topCategory returns the highest-value entry. Strict comparison keeps the
// first-discovered category on ties.
func topCategory(current []CategoryAmount) (CategoryAmount, bool) {
	var top CategoryAmount
	found := false
	for _, cat := range current {
		if cat.Value > top.Value {
			top = cat
			found = true
		}
	}
	return top, found
}

func classifyTopCategory(top CategoryAmount) Insight {
	switch {
	case matchesAny(top.Name, investmentKeywords):
		// Money routed into wealth building: praise, no savings estimate.
		return Insight{
			Kind:     InsightWealthBuilder,
			Category: top.Name,
			Values:   map[string]float64{"amount": top.Value},
		}
	case matchesAny(top.Name, necessityKeywords):
		// Fixed commitments still leave a little room: ~5%.
		return Insight{
			Kind:     InsightMajorCommitment,
			Category: top.Name,
			Values: map[string]float64{
				"amount":           top.Value,
				"potentialSavings": top.Value * 0.05,
			},
		}
	case matchesAny(top.Name, discretionaryKeywords):
		// Variable spending: a stricter budget can cut ~20%.
		return Insight{
			Kind:     InsightLifestyleCheck,
			Category: top.Name,
			Values: map[string]float64{
				"amount":           top.Value,
				"potentialSavings": top.Value * 0.20,
			},
		}
	default:
		return Insight{
			Kind:     InsightTopExpense,
			Category: top.Name,
			Values: map[string]float64{
				"amount":           top.Value,
				"potentialSavings": top.Value * 0.10,
			},
		}
	}
}

// savingsRateInsight evaluates the most recently complete month: the
// second-to-last bucket, falling back to the only bucket when just one
// exists. Months with no income say nothing about a savings rate.
func savingsRateInsight(buckets []Bucket) (Insight, bool) {
	if len(buckets) == 0 {
		return Insight{}, false
	}
	b := buckets[len(buckets)-1]
	if len(buckets) >= 2 {
		b = buckets[len(buckets)-2]
	}
	if b.Income <= 0 {
		return Insight{}, false
	}

	saved := b.Income - b.Expense
	rate := saved / b.Income * 100

	switch {
	case rate < 0:
		return Insight{
			Kind: InsightDebtWarning,
			Values: map[string]float64{
				"overspendPercent": -rate,
			},
		}, true
	case rate < savingsGoalRate:
		return Insight{
			Kind: InsightSavingsGoal,
			Values: map[string]float64{
				"savingsRatePercent": rate,
				"saved":              saved,
				"shortfall":          b.Income*savingsGoalRate/100 - saved,
			},
		}, true
	case rate >= superSaverRate:
		return Insight{
			Kind: InsightSuperSaver,
			Values: map[string]float64{
				"savingsRatePercent": rate,
			},
		}, true
	default:
		return Insight{
			Kind: InsightHealthyBalance,
			Values: map[string]float64{
				"savingsRatePercent": rate,
			},
		}, true
	}
}

func matchesAny(category string, keywords []string) bool {
	lower := strings.ToLower(category)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
