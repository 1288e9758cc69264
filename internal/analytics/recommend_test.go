package analytics

import (
	"math"
	"testing"
	"time"
)

func findInsight(insights []Insight, kind InsightKind) (Insight, bool) {
	for _, in := range insights {
		if in.Kind == kind {
			return in, true
		}
	}
	return Insight{}, false
}

func TestRecommend_CategorySpike(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		average   float64
		wantSpike bool
	}{
		{"double the average", 200, 100, true},
		{"only 40 percent over", 140, 100, false},
		{"large ratio but trivial amount", 90, 10, false},
		{"exactly at ratio threshold", 150, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := Recommend(RecommendationInput{
				CurrentMonth: []CategoryAmount{{Name: "Gadgets", Value: tt.current}},
				Averages:     map[string]float64{"Gadgets": tt.average},
			})
			got, found := findInsight(insights, InsightCategorySpike)
			if found != tt.wantSpike {
				t.Fatalf("spike emitted = %v, want %v", found, tt.wantSpike)
			}
			if !found {
				return
			}
			if got.Category != "Gadgets" {
				t.Errorf("Category = %q, want Gadgets", got.Category)
			}
			wantPct := (tt.current/tt.average - 1) * 100
			if math.Abs(got.Values["percentOverAverage"]-wantPct) > tolerance {
				t.Errorf("percentOverAverage = %v, want %v", got.Values["percentOverAverage"], wantPct)
			}
			if math.Abs(got.Values["excess"]-(tt.current-tt.average)) > tolerance {
				t.Errorf("excess = %v, want %v", got.Values["excess"], tt.current-tt.average)
			}
		})
	}
}

func TestRecommend_SpikeDiscoveryOrder(t *testing.T) {
	insights := Recommend(RecommendationInput{
		CurrentMonth: []CategoryAmount{
			{Name: "Zoo Trips", Value: 400},
			{Name: "Art", Value: 300},
		},
		Averages: map[string]float64{"Zoo Trips": 100, "Art": 100},
	})

	var spikes []string
	for _, in := range insights {
		if in.Kind == InsightCategorySpike {
			spikes = append(spikes, in.Category)
		}
	}
	if len(spikes) != 2 || spikes[0] != "Zoo Trips" || spikes[1] != "Art" {
		t.Errorf("spike order = %v, want discovery order [Zoo Trips Art]", spikes)
	}
}

func TestRecommend_TopCategoryClassification(t *testing.T) {
	tests := []struct {
		name     string
		category string
		wantKind InsightKind
		// fraction of the amount expected as potentialSavings; -1 means
		// the key must be absent
		savingsShare float64
	}{
		{"investment-like gets praise", "Mutual Fund SIP", InsightWealthBuilder, -1},
		{"necessity-like suggests 5 percent", "House Rent", InsightMajorCommitment, 0.05},
		{"discretionary-like suggests 20 percent", "Food Delivery", InsightLifestyleCheck, 0.20},
		{"case-insensitive match", "GROCERIES", InsightMajorCommitment, 0.05},
		{"unmatched suggests 10 percent", "Miscellaneous", InsightTopExpense, 0.10},
	}

	const amount = 800.0
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := Recommend(RecommendationInput{
				CurrentMonth: []CategoryAmount{{Name: tt.category, Value: amount}},
				Averages:     map[string]float64{tt.category: amount}, // no spike
			})
			got, found := findInsight(insights, tt.wantKind)
			if !found {
				t.Fatalf("insight %q not emitted, got %+v", tt.wantKind, insights)
			}
			if got.Category != tt.category {
				t.Errorf("Category = %q, want %q", got.Category, tt.category)
			}
			savings, hasSavings := got.Values["potentialSavings"]
			if tt.savingsShare < 0 {
				if hasSavings {
					t.Errorf("unexpected potentialSavings = %v", savings)
				}
				return
			}
			if math.Abs(savings-amount*tt.savingsShare) > tolerance {
				t.Errorf("potentialSavings = %v, want %v", savings, amount*tt.savingsShare)
			}
		})
	}
}

func TestRecommend_TopCategoryGatedAtThreeInsights(t *testing.T) {
	// Three spikes fill the accumulator before rule 2 runs.
	insights := Recommend(RecommendationInput{
		CurrentMonth: []CategoryAmount{
			{Name: "A", Value: 400},
			{Name: "B", Value: 400},
			{Name: "C", Value: 400},
		},
		Averages: map[string]float64{"A": 100, "B": 100, "C": 100},
	})

	for _, kind := range []InsightKind{InsightWealthBuilder, InsightMajorCommitment, InsightLifestyleCheck, InsightTopExpense} {
		if _, found := findInsight(insights, kind); found {
			t.Errorf("top-category insight %q emitted despite three earlier insights", kind)
		}
	}
}

func TestRecommend_SavingsRate(t *testing.T) {
	makeBuckets := func(income, expense float64) []Bucket {
		// Two buckets: the second-to-last is the complete month under test.
		return []Bucket{
			{Year: 2024, Month: time.April, Income: income, Expense: expense},
			{Year: 2024, Month: time.May, Income: 10, Expense: 10},
		}
	}

	tests := []struct {
		name     string
		income   float64
		expense  float64
		wantKind InsightKind
		check    func(t *testing.T, in Insight)
	}{
		{
			name:     "overspending warns about debt",
			income:   1000,
			expense:  1200,
			wantKind: InsightDebtWarning,
			check: func(t *testing.T, in Insight) {
				if math.Abs(in.Values["overspendPercent"]-20) > tolerance {
					t.Errorf("overspendPercent = %v, want 20", in.Values["overspendPercent"])
				}
			},
		},
		{
			name:     "saving below twenty percent",
			income:   1000,
			expense:  900,
			wantKind: InsightSavingsGoal,
			check: func(t *testing.T, in Insight) {
				if math.Abs(in.Values["shortfall"]-100) > tolerance {
					t.Errorf("shortfall = %v, want 100", in.Values["shortfall"])
				}
			},
		},
		{
			name:     "saving half or more",
			income:   1000,
			expense:  400,
			wantKind: InsightSuperSaver,
			check: func(t *testing.T, in Insight) {
				if math.Abs(in.Values["savingsRatePercent"]-60) > tolerance {
					t.Errorf("savingsRatePercent = %v, want 60", in.Values["savingsRatePercent"])
				}
			},
		},
		{
			name:     "healthy middle ground",
			income:   1000,
			expense:  700,
			wantKind: InsightHealthyBalance,
			check:    func(t *testing.T, in Insight) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := Recommend(RecommendationInput{
				Buckets: makeBuckets(tt.income, tt.expense),
			})
			got, found := findInsight(insights, tt.wantKind)
			if !found {
				t.Fatalf("insight %q not emitted, got %+v", tt.wantKind, insights)
			}
			tt.check(t, got)
		})
	}
}

func TestRecommend_SavingsRate_FallbackToOnlyBucket(t *testing.T) {
	insights := Recommend(RecommendationInput{
		Buckets: []Bucket{{Year: 2024, Month: time.May, Income: 1000, Expense: 400}},
	})
	if _, found := findInsight(insights, InsightSuperSaver); !found {
		t.Errorf("no savings insight from single bucket, got %+v", insights)
	}
}

func TestRecommend_SavingsRate_SkippedWithoutIncome(t *testing.T) {
	insights := Recommend(RecommendationInput{
		Buckets: []Bucket{
			{Year: 2024, Month: time.April, Expense: 500},
			{Year: 2024, Month: time.May, Expense: 200},
		},
	})
	for _, kind := range []InsightKind{InsightDebtWarning, InsightSavingsGoal, InsightSuperSaver, InsightHealthyBalance} {
		if _, found := findInsight(insights, kind); found {
			t.Errorf("savings insight %q emitted for month with no income", kind)
		}
	}
}

func TestRecommend_Forecast(t *testing.T) {
	t.Run("deficit warning", func(t *testing.T) {
		insights := Recommend(RecommendationInput{
			ProjectedIncome:  1000,
			ProjectedExpense: 1400,
		})
		got, found := findInsight(insights, InsightForecastDeficit)
		if !found {
			t.Fatalf("deficit insight not emitted, got %+v", insights)
		}
		if math.Abs(got.Values["deficit"]-400) > tolerance {
			t.Errorf("deficit = %v, want 400", got.Values["deficit"])
		}
	})

	t.Run("large surplus suggests investing", func(t *testing.T) {
		insights := Recommend(RecommendationInput{
			ProjectedIncome:  5000,
			ProjectedExpense: 2000,
		})
		got, found := findInsight(insights, InsightInvestmentOpportunity)
		if !found {
			t.Fatalf("investment insight not emitted, got %+v", insights)
		}
		if math.Abs(got.Values["estimatedAnnualYield"]-3000*0.07) > tolerance {
			t.Errorf("estimatedAnnualYield = %v, want %v", got.Values["estimatedAnnualYield"], 3000*0.07)
		}
	})

	t.Run("modest surplus stays quiet", func(t *testing.T) {
		insights := Recommend(RecommendationInput{
			ProjectedIncome:  3000,
			ProjectedExpense: 1500,
		})
		if _, found := findInsight(insights, InsightInvestmentOpportunity); found {
			t.Error("investment insight emitted for surplus under threshold")
		}
		if _, found := findInsight(insights, InsightForecastDeficit); found {
			t.Error("deficit insight emitted for positive surplus")
		}
	})
}

func TestRecommend_EmptyInputEmitsNothing(t *testing.T) {
	if got := Recommend(RecommendationInput{}); len(got) != 0 {
		t.Errorf("Recommend(empty) = %+v, want none", got)
	}
}
