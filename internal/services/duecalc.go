// Package services provides business logic and orchestration services.
//
// This file implements the due-date calculation for recurring templates.
// Each frequency has its own checker that advances a watermark by exactly
// one calendar period.
package services

import (
	"fmt"
	"time"

	"github.com/unnikrishnan-sics/FinancePro/internal/core"
)

// DueChecker computes the next due instant for one frequency.
type DueChecker interface {
	// NextDue returns the watermark advanced by exactly one period.
	// Day-of-month overflow follows time.Time.AddDate normalization,
	// so Jan 31 + 1 month lands in early March rather than Feb 28.
	NextDue(watermark time.Time) time.Time
}

// MonthlyChecker implements DueChecker for monthly templates.
type MonthlyChecker struct{}

func (MonthlyChecker) NextDue(watermark time.Time) time.Time {
	return watermark.AddDate(0, 1, 0)
}

// YearlyChecker implements DueChecker for yearly templates.
type YearlyChecker struct{}

func (YearlyChecker) NextDue(watermark time.Time) time.Time {
	return watermark.AddDate(1, 0, 0)
}

// IsDue reports whether a template with the given watermark has reached its
// next period at now.
func IsDue(checker DueChecker, watermark, now time.Time) bool {
	return !checker.NextDue(watermark).After(now)
}

var dueStrategies = map[core.Frequency]DueChecker{
	core.Monthly: MonthlyChecker{},
	core.Yearly:  YearlyChecker{},
}

// GetDueChecker returns the checker for a frequency, or an error for
// unsupported frequencies.
func GetDueChecker(frequency core.Frequency) (DueChecker, error) {
	checker, ok := dueStrategies[frequency]
	if !ok {
		return nil, fmt.Errorf("unknown frequency: %s", frequency)
	}
	return checker, nil
}
