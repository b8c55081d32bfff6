// Package quota implements the contribution reconciliation calculations:
// per-student yearly quotas, monthly and per-grade aggregation, and the
// composed collection summary used by the dashboards.
//
// Everything in this package is a pure function over a snapshot of students
// and contribution records. The package never touches the database.
package quota

import (
	"fmt"
	"os"

	"github.com/classtally/backend/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultMonthlyAmount is the monthly rate used when MONTHLY_RATE is not set.
var DefaultMonthlyAmount = decimal.NewFromInt(500)

// Policy is the school-wide contribution policy all calculations use.
type Policy struct {
	// MonthlyAmount is the monthly rate, applied uniformly to every
	// student. It is not per-grade or per-student.
	MonthlyAmount decimal.Decimal

	// ClampRemainingBalance stops remaining balances at zero when a
	// student overpays. When false, an overpayment shows as a negative
	// remaining balance, i.e. a credit.
	ClampRemainingBalance bool

	// GradeOrder is the canonical ordering for grade breakdowns. Grades
	// that occur in the data but not in this list are appended after the
	// canonical ones, sorted by name.
	GradeOrder []models.GradeLevel
}

// DefaultPolicy returns the policy with the default monthly rate and the
// school's canonical grade ordering.
func DefaultPolicy() Policy {
	return Policy{
		MonthlyAmount: DefaultMonthlyAmount,
		GradeOrder:    models.GradeLevels,
	}
}

// PolicyFromEnv returns the default policy with the monthly rate
// overridden by the MONTHLY_RATE environment variable, if set.
func PolicyFromEnv() (Policy, error) {
	policy := DefaultPolicy()

	rate, ok := os.LookupEnv("MONTHLY_RATE")
	if !ok {
		return policy, nil
	}

	amount, err := decimal.NewFromString(rate)
	if err != nil || !amount.IsPositive() {
		return Policy{}, fmt.Errorf("MONTHLY_RATE must be a positive number, got %q", rate)
	}

	policy.MonthlyAmount = amount
	return policy, nil
}

// YearlyQuota is the yearly contribution target for one student.
func (p Policy) YearlyQuota() decimal.Decimal {
	return p.MonthlyAmount.Mul(decimal.NewFromInt(12))
}

// rate returns collected divided by expected as a percentage.
//
// The rate is defined to be 0 when expected is not positive so that
// consumers never see NaN or a division error. It is not clamped at 100,
// overpayment shows as a rate above 100.
func rate(collected, expected decimal.Decimal) decimal.Decimal {
	if !expected.IsPositive() {
		return decimal.Zero
	}

	return collected.Div(expected).Mul(decimal.NewFromInt(100))
}
