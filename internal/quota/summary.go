package quota

import (
	"strconv"

	"github.com/classtally/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Summary is the top-level contribution report consumed by the dashboards.
type Summary struct {
	Year             string          `json:"year" example:"2024"`               // The year the summary covers
	TotalStudents    int             `json:"totalStudents" example:"250"`       // Number of students on the roster
	TotalExpected    decimal.Decimal `json:"totalExpected" example:"1500000"`   // Student count times the monthly rate times 12
	TotalCollected   decimal.Decimal `json:"totalCollected" example:"874200"`   // Sum of all contributions in the year
	TotalRemaining   decimal.Decimal `json:"totalRemaining" example:"625800"`   // Expected minus collected. Negative on overpayment unless clamping is enabled
	CollectionRate   decimal.Decimal `json:"collectionRate" example:"58.28"`    // Collected divided by expected, as a percentage. 0 when expected is 0, not clamped above 100
	MonthlyBreakdown []MonthSummary  `json:"monthlyBreakdown"`                  // Always exactly 12 entries, January through December
	GradeBreakdown   []GradeSummary  `json:"gradeBreakdown"`                    // One entry per grade level, in canonical grade order
}

// Compose combines per-student quotas and per-period aggregates into the
// top-level report. It is a pure read composition: calling it twice with
// identical inputs produces identical output.
func Compose(year int, students []models.Student, records []models.Contribution, policy Policy) Summary {
	totalStudents := len(students)
	totalExpected := policy.YearlyQuota().Mul(decimal.NewFromInt(int64(totalStudents)))

	totalCollected := decimal.Zero
	for _, record := range records {
		if record.Month.Year() != year {
			continue
		}

		totalCollected = totalCollected.Add(record.Amount)
	}

	totalRemaining := totalExpected.Sub(totalCollected)
	if policy.ClampRemainingBalance && totalRemaining.IsNegative() {
		totalRemaining = decimal.Zero
	}

	return Summary{
		Year:             strconv.Itoa(year),
		TotalStudents:    totalStudents,
		TotalExpected:    totalExpected,
		TotalCollected:   totalCollected,
		TotalRemaining:   totalRemaining,
		CollectionRate:   rate(totalCollected, totalExpected),
		MonthlyBreakdown: AggregateByMonth(year, records, totalStudents, policy),
		GradeBreakdown:   AggregateByGrade(students, records, year, policy),
	}
}
