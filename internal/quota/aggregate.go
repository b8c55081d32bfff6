package quota

import (
	"time"

	"github.com/classtally/backend/internal/models"
	"github.com/classtally/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// MonthSummary is the expected/collected/rate triple for one month.
type MonthSummary struct {
	Month     types.Month     `json:"month" example:"2024-03"`    // The month, formatted as YYYY-MM
	Expected  decimal.Decimal `json:"expected" example:"2500"`    // Student count times the monthly rate
	Collected decimal.Decimal `json:"collected" example:"1600"`   // Sum of contributions recorded for the month
	Rate      decimal.Decimal `json:"rate" example:"64"`          // Collected divided by expected, as a percentage. 0 when expected is 0
}

// GradeSummary is the expected/collected/rate triple for one grade level.
type GradeSummary struct {
	GradeLevel     models.GradeLevel `json:"gradeLevel" example:"Grade 7"`      // The grade level
	TotalStudents  int               `json:"totalStudents" example:"32"`        // Number of students currently in the grade
	TotalExpected  decimal.Decimal   `json:"totalExpected" example:"192000"`    // Student count times the monthly rate times 12
	TotalCollected decimal.Decimal   `json:"totalCollected" example:"104500"`   // Sum of contributions attributed to the grade
	CollectionRate decimal.Decimal   `json:"collectionRate" example:"54.4271"`  // Collected divided by expected, as a percentage. 0 when expected is 0
}

// AggregateByMonth buckets the year's contribution records by calendar month.
//
// It always returns exactly twelve entries, January through December, in
// calendar order regardless of input order. Months without records carry a
// collected amount and rate of zero, consumers never need to backfill
// missing months themselves.
func AggregateByMonth(year int, records []models.Contribution, studentCount int, policy Policy) []MonthSummary {
	expected := policy.MonthlyAmount.Mul(decimal.NewFromInt(int64(studentCount)))

	collected := make(map[time.Month]decimal.Decimal)
	for _, record := range records {
		if record.Month.Year() != year {
			continue
		}

		month := record.Month.Month()
		collected[month] = collected[month].Add(record.Amount)
	}

	summaries := make([]MonthSummary, 0, 12)
	for month := time.January; month <= time.December; month++ {
		summaries = append(summaries, MonthSummary{
			Month:     types.NewMonth(year, month),
			Expected:  expected,
			Collected: collected[month],
			Rate:      rate(collected[month], expected),
		})
	}

	return summaries
}

// AggregateByGrade groups the roster and the year's records by grade level.
//
// Student counts and expected amounts come from the students' current grade
// levels. Collected amounts are attributed by the grade level snapshotted
// onto each record when it was written, so a mid-year promotion does not
// shift historical payments to the new grade. The result is ordered by
// policy.GradeOrder; grades outside that list are appended sorted by name.
func AggregateByGrade(students []models.Student, records []models.Contribution, year int, policy Policy) []GradeSummary {
	counts := make(map[models.GradeLevel]int)
	for _, student := range students {
		counts[student.GradeLevel]++
	}

	collected := make(map[models.GradeLevel]decimal.Decimal)
	for _, record := range records {
		if record.Month.Year() != year {
			continue
		}

		collected[record.GradeLevel] = collected[record.GradeLevel].Add(record.Amount)
	}

	canonical := make(map[models.GradeLevel]bool, len(policy.GradeOrder))
	for _, grade := range policy.GradeOrder {
		canonical[grade] = true
	}

	var extra []models.GradeLevel
	for grade := range counts {
		if !canonical[grade] {
			canonical[grade] = true
			extra = append(extra, grade)
		}
	}
	for grade := range collected {
		if !canonical[grade] {
			canonical[grade] = true
			extra = append(extra, grade)
		}
	}
	slices.Sort(extra)

	summaries := make([]GradeSummary, 0, len(counts))
	for _, grade := range append(slices.Clone(policy.GradeOrder), extra...) {
		totalStudents := counts[grade]

		// Only emit grades that occur in the roster or in the records
		if totalStudents == 0 && collected[grade].IsZero() {
			continue
		}

		totalExpected := policy.YearlyQuota().Mul(decimal.NewFromInt(int64(totalStudents)))
		summaries = append(summaries, GradeSummary{
			GradeLevel:     grade,
			TotalStudents:  totalStudents,
			TotalExpected:  totalExpected,
			TotalCollected: collected[grade],
			CollectionRate: rate(collected[grade], totalExpected),
		})
	}

	return summaries
}
