package services

import (
	"time"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"

	"github.com/shopspring/decimal"
)

var (
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)
)

// BuildRepaymentSchedule converts a principal, flat annual rate and duration
// into equal installments.
//
//	totalInterest = principal * rate/100 * months/12
//	installment   = round((principal + totalInterest) / months, 2)
//
// Due dates are calendar agnostic 30 day increments starting 30 days from
// now. This is a flat rate schedule, not a declining balance amortization.
func BuildRepaymentSchedule(principal decimal.Decimal, annualRatePercent decimal.Decimal, durationMonths int, now time.Time) []models.Repayment {
	months := decimal.NewFromInt(int64(durationMonths))

	totalInterest := principal.
		Mul(annualRatePercent.Div(hundred)).
		Mul(months.Div(monthsInYear))
	totalRepayment := principal.Add(totalInterest)
	installment := totalRepayment.Div(months).Round(2)

	schedule := make([]models.Repayment, 0, durationMonths)
	for i := 1; i <= durationMonths; i++ {
		schedule = append(schedule, models.Repayment{
			Amount:  installment,
			DueDate: now.AddDate(0, 0, 30*i),
			Status:  domain.RepaymentStatusPending,
		})
	}
	return schedule
}
