package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/repositories"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Underwriting constants. Static configuration, not administrator tunable.
var (
	MinLoanAmount         = decimal.NewFromInt(1000)
	CivilianMinSavings    = decimal.NewFromInt(5000)
	MaxLoanToSavingsRatio = decimal.NewFromInt(2)
)

const (
	CivilianMinSavingsMonths = 6
	AccountMaturityDays      = 90
	SavingsHistoryWindowDays = 365
)

// LoanApplication is the business-level loan request
type LoanApplication struct {
	MemberID       string          `json:"member_id" validate:"required"`
	CategoryName   domain.LoanName `json:"category_name" validate:"required"`
	Amount         decimal.Decimal `json:"amount" validate:"required"`
	DurationMonths int             `json:"duration_months" validate:"required,gt=0"`
}

// checkResult collects the outcome of one eligibility rule
type checkResult struct {
	eligible bool
	reasons  []string
}

func pass() checkResult {
	return checkResult{eligible: true}
}

func fail(reasons ...string) checkResult {
	return checkResult{eligible: false, reasons: reasons}
}

// blockingStatusMessages maps each blocking loan status to the reason shown
// to the member. DISBURSED reads the same as ACTIVE since both mean money
// is out.
var blockingStatusMessages = map[domain.LoanStatus]string{
	domain.LoanStatusActive:              "You currently have an active loan. Please complete repayment before applying for a new one.",
	domain.LoanStatusDisbursed:           "You currently have an active loan. Please complete repayment before applying for a new one.",
	domain.LoanStatusApproved:            "You have an approved loan that hasn't been disbursed yet. Please wait for disbursement.",
	domain.LoanStatusPendingVerification: "Your have an existing loan application being processed. Please wait for verification to complete.",
	domain.LoanStatusPending:             "You have a pending loan application. Please wait for approval before applying for another.",
}

// blockingPrecedence orders blocking statuses from most to least relevant.
// When a member holds several blocking loans only the highest ranked one is
// reported.
var blockingPrecedence = []domain.LoanStatus{
	domain.LoanStatusDisbursed,
	domain.LoanStatusActive,
	domain.LoanStatusApproved,
	domain.LoanStatusPendingVerification,
	domain.LoanStatusPending,
}

func statusRank(status domain.LoanStatus) int {
	for i, s := range blockingPrecedence {
		if s == status {
			return i
		}
	}
	return len(blockingPrecedence)
}

// checkExistingLoans blocks a new application while any loan is in flight
func checkExistingLoans(existing []*models.Loan) checkResult {
	if len(existing) == 0 {
		return pass()
	}

	mostRelevant := existing[0]
	for _, loan := range existing[1:] {
		if statusRank(loan.Status) < statusRank(mostRelevant.Status) {
			mostRelevant = loan
		}
	}

	if msg, ok := blockingStatusMessages[mostRelevant.Status]; ok {
		return fail(msg)
	}
	return pass()
}

// checkLoanAmount enforces the global minimum principal
func checkLoanAmount(amount decimal.Decimal) checkResult {
	if amount.LessThan(MinLoanAmount) {
		return fail(fmt.Sprintf("Loan amount must be at least %s", MinLoanAmount))
	}
	return pass()
}

// checkLoanCategory validates the category name against the closed product set
func checkLoanCategory(name domain.LoanName) checkResult {
	if !name.IsValid() {
		names := make([]string, 0, len(domain.LoanNames()))
		for _, n := range domain.LoanNames() {
			names = append(names, string(n))
		}
		return fail(fmt.Sprintf("Invalid loan category. Must be one of: %s", strings.Join(names, ", ")))
	}
	return pass()
}

// checkCivilianEligibility applies the civilian-only underwriting rules.
// Personnel members pass unconditionally. All failing rules are reported
// together, not just the first.
func checkCivilianEligibility(member *models.Member, amount decimal.Decimal, now time.Time) checkResult {
	if member.Type != domain.MemberTypeCivilian {
		return pass()
	}

	var reasons []string

	accountAgeDays := now.Sub(member.CreatedAt).Hours() / 24
	if accountAgeDays < AccountMaturityDays {
		reasons = append(reasons, fmt.Sprintf("Account must be at least %d days old", AccountMaturityDays))
	}

	if member.TotalSavings.LessThan(CivilianMinSavings) {
		reasons = append(reasons, fmt.Sprintf("Insufficient savings balance. Minimum required: %s", CivilianMinSavings))
	}

	// Distinct (year, month) buckets with at least one completed deposit.
	// member.Transactions is expected to be pre-filtered to the trailing
	// twelve months of completed savings deposits.
	months := make(map[string]struct{})
	for _, tx := range member.Transactions {
		key := fmt.Sprintf("%d-%d", tx.CreatedAt.Year(), int(tx.CreatedAt.Month()))
		months[key] = struct{}{}
	}
	if len(months) < CivilianMinSavingsMonths {
		reasons = append(reasons, fmt.Sprintf("Insufficient savings history. Need at least %d months of regular savings", CivilianMinSavingsMonths))
	}

	if amount.GreaterThan(member.TotalSavings.Mul(MaxLoanToSavingsRatio)) {
		reasons = append(reasons, fmt.Sprintf("Loan amount cannot exceed %sx your savings balance", MaxLoanToSavingsRatio))
	}

	if len(reasons) > 0 {
		return fail(reasons...)
	}
	return pass()
}

// checkRankEligibility applies the personnel rank tier rules. Civilians and
// personnel without a rank pass unconditionally here; the Term Resolver
// enforces the rank requirement for REGULAR loans.
func checkRankEligibility(ctx context.Context, stores *repositories.Stores, member *models.Member, amount decimal.Decimal, category *models.LoanCategory, durationMonths int) (checkResult, error) {
	if member.Type != domain.MemberTypePersonnel || member.Rank == nil {
		return pass(), nil
	}
	rank := *member.Rank

	if category.Name == domain.LoanNameRegular {
		term, err := stores.RankTerms.FindRegularTerm(ctx, rank, durationMonths)
		if err != nil {
			return checkResult{}, err
		}
		if term == nil {
			return fail(fmt.Sprintf("No loan terms available for %s rank at %d months", rank, durationMonths)), nil
		}
		if amount.GreaterThan(term.MaximumAmount) {
			return fail(fmt.Sprintf("Maximum amount for %s rank at %d months is ₦%s", rank, durationMonths, term.MaximumAmount)), nil
		}
		return pass(), nil
	}

	eligibility, err := stores.RankTerms.FindCategoryEligibility(ctx, rank, category.ID)
	if err != nil {
		return checkResult{}, err
	}
	if eligibility == nil {
		return fail(fmt.Sprintf("Minimum amount for %s rank is ₦not configured", rank)), nil
	}
	if amount.LessThan(eligibility.MinEligibleAmount) {
		return fail(fmt.Sprintf("Minimum amount for %s rank is ₦%s", rank, eligibility.MinEligibleAmount)), nil
	}
	return pass(), nil
}

// CheckLoanEligibility runs every underwriting rule over the loaded member
// and loan application. Independent rules run regardless of earlier
// failures so the member sees every problem at once. The rank tier rule
// needs the category row and only runs once everything else passed.
func CheckLoanEligibility(ctx context.Context, stores *repositories.Stores, member *models.Member, application *LoanApplication, now time.Time) error {
	existing, err := stores.Loans.ListBlocking(ctx, application.MemberID)
	if err != nil {
		return err
	}

	var reasons []string
	checks := []checkResult{
		checkExistingLoans(existing),
		checkLoanAmount(application.Amount),
		checkLoanCategory(application.CategoryName),
		checkCivilianEligibility(member, application.Amount, now),
	}
	for _, check := range checks {
		if !check.eligible {
			reasons = append(reasons, check.reasons...)
		}
	}

	if len(reasons) == 0 {
		category, err := stores.Categories.GetByName(ctx, application.CategoryName)
		if err == nil && category != nil {
			rankCheck, err := checkRankEligibility(ctx, stores, member, application.Amount, category, application.DurationMonths)
			if err != nil {
				return err
			}
			if !rankCheck.eligible {
				reasons = append(reasons, rankCheck.reasons...)
			}
		} else if err != nil && !errors.Is(err, domain.ErrCategoryNotFound) {
			return err
		}
	}

	if len(reasons) > 0 {
		return domain.NewEligibilityError(reasons)
	}
	return nil
}
