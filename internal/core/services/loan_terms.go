package services

import (
	"context"
	"fmt"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/repositories"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"

	"github.com/shopspring/decimal"
)

// LoanTerms is the authoritative rate and product resolved for one
// application
type LoanTerms struct {
	InterestRate decimal.Decimal
	Category     *models.LoanCategory
	MaxAmount    *decimal.Decimal
}

// ResolveLoanTerms resolves the interest rate and amount ceiling for an
// application. REGULAR loans are tiered by rank and duration and carry the
// matching term's rate; fixed categories carry one flat rate with amount
// and duration bounds. Failures wrap domain.ErrTermUnavailable.
func ResolveLoanTerms(ctx context.Context, stores *repositories.Stores, member *models.Member, application *LoanApplication) (*LoanTerms, error) {
	category, err := stores.Categories.GetByName(ctx, application.CategoryName)
	if err != nil {
		return nil, domain.ErrTermUnavailable
	}
	if !category.IsActive {
		return nil, domain.ErrTermUnavailable
	}

	if application.CategoryName == domain.LoanNameRegular {
		return resolveRegularTerms(ctx, stores, member, application, category)
	}
	return resolveFixedTerms(application, category)
}

func resolveRegularTerms(ctx context.Context, stores *repositories.Stores, member *models.Member, application *LoanApplication, category *models.LoanCategory) (*LoanTerms, error) {
	if member.Rank == nil {
		return nil, fmt.Errorf("%w: rank information is required for regular loans", domain.ErrTermUnavailable)
	}
	rank := *member.Rank

	term, err := stores.RankTerms.FindRegularTerm(ctx, rank, application.DurationMonths)
	if err != nil {
		return nil, err
	}
	if term == nil {
		return nil, fmt.Errorf("%w: no loan terms available for %s rank and %d months duration",
			domain.ErrTermUnavailable, rank, application.DurationMonths)
	}

	if application.Amount.GreaterThan(term.MaximumAmount) {
		return nil, fmt.Errorf("%w: maximum amount for %s rank at %d months is %s",
			domain.ErrTermUnavailable, rank, application.DurationMonths, term.MaximumAmount)
	}

	return &LoanTerms{
		InterestRate: term.InterestRate,
		Category:     category,
		MaxAmount:    &term.MaximumAmount,
	}, nil
}

func resolveFixedTerms(application *LoanApplication, category *models.LoanCategory) (*LoanTerms, error) {
	interestRate := decimal.Zero
	if category.InterestRate != nil {
		interestRate = *category.InterestRate
	}

	minAmount := decimal.Zero
	if category.MinAmount != nil {
		minAmount = *category.MinAmount
	}
	if application.Amount.LessThan(minAmount) ||
		(category.MaxAmount != nil && application.Amount.GreaterThan(*category.MaxAmount)) {
		maxLabel := "unlimited"
		if category.MaxAmount != nil {
			maxLabel = category.MaxAmount.String()
		}
		return nil, fmt.Errorf("%w: amount must be between %s and %s",
			domain.ErrTermUnavailable, minAmount, maxLabel)
	}

	if category.MinDuration != nil && category.MaxDuration != nil {
		durationDays := application.DurationMonths * 30
		if durationDays < *category.MinDuration || durationDays > *category.MaxDuration {
			return nil, fmt.Errorf("%w: duration must be between %d and %d days",
				domain.ErrTermUnavailable, *category.MinDuration, *category.MaxDuration)
		}
	}

	return &LoanTerms{
		InterestRate: interestRate,
		Category:     category,
		MaxAmount:    category.MaxAmount,
	}, nil
}
