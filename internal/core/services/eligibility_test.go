package services

import (
	"context"
	"testing"
	"time"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankPtr(r domain.Rank) *domain.Rank {
	return &r
}

func personnelMember(rank domain.Rank) *models.Member {
	return &models.Member{
		ID:           "member-1",
		Type:         domain.MemberTypePersonnel,
		Rank:         rankPtr(rank),
		TotalSavings: decimal.NewFromInt(200000),
		CreatedAt:    time.Now().AddDate(-1, 0, 0),
	}
}

func TestCheckLoanEligibility_BlockingLoanPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		statuses []domain.LoanStatus
		want     string
	}{
		{
			name:     "active beats pending",
			statuses: []domain.LoanStatus{domain.LoanStatusPending, domain.LoanStatusActive},
			want:     "You currently have an active loan. Please complete repayment before applying for a new one.",
		},
		{
			name:     "disbursed beats active",
			statuses: []domain.LoanStatus{domain.LoanStatusActive, domain.LoanStatusDisbursed},
			want:     "You currently have an active loan. Please complete repayment before applying for a new one.",
		},
		{
			name:     "approved beats pending verification",
			statuses: []domain.LoanStatus{domain.LoanStatusPendingVerification, domain.LoanStatusApproved},
			want:     "You have an approved loan that hasn't been disbursed yet. Please wait for disbursement.",
		},
		{
			name:     "pending verification beats pending",
			statuses: []domain.LoanStatus{domain.LoanStatusPending, domain.LoanStatusPendingVerification},
			want:     "Your have an existing loan application being processed. Please wait for verification to complete.",
		},
		{
			name:     "pending alone",
			statuses: []domain.LoanStatus{domain.LoanStatusPending},
			want:     "You have a pending loan application. Please wait for approval before applying for another.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMockStores()

			existing := make([]*models.Loan, 0, len(tt.statuses))
			for _, status := range tt.statuses {
				existing = append(existing, &models.Loan{Status: status})
			}
			m.loans.On("ListBlocking", context.Background(), "member-1").Return(existing, nil)

			application := &LoanApplication{
				MemberID:       "member-1",
				CategoryName:   domain.LoanNameEmergency,
				Amount:         decimal.NewFromInt(100000),
				DurationMonths: 2,
			}
			err := CheckLoanEligibility(context.Background(), m.stores, personnelMember(domain.RankSGT), application, time.Now())

			ee, ok := domain.AsEligibilityError(err)
			require.True(t, ok, "expected an eligibility error, got %v", err)
			require.Len(t, ee.Reasons, 1)
			assert.Equal(t, tt.want, ee.Reasons[0])
			m.loans.AssertExpectations(t)
		})
	}
}

func TestCheckLoanEligibility_CivilianReasonsCollected(t *testing.T) {
	m := newMockStores()
	m.loans.On("ListBlocking", context.Background(), "member-1").Return([]*models.Loan{}, nil)

	// Brand new civilian account with low savings, no deposit history, and
	// an amount far beyond twice the balance. Every failing rule must show.
	member := &models.Member{
		ID:           "member-1",
		Type:         domain.MemberTypeCivilian,
		TotalSavings: decimal.NewFromInt(1000),
		CreatedAt:    time.Now().AddDate(0, 0, -10),
	}
	application := &LoanApplication{
		MemberID:       "member-1",
		CategoryName:   domain.LoanNameEmergency,
		Amount:         decimal.NewFromInt(100000),
		DurationMonths: 2,
	}

	err := CheckLoanEligibility(context.Background(), m.stores, member, application, time.Now())

	ee, ok := domain.AsEligibilityError(err)
	require.True(t, ok)
	assert.Contains(t, ee.Reasons, "Account must be at least 90 days old")
	assert.Contains(t, ee.Reasons, "Insufficient savings balance. Minimum required: 5000")
	assert.Contains(t, ee.Reasons, "Insufficient savings history. Need at least 6 months of regular savings")
	assert.Contains(t, ee.Reasons, "Loan amount cannot exceed 2x your savings balance")
	require.Len(t, ee.Reasons, 4)
}

func TestCheckLoanEligibility_CivilianPasses(t *testing.T) {
	m := newMockStores()
	m.loans.On("ListBlocking", context.Background(), "member-1").Return([]*models.Loan{}, nil)

	now := time.Now()
	// Anchor to the first of the month so AddDate(0, -i, 0) never normalizes
	// an invalid month-end (e.g. Aug 31 - 2 months) into an adjacent month,
	// which would collapse two deposits into the same month bucket.
	monthStart := time.Date(now.Year(), now.Month(), 1, 12, 0, 0, 0, now.Location())
	deposits := make([]models.Transaction, 0, 6)
	for i := 0; i < 6; i++ {
		deposits = append(deposits, models.Transaction{
			Type:      domain.TxTypeSavingsDeposit,
			Status:    domain.TxStatusCompleted,
			CreatedAt: monthStart.AddDate(0, -i, 0),
		})
	}
	member := &models.Member{
		ID:           "member-1",
		Type:         domain.MemberTypeCivilian,
		TotalSavings: decimal.NewFromInt(100000),
		CreatedAt:    now.AddDate(0, 0, -120),
		Transactions: deposits,
	}

	category := &models.LoanCategory{ID: "cat-1", Name: domain.LoanNameEmergency, IsActive: true}
	m.categories.On("GetByName", context.Background(), domain.LoanNameEmergency).Return(category, nil)

	application := &LoanApplication{
		MemberID:       "member-1",
		CategoryName:   domain.LoanNameEmergency,
		Amount:         decimal.NewFromInt(150000),
		DurationMonths: 2,
	}

	err := CheckLoanEligibility(context.Background(), m.stores, member, application, now)
	assert.NoError(t, err)
}

func TestCheckLoanEligibility_AmountBelowMinimum(t *testing.T) {
	m := newMockStores()
	m.loans.On("ListBlocking", context.Background(), "member-1").Return([]*models.Loan{}, nil)

	application := &LoanApplication{
		MemberID:       "member-1",
		CategoryName:   domain.LoanNameEmergency,
		Amount:         decimal.NewFromInt(500),
		DurationMonths: 2,
	}
	err := CheckLoanEligibility(context.Background(), m.stores, personnelMember(domain.RankSGT), application, time.Now())

	ee, ok := domain.AsEligibilityError(err)
	require.True(t, ok)
	assert.Contains(t, ee.Reasons, "Loan amount must be at least 1000")
}

func TestCheckLoanEligibility_InvalidCategory(t *testing.T) {
	m := newMockStores()
	m.loans.On("ListBlocking", context.Background(), "member-1").Return([]*models.Loan{}, nil)

	application := &LoanApplication{
		MemberID:       "member-1",
		CategoryName:   domain.LoanName("PARTY"),
		Amount:         decimal.NewFromInt(100000),
		DurationMonths: 2,
	}
	err := CheckLoanEligibility(context.Background(), m.stores, personnelMember(domain.RankSGT), application, time.Now())

	ee, ok := domain.AsEligibilityError(err)
	require.True(t, ok)
	require.Len(t, ee.Reasons, 1)
	assert.Equal(t, "Invalid loan category. Must be one of: REGULAR, EMERGENCY, HOME, COMMODITY, HOUSING", ee.Reasons[0])
}

func TestCheckLoanEligibility_RegularTermMissingForRank(t *testing.T) {
	m := newMockStores()
	m.loans.On("ListBlocking", context.Background(), "member-1").Return([]*models.Loan{}, nil)

	category := &models.LoanCategory{ID: "cat-regular", Name: domain.LoanNameRegular, IsActive: true}
	m.categories.On("GetByName", context.Background(), domain.LoanNameRegular).Return(category, nil)
	m.rankTerms.On("FindRegularTerm", context.Background(), domain.RankSGT, 14).Return(nil, nil)

	application := &LoanApplication{
		MemberID:       "member-1",
		CategoryName:   domain.LoanNameRegular,
		Amount:         decimal.NewFromInt(100000),
		DurationMonths: 14,
	}
	err := CheckLoanEligibility(context.Background(), m.stores, personnelMember(domain.RankSGT), application, time.Now())

	ee, ok := domain.AsEligibilityError(err)
	require.True(t, ok)
	require.Len(t, ee.Reasons, 1)
	assert.Equal(t, "No loan terms available for SGT rank at 14 months", ee.Reasons[0])
}

func TestCheckLoanEligibility_RegularAmountAboveRankCeiling(t *testing.T) {
	m := newMockStores()
	m.loans.On("ListBlocking", context.Background(), "member-1").Return([]*models.Loan{}, nil)

	category := &models.LoanCategory{ID: "cat-regular", Name: domain.LoanNameRegular, IsActive: true}
	m.categories.On("GetByName", context.Background(), domain.LoanNameRegular).Return(category, nil)

	term := &models.RegularLoanTerm{
		DurationMonths: 10,
		MaximumAmount:  decimal.RequireFromString("72967"),
		InterestRate:   decimal.NewFromInt(5),
	}
	m.rankTerms.On("FindRegularTerm", context.Background(), domain.RankACM, 10).Return(term, nil)

	application := &LoanApplication{
		MemberID:       "member-1",
		CategoryName:   domain.LoanNameRegular,
		Amount:         decimal.NewFromInt(100000),
		DurationMonths: 10,
	}
	err := CheckLoanEligibility(context.Background(), m.stores, personnelMember(domain.RankACM), application, time.Now())

	ee, ok := domain.AsEligibilityError(err)
	require.True(t, ok)
	require.Len(t, ee.Reasons, 1)
	assert.Equal(t, "Maximum amount for ACM rank at 10 months is ₦72967", ee.Reasons[0])
}

func TestCheckLoanEligibility_FixedCategoryRankMinimum(t *testing.T) {
	m := newMockStores()
	m.loans.On("ListBlocking", context.Background(), "member-1").Return([]*models.Loan{}, nil)

	category := &models.LoanCategory{ID: "cat-emergency", Name: domain.LoanNameEmergency, IsActive: true}
	m.categories.On("GetByName", context.Background(), domain.LoanNameEmergency).Return(category, nil)

	eligibility := &models.RankCategoryEligibility{MinEligibleAmount: decimal.NewFromInt(500000)}
	m.rankTerms.On("FindCategoryEligibility", context.Background(), domain.RankCPL, "cat-emergency").Return(eligibility, nil)

	application := &LoanApplication{
		MemberID:       "member-1",
		CategoryName:   domain.LoanNameEmergency,
		Amount:         decimal.NewFromInt(100000),
		DurationMonths: 2,
	}
	err := CheckLoanEligibility(context.Background(), m.stores, personnelMember(domain.RankCPL), application, time.Now())

	ee, ok := domain.AsEligibilityError(err)
	require.True(t, ok)
	require.Len(t, ee.Reasons, 1)
	assert.Equal(t, "Minimum amount for CPL rank is ₦500000", ee.Reasons[0])
}

func TestCheckLoanEligibility_FixedCategoryRankNotConfigured(t *testing.T) {
	m := newMockStores()
	m.loans.On("ListBlocking", context.Background(), "member-1").Return([]*models.Loan{}, nil)

	category := &models.LoanCategory{ID: "cat-home", Name: domain.LoanNameHome, IsActive: true}
	m.categories.On("GetByName", context.Background(), domain.LoanNameHome).Return(category, nil)
	m.rankTerms.On("FindCategoryEligibility", context.Background(), domain.RankWO, "cat-home").Return(nil, nil)

	application := &LoanApplication{
		MemberID:       "member-1",
		CategoryName:   domain.LoanNameHome,
		Amount:         decimal.NewFromInt(600000),
		DurationMonths: 2,
	}
	err := CheckLoanEligibility(context.Background(), m.stores, personnelMember(domain.RankWO), application, time.Now())

	ee, ok := domain.AsEligibilityError(err)
	require.True(t, ok)
	require.Len(t, ee.Reasons, 1)
	assert.Equal(t, "Minimum amount for WO rank is ₦not configured", ee.Reasons[0])
}

func TestCheckLoanEligibility_PersonnelWithoutRankSkipsTierCheck(t *testing.T) {
	m := newMockStores()
	m.loans.On("ListBlocking", context.Background(), "member-1").Return([]*models.Loan{}, nil)

	category := &models.LoanCategory{ID: "cat-emergency", Name: domain.LoanNameEmergency, IsActive: true}
	m.categories.On("GetByName", context.Background(), domain.LoanNameEmergency).Return(category, nil)

	member := &models.Member{
		ID:           "member-1",
		Type:         domain.MemberTypePersonnel,
		TotalSavings: decimal.NewFromInt(200000),
		CreatedAt:    time.Now().AddDate(-1, 0, 0),
	}
	application := &LoanApplication{
		MemberID:       "member-1",
		CategoryName:   domain.LoanNameEmergency,
		Amount:         decimal.NewFromInt(100000),
		DurationMonths: 2,
	}

	err := CheckLoanEligibility(context.Background(), m.stores, member, application, time.Now())
	assert.NoError(t, err)
	m.rankTerms.AssertNotCalled(t, "FindCategoryEligibility")
}
