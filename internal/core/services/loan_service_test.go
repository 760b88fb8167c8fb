package services

import (
	"context"
	"testing"
	"time"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLoanService(m *mockStores, devMode bool) *LoanService {
	return NewLoanService(&stubTransactor{stores: m.stores}, m.stores, nil, devMode)
}

func strPtr(s string) *string {
	return &s
}

func TestLoanService_Apply(t *testing.T) {
	m := newMockStores()
	service := newLoanService(m, true)
	ctx := context.Background()

	member := personnelMember(domain.RankACM)
	m.members.On("GetForUnderwriting", ctx, "member-1", mock.AnythingOfType("time.Time")).Return(member, nil)
	m.loans.On("ListBlocking", ctx, "member-1").Return([]*models.Loan{}, nil)

	category := &models.LoanCategory{ID: "cat-regular", Name: domain.LoanNameRegular, IsActive: true}
	m.categories.On("GetByName", ctx, domain.LoanNameRegular).Return(category, nil)

	term := &models.RegularLoanTerm{
		DurationMonths: 10,
		MaximumAmount:  decimal.NewFromInt(700000),
		InterestRate:   decimal.NewFromInt(5),
	}
	m.rankTerms.On("FindRegularTerm", ctx, domain.RankACM, 10).Return(term, nil)

	m.loans.On("Create", ctx, mock.MatchedBy(func(loan *models.Loan) bool {
		return loan.Status == domain.LoanStatusPendingVerification &&
			loan.CategoryID == "cat-regular" &&
			loan.InterestRate.Equal(decimal.NewFromInt(5)) &&
			loan.OTP != nil && len(*loan.OTP) == 6 &&
			loan.OTPExpiresAt != nil &&
			len(loan.Repayments) == 10 &&
			loan.Reference != ""
	})).Return(nil)

	result, err := service.Apply(ctx, &LoanApplication{
		MemberID:       "member-1",
		CategoryName:   domain.LoanNameRegular,
		Amount:         decimal.NewFromInt(600000),
		DurationMonths: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusPendingVerification, result.Status)
	assert.Len(t, result.OTP, 6)
	assert.Equal(t, "OTP generated for development", result.Message)
	m.loans.AssertExpectations(t)
}

func TestLoanService_Apply_HidesOTPOutsideDev(t *testing.T) {
	m := newMockStores()
	service := newLoanService(m, false)
	ctx := context.Background()

	m.members.On("GetForUnderwriting", ctx, "member-1", mock.AnythingOfType("time.Time")).Return(personnelMember(domain.RankACM), nil)
	m.loans.On("ListBlocking", ctx, "member-1").Return([]*models.Loan{}, nil)

	category := &models.LoanCategory{ID: "cat-regular", Name: domain.LoanNameRegular, IsActive: true}
	m.categories.On("GetByName", ctx, domain.LoanNameRegular).Return(category, nil)
	term := &models.RegularLoanTerm{MaximumAmount: decimal.NewFromInt(700000), InterestRate: decimal.NewFromInt(5)}
	m.rankTerms.On("FindRegularTerm", ctx, domain.RankACM, 10).Return(term, nil)
	m.loans.On("Create", ctx, mock.AnythingOfType("*models.Loan")).Return(nil)

	result, err := service.Apply(ctx, &LoanApplication{
		MemberID:       "member-1",
		CategoryName:   domain.LoanNameRegular,
		Amount:         decimal.NewFromInt(600000),
		DurationMonths: 10,
	})

	require.NoError(t, err)
	assert.Empty(t, result.OTP)
	assert.Equal(t, "OTP sent to registered contact", result.Message)
}

func TestLoanService_Apply_MissingFields(t *testing.T) {
	m := newMockStores()
	service := newLoanService(m, true)

	result, err := service.Apply(context.Background(), &LoanApplication{
		MemberID:     "member-1",
		CategoryName: domain.LoanNameRegular,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrMissingFields)
}

func TestLoanService_Apply_IneligibleCreatesNoLoan(t *testing.T) {
	m := newMockStores()
	service := newLoanService(m, true)
	ctx := context.Background()

	m.members.On("GetForUnderwriting", ctx, "member-1", mock.AnythingOfType("time.Time")).Return(personnelMember(domain.RankACM), nil)
	m.loans.On("ListBlocking", ctx, "member-1").Return([]*models.Loan{
		{Status: domain.LoanStatusActive},
	}, nil)

	result, err := service.Apply(ctx, &LoanApplication{
		MemberID:       "member-1",
		CategoryName:   domain.LoanNameRegular,
		Amount:         decimal.NewFromInt(600000),
		DurationMonths: 10,
	})

	assert.Nil(t, result)
	_, ok := domain.AsEligibilityError(err)
	assert.True(t, ok, "expected an eligibility error, got %v", err)
	m.loans.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoanService_Apply_SecondApplicationBlocked(t *testing.T) {
	m := newMockStores()
	service := newLoanService(m, true)
	ctx := context.Background()

	m.members.On("GetForUnderwriting", ctx, "member-1", mock.AnythingOfType("time.Time")).Return(personnelMember(domain.RankACM), nil)

	// The locked member read serializes applications, so the second one's
	// blocking-loan query runs after the first loan is committed.
	m.loans.On("ListBlocking", ctx, "member-1").Return([]*models.Loan{}, nil).Once()
	m.loans.On("ListBlocking", ctx, "member-1").Return([]*models.Loan{
		{Status: domain.LoanStatusPendingVerification},
	}, nil).Once()

	category := &models.LoanCategory{ID: "cat-regular", Name: domain.LoanNameRegular, IsActive: true}
	m.categories.On("GetByName", ctx, domain.LoanNameRegular).Return(category, nil)
	term := &models.RegularLoanTerm{MaximumAmount: decimal.NewFromInt(700000), InterestRate: decimal.NewFromInt(5)}
	m.rankTerms.On("FindRegularTerm", ctx, domain.RankACM, 10).Return(term, nil)
	m.loans.On("Create", ctx, mock.AnythingOfType("*models.Loan")).Return(nil).Once()

	application := &LoanApplication{
		MemberID:       "member-1",
		CategoryName:   domain.LoanNameRegular,
		Amount:         decimal.NewFromInt(600000),
		DurationMonths: 10,
	}

	first, err := service.Apply(ctx, application)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := service.Apply(ctx, application)
	assert.Nil(t, second)
	ee, ok := domain.AsEligibilityError(err)
	require.True(t, ok, "expected an eligibility error, got %v", err)
	assert.Contains(t, ee.Reasons, "Your have an existing loan application being processed. Please wait for verification to complete.")
	m.loans.AssertExpectations(t)
}

func pendingVerificationLoan(otp string, expiresAt time.Time) *models.Loan {
	return &models.Loan{
		ID:           "loan-1",
		MemberID:     "member-1",
		Amount:       decimal.NewFromInt(600000),
		Status:       domain.LoanStatusPendingVerification,
		OTP:          strPtr(otp),
		OTPExpiresAt: &expiresAt,
		Reference:    "LN-1756600000000-ABC123",
	}
}

func TestLoanService_ConfirmWithOTP(t *testing.T) {
	m := newMockStores()
	service := newLoanService(m, true)
	ctx := context.Background()

	loan := pendingVerificationLoan("123456", time.Now().Add(3*time.Minute))
	m.loans.On("GetByIDForUpdate", ctx, "loan-1").Return(loan, nil)
	m.transactions.On("FindPendingConfirmation", ctx, "loan-1").Return(nil, nil)
	m.loans.On("Update", ctx, mock.MatchedBy(func(updated *models.Loan) bool {
		return updated.Status == domain.LoanStatusPending &&
			updated.OTP == nil && updated.OTPExpiresAt == nil
	})).Return(nil)
	m.transactions.On("Create", ctx, mock.MatchedBy(func(entry *models.Transaction) bool {
		return entry.Type == domain.TxTypePendingConfirmation &&
			entry.Status == domain.TxStatusPending &&
			entry.LoanID != nil && *entry.LoanID == "loan-1"
	})).Return(nil)

	confirmed, err := service.ConfirmWithOTP(ctx, "loan-1", "123456", "member-1")

	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusPending, confirmed.Status)
	m.loans.AssertExpectations(t)
	m.transactions.AssertExpectations(t)
}

func TestLoanService_ConfirmWithOTP_WrongCode(t *testing.T) {
	m := newMockStores()
	service := newLoanService(m, true)
	ctx := context.Background()

	loan := pendingVerificationLoan("123456", time.Now().Add(3*time.Minute))
	m.loans.On("GetByIDForUpdate", ctx, "loan-1").Return(loan, nil)
	m.transactions.On("FindPendingConfirmation", ctx, "loan-1").Return(nil, nil)

	confirmed, err := service.ConfirmWithOTP(ctx, "loan-1", "654321", "member-1")

	assert.Nil(t, confirmed)
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredOTP)
	m.loans.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLoanService_ConfirmWithOTP_Expired(t *testing.T) {
	m := newMockStores()
	service := newLoanService(m, true)
	ctx := context.Background()

	loan := pendingVerificationLoan("123456", time.Now().Add(-time.Minute))
	m.loans.On("GetByIDForUpdate", ctx, "loan-1").Return(loan, nil)
	m.transactions.On("FindPendingConfirmation", ctx, "loan-1").Return(nil, nil)

	confirmed, err := service.ConfirmWithOTP(ctx, "loan-1", "123456", "member-1")

	assert.Nil(t, confirmed)
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredOTP)
	m.loans.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLoanService_ConfirmWithOTP_AlreadyInProgress(t *testing.T) {
	m := newMockStores()
	service := newLoanService(m, true)
	ctx := context.Background()

	loan := pendingVerificationLoan("123456", time.Now().Add(3*time.Minute))
	m.loans.On("GetByIDForUpdate", ctx, "loan-1").Return(loan, nil)
	m.transactions.On("FindPendingConfirmation", ctx, "loan-1").Return(&models.Transaction{
		Type:   domain.TxTypePendingConfirmation,
		Status: domain.TxStatusPending,
	}, nil)

	confirmed, err := service.ConfirmWithOTP(ctx, "loan-1", "123456", "member-1")

	assert.Nil(t, confirmed)
	assert.ErrorIs(t, err, domain.ErrConfirmationInProgress)
	m.loans.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLoanService_ConfirmWithOTP_RaceLoserSeesInProgress(t *testing.T) {
	m := newMockStores()
	service := newLoanService(m, true)
	ctx := context.Background()

	// The winning confirm already advanced the loan and cleared the OTP.
	// The loser, unblocked after the row lock, must read as a confirmation
	// in progress rather than a bad code.
	won := pendingLoan()
	m.loans.On("GetByIDForUpdate", ctx, "loan-1").Return(won, nil)
	m.transactions.On("FindPendingConfirmation", ctx, "loan-1").Return(&models.Transaction{
		Type:   domain.TxTypePendingConfirmation,
		Status: domain.TxStatusPending,
	}, nil)

	confirmed, err := service.ConfirmWithOTP(ctx, "loan-1", "123456", "member-1")

	assert.Nil(t, confirmed)
	assert.ErrorIs(t, err, domain.ErrConfirmationInProgress)
	m.loans.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLoanService_ConfirmWithOTP_OtherMembersLoan(t *testing.T) {
	m := newMockStores()
	service := newLoanService(m, true)
	ctx := context.Background()

	loan := pendingVerificationLoan("123456", time.Now().Add(3*time.Minute))
	m.loans.On("GetByIDForUpdate", ctx, "loan-1").Return(loan, nil)

	confirmed, err := service.ConfirmWithOTP(ctx, "loan-1", "123456", "member-2")

	assert.Nil(t, confirmed)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func pendingLoan() *models.Loan {
	return &models.Loan{
		ID:        "loan-1",
		MemberID:  "member-1",
		Amount:    decimal.NewFromInt(600000),
		Status:    domain.LoanStatusPending,
		Reference: "LN-1756600000000-ABC123",
	}
}

func TestLoanService_Approve(t *testing.T) {
	m := newMockStores()
	service := newLoanService(m, true)
	ctx := context.Background()

	m.loans.On("GetByIDForUpdate", ctx, "loan-1").Return(pendingLoan(), nil)
	m.loans.On("Update", ctx, mock.MatchedBy(func(loan *models.Loan) bool {
		return loan.Status == domain.LoanStatusApproved &&
			loan.ApprovedAmount.Equal(decimal.NewFromInt(600000)) &&
			loan.ApprovedByID != nil && *loan.ApprovedByID == "admin-1"
	})).Return(nil)
	m.transactions.On("Create", ctx, mock.MatchedBy(func(entry *models.Transaction) bool {
		return entry.Type == domain.TxTypeLoanDisbursement &&
			entry.Status == domain.TxStatusCompleted &&
			entry.Amount.Equal(decimal.NewFromInt(600000))
	})).Return(nil)

	result, err := service.Approve(ctx, "loan-1", "admin-1")

	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusApproved, result.Loan.Status)
	assert.Equal(t, domain.TxTypeLoanDisbursement, result.Transaction.Type)
	m.loans.AssertExpectations(t)
	m.transactions.AssertExpectations(t)
}

func TestLoanService_Approve_NotPending(t *testing.T) {
	m := newMockStores()
	service := newLoanService(m, true)
	ctx := context.Background()

	approved := pendingLoan()
	approved.Status = domain.LoanStatusApproved
	m.loans.On("GetByIDForUpdate", ctx, "loan-1").Return(approved, nil)

	result, err := service.Approve(ctx, "loan-1", "admin-1")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrLoanNotPending)
	m.loans.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoanService_Reject_DefaultReason(t *testing.T) {
	m := newMockStores()
	service := newLoanService(m, true)
	ctx := context.Background()

	m.loans.On("GetByIDForUpdate", ctx, "loan-1").Return(pendingLoan(), nil)
	m.loans.On("Update", ctx, mock.MatchedBy(func(loan *models.Loan) bool {
		return loan.Status == domain.LoanStatusRejected &&
			loan.RejectedByID != nil && *loan.RejectedByID == "admin-1"
	})).Return(nil)
	m.transactions.On("Create", ctx, mock.MatchedBy(func(entry *models.Transaction) bool {
		return entry.Type == domain.TxTypeLoanRejected &&
			entry.Description == "Loan rejected: No reason provided"
	})).Return(nil)

	result, err := service.Reject(ctx, "loan-1", "admin-1", "")

	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusRejected, result.Loan.Status)
	m.loans.AssertExpectations(t)
	m.transactions.AssertExpectations(t)
}
