package services

import (
	"context"
	"time"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/repositories"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// stubTransactor runs the callback against a fixed set of stores without a
// real database transaction
type stubTransactor struct {
	stores *repositories.Stores
}

func (t *stubTransactor) WithinTransaction(ctx context.Context, fn func(s *repositories.Stores) error) error {
	return fn(t.stores)
}

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *models.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) GetByServiceNumber(ctx context.Context, serviceNumber string) (*models.Member, error) {
	args := m.Called(ctx, serviceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) GetForUnderwriting(ctx context.Context, id string, since time.Time) (*models.Member, error) {
	args := m.Called(ctx, id, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) List(ctx context.Context, filter repositories.MemberFilter) ([]*models.Member, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Member), args.Get(1).(int64), args.Error(2)
}

func (m *MockMemberRepository) UpdateStatus(ctx context.Context, id string, status domain.MemberStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdatePin(ctx context.Context, id, hashedPin string) error {
	args := m.Called(ctx, id, hashedPin)
	return args.Error(0)
}

func (m *MockMemberRepository) CreateTermination(ctx context.Context, t *models.Termination) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockMemberRepository) ListTerminations(ctx context.Context) ([]*models.Termination, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Termination), args.Error(1)
}

func (m *MockMemberRepository) AddToTotalSavings(ctx context.Context, id string, delta decimal.Decimal) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdateMonthlyDeduction(ctx context.Context, id string, amount decimal.Decimal) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id string) (*models.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetByIDForMember(ctx context.Context, id, memberID string) (*models.Loan, error) {
	args := m.Called(ctx, id, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListBlocking(ctx context.Context, memberID string) ([]*models.Loan, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListByMember(ctx context.Context, memberID string) ([]*models.Loan, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListAll(ctx context.Context) ([]*models.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListDueRepayments(ctx context.Context, start, end time.Time) ([]*models.Repayment, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Repayment), args.Error(1)
}

func (m *MockLoanRepository) Update(ctx context.Context, loan *models.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) SumAmountByCategory(ctx context.Context, memberID string) ([]repositories.CategoryAmount, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.CategoryAmount), args.Error(1)
}

type MockLoanCategoryRepository struct {
	mock.Mock
}

func (m *MockLoanCategoryRepository) Create(ctx context.Context, category *models.LoanCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockLoanCategoryRepository) GetByName(ctx context.Context, name domain.LoanName) (*models.LoanCategory, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoanCategory), args.Error(1)
}

func (m *MockLoanCategoryRepository) List(ctx context.Context) ([]*models.LoanCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LoanCategory), args.Error(1)
}

func (m *MockLoanCategoryRepository) ListActive(ctx context.Context) ([]*models.LoanCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LoanCategory), args.Error(1)
}

func (m *MockLoanCategoryRepository) SetActive(ctx context.Context, name domain.LoanName, active bool) error {
	args := m.Called(ctx, name, active)
	return args.Error(0)
}

type MockRankTermRepository struct {
	mock.Mock
}

func (m *MockRankTermRepository) CreateCompensation(ctx context.Context, rc *models.RankCompensation) error {
	args := m.Called(ctx, rc)
	return args.Error(0)
}

func (m *MockRankTermRepository) GetCompensation(ctx context.Context, rank domain.Rank) (*models.RankCompensation, error) {
	args := m.Called(ctx, rank)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RankCompensation), args.Error(1)
}

func (m *MockRankTermRepository) FindRegularTerm(ctx context.Context, rank domain.Rank, durationMonths int) (*models.RegularLoanTerm, error) {
	args := m.Called(ctx, rank, durationMonths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RegularLoanTerm), args.Error(1)
}

func (m *MockRankTermRepository) FindCategoryEligibility(ctx context.Context, rank domain.Rank, categoryID string) (*models.RankCategoryEligibility, error) {
	args := m.Called(ctx, rank, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RankCategoryEligibility), args.Error(1)
}

type MockSavingsRepository struct {
	mock.Mock
}

func (m *MockSavingsRepository) Create(ctx context.Context, saving *models.Saving) error {
	args := m.Called(ctx, saving)
	return args.Error(0)
}

func (m *MockSavingsRepository) GetCategoryByType(ctx context.Context, t domain.SavingType) (*models.SavingCategory, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavingCategory), args.Error(1)
}

func (m *MockSavingsRepository) GetCategoryByID(ctx context.Context, id string) (*models.SavingCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavingCategory), args.Error(1)
}

func (m *MockSavingsRepository) CreateCategory(ctx context.Context, category *models.SavingCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockSavingsRepository) SumByCategory(ctx context.Context, memberID string) ([]repositories.CategoryAmount, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.CategoryAmount), args.Error(1)
}

func (m *MockSavingsRepository) ListAll(ctx context.Context) ([]*models.Saving, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Saving), args.Error(1)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindPendingConfirmation(ctx context.Context, loanID string) (*models.Transaction, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByMember(ctx context.Context, memberID string, start, end *time.Time) ([]*models.Transaction, error) {
	args := m.Called(ctx, memberID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListPayments(ctx context.Context, filter repositories.PaymentFilter) ([]*models.Transaction, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) SummarizeByType(ctx context.Context, filter repositories.PaymentFilter) ([]repositories.TypeSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.TypeSummary), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// mockStores bundles fresh mocks into a Stores value for service tests
type mockStores struct {
	members      *MockMemberRepository
	loans        *MockLoanRepository
	categories   *MockLoanCategoryRepository
	rankTerms    *MockRankTermRepository
	savings      *MockSavingsRepository
	transactions *MockTransactionRepository
	users        *MockUserRepository
	stores       *repositories.Stores
}

func newMockStores() *mockStores {
	m := &mockStores{
		members:      &MockMemberRepository{},
		loans:        &MockLoanRepository{},
		categories:   &MockLoanCategoryRepository{},
		rankTerms:    &MockRankTermRepository{},
		savings:      &MockSavingsRepository{},
		transactions: &MockTransactionRepository{},
		users:        &MockUserRepository{},
	}
	m.stores = &repositories.Stores{
		Members:      m.members,
		Loans:        m.loans,
		Categories:   m.categories,
		RankTerms:    m.rankTerms,
		Savings:      m.savings,
		Transactions: m.transactions,
		Users:        m.users,
	}
	return m
}
