package services

import (
	"context"
	"fmt"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/repositories"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/pkg/password"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/pkg/reference"

	"github.com/shopspring/decimal"
)

// MinDepositAmount is the smallest accepted savings deposit
var MinDepositAmount = decimal.NewFromInt(5000)

// SavingsService handles member savings deposits and withdrawals
type SavingsService struct {
	transactor repositories.Transactor
	stores     *repositories.Stores
	notify     *NotificationService
}

// NewSavingsService creates a new savings service
func NewSavingsService(transactor repositories.Transactor, stores *repositories.Stores, notify *NotificationService) *SavingsService {
	return &SavingsService{
		transactor: transactor,
		stores:     stores,
		notify:     notify,
	}
}

// DepositInput represents a savings deposit request
type DepositInput struct {
	MemberID     string            `json:"member_id" validate:"required"`
	CategoryName domain.SavingType `json:"category_name" validate:"required"`
	Amount       decimal.Decimal   `json:"amount" validate:"required"`
}

// AddSavings posts a deposit: a savings row, a ledger entry and the member
// balance increment share one transaction.
func (s *SavingsService) AddSavings(ctx context.Context, input *DepositInput) (*models.Saving, error) {
	if !input.CategoryName.IsValid() {
		return nil, fmt.Errorf("%w: category must be one of QUICK, COOPERATIVE", domain.ErrInvalidInput)
	}
	if input.Amount.LessThan(MinDepositAmount) {
		return nil, fmt.Errorf("%w: ₦%s", domain.ErrDepositBelowMinimum, MinDepositAmount)
	}

	var saving *models.Saving
	err := s.transactor.WithinTransaction(ctx, func(tx *repositories.Stores) error {
		category, err := tx.Savings.GetCategoryByType(ctx, input.CategoryName)
		if err != nil {
			return err
		}

		member, err := tx.Members.GetByID(ctx, input.MemberID)
		if err != nil {
			return err
		}

		ref, err := reference.ForSavings()
		if err != nil {
			return err
		}

		saving = &models.Saving{
			MemberID:   member.ID,
			CategoryID: category.ID,
			Amount:     input.Amount,
			Reference:  ref,
			Status:     domain.TxStatusCompleted,
		}
		if err := tx.Savings.Create(ctx, saving); err != nil {
			return err
		}

		entry := &models.Transaction{
			MemberID:    &member.ID,
			SavingID:    &saving.ID,
			Type:        domain.TxTypeSavingsDeposit,
			Amount:      input.Amount,
			Status:      domain.TxStatusCompleted,
			Reference:   ref,
			Description: fmt.Sprintf("Savings deposit to %s", category.Name),
		}
		if err := tx.Transactions.Create(ctx, entry); err != nil {
			return err
		}

		return tx.Members.AddToTotalSavings(ctx, member.ID, input.Amount)
	})
	if err != nil {
		return nil, err
	}

	s.notify.SavingsPosted(input.MemberID, saving.ID, input.Amount, domain.TxTypeSavingsDeposit)
	return saving, nil
}

// WithdrawInput represents a savings withdrawal request
type WithdrawInput struct {
	MemberID     string            `json:"member_id" validate:"required"`
	CategoryName domain.SavingType `json:"category_name" validate:"required"`
	Amount       decimal.Decimal   `json:"amount" validate:"required"`
	Pin          string            `json:"pin" validate:"required"`
}

// WithdrawSavings posts a withdrawal. COOPERATIVE savings are locked; the
// member's PIN must verify and the balance must cover the amount. The
// savings row stores a negated amount, the ledger entry the positive one.
func (s *SavingsService) WithdrawSavings(ctx context.Context, input *WithdrawInput) (*models.Saving, error) {
	if !input.CategoryName.IsValid() {
		return nil, fmt.Errorf("%w: category must be one of QUICK, COOPERATIVE", domain.ErrInvalidInput)
	}
	if input.CategoryName == domain.SavingTypeCooperative {
		return nil, domain.ErrWithdrawalLocked
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrNonPositiveAmount
	}

	var saving *models.Saving
	err := s.transactor.WithinTransaction(ctx, func(tx *repositories.Stores) error {
		category, err := tx.Savings.GetCategoryByType(ctx, input.CategoryName)
		if err != nil {
			return err
		}

		member, err := tx.Members.GetByID(ctx, input.MemberID)
		if err != nil {
			return err
		}

		if !password.Verify(input.Pin, member.Pin) {
			return domain.ErrInvalidPin
		}
		if member.TotalSavings.LessThan(input.Amount) {
			return domain.ErrInsufficientSavings
		}

		ref, err := reference.ForSavings()
		if err != nil {
			return err
		}

		saving = &models.Saving{
			MemberID:   member.ID,
			CategoryID: category.ID,
			Amount:     input.Amount.Neg(),
			Reference:  ref,
			Status:     domain.TxStatusCompleted,
		}
		if err := tx.Savings.Create(ctx, saving); err != nil {
			return err
		}

		entry := &models.Transaction{
			MemberID:    &member.ID,
			SavingID:    &saving.ID,
			Type:        domain.TxTypeSavingsWithdrawal,
			Amount:      input.Amount,
			Status:      domain.TxStatusCompleted,
			Reference:   ref,
			Description: fmt.Sprintf("Savings withdrawal from %s", category.Name),
		}
		if err := tx.Transactions.Create(ctx, entry); err != nil {
			return err
		}

		return tx.Members.AddToTotalSavings(ctx, member.ID, input.Amount.Neg())
	})
	if err != nil {
		return nil, err
	}

	s.notify.SavingsPosted(input.MemberID, saving.ID, input.Amount, domain.TxTypeSavingsWithdrawal)
	return saving, nil
}

// CategoryBalance is one savings product's share of a member's balance
type CategoryBalance struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
}

// SavingsBalance is the member's aggregated savings position
type SavingsBalance struct {
	TotalSavings       decimal.Decimal   `json:"total_savings"`
	MonthlyDeduction   decimal.Decimal   `json:"monthly_deduction"`
	QuickSavings       decimal.Decimal   `json:"quick_savings"`
	CooperativeSavings decimal.Decimal   `json:"cooperative_savings"`
	Details            []CategoryBalance `json:"details"`
}

// GetSavingsBalance aggregates the member's savings per category
func (s *SavingsService) GetSavingsBalance(ctx context.Context, memberID string) (*SavingsBalance, error) {
	member, err := s.stores.Members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	sums, err := s.stores.Savings.SumByCategory(ctx, memberID)
	if err != nil {
		return nil, err
	}

	balance := &SavingsBalance{
		TotalSavings:       member.TotalSavings,
		MonthlyDeduction:   member.MonthlyDeduction,
		QuickSavings:       decimal.Zero,
		CooperativeSavings: decimal.Zero,
		Details:            make([]CategoryBalance, 0, len(sums)),
	}

	for _, sum := range sums {
		category, err := s.stores.Savings.GetCategoryByID(ctx, sum.CategoryID)
		if err != nil {
			continue
		}
		balance.Details = append(balance.Details, CategoryBalance{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			Amount:       sum.Total,
		})
		switch category.Type {
		case domain.SavingTypeQuick:
			balance.QuickSavings = balance.QuickSavings.Add(sum.Total)
		case domain.SavingTypeCooperative:
			balance.CooperativeSavings = balance.CooperativeSavings.Add(sum.Total)
		}
	}

	return balance, nil
}

// EditDeduction updates the member's configured monthly deduction
func (s *SavingsService) EditDeduction(ctx context.Context, memberID string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domain.ErrNonPositiveAmount
	}
	if _, err := s.stores.Members.GetByID(ctx, memberID); err != nil {
		return err
	}
	return s.stores.Members.UpdateMonthlyDeduction(ctx, memberID, amount)
}

// GetAllSavings lists every savings row with member and category info
func (s *SavingsService) GetAllSavings(ctx context.Context) ([]*models.Saving, error) {
	return s.stores.Savings.ListAll(ctx)
}
