package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/repositories"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"

	"github.com/shopspring/decimal"
)

// NotificationService persists member notifications. Dispatch from the loan
// and savings workflows is fire and forget: failures are logged, never
// propagated into the calling transaction.
type NotificationService struct {
	repo repositories.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) dispatch(n *models.Notification) {
	if s == nil || s.repo == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.Create(ctx, n); err != nil {
			log.Printf("⚠️ Failed to create notification for member %s: %v", n.MemberID, err)
		}
	}()
}

// LoanApplied notifies a member that their application was received
func (s *NotificationService) LoanApplied(memberID, loanID string, amount decimal.Decimal, category domain.LoanName) {
	s.dispatch(&models.Notification{
		MemberID:   memberID,
		Title:      "Loan Application Received",
		Message:    fmt.Sprintf("Your %s loan application for ₦%s has been received and is awaiting verification.", category, amount),
		Type:       domain.NotifyInfo,
		ActionType: "LOAN_APPLICATION",
		ActionID:   &loanID,
	})
}

// LoanDecided notifies a member of an approve or reject decision
func (s *NotificationService) LoanDecided(memberID, loanID string, amount decimal.Decimal, status domain.LoanStatus) {
	notifyType := domain.NotifySuccess
	title := "Loan Approved"
	message := fmt.Sprintf("Your loan of ₦%s has been approved.", amount)
	if status == domain.LoanStatusRejected {
		notifyType = domain.NotifyError
		title = "Loan Rejected"
		message = fmt.Sprintf("Your loan application for ₦%s has been rejected.", amount)
	}

	s.dispatch(&models.Notification{
		MemberID:   memberID,
		Title:      title,
		Message:    message,
		Type:       notifyType,
		ActionType: "LOAN_DECISION",
		ActionID:   &loanID,
	})
}

// SavingsPosted notifies a member that a deposit or withdrawal settled
func (s *NotificationService) SavingsPosted(memberID, savingID string, amount decimal.Decimal, txType domain.TransactionType) {
	title := "Deposit Successful"
	message := fmt.Sprintf("Your savings deposit of ₦%s has been recorded.", amount)
	if txType == domain.TxTypeSavingsWithdrawal {
		title = "Withdrawal Successful"
		message = fmt.Sprintf("Your withdrawal of ₦%s has been processed.", amount)
	}

	s.dispatch(&models.Notification{
		MemberID:   memberID,
		Title:      title,
		Message:    message,
		Type:       domain.NotifySuccess,
		ActionType: "SAVINGS",
		ActionID:   &savingID,
	})
}

// AccountActivated notifies a member that an administrator approved them
func (s *NotificationService) AccountActivated(memberID string) {
	s.dispatch(&models.Notification{
		MemberID:   memberID,
		Title:      "Account Activated 🎉",
		Message:    "Your account has been activated by an administrator.",
		Type:       domain.NotifySuccess,
		ActionType: "ACCOUNT_ACTIVATED",
	})
}

// PaymentDue reminds a member of an upcoming installment
func (s *NotificationService) PaymentDue(memberID, loanID string, amount decimal.Decimal, dueDate time.Time) {
	s.dispatch(&models.Notification{
		MemberID:   memberID,
		Title:      "Payment Reminder",
		Message:    fmt.Sprintf("Your loan payment of ₦%s is due on %s.", amount, dueDate.Format("02/01/2006")),
		Type:       domain.NotifyInfo,
		ActionType: "PAYMENT_DUE",
		ActionID:   &loanID,
	})
}

// PaymentOverdue warns a member about a missed installment
func (s *NotificationService) PaymentOverdue(memberID, loanID string, amount decimal.Decimal, daysPastDue int) {
	s.dispatch(&models.Notification{
		MemberID:   memberID,
		Title:      "Payment Overdue",
		Message:    fmt.Sprintf("Your payment of ₦%s is %d days overdue. Please make payment immediately.", amount, daysPastDue),
		Type:       domain.NotifyError,
		ActionType: "PAYMENT_OVERDUE",
		ActionID:   &loanID,
	})
}

// List returns a member's notifications, optionally filtered by read state
func (s *NotificationService) List(ctx context.Context, memberID string, limit, offset int, status domain.NotificationStatus) ([]*models.Notification, error) {
	return s.repo.ListByMember(ctx, memberID, limit, offset, status)
}

// CountUnread returns the member's unread notification count
func (s *NotificationService) CountUnread(ctx context.Context, memberID string) (int64, error) {
	return s.repo.CountUnread(ctx, memberID)
}

// MarkRead marks one of the member's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, id, memberID string) error {
	return s.repo.MarkRead(ctx, id, memberID)
}

// MarkAllRead marks every unread notification of the member as read
func (s *NotificationService) MarkAllRead(ctx context.Context, memberID string) error {
	return s.repo.MarkAllRead(ctx, memberID)
}
