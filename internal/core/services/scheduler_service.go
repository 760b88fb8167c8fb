package services

import (
	"context"
	"log"
	"time"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// reminderWindowDays is how far ahead the due-date sweep looks
const reminderWindowDays = 3

// SchedulerService runs the recurring background sweeps: upcoming-payment
// reminders and overdue notices. Sweeps only read schedules and dispatch
// notifications; they never mutate loans.
type SchedulerService struct {
	stores *repositories.Stores
	notify *NotificationService
	cron   *cron.Cron
}

// NewSchedulerService creates a new scheduler service
func NewSchedulerService(stores *repositories.Stores, notify *NotificationService) *SchedulerService {
	return &SchedulerService{
		stores: stores,
		notify: notify,
		cron:   cron.New(cron.WithSeconds()),
	}
}

// Start schedules the sweeps and launches the cron runner. Reminders fire
// daily at 09:00, overdue notices at midnight.
func (s *SchedulerService) Start() {
	if _, err := s.cron.AddFunc("0 0 9 * * *", func() {
		count, err := s.SendPaymentReminders(context.Background())
		if err != nil {
			log.Printf("❌ Payment reminder sweep error: %v", err)
			return
		}
		if count > 0 {
			log.Printf("📅 Sent %d payment reminders", count)
		}
	}); err != nil {
		log.Printf("❌ Failed to schedule payment reminder sweep: %v", err)
	}

	if _, err := s.cron.AddFunc("0 0 0 * * *", func() {
		count, err := s.SendOverdueNotices(context.Background())
		if err != nil {
			log.Printf("❌ Overdue notice sweep error: %v", err)
			return
		}
		if count > 0 {
			log.Printf("⚠️ Sent %d overdue notices", count)
		}
	}); err != nil {
		log.Printf("❌ Failed to schedule overdue notice sweep: %v", err)
	}

	s.cron.Start()
	log.Println("🚀 Scheduler started")
}

// Stop stops the cron runner and waits for running sweeps to finish
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Scheduler stopped")
}

// SendPaymentReminders notifies members with installments coming due within
// the reminder window. Returns the number of reminders dispatched.
func (s *SchedulerService) SendPaymentReminders(ctx context.Context) (int, error) {
	now := time.Now()
	repayments, err := s.stores.Loans.ListDueRepayments(ctx, now, now.AddDate(0, 0, reminderWindowDays))
	if err != nil {
		return 0, err
	}

	count := 0
	for _, repayment := range repayments {
		if repayment.Loan == nil {
			continue
		}
		s.notify.PaymentDue(repayment.Loan.MemberID, repayment.LoanID, repayment.Amount, repayment.DueDate)
		count++
	}
	return count, nil
}

// SendOverdueNotices notifies members with installments past their due date.
// Returns the number of notices dispatched.
func (s *SchedulerService) SendOverdueNotices(ctx context.Context) (int, error) {
	now := time.Now()
	repayments, err := s.stores.Loans.ListDueRepayments(ctx, now.AddDate(-1, 0, 0), now)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, repayment := range repayments {
		if repayment.Loan == nil {
			continue
		}
		daysPastDue := int(now.Sub(repayment.DueDate).Hours() / 24)
		s.notify.PaymentOverdue(repayment.Loan.MemberID, repayment.LoanID, repayment.Amount, daysPastDue)
		count++
	}
	return count, nil
}
