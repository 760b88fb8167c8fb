package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"

	"gorm.io/gorm"
)

// NewStores builds a Stores bundle over the given database handle, which
// may be the root connection or a transaction.
func NewStores(db *gorm.DB) *Stores {
	return &Stores{
		Members:       NewMemberRepository(db),
		Loans:         NewLoanRepository(db),
		Categories:    NewLoanCategoryRepository(db),
		RankTerms:     NewRankTermRepository(db),
		Savings:       NewSavingsRepository(db),
		Transactions:  NewTransactionRepository(db),
		Users:         NewUserRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}

// GormTransactor implements Transactor over GORM's transaction callback
type GormTransactor struct {
	db *gorm.DB
}

// NewGormTransactor creates a transactor bound to the root connection
func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

// WithinTransaction runs fn inside a database transaction. Timeouts and
// cancellations surface as a transient store error so callers can retry.
func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(s *Stores) error) error {
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStores(tx))
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", domain.ErrTransientStore, err)
	}
	return err
}
