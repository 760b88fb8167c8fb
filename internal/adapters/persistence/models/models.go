package models

import (
	"time"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Identity Tables
// ============================================================

// User represents cooperative staff (administrators and officers)
type User struct {
	ID        string         `gorm:"type:char(36);primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	FullName  string         `gorm:"size:150;not null" json:"full_name"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      domain.Role    `gorm:"size:20;default:'ADMIN'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Member represents a cooperative member (personnel or civilian)
type Member struct {
	ID               string              `gorm:"type:char(36);primaryKey" json:"id"`
	Email            string              `gorm:"uniqueIndex;size:100;not null" json:"email"`
	FirstName        string              `gorm:"size:100;not null" json:"first_name"`
	LastName         string              `gorm:"size:100;not null" json:"last_name"`
	Phone            string              `gorm:"size:20" json:"phone"`
	Type             domain.MemberType   `gorm:"size:20;not null;index" json:"type"`
	ServiceNumber    *string             `gorm:"size:30;uniqueIndex" json:"service_number,omitempty"`
	Rank             *domain.Rank        `gorm:"size:20" json:"rank,omitempty"`
	Unit             string              `gorm:"size:100" json:"unit,omitempty"`
	Status           domain.MemberStatus `gorm:"size:15;not null;default:'PENDING';index" json:"status"`
	Password         string              `gorm:"size:255;not null" json:"-"`
	Pin              string              `gorm:"size:255;not null" json:"-"`
	TotalSavings     decimal.Decimal     `gorm:"type:decimal(15,2);not null;default:0" json:"total_savings"`
	MonthlyDeduction decimal.Decimal     `gorm:"type:decimal(15,2);not null;default:0" json:"monthly_deduction"`
	CreatedAt        time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relations
	Savings      []Saving      `gorm:"foreignKey:MemberID" json:"savings,omitempty"`
	Loans        []Loan        `gorm:"foreignKey:MemberID" json:"loans,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:MemberID" json:"transactions,omitempty"`
}

func (Member) TableName() string {
	return "members"
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// IsPersonnel reports whether the member is salaried personnel
func (m *Member) IsPersonnel() bool {
	return m.Type == domain.MemberTypePersonnel
}

// FullName joins the member's names for display
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// ============================================================
// Loan Master Tables
// ============================================================

// LoanCategory is a loan product. REGULAR carries no flat terms of its own;
// the nullable columns stay NULL and rank tiers apply instead.
type LoanCategory struct {
	ID           string           `gorm:"type:char(36);primaryKey" json:"id"`
	Name         domain.LoanName  `gorm:"size:20;uniqueIndex;not null" json:"name"`
	Description  string           `gorm:"type:text" json:"description"`
	InterestRate *decimal.Decimal `gorm:"type:decimal(5,2)" json:"interest_rate"`
	MinAmount    *decimal.Decimal `gorm:"type:decimal(15,2)" json:"min_amount"`
	MaxAmount    *decimal.Decimal `gorm:"type:decimal(15,2)" json:"max_amount"`
	MinDuration  *int             `json:"min_duration"` // days
	MaxDuration  *int             `json:"max_duration"` // days
	IsActive     bool             `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LoanCategory) TableName() string {
	return "loan_categories"
}

func (c *LoanCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// RankCompensation holds per-rank underwriting configuration
type RankCompensation struct {
	ID                   string          `gorm:"type:char(36);primaryKey" json:"id"`
	Name                 domain.Rank     `gorm:"size:20;uniqueIndex;not null" json:"name"`
	MinimumSavingAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"minimum_saving_amount"`
	MaximumLoanDeduction decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"maximum_loan_deduction"`
	LowestSalaryRange    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"lowest_salary_range"`
	CreatedAt            time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	LoanTerms          []RegularLoanTerm         `gorm:"foreignKey:RankCompensationID" json:"loan_terms,omitempty"`
	EligibleCategories []RankCategoryEligibility `gorm:"foreignKey:RankCompensationID" json:"eligible_categories,omitempty"`
}

func (RankCompensation) TableName() string {
	return "rank_compensations"
}

func (r *RankCompensation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// RegularLoanTerm is one duration bucket of the REGULAR product for a rank.
// At most one term exists per (rank, duration).
type RegularLoanTerm struct {
	ID                 string          `gorm:"type:char(36);primaryKey" json:"id"`
	RankCompensationID string          `gorm:"type:char(36);not null;uniqueIndex:idx_rank_duration" json:"rank_compensation_id"`
	LoanCategoryID     string          `gorm:"type:char(36);not null" json:"loan_category_id"`
	DurationMonths     int             `gorm:"not null;uniqueIndex:idx_rank_duration" json:"duration_months"`
	MaximumAmount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"maximum_amount"`
	InterestRate       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	RankCompensation *RankCompensation `gorm:"foreignKey:RankCompensationID" json:"rank_compensation,omitempty"`
	LoanCategory     *LoanCategory     `gorm:"foreignKey:LoanCategoryID" json:"loan_category,omitempty"`
}

func (RegularLoanTerm) TableName() string {
	return "regular_loan_terms"
}

func (t *RegularLoanTerm) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// RankCategoryEligibility is the minimum eligible amount per fixed category
// for a rank
type RankCategoryEligibility struct {
	ID                 string          `gorm:"type:char(36);primaryKey" json:"id"`
	RankCompensationID string          `gorm:"type:char(36);not null;index" json:"rank_compensation_id"`
	LoanCategoryID     string          `gorm:"type:char(36);not null;index" json:"loan_category_id"`
	MinEligibleAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"min_eligible_amount"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	RankCompensation *RankCompensation `gorm:"foreignKey:RankCompensationID" json:"rank_compensation,omitempty"`
	LoanCategory     *LoanCategory     `gorm:"foreignKey:LoanCategoryID" json:"loan_category,omitempty"`
}

func (RankCategoryEligibility) TableName() string {
	return "rank_category_eligibilities"
}

func (e *RankCategoryEligibility) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// ============================================================
// Loan Tables
// ============================================================

// Loan is a member's loan. Created by the origination workflow, mutated
// only by lifecycle transitions, never hard-deleted.
type Loan struct {
	ID             string            `gorm:"type:char(36);primaryKey" json:"id"`
	MemberID       string            `gorm:"type:char(36);not null;index" json:"member_id"`
	CategoryID     string            `gorm:"type:char(36);not null;index" json:"category_id"`
	Amount         decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"amount"`
	InterestRate   decimal.Decimal   `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	DurationMonths int               `gorm:"not null" json:"duration_months"`
	ApprovedAmount decimal.Decimal   `gorm:"type:decimal(15,2);not null;default:0" json:"approved_amount"`
	Status         domain.LoanStatus `gorm:"size:25;not null;index" json:"status"`
	OTP            *string           `gorm:"size:10" json:"-"`
	OTPExpiresAt   *time.Time        `json:"-"`
	Reference      string            `gorm:"size:40;uniqueIndex;not null" json:"reference"`
	ApprovedByID   *string           `gorm:"type:char(36)" json:"approved_by_id"`
	RejectedByID   *string           `gorm:"type:char(36)" json:"rejected_by_id"`
	StartDate      *time.Time        `json:"start_date"`
	EndDate        *time.Time        `json:"end_date"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Member     *Member       `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Category   *LoanCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ApprovedBy *User         `gorm:"foreignKey:ApprovedByID" json:"approved_by,omitempty"`
	RejectedBy *User         `gorm:"foreignKey:RejectedByID" json:"rejected_by,omitempty"`
	Repayments []Repayment   `gorm:"foreignKey:LoanID" json:"repayments,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

func (l *Loan) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Repayment is a single installment of a loan's schedule
type Repayment struct {
	ID        string                 `gorm:"type:char(36);primaryKey" json:"id"`
	LoanID    string                 `gorm:"type:char(36);not null;index" json:"loan_id"`
	Amount    decimal.Decimal        `gorm:"type:decimal(15,2);not null" json:"amount"`
	DueDate   time.Time              `gorm:"not null" json:"due_date"`
	Status    domain.RepaymentStatus `gorm:"size:10;not null;default:'PENDING'" json:"status"`
	PaidAt    *time.Time             `json:"paid_at"`
	CreatedAt time.Time              `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Loan *Loan `gorm:"foreignKey:LoanID" json:"loan,omitempty"`
}

func (Repayment) TableName() string {
	return "repayments"
}

func (r *Repayment) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// ============================================================
// Savings Tables
// ============================================================

// SavingCategory is a savings product
type SavingCategory struct {
	ID           string            `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string            `gorm:"size:50;not null" json:"name"`
	Type         domain.SavingType `gorm:"size:20;uniqueIndex;not null" json:"type"`
	InterestRate decimal.Decimal   `gorm:"type:decimal(5,2);not null;default:0" json:"interest_rate"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (SavingCategory) TableName() string {
	return "saving_categories"
}

func (c *SavingCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Saving is a single deposit (positive amount) or withdrawal (negative)
type Saving struct {
	ID         string                   `gorm:"type:char(36);primaryKey" json:"id"`
	MemberID   string                   `gorm:"type:char(36);not null;index" json:"member_id"`
	CategoryID string                   `gorm:"type:char(36);not null;index" json:"category_id"`
	Amount     decimal.Decimal          `gorm:"type:decimal(15,2);not null" json:"amount"`
	Reference  string                   `gorm:"size:40;uniqueIndex;not null" json:"reference"`
	Status     domain.TransactionStatus `gorm:"size:15;not null;default:'COMPLETED'" json:"status"`
	CreatedAt  time.Time                `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Member   *Member         `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Category *SavingCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Saving) TableName() string {
	return "savings"
}

func (s *Saving) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ============================================================
// Ledger Table
// ============================================================

// Transaction is an append-only ledger entry mirroring every monetary
// movement. Never mutated after creation except status finalization.
type Transaction struct {
	ID          string                   `gorm:"type:char(36);primaryKey" json:"id"`
	MemberID    *string                  `gorm:"type:char(36);index" json:"member_id"`
	LoanID      *string                  `gorm:"type:char(36);index" json:"loan_id"`
	SavingID    *string                  `gorm:"type:char(36);index" json:"saving_id"`
	Type        domain.TransactionType   `gorm:"size:30;not null;index" json:"type"`
	Amount      decimal.Decimal          `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status      domain.TransactionStatus `gorm:"size:15;not null" json:"status"`
	Reference   string                   `gorm:"size:40;index" json:"reference"`
	Description string                   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time                `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Loan   *Loan   `gorm:"foreignKey:LoanID" json:"loan,omitempty"`
	Saving *Saving `gorm:"foreignKey:SavingID" json:"saving,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// ============================================================
// Notification Table
// ============================================================

// Notification is a persisted member notification
type Notification struct {
	ID         string                    `gorm:"type:char(36);primaryKey" json:"id"`
	MemberID   string                    `gorm:"type:char(36);not null;index" json:"member_id"`
	Title      string                    `gorm:"size:150;not null" json:"title"`
	Message    string                    `gorm:"type:text;not null" json:"message"`
	Type       domain.NotificationType   `gorm:"size:15;not null" json:"type"`
	ActionType string                    `gorm:"size:50" json:"action_type"`
	ActionID   *string                   `gorm:"type:char(36)" json:"action_id"`
	Status     domain.NotificationStatus `gorm:"size:15;not null;default:'UNREAD'" json:"status"`
	CreatedAt  time.Time                 `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time                 `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// ============================================================
// Termination Table
// ============================================================

// Termination is a member's request to leave the cooperative
type Termination struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	MemberID  string    `gorm:"type:char(36);not null;index" json:"member_id"`
	Reason    string    `gorm:"type:text;not null" json:"reason"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Termination) TableName() string {
	return "terminations"
}

func (t *Termination) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity
		&User{},
		&Member{},
		// Loan masters
		&LoanCategory{},
		&RankCompensation{},
		&RegularLoanTerm{},
		&RankCategoryEligibility{},
		// Loans
		&Loan{},
		&Repayment{},
		// Savings
		&SavingCategory{},
		&Saving{},
		// Ledger
		&Transaction{},
		// Notifications
		&Notification{},
		// Terminations
		&Termination{},
	)
}
