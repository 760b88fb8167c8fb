package domain

// Role represents an authenticated identity's role
type Role string

const (
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
)

// MemberType distinguishes salaried personnel from civilian members
type MemberType string

const (
	MemberTypePersonnel MemberType = "PERSONNEL"
	MemberTypeCivilian  MemberType = "CIVILIAN"
)

// MemberStatus is the membership-gating state. New registrations start
// PENDING and must be approved by an administrator before they can log in.
type MemberStatus string

const (
	MemberStatusPending  MemberStatus = "PENDING"
	MemberStatusApproved MemberStatus = "APPROVED"
	MemberStatusRejected MemberStatus = "REJECTED"
)

// Rank is the fixed set of personnel ranks carried by the cooperative
type Rank string

const (
	RankACM     Rank = "ACM"
	RankLCPL    Rank = "LCPL"
	RankCPL     Rank = "CPL"
	RankSGT     Rank = "SGT"
	RankFS      Rank = "FS"
	RankWO      Rank = "WO"
	RankMWO     Rank = "MWO"
	RankAWO     Rank = "AWO"
	RankPltOffr Rank = "PLT_OFFR"
	RankFgOffr  Rank = "FG_OFFR"
	RankFltLt   Rank = "FLT_LT"
	RankSqnLdr  Rank = "SQN_LDR"
	RankWgCdr   Rank = "WG_CDR"
	RankGpCapt  Rank = "GP_CAPT"
	RankAirCdre Rank = "AIR_CDRE"
	RankAVM     Rank = "AVM"
)

// LoanName is the closed set of loan products
type LoanName string

const (
	LoanNameRegular   LoanName = "REGULAR"
	LoanNameEmergency LoanName = "EMERGENCY"
	LoanNameHome      LoanName = "HOME"
	LoanNameCommodity LoanName = "COMMODITY"
	LoanNameHousing   LoanName = "HOUSING"
)

// LoanNames lists every valid loan category name
func LoanNames() []LoanName {
	return []LoanName{
		LoanNameRegular,
		LoanNameEmergency,
		LoanNameHome,
		LoanNameCommodity,
		LoanNameHousing,
	}
}

// IsValid reports whether the name is one of the enumerated loan products
func (n LoanName) IsValid() bool {
	switch n {
	case LoanNameRegular, LoanNameEmergency, LoanNameHome, LoanNameCommodity, LoanNameHousing:
		return true
	}
	return false
}

// IsRegular reports whether this is the rank-tiered product
func (n LoanName) IsRegular() bool {
	return n == LoanNameRegular
}

// LoanStatus is the loan lifecycle state machine
//
// PENDING_VERIFICATION -> PENDING -> {APPROVED | REJECTED}
// APPROVED -> DISBURSED -> ACTIVE -> {COMPLETED | DEFAULTED}
type LoanStatus string

const (
	LoanStatusPendingVerification LoanStatus = "PENDING_VERIFICATION"
	LoanStatusPending             LoanStatus = "PENDING"
	LoanStatusApproved            LoanStatus = "APPROVED"
	LoanStatusRejected            LoanStatus = "REJECTED"
	LoanStatusDisbursed           LoanStatus = "DISBURSED"
	LoanStatusActive              LoanStatus = "ACTIVE"
	LoanStatusCompleted           LoanStatus = "COMPLETED"
	LoanStatusDefaulted           LoanStatus = "DEFAULTED"
)

// BlockingLoanStatuses are the states in which an existing loan prevents a
// member from opening a new application. DISBURSED is produced by the
// disbursement collaborator, not by this core, but it still blocks.
func BlockingLoanStatuses() []LoanStatus {
	return []LoanStatus{
		LoanStatusActive,
		LoanStatusPending,
		LoanStatusPendingVerification,
		LoanStatusApproved,
		LoanStatusDisbursed,
	}
}

// RepaymentStatus is the state of a single installment
type RepaymentStatus string

const (
	RepaymentStatusPending RepaymentStatus = "PENDING"
	RepaymentStatusPaid    RepaymentStatus = "PAID"
)

// TransactionType classifies ledger entries
type TransactionType string

const (
	TxTypeSavingsDeposit    TransactionType = "SAVINGS_DEPOSIT"
	TxTypeSavingsWithdrawal TransactionType = "SAVINGS_WITHDRAWAL"
	TxTypeLoanDisbursement  TransactionType = "LOAN_DISBURSEMENT"
	TxTypeLoanRepayment     TransactionType = "LOAN_REPAYMENT"
	TxTypeLoanRejected      TransactionType = "LOAN_REJECTED"

	// TxTypePendingConfirmation marks the ledger entry written when a loan
	// application is verified via OTP. Its presence doubles as the
	// idempotency guard against concurrent confirmations.
	TxTypePendingConfirmation TransactionType = "PENDING"
)

// TransactionStatus is the settlement state of a ledger entry
type TransactionStatus string

const (
	TxStatusPending   TransactionStatus = "PENDING"
	TxStatusCompleted TransactionStatus = "COMPLETED"
	TxStatusFailed    TransactionStatus = "FAILED"
)

// SavingType is the closed set of savings products
type SavingType string

const (
	SavingTypeQuick       SavingType = "QUICK"
	SavingTypeCooperative SavingType = "COOPERATIVE"
)

// IsValid reports whether the type is an enumerated savings product
func (t SavingType) IsValid() bool {
	return t == SavingTypeQuick || t == SavingTypeCooperative
}

// NotificationType classifies member notifications
type NotificationType string

const (
	NotifySuccess NotificationType = "SUCCESS"
	NotifyInfo    NotificationType = "INFO"
	NotifyWarning NotificationType = "WARNING"
	NotifyError   NotificationType = "ERROR"
)

// NotificationStatus is the read state of a notification
type NotificationStatus string

const (
	NotificationUnread   NotificationStatus = "UNREAD"
	NotificationRead     NotificationStatus = "READ"
	NotificationArchived NotificationStatus = "ARCHIVED"
)
