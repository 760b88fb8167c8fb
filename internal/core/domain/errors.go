package domain

import (
	"errors"
	"strings"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTransientStore marks timeouts and contention against the
	// persistence layer. Callers may retry with the same inputs.
	ErrTransientStore = errors.New("transient store error")

	// ErrInvariantViolation marks states the core should never reach,
	// e.g. a resolved category missing at confirmation time.
	ErrInvariantViolation = errors.New("invariant violation")
)

// Member errors
var (
	ErrMemberNotFound        = errors.New("member not found")
	ErrInvalidPin            = errors.New("invalid PIN")
	ErrMemberNotApproved     = errors.New("member has not been approved")
	ErrMemberAlreadyApproved = errors.New("member approved already")
	ErrMemberAlreadyRejected = errors.New("member rejected already")
)

// Loan errors
var (
	ErrMissingFields          = errors.New("missing required fields in loan application")
	ErrLoanNotFound           = errors.New("loan not found")
	ErrCategoryNotFound       = errors.New("loan category not found")
	ErrTermUnavailable        = errors.New("requested loan product is not available")
	ErrInvalidOrExpiredOTP    = errors.New("invalid or expired OTP")
	ErrConfirmationInProgress = errors.New("loan confirmation already in progress")
	ErrLoanNotPending         = errors.New("only pending loans can be processed")
)

// Savings errors
var (
	ErrSavingCategoryNotFound = errors.New("savings category doesn't exist")
	ErrDepositBelowMinimum    = errors.New("you cannot deposit less than the minimum amount")
	ErrWithdrawalLocked       = errors.New("you cannot withdraw this yet")
	ErrInsufficientSavings    = errors.New("insufficient savings balance")
	ErrNonPositiveAmount      = errors.New("amount must be greater than zero")
)

// EligibilityError carries every failed underwriting check. It is a
// business-rule failure, never retried automatically.
type EligibilityError struct {
	Reasons []string
}

func (e *EligibilityError) Error() string {
	return strings.Join(e.Reasons, ". ")
}

// NewEligibilityError builds an EligibilityError from collected reasons
func NewEligibilityError(reasons []string) *EligibilityError {
	return &EligibilityError{Reasons: reasons}
}

// AsEligibilityError unwraps an EligibilityError if err carries one
func AsEligibilityError(err error) (*EligibilityError, bool) {
	var ee *EligibilityError
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}
