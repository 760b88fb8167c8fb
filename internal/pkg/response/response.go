package response

import (
	"errors"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error:   message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// UnprocessableEntity sends a 422 response
func UnprocessableEntity(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnprocessableEntity, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusServiceUnavailable, message)
}

// FromDomainError maps a service layer error onto the matching HTTP status.
// Unknown errors become 500 with a generic message so internals never leak.
func FromDomainError(c *fiber.Ctx, err error) error {
	var elig *domain.EligibilityError
	if errors.As(err, &elig) {
		return UnprocessableEntity(c, elig.Error())
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrNonPositiveAmount),
		errors.Is(err, domain.ErrDepositBelowMinimum):
		return BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidPin),
		errors.Is(err, domain.ErrInvalidOrExpiredOTP),
		errors.Is(err, domain.ErrUnauthorized):
		return Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrWithdrawalLocked),
		errors.Is(err, domain.ErrMemberNotApproved):
		return Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrLoanNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrSavingCategoryNotFound):
		return NotFound(c, err.Error())
	case errors.Is(err, domain.ErrConfirmationInProgress),
		errors.Is(err, domain.ErrLoanNotPending),
		errors.Is(err, domain.ErrMemberAlreadyApproved),
		errors.Is(err, domain.ErrMemberAlreadyRejected):
		return Conflict(c, err.Error())
	case errors.Is(err, domain.ErrTermUnavailable),
		errors.Is(err, domain.ErrInsufficientSavings):
		return UnprocessableEntity(c, err.Error())
	case errors.Is(err, domain.ErrTransientStore):
		return ServiceUnavailable(c, "temporarily unable to process the request, please retry")
	default:
		return InternalServerError(c, "internal server error")
	}
}
