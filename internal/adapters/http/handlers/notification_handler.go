package handlers

import (
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/http/middleware"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/services"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/pkg/pagination"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles member notification endpoints
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List lists the authenticated member's notifications
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	status := domain.NotificationStatus(c.Query("status"))

	notifications, err := h.notificationService.List(c.Context(), middleware.AccountID(c), params.Limit, params.Offset, status)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Notifications retrieved", notifications)
}

// UnreadCount returns the member's unread notification count
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.notificationService.CountUnread(c.Context(), middleware.AccountID(c))
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Unread count retrieved", fiber.Map{"count": count})
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "Notification id is required")
	}

	if err := h.notificationService.MarkRead(c.Context(), id, middleware.AccountID(c)); err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Notification marked as read", nil)
}

// MarkAllRead marks all of the member's notifications as read
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.notificationService.MarkAllRead(c.Context(), middleware.AccountID(c)); err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "All notifications marked as read", nil)
}
