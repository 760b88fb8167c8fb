package handlers

import (
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/http/middleware"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/repositories"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/services"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/pkg/pagination"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member administration endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// List lists members with search, status filter and pagination (admin only)
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	members, total, err := h.memberService.GetAllMembers(c.Context(), repositories.MemberFilter{
		Search: c.Query("search"),
		Status: domain.MemberStatus(c.Query("status")),
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Members retrieved", fiber.Map{
		"members": members,
		"meta":    pagination.GetMeta(params, total),
	})
}

// Approve activates a pending member account (admin only)
func (h *MemberHandler) Approve(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "Member id is required")
	}

	member, err := h.memberService.ApproveMember(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Member approved successfully", member)
}

// Reject marks a member account as rejected (admin only)
func (h *MemberHandler) Reject(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "Member id is required")
	}

	member, err := h.memberService.RejectMember(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Member rejected successfully", member)
}

// ChangePinRequest represents a PIN change request
type ChangePinRequest struct {
	Pin string `json:"pin"`
}

// ChangePin replaces the authenticated member's transaction PIN
func (h *MemberHandler) ChangePin(c *fiber.Ctx) error {
	var req ChangePinRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Pin == "" {
		return response.BadRequest(c, "PIN is required")
	}

	if err := h.memberService.ChangePin(c.Context(), middleware.AccountID(c), req.Pin); err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "PIN updated successfully", nil)
}

// TerminationRequest represents a member's request to leave the cooperative
type TerminationRequest struct {
	Reason string `json:"reason"`
}

// RequestTermination records the authenticated member's termination request
func (h *MemberHandler) RequestTermination(c *fiber.Ctx) error {
	var req TerminationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	termination, err := h.memberService.RequestTermination(c.Context(), middleware.AccountID(c), req.Reason)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Created(c, "Termination request submitted", termination)
}

// ListTerminations lists all termination requests (admin only)
func (h *MemberHandler) ListTerminations(c *fiber.Ctx) error {
	terminations, err := h.memberService.ListTerminations(c.Context())
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Termination requests retrieved", terminations)
}
