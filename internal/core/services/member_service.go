package services

import (
	"context"
	"fmt"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/repositories"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/pkg/password"
)

// MemberService handles member administration: approval gating, PIN
// changes, listing and termination requests.
type MemberService struct {
	stores *repositories.Stores
	notify *NotificationService
}

// NewMemberService creates a new member service
func NewMemberService(stores *repositories.Stores, notify *NotificationService) *MemberService {
	return &MemberService{stores: stores, notify: notify}
}

// ApproveMember activates a pending member account and notifies them
func (s *MemberService) ApproveMember(ctx context.Context, memberID string) (*models.Member, error) {
	member, err := s.stores.Members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.Status == domain.MemberStatusApproved {
		return nil, domain.ErrMemberAlreadyApproved
	}

	if err := s.stores.Members.UpdateStatus(ctx, memberID, domain.MemberStatusApproved); err != nil {
		return nil, err
	}
	member.Status = domain.MemberStatusApproved

	s.notify.AccountActivated(memberID)
	return member, nil
}

// RejectMember marks a member account as rejected
func (s *MemberService) RejectMember(ctx context.Context, memberID string) (*models.Member, error) {
	member, err := s.stores.Members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.Status == domain.MemberStatusRejected {
		return nil, domain.ErrMemberAlreadyRejected
	}

	if err := s.stores.Members.UpdateStatus(ctx, memberID, domain.MemberStatusRejected); err != nil {
		return nil, err
	}
	member.Status = domain.MemberStatusRejected
	return member, nil
}

// ChangePin replaces the member's transaction PIN
func (s *MemberService) ChangePin(ctx context.Context, memberID, newPin string) error {
	if !password.ValidatePin(newPin) {
		return fmt.Errorf("%w: PIN must be 4 to 6 digits", domain.ErrInvalidInput)
	}

	hashedPin, err := password.Hash(newPin)
	if err != nil {
		return err
	}
	return s.stores.Members.UpdatePin(ctx, memberID, hashedPin)
}

// GetAllMembers lists members for administration, filtered and paginated
func (s *MemberService) GetAllMembers(ctx context.Context, filter repositories.MemberFilter) ([]*models.Member, int64, error) {
	return s.stores.Members.List(ctx, filter)
}

// RequestTermination records a member's request to leave the cooperative
func (s *MemberService) RequestTermination(ctx context.Context, memberID, reason string) (*models.Termination, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: a termination reason is required", domain.ErrInvalidInput)
	}

	termination := &models.Termination{
		MemberID: memberID,
		Reason:   reason,
	}
	if err := s.stores.Members.CreateTermination(ctx, termination); err != nil {
		return nil, err
	}
	return termination, nil
}

// ListTerminations lists all termination requests for review
func (s *MemberService) ListTerminations(ctx context.Context) ([]*models.Termination, error) {
	return s.stores.Members.ListTerminations(ctx)
}
