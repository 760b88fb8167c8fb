package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/repositories"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/pkg/jwt"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/pkg/password"

	"github.com/shopspring/decimal"
)

// AuthService handles member and staff authentication
type AuthService struct {
	stores        *repositories.Stores
	jwtSecret     string
	expiryMinutes int
}

// NewAuthService creates a new auth service
func NewAuthService(stores *repositories.Stores, jwtSecret string, expiryMinutes int) *AuthService {
	return &AuthService{
		stores:        stores,
		jwtSecret:     jwtSecret,
		expiryMinutes: expiryMinutes,
	}
}

// RegisterMemberInput represents a member registration request
type RegisterMemberInput struct {
	Email         string            `json:"email" validate:"required,email"`
	FirstName     string            `json:"first_name" validate:"required"`
	LastName      string            `json:"last_name" validate:"required"`
	Phone         string            `json:"phone"`
	Type          domain.MemberType `json:"type" validate:"required"`
	ServiceNumber string            `json:"service_number"`
	Rank          *domain.Rank      `json:"rank"`
	Unit          string            `json:"unit"`
	Password      string            `json:"password" validate:"required,min=8"`
	Pin           string            `json:"pin" validate:"required"`
}

// RegisterMember creates a member account. Personnel must carry a service
// number and rank; civilians must carry neither. New accounts start PENDING
// and cannot log in until an administrator approves them.
func (s *AuthService) RegisterMember(ctx context.Context, input *RegisterMemberInput) (*models.Member, error) {
	if !password.ValidatePassword(input.Password) {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}
	if !password.ValidatePin(input.Pin) {
		return nil, fmt.Errorf("%w: PIN must be 4 to 6 digits", domain.ErrInvalidInput)
	}

	switch input.Type {
	case domain.MemberTypePersonnel:
		if input.ServiceNumber == "" || input.Rank == nil {
			return nil, fmt.Errorf("%w: service number and rank are required for personnel", domain.ErrInvalidInput)
		}
	case domain.MemberTypeCivilian:
		if input.ServiceNumber != "" || input.Rank != nil {
			return nil, fmt.Errorf("%w: civilians carry no service number or rank", domain.ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("%w: member type must be PERSONNEL or CIVILIAN", domain.ErrInvalidInput)
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	hashedPin, err := password.Hash(input.Pin)
	if err != nil {
		return nil, err
	}

	member := &models.Member{
		Email:            input.Email,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Phone:            input.Phone,
		Type:             input.Type,
		Rank:             input.Rank,
		Unit:             input.Unit,
		Status:           domain.MemberStatusPending,
		Password:         hashedPassword,
		Pin:              hashedPin,
		TotalSavings:     decimal.Zero,
		MonthlyDeduction: decimal.Zero,
	}
	if input.ServiceNumber != "" {
		member.ServiceNumber = &input.ServiceNumber
	}

	if err := s.stores.Members.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// MemberLoginInput represents a member login request. Personnel log in with
// their service number, civilians with email.
type MemberLoginInput struct {
	ServiceNumber string `json:"service_number"`
	Email         string `json:"email"`
	Password      string `json:"password" validate:"required"`
}

// AuthResult carries the signed token and the authenticated identity
type AuthResult struct {
	Token  string      `json:"token"`
	Member *MemberInfo `json:"member,omitempty"`
	User   *UserInfo   `json:"user,omitempty"`
}

// MemberInfo is the member identity returned after login
type MemberInfo struct {
	ID            string            `json:"id"`
	Email         string            `json:"email"`
	FirstName     string            `json:"first_name"`
	LastName      string            `json:"last_name"`
	Type          domain.MemberType `json:"type"`
	ServiceNumber string            `json:"service_number,omitempty"`
	Rank          *domain.Rank      `json:"rank,omitempty"`
}

// UserInfo is the staff identity returned after login
type UserInfo struct {
	ID       string      `json:"id"`
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	Role     domain.Role `json:"role"`
}

// LoginMember authenticates a member and issues a token
func (s *AuthService) LoginMember(ctx context.Context, input *MemberLoginInput) (*AuthResult, error) {
	var member *models.Member
	var err error
	switch {
	case input.ServiceNumber != "":
		member, err = s.stores.Members.GetByServiceNumber(ctx, input.ServiceNumber)
	case input.Email != "":
		member, err = s.stores.Members.GetByEmail(ctx, input.Email)
	default:
		return nil, fmt.Errorf("%w: service number or email is required", domain.ErrInvalidInput)
	}
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, member.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	if member.Status != domain.MemberStatusApproved {
		return nil, domain.ErrMemberNotApproved
	}

	serviceNumber := ""
	if member.ServiceNumber != nil {
		serviceNumber = *member.ServiceNumber
	}

	token, err := jwt.GenerateToken(member.ID, serviceNumber, member.Email, string(domain.RoleMember), s.jwtSecret, s.expiryMinutes)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token: token,
		Member: &MemberInfo{
			ID:            member.ID,
			Email:         member.Email,
			FirstName:     member.FirstName,
			LastName:      member.LastName,
			Type:          member.Type,
			ServiceNumber: serviceNumber,
			Rank:          member.Rank,
		},
	}, nil
}

// UserLoginInput represents a staff login request
type UserLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginUser authenticates a staff account and issues a token
func (s *AuthService) LoginUser(ctx context.Context, input *UserLoginInput) (*AuthResult, error) {
	user, err := s.stores.Users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, "", user.Email, string(user.Role), s.jwtSecret, s.expiryMinutes)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token: token,
		User: &UserInfo{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     user.Role,
		},
	}, nil
}
