package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gachip90/employee-task-management-be/auth"
	"github.com/gachip90/employee-task-management-be/contract"
	"github.com/gachip90/employee-task-management-be/errors"
	"github.com/gachip90/employee-task-management-be/repositories"
)

type Token string

// CodeDelivery reports what happened to a freshly issued owner code.
// SMS delivery failure is not fatal: the code is persisted either way, and
// the caller decides whether to reveal it in the response.
type CodeDelivery struct {
	PhoneNumber string
	AccessCode  string
	MessageSID  string
	SMSErr      error
}

type IAccessService interface {
	CreateOwnerAccessCode(ctx context.Context, phoneNumber string) (CodeDelivery, error)
	ValidateOwnerAccessCode(ctx context.Context, phoneNumber, code string) (Token, error)
	ValidateEmployeeAccessCode(ctx context.Context, email, code string) (Token, string, error)
}

type AccessService struct {
	owners        repositories.IOwnerRepository
	employees     repositories.IEmployeeRepository
	sms           contract.ISMSSender
	tokenDuration time.Duration
}

func NewAccessService(owners repositories.IOwnerRepository,
	employees repositories.IEmployeeRepository, sms contract.ISMSSender,
	tokenDuration time.Duration) *AccessService {
	return &AccessService{owners: owners, employees: employees, sms: sms,
		tokenDuration: tokenDuration}
}

// CreateOwnerAccessCode generates and persists a fresh code, then hands it
// to the SMS collaborator. Persist-then-send: a code that failed to go out
// is still valid, so a retry of the SMS does not invalidate it.
func (s *AccessService) CreateOwnerAccessCode(ctx context.Context, phoneNumber string) (CodeDelivery, error) {
	code, err := auth.GenerateAccessCode()
	if err != nil {
		return CodeDelivery{}, err
	}
	if err = s.owners.SaveAccessCode(phoneNumber, code); err != nil {
		return CodeDelivery{}, err
	}

	delivery := CodeDelivery{PhoneNumber: phoneNumber, AccessCode: code}
	delivery.MessageSID, delivery.SMSErr = s.sms.SendAccessCode(ctx, phoneNumber, code)
	return delivery, nil
}

// ValidateOwnerAccessCode exchanges a valid code for a session token and
// clears the code so it cannot be replayed.
func (s *AccessService) ValidateOwnerAccessCode(_ context.Context, phoneNumber, code string) (Token, error) {
	owner, found, err := s.owners.Get(phoneNumber)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("%w: owner", errors.ErrNotFound)
	}
	if owner.AccessCode == "" || owner.AccessCode != code {
		return "", errors.ErrInvalidAccessCode
	}
	if err = s.owners.MarkVerified(phoneNumber); err != nil {
		return "", err
	}

	token, err := auth.GenerateToken(phoneNumber, []string{"owner"}, s.tokenDuration)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return Token(token), nil
}

// ValidateEmployeeAccessCode is the email-keyed variant used by employees
// after the owner created their record. Returns the employee id alongside
// the token so the client can load the right profile.
func (s *AccessService) ValidateEmployeeAccessCode(_ context.Context, email, code string) (Token, string, error) {
	employee, found, err := s.employees.GetByEmail(email)
	if err != nil {
		return "", "", err
	}
	if !found {
		return "", "", fmt.Errorf("%w: employee", errors.ErrNotFound)
	}
	if employee.AccessCode == "" || employee.AccessCode != code {
		return "", "", errors.ErrInvalidAccessCode
	}

	now := time.Now().UTC()
	employee.AccessCode = ""
	employee.LastLogin = &now
	if err = s.employees.Update(employee); err != nil {
		return "", "", err
	}

	token, err := auth.GenerateToken(employee.ID, []string{"employee"}, s.tokenDuration)
	if err != nil {
		return "", "", errors.ErrTokenGeneration
	}
	return Token(token), employee.ID, nil
}
