package auth

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type CreateAccessCodeRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
}

type ValidateAccessCodeRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
	AccessCode  string `json:"accessCode" validate:"required,len=6,numeric"`
}

type ValidateEmailAccessCodeRequest struct {
	Email      string `json:"email" validate:"required,email"`
	AccessCode string `json:"accessCode" validate:"required,len=6,numeric"`
}

type CreateEmployeeRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Role        string `json:"role" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,e164"`
	Address     string `json:"address"`
}

type TaskRequest struct {
	Title        string `json:"title" validate:"required"`
	AssignedName string `json:"assignedName" validate:"required"`
	EmployeeID   string `json:"employeeId" validate:"required"`
	Status       string `json:"status" validate:"required"`
	Description  string `json:"description"`
}

func Validate(req any) error {
	return validate.Struct(req)
}
