package employee

import "github.com/shopspring/decimal"

type CreateEmployeeRequest struct {
	ID          string           `json:"id" binding:"required,max=64"`
	Name        string           `json:"name" binding:"required"`
	Email       string           `json:"email" binding:"required,email"`
	Role        string           `json:"role" binding:"omitempty,oneof=employee admin"`
	Password    string           `json:"password" binding:"omitempty,min=6"`
	LeaveAnnual *int             `json:"leaveAnnual"`
	LeaveCasual *int             `json:"leaveCasual"`
	BasicSalary *decimal.Decimal `json:"basicSalary"`
	Allowances  *decimal.Decimal `json:"allowances"`
	Deductions  *decimal.Decimal `json:"deductions"`
}

// UpdateEmployeeRequest hanya menulis field yang dikirim (nil = tidak diubah).
type UpdateEmployeeRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1"`
	Email       *string          `json:"email" binding:"omitempty,email"`
	Role        *string          `json:"role" binding:"omitempty,oneof=employee admin"`
	Password    *string          `json:"password" binding:"omitempty,min=6"`
	LeaveAnnual *int             `json:"leaveAnnual"`
	LeaveCasual *int             `json:"leaveCasual"`
	BasicSalary *decimal.Decimal `json:"basicSalary"`
	Allowances  *decimal.Decimal `json:"allowances"`
	Deductions  *decimal.Decimal `json:"deductions"`
}

type EmployeeResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Role        string          `json:"role"`
	LeaveAnnual int             `json:"leaveAnnual"`
	LeaveCasual int             `json:"leaveCasual"`
	BasicSalary decimal.Decimal `json:"basicSalary"`
	Allowances  decimal.Decimal `json:"allowances"`
	Deductions  decimal.Decimal `json:"deductions"`
	CreatedAt   string          `json:"createdAt,omitempty"`
}

type EmployeeOptionResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
