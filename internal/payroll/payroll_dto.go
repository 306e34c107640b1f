package payroll

import "github.com/shopspring/decimal"

type CreatePayrollRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Period     string `json:"period" binding:"required"`
}

type PayrollResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employeeId"`
	Period      string          `json:"period"`
	BasicSalary decimal.Decimal `json:"basicSalary"`
	Allowances  decimal.Decimal `json:"allowances"`
	Deductions  decimal.Decimal `json:"deductions"`
	Net         decimal.Decimal `json:"net"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"createdAt"`
	PostedBy    *string         `json:"postedBy,omitempty"`
	PostedAt    *string         `json:"postedAt,omitempty"`
}
