package loan

import "github.com/shopspring/decimal"

type CreateLoanRequest struct {
	EmployeeID string           `json:"employeeId" binding:"required"`
	Amount     *decimal.Decimal `json:"amount" binding:"required"`
	Reason     string           `json:"reason"`
}

type DecideLoanRequest struct {
	Status string `json:"status" binding:"required"`
}

type LoanResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employeeId"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
	Status     string          `json:"status"`
	AppliedAt  string          `json:"appliedAt"`
	DecidedBy  *string         `json:"decidedBy,omitempty"`
	DecidedAt  *string         `json:"decidedAt,omitempty"`
}
