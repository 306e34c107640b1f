package loan

import (
	"time"

	"github.com/koolkhan8586/hr-management/internal/approval"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxAmount adalah nilai terbesar yang muat di numeric(14,2).
var MaxAmount = decimal.RequireFromString("999999999999.99")

type LoanRequest struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID string          `gorm:"column:employee_id;type:varchar(64);not null;index:idx_loans_employee_applied"`
	Amount     decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	Reason     string          `gorm:"column:reason;type:text"`
	Status     approval.Status `gorm:"column:status;type:varchar(20);not null;index:idx_loans_status"`
	DecidedBy  *string         `gorm:"column:decided_by;type:varchar(64)"`
	DecidedAt  *time.Time      `gorm:"column:decided_at"`
	AppliedAt  time.Time       `gorm:"column:applied_at;not null;index:idx_loans_employee_applied"`
}

func (LoanRequest) TableName() string {
	return "loans"
}

// EmployeeRef: kolom employees yang dipakai untuk notifikasi pinjaman.
type EmployeeRef struct {
	ID    string `gorm:"column:id"`
	Name  string `gorm:"column:name"`
	Email string `gorm:"column:email"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
