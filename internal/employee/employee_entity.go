package employee

import (
	"time"

	"github.com/koolkhan8586/hr-management/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	RoleEmployee = domain.RoleEmployee
	RoleAdmin    = domain.RoleAdmin

	DefaultLeaveAnnual = 14
	DefaultLeaveCasual = 10
)

type Employee struct {
	ID           string          `gorm:"column:id;type:varchar(64);primaryKey"`
	Name         string          `gorm:"column:name;type:varchar(255);not null"`
	Email        string          `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	Role         string          `gorm:"column:role;type:varchar(20);not null"`
	PasswordHash string          `gorm:"column:password_hash;type:varchar(255)"`
	LeaveAnnual  int             `gorm:"column:leave_annual;not null"`
	LeaveCasual  int             `gorm:"column:leave_casual;not null"`
	BasicSalary  decimal.Decimal `gorm:"column:basic_salary;type:numeric(14,2);not null"`
	Allowances   decimal.Decimal `gorm:"column:allowances;type:numeric(14,2);not null"`
	Deductions   decimal.Decimal `gorm:"column:deductions;type:numeric(14,2);not null"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
