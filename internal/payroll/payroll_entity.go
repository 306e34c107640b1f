package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusDraft  = "Draft"
	StatusPosted = "Posted"
)

// PayrollPosting: satu baris per karyawan per periode (YYYY-MM).
type PayrollPosting struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID  string          `gorm:"column:employee_id;type:varchar(64);not null;uniqueIndex:uq_payroll_employee_period"`
	Period      string          `gorm:"column:period;type:varchar(7);not null;uniqueIndex:uq_payroll_employee_period;index:idx_payroll_period"`
	BasicSalary decimal.Decimal `gorm:"column:basic_salary;type:numeric(14,2);not null"`
	Allowances  decimal.Decimal `gorm:"column:allowances;type:numeric(14,2);not null"`
	Deductions  decimal.Decimal `gorm:"column:deductions;type:numeric(14,2);not null"`
	Net         decimal.Decimal `gorm:"column:net;type:numeric(14,2);not null"`
	Status      string          `gorm:"column:status;type:varchar(20);not null"`
	CreatedBy   string          `gorm:"column:created_by;type:varchar(64)"`
	PostedBy    *string         `gorm:"column:posted_by;type:varchar(64)"`
	PostedAt    *time.Time      `gorm:"column:posted_at"`
	CreatedAt   time.Time       `gorm:"column:created_at;not null"`
}

func (PayrollPosting) TableName() string {
	return "payroll_postings"
}

type EmployeeSalary struct {
	ID          string          `gorm:"column:id"`
	Name        string          `gorm:"column:name"`
	Email       string          `gorm:"column:email"`
	BasicSalary decimal.Decimal `gorm:"column:basic_salary"`
	Allowances  decimal.Decimal `gorm:"column:allowances"`
	Deductions  decimal.Decimal `gorm:"column:deductions"`
}

func (EmployeeSalary) TableName() string {
	return "employees"
}

// NetPay = basic + allowances - deductions, dibulatkan 2 desimal.
func NetPay(basic, allowances, deductions decimal.Decimal) decimal.Decimal {
	return basic.Add(allowances).Sub(deductions).Round(2)
}
