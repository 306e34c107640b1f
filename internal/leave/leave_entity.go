package leave

import (
	"strings"
	"time"

	"github.com/koolkhan8586/hr-management/internal/approval"

	"github.com/google/uuid"
)

type LeaveType string

const (
	TypeAnnual LeaveType = "AnnualLeave"
	TypeCasual LeaveType = "Casual"
	TypeSick   LeaveType = "Sick"
	TypeOther  LeaveType = "Other"
)

const (
	ColumnLeaveAnnual = "leave_annual"
	ColumnLeaveCasual = "leave_casual"
)

var leaveTypes = []LeaveType{TypeAnnual, TypeCasual, TypeSick, TypeOther}

// ParseLeaveType mengembalikan bentuk kanonik dari nama tipe cuti (case-insensitive).
func ParseLeaveType(v string) (LeaveType, bool) {
	v = strings.TrimSpace(v)
	for _, t := range leaveTypes {
		if strings.EqualFold(v, string(t)) {
			return t, true
		}
	}
	return "", false
}

// BalanceColumn: AnnualLeave memotong leave_annual, tipe lain memotong leave_casual.
func (t LeaveType) BalanceColumn() string {
	if t == TypeAnnual {
		return ColumnLeaveAnnual
	}
	return ColumnLeaveCasual
}

type LeaveRequest struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID string          `gorm:"column:employee_id;type:varchar(64);not null;index:idx_leaves_employee_applied"`
	LeaveType  LeaveType       `gorm:"column:leave_type;type:varchar(30);not null"`
	StartDate  time.Time       `gorm:"column:start_date;type:date;not null"`
	Days       int             `gorm:"column:days;not null"`
	Reason     string          `gorm:"column:reason;type:text"`
	Status     approval.Status `gorm:"column:status;type:varchar(20);not null;index:idx_leaves_status"`
	DecidedBy  *string         `gorm:"column:decided_by;type:varchar(64)"`
	DecidedAt  *time.Time      `gorm:"column:decided_at"`
	AppliedAt  time.Time       `gorm:"column:applied_at;not null;index:idx_leaves_employee_applied"`
}

func (LeaveRequest) TableName() string {
	return "leaves"
}

// EmployeeRef adalah tampilan sempit tabel employees yang dibutuhkan alur cuti.
type EmployeeRef struct {
	ID          string    `gorm:"column:id"`
	Name        string    `gorm:"column:name"`
	Email       string    `gorm:"column:email"`
	LeaveAnnual int       `gorm:"column:leave_annual"`
	LeaveCasual int       `gorm:"column:leave_casual"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

func (e EmployeeRef) Balance(column string) int {
	if column == ColumnLeaveAnnual {
		return e.LeaveAnnual
	}
	return e.LeaveCasual
}
