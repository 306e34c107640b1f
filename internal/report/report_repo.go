package report

import (
	"context"

	"github.com/koolkhan8586/hr-management/internal/leave"
	"github.com/koolkhan8586/hr-management/internal/loan"
	"github.com/koolkhan8586/hr-management/internal/payroll"

	"gorm.io/gorm"
)

type employeeName struct {
	ID   string `gorm:"column:id"`
	Name string `gorm:"column:name"`
}

func (employeeName) TableName() string {
	return "employees"
}

type Repository interface {
	EmployeeNames(ctx context.Context) (map[string]string, error)
	Leaves(ctx context.Context) ([]leave.LeaveRequest, error)
	Loans(ctx context.Context) ([]loan.LoanRequest, error)
	Payrolls(ctx context.Context) ([]payroll.PayrollPosting, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) EmployeeNames(ctx context.Context) (map[string]string, error) {
	var rows []employeeName
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(rows))
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

func (r *repository) Leaves(ctx context.Context) ([]leave.LeaveRequest, error) {
	var leaves []leave.LeaveRequest
	err := r.db.WithContext(ctx).Order("applied_at DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) Loans(ctx context.Context) ([]loan.LoanRequest, error) {
	var loans []loan.LoanRequest
	err := r.db.WithContext(ctx).Order("applied_at DESC").Find(&loans).Error
	return loans, err
}

func (r *repository) Payrolls(ctx context.Context) ([]payroll.PayrollPosting, error) {
	var postings []payroll.PayrollPosting
	err := r.db.WithContext(ctx).Order("period DESC").Order("employee_id ASC").Find(&postings).Error
	return postings, err
}
