package loan

import (
	"context"
	"database/sql"
	"time"

	"github.com/koolkhan8586/hr-management/internal/approval"
	"github.com/koolkhan8586/hr-management/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=loan_repo.go -destination=mock/loan_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LoanRequest) error
	FindByID(ctx context.Context, id string) (*LoanRequest, error)
	FindAll(ctx context.Context, status approval.Status) ([]LoanRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]LoanRequest, error)
	FindEmployee(ctx context.Context, employeeID string) (*EmployeeRef, error)
	TransitionStatus(ctx context.Context, id string, to approval.Status, decidedBy string, decidedAt time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.WithTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, l *LoanRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LoanRequest, error) {
	var l LoanRequest
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindAll(ctx context.Context, status approval.Status) ([]LoanRequest, error) {
	var loans []LoanRequest
	db := r.db.WithContext(ctx)
	if status != "" {
		db = db.Where("status = ?", string(status))
	}
	err := db.Order("applied_at DESC").Find(&loans).Error
	return loans, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]LoanRequest, error) {
	var loans []LoanRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("applied_at DESC").
		Find(&loans).Error
	return loans, err
}

func (r *repository) FindEmployee(ctx context.Context, employeeID string) (*EmployeeRef, error) {
	var e EmployeeRef
	if err := r.db.WithContext(ctx).First(&e, "id = ?", employeeID).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// TransitionStatus: rows affected 0 berarti request sudah tidak Pending.
func (r *repository) TransitionStatus(ctx context.Context, id string, to approval.Status, decidedBy string, decidedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&LoanRequest{}).
		Where("id = ? AND status = ?", id, string(approval.StatusPending)).
		Updates(map[string]any{
			"status":     string(to),
			"decided_by": decidedBy,
			"decided_at": decidedAt,
		})
	return res.RowsAffected, res.Error
}
