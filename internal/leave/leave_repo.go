package leave

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/koolkhan8586/hr-management/internal/approval"
	"github.com/koolkhan8586/hr-management/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindAll(ctx context.Context, status approval.Status) ([]LeaveRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindEmployee(ctx context.Context, employeeID string) (*EmployeeRef, error)
	// TransitionStatus hanya mengubah baris yang masih Pending; rows affected 0 berarti kalah balapan.
	TransitionStatus(ctx context.Context, id string, to approval.Status, decidedBy string, decidedAt time.Time) (int64, error)
	// DeductBalance menjalankan col = col - days di database. floor nil berarti saldo boleh negatif.
	DeductBalance(ctx context.Context, employeeID, column string, days int, floor *int) (int64, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindAll(ctx context.Context, status approval.Status) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	db := r.db.WithContext(ctx)
	if status != "" {
		db = db.Where("status = ?", string(status))
	}
	err := db.Order("applied_at DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("applied_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindEmployee(ctx context.Context, employeeID string) (*EmployeeRef, error) {
	var e EmployeeRef
	err := r.db.WithContext(ctx).First(&e, "id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) TransitionStatus(ctx context.Context, id string, to approval.Status, decidedBy string, decidedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", id, string(approval.StatusPending)).
		Updates(map[string]any{
			"status":     string(to),
			"decided_by": decidedBy,
			"decided_at": decidedAt,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) DeductBalance(ctx context.Context, employeeID, column string, days int, floor *int) (int64, error) {
	if column != ColumnLeaveAnnual && column != ColumnLeaveCasual {
		return 0, fmt.Errorf("unknown balance column %q", column)
	}

	db := r.db.WithContext(ctx).
		Model(&EmployeeRef{}).
		Where("id = ?", employeeID)
	if floor != nil {
		db = db.Where(column+" - ? >= ?", days, *floor)
	}

	res := db.Update(column, gorm.Expr(column+" - ?", days))
	return res.RowsAffected, res.Error
}
