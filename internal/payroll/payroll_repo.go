package payroll

import (
	"context"
	"database/sql"
	"time"

	"github.com/koolkhan8586/hr-management/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *PayrollPosting) error
	FindByID(ctx context.Context, id string) (*PayrollPosting, error)
	FindAll(ctx context.Context, period, employeeID string) ([]PayrollPosting, error)
	FindEmployee(ctx context.Context, employeeID string) (*EmployeeSalary, error)
	MarkPosted(ctx context.Context, id, postedBy string, postedAt time.Time) (int64, error)
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

func (r *repository) Create(ctx context.Context, p *PayrollPosting) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*PayrollPosting, error) {
	var p PayrollPosting
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindAll: filter kosong berarti semua.
func (r *repository) FindAll(ctx context.Context, period, employeeID string) ([]PayrollPosting, error) {
	var postings []PayrollPosting
	db := r.db.WithContext(ctx)
	if period != "" {
		db = db.Where("period = ?", period)
	}
	if employeeID != "" {
		db = db.Where("employee_id = ?", employeeID)
	}
	err := db.Order("period DESC").Order("employee_id ASC").Find(&postings).Error
	return postings, err
}

func (r *repository) FindEmployee(ctx context.Context, employeeID string) (*EmployeeSalary, error) {
	var e EmployeeSalary
	if err := r.db.WithContext(ctx).First(&e, "id = ?", employeeID).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// MarkPosted hanya mengubah baris Draft. Rows affected 0 berarti sudah Posted.
func (r *repository) MarkPosted(ctx context.Context, id, postedBy string, postedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&PayrollPosting{}).
		Where("id = ? AND status = ?", id, StatusDraft).
		Updates(map[string]any{
			"status":    StatusPosted,
			"posted_by": postedBy,
			"posted_at": postedAt,
		})
	return res.RowsAffected, res.Error
}
