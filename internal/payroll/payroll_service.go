package payroll

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/koolkhan8586/hr-management/internal/notification"
	payrollerrors "github.com/koolkhan8586/hr-management/internal/payroll/errors"
	"github.com/koolkhan8586/hr-management/internal/shared/apperror"
	"github.com/koolkhan8586/hr-management/internal/shared/connection"
	"github.com/koolkhan8586/hr-management/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const periodLayout = "2006-01"

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, period, employeeID string) ([]PayrollResponse, error)
	Post(ctx context.Context, actorID, id string) (PayrollResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	notifier notification.Enqueuer
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, notifier notification.Enqueuer, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreatePayrollRequest) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create payroll requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("period", req.Period),
	)

	employeeID := strings.TrimSpace(req.EmployeeID)
	if employeeID == "" {
		return PayrollResponse{}, payrollerrors.ErrEmployeeIDRequired
	}
	period, err := normalizePeriod(req.Period)
	if err != nil {
		s.logger.Warn("create payroll invalid period", zap.String("period", req.Period))
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create payroll begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, apperror.Persistence(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("create payroll employee not found", zap.String("employee_id", employeeID))
			return PayrollResponse{}, payrollerrors.ErrEmployeeNotFound
		}
		s.logger.Error("create payroll employee lookup failed", zap.Error(err))
		return PayrollResponse{}, apperror.Persistence(err)
	}

	net := NetPay(emp.BasicSalary, emp.Allowances, emp.Deductions)
	if net.IsNegative() {
		s.logger.Warn("create payroll negative net", zap.String("employee_id", employeeID), zap.String("net", net.StringFixed(2)))
		return PayrollResponse{}, payrollerrors.ErrNegativeNet
	}

	p := &PayrollPosting{
		ID:          uuid.New(),
		EmployeeID:  emp.ID,
		Period:      period,
		BasicSalary: emp.BasicSalary.Round(2),
		Allowances:  emp.Allowances.Round(2),
		Deductions:  emp.Deductions.Round(2),
		Net:         net,
		Status:      StatusDraft,
		CreatedBy:   actorID,
		CreatedAt:   s.now(),
	}
	if err := qtx.Create(ctx, p); err != nil {
		if connection.IsUniqueViolation(err) {
			s.logger.Warn("create payroll duplicate period",
				zap.String("employee_id", employeeID),
				zap.String("period", period),
			)
			return PayrollResponse{}, payrollerrors.ErrPayrollExists
		}
		s.logger.Error("create payroll persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return PayrollResponse{}, apperror.Persistence(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create payroll commit failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, apperror.Persistence(err)
	}

	s.logger.Info("create payroll success",
		zap.String("request_id", rid),
		zap.String("payroll_id", p.ID.String()),
		zap.String("employee_id", p.EmployeeID),
		zap.String("period", p.Period),
		zap.String("net", p.Net.StringFixed(2)),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, period, employeeID string) ([]PayrollResponse, error) {
	s.logger.Debug("get all payroll requested", zap.String("period", period), zap.String("employee_id", employeeID))

	if strings.TrimSpace(period) != "" {
		p, err := normalizePeriod(period)
		if err != nil {
			return nil, err
		}
		period = p
	}

	postings, err := s.repo.FindAll(ctx, period, employeeID)
	if err != nil {
		s.logger.Error("get all payroll failed", zap.Error(err))
		return nil, apperror.Persistence(err)
	}
	return mapToListResponse(postings), nil
}

func (s *service) Post(ctx context.Context, actorID, id string) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("post payroll requested",
		zap.String("request_id", rid),
		zap.String("payroll_id", id),
		zap.String("actor_id", actorID),
	)

	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("post payroll begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, apperror.Persistence(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		s.logger.Error("post payroll fetch failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, apperror.Persistence(err)
	}
	if p.Status != StatusDraft {
		s.logger.Warn("post payroll already posted", zap.String("payroll_id", id))
		return PayrollResponse{}, payrollerrors.ErrAlreadyPosted
	}

	emp, err := qtx.FindEmployee(ctx, p.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrEmployeeNotFound
		}
		s.logger.Error("post payroll employee lookup failed", zap.Error(err))
		return PayrollResponse{}, apperror.Persistence(err)
	}

	postedAt := s.now()
	affected, err := qtx.MarkPosted(ctx, id, actorID, postedAt)
	if err != nil {
		s.logger.Error("post payroll update failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, apperror.Persistence(err)
	}
	if affected == 0 {
		s.logger.Warn("post payroll lost race", zap.String("payroll_id", id))
		return PayrollResponse{}, payrollerrors.ErrAlreadyPosted
	}

	if s.notifier != nil {
		msg := notification.PayrollPosted(emp.Email, emp.Name, p.Period, p.Net.StringFixed(2))
		if err := s.notifier.Enqueue(ctx, tx, "payroll", id, msg); err != nil {
			s.logger.Error("post payroll enqueue notification failed", zap.String("payroll_id", id), zap.Error(err))
			return PayrollResponse{}, apperror.Persistence(err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("post payroll commit failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, apperror.Persistence(err)
	}

	p.Status = StatusPosted
	p.PostedBy = &actorID
	p.PostedAt = &postedAt

	s.logger.Info("post payroll success",
		zap.String("request_id", rid),
		zap.String("payroll_id", id),
		zap.String("employee_id", p.EmployeeID),
		zap.String("period", p.Period),
	)
	return mapToResponse(*p), nil
}

func normalizePeriod(v string) (string, error) {
	t, err := time.Parse(periodLayout, strings.TrimSpace(v))
	if err != nil {
		return "", payrollerrors.ErrInvalidPeriodFormat
	}
	return t.Format(periodLayout), nil
}

func mapToResponse(p PayrollPosting) PayrollResponse {
	resp := PayrollResponse{
		ID:          p.ID.String(),
		EmployeeID:  p.EmployeeID,
		Period:      p.Period,
		BasicSalary: p.BasicSalary,
		Allowances:  p.Allowances,
		Deductions:  p.Deductions,
		Net:         p.Net,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
		PostedBy:    p.PostedBy,
	}
	if p.PostedAt != nil {
		v := p.PostedAt.UTC().Format(time.RFC3339)
		resp.PostedAt = &v
	}
	return resp
}

func mapToListResponse(postings []PayrollPosting) []PayrollResponse {
	res := make([]PayrollResponse, len(postings))
	for i, p := range postings {
		res[i] = mapToResponse(p)
	}
	return res
}
