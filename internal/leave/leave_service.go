package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/koolkhan8586/hr-management/internal/approval"
	leaveerrors "github.com/koolkhan8586/hr-management/internal/leave/errors"
	"github.com/koolkhan8586/hr-management/internal/notification"
	"github.com/koolkhan8586/hr-management/internal/shared/apperror"
	"github.com/koolkhan8586/hr-management/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Policy mengatur batas bawah saldo cuti. Floor nil berarti saldo boleh negatif.
type Policy struct {
	Floor *int
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	Decide(ctx context.Context, deciderID, id string, req DecideLeaveRequest) (LeaveResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	GetAll(ctx context.Context, status string) ([]LeaveResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	notifier notification.Enqueuer
	policy   Policy
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, notifier notification.Enqueuer, policy Policy, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		notifier: notifier,
		policy:   policy,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   l,
	}
}

func (s *service) Submit(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", req.LeaveType),
		zap.Int("days", req.Days),
	)

	l, err := newLeaveRequest(req, s.now())
	if err != nil {
		s.logger.Warn("submit leave validation failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, apperror.Persistence(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindEmployee(ctx, l.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("submit leave employee not found", zap.String("employee_id", l.EmployeeID))
			return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		s.logger.Error("submit leave employee lookup failed", zap.Error(err))
		return LeaveResponse{}, apperror.Persistence(err)
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.String("employee_id", l.EmployeeID), zap.Error(err))
		return LeaveResponse{}, apperror.Persistence(err)
	}

	if s.notifier != nil {
		msgs := notification.LeaveSubmitted(emp.Email, emp.Name, string(l.LeaveType), l.StartDate.Format(dateLayout), l.Days)
		if err := s.notifier.Enqueue(ctx, tx, "leave", l.ID.String(), msgs...); err != nil {
			s.logger.Error("submit leave enqueue notification failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
			return LeaveResponse{}, apperror.Persistence(err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, apperror.Persistence(err)
	}

	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", l.EmployeeID),
	)
	return mapToResponse(*l), nil
}

func (s *service) Decide(ctx context.Context, deciderID, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("decider_id", deciderID),
		zap.String("status", req.Status),
	)

	decision, err := approval.ParseDecision(req.Status)
	if err != nil {
		s.logger.Warn("decide leave invalid decision", zap.String("status", req.Status))
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, apperror.Persistence(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("decide leave fetch failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, apperror.Persistence(err)
	}
	if err := approval.Transition(l.Status, decision); err != nil {
		s.logger.Warn("decide leave not pending",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status.String()),
			zap.String("to_status", decision.String()),
		)
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	emp, err := qtx.FindEmployee(ctx, l.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		s.logger.Error("decide leave employee lookup failed", zap.Error(err))
		return LeaveResponse{}, apperror.Persistence(err)
	}

	decidedAt := s.now()
	affected, err := qtx.TransitionStatus(ctx, id, decision, deciderID, decidedAt)
	if err != nil {
		s.logger.Error("decide leave transition failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, apperror.Persistence(err)
	}
	if affected == 0 {
		// request lain sudah memutuskan lebih dulu
		s.logger.Warn("decide leave lost race", zap.String("leave_id", id))
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	var remaining *int
	if decision == approval.StatusApproved {
		column := l.LeaveType.BalanceColumn()
		affected, err := qtx.DeductBalance(ctx, l.EmployeeID, column, l.Days, s.policy.Floor)
		if err != nil {
			s.logger.Error("decide leave deduct balance failed",
				zap.String("leave_id", id),
				zap.String("employee_id", l.EmployeeID),
				zap.Error(err),
			)
			return LeaveResponse{}, apperror.Persistence(err)
		}
		if affected == 0 {
			s.logger.Warn("decide leave balance below floor",
				zap.String("leave_id", id),
				zap.String("employee_id", l.EmployeeID),
				zap.String("column", column),
				zap.Int("days", l.Days),
			)
			return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
		}

		updated, err := qtx.FindEmployee(ctx, l.EmployeeID)
		if err != nil {
			s.logger.Error("decide leave reload balance failed", zap.Error(err))
			return LeaveResponse{}, apperror.Persistence(err)
		}
		balance := updated.Balance(column)
		remaining = &balance
	}

	if s.notifier != nil {
		msg := notification.LeaveDecided(emp.Email, emp.Name, decision.String(), string(l.LeaveType), l.Days, remaining)
		if err := s.notifier.Enqueue(ctx, tx, "leave", id, msg); err != nil {
			s.logger.Error("decide leave enqueue notification failed", zap.String("leave_id", id), zap.Error(err))
			return LeaveResponse{}, apperror.Persistence(err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, apperror.Persistence(err)
	}

	l.Status = decision
	l.DecidedBy = &deciderID
	l.DecidedAt = &decidedAt

	fields := []zap.Field{
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("employee_id", l.EmployeeID),
		zap.String("status", decision.String()),
	}
	if remaining != nil {
		fields = append(fields, zap.Int("remaining_balance", *remaining))
	}
	s.logger.Info("decide leave success", fields...)

	resp := mapToResponse(*l)
	resp.RemainingBalance = remaining
	return resp, nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	s.logger.Debug("list leave by employee requested", zap.String("employee_id", employeeID))

	if _, err := s.repo.FindEmployee(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrEmployeeNotFound
		}
		s.logger.Error("list leave employee lookup failed", zap.Error(err))
		return nil, apperror.Persistence(err)
	}

	leaves, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list leave by employee failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, apperror.Persistence(err)
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]LeaveResponse, error) {
	filter, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}

	leaves, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all leave failed", zap.Error(err))
		return nil, apperror.Persistence(err)
	}
	return mapToListResponse(leaves), nil
}

func newLeaveRequest(req CreateLeaveRequest, appliedAt time.Time) (*LeaveRequest, error) {
	employeeID := strings.TrimSpace(req.EmployeeID)
	if employeeID == "" {
		return nil, leaveerrors.ErrEmployeeIDRequired
	}
	leaveType, ok := ParseLeaveType(req.LeaveType)
	if !ok {
		return nil, leaveerrors.ErrInvalidLeaveType
	}
	if req.Days <= 0 {
		return nil, leaveerrors.ErrInvalidDays
	}
	startDate, err := time.Parse(dateLayout, strings.TrimSpace(req.StartDate))
	if err != nil {
		return nil, leaveerrors.ErrInvalidDateFormat
	}

	return &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		StartDate:  startDate,
		Days:       req.Days,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     approval.StatusPending,
		AppliedAt:  appliedAt,
	}, nil
}

func parseStatusFilter(v string) (approval.Status, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	if strings.EqualFold(v, string(approval.StatusPending)) {
		return approval.StatusPending, nil
	}
	status, err := approval.ParseDecision(v)
	if err != nil {
		return "", leaveerrors.ErrInvalidStatusFilter
	}
	return status, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID,
		LeaveType:  string(l.LeaveType),
		StartDate:  l.StartDate.Format(dateLayout),
		Days:       l.Days,
		Reason:     l.Reason,
		Status:     l.Status.String(),
		AppliedAt:  l.AppliedAt.UTC().Format(time.RFC3339),
		DecidedBy:  l.DecidedBy,
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.UTC().Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	res := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		res[i] = mapToResponse(l)
	}
	return res
}
