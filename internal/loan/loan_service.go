package loan

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/koolkhan8586/hr-management/internal/approval"
	loanerrors "github.com/koolkhan8586/hr-management/internal/loan/errors"
	"github.com/koolkhan8586/hr-management/internal/notification"
	"github.com/koolkhan8586/hr-management/internal/shared/apperror"
	"github.com/koolkhan8586/hr-management/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Submit(ctx context.Context, req CreateLoanRequest) (LoanResponse, error)
	Decide(ctx context.Context, deciderID, id string, req DecideLoanRequest) (LoanResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LoanResponse, error)
	GetAll(ctx context.Context, status string) ([]LoanResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	notifier notification.Enqueuer
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, notifier notification.Enqueuer, logger ...*zap.Logger) Service {
	l := zap.L().Named("loan.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("loan.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   l,
	}
}

func (s *service) Submit(ctx context.Context, req CreateLoanRequest) (LoanResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit loan requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
	)

	l, err := newLoanRequest(req, s.now())
	if err != nil {
		s.logger.Warn("submit loan validation failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return LoanResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit loan begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LoanResponse{}, apperror.Persistence(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindEmployee(ctx, l.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("submit loan employee not found", zap.String("employee_id", l.EmployeeID))
			return LoanResponse{}, loanerrors.ErrEmployeeNotFound
		}
		s.logger.Error("submit loan employee lookup failed", zap.Error(err))
		return LoanResponse{}, apperror.Persistence(err)
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit loan persist failed", zap.String("employee_id", l.EmployeeID), zap.Error(err))
		return LoanResponse{}, apperror.Persistence(err)
	}

	if s.notifier != nil {
		msgs := notification.LoanSubmitted(emp.Email, emp.Name, l.Amount.StringFixed(2))
		if err := s.notifier.Enqueue(ctx, tx, "loan", l.ID.String(), msgs...); err != nil {
			s.logger.Error("submit loan enqueue notification failed", zap.String("loan_id", l.ID.String()), zap.Error(err))
			return LoanResponse{}, apperror.Persistence(err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit loan commit failed", zap.String("request_id", rid), zap.Error(err))
		return LoanResponse{}, apperror.Persistence(err)
	}

	s.logger.Info("submit loan success",
		zap.String("request_id", rid),
		zap.String("loan_id", l.ID.String()),
		zap.String("employee_id", l.EmployeeID),
		zap.String("amount", l.Amount.StringFixed(2)),
	)
	return mapToResponse(*l), nil
}

func (s *service) Decide(ctx context.Context, deciderID, id string, req DecideLoanRequest) (LoanResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide loan requested",
		zap.String("request_id", rid),
		zap.String("loan_id", id),
		zap.String("decider_id", deciderID),
		zap.String("status", req.Status),
	)

	decision, err := approval.ParseDecision(req.Status)
	if err != nil {
		s.logger.Warn("decide loan invalid decision", zap.String("status", req.Status))
		return LoanResponse{}, loanerrors.ErrInvalidDecision
	}
	if _, err := uuid.Parse(id); err != nil {
		return LoanResponse{}, loanerrors.ErrLoanNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide loan begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LoanResponse{}, apperror.Persistence(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoanResponse{}, loanerrors.ErrLoanNotFound
		}
		s.logger.Error("decide loan fetch failed", zap.String("loan_id", id), zap.Error(err))
		return LoanResponse{}, apperror.Persistence(err)
	}
	if err := approval.Transition(l.Status, decision); err != nil {
		s.logger.Warn("decide loan not pending",
			zap.String("loan_id", id),
			zap.String("from_status", l.Status.String()),
		)
		return LoanResponse{}, loanerrors.ErrNotPending
	}

	emp, err := qtx.FindEmployee(ctx, l.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoanResponse{}, loanerrors.ErrEmployeeNotFound
		}
		s.logger.Error("decide loan employee lookup failed", zap.Error(err))
		return LoanResponse{}, apperror.Persistence(err)
	}

	decidedAt := s.now()
	affected, err := qtx.TransitionStatus(ctx, id, decision, deciderID, decidedAt)
	if err != nil {
		s.logger.Error("decide loan transition failed", zap.String("loan_id", id), zap.Error(err))
		return LoanResponse{}, apperror.Persistence(err)
	}
	if affected == 0 {
		s.logger.Warn("decide loan lost race", zap.String("loan_id", id))
		return LoanResponse{}, loanerrors.ErrNotPending
	}

	if s.notifier != nil {
		msg := notification.LoanDecided(emp.Email, emp.Name, decision.String(), l.Amount.StringFixed(2))
		if err := s.notifier.Enqueue(ctx, tx, "loan", id, msg); err != nil {
			s.logger.Error("decide loan enqueue notification failed", zap.String("loan_id", id), zap.Error(err))
			return LoanResponse{}, apperror.Persistence(err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide loan commit failed", zap.String("loan_id", id), zap.Error(err))
		return LoanResponse{}, apperror.Persistence(err)
	}

	l.Status = decision
	l.DecidedBy = &deciderID
	l.DecidedAt = &decidedAt

	s.logger.Info("decide loan success",
		zap.String("request_id", rid),
		zap.String("loan_id", id),
		zap.String("employee_id", l.EmployeeID),
		zap.String("status", decision.String()),
	)
	return mapToResponse(*l), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]LoanResponse, error) {
	s.logger.Debug("list loan by employee requested", zap.String("employee_id", employeeID))

	if _, err := s.repo.FindEmployee(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanerrors.ErrEmployeeNotFound
		}
		s.logger.Error("list loan employee lookup failed", zap.Error(err))
		return nil, apperror.Persistence(err)
	}

	loans, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list loan by employee failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, apperror.Persistence(err)
	}
	return mapToListResponse(loans), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]LoanResponse, error) {
	filter, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}

	loans, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all loan failed", zap.Error(err))
		return nil, apperror.Persistence(err)
	}
	return mapToListResponse(loans), nil
}

func newLoanRequest(req CreateLoanRequest, appliedAt time.Time) (*LoanRequest, error) {
	employeeID := strings.TrimSpace(req.EmployeeID)
	if employeeID == "" {
		return nil, loanerrors.ErrEmployeeIDRequired
	}
	if req.Amount == nil {
		return nil, loanerrors.ErrAmountRequired
	}
	// dibulatkan dulu, 0.004 tersimpan sebagai 0.00
	amount := req.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, loanerrors.ErrInvalidAmount
	}
	if amount.GreaterThan(MaxAmount) {
		return nil, loanerrors.ErrAmountTooLarge
	}

	return &LoanRequest{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Amount:     amount,
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
		return "", loanerrors.ErrInvalidStatusFilter
	}
	return status, nil
}

func mapToResponse(l LoanRequest) LoanResponse {
	resp := LoanResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID,
		Amount:     l.Amount,
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

func mapToListResponse(loans []LoanRequest) []LoanResponse {
	res := make([]LoanResponse, len(loans))
	for i, l := range loans {
		res[i] = mapToResponse(l)
	}
	return res
}
