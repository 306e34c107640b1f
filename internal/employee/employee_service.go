package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	employeeerrors "github.com/koolkhan8586/hr-management/internal/employee/errors"
	"github.com/koolkhan8586/hr-management/internal/notification"
	"github.com/koolkhan8586/hr-management/internal/shared/apperror"
	"github.com/koolkhan8586/hr-management/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKey = "employees:options"
	optionsCacheTTL    = 1 * time.Hour
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	notifier notification.Enqueuer
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithNotifier(db, repo, nil, rdb, logger...)
}

func NewServiceWithNotifier(
	db *sql.DB,
	repo Repository,
	notifier notification.Enqueuer,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		notifier: notifier,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.ID),
		zap.String("email", req.Email),
	)

	empl, err := newEmployee(req)
	if err != nil {
		s.logger.Warn("create employee validation failed", zap.String("employee_id", req.ID), zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, apperror.Persistence(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.String("employee_id", empl.ID), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.notifier != nil {
		if err := s.notifier.Enqueue(ctx, tx, "employee", empl.ID, notification.Welcome(empl.Email, empl.Name)); err != nil {
			s.logger.Error("create employee enqueue welcome failed", zap.String("employee_id", empl.ID), zap.Error(err))
			return EmployeeResponse{}, apperror.Persistence(err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, apperror.Persistence(err)
	}

	s.invalidateOptions(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error) {
	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight supaya cache miss bersamaan hanya query sekali
	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, len(empls))
		for i, e := range empls {
			resp[i] = EmployeeOptionResponse{ID: e.ID, Name: e.Name, Email: e.Email}
		}

		// 3. Simpan ke Redis
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get employee options failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	fields, err := updateFields(req)
	if err != nil {
		s.logger.Warn("update employee validation failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, apperror.Persistence(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	affected, err := qtx.UpdateFields(ctx, id, fields)
	if err != nil {
		s.logger.Error("update employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if affected == 0 {
		s.logger.Warn("update employee not found", zap.String("employee_id", id))
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update employee reload failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, apperror.Persistence(err)
	}

	s.invalidateOptions(ctx)

	s.logger.Info("update employee success",
		zap.String("employee_id", id),
		zap.Int("fields", len(fields)),
	)
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete employee requested", zap.String("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return apperror.Persistence(err)
	}
	defer tx.Rollback()

	affected, err := s.repo.WithTx(tx).Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	if affected == 0 {
		s.logger.Warn("delete employee not found", zap.String("employee_id", id))
		return employeeerrors.ErrEmployeeNotFound
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return apperror.Persistence(err)
	}

	s.invalidateOptions(ctx)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func newEmployee(req CreateEmployeeRequest) (*Employee, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	empl := &Employee{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Role:        RoleEmployee,
		LeaveAnnual: DefaultLeaveAnnual,
		LeaveCasual: DefaultLeaveCasual,
		BasicSalary: decimal.Zero,
		Allowances:  decimal.Zero,
		Deductions:  decimal.Zero,
	}
	if empl.Name == "" {
		return nil, apperror.RequiredField("Name")
	}
	if req.Role != "" {
		empl.Role = req.Role
	}
	if req.LeaveAnnual != nil {
		empl.LeaveAnnual = *req.LeaveAnnual
	}
	if req.LeaveCasual != nil {
		empl.LeaveCasual = *req.LeaveCasual
	}
	for _, pair := range []struct {
		src *decimal.Decimal
		dst *decimal.Decimal
	}{
		{req.BasicSalary, &empl.BasicSalary},
		{req.Allowances, &empl.Allowances},
		{req.Deductions, &empl.Deductions},
	} {
		if pair.src == nil {
			continue
		}
		if pair.src.IsNegative() {
			return nil, employeeerrors.ErrNegativeAmount
		}
		*pair.dst = *pair.src
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		empl.PasswordHash = string(hash)
	}
	return empl, nil
}

// updateFields menerjemahkan field yang dikirim menjadi kolom yang akan ditulis.
func updateFields(req UpdateEmployeeRequest) (map[string]any, error) {
	fields := map[string]any{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperror.RequiredField("Name")
		}
		fields["name"] = name
	}
	if req.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if req.LeaveAnnual != nil {
		fields["leave_annual"] = *req.LeaveAnnual
	}
	if req.LeaveCasual != nil {
		fields["leave_casual"] = *req.LeaveCasual
	}
	for col, v := range map[string]*decimal.Decimal{
		"basic_salary": req.BasicSalary,
		"allowances":   req.Allowances,
		"deductions":   req.Deductions,
	} {
		if v == nil {
			continue
		}
		if v.IsNegative() {
			return nil, employeeerrors.ErrNegativeAmount
		}
		fields[col] = *v
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = string(hash)
	}

	if len(fields) == 0 {
		return nil, employeeerrors.ErrNoFieldsToUpdate
	}
	return fields, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:          empl.ID,
		Name:        empl.Name,
		Email:       empl.Email,
		Role:        empl.Role,
		LeaveAnnual: empl.LeaveAnnual,
		LeaveCasual: empl.LeaveCasual,
		BasicSalary: empl.BasicSalary,
		Allowances:  empl.Allowances,
		Deductions:  empl.Deductions,
	}
	if !empl.CreatedAt.IsZero() {
		resp.CreatedAt = empl.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
