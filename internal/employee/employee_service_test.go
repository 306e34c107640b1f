package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/koolkhan8586/hr-management/internal/employee"
	employeeerrors "github.com/koolkhan8586/hr-management/internal/employee/errors"
	employeeMock "github.com/koolkhan8586/hr-management/internal/employee/mock"
	"github.com/koolkhan8586/hr-management/internal/notification"
	notificationMock "github.com/koolkhan8586/hr-management/internal/notification/mock"
	"github.com/koolkhan8586/hr-management/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	notifier  *notificationMock.MockEnqueuer
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	dbRedis, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	notifier := notificationMock.NewMockEnqueuer(ctrl)

	svc := employee.NewServiceWithNotifier(db, repo, notifier, dbRedis)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		notifier:  notifier,
		redismock: redisMock,
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success - defaults applied and welcome queued", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := employee.CreateEmployeeRequest{
			ID:       "E1",
			Name:     "Ayesha Khan",
			Email:    "Ayesha@Example.com",
			Password: "secret123",
		}

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "E1", e.ID)
				assert.Equal(t, "ayesha@example.com", e.Email)
				assert.Equal(t, employee.RoleEmployee, e.Role)
				assert.Equal(t, 14, e.LeaveAnnual)
				assert.Equal(t, 10, e.LeaveCasual)
				assert.True(t, e.BasicSalary.IsZero())
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte("secret123")))
				return nil
			})
		deps.notifier.EXPECT().
			Enqueue(ctx, gomock.Any(), "employee", "E1", notification.Welcome("ayesha@example.com", "Ayesha Khan")).
			Return(nil)
		deps.sqlMock.ExpectCommit()
		deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "E1", resp.ID)
		assert.Equal(t, 14, resp.LeaveAnnual)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("explicit balances and salary are kept", func(t *testing.T) {
		deps := setupServiceTest(t)
		salary := decimal.RequireFromString("4500.50")
		req := employee.CreateEmployeeRequest{
			ID:          "E2",
			Name:        "Bilal",
			Email:       "bilal@example.com",
			Role:        employee.RoleAdmin,
			LeaveAnnual: intPtr(0),
			LeaveCasual: intPtr(3),
			BasicSalary: &salary,
		}

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, 0, e.LeaveAnnual)
				assert.Equal(t, 3, e.LeaveCasual)
				assert.Equal(t, employee.RoleAdmin, e.Role)
				assert.True(t, salary.Equal(e.BasicSalary))
				assert.Empty(t, e.PasswordHash)
				return nil
			})
		deps.notifier.EXPECT().Enqueue(ctx, gomock.Any(), "employee", "E2", gomock.Any()).Return(nil)
		deps.sqlMock.ExpectCommit()
		deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		_, err := deps.service.Create(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("negative salary rejected before tx", func(t *testing.T) {
		deps := setupServiceTest(t)
		neg := decimal.NewFromInt(-1)

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			ID: "E3", Name: "X", Email: "x@example.com", Deductions: &neg,
		})

		assert.ErrorIs(t, err, employeeerrors.ErrNegativeAmount)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"})
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{ID: "E4", Name: "Dup", Email: "dup@example.com"})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate id on sqlite maps to conflict", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(errors.New("UNIQUE constraint failed: employees.id"))
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{ID: "E1", Name: "Dup", Email: "dup@example.com"})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeIDAlreadyExists)
	})

	t.Run("enqueue failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.notifier.EXPECT().
			Enqueue(ctx, gomock.Any(), "employee", "E5", gomock.Any()).
			Return(errors.New("outbox down"))
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{ID: "E5", Name: "Y", Email: "y@example.com"})

		assert.Equal(t, apperror.CodePersistenceError, apperror.ToHTTP(err).Code)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("begin tx failure", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin().WillReturnError(errors.New("db down"))

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{ID: "E6", Name: "Z", Email: "z@example.com"})

		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, 500, httpErr.Status)
		assert.Equal(t, apperror.CodePersistenceError, httpErr.Code)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached := []employee.EmployeeOptionResponse{{ID: "E1", Name: "Ayesha", Email: "a@example.com"}}
		raw, _ := json.Marshal(cached)
		deps.redismock.ExpectGet(employee.EmployeeOptionsKey).SetVal(string(raw))

		resp, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(employee.EmployeeOptionsKey).RedisNil()
		deps.repo.EXPECT().FindOptions(ctx).Return([]employee.Employee{
			{ID: "E1", Name: "Ayesha", Email: "a@example.com"},
		}, nil)

		expected := []employee.EmployeeOptionResponse{{ID: "E1", Name: "Ayesha", Email: "a@example.com"}}
		raw, _ := json.Marshal(expected)
		deps.redismock.ExpectSet(employee.EmployeeOptionsKey, raw, time.Hour).SetVal("OK")

		resp, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Equal(t, expected, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(employee.EmployeeOptionsKey).RedisNil()
		deps.repo.EXPECT().FindOptions(ctx).Return(nil, errors.New("boom"))

		_, err := deps.service.GetOptions(ctx)

		assert.Equal(t, apperror.CodePersistenceError, apperror.ToHTTP(err).Code)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(ctx, "E1").Return(&employee.Employee{ID: "E1", Name: "Ayesha", LeaveAnnual: 11}, nil)

		resp, err := deps.service.GetByID(ctx, "E1")

		assert.NoError(t, err)
		assert.Equal(t, 11, resp.LeaveAnnual)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(ctx, "nope").Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, "nope")

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("writes only present fields", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			UpdateFields(ctx, "E1", map[string]any{"leave_annual": 20, "name": "Ayesha K"}).
			Return(int64(1), nil)
		deps.repo.EXPECT().
			FindByID(ctx, "E1").
			Return(&employee.Employee{ID: "E1", Name: "Ayesha K", LeaveAnnual: 20, LeaveCasual: 10}, nil)
		deps.sqlMock.ExpectCommit()
		deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		resp, err := deps.service.Update(ctx, "E1", employee.UpdateEmployeeRequest{
			Name:        strPtr("Ayesha K"),
			LeaveAnnual: intPtr(20),
		})

		assert.NoError(t, err)
		assert.Equal(t, 20, resp.LeaveAnnual)
		assert.Equal(t, 10, resp.LeaveCasual)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("empty body", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Update(ctx, "E1", employee.UpdateEmployeeRequest{})

		assert.ErrorIs(t, err, employeeerrors.ErrNoFieldsToUpdate)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().UpdateFields(ctx, "ghost", gomock.Any()).Return(int64(0), nil)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Update(ctx, "ghost", employee.UpdateEmployeeRequest{LeaveCasual: intPtr(1)})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, "E1").Return(int64(1), nil)
		deps.sqlMock.ExpectCommit()
		deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		err := deps.service.Delete(ctx, "E1")

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, "ghost").Return(int64(0), nil)
		deps.sqlMock.ExpectRollback()

		err := deps.service.Delete(ctx, "ghost")

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
