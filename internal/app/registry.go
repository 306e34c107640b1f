package app

import (
	"context"
	"errors"
	"strings"

	"github.com/koolkhan8586/hr-management/internal/attendance"
	"github.com/koolkhan8586/hr-management/internal/auth"
	"github.com/koolkhan8586/hr-management/internal/config"
	"github.com/koolkhan8586/hr-management/internal/employee"
	"github.com/koolkhan8586/hr-management/internal/leave"
	"github.com/koolkhan8586/hr-management/internal/loan"
	"github.com/koolkhan8586/hr-management/internal/messaging/kafka"
	"github.com/koolkhan8586/hr-management/internal/notification"
	"github.com/koolkhan8586/hr-management/internal/payroll"
	"github.com/koolkhan8586/hr-management/internal/rbac"
	"github.com/koolkhan8586/hr-management/internal/rbac/infra"
	"github.com/koolkhan8586/hr-management/internal/report"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg *config.Config,
	deps *Infra,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(deps.GormDB)
	authRepo := auth.NewRepository(deps.GormDB)
	employeeRepo := employee.NewRepository(deps.GormDB)
	leaveRepo := leave.NewRepository(deps.GormDB)
	loanRepo := loan.NewRepository(deps.GormDB)
	outboxRepo := kafka.NewOutboxRepository(deps.GormDB)
	payrollRepo := payroll.NewRepository(deps.GormDB)
	reportRepo := report.NewRepository(deps.GormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, rbac.DefaultPermissions, rbac.RoleInheritance, logger)
	if err != nil {
		return err
	}

	// --- Services ---
	notifier := notification.NewOutboxEnqueuer(outboxRepo, cfg.AdminAddresses(), logger)
	authService := auth.NewService(authRepo, cfg.JWTSecret, logger)
	attendanceService := attendance.NewService(deps.SQLDB, attendanceRepo, logger)
	employeeService := employee.NewServiceWithNotifier(deps.SQLDB, employeeRepo, notifier, deps.Redis, logger)
	leaveService := leave.NewService(deps.SQLDB, leaveRepo, notifier, leave.Policy{Floor: cfg.LeaveBalanceFloor}, logger)
	loanService := loan.NewService(deps.SQLDB, loanRepo, notifier, logger)
	payrollService := payroll.NewService(deps.SQLDB, payrollRepo, notifier, logger)
	reportService := report.NewService(reportRepo, logger)

	if err := seedAdmin(ctx, cfg, employeeRepo, employeeService, logger); err != nil {
		return err
	}

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService)
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	loanHandler := loan.NewHandler(loanService, logger)
	payrollHandler := payroll.NewHandler(payrollService, logger)
	rbacHandler := rbac.NewHandler(rbacService)
	reportHandler := report.NewHandler(reportService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, logger)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		leave.RegisterRoutes(api, leaveHandler, rbacService, deps.Redis, logger)
		loan.RegisterRoutes(api, loanHandler, rbacService, deps.Redis, logger)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, deps.Redis, logger)
		rbac.RegisterRoutes(api, rbacHandler)
		report.RegisterRoutes(api, reportHandler, rbacService, logger)
	}

	return nil
}

// seedAdmin membuat akun admin awal dari ADMIN_EMAIL/ADMIN_PASSWORD bila belum ada.
func seedAdmin(
	ctx context.Context,
	cfg *config.Config,
	repo employee.Repository,
	svc employee.Service,
	logger *zap.Logger,
) error {
	email := strings.TrimSpace(cfg.AdminEmail)
	if email == "" || cfg.AdminPassword == "" {
		return nil
	}

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	_, err := svc.Create(ctx, employee.CreateEmployeeRequest{
		ID:       cfg.AdminID,
		Name:     cfg.AdminName,
		Email:    email,
		Role:     employee.RoleAdmin,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		return err
	}
	logger.Info("admin account seeded", zap.String("employee_id", cfg.AdminID), zap.String("email", email))
	return nil
}
