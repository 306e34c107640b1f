package app

import (
	"database/sql"
	"fmt"

	"github.com/koolkhan8586/hr-management/internal/attendance"
	"github.com/koolkhan8586/hr-management/internal/config"
	"github.com/koolkhan8586/hr-management/internal/employee"
	"github.com/koolkhan8586/hr-management/internal/leave"
	"github.com/koolkhan8586/hr-management/internal/loan"
	"github.com/koolkhan8586/hr-management/internal/messaging/kafka"
	"github.com/koolkhan8586/hr-management/internal/payroll"
	"github.com/koolkhan8586/hr-management/internal/shared/connection"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra menyimpan koneksi yang dipakai bersama oleh api, worker, dan consumer.
type Infra struct {
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
}

func models() []any {
	return []any{
		&employee.Employee{},
		&leave.LeaveRequest{},
		&loan.LoanRequest{},
		&attendance.Attendance{},
		&payroll.PayrollPosting{},
		&kafka.OutboxEvent{},
	}
}

// OpenDatabase membuka database sesuai DB_DRIVER lalu menjalankan AutoMigrate.
func OpenDatabase(cfg *config.Config) (*gorm.DB, *sql.DB, error) {
	var (
		gormDB *gorm.DB
		err    error
	)
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		gormDB, err = connection.OpenSQLite(cfg.DB.SQLitePath)
	default:
		gormDB, err = connection.ConnectGORMWithRetry(cfg.PostgresDSN(), cfg.DB.MaxRetries)
	}
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if err := connection.AutoMigrate(gormDB, models()...); err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return gormDB, sqlDB, nil
}

func OpenInfra(cfg *config.Config, logger *zap.Logger) (*Infra, error) {
	gormDB, sqlDB, err := OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established", zap.String("driver", cfg.DB.Driver))

	infra := &Infra{GormDB: gormDB, SQLDB: sqlDB}

	// redis opsional: tanpa redis, idempotency dan cache opsi karyawan dimatikan
	if cfg.Redis.Addr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.MaxRetries)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		infra.Redis = rdb
		logger.Info("redis connection established", zap.String("addr", cfg.Redis.Addr))
	}

	return infra, nil
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.SQLDB != nil {
		_ = i.SQLDB.Close()
	}
}
