package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/koolkhan8586/hr-management/internal/employee/errors"
	"github.com/koolkhan8586/hr-management/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_employee_email":
			return employeeerrors.ErrEmployeeAlreadyExists
		case "employees_pkey":
			return employeeerrors.ErrEmployeeIDAlreadyExists
		}
	}

	// fallback untuk driver lain (sqlite: "UNIQUE constraint failed: employees.email")
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") || strings.Contains(errMsg, "unique constraint failed") {
		if strings.Contains(errMsg, "email") {
			return employeeerrors.ErrEmployeeAlreadyExists
		}
		return employeeerrors.ErrEmployeeIDAlreadyExists
	}

	return apperror.Persistence(err)
}
