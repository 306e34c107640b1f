package payrollerrors

import (
	"net/http"

	"github.com/koolkhan8586/hr-management/internal/shared/apperror"
)

var (
	ErrEmployeeIDRequired  = apperror.RequiredField("Employee Id")
	ErrInvalidPeriodFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Period must use format YYYY-MM",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll posting not found",
		http.StatusNotFound,
	)
	ErrPayrollExists = apperror.New(
		apperror.CodeConflict,
		"Payroll for this employee and period already exists",
		http.StatusConflict,
	)
	ErrAlreadyPosted = apperror.New(
		apperror.CodeInvalidState,
		"Payroll has already been posted",
		http.StatusConflict,
	)
	ErrNegativeNet = apperror.New(
		apperror.CodeInvalidInput,
		"Deductions exceed basic salary plus allowances",
		http.StatusBadRequest,
	)
)
