package leaveerrors

import (
	"net/http"

	"github.com/koolkhan8586/hr-management/internal/shared/apperror"
)

var (
	ErrEmployeeIDRequired = apperror.RequiredField("Employee Id")
	ErrInvalidLeaveType   = apperror.New(
		apperror.CodeInvalidInput,
		"Type must be one of [AnnualLeave Casual Sick Other]",
		http.StatusBadRequest,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"Days must be greater than 0",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be one of [Approved Rejected]",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"Status filter must be one of [Pending Approved Rejected]",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"Leave request has already been decided",
		http.StatusConflict,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidState,
		"Approving this request would take the leave balance below the allowed floor",
		http.StatusConflict,
	)
)
