package loanerrors

import (
	"net/http"

	"github.com/koolkhan8586/hr-management/internal/shared/apperror"
)

var (
	ErrEmployeeIDRequired = apperror.RequiredField("Employee Id")
	ErrAmountRequired     = apperror.RequiredField("Amount")
	ErrInvalidAmount      = apperror.New(
		apperror.CodeInvalidInput,
		"Amount must be greater than 0",
		http.StatusBadRequest,
	)
	ErrAmountTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"Amount must not exceed 999999999999.99",
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
	ErrLoanNotFound = apperror.New(
		apperror.CodeNotFound,
		"Loan request not found",
		http.StatusNotFound,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"Loan request has already been decided",
		http.StatusConflict,
	)
)
