package report

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/koolkhan8586/hr-management/internal/shared/apperror"
	"github.com/koolkhan8586/hr-management/internal/shared/contextutil"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	SheetLeaves   = "Leave Requests"
	SheetLoans    = "Loan Requests"
	SheetPayrolls = "Payroll Postings"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	leaveHeader   = []any{"ID", "Employee ID", "Employee", "Type", "Start Date", "Days", "Reason", "Status", "Applied At", "Decided By", "Decided At"}
	loanHeader    = []any{"ID", "Employee ID", "Employee", "Amount", "Reason", "Status", "Applied At", "Decided By", "Decided At"}
	payrollHeader = []any{"ID", "Employee ID", "Employee", "Period", "Basic Salary", "Allowances", "Deductions", "Net", "Status", "Posted By", "Posted At"}
)

type Service interface {
	ExportApprovals(ctx context.Context) ([]byte, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) ExportApprovals(ctx context.Context) ([]byte, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("export approvals requested", zap.String("request_id", rid))

	names, err := s.repo.EmployeeNames(ctx)
	if err != nil {
		s.logger.Error("export approvals employee lookup failed", zap.Error(err))
		return nil, apperror.Persistence(err)
	}
	leaves, err := s.repo.Leaves(ctx)
	if err != nil {
		s.logger.Error("export approvals leave query failed", zap.Error(err))
		return nil, apperror.Persistence(err)
	}
	loans, err := s.repo.Loans(ctx)
	if err != nil {
		s.logger.Error("export approvals loan query failed", zap.Error(err))
		return nil, apperror.Persistence(err)
	}
	payrolls, err := s.repo.Payrolls(ctx)
	if err != nil {
		s.logger.Error("export approvals payroll query failed", zap.Error(err))
		return nil, apperror.Persistence(err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetLeaves); err != nil {
		return nil, s.buildFailed(err)
	}
	for _, name := range []string{SheetLoans, SheetPayrolls} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, s.buildFailed(err)
		}
	}

	leaveRows := make([][]any, 0, len(leaves))
	for _, l := range leaves {
		leaveRows = append(leaveRows, []any{
			l.ID.String(), l.EmployeeID, names[l.EmployeeID], string(l.LeaveType),
			l.StartDate.Format("2006-01-02"), l.Days, l.Reason, l.Status.String(),
			formatTime(&l.AppliedAt), deref(l.DecidedBy), formatTime(l.DecidedAt),
		})
	}
	loanRows := make([][]any, 0, len(loans))
	for _, l := range loans {
		loanRows = append(loanRows, []any{
			l.ID.String(), l.EmployeeID, names[l.EmployeeID], l.Amount.InexactFloat64(),
			l.Reason, l.Status.String(),
			formatTime(&l.AppliedAt), deref(l.DecidedBy), formatTime(l.DecidedAt),
		})
	}
	payrollRows := make([][]any, 0, len(payrolls))
	for _, p := range payrolls {
		payrollRows = append(payrollRows, []any{
			p.ID.String(), p.EmployeeID, names[p.EmployeeID], p.Period,
			p.BasicSalary.InexactFloat64(), p.Allowances.InexactFloat64(),
			p.Deductions.InexactFloat64(), p.Net.InexactFloat64(),
			p.Status, deref(p.PostedBy), formatTime(p.PostedAt),
		})
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, s.buildFailed(err)
	}

	for _, sheet := range []struct {
		name   string
		header []any
		rows   [][]any
	}{
		{SheetLeaves, leaveHeader, leaveRows},
		{SheetLoans, loanHeader, loanRows},
		{SheetPayrolls, payrollHeader, payrollRows},
	} {
		if err := writeSheet(f, sheet.name, sheet.header, sheet.rows, headerStyle); err != nil {
			return nil, s.buildFailed(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, s.buildFailed(err)
	}

	s.logger.Info("export approvals success",
		zap.String("request_id", rid),
		zap.Int("leaves", len(leaves)),
		zap.Int("loans", len(loans)),
		zap.Int("payrolls", len(payrolls)),
	)
	return buf.Bytes(), nil
}

func (s *service) buildFailed(err error) error {
	s.logger.Error("export approvals build workbook failed", zap.Error(err))
	return apperror.Wrap(err, apperror.CodeInternalError, "Failed to build report", http.StatusInternalServerError)
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
