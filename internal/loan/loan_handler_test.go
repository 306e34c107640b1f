package loan_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/koolkhan8586/hr-management/internal/loan"
	loanerrors "github.com/koolkhan8586/hr-management/internal/loan/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeLoanService struct {
	submitFn         func(ctx context.Context, req loan.CreateLoanRequest) (loan.LoanResponse, error)
	decideFn         func(ctx context.Context, deciderID, id string, req loan.DecideLoanRequest) (loan.LoanResponse, error)
	listByEmployeeFn func(ctx context.Context, employeeID string) ([]loan.LoanResponse, error)
	getAllFn         func(ctx context.Context, status string) ([]loan.LoanResponse, error)
}

func (f *fakeLoanService) Submit(ctx context.Context, req loan.CreateLoanRequest) (loan.LoanResponse, error) {
	return f.submitFn(ctx, req)
}

func (f *fakeLoanService) Decide(ctx context.Context, deciderID, id string, req loan.DecideLoanRequest) (loan.LoanResponse, error) {
	return f.decideFn(ctx, deciderID, id, req)
}

func (f *fakeLoanService) ListByEmployee(ctx context.Context, employeeID string) ([]loan.LoanResponse, error) {
	return f.listByEmployeeFn(ctx, employeeID)
}

func (f *fakeLoanService) GetAll(ctx context.Context, status string) ([]loan.LoanResponse, error) {
	return f.getAllFn(ctx, status)
}

func newLoanContext(method, target, body, employeeID, role string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("employee_id", employeeID)
	c.Set("role", role)
	return c, w
}

func TestLoanHandler_Create(t *testing.T) {
	t.Run("amount as string or number", func(t *testing.T) {
		for _, body := range []string{
			`{"employeeId":"E1","amount":"2500.75","reason":"rent"}`,
			`{"employeeId":"E1","amount":2500.75,"reason":"rent"}`,
		} {
			svc := &fakeLoanService{
				submitFn: func(ctx context.Context, req loan.CreateLoanRequest) (loan.LoanResponse, error) {
					if assert.NotNil(t, req.Amount) {
						assert.Equal(t, "2500.75", req.Amount.String())
					}
					return loan.LoanResponse{ID: "LN1", Status: "Pending"}, nil
				},
			}
			c, w := newLoanContext(http.MethodPost, "/api/v1/loan-requests", body, "E1", "employee")

			loan.NewHandler(svc).Create(c)

			assert.Equal(t, http.StatusCreated, w.Code)
		}
	})

	t.Run("missing amount", func(t *testing.T) {
		c, w := newLoanContext(http.MethodPost, "/api/v1/loan-requests", `{"employeeId":"E1"}`, "E1", "employee")

		loan.NewHandler(&fakeLoanService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("other employee forbidden", func(t *testing.T) {
		c, w := newLoanContext(http.MethodPost, "/api/v1/loan-requests", `{"employeeId":"E2","amount":"10"}`, "E1", "employee")

		loan.NewHandler(&fakeLoanService{}).Create(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestLoanHandler_Decide(t *testing.T) {
	svc := &fakeLoanService{
		decideFn: func(ctx context.Context, deciderID, id string, req loan.DecideLoanRequest) (loan.LoanResponse, error) {
			return loan.LoanResponse{}, loanerrors.ErrNotPending
		},
	}
	c, w := newLoanContext(http.MethodPut, "/api/v1/loan-requests/LN1", `{"status":"Approved"}`, "A1", "admin")
	c.Params = gin.Params{{Key: "id", Value: "LN1"}}

	loan.NewHandler(svc).Decide(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")
}
