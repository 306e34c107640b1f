package payroll

import (
	"net/http"

	"github.com/koolkhan8586/hr-management/internal/domain"
	"github.com/koolkhan8586/hr-management/internal/shared/apperror"
	"github.com/koolkhan8586/hr-management/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	actorID := c.GetString("employee_id")
	h.logger.Debug("http create payroll", zap.String("actor_id", actorID))

	var req CreatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		response.Error(c, http.StatusBadRequest, apperror.CodeValidationError, appErr.Message, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// GetAll: admin melihat semua, karyawan hanya slip miliknya.
func (h *Handler) GetAll(c *gin.Context) {
	period := c.Query("period")
	employeeID := c.Query("employeeId")
	if c.GetString("role") != domain.RoleAdmin {
		employeeID = c.GetString("employee_id")
	}
	h.logger.Debug("http get all payroll", zap.String("period", period), zap.String("employee_id", employeeID))

	resp, err := h.service.GetAll(c.Request.Context(), period, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) Post(c *gin.Context) {
	id := c.Param("id")
	actorID := c.GetString("employee_id")
	h.logger.Debug("http post payroll", zap.String("payroll_id", id), zap.String("actor_id", actorID))

	resp, err := h.service.Post(c.Request.Context(), actorID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
