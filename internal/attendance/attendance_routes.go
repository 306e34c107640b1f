package attendance

import (
	"github.com/koolkhan8586/hr-management/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, logger *zap.Logger) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	attendances.Use(middleware.ContextLogger(logger))
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetAll)
		attendances.POST("/clock-in", middleware.RateLimitByUser(1, 3), middleware.RBACAuthorize(rbacService, "attendance", "clock"), h.ClockIn)
		attendances.POST("/clock-out", middleware.RateLimitByUser(1, 3), middleware.RBACAuthorize(rbacService, "attendance", "clock"), h.ClockOut)
	}
}
