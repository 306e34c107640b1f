package payroll

import (
	"github.com/koolkhan8586/hr-management/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	payrolls.Use(middleware.ContextLogger(logger))
	{
		payrolls.GET("",
			middleware.RBACAuthorize(rbacService, "payroll", "read_self"),
			handler.GetAll,
		)
		payrolls.POST("",
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			middleware.Idempotency(rdb, logger),
			handler.Create,
		)
		payrolls.POST("/:id/post",
			middleware.RBACAuthorize(rbacService, "payroll", "post"),
			handler.Post,
		)
	}
}
