package loan

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
	loans := r.Group("/loan-requests")
	loans.Use(middleware.AuthMiddleware())
	loans.Use(middleware.ContextLogger(logger))
	{
		loans.POST("",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "loan", "create"),
			middleware.Idempotency(rdb, logger),
			handler.Create,
		)
		loans.GET("",
			middleware.RBACAuthorize(rbacService, "loan", "read"),
			handler.GetAll,
		)
		loans.GET("/:employeeId",
			middleware.RBACAuthorize(rbacService, "loan", "read_self"),
			handler.ListByEmployee,
		)
		loans.PUT("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "loan", "decide"),
			handler.Decide,
		)
	}
}
