package bill

import (
	"billsplit-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, svc *services.BillService) {
	h := NewHandler(svc)

	bills := router.Group("/bills")
	{
		bills.POST("", h.Create)
		bills.GET("", h.List)
		bills.GET("/active", h.Active)
		bills.GET("/completed", h.Completed)
		bills.PUT("/:id/approve/:userId", h.Approve)
		bills.PUT("/:id/decline/:userId", h.Decline)
		bills.POST("/:id/remind", h.Remind)
		bills.DELETE("/:id", h.Delete)
	}
}
