package bill

import (
	"billsplit-backend/internal/services"
	"billsplit-backend/internal/storage"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, svc *services.BillService, store storage.ProofStore) {
	h := NewHandler(svc, store)

	bills := router.Group("/bills")
	{
		bills.GET("", h.History)
		bills.GET("/pending", h.Pending)
		bills.GET("/overview", h.Overview)
		bills.POST("/:id/pay", h.UploadProof)
	}
}
