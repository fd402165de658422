package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the sync endpoints on the shop resource
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	shops := rg.Group("/shops/:shopID")
	{
		shops.POST("/sync", h.TriggerSync)
		shops.GET("/sync/history", h.GetHistory)
		shops.POST("/orders/:orderID/push", h.PushOrder)
	}
}

// RegisterRoutes registers the system endpoints
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/info", h.GetSystemInfo)
		system.GET("/health", h.Health)
	}
}
