package handler

import (
	"github.com/bizledger/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// ReceiptTemplateRoutes creates the route group for template management endpoints
func ReceiptTemplateRoutes(handler *ReceiptTemplateHandler, tenantMiddleware gin.HandlerFunc) *router.DomainGroup {
	group := router.NewDomainGroup("receipt-templates", "/receipt-templates")
	group.Use(tenantMiddleware)

	// Built-in layouts (static path must be registered alongside :id)
	group.GET("/presets", handler.GetPresets)

	// Template CRUD
	group.POST("", handler.CreateTemplate)
	group.GET("", handler.ListTemplates)
	group.GET("/:id", handler.GetTemplate)
	group.PUT("/:id", handler.UpdateTemplate)
	group.DELETE("/:id", handler.DeleteTemplate)

	// Lifecycle
	group.POST("/:id/default", handler.SetDefaultTemplate)
	group.POST("/:id/activate", handler.ActivateTemplate)
	group.POST("/:id/deactivate", handler.DeactivateTemplate)

	return group
}

// ReceiptRenderRoutes creates the route group for rendering endpoints
func ReceiptRenderRoutes(handler *RenderHandler, tenantMiddleware gin.HandlerFunc) *router.DomainGroup {
	group := router.NewDomainGroup("receipts", "/receipts")
	group.Use(tenantMiddleware)

	group.POST("/render", handler.RenderReceipt)
	group.GET("/rendered/*path", handler.GetArchivedRender)

	// Reference data
	group.GET("/section-types", handler.GetSectionTypes)
	group.GET("/paper-sizes", handler.GetPaperSizes)

	return group
}
