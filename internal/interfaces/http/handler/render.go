package handler

import (
	"io"
	"net/http"
	"strings"

	printingapp "github.com/bizledger/backend/internal/application/printing"
	"github.com/gin-gonic/gin"
)

// RenderHandler handles receipt rendering endpoints
type RenderHandler struct {
	BaseHandler
	renderService   *printingapp.RenderService
	templateService *printingapp.TemplateService
}

// NewRenderHandler creates a new RenderHandler
func NewRenderHandler(renderService *printingapp.RenderService, templateService *printingapp.TemplateService) *RenderHandler {
	return &RenderHandler{
		renderService:   renderService,
		templateService: templateService,
	}
}

// RenderReceipt godoc
//
//	@ID				renderReceipt
//
//	@Summary		Render a receipt
//	@Description	Compose a receipt document from transaction data and return the
//	@Description	document tree plus its HTML form. Without a template_id the tenant
//	@Description	default is used, falling back to the built-in layout.
//	@Tags			receipts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		printingapp.RenderReceiptRequest	true	"Render request"
//	@Success		200		{object}	APIResponse[printingapp.RenderReceiptResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/receipts/render [post]
func (h *RenderHandler) RenderReceipt(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req printingapp.RenderReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.renderService.RenderReceipt(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// GetArchivedRender godoc
//
//	@ID				getArchivedRender
//
//	@Summary		Fetch an archived render
//	@Description	Stream the HTML of a previously archived render. Paths come from
//	@Description	the archive_url returned by the render endpoint.
//	@Tags			receipts
//	@Produce		html
//	@Param			path	path		string	true	"Archive path"
//	@Success		200		{string}	string	"Rendered HTML"
//	@Failure		404		{object}	ErrorResponse
//	@Router			/receipts/rendered/{path} [get]
func (h *RenderHandler) GetArchivedRender(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	path := strings.TrimPrefix(c.Param("path"), "/")
	reader, err := h.renderService.GetArchivedRender(c.Request.Context(), tenantID, path)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	defer func() {
		_ = reader.Close()
	}()

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

// GetSectionTypes godoc
//
//	@ID				getReceiptSectionTypes
//
//	@Summary		List section types
//	@Description	Retrieve the section types a template may contain
//	@Tags			receipts
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]printingapp.SectionTypeResponse]
//	@Router			/receipts/section-types [get]
func (h *RenderHandler) GetSectionTypes(c *gin.Context) {
	h.Success(c, h.templateService.GetSectionTypes())
}

// GetPaperSizes godoc
//
//	@ID				getReceiptPaperSizes
//
//	@Summary		List paper sizes
//	@Description	Retrieve the supported thermal paper sizes with their widths in points
//	@Tags			receipts
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]printingapp.PaperSizeResponse]
//	@Router			/receipts/paper-sizes [get]
func (h *RenderHandler) GetPaperSizes(c *gin.Context) {
	h.Success(c, h.templateService.GetPaperSizes())
}
