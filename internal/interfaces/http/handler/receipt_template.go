package handler

import (
	printingapp "github.com/bizledger/backend/internal/application/printing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceiptTemplateHandler handles receipt template management endpoints
type ReceiptTemplateHandler struct {
	BaseHandler
	templateService *printingapp.TemplateService
}

// NewReceiptTemplateHandler creates a new ReceiptTemplateHandler
func NewReceiptTemplateHandler(templateService *printingapp.TemplateService) *ReceiptTemplateHandler {
	return &ReceiptTemplateHandler{
		templateService: templateService,
	}
}

// CreateTemplate godoc
//
//	@ID				createReceiptTemplate
//
//	@Summary		Create receipt template
//	@Description	Create a new receipt template for the current tenant
//	@Tags			receipt-templates
//	@Accept			json
//	@Produce		json
//	@Param			request	body		printingapp.CreateTemplateRequest	true	"Template definition"
//	@Success		201		{object}	APIResponse[printingapp.TemplateResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/receipt-templates [post]
func (h *ReceiptTemplateHandler) CreateTemplate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req printingapp.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.templateService.CreateTemplate(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// GetTemplate godoc
//
//	@ID				getReceiptTemplate
//
//	@Summary		Get receipt template by ID
//	@Description	Retrieve a single receipt template
//	@Tags			receipt-templates
//	@Produce		json
//	@Param			id	path		string	true	"Template ID"	format(uuid)
//	@Success		200	{object}	APIResponse[printingapp.TemplateResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/receipt-templates/{id} [get]
func (h *ReceiptTemplateHandler) GetTemplate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	result, err := h.templateService.GetTemplate(c.Request.Context(), tenantID, templateID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ListTemplates godoc
//
//	@ID				listReceiptTemplates
//
//	@Summary		List receipt templates
//	@Description	Retrieve a paginated list of receipt templates
//	@Tags			receipt-templates
//	@Produce		json
//	@Param			page		query		int		false	"Page number"		default(1)
//	@Param			page_size	query		int		false	"Page size"			default(20)
//	@Param			order_by	query		string	false	"Order by field"	default(created_at)
//	@Param			order_dir	query		string	false	"Order direction"	Enums(asc, desc)	default(desc)
//	@Param			search		query		string	false	"Search in name and description"
//	@Param			status		query		string	false	"Filter by status"	Enums(ACTIVE, INACTIVE)
//	@Success		200			{object}	APIResponse[[]printingapp.TemplateResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/receipt-templates [get]
func (h *ReceiptTemplateHandler) ListTemplates(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	req := printingapp.ListTemplatesRequest{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.templateService.ListTemplates(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.Size)
}

// UpdateTemplate godoc
//
//	@ID				updateReceiptTemplate
//
//	@Summary		Update receipt template
//	@Description	Update an existing receipt template; omitted fields are left unchanged
//	@Tags			receipt-templates
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Template ID"	format(uuid)
//	@Param			request	body		printingapp.UpdateTemplateRequest	true	"Fields to update"
//	@Success		200		{object}	APIResponse[printingapp.TemplateResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/receipt-templates/{id} [put]
func (h *ReceiptTemplateHandler) UpdateTemplate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	var req printingapp.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.templateService.UpdateTemplate(c.Request.Context(), tenantID, templateID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteTemplate godoc
//
//	@ID				deleteReceiptTemplate
//
//	@Summary		Delete receipt template
//	@Description	Delete a receipt template. The default template cannot be deleted.
//	@Tags			receipt-templates
//	@Produce		json
//	@Param			id	path	string	true	"Template ID"	format(uuid)
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/receipt-templates/{id} [delete]
func (h *ReceiptTemplateHandler) DeleteTemplate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), tenantID, templateID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// SetDefaultTemplate godoc
//
//	@ID				setDefaultReceiptTemplate
//
//	@Summary		Set default receipt template
//	@Description	Mark a template as the tenant default used for rendering
//	@Tags			receipt-templates
//	@Produce		json
//	@Param			id	path		string	true	"Template ID"	format(uuid)
//	@Success		200	{object}	APIResponse[printingapp.TemplateResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/receipt-templates/{id}/default [post]
func (h *ReceiptTemplateHandler) SetDefaultTemplate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	result, err := h.templateService.SetDefaultTemplate(c.Request.Context(), tenantID, templateID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ActivateTemplate godoc
//
//	@ID				activateReceiptTemplate
//
//	@Summary		Activate receipt template
//	@Tags			receipt-templates
//	@Produce		json
//	@Param			id	path		string	true	"Template ID"	format(uuid)
//	@Success		200	{object}	APIResponse[printingapp.TemplateResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/receipt-templates/{id}/activate [post]
func (h *ReceiptTemplateHandler) ActivateTemplate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	result, err := h.templateService.ActivateTemplate(c.Request.Context(), tenantID, templateID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// DeactivateTemplate godoc
//
//	@ID				deactivateReceiptTemplate
//
//	@Summary		Deactivate receipt template
//	@Description	Deactivate a template so it is no longer used for rendering. The default template cannot be deactivated.
//	@Tags			receipt-templates
//	@Produce		json
//	@Param			id	path		string	true	"Template ID"	format(uuid)
//	@Success		200	{object}	APIResponse[printingapp.TemplateResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/receipt-templates/{id}/deactivate [post]
func (h *ReceiptTemplateHandler) DeactivateTemplate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	result, err := h.templateService.DeactivateTemplate(c.Request.Context(), tenantID, templateID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// GetPresets godoc
//
//	@ID				getReceiptTemplatePresets
//
//	@Summary		List built-in template presets
//	@Description	Retrieve the built-in receipt layouts that can seed a new template
//	@Tags			receipt-templates
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]printingapp.PresetResponse]
//	@Router			/receipt-templates/presets [get]
func (h *ReceiptTemplateHandler) GetPresets(c *gin.Context) {
	h.Success(c, h.templateService.GetPresets())
}
