package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/communehq/commune/internal/application"
	"github.com/communehq/commune/pkg/response"
)

// ContentHandler exposes templates and items. Template writes are
// instance-admin territory; item writes go through the domain's gate
// chain.
type ContentHandler struct {
	Content *application.ContentService
	Logger  *logrus.Logger
}

func NewContentHandler(content *application.ContentService, logger *logrus.Logger) *ContentHandler {
	return &ContentHandler{Content: content, Logger: logger}
}

type templateRequest struct {
	NameInSingular   string         `json:"name_in_singular" binding:"required,slug"`
	NameInPlural     string         `json:"name_in_plural" binding:"required,slug"`
	DisplayName      string         `json:"display_name" binding:"required,min=1,max=64"`
	PropertiesSchema map[string]any `json:"properties_schema" binding:"required"`
}

// CreateTemplate POST /api/templates
func (h *ContentHandler) CreateTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	template, err := h.Content.CreateTemplate(c.Request.Context(), credFrom(c), req.NameInSingular, req.NameInPlural, req.DisplayName, req.PropertiesSchema)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, templateView(template), "template created", nil)
	c.JSON(resp.Status, resp)
}

// SetTemplate PUT /api/templates/:templateID
func (h *ContentHandler) SetTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	template, err := h.Content.SetTemplate(c.Request.Context(), credFrom(c), c.Param("templateID"), req.NameInSingular, req.NameInPlural, req.DisplayName, req.PropertiesSchema)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, templateView(template), "template updated", nil)
	c.JSON(resp.Status, resp)
}

// GetTemplate GET /api/templates/:templateID
func (h *ContentHandler) GetTemplate(c *gin.Context) {
	template, err := h.Content.GetTemplate(c.Request.Context(), c.Param("templateID"))
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, templateView(template), "", nil)
	c.JSON(resp.Status, resp)
}

// ListTemplates GET /api/templates
func (h *ContentHandler) ListTemplates(c *gin.Context) {
	limit, offset := pageParams(c)
	templates, err := h.Content.ListTemplates(c.Request.Context(), limit, offset)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, templateViews(templates), "", gin.H{"limit": limit, "offset": offset})
	c.JSON(resp.Status, resp)
}

type createItemRequest struct {
	GroupID    string         `json:"group_id" binding:"required,entityid"`
	TemplateID string         `json:"template_id" binding:"required,entityid"`
	Title      string         `json:"title" binding:"required,min=1,max=128"`
	Properties map[string]any `json:"properties" binding:"required"`
}

// CreateItem POST /api/items
func (h *ContentHandler) CreateItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.Content.CreateItem(c.Request.Context(), credFrom(c), req.GroupID, req.TemplateID, req.Title, req.Properties)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, itemView(item), "item created", nil)
	c.JSON(resp.Status, resp)
}

type setItemRequest struct {
	Title      string         `json:"title" binding:"required,min=1,max=128"`
	Properties map[string]any `json:"properties" binding:"required"`
}

// SetItem PUT /api/items/:itemID
func (h *ContentHandler) SetItem(c *gin.Context) {
	var req setItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.Content.SetItem(c.Request.Context(), credFrom(c), c.Param("itemID"), req.Title, req.Properties)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, itemView(item), "item updated", nil)
	c.JSON(resp.Status, resp)
}

// GetItem GET /api/items/:itemID
func (h *ContentHandler) GetItem(c *gin.Context) {
	item, err := h.Content.GetItem(c.Request.Context(), c.Param("itemID"))
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, itemView(item), "", nil)
	c.JSON(resp.Status, resp)
}

// ListItems GET /api/items?template_id=&group_id=
func (h *ContentHandler) ListItems(c *gin.Context) {
	limit, offset := pageParams(c)
	items, err := h.Content.ListItems(c.Request.Context(), c.Query("template_id"), c.Query("group_id"), limit, offset)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, itemViews(items), "", gin.H{"limit": limit, "offset": offset})
	c.JSON(resp.Status, resp)
}

// SearchItems GET /api/items/search?q=
func (h *ContentHandler) SearchItems(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		resp := response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		c.JSON(resp.Status, resp)
		return
	}
	limit, _ := pageParams(c)
	hits, err := h.Content.SearchItems(c.Request.Context(), q, limit)
	if err != nil {
		domainError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, hits, "", nil)
	c.JSON(resp.Status, resp)
}
