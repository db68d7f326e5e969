package attributes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"RENTA-backend/internal/platform/apperr"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// attributes
	r.POST("/attributes", h.CreateAttribute)
	r.GET("/attributes", h.ListAttributes)
	r.GET("/attributes/:attribute_id", h.GetAttribute)
	r.PUT("/attributes/:attribute_id", h.UpdateAttribute)
	r.DELETE("/attributes/:attribute_id", h.DeleteAttribute)

	// attribute values
	r.POST("/attribute-values", h.CreateValue)
	r.GET("/attribute-values", h.ListValues)
	r.GET("/attribute-values/:attribute_value_id", h.GetValue)
	r.PUT("/attribute-values/:attribute_value_id", h.UpdateValue)
	r.DELETE("/attribute-values/:attribute_value_id", h.DeleteValue)
}

// ===== attributes =====

// CreateAttribute godoc
// @Summary  Create a new attribute
// @Tags     Attributes
// @Router   /attributes [post]
func (h *Handler) CreateAttribute(c *gin.Context) {
	var req CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.CreateAttribute(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.Header("Location", "/attributes/"+strconv.FormatInt(res.ID, 10))
	c.JSON(http.StatusCreated, res)
}

// ListAttributes godoc
// @Summary  List attributes
// @Tags     Attributes
// @Router   /attributes [get]
func (h *Handler) ListAttributes(c *gin.Context) {
	var f AttributeFilter
	if v := c.Query("name"); v != "" {
		f.Name = &v
	}
	if v := c.Query("type"); v != "" {
		f.Type = &v
	}
	p := Page{
		Limit:  atoiDef(c.Query("limit"), 50),
		Offset: atoiDef(c.Query("offset"), 0),
		Order:  strings.ToLower(c.DefaultQuery("order", "asc")),
	}
	items, total, err := h.svc.ListAttributes(c.Request.Context(), f, p)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "next_offset": nextOffset(total, p)})
}

// GetAttribute godoc
// @Summary  Get an attribute with its values
// @Tags     Attributes
// @Router   /attributes/{attribute_id} [get]
func (h *Handler) GetAttribute(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("attribute_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "attribute_id must be a number"))
		return
	}
	res, err := h.svc.GetAttribute(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateAttribute godoc
// @Summary  Update an attribute
// @Tags     Attributes
// @Router   /attributes/{attribute_id} [put]
func (h *Handler) UpdateAttribute(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("attribute_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "attribute_id must be a number"))
		return
	}
	var req UpdateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.UpdateAttribute(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteAttribute godoc
// @Summary  Delete an attribute and its values
// @Tags     Attributes
// @Router   /attributes/{attribute_id} [delete]
func (h *Handler) DeleteAttribute(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("attribute_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "attribute_id must be a number"))
		return
	}
	if err := h.svc.DeleteAttribute(c.Request.Context(), id); err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Attribute has been deleted"})
}

// ===== attribute values =====

// CreateValue godoc
// @Summary  Create a new attribute value
// @Tags     Attribute Values
// @Router   /attribute-values [post]
func (h *Handler) CreateValue(c *gin.Context) {
	var req CreateAttributeValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.CreateValue(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.Header("Location", "/attribute-values/"+strconv.FormatInt(res.ID, 10))
	c.JSON(http.StatusCreated, res)
}

// ListValues godoc
// @Summary  List attribute values
// @Tags     Attribute Values
// @Router   /attribute-values [get]
func (h *Handler) ListValues(c *gin.Context) {
	var f ValueFilter
	if v := c.Query("attribute_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.AttributeID = &id
		}
	}
	if v := c.Query("value"); v != "" {
		f.Value = &v
	}
	p := Page{
		Limit:  atoiDef(c.Query("limit"), 50),
		Offset: atoiDef(c.Query("offset"), 0),
		Order:  strings.ToLower(c.DefaultQuery("order", "asc")),
	}
	items, total, err := h.svc.ListValues(c.Request.Context(), f, p)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "next_offset": nextOffset(total, p)})
}

// GetValue godoc
// @Summary  Get an attribute value with its parent attribute
// @Tags     Attribute Values
// @Router   /attribute-values/{attribute_value_id} [get]
func (h *Handler) GetValue(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("attribute_value_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "attribute_value_id must be a number"))
		return
	}
	res, err := h.svc.GetValue(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateValue godoc
// @Summary  Update an attribute value
// @Tags     Attribute Values
// @Router   /attribute-values/{attribute_value_id} [put]
func (h *Handler) UpdateValue(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("attribute_value_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "attribute_value_id must be a number"))
		return
	}
	var req UpdateAttributeValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.UpdateValue(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteValue godoc
// @Summary  Delete an attribute value (fails while in use)
// @Tags     Attribute Values
// @Router   /attribute-values/{attribute_value_id} [delete]
func (h *Handler) DeleteValue(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("attribute_value_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "attribute_value_id must be a number"))
		return
	}
	if err := h.svc.DeleteValue(c.Request.Context(), id); err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Attribute value has been deleted"})
}

// ---------- helpers ----------

func atoiDef(s string, d int) int {
	if s == "" {
		return d
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return n
}

func nextOffset(total int64, p Page) int {
	n := p.Offset + p.Limit
	if n >= int(total) {
		return 0
	}
	return n
}
