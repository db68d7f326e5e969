package products

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

	r.POST("/products", h.Create)
	r.GET("/products", h.List)
	r.GET("/products/:product_id", h.Get)
	r.PUT("/products/:product_id", h.Update)
	r.DELETE("/products/:product_id", h.Delete)

	// 属性値の割り当て
	r.POST("/products/:product_id/attribute-values", h.AssignAttributeValue)
	r.DELETE("/products/:product_id/attribute-values/:attribute_value_id", h.UnassignAttributeValue)
}

// Create godoc
// @Summary  Create a new product
// @Tags     Products
// @Router   /products [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.Header("Location", "/products/"+strconv.FormatInt(res.ID, 10))
	c.JSON(http.StatusCreated, res)
}

// List godoc
// @Summary  List products
// @Tags     Products
// @Router   /products [get]
func (h *Handler) List(c *gin.Context) {
	var f Filter
	if v := c.Query("name"); v != "" {
		f.Name = &v
	}
	if v := c.Query("sku"); v != "" {
		f.SKU = &v
	}
	if v := c.Query("is_active"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.IsActive = &b
		}
	}
	p := Page{
		Limit:  atoiDef(c.Query("limit"), 50),
		Offset: atoiDef(c.Query("offset"), 0),
		Order:  strings.ToLower(c.DefaultQuery("order", "asc")),
	}
	items, total, err := h.svc.List(c.Request.Context(), f, p)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "next_offset": nextOffset(total, p)})
}

// Get godoc
// @Summary  Get a product with attribute values and pricing
// @Tags     Products
// @Router   /products/{product_id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "product_id must be a number"))
		return
	}
	res, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// Update godoc
// @Summary  Update a product
// @Tags     Products
// @Router   /products/{product_id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "product_id must be a number"))
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// Delete godoc
// @Summary  Delete a product
// @Tags     Products
// @Router   /products/{product_id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "product_id must be a number"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Product has been deleted"})
}

// AssignAttributeValue godoc
// @Summary  Assign an attribute value to a product
// @Tags     Products
// @Router   /products/{product_id}/attribute-values [post]
func (h *Handler) AssignAttributeValue(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "product_id must be a number"))
		return
	}
	var req AssignAttributeValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.AssignAttributeValue(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusCreated, res)
}

// UnassignAttributeValue godoc
// @Summary  Remove an attribute value from a product
// @Tags     Products
// @Router   /products/{product_id}/attribute-values/{attribute_value_id} [delete]
func (h *Handler) UnassignAttributeValue(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "product_id must be a number"))
		return
	}
	valueID, err := strconv.ParseInt(c.Param("attribute_value_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "attribute_value_id must be a number"))
		return
	}
	if err := h.svc.UnassignAttributeValue(c.Request.Context(), id, valueID); err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Attribute value has been removed from product"})
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
