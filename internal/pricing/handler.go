package pricing

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"RENTA-backend/internal/platform/apperr"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/pricing", h.Create)
	r.GET("/pricing", h.List)
	r.GET("/pricing/:pricing_id", h.Get)
	r.PUT("/pricing/:pricing_id", h.Update)
	r.DELETE("/pricing/:pricing_id", h.Delete)
}

// Create godoc
// @Summary  Create a pricing row
// @Tags     Pricing
// @Router   /pricing [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.Header("Location", "/pricing/"+strconv.FormatInt(res.ID, 10))
	c.JSON(http.StatusCreated, res)
}

// List godoc
// @Summary  List pricing rows
// @Tags     Pricing
// @Router   /pricing [get]
func (h *Handler) List(c *gin.Context) {
	var f Filter
	if v := c.Query("product_id"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.ProductID = &n
		}
	}
	if v := c.Query("region_id"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.RegionID = &n
		}
	}
	if v := c.Query("rental_period_id"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.RentalPeriodID = &n
		}
	}
	if v := c.Query("min_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.MinPrice = &d
		}
	}
	if v := c.Query("max_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.MaxPrice = &d
		}
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
// @Summary  Get a pricing row with referent summaries
// @Tags     Pricing
// @Router   /pricing/{pricing_id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("pricing_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "pricing_id must be a number"))
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
// @Summary  Update a pricing row
// @Tags     Pricing
// @Router   /pricing/{pricing_id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("pricing_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "pricing_id must be a number"))
		return
	}
	var req UpdatePricingRequest
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
// @Summary  Delete a pricing row
// @Tags     Pricing
// @Router   /pricing/{pricing_id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("pricing_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "pricing_id must be a number"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Pricing has been deleted"})
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
