package periods

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

	r.POST("/rental-periods", h.Create)
	r.GET("/rental-periods", h.List)
	r.GET("/rental-periods/:rental_period_id", h.Get)
	r.PUT("/rental-periods/:rental_period_id", h.Update)
	r.DELETE("/rental-periods/:rental_period_id", h.Delete)
}

// Create godoc
// @Summary  Create a new rental period
// @Tags     Rental Periods
// @Router   /rental-periods [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRentalPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.Header("Location", "/rental-periods/"+strconv.FormatInt(res.ID, 10))
	c.JSON(http.StatusCreated, res)
}

// List godoc
// @Summary  List rental periods
// @Tags     Rental Periods
// @Router   /rental-periods [get]
func (h *Handler) List(c *gin.Context) {
	var f Filter
	if v := c.Query("name"); v != "" {
		f.Name = &v
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
// @Summary  Get a rental period with its pricing rows
// @Tags     Rental Periods
// @Router   /rental-periods/{rental_period_id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("rental_period_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "rental_period_id must be a number"))
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
// @Summary  Update a rental period
// @Tags     Rental Periods
// @Router   /rental-periods/{rental_period_id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("rental_period_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "rental_period_id must be a number"))
		return
	}
	var req UpdateRentalPeriodRequest
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
// @Summary  Delete a rental period
// @Tags     Rental Periods
// @Router   /rental-periods/{rental_period_id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("rental_period_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "rental_period_id must be a number"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Rental period has been deleted"})
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
