package regions

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

	r.POST("/regions", h.Create)
	r.GET("/regions", h.List)
	r.GET("/regions/:region_id", h.Get)
	r.PUT("/regions/:region_id", h.Update)
	r.DELETE("/regions/:region_id", h.Delete)
}

// Create godoc
// @Summary  Create a new region
// @Tags     Regions
// @Router   /regions [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.Header("Location", "/regions/"+strconv.FormatInt(res.ID, 10))
	c.JSON(http.StatusCreated, res)
}

// List godoc
// @Summary  List regions
// @Tags     Regions
// @Router   /regions [get]
func (h *Handler) List(c *gin.Context) {
	var f Filter
	if v := c.Query("name"); v != "" {
		f.Name = &v
	}
	if v := c.Query("code"); v != "" {
		f.Code = &v
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
// @Summary  Get a region with its pricing rows
// @Tags     Regions
// @Router   /regions/{region_id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("region_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "region_id must be a number"))
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
// @Summary  Update a region
// @Tags     Regions
// @Router   /regions/{region_id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("region_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "region_id must be a number"))
		return
	}
	var req UpdateRegionRequest
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
// @Summary  Delete a region
// @Tags     Regions
// @Router   /regions/{region_id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("region_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "region_id must be a number"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Region has been deleted"})
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
