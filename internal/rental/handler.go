package rental

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"RENTA-backend/internal/platform/apperr"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/rental-transactions", h.Create)
	r.GET("/rental-transactions", h.List)
	r.GET("/rental-transactions/:transaction_id", h.Get)
	r.PUT("/rental-transactions/:transaction_id", h.Update)
	r.DELETE("/rental-transactions/:transaction_id", h.Delete)
	r.PUT("/rental-transactions/:transaction_id/status", h.UpdateStatus)

	// 空き確認（登録はしない）
	r.POST("/check-rental", h.CheckRental)
}

// Create godoc
// @Summary  Create a rental transaction
// @Tags     Rental Transactions
// @Router   /rental-transactions [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRentalTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.Header("Location", "/rental-transactions/"+strconv.FormatInt(res.ID, 10))
	c.JSON(http.StatusCreated, res)
}

// List godoc
// @Summary  List rental transactions
// @Tags     Rental Transactions
// @Router   /rental-transactions [get]
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
	if v := c.Query("customer_email"); v != "" {
		f.CustomerEmail = &v
	}
	if v := c.Query("status"); v != "" {
		st := Status(v)
		if !st.Valid() {
			c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "status must be one of confirmed, cancelled, completed"))
			return
		}
		f.Status = &st
	}
	f.StartDateFrom = parseTimeQuery(c, "start_date_from")
	f.StartDateTo = parseTimeQuery(c, "start_date_to")
	f.EndDateFrom = parseTimeQuery(c, "end_date_from")
	f.EndDateTo = parseTimeQuery(c, "end_date_to")

	p := Page{
		Limit:  atoiDef(c.Query("limit"), 50),
		Offset: atoiDef(c.Query("offset"), 0),
	}
	items, total, err := h.svc.List(c.Request.Context(), f, p)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "next_offset": nextOffset(total, p)})
}

// Get godoc
// @Summary  Get a rental transaction by id or rental_ulid
// @Tags     Rental Transactions
// @Router   /rental-transactions/{transaction_id} [get]
func (h *Handler) Get(c *gin.Context) {
	res, err := h.svc.GetByRef(c.Request.Context(), c.Param("transaction_id"))
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// Update godoc
// @Summary  Update a rental transaction
// @Tags     Rental Transactions
// @Router   /rental-transactions/{transaction_id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("transaction_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "transaction_id must be a number"))
		return
	}
	var req UpdateRentalTransactionRequest
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
// @Summary  Delete a rental transaction
// @Tags     Rental Transactions
// @Router   /rental-transactions/{transaction_id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("transaction_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "transaction_id must be a number"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Rental transaction has been deleted"})
}

// UpdateStatus godoc
// @Summary  Set a rental transaction status
// @Tags     Rental Transactions
// @Router   /rental-transactions/{transaction_id}/status [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("transaction_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "transaction_id must be a number"))
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// CheckRental godoc
// @Summary  Check whether a product is available for rent
// @Tags     Rental Transactions
// @Router   /check-rental [post]
func (h *Handler) CheckRental(c *gin.Context) {
	var req CheckRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.Body(apperr.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.CheckAvailability(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.ToHTTPStatus(err), apperr.From(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// ---------- helpers ----------

func parseTimeQuery(c *gin.Context, name string) *time.Time {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return &t
	}
	return nil
}

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
