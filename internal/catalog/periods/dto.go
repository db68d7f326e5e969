package periods

import (
	"time"

	"github.com/shopspring/decimal"
)

// ===== Requests =====

type CreateRentalPeriodRequest struct {
	Name     string `json:"name" binding:"required"`
	Days     int    `json:"days" binding:"required"`
	IsActive *bool  `json:"is_active,omitempty"`
}

type UpdateRentalPeriodRequest struct {
	Name     *string `json:"name,omitempty"`
	Days     *int    `json:"days,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ===== Responses =====

type RentalPeriodResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Days      int       `json:"days"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RentalPeriodDetailResponse struct {
	RentalPeriodResponse
	Pricing []PeriodPricingEntry `json:"pricing"`
}

type PeriodPricingEntry struct {
	ID       int64           `json:"id"`
	Product  ProductRef      `json:"product"`
	Region   RegionRef       `json:"region"`
	Price    decimal.Decimal `json:"price"`
	IsActive bool            `json:"is_active"`
}

type ProductRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

type RegionRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}
