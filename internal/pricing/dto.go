package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// ===== Requests =====

type CreatePricingRequest struct {
	ProductID      int64           `json:"product_id" binding:"required"`
	RegionID       int64           `json:"region_id" binding:"required"`
	RentalPeriodID int64           `json:"rental_period_id" binding:"required"`
	Price          decimal.Decimal `json:"price"`
	IsActive       *bool           `json:"is_active,omitempty"`
}

type UpdatePricingRequest struct {
	ProductID      *int64           `json:"product_id,omitempty"`
	RegionID       *int64           `json:"region_id,omitempty"`
	RentalPeriodID *int64           `json:"rental_period_id,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	IsActive       *bool            `json:"is_active,omitempty"`
}

// ===== Responses =====

type PricingResponse struct {
	ID             int64           `json:"id"`
	ProductID      int64           `json:"product_id"`
	RegionID       int64           `json:"region_id"`
	RentalPeriodID int64           `json:"rental_period_id"`
	Price          decimal.Decimal `json:"price"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// 詳細レスポンス（参照先のサマリを含める）
type PricingDetailResponse struct {
	PricingResponse
	Product      ProductRef      `json:"product"`
	Region       RegionRef       `json:"region"`
	RentalPeriod RentalPeriodRef `json:"rental_period"`
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

type RentalPeriodRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Days int    `json:"days"`
}
