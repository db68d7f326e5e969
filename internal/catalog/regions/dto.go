package regions

import (
	"time"

	"github.com/shopspring/decimal"
)

// ===== Requests =====

type CreateRegionRequest struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code" binding:"required"`
	IsActive *bool  `json:"is_active,omitempty"`
}

type UpdateRegionRequest struct {
	Name     *string `json:"name,omitempty"`
	Code     *string `json:"code,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ===== Responses =====

type RegionResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// 詳細レスポンス（地域に紐づく料金行を含む）
type RegionDetailResponse struct {
	RegionResponse
	Pricing []RegionPricingEntry `json:"pricing"`
}

type RegionPricingEntry struct {
	ID           int64           `json:"id"`
	Product      ProductRef      `json:"product"`
	RentalPeriod RentalPeriodRef `json:"rental_period"`
	Price        decimal.Decimal `json:"price"`
	IsActive     bool            `json:"is_active"`
}

type ProductRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

type RentalPeriodRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Days int    `json:"days"`
}
