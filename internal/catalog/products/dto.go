package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// ===== Requests =====

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	SKU         string  `json:"sku" binding:"required"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty"`
	SKU         *string `json:"sku,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// 属性値の割り当てリクエスト
type AssignAttributeValueRequest struct {
	AttributeValueID int64 `json:"attribute_value_id" binding:"required"`
}

// ===== Responses =====

type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	SKU         string    `json:"sku"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// 詳細レスポンス（属性値と料金をJOINで組み立てて返す）
type ProductDetailResponse struct {
	ProductResponse
	AttributeValues []ProductAttributeValueEntry `json:"attribute_values"`
	Pricing         []ProductPricingEntry        `json:"pricing"`
}

type ProductAttributeValueEntry struct {
	ID        int64        `json:"id"`
	Attribute AttributeRef `json:"attribute"`
	Value     string       `json:"value"`
}

type AttributeRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type ProductPricingEntry struct {
	ID           int64           `json:"id"`
	Region       RegionRef       `json:"region"`
	RentalPeriod RentalPeriodRef `json:"rental_period"`
	Price        decimal.Decimal `json:"price"`
	IsActive     bool            `json:"is_active"`
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
