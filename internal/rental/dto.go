package rental

import (
	"time"

	"github.com/shopspring/decimal"
)

// ===== Requests =====

type CreateRentalTransactionRequest struct {
	ProductID       int64           `json:"product_id" binding:"required"`
	RegionID        int64           `json:"region_id" binding:"required"`
	RentalPeriodID  int64           `json:"rental_period_id" binding:"required"`
	CustomerName    string          `json:"customer_name" binding:"required"`
	CustomerEmail   string          `json:"customer_email" binding:"required"`
	CustomerAddress string          `json:"customer_address" binding:"required"`
	StartDate       time.Time       `json:"start_date" binding:"required"`
	EndDate         time.Time       `json:"end_date" binding:"required"`
	Price           decimal.Decimal `json:"price"`
	Status          *Status         `json:"status,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
}

type UpdateRentalTransactionRequest struct {
	ProductID       *int64           `json:"product_id,omitempty"`
	RegionID        *int64           `json:"region_id,omitempty"`
	RentalPeriodID  *int64           `json:"rental_period_id,omitempty"`
	CustomerName    *string          `json:"customer_name,omitempty"`
	CustomerEmail   *string          `json:"customer_email,omitempty"`
	CustomerAddress *string          `json:"customer_address,omitempty"`
	StartDate       *time.Time       `json:"start_date,omitempty"`
	EndDate         *time.Time       `json:"end_date,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Status          *Status          `json:"status,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}

// CheckRentalRequest は /check-rental 用。start / end は省略可能。
type CheckRentalRequest struct {
	PricingID      int64      `json:"pricing_id" binding:"required"`
	ProductID      int64      `json:"product_id" binding:"required"`
	RegionID       int64      `json:"region_id" binding:"required"`
	RentalPeriodID int64      `json:"rental_period_id" binding:"required"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
}

// ===== Responses =====

type RentalTransactionResponse struct {
	ID              int64           `json:"id"`
	RentalULID      string          `json:"rental_ulid"`
	ProductID       int64           `json:"product_id"`
	RegionID        int64           `json:"region_id"`
	RentalPeriodID  int64           `json:"rental_period_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerAddress string          `json:"customer_address"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	Price           decimal.Decimal `json:"price"`
	Status          Status          `json:"status"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type RentalTransactionDetailResponse struct {
	RentalTransactionResponse
	Product      ProductSummary      `json:"product"`
	Region       RegionSummary       `json:"region"`
	RentalPeriod RentalPeriodSummary `json:"rental_period"`
}

type PricingSummary struct {
	ID       int64           `json:"id"`
	Price    decimal.Decimal `json:"price"`
	IsActive bool            `json:"is_active"`
}

// CheckRentalResponse は空き確認の結果。available=false のとき reason が入る。
type CheckRentalResponse struct {
	Available    bool                 `json:"available"`
	Reason       *string              `json:"reason,omitempty"`
	StartDate    *time.Time           `json:"start_date,omitempty"`
	EndDate      *time.Time           `json:"end_date,omitempty"`
	Product      *ProductSummary      `json:"product,omitempty"`
	Region       *RegionSummary       `json:"region,omitempty"`
	RentalPeriod *RentalPeriodSummary `json:"rental_period,omitempty"`
	Pricing      *PricingSummary      `json:"pricing,omitempty"`
}
