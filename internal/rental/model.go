package rental

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// RentalTransaction は予約レコード。confirmed の行だけが重複ブロックの対象になる。
type RentalTransaction struct {
	ID              int64
	RentalULID      string
	ProductID       int64
	RegionID        int64
	RentalPeriodID  int64
	CustomerName    string
	CustomerEmail   string
	CustomerAddress string
	StartDate       time.Time
	EndDate         time.Time
	Price           decimal.Decimal
	Status          Status
	Notes           sql.NullString
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Filter struct {
	ProductID      *int64
	RegionID       *int64
	RentalPeriodID *int64
	CustomerEmail  *string
	Status         *Status
	StartDateFrom  *time.Time
	StartDateTo    *time.Time
	EndDateFrom    *time.Time
	EndDateTo      *time.Time
}

type Page struct {
	Limit  int
	Offset int
}

// PricingInfo は空き確認で参照する料金行のスナップショット
type PricingInfo struct {
	ID             int64
	ProductID      int64
	RegionID       int64
	RentalPeriodID int64
	Price          decimal.Decimal
	IsActive       bool
}

type ProductSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

type RegionSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type RentalPeriodSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Days int    `json:"days"`
}

// overlaps は閉区間同士の重なり判定。端が接している場合も重なり扱い。
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}
