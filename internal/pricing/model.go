package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductPricing は (商品, 地域, レンタル期間) の組に対する料金行。
// 同じ組に対して料金行は最大1件。
type ProductPricing struct {
	ID             int64
	ProductID      int64
	RegionID       int64
	RentalPeriodID int64
	Price          decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Filter struct {
	ProductID      *int64
	RegionID       *int64
	RentalPeriodID *int64
	MinPrice       *decimal.Decimal
	MaxPrice       *decimal.Decimal
	IsActive       *bool
}

type Page struct {
	Limit  int
	Offset int
	Order  string
}
