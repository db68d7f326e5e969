package periods

import (
	"time"
)

// RentalPeriod は rental_periods テーブルの1行を表す
// days は期間の日数（正の整数）
type RentalPeriod struct {
	ID        int64
	Name      string
	Days      int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Filter struct {
	Name     *string // 部分一致
	IsActive *bool
}

type Page struct {
	Limit  int
	Offset int
	Order  string // "asc" or "desc"
}
