package products

import (
	"database/sql"
	"time"
)

// Product は products テーブルの1行を表す
type Product struct {
	ID          int64
	Name        string
	Description sql.NullString
	SKU         string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Filter struct {
	Name     *string // 部分一致
	SKU      *string
	IsActive *bool
}

type Page struct {
	Limit  int
	Offset int
	Order  string // "asc" or "desc"
}
