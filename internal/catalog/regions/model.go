package regions

import (
	"time"
)

// Region は regions テーブルの1行を表す
type Region struct {
	ID        int64
	Name      string
	Code      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// 一覧取得用の検索条件
type Filter struct {
	Name     *string // 部分一致
	Code     *string
	IsActive *bool
}

type Page struct {
	Limit  int
	Offset int
	Order  string // "asc" or "desc"
}
