package attributes

import (
	"time"
)

// Attribute は attributes テーブルの1行を表す
// type は値の種別タグ（text, number, boolean など）
type Attribute struct {
	ID           int64
	Name         string
	Type         string
	IsFilterable bool
	IsRequired   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AttributeValue は attribute_values テーブルの1行を表す
// (attribute_id, value) で一意
type AttributeValue struct {
	ID          int64
	AttributeID int64
	Value       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type AttributeFilter struct {
	Name *string // 部分一致
	Type *string
}

type ValueFilter struct {
	AttributeID *int64
	Value       *string // 部分一致
}

type Page struct {
	Limit  int
	Offset int
	Order  string // "asc" or "desc"
}
