package attributes

import "time"

// ===== Requests =====

type CreateAttributeRequest struct {
	Name         string `json:"name" binding:"required"`
	Type         string `json:"type" binding:"required"`
	IsFilterable *bool  `json:"is_filterable,omitempty"`
	IsRequired   *bool  `json:"is_required,omitempty"`
}

type UpdateAttributeRequest struct {
	Name         *string `json:"name,omitempty"`
	Type         *string `json:"type,omitempty"`
	IsFilterable *bool   `json:"is_filterable,omitempty"`
	IsRequired   *bool   `json:"is_required,omitempty"`
}

type CreateAttributeValueRequest struct {
	AttributeID int64  `json:"attribute_id" binding:"required"`
	Value       string `json:"value" binding:"required"`
}

type UpdateAttributeValueRequest struct {
	AttributeID *int64  `json:"attribute_id,omitempty"`
	Value       *string `json:"value,omitempty"`
}

// ===== Responses =====

type AttributeResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	IsFilterable bool      `json:"is_filterable"`
	IsRequired   bool      `json:"is_required"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// 詳細レスポンス（属性が持つ値の一覧付き）
type AttributeDetailResponse struct {
	AttributeResponse
	Values []AttributeValueResponse `json:"values"`
}

type AttributeValueResponse struct {
	ID          int64     `json:"id"`
	AttributeID int64     `json:"attribute_id"`
	Value       string    `json:"value"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// 値の詳細レスポンス（親属性のサマリ付き）
type AttributeValueDetailResponse struct {
	AttributeValueResponse
	Attribute AttributeRef `json:"attribute"`
}

type AttributeRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}
