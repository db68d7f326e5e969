package products

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	mysql "github.com/go-sql-driver/mysql"

	"RENTA-backend/internal/platform/apperr"
	"RENTA-backend/internal/platform/db"
)

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(conn *sql.DB) *Service { return &Service{db: conn, store: NewStore(conn)} }

func (s *Service) Create(ctx context.Context, in CreateProductRequest) (ProductResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.SKU) == "" {
		return ProductResponse{}, apperr.Invalid("name and sku are required")
	}

	// name / sku それぞれ個別に重複チェック
	if dup, err := db.ExistsWhere(ctx, s.db, "products", 0, db.Key{Col: "name", Val: in.Name}); err != nil {
		return ProductResponse{}, err
	} else if dup {
		return ProductResponse{}, apperr.Conflict("Product with this name already exists")
	}
	if dup, err := db.ExistsWhere(ctx, s.db, "products", 0, db.Key{Col: "sku", Val: in.SKU}); err != nil {
		return ProductResponse{}, err
	} else if dup {
		return ProductResponse{}, apperr.Conflict("Product with this SKU already exists")
	}

	m := &Product{Name: in.Name, SKU: in.SKU, IsActive: true}
	if in.Description != nil && *in.Description != "" {
		m.Description = sql.NullString{String: *in.Description, Valid: true}
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}

	if err := s.store.Insert(ctx, m); err != nil {
		return ProductResponse{}, translateMySQL(err)
	}

	created, err := s.store.GetByID(ctx, m.ID)
	if err != nil {
		return ProductResponse{}, err
	}
	return toResponse(created), nil
}

func (s *Service) Get(ctx context.Context, id int64) (ProductDetailResponse, error) {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return ProductDetailResponse{}, err
	}
	values, err := s.store.ListAttributeValues(ctx, id)
	if err != nil {
		return ProductDetailResponse{}, err
	}
	pricing, err := s.store.ListPricing(ctx, id)
	if err != nil {
		return ProductDetailResponse{}, err
	}
	return ProductDetailResponse{
		ProductResponse: toResponse(m),
		AttributeValues: values,
		Pricing:         pricing,
	}, nil
}

func (s *Service) List(ctx context.Context, f Filter, p Page) ([]ProductResponse, int64, error) {
	items, total, err := s.store.List(ctx, f, p)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ProductResponse, 0, len(items))
	for i := range items {
		out = append(out, toResponse(&items[i]))
	}
	return out, total, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateProductRequest) (ProductResponse, error) {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return ProductResponse{}, err
	}

	if in.Name != nil {
		if dup, err := db.ExistsWhere(ctx, s.db, "products", id, db.Key{Col: "name", Val: *in.Name}); err != nil {
			return ProductResponse{}, err
		} else if dup {
			return ProductResponse{}, apperr.Conflict("Product with this name already exists")
		}
		m.Name = *in.Name
	}
	if in.SKU != nil {
		if dup, err := db.ExistsWhere(ctx, s.db, "products", id, db.Key{Col: "sku", Val: *in.SKU}); err != nil {
			return ProductResponse{}, err
		} else if dup {
			return ProductResponse{}, apperr.Conflict("Product with this SKU already exists")
		}
		m.SKU = *in.SKU
	}
	if in.Description != nil {
		m.Description = sql.NullString{String: *in.Description, Valid: *in.Description != ""}
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}

	if err := s.store.Update(ctx, m); err != nil {
		return ProductResponse{}, translateMySQL(err)
	}

	updated, err := s.store.GetByID(ctx, id)
	if err != nil {
		return ProductResponse{}, err
	}
	return toResponse(updated), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return err
	}
	used, err := s.store.Referenced(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return apperr.Conflict("Failed to delete product. It may be referenced elsewhere")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return translateMySQL(err)
	}
	return nil
}

// ===== attribute value links =====

// AssignAttributeValue は商品に属性値を割り当てる。同じ値の二重割当は不可。
func (s *Service) AssignAttributeValue(ctx context.Context, productID int64, in AssignAttributeValueRequest) (ProductDetailResponse, error) {
	if _, err := s.store.GetByID(ctx, productID); err != nil {
		return ProductDetailResponse{}, err
	}
	found, err := s.store.AttributeValueExists(ctx, in.AttributeValueID)
	if err != nil {
		return ProductDetailResponse{}, err
	}
	if !found {
		return ProductDetailResponse{}, apperr.NotFound("Attribute value not found")
	}

	if dup, err := db.ExistsWhere(ctx, s.db, "product_attribute_values", 0,
		db.Key{Col: "product_id", Val: productID},
		db.Key{Col: "attribute_value_id", Val: in.AttributeValueID},
	); err != nil {
		return ProductDetailResponse{}, err
	} else if dup {
		return ProductDetailResponse{}, apperr.Conflict("Product already has this attribute value")
	}

	if _, err := s.store.InsertAttributeValueLink(ctx, productID, in.AttributeValueID); err != nil {
		return ProductDetailResponse{}, translateMySQL(err)
	}
	return s.Get(ctx, productID)
}

func (s *Service) UnassignAttributeValue(ctx context.Context, productID, valueID int64) error {
	if _, err := s.store.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.store.DeleteAttributeValueLink(ctx, productID, valueID)
}

// ---------- helpers ----------

func toResponse(m *Product) ProductResponse {
	out := ProductResponse{
		ID:        m.ID,
		Name:      m.Name,
		SKU:       m.SKU,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Description.Valid {
		v := m.Description.String
		out.Description = &v
	}
	return out
}

func translateMySQL(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1062:
			return apperr.Conflict("duplicate name, sku or assignment")
		case 1451:
			return apperr.Conflict("Failed to delete product. It may be referenced elsewhere")
		case 1452:
			return apperr.Invalid("invalid reference id")
		}
	}
	return err
}
