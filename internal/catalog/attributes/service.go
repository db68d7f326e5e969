package attributes

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

// ===== attributes =====

func (s *Service) CreateAttribute(ctx context.Context, in CreateAttributeRequest) (AttributeResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Type) == "" {
		return AttributeResponse{}, apperr.Invalid("name and type are required")
	}

	if dup, err := db.ExistsWhere(ctx, s.db, "attributes", 0, db.Key{Col: "name", Val: in.Name}); err != nil {
		return AttributeResponse{}, err
	} else if dup {
		return AttributeResponse{}, apperr.Conflict("Attribute with this name already exists")
	}

	m := &Attribute{Name: in.Name, Type: in.Type}
	if in.IsFilterable != nil {
		m.IsFilterable = *in.IsFilterable
	}
	if in.IsRequired != nil {
		m.IsRequired = *in.IsRequired
	}

	if err := s.store.InsertAttribute(ctx, m); err != nil {
		return AttributeResponse{}, translateMySQL(err)
	}

	created, err := s.store.GetAttributeByID(ctx, m.ID)
	if err != nil {
		return AttributeResponse{}, err
	}
	return toAttributeResponse(created), nil
}

func (s *Service) GetAttribute(ctx context.Context, id int64) (AttributeDetailResponse, error) {
	m, err := s.store.GetAttributeByID(ctx, id)
	if err != nil {
		return AttributeDetailResponse{}, err
	}
	values, err := s.store.ListValuesOfAttribute(ctx, id)
	if err != nil {
		return AttributeDetailResponse{}, err
	}
	out := AttributeDetailResponse{
		AttributeResponse: toAttributeResponse(m),
		Values:            make([]AttributeValueResponse, 0, len(values)),
	}
	for i := range values {
		out.Values = append(out.Values, toValueResponse(&values[i]))
	}
	return out, nil
}

func (s *Service) ListAttributes(ctx context.Context, f AttributeFilter, p Page) ([]AttributeResponse, int64, error) {
	items, total, err := s.store.ListAttributes(ctx, f, p)
	if err != nil {
		return nil, 0, err
	}
	out := make([]AttributeResponse, 0, len(items))
	for i := range items {
		out = append(out, toAttributeResponse(&items[i]))
	}
	return out, total, nil
}

func (s *Service) UpdateAttribute(ctx context.Context, id int64, in UpdateAttributeRequest) (AttributeResponse, error) {
	m, err := s.store.GetAttributeByID(ctx, id)
	if err != nil {
		return AttributeResponse{}, err
	}

	if in.Name != nil {
		if dup, err := db.ExistsWhere(ctx, s.db, "attributes", id, db.Key{Col: "name", Val: *in.Name}); err != nil {
			return AttributeResponse{}, err
		} else if dup {
			return AttributeResponse{}, apperr.Conflict("Attribute with this name already exists")
		}
		m.Name = *in.Name
	}
	if in.Type != nil {
		m.Type = *in.Type
	}
	if in.IsFilterable != nil {
		m.IsFilterable = *in.IsFilterable
	}
	if in.IsRequired != nil {
		m.IsRequired = *in.IsRequired
	}

	if err := s.store.UpdateAttribute(ctx, m); err != nil {
		return AttributeResponse{}, translateMySQL(err)
	}

	updated, err := s.store.GetAttributeByID(ctx, id)
	if err != nil {
		return AttributeResponse{}, err
	}
	return toAttributeResponse(updated), nil
}

func (s *Service) DeleteAttribute(ctx context.Context, id int64) error {
	if err := s.store.DeleteAttribute(ctx, id); err != nil {
		return translateMySQL(err)
	}
	return nil
}

// ===== attribute values =====

func (s *Service) CreateValue(ctx context.Context, in CreateAttributeValueRequest) (AttributeValueResponse, error) {
	if strings.TrimSpace(in.Value) == "" {
		return AttributeValueResponse{}, apperr.Invalid("value is required")
	}

	// 親属性の存在チェック
	if _, err := s.store.GetAttributeByID(ctx, in.AttributeID); err != nil {
		return AttributeValueResponse{}, err
	}

	// 同一属性内での値の重複チェック
	if dup, err := db.ExistsWhere(ctx, s.db, "attribute_values", 0,
		db.Key{Col: "attribute_id", Val: in.AttributeID},
		db.Key{Col: "value", Val: in.Value},
	); err != nil {
		return AttributeValueResponse{}, err
	} else if dup {
		return AttributeValueResponse{}, apperr.Conflict("The value already exists for this attribute")
	}

	m := &AttributeValue{AttributeID: in.AttributeID, Value: in.Value}
	if err := s.store.InsertValue(ctx, m); err != nil {
		return AttributeValueResponse{}, translateMySQL(err)
	}

	created, err := s.store.GetValueByID(ctx, m.ID)
	if err != nil {
		return AttributeValueResponse{}, err
	}
	return toValueResponse(created), nil
}

func (s *Service) GetValue(ctx context.Context, id int64) (AttributeValueDetailResponse, error) {
	m, err := s.store.GetValueByID(ctx, id)
	if err != nil {
		return AttributeValueDetailResponse{}, err
	}
	attr, err := s.store.GetAttributeByID(ctx, m.AttributeID)
	if err != nil {
		return AttributeValueDetailResponse{}, err
	}
	return AttributeValueDetailResponse{
		AttributeValueResponse: toValueResponse(m),
		Attribute:              AttributeRef{ID: attr.ID, Name: attr.Name, Type: attr.Type},
	}, nil
}

func (s *Service) ListValues(ctx context.Context, f ValueFilter, p Page) ([]AttributeValueResponse, int64, error) {
	items, total, err := s.store.ListValues(ctx, f, p)
	if err != nil {
		return nil, 0, err
	}
	out := make([]AttributeValueResponse, 0, len(items))
	for i := range items {
		out = append(out, toValueResponse(&items[i]))
	}
	return out, total, nil
}

func (s *Service) UpdateValue(ctx context.Context, id int64, in UpdateAttributeValueRequest) (AttributeValueResponse, error) {
	m, err := s.store.GetValueByID(ctx, id)
	if err != nil {
		return AttributeValueResponse{}, err
	}

	if in.AttributeID != nil {
		if _, err := s.store.GetAttributeByID(ctx, *in.AttributeID); err != nil {
			return AttributeValueResponse{}, err
		}
		m.AttributeID = *in.AttributeID
	}
	if in.Value != nil {
		m.Value = *in.Value
	}

	// マージ後の (attribute_id, value) で重複チェック
	if dup, err := db.ExistsWhere(ctx, s.db, "attribute_values", id,
		db.Key{Col: "attribute_id", Val: m.AttributeID},
		db.Key{Col: "value", Val: m.Value},
	); err != nil {
		return AttributeValueResponse{}, err
	} else if dup {
		return AttributeValueResponse{}, apperr.Conflict("The value already exists for this attribute")
	}

	if err := s.store.UpdateValue(ctx, m); err != nil {
		return AttributeValueResponse{}, translateMySQL(err)
	}

	updated, err := s.store.GetValueByID(ctx, id)
	if err != nil {
		return AttributeValueResponse{}, err
	}
	return toValueResponse(updated), nil
}

// DeleteValue は商品に割り当て済みの値を消させない
func (s *Service) DeleteValue(ctx context.Context, id int64) error {
	if _, err := s.store.GetValueByID(ctx, id); err != nil {
		return err
	}
	used, err := s.store.ValueInUse(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return apperr.Conflict("Cannot delete attribute value that is in use by products")
	}
	if err := s.store.DeleteValue(ctx, id); err != nil {
		return translateMySQL(err)
	}
	return nil
}

// ---------- helpers ----------

func toAttributeResponse(m *Attribute) AttributeResponse {
	return AttributeResponse{
		ID:           m.ID,
		Name:         m.Name,
		Type:         m.Type,
		IsFilterable: m.IsFilterable,
		IsRequired:   m.IsRequired,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toValueResponse(m *AttributeValue) AttributeValueResponse {
	return AttributeValueResponse{
		ID:          m.ID,
		AttributeID: m.AttributeID,
		Value:       m.Value,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func translateMySQL(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1062:
			return apperr.Conflict("duplicate attribute or value")
		case 1451:
			return apperr.Conflict("Attribute value is in use by products")
		case 1452:
			return apperr.Invalid("invalid attribute_id")
		}
	}
	return err
}
