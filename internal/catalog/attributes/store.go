package attributes

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"RENTA-backend/internal/platform/apperr"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// ===== attributes =====

const attrCols = `id, name, type, is_filterable, is_required, created_at, updated_at`

func (s *Store) GetAttributeByID(ctx context.Context, id int64) (*Attribute, error) {
	q := `SELECT ` + attrCols + ` FROM attributes WHERE id = ?`
	var m Attribute
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Name, &m.Type, &m.IsFilterable, &m.IsRequired, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("Attribute not found")
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) InsertAttribute(ctx context.Context, m *Attribute) error {
	const q = `INSERT INTO attributes (name, type, is_filterable, is_required) VALUES (?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, m.Name, m.Type, m.IsFilterable, m.IsRequired)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	m.ID = id
	return nil
}

func (s *Store) UpdateAttribute(ctx context.Context, m *Attribute) error {
	const q = `UPDATE attributes SET name = ?, type = ?, is_filterable = ?, is_required = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, q, m.Name, m.Type, m.IsFilterable, m.IsRequired, m.ID)
	return err
}

// DeleteAttribute は配下の値ごと消す（FKはCASCADE）。
// 値が商品に使われている場合は product_attribute_values 側のRESTRICTで失敗する。
func (s *Store) DeleteAttribute(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM attributes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return apperr.NotFound("Attribute not found")
	}
	return nil
}

func (s *Store) ListAttributes(ctx context.Context, f AttributeFilter, p Page) ([]Attribute, int64, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + attrCols + ` FROM attributes WHERE 1=1`)

	args := []any{}
	if f.Name != nil {
		sb.WriteString(` AND name LIKE ?`)
		args = append(args, "%"+*f.Name+"%")
	}
	if f.Type != nil {
		sb.WriteString(` AND type = ?`)
		args = append(args, *f.Type)
	}

	order := "DESC"
	if strings.ToLower(p.Order) == "asc" {
		order = "ASC"
	}
	sb.WriteString(fmt.Sprintf(` ORDER BY id %s`, order))
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	sb.WriteString(` LIMIT ? OFFSET ?`)
	args = append(args, p.Limit, p.Offset)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Attribute
	for rows.Next() {
		var m Attribute
		if err := rows.Scan(&m.ID, &m.Name, &m.Type, &m.IsFilterable, &m.IsRequired, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	cb := strings.Builder{}
	cb.WriteString(`SELECT COUNT(*) FROM attributes WHERE 1=1`)
	argsCnt := []any{}
	if f.Name != nil {
		cb.WriteString(` AND name LIKE ?`)
		argsCnt = append(argsCnt, "%"+*f.Name+"%")
	}
	if f.Type != nil {
		cb.WriteString(` AND type = ?`)
		argsCnt = append(argsCnt, *f.Type)
	}
	var total int64
	if err := s.db.QueryRowContext(ctx, cb.String(), argsCnt...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

// ===== attribute values =====

const valueCols = `id, attribute_id, value, created_at, updated_at`

func (s *Store) GetValueByID(ctx context.Context, id int64) (*AttributeValue, error) {
	q := `SELECT ` + valueCols + ` FROM attribute_values WHERE id = ?`
	var m AttributeValue
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.AttributeID, &m.Value, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("Attribute value not found")
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) InsertValue(ctx context.Context, m *AttributeValue) error {
	const q = `INSERT INTO attribute_values (attribute_id, value) VALUES (?, ?)`
	res, err := s.db.ExecContext(ctx, q, m.AttributeID, m.Value)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	m.ID = id
	return nil
}

func (s *Store) UpdateValue(ctx context.Context, m *AttributeValue) error {
	const q = `UPDATE attribute_values SET attribute_id = ?, value = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, q, m.AttributeID, m.Value, m.ID)
	return err
}

func (s *Store) DeleteValue(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM attribute_values WHERE id = ?`, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return apperr.NotFound("Attribute value not found")
	}
	return nil
}

func (s *Store) ListValues(ctx context.Context, f ValueFilter, p Page) ([]AttributeValue, int64, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + valueCols + ` FROM attribute_values WHERE 1=1`)

	args := []any{}
	if f.AttributeID != nil {
		sb.WriteString(` AND attribute_id = ?`)
		args = append(args, *f.AttributeID)
	}
	if f.Value != nil {
		sb.WriteString(` AND value LIKE ?`)
		args = append(args, "%"+*f.Value+"%")
	}

	order := "DESC"
	if strings.ToLower(p.Order) == "asc" {
		order = "ASC"
	}
	sb.WriteString(fmt.Sprintf(` ORDER BY id %s`, order))
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	sb.WriteString(` LIMIT ? OFFSET ?`)
	args = append(args, p.Limit, p.Offset)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []AttributeValue
	for rows.Next() {
		var m AttributeValue
		if err := rows.Scan(&m.ID, &m.AttributeID, &m.Value, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	cb := strings.Builder{}
	cb.WriteString(`SELECT COUNT(*) FROM attribute_values WHERE 1=1`)
	argsCnt := []any{}
	if f.AttributeID != nil {
		cb.WriteString(` AND attribute_id = ?`)
		argsCnt = append(argsCnt, *f.AttributeID)
	}
	if f.Value != nil {
		cb.WriteString(` AND value LIKE ?`)
		argsCnt = append(argsCnt, "%"+*f.Value+"%")
	}
	var total int64
	if err := s.db.QueryRowContext(ctx, cb.String(), argsCnt...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

// ListValuesOfAttribute は属性詳細用（id昇順で全件）
func (s *Store) ListValuesOfAttribute(ctx context.Context, attributeID int64) ([]AttributeValue, error) {
	q := `SELECT ` + valueCols + ` FROM attribute_values WHERE attribute_id = ? ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q, attributeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AttributeValue, 0, 8)
	for rows.Next() {
		var m AttributeValue
		if err := rows.Scan(&m.ID, &m.AttributeID, &m.Value, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ValueInUse は値がいずれかの商品に割り当てられているかを返す
func (s *Store) ValueInUse(ctx context.Context, valueID int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM product_attribute_values WHERE attribute_value_id = ?)`
	var used bool
	if err := s.db.QueryRowContext(ctx, q, valueID).Scan(&used); err != nil {
		return false, err
	}
	return used, nil
}
