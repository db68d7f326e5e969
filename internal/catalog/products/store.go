package products

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

const productCols = `id, name, description, sku, is_active, created_at, updated_at`

func (s *Store) GetByID(ctx context.Context, id int64) (*Product, error) {
	q := `SELECT ` + productCols + ` FROM products WHERE id = ?`
	var m Product
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Name, &m.Description, &m.SKU, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) Insert(ctx context.Context, m *Product) error {
	const q = `INSERT INTO products (name, description, sku, is_active) VALUES (?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, m.Name, nullStrOrNil(m.Description), m.SKU, m.IsActive)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	m.ID = id
	return nil
}

func (s *Store) Update(ctx context.Context, m *Product) error {
	const q = `UPDATE products SET name = ?, description = ?, sku = ?, is_active = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, q, m.Name, nullStrOrNil(m.Description), m.SKU, m.IsActive, m.ID)
	return err
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return apperr.NotFound("Product not found")
	}
	return nil
}

func (s *Store) List(ctx context.Context, f Filter, p Page) ([]Product, int64, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + productCols + ` FROM products WHERE 1=1`)

	args := []any{}
	if f.Name != nil {
		sb.WriteString(` AND name LIKE ?`)
		args = append(args, "%"+*f.Name+"%")
	}
	if f.SKU != nil {
		sb.WriteString(` AND sku = ?`)
		args = append(args, *f.SKU)
	}
	if f.IsActive != nil {
		sb.WriteString(` AND is_active = ?`)
		args = append(args, *f.IsActive)
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

	var out []Product
	for rows.Next() {
		var m Product
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.SKU, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	cb := strings.Builder{}
	cb.WriteString(`SELECT COUNT(*) FROM products WHERE 1=1`)
	argsCnt := []any{}
	if f.Name != nil {
		cb.WriteString(` AND name LIKE ?`)
		argsCnt = append(argsCnt, "%"+*f.Name+"%")
	}
	if f.SKU != nil {
		cb.WriteString(` AND sku = ?`)
		argsCnt = append(argsCnt, *f.SKU)
	}
	if f.IsActive != nil {
		cb.WriteString(` AND is_active = ?`)
		argsCnt = append(argsCnt, *f.IsActive)
	}
	var total int64
	if err := s.db.QueryRowContext(ctx, cb.String(), argsCnt...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

// ListAttributeValues は商品詳細用。割当行→値→属性を明示JOINでたどる。
func (s *Store) ListAttributeValues(ctx context.Context, productID int64) ([]ProductAttributeValueEntry, error) {
	const q = `
	SELECT
		av.id, av.value,
		a.id, a.name, a.type
	FROM product_attribute_values pav
	JOIN attribute_values av ON av.id = pav.attribute_value_id
	JOIN attributes a ON a.id = av.attribute_id
	WHERE pav.product_id = ?
	ORDER BY pav.id`

	rows, err := s.db.QueryContext(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProductAttributeValueEntry, 0, 8)
	for rows.Next() {
		var e ProductAttributeValueEntry
		if err := rows.Scan(&e.ID, &e.Value, &e.Attribute.ID, &e.Attribute.Name, &e.Attribute.Type); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListPricing は商品詳細用。料金行を地域・期間サマリ付きでJOINして取る。
func (s *Store) ListPricing(ctx context.Context, productID int64) ([]ProductPricingEntry, error) {
	const q = `
	SELECT
		pp.id, pp.price, pp.is_active,
		r.id, r.name, r.code,
		rp.id, rp.name, rp.days
	FROM product_pricing pp
	JOIN regions r ON r.id = pp.region_id
	JOIN rental_periods rp ON rp.id = pp.rental_period_id
	WHERE pp.product_id = ?
	ORDER BY pp.id`

	rows, err := s.db.QueryContext(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProductPricingEntry, 0, 8)
	for rows.Next() {
		var e ProductPricingEntry
		if err := rows.Scan(
			&e.ID, &e.Price, &e.IsActive,
			&e.Region.ID, &e.Region.Name, &e.Region.Code,
			&e.RentalPeriod.ID, &e.RentalPeriod.Name, &e.RentalPeriod.Days,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ===== attribute value links =====

func (s *Store) AttributeValueExists(ctx context.Context, valueID int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM attribute_values WHERE id = ?)`
	var found bool
	if err := s.db.QueryRowContext(ctx, q, valueID).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

func (s *Store) InsertAttributeValueLink(ctx context.Context, productID, valueID int64) (int64, error) {
	const q = `INSERT INTO product_attribute_values (product_id, attribute_value_id) VALUES (?, ?)`
	res, err := s.db.ExecContext(ctx, q, productID, valueID)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (s *Store) DeleteAttributeValueLink(ctx context.Context, productID, valueID int64) error {
	const q = `DELETE FROM product_attribute_values WHERE product_id = ? AND attribute_value_id = ?`
	res, err := s.db.ExecContext(ctx, q, productID, valueID)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return apperr.NotFound("Attribute value is not assigned to this product")
	}
	return nil
}

// Referenced は削除前の参照チェック（取引に使われていれば true）。
// 料金行と属性割当はFKのCASCADEで商品と一緒に消える。
func (s *Store) Referenced(ctx context.Context, productID int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM rental_transactions WHERE product_id = ?)`
	var used bool
	if err := s.db.QueryRowContext(ctx, q, productID).Scan(&used); err != nil {
		return false, err
	}
	return used, nil
}

func nullStrOrNil(ns sql.NullString) any {
	if ns.Valid {
		return ns.String
	}
	return nil
}
