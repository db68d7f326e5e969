package regions

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

const regionCols = `id, name, code, is_active, created_at, updated_at`

func (s *Store) GetByID(ctx context.Context, id int64) (*Region, error) {
	q := `SELECT ` + regionCols + ` FROM regions WHERE id = ?`
	var m Region
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Name, &m.Code, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("Region not found")
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) Insert(ctx context.Context, m *Region) error {
	const q = `INSERT INTO regions (name, code, is_active) VALUES (?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, m.Name, m.Code, m.IsActive)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	m.ID = id
	return nil
}

func (s *Store) Update(ctx context.Context, m *Region) error {
	const q = `UPDATE regions SET name = ?, code = ?, is_active = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, q, m.Name, m.Code, m.IsActive, m.ID)
	return err
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM regions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return apperr.NotFound("Region not found")
	}
	return nil
}

func (s *Store) List(ctx context.Context, f Filter, p Page) ([]Region, int64, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + regionCols + ` FROM regions WHERE 1=1`)

	args := []any{}
	if f.Name != nil {
		sb.WriteString(` AND name LIKE ?`)
		args = append(args, "%"+*f.Name+"%")
	}
	if f.Code != nil {
		sb.WriteString(` AND code = ?`)
		args = append(args, *f.Code)
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

	var out []Region
	for rows.Next() {
		var m Region
		if err := rows.Scan(&m.ID, &m.Name, &m.Code, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// 件数は同条件で取り直す
	cb := strings.Builder{}
	cb.WriteString(`SELECT COUNT(*) FROM regions WHERE 1=1`)
	argsCnt := []any{}
	if f.Name != nil {
		cb.WriteString(` AND name LIKE ?`)
		argsCnt = append(argsCnt, "%"+*f.Name+"%")
	}
	if f.Code != nil {
		cb.WriteString(` AND code = ?`)
		argsCnt = append(argsCnt, *f.Code)
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

// ListPricing は地域詳細用。料金行を商品・期間サマリ付きでJOINして取る。
func (s *Store) ListPricing(ctx context.Context, regionID int64) ([]RegionPricingEntry, error) {
	const q = `
	SELECT
		pp.id, pp.price, pp.is_active,
		p.id, p.name, p.sku,
		rp.id, rp.name, rp.days
	FROM product_pricing pp
	JOIN products p ON p.id = pp.product_id
	JOIN rental_periods rp ON rp.id = pp.rental_period_id
	WHERE pp.region_id = ?
	ORDER BY pp.id`

	rows, err := s.db.QueryContext(ctx, q, regionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RegionPricingEntry, 0, 8)
	for rows.Next() {
		var e RegionPricingEntry
		if err := rows.Scan(
			&e.ID, &e.Price, &e.IsActive,
			&e.Product.ID, &e.Product.Name, &e.Product.SKU,
			&e.RentalPeriod.ID, &e.RentalPeriod.Name, &e.RentalPeriod.Days,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Referenced は削除前の参照チェック（料金・取引のどちらかに使われていれば true）
func (s *Store) Referenced(ctx context.Context, regionID int64) (bool, error) {
	const q = `
	SELECT EXISTS(SELECT 1 FROM product_pricing WHERE region_id = ?)
	    OR EXISTS(SELECT 1 FROM rental_transactions WHERE region_id = ?)`
	var used bool
	if err := s.db.QueryRowContext(ctx, q, regionID, regionID).Scan(&used); err != nil {
		return false, err
	}
	return used, nil
}
