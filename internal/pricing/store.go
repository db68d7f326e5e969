package pricing

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

const pricingCols = `id, product_id, region_id, rental_period_id, price, is_active, created_at, updated_at`

func (s *Store) GetByID(ctx context.Context, id int64) (*ProductPricing, error) {
	q := `SELECT ` + pricingCols + ` FROM product_pricing WHERE id = ?`
	var m ProductPricing
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.ProductID, &m.RegionID, &m.RentalPeriodID,
		&m.Price, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("Pricing not found")
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) Insert(ctx context.Context, m *ProductPricing) error {
	const q = `
	INSERT INTO product_pricing (product_id, region_id, rental_period_id, price, is_active)
	VALUES (?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, m.ProductID, m.RegionID, m.RentalPeriodID, m.Price, m.IsActive)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	m.ID = id
	return nil
}

func (s *Store) Update(ctx context.Context, m *ProductPricing) error {
	const q = `
	UPDATE product_pricing
	SET product_id = ?, region_id = ?, rental_period_id = ?, price = ?, is_active = ?
	WHERE id = ?`
	_, err := s.db.ExecContext(ctx, q, m.ProductID, m.RegionID, m.RentalPeriodID, m.Price, m.IsActive, m.ID)
	return err
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM product_pricing WHERE id = ?`, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return apperr.NotFound("Pricing not found")
	}
	return nil
}

func (s *Store) List(ctx context.Context, f Filter, p Page) ([]ProductPricing, int64, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + pricingCols + ` FROM product_pricing WHERE 1=1`)

	args := []any{}
	if f.ProductID != nil {
		sb.WriteString(` AND product_id = ?`)
		args = append(args, *f.ProductID)
	}
	if f.RegionID != nil {
		sb.WriteString(` AND region_id = ?`)
		args = append(args, *f.RegionID)
	}
	if f.RentalPeriodID != nil {
		sb.WriteString(` AND rental_period_id = ?`)
		args = append(args, *f.RentalPeriodID)
	}
	if f.MinPrice != nil {
		sb.WriteString(` AND price >= ?`)
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		sb.WriteString(` AND price <= ?`)
		args = append(args, *f.MaxPrice)
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

	var out []ProductPricing
	for rows.Next() {
		var m ProductPricing
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.RegionID, &m.RentalPeriodID,
			&m.Price, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// 件数は同条件で取り直す
	cb := strings.Builder{}
	cb.WriteString(`SELECT COUNT(*) FROM product_pricing WHERE 1=1`)
	argsCnt := []any{}
	if f.ProductID != nil {
		cb.WriteString(` AND product_id = ?`)
		argsCnt = append(argsCnt, *f.ProductID)
	}
	if f.RegionID != nil {
		cb.WriteString(` AND region_id = ?`)
		argsCnt = append(argsCnt, *f.RegionID)
	}
	if f.RentalPeriodID != nil {
		cb.WriteString(` AND rental_period_id = ?`)
		argsCnt = append(argsCnt, *f.RentalPeriodID)
	}
	if f.MinPrice != nil {
		cb.WriteString(` AND price >= ?`)
		argsCnt = append(argsCnt, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		cb.WriteString(` AND price <= ?`)
		argsCnt = append(argsCnt, *f.MaxPrice)
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

// GetRefs は詳細レスポンス用。参照先3テーブルのサマリをJOINで取る。
func (s *Store) GetRefs(ctx context.Context, id int64) (ProductRef, RegionRef, RentalPeriodRef, error) {
	const q = `
	SELECT
		p.id, p.name, p.sku,
		r.id, r.name, r.code,
		rp.id, rp.name, rp.days
	FROM product_pricing pp
	JOIN products p ON p.id = pp.product_id
	JOIN regions r ON r.id = pp.region_id
	JOIN rental_periods rp ON rp.id = pp.rental_period_id
	WHERE pp.id = ?`

	var pr ProductRef
	var rg RegionRef
	var rp RentalPeriodRef
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&pr.ID, &pr.Name, &pr.SKU,
		&rg.ID, &rg.Name, &rg.Code,
		&rp.ID, &rp.Name, &rp.Days,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return pr, rg, rp, apperr.NotFound("Pricing not found")
		}
		return pr, rg, rp, err
	}
	return pr, rg, rp, nil
}

// ReferentExists は参照先テーブルの存在チェック（テーブル名は呼び出し側の定数のみ）
func (s *Store) ReferentExists(ctx context.Context, table string, id int64) (bool, error) {
	q := `SELECT EXISTS(SELECT 1 FROM ` + table + ` WHERE id = ?)`
	var ok bool
	if err := s.db.QueryRowContext(ctx, q, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
