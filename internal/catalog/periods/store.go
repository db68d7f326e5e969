package periods

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

const periodCols = `id, name, days, is_active, created_at, updated_at`

func (s *Store) GetByID(ctx context.Context, id int64) (*RentalPeriod, error) {
	q := `SELECT ` + periodCols + ` FROM rental_periods WHERE id = ?`
	var m RentalPeriod
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Name, &m.Days, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("Rental period not found")
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) Insert(ctx context.Context, m *RentalPeriod) error {
	const q = `INSERT INTO rental_periods (name, days, is_active) VALUES (?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, m.Name, m.Days, m.IsActive)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	m.ID = id
	return nil
}

func (s *Store) Update(ctx context.Context, m *RentalPeriod) error {
	const q = `UPDATE rental_periods SET name = ?, days = ?, is_active = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, q, m.Name, m.Days, m.IsActive, m.ID)
	return err
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rental_periods WHERE id = ?`, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return apperr.NotFound("Rental period not found")
	}
	return nil
}

func (s *Store) List(ctx context.Context, f Filter, p Page) ([]RentalPeriod, int64, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + periodCols + ` FROM rental_periods WHERE 1=1`)

	args := []any{}
	if f.Name != nil {
		sb.WriteString(` AND name LIKE ?`)
		args = append(args, "%"+*f.Name+"%")
	}
	if f.IsActive != nil {
		sb.WriteString(` AND is_active = ?`)
		args = append(args, *f.IsActive)
	}

	order := "DESC"
	if strings.ToLower(p.Order) == "asc" {
		order = "ASC"
	}
	sb.WriteString(fmt.Sprintf(` ORDER BY days %s`, order))
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

	var out []RentalPeriod
	for rows.Next() {
		var m RentalPeriod
		if err := rows.Scan(&m.ID, &m.Name, &m.Days, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	cb := strings.Builder{}
	cb.WriteString(`SELECT COUNT(*) FROM rental_periods WHERE 1=1`)
	argsCnt := []any{}
	if f.Name != nil {
		cb.WriteString(` AND name LIKE ?`)
		argsCnt = append(argsCnt, "%"+*f.Name+"%")
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

// ListPricing は期間詳細用。料金行を商品・地域サマリ付きでJOINして取る。
func (s *Store) ListPricing(ctx context.Context, periodID int64) ([]PeriodPricingEntry, error) {
	const q = `
	SELECT
		pp.id, pp.price, pp.is_active,
		p.id, p.name, p.sku,
		r.id, r.name, r.code
	FROM product_pricing pp
	JOIN products p ON p.id = pp.product_id
	JOIN regions r ON r.id = pp.region_id
	WHERE pp.rental_period_id = ?
	ORDER BY pp.id`

	rows, err := s.db.QueryContext(ctx, q, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PeriodPricingEntry, 0, 8)
	for rows.Next() {
		var e PeriodPricingEntry
		if err := rows.Scan(
			&e.ID, &e.Price, &e.IsActive,
			&e.Product.ID, &e.Product.Name, &e.Product.SKU,
			&e.Region.ID, &e.Region.Name, &e.Region.Code,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) Referenced(ctx context.Context, periodID int64) (bool, error) {
	const q = `
	SELECT EXISTS(SELECT 1 FROM product_pricing WHERE rental_period_id = ?)
	    OR EXISTS(SELECT 1 FROM rental_transactions WHERE rental_period_id = ?)`
	var used bool
	if err := s.db.QueryRowContext(ctx, q, periodID, periodID).Scan(&used); err != nil {
		return false, err
	}
	return used, nil
}
