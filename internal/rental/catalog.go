package rental

import (
	"context"
	"database/sql"
)

// Catalog はカタログ側テーブルへの読み取り専用アクセス。
// 取引の参照先検証と空き確認の解決にだけ使う。
type Catalog struct {
	db *sql.DB
}

func NewCatalog(db *sql.DB) *Catalog { return &Catalog{db: db} }

func (c *Catalog) exists(ctx context.Context, table string, id int64) (bool, error) {
	q := `SELECT EXISTS(SELECT 1 FROM ` + table + ` WHERE id = ?)`
	var ok bool
	if err := c.db.QueryRowContext(ctx, q, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (c *Catalog) ProductExists(ctx context.Context, id int64) (bool, error) {
	return c.exists(ctx, "products", id)
}

func (c *Catalog) RegionExists(ctx context.Context, id int64) (bool, error) {
	return c.exists(ctx, "regions", id)
}

func (c *Catalog) RentalPeriodExists(ctx context.Context, id int64) (bool, error) {
	return c.exists(ctx, "rental_periods", id)
}

// RentalPeriodDays は期間の日数を返す。行が無ければ found=false。
func (c *Catalog) RentalPeriodDays(ctx context.Context, id int64) (int, bool, error) {
	var days int
	err := c.db.QueryRowContext(ctx, `SELECT days FROM rental_periods WHERE id = ?`, id).Scan(&days)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, err
	}
	return days, true, nil
}

// Pricing は料金行を返す。行が無ければ (nil, nil)。
func (c *Catalog) Pricing(ctx context.Context, id int64) (*PricingInfo, error) {
	const q = `
	SELECT id, product_id, region_id, rental_period_id, price, is_active
	FROM product_pricing WHERE id = ?`
	var p PricingInfo
	err := c.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.ProductID, &p.RegionID, &p.RentalPeriodID, &p.Price, &p.IsActive,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (c *Catalog) GetProductSummary(ctx context.Context, id int64) (*ProductSummary, error) {
	var s ProductSummary
	err := c.db.QueryRowContext(ctx, `SELECT id, name, sku FROM products WHERE id = ?`, id).
		Scan(&s.ID, &s.Name, &s.SKU)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (c *Catalog) GetRegionSummary(ctx context.Context, id int64) (*RegionSummary, error) {
	var s RegionSummary
	err := c.db.QueryRowContext(ctx, `SELECT id, name, code FROM regions WHERE id = ?`, id).
		Scan(&s.ID, &s.Name, &s.Code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (c *Catalog) GetRentalPeriodSummary(ctx context.Context, id int64) (*RentalPeriodSummary, error) {
	var s RentalPeriodSummary
	err := c.db.QueryRowContext(ctx, `SELECT id, name, days FROM rental_periods WHERE id = ?`, id).
		Scan(&s.ID, &s.Name, &s.Days)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
