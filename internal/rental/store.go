package rental

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"RENTA-backend/internal/platform/apperr"
	"RENTA-backend/internal/platform/db"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

const txCols = `id, rental_ulid, product_id, region_id, rental_period_id,
	customer_name, customer_email, customer_address,
	start_date, end_date, price, status, notes, created_at, updated_at`

func (s *Store) scanOne(row *sql.Row) (*RentalTransaction, error) {
	var m RentalTransaction
	err := row.Scan(
		&m.ID, &m.RentalULID, &m.ProductID, &m.RegionID, &m.RentalPeriodID,
		&m.CustomerName, &m.CustomerEmail, &m.CustomerAddress,
		&m.StartDate, &m.EndDate, &m.Price, &m.Status, &m.Notes,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("Rental transaction not found")
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*RentalTransaction, error) {
	q := `SELECT ` + txCols + ` FROM rental_transactions WHERE id = ?`
	return s.scanOne(s.db.QueryRowContext(ctx, q, id))
}

func (s *Store) GetByULID(ctx context.Context, u string) (*RentalTransaction, error) {
	q := `SELECT ` + txCols + ` FROM rental_transactions WHERE rental_ulid = ?`
	return s.scanOne(s.db.QueryRowContext(ctx, q, u))
}

func (s *Store) Insert(ctx context.Context, m *RentalTransaction) error {
	const q = `
	INSERT INTO rental_transactions
		(rental_ulid, product_id, region_id, rental_period_id,
		 customer_name, customer_email, customer_address,
		 start_date, end_date, price, status, notes)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		m.RentalULID, m.ProductID, m.RegionID, m.RentalPeriodID,
		m.CustomerName, m.CustomerEmail, m.CustomerAddress,
		m.StartDate, m.EndDate, m.Price, m.Status, m.Notes,
	)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	m.ID = id
	return nil
}

func (s *Store) Update(ctx context.Context, m *RentalTransaction) error {
	const q = `
	UPDATE rental_transactions
	SET product_id = ?, region_id = ?, rental_period_id = ?,
	    customer_name = ?, customer_email = ?, customer_address = ?,
	    start_date = ?, end_date = ?, price = ?, status = ?, notes = ?
	WHERE id = ?`
	_, err := s.db.ExecContext(ctx, q,
		m.ProductID, m.RegionID, m.RentalPeriodID,
		m.CustomerName, m.CustomerEmail, m.CustomerAddress,
		m.StartDate, m.EndDate, m.Price, m.Status, m.Notes, m.ID,
	)
	return err
}

func (s *Store) UpdateStatus(ctx context.Context, id int64, st Status) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		res, err := tx.ExecContext(ctx, `UPDATE rental_transactions SET status = ? WHERE id = ?`, st, id)
		if err != nil {
			return err
		}
		aff, _ := res.RowsAffected()
		if aff == 0 {
			// 同値更新でも RowsAffected は 0 になり得るので存在確認で区別する
			var ok bool
			if err := tx.QueryRowContext(ctx,
				`SELECT EXISTS(SELECT 1 FROM rental_transactions WHERE id = ?)`, id).Scan(&ok); err != nil {
				return err
			}
			if !ok {
				return apperr.NotFound("Rental transaction not found")
			}
		}
		return nil
	})
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rental_transactions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return apperr.NotFound("Transaction not found")
	}
	return nil
}

func buildTxWhere(sb *strings.Builder, args *[]any, f Filter) {
	if f.ProductID != nil {
		sb.WriteString(` AND product_id = ?`)
		*args = append(*args, *f.ProductID)
	}
	if f.RegionID != nil {
		sb.WriteString(` AND region_id = ?`)
		*args = append(*args, *f.RegionID)
	}
	if f.RentalPeriodID != nil {
		sb.WriteString(` AND rental_period_id = ?`)
		*args = append(*args, *f.RentalPeriodID)
	}
	if f.CustomerEmail != nil {
		sb.WriteString(` AND customer_email LIKE ?`)
		*args = append(*args, "%"+*f.CustomerEmail+"%")
	}
	if f.Status != nil {
		sb.WriteString(` AND status = ?`)
		*args = append(*args, *f.Status)
	}
	if f.StartDateFrom != nil {
		sb.WriteString(` AND start_date >= ?`)
		*args = append(*args, *f.StartDateFrom)
	}
	if f.StartDateTo != nil {
		sb.WriteString(` AND start_date <= ?`)
		*args = append(*args, *f.StartDateTo)
	}
	if f.EndDateFrom != nil {
		sb.WriteString(` AND end_date >= ?`)
		*args = append(*args, *f.EndDateFrom)
	}
	if f.EndDateTo != nil {
		sb.WriteString(` AND end_date <= ?`)
		*args = append(*args, *f.EndDateTo)
	}
}

// List は一覧と件数を同一スナップショットで返すため読み取り専用Txで取る
func (s *Store) List(ctx context.Context, f Filter, p Page) ([]RentalTransaction, int64, error) {
	var out []RentalTransaction
	var total int64

	err := db.ReadOnly(ctx, s.db, func(ctx context.Context, tx db.DBTX) error {
		sb := strings.Builder{}
		sb.WriteString(`SELECT ` + txCols + ` FROM rental_transactions WHERE 1=1`)
		args := []any{}
		buildTxWhere(&sb, &args, f)

		// 新しい取引が先
		sb.WriteString(` ORDER BY created_at DESC`)
		if p.Limit <= 0 {
			p.Limit = 50
		}
		if p.Offset < 0 {
			p.Offset = 0
		}
		sb.WriteString(` LIMIT ? OFFSET ?`)
		args = append(args, p.Limit, p.Offset)

		rows, err := tx.QueryContext(ctx, sb.String(), args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var m RentalTransaction
			if err := rows.Scan(
				&m.ID, &m.RentalULID, &m.ProductID, &m.RegionID, &m.RentalPeriodID,
				&m.CustomerName, &m.CustomerEmail, &m.CustomerAddress,
				&m.StartDate, &m.EndDate, &m.Price, &m.Status, &m.Notes,
				&m.CreatedAt, &m.UpdatedAt,
			); err != nil {
				return err
			}
			out = append(out, m)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		// 件数は同条件で取り直す
		cb := strings.Builder{}
		cb.WriteString(`SELECT COUNT(*) FROM rental_transactions WHERE 1=1`)
		argsCnt := []any{}
		buildTxWhere(&cb, &argsCnt, f)
		return tx.QueryRowContext(ctx, cb.String(), argsCnt...).Scan(&total)
	})
	if err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

// FindOverlapping は confirmed の取引のうち、指定範囲と重なる行の id を返す。
// 境界が接しているだけでも重なり扱い（両端を含む比較）。
func (s *Store) FindOverlapping(ctx context.Context, productID int64, start, end time.Time, excludeID int64) ([]int64, error) {
	sb := strings.Builder{}
	sb.WriteString(`
	SELECT id FROM rental_transactions
	WHERE product_id = ? AND status = 'confirmed'
	  AND start_date <= ? AND end_date >= ?`)
	args := []any{productID, end, start}
	if excludeID > 0 {
		sb.WriteString(` AND id <> ?`)
		args = append(args, excludeID)
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DetailRefs は取引詳細用。参照先3テーブルのサマリをJOINで取る。
func (s *Store) DetailRefs(ctx context.Context, id int64) (ProductSummary, RegionSummary, RentalPeriodSummary, error) {
	const q = `
	SELECT
		p.id, p.name, p.sku,
		r.id, r.name, r.code,
		rp.id, rp.name, rp.days
	FROM rental_transactions t
	JOIN products p ON p.id = t.product_id
	JOIN regions r ON r.id = t.region_id
	JOIN rental_periods rp ON rp.id = t.rental_period_id
	WHERE t.id = ?`

	var pr ProductSummary
	var rg RegionSummary
	var rp RentalPeriodSummary
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&pr.ID, &pr.Name, &pr.SKU,
		&rg.ID, &rg.Name, &rg.Code,
		&rp.ID, &rp.Name, &rp.Days,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return pr, rg, rp, apperr.NotFound("Rental transaction not found")
		}
		return pr, rg, rp, err
	}
	return pr, rg, rp, nil
}
