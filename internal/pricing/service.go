package pricing

import (
	"context"
	"database/sql"
	"errors"

	mysql "github.com/go-sql-driver/mysql"

	"RENTA-backend/internal/platform/apperr"
	"RENTA-backend/internal/platform/db"
)

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(conn *sql.DB) *Service { return &Service{db: conn, store: NewStore(conn)} }

// checkReferents は product / region / rental_period の存在を個別に確認する。
// どれが欠けているかをエラーメッセージで区別できるようにする。
func (s *Service) checkReferents(ctx context.Context, productID, regionID, periodID *int64) error {
	if productID != nil {
		ok, err := s.store.ReferentExists(ctx, "products", *productID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("Product not found")
		}
	}
	if regionID != nil {
		ok, err := s.store.ReferentExists(ctx, "regions", *regionID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("Region not found")
		}
	}
	if periodID != nil {
		ok, err := s.store.ReferentExists(ctx, "rental_periods", *periodID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("Rental period not found")
		}
	}
	return nil
}

// probeTriple は (product, region, rental_period) の一意性チェック
func (s *Service) probeTriple(ctx context.Context, excludeID, productID, regionID, periodID int64) error {
	dup, err := db.ExistsWhere(ctx, s.db, "product_pricing", excludeID,
		db.Key{Col: "product_id", Val: productID},
		db.Key{Col: "region_id", Val: regionID},
		db.Key{Col: "rental_period_id", Val: periodID},
	)
	if err != nil {
		return err
	}
	if dup {
		return apperr.Conflict("Pricing for this product, region and rental period already exists")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in CreatePricingRequest) (PricingResponse, error) {
	if in.Price.IsNegative() {
		return PricingResponse{}, apperr.Invalid("price must be >= 0")
	}
	if err := s.checkReferents(ctx, &in.ProductID, &in.RegionID, &in.RentalPeriodID); err != nil {
		return PricingResponse{}, err
	}
	if err := s.probeTriple(ctx, 0, in.ProductID, in.RegionID, in.RentalPeriodID); err != nil {
		return PricingResponse{}, err
	}

	m := &ProductPricing{
		ProductID:      in.ProductID,
		RegionID:       in.RegionID,
		RentalPeriodID: in.RentalPeriodID,
		Price:          in.Price,
		IsActive:       true,
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}

	if err := s.store.Insert(ctx, m); err != nil {
		return PricingResponse{}, translateMySQL(err)
	}

	created, err := s.store.GetByID(ctx, m.ID)
	if err != nil {
		return PricingResponse{}, err
	}
	return toResponse(created), nil
}

func (s *Service) Get(ctx context.Context, id int64) (PricingDetailResponse, error) {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return PricingDetailResponse{}, err
	}
	pr, rg, rp, err := s.store.GetRefs(ctx, id)
	if err != nil {
		return PricingDetailResponse{}, err
	}
	return PricingDetailResponse{
		PricingResponse: toResponse(m),
		Product:         pr,
		Region:          rg,
		RentalPeriod:    rp,
	}, nil
}

func (s *Service) List(ctx context.Context, f Filter, p Page) ([]PricingResponse, int64, error) {
	items, total, err := s.store.List(ctx, f, p)
	if err != nil {
		return nil, 0, err
	}
	out := make([]PricingResponse, 0, len(items))
	for i := range items {
		out = append(out, toResponse(&items[i]))
	}
	return out, total, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdatePricingRequest) (PricingResponse, error) {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return PricingResponse{}, err
	}

	// 変更された参照先だけ再検証する
	if err := s.checkReferents(ctx, in.ProductID, in.RegionID, in.RentalPeriodID); err != nil {
		return PricingResponse{}, err
	}

	if in.ProductID != nil {
		m.ProductID = *in.ProductID
	}
	if in.RegionID != nil {
		m.RegionID = *in.RegionID
	}
	if in.RentalPeriodID != nil {
		m.RentalPeriodID = *in.RentalPeriodID
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return PricingResponse{}, apperr.Invalid("price must be >= 0")
		}
		m.Price = *in.Price
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}

	// マージ後の組で再チェック（自分自身は除外）
	if in.ProductID != nil || in.RegionID != nil || in.RentalPeriodID != nil {
		if err := s.probeTriple(ctx, id, m.ProductID, m.RegionID, m.RentalPeriodID); err != nil {
			return PricingResponse{}, err
		}
	}

	if err := s.store.Update(ctx, m); err != nil {
		return PricingResponse{}, translateMySQL(err)
	}

	updated, err := s.store.GetByID(ctx, id)
	if err != nil {
		return PricingResponse{}, err
	}
	return toResponse(updated), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return translateMySQL(err)
	}
	return nil
}

func toResponse(m *ProductPricing) PricingResponse {
	return PricingResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		RegionID:       m.RegionID,
		RentalPeriodID: m.RentalPeriodID,
		Price:          m.Price,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// MySQLのエラー番号をドメインエラーへ変換する
func translateMySQL(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1062: // duplicate key
			return apperr.Conflict("Pricing for this product, region and rental period already exists")
		case 1452: // bad foreign key
			return apperr.NotFound("Referenced product, region or rental period not found")
		}
	}
	return err
}
