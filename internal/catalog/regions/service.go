package regions

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

func (s *Service) Create(ctx context.Context, in CreateRegionRequest) (RegionResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Code) == "" {
		return RegionResponse{}, apperr.Invalid("name and code are required")
	}

	// 重複チェックは name / code それぞれ個別に行う
	if dup, err := db.ExistsWhere(ctx, s.db, "regions", 0, db.Key{Col: "name", Val: in.Name}); err != nil {
		return RegionResponse{}, err
	} else if dup {
		return RegionResponse{}, apperr.Conflict("Region with this name already exists")
	}
	if dup, err := db.ExistsWhere(ctx, s.db, "regions", 0, db.Key{Col: "code", Val: in.Code}); err != nil {
		return RegionResponse{}, err
	} else if dup {
		return RegionResponse{}, apperr.Conflict("Region with this code already exists")
	}

	m := &Region{Name: in.Name, Code: in.Code, IsActive: true}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}

	if err := s.store.Insert(ctx, m); err != nil {
		return RegionResponse{}, translateMySQL(err)
	}

	created, err := s.store.GetByID(ctx, m.ID)
	if err != nil {
		return RegionResponse{}, err
	}
	return toResponse(created), nil
}

func (s *Service) Get(ctx context.Context, id int64) (RegionDetailResponse, error) {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return RegionDetailResponse{}, err
	}
	pricing, err := s.store.ListPricing(ctx, id)
	if err != nil {
		return RegionDetailResponse{}, err
	}
	return RegionDetailResponse{RegionResponse: toResponse(m), Pricing: pricing}, nil
}

func (s *Service) List(ctx context.Context, f Filter, p Page) ([]RegionResponse, int64, error) {
	items, total, err := s.store.List(ctx, f, p)
	if err != nil {
		return nil, 0, err
	}
	out := make([]RegionResponse, 0, len(items))
	for i := range items {
		out = append(out, toResponse(&items[i]))
	}
	return out, total, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateRegionRequest) (RegionResponse, error) {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return RegionResponse{}, err
	}

	if in.Name != nil {
		if dup, err := db.ExistsWhere(ctx, s.db, "regions", id, db.Key{Col: "name", Val: *in.Name}); err != nil {
			return RegionResponse{}, err
		} else if dup {
			return RegionResponse{}, apperr.Conflict("Region with this name already exists")
		}
		m.Name = *in.Name
	}
	if in.Code != nil {
		if dup, err := db.ExistsWhere(ctx, s.db, "regions", id, db.Key{Col: "code", Val: *in.Code}); err != nil {
			return RegionResponse{}, err
		} else if dup {
			return RegionResponse{}, apperr.Conflict("Region with this code already exists")
		}
		m.Code = *in.Code
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}

	if err := s.store.Update(ctx, m); err != nil {
		return RegionResponse{}, translateMySQL(err)
	}

	updated, err := s.store.GetByID(ctx, id)
	if err != nil {
		return RegionResponse{}, err
	}
	return toResponse(updated), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	used, err := s.store.Referenced(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return apperr.Conflict("Region is referenced by pricing or transactions")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return translateMySQL(err)
	}
	return nil
}

func toResponse(m *Region) RegionResponse {
	return RegionResponse{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// MySQLのエラー番号をドメインエラーへ変換する
func translateMySQL(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1062: // duplicate key
			return apperr.Conflict("duplicate name or code")
		case 1451: // row is referenced
			return apperr.Conflict("Region is referenced by pricing or transactions")
		}
	}
	return err
}
