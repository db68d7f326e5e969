package periods

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

func (s *Service) Create(ctx context.Context, in CreateRentalPeriodRequest) (RentalPeriodResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return RentalPeriodResponse{}, apperr.Invalid("name is required")
	}
	if in.Days <= 0 {
		return RentalPeriodResponse{}, apperr.Invalid("days must be > 0")
	}

	if dup, err := db.ExistsWhere(ctx, s.db, "rental_periods", 0, db.Key{Col: "name", Val: in.Name}); err != nil {
		return RentalPeriodResponse{}, err
	} else if dup {
		return RentalPeriodResponse{}, apperr.Conflict("Rental period with this name already exists")
	}

	m := &RentalPeriod{Name: in.Name, Days: in.Days, IsActive: true}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}

	if err := s.store.Insert(ctx, m); err != nil {
		return RentalPeriodResponse{}, translateMySQL(err)
	}

	created, err := s.store.GetByID(ctx, m.ID)
	if err != nil {
		return RentalPeriodResponse{}, err
	}
	return toResponse(created), nil
}

func (s *Service) Get(ctx context.Context, id int64) (RentalPeriodDetailResponse, error) {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return RentalPeriodDetailResponse{}, err
	}
	pricing, err := s.store.ListPricing(ctx, id)
	if err != nil {
		return RentalPeriodDetailResponse{}, err
	}
	return RentalPeriodDetailResponse{RentalPeriodResponse: toResponse(m), Pricing: pricing}, nil
}

func (s *Service) List(ctx context.Context, f Filter, p Page) ([]RentalPeriodResponse, int64, error) {
	items, total, err := s.store.List(ctx, f, p)
	if err != nil {
		return nil, 0, err
	}
	out := make([]RentalPeriodResponse, 0, len(items))
	for i := range items {
		out = append(out, toResponse(&items[i]))
	}
	return out, total, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateRentalPeriodRequest) (RentalPeriodResponse, error) {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return RentalPeriodResponse{}, err
	}

	if in.Name != nil {
		if dup, err := db.ExistsWhere(ctx, s.db, "rental_periods", id, db.Key{Col: "name", Val: *in.Name}); err != nil {
			return RentalPeriodResponse{}, err
		} else if dup {
			return RentalPeriodResponse{}, apperr.Conflict("Rental period with this name already exists")
		}
		m.Name = *in.Name
	}
	if in.Days != nil {
		if *in.Days <= 0 {
			return RentalPeriodResponse{}, apperr.Invalid("days must be > 0")
		}
		m.Days = *in.Days
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}

	if err := s.store.Update(ctx, m); err != nil {
		return RentalPeriodResponse{}, translateMySQL(err)
	}

	updated, err := s.store.GetByID(ctx, id)
	if err != nil {
		return RentalPeriodResponse{}, err
	}
	return toResponse(updated), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	used, err := s.store.Referenced(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return apperr.Conflict("Rental period is referenced by pricing or transactions")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return translateMySQL(err)
	}
	return nil
}

func toResponse(m *RentalPeriod) RentalPeriodResponse {
	return RentalPeriodResponse{
		ID:        m.ID,
		Name:      m.Name,
		Days:      m.Days,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func translateMySQL(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1062:
			return apperr.Conflict("duplicate rental period name")
		case 1451:
			return apperr.Conflict("Rental period is referenced by pricing or transactions")
		}
	}
	return err
}
