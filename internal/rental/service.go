package rental

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"strconv"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/oklog/ulid/v2"

	"RENTA-backend/internal/platform/apperr"
)

// ===== インターフェース群 =====

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

type IDGen interface {
	New() (string, error)
}

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// TxStore は取引テーブルへのアクセス。テストではインメモリ実装に差し替える。
type TxStore interface {
	GetByID(ctx context.Context, id int64) (*RentalTransaction, error)
	GetByULID(ctx context.Context, u string) (*RentalTransaction, error)
	Insert(ctx context.Context, m *RentalTransaction) error
	Update(ctx context.Context, m *RentalTransaction) error
	UpdateStatus(ctx context.Context, id int64, st Status) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f Filter, p Page) ([]RentalTransaction, int64, error)
	FindOverlapping(ctx context.Context, productID int64, start, end time.Time, excludeID int64) ([]int64, error)
	DetailRefs(ctx context.Context, id int64) (ProductSummary, RegionSummary, RentalPeriodSummary, error)
}

// CatalogStore はカタログ側の参照解決。
type CatalogStore interface {
	ProductExists(ctx context.Context, id int64) (bool, error)
	RegionExists(ctx context.Context, id int64) (bool, error)
	RentalPeriodExists(ctx context.Context, id int64) (bool, error)
	RentalPeriodDays(ctx context.Context, id int64) (int, bool, error)
	Pricing(ctx context.Context, id int64) (*PricingInfo, error)
	GetProductSummary(ctx context.Context, id int64) (*ProductSummary, error)
	GetRegionSummary(ctx context.Context, id int64) (*RegionSummary, error)
	GetRentalPeriodSummary(ctx context.Context, id int64) (*RentalPeriodSummary, error)
}

// ===== 空き確認の理由（先に該当したものだけを返す） =====

const (
	reasonPricingNotFound = "Pricing not found"
	reasonMismatch        = "Pricing does not match the specified product, region and rental period"
	reasonInactivePricing = "Pricing is not active"
	reasonPeriodNotFound  = "Rental period not found"
	reasonInvalidRange    = "End date must be after start date"
	reasonOverlap         = "Product is already rented for the requested period"
)

// ===== Service本体 =====

type Service struct {
	store   TxStore
	catalog CatalogStore
	clock   Clock
	id      IDGen
}

func NewService(db *sql.DB) *Service {
	return &Service{
		store:   NewStore(db),
		catalog: NewCatalog(db),
		clock:   realClock{},
		id:      ulidGen{},
	}
}

// checkReferents は product / region / rental_period の存在を個別に確認する
func (s *Service) checkReferents(ctx context.Context, productID, regionID, periodID *int64) error {
	if productID != nil {
		ok, err := s.catalog.ProductExists(ctx, *productID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("Product not found")
		}
	}
	if regionID != nil {
		ok, err := s.catalog.RegionExists(ctx, *regionID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("Region not found")
		}
	}
	if periodID != nil {
		ok, err := s.catalog.RentalPeriodExists(ctx, *periodID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("Rental period not found")
		}
	}
	return nil
}

// Create は取引の新規登録。confirmed の既存取引と範囲が重なる場合は登録しない。
// 判定と INSERT の間に他リクエストが割り込む余地は残っている（トランザクション管理外）。
func (s *Service) Create(ctx context.Context, in CreateRentalTransactionRequest) (RentalTransactionResponse, error) {
	if in.Status != nil && !in.Status.Valid() {
		return RentalTransactionResponse{}, apperr.Invalid("status must be one of confirmed, cancelled, completed")
	}
	if in.Price.IsNegative() {
		return RentalTransactionResponse{}, apperr.Invalid("price must be >= 0")
	}

	if err := s.checkReferents(ctx, &in.ProductID, &in.RegionID, &in.RentalPeriodID); err != nil {
		return RentalTransactionResponse{}, err
	}

	if !in.StartDate.Before(in.EndDate) {
		return RentalTransactionResponse{}, apperr.Invalid(reasonInvalidRange)
	}

	// 新規なので除外 id なしで重複確認
	ids, err := s.store.FindOverlapping(ctx, in.ProductID, in.StartDate, in.EndDate, 0)
	if err != nil {
		return RentalTransactionResponse{}, err
	}
	if len(ids) > 0 {
		return RentalTransactionResponse{}, apperr.Conflict(reasonOverlap)
	}

	idStr, err := s.id.New()
	if err != nil {
		return RentalTransactionResponse{}, err
	}

	m := &RentalTransaction{
		RentalULID:      idStr,
		ProductID:       in.ProductID,
		RegionID:        in.RegionID,
		RentalPeriodID:  in.RentalPeriodID,
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerAddress: in.CustomerAddress,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		Price:           in.Price,
		Status:          StatusConfirmed,
	}
	if in.Status != nil {
		m.Status = *in.Status
	}
	if in.Notes != nil {
		m.Notes = sql.NullString{String: *in.Notes, Valid: true}
	}

	if err := s.store.Insert(ctx, m); err != nil {
		return RentalTransactionResponse{}, translateMySQL(err)
	}

	created, err := s.store.GetByID(ctx, m.ID)
	if err != nil {
		return RentalTransactionResponse{}, err
	}
	return toResponse(created), nil
}

// GetByRef は数値なら id、そうでなければ rental_ulid として引く
func (s *Service) GetByRef(ctx context.Context, ref string) (RentalTransactionDetailResponse, error) {
	var m *RentalTransaction
	var err error
	if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		m, err = s.store.GetByID(ctx, id)
	} else {
		m, err = s.store.GetByULID(ctx, ref)
	}
	if err != nil {
		return RentalTransactionDetailResponse{}, err
	}

	pr, rg, rp, err := s.store.DetailRefs(ctx, m.ID)
	if err != nil {
		return RentalTransactionDetailResponse{}, err
	}
	return RentalTransactionDetailResponse{
		RentalTransactionResponse: toResponse(m),
		Product:                   pr,
		Region:                    rg,
		RentalPeriod:              rp,
	}, nil
}

func (s *Service) List(ctx context.Context, f Filter, p Page) ([]RentalTransactionResponse, int64, error) {
	items, total, err := s.store.List(ctx, f, p)
	if err != nil {
		return nil, 0, err
	}
	out := make([]RentalTransactionResponse, 0, len(items))
	for i := range items {
		out = append(out, toResponse(&items[i]))
	}
	return out, total, nil
}

// Update は部分更新。日付・商品の変更があり、かつ更新後が confirmed の場合に限り
// 重複を取り直す（自分自身は除外）。顧客情報だけの変更では重複確認を行わない。
func (s *Service) Update(ctx context.Context, id int64, in UpdateRentalTransactionRequest) (RentalTransactionResponse, error) {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return RentalTransactionResponse{}, err
	}

	if in.Status != nil && !in.Status.Valid() {
		return RentalTransactionResponse{}, apperr.Invalid("status must be one of confirmed, cancelled, completed")
	}

	// 変更された参照先だけ再検証する
	if err := s.checkReferents(ctx, in.ProductID, in.RegionID, in.RentalPeriodID); err != nil {
		return RentalTransactionResponse{}, err
	}

	// マージ後の範囲は常に検証する
	start := m.StartDate
	if in.StartDate != nil {
		start = *in.StartDate
	}
	end := m.EndDate
	if in.EndDate != nil {
		end = *in.EndDate
	}
	if !start.Before(end) {
		return RentalTransactionResponse{}, apperr.Invalid(reasonInvalidRange)
	}

	newStatus := m.Status
	if in.Status != nil {
		newStatus = *in.Status
	}
	rangeTouched := in.StartDate != nil || in.EndDate != nil || in.ProductID != nil

	if rangeTouched && newStatus == StatusConfirmed {
		productID := m.ProductID
		if in.ProductID != nil {
			productID = *in.ProductID
		}
		ids, err := s.store.FindOverlapping(ctx, productID, start, end, id)
		if err != nil {
			return RentalTransactionResponse{}, err
		}
		if len(ids) > 0 {
			return RentalTransactionResponse{}, apperr.Conflict(reasonOverlap)
		}
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
	if in.CustomerName != nil {
		m.CustomerName = *in.CustomerName
	}
	if in.CustomerEmail != nil {
		m.CustomerEmail = *in.CustomerEmail
	}
	if in.CustomerAddress != nil {
		m.CustomerAddress = *in.CustomerAddress
	}
	m.StartDate = start
	m.EndDate = end
	if in.Price != nil {
		if in.Price.IsNegative() {
			return RentalTransactionResponse{}, apperr.Invalid("price must be >= 0")
		}
		m.Price = *in.Price
	}
	m.Status = newStatus
	if in.Notes != nil {
		m.Notes = sql.NullString{String: *in.Notes, Valid: true}
	}

	if err := s.store.Update(ctx, m); err != nil {
		return RentalTransactionResponse{}, translateMySQL(err)
	}

	updated, err := s.store.GetByID(ctx, id)
	if err != nil {
		return RentalTransactionResponse{}, err
	}
	return toResponse(updated), nil
}

// UpdateStatus は無条件の状態遷移。遷移規則は設けない。
func (s *Service) UpdateStatus(ctx context.Context, id int64, st Status) (RentalTransactionResponse, error) {
	if !st.Valid() {
		return RentalTransactionResponse{}, apperr.Invalid("status must be one of confirmed, cancelled, completed")
	}
	if err := s.store.UpdateStatus(ctx, id, st); err != nil {
		return RentalTransactionResponse{}, err
	}
	updated, err := s.store.GetByID(ctx, id)
	if err != nil {
		return RentalTransactionResponse{}, err
	}
	return toResponse(updated), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// CheckAvailability は /check-rental の本体。
// 検証は固定順で行い、最初に引っかかった理由だけを返す。
func (s *Service) CheckAvailability(ctx context.Context, in CheckRentalRequest) (CheckRentalResponse, error) {
	pricing, err := s.catalog.Pricing(ctx, in.PricingID)
	if err != nil {
		return CheckRentalResponse{}, err
	}
	if pricing == nil {
		return unavailable(reasonPricingNotFound), nil
	}

	resp := CheckRentalResponse{
		Pricing: &PricingSummary{ID: pricing.ID, Price: pricing.Price, IsActive: pricing.IsActive},
	}

	// 3つの id すべてが料金行の組と一致していること
	if pricing.ProductID != in.ProductID || pricing.RegionID != in.RegionID || pricing.RentalPeriodID != in.RentalPeriodID {
		return withReason(resp, reasonMismatch), nil
	}

	if resp.Product, err = s.catalog.GetProductSummary(ctx, in.ProductID); err != nil {
		return CheckRentalResponse{}, err
	}
	if resp.Region, err = s.catalog.GetRegionSummary(ctx, in.RegionID); err != nil {
		return CheckRentalResponse{}, err
	}
	if resp.RentalPeriod, err = s.catalog.GetRentalPeriodSummary(ctx, in.RentalPeriodID); err != nil {
		return CheckRentalResponse{}, err
	}

	if !pricing.IsActive {
		return withReason(resp, reasonInactivePricing), nil
	}

	start := s.clock.Now()
	if in.StartDate != nil {
		start = *in.StartDate
	}

	var end time.Time
	if in.EndDate != nil {
		end = *in.EndDate
	} else {
		// 終了日は期間の日数から補完する。期間行を引き直すのはこの経路だけ。
		days, found, err := s.catalog.RentalPeriodDays(ctx, in.RentalPeriodID)
		if err != nil {
			return CheckRentalResponse{}, err
		}
		if !found {
			return withReason(resp, reasonPeriodNotFound), nil
		}
		end = start.AddDate(0, 0, days)
	}

	resp.StartDate = &start
	resp.EndDate = &end

	if !start.Before(end) {
		return withReason(resp, reasonInvalidRange), nil
	}

	ids, err := s.store.FindOverlapping(ctx, in.ProductID, start, end, 0)
	if err != nil {
		return CheckRentalResponse{}, err
	}
	if len(ids) > 0 {
		return withReason(resp, reasonOverlap), nil
	}

	resp.Available = true
	return resp, nil
}

func unavailable(reason string) CheckRentalResponse {
	return CheckRentalResponse{Available: false, Reason: &reason}
}

func withReason(resp CheckRentalResponse, reason string) CheckRentalResponse {
	resp.Available = false
	resp.Reason = &reason
	return resp
}

func toResponse(m *RentalTransaction) RentalTransactionResponse {
	r := RentalTransactionResponse{
		ID:              m.ID,
		RentalULID:      m.RentalULID,
		ProductID:       m.ProductID,
		RegionID:        m.RegionID,
		RentalPeriodID:  m.RentalPeriodID,
		CustomerName:    m.CustomerName,
		CustomerEmail:   m.CustomerEmail,
		CustomerAddress: m.CustomerAddress,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		Price:           m.Price,
		Status:          m.Status,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Notes.Valid {
		r.Notes = &m.Notes.String
	}
	return r
}

// MySQLのエラー番号をドメインエラーへ変換する
func translateMySQL(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1062: // duplicate key
			return apperr.Conflict("duplicate rental_ulid")
		case 1452: // bad foreign key
			return apperr.NotFound("Referenced product, region or rental period not found")
		}
	}
	return err
}
