package rental

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RENTA-backend/internal/platform/apperr"
)

var testNow = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time { return testNow.AddDate(0, 0, n-1) }

func setup(t *testing.T) (*Service, *fakeTxStore, *fakeCatalog) {
	t.Helper()
	store := &fakeTxStore{rows: map[int64]*RentalTransaction{}}
	catalog := &fakeCatalog{
		products: map[int64]ProductSummary{1: {ID: 1, Name: "Camera", SKU: "CAM-1"}},
		regions:  map[int64]RegionSummary{1: {ID: 1, Name: "Tokyo", Code: "TYO"}},
		periods:  map[int64]RentalPeriodSummary{1: {ID: 1, Name: "1 week", Days: 7}},
		pricing:  map[int64]PricingInfo{},
	}
	svc := &Service{store: store, catalog: catalog, clock: fixedClock{}, id: &seqIDGen{}}
	return svc, store, catalog
}

func createReq(start, end time.Time) CreateRentalTransactionRequest {
	return CreateRentalTransactionRequest{
		ProductID:       1,
		RegionID:        1,
		RentalPeriodID:  1,
		CustomerName:    "Taro",
		CustomerEmail:   "taro@example.com",
		CustomerAddress: "Tokyo",
		StartDate:       start,
		EndDate:         end,
		Price:           decimal.NewFromInt(1000),
	}
}

func TestCreateRentalTransaction(t *testing.T) {
	t.Run("success with defaulted status", func(t *testing.T) {
		svc, store, _ := setup(t)

		res, err := svc.Create(context.Background(), createReq(day(1), day(5)))

		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, res.Status)
		assert.NotEmpty(t, res.RentalULID)
		assert.Len(t, store.rows, 1)
	})

	t.Run("missing referents are reported individually", func(t *testing.T) {
		svc, _, _ := setup(t)

		req := createReq(day(1), day(5))
		req.ProductID = 99
		_, err := svc.Create(context.Background(), req)
		assertAppErr(t, err, apperr.CodeNotFound, "Product not found")

		req = createReq(day(1), day(5))
		req.RegionID = 99
		_, err = svc.Create(context.Background(), req)
		assertAppErr(t, err, apperr.CodeNotFound, "Region not found")

		req = createReq(day(1), day(5))
		req.RentalPeriodID = 99
		_, err = svc.Create(context.Background(), req)
		assertAppErr(t, err, apperr.CodeNotFound, "Rental period not found")
	})

	t.Run("start must be before end", func(t *testing.T) {
		svc, _, _ := setup(t)

		_, err := svc.Create(context.Background(), createReq(day(5), day(5)))
		assertAppErr(t, err, apperr.CodeInvalidArgument, "End date must be after start date")
	})

	t.Run("touching intervals conflict", func(t *testing.T) {
		svc, _, _ := setup(t)

		_, err := svc.Create(context.Background(), createReq(day(1), day(5)))
		require.NoError(t, err)

		// 端が接しているだけでも衝突
		_, err = svc.Create(context.Background(), createReq(day(5), day(10)))
		assertAppErr(t, err, apperr.CodeConflict, "Product is already rented for the requested period")
	})

	t.Run("disjoint intervals do not conflict", func(t *testing.T) {
		svc, _, _ := setup(t)

		_, err := svc.Create(context.Background(), createReq(day(1), day(5)))
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), createReq(day(6), day(10)))
		assert.NoError(t, err)
	})

	t.Run("cancelled transaction frees its range", func(t *testing.T) {
		svc, _, _ := setup(t)

		first, err := svc.Create(context.Background(), createReq(day(1), day(5)))
		require.NoError(t, err)

		_, err = svc.UpdateStatus(context.Background(), first.ID, StatusCancelled)
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), createReq(day(1), day(5)))
		assert.NoError(t, err)
	})

	t.Run("conflict rejects without persisting", func(t *testing.T) {
		svc, store, _ := setup(t)

		_, err := svc.Create(context.Background(), createReq(day(1), day(5)))
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), createReq(day(3), day(8)))
		require.Error(t, err)
		assert.Len(t, store.rows, 1)
	})
}

func TestUpdateRentalTransaction(t *testing.T) {
	t.Run("customer-only update skips the overlap check", func(t *testing.T) {
		svc, store, _ := setup(t)

		created, err := svc.Create(context.Background(), createReq(day(1), day(5)))
		require.NoError(t, err)

		calls := store.overlapCalls
		name := "Hanako"
		_, err = svc.Update(context.Background(), created.ID, UpdateRentalTransactionRequest{CustomerName: &name})
		require.NoError(t, err)
		assert.Equal(t, calls, store.overlapCalls)

		got, _ := store.GetByID(context.Background(), created.ID)
		assert.Equal(t, "Hanako", got.CustomerName)
	})

	t.Run("date change excludes the transaction itself", func(t *testing.T) {
		svc, _, _ := setup(t)

		created, err := svc.Create(context.Background(), createReq(day(1), day(5)))
		require.NoError(t, err)

		// 自分の既存範囲と重なっていても自分は衝突相手にならない
		start, end := day(2), day(6)
		_, err = svc.Update(context.Background(), created.ID, UpdateRentalTransactionRequest{
			StartDate: &start, EndDate: &end,
		})
		assert.NoError(t, err)
	})

	t.Run("date change onto another booking conflicts", func(t *testing.T) {
		svc, _, _ := setup(t)

		_, err := svc.Create(context.Background(), createReq(day(1), day(5)))
		require.NoError(t, err)
		second, err := svc.Create(context.Background(), createReq(day(10), day(15)))
		require.NoError(t, err)

		start := day(4)
		_, err = svc.Update(context.Background(), second.ID, UpdateRentalTransactionRequest{StartDate: &start})
		assertAppErr(t, err, apperr.CodeConflict, "Product is already rented for the requested period")
	})

	t.Run("date change with non-confirmed result skips the overlap check", func(t *testing.T) {
		svc, store, _ := setup(t)

		_, err := svc.Create(context.Background(), createReq(day(1), day(5)))
		require.NoError(t, err)
		second, err := svc.Create(context.Background(), createReq(day(10), day(15)))
		require.NoError(t, err)

		calls := store.overlapCalls
		start := day(4)
		st := StatusCancelled
		_, err = svc.Update(context.Background(), second.ID, UpdateRentalTransactionRequest{
			StartDate: &start, Status: &st,
		})
		require.NoError(t, err)
		assert.Equal(t, calls, store.overlapCalls)
	})

	t.Run("merged range is always validated", func(t *testing.T) {
		svc, _, _ := setup(t)

		created, err := svc.Create(context.Background(), createReq(day(1), day(5)))
		require.NoError(t, err)

		start := day(9)
		_, err = svc.Update(context.Background(), created.ID, UpdateRentalTransactionRequest{StartDate: &start})
		assertAppErr(t, err, apperr.CodeInvalidArgument, "End date must be after start date")
	})

	t.Run("unknown transaction", func(t *testing.T) {
		svc, _, _ := setup(t)

		name := "x"
		_, err := svc.Update(context.Background(), 42, UpdateRentalTransactionRequest{CustomerName: &name})
		assertAppErr(t, err, apperr.CodeNotFound, "Rental transaction not found")
	})
}

func TestUpdateStatus(t *testing.T) {
	svc, _, _ := setup(t)

	created, err := svc.Create(context.Background(), createReq(day(1), day(5)))
	require.NoError(t, err)

	// 遷移規則は無い。どの状態からどの状態へも移れる。
	for _, st := range []Status{StatusCompleted, StatusCancelled, StatusConfirmed, StatusCancelled} {
		res, err := svc.UpdateStatus(context.Background(), created.ID, st)
		require.NoError(t, err)
		assert.Equal(t, st, res.Status)
	}

	_, err = svc.UpdateStatus(context.Background(), created.ID, Status("returned"))
	assertAppErr(t, err, apperr.CodeInvalidArgument, "status must be one of confirmed, cancelled, completed")
}

func TestCheckAvailability(t *testing.T) {
	activePricing := PricingInfo{
		ID: 1, ProductID: 1, RegionID: 1, RentalPeriodID: 1,
		Price: decimal.NewFromInt(1000), IsActive: true,
	}

	t.Run("pricing not found", func(t *testing.T) {
		svc, _, _ := setup(t)

		res, err := svc.CheckAvailability(context.Background(), CheckRentalRequest{
			PricingID: 9, ProductID: 1, RegionID: 1, RentalPeriodID: 1,
		})
		require.NoError(t, err)
		assert.False(t, res.Available)
		require.NotNil(t, res.Reason)
		assert.Equal(t, "Pricing not found", *res.Reason)
	})

	t.Run("mismatched ids win over booking state", func(t *testing.T) {
		svc, _, catalog := setup(t)
		catalog.pricing[1] = activePricing

		// 予約が全く無くても region が違うだけで不可
		res, err := svc.CheckAvailability(context.Background(), CheckRentalRequest{
			PricingID: 1, ProductID: 1, RegionID: 2, RentalPeriodID: 1,
		})
		require.NoError(t, err)
		assert.False(t, res.Available)
		require.NotNil(t, res.Reason)
		assert.Equal(t, "Pricing does not match the specified product, region and rental period", *res.Reason)
	})

	t.Run("mismatch is reported before inactive pricing", func(t *testing.T) {
		svc, _, catalog := setup(t)
		inactive := activePricing
		inactive.IsActive = false
		catalog.pricing[1] = inactive

		res, err := svc.CheckAvailability(context.Background(), CheckRentalRequest{
			PricingID: 1, ProductID: 2, RegionID: 1, RentalPeriodID: 1,
		})
		require.NoError(t, err)
		require.NotNil(t, res.Reason)
		assert.Equal(t, "Pricing does not match the specified product, region and rental period", *res.Reason)
	})

	t.Run("inactive pricing", func(t *testing.T) {
		svc, _, catalog := setup(t)
		inactive := activePricing
		inactive.IsActive = false
		catalog.pricing[1] = inactive

		res, err := svc.CheckAvailability(context.Background(), CheckRentalRequest{
			PricingID: 1, ProductID: 1, RegionID: 1, RentalPeriodID: 1,
		})
		require.NoError(t, err)
		require.NotNil(t, res.Reason)
		assert.Equal(t, "Pricing is not active", *res.Reason)
	})

	t.Run("omitted end resolves to start plus period days", func(t *testing.T) {
		svc, store, catalog := setup(t)
		catalog.pricing[1] = activePricing

		start := day(1)
		res, err := svc.CheckAvailability(context.Background(), CheckRentalRequest{
			PricingID: 1, ProductID: 1, RegionID: 1, RentalPeriodID: 1,
			StartDate: &start,
		})
		require.NoError(t, err)
		assert.True(t, res.Available)
		require.NotNil(t, res.EndDate)
		assert.Equal(t, day(1).AddDate(0, 0, 7), *res.EndDate)

		// 補完した範囲がそのまま重複判定に使われている
		assert.Equal(t, day(8), store.lastOverlapEnd)
	})

	t.Run("omitted start defaults to now", func(t *testing.T) {
		svc, _, catalog := setup(t)
		catalog.pricing[1] = activePricing

		res, err := svc.CheckAvailability(context.Background(), CheckRentalRequest{
			PricingID: 1, ProductID: 1, RegionID: 1, RentalPeriodID: 1,
		})
		require.NoError(t, err)
		assert.True(t, res.Available)
		require.NotNil(t, res.StartDate)
		assert.Equal(t, testNow, *res.StartDate)
	})

	t.Run("period row missing on the end-default path", func(t *testing.T) {
		svc, _, catalog := setup(t)
		p := activePricing
		p.RentalPeriodID = 2
		catalog.pricing[1] = p

		res, err := svc.CheckAvailability(context.Background(), CheckRentalRequest{
			PricingID: 1, ProductID: 1, RegionID: 1, RentalPeriodID: 2,
		})
		require.NoError(t, err)
		require.NotNil(t, res.Reason)
		assert.Equal(t, "Rental period not found", *res.Reason)
	})

	t.Run("invalid resolved range", func(t *testing.T) {
		svc, _, catalog := setup(t)
		catalog.pricing[1] = activePricing

		start, end := day(5), day(5)
		res, err := svc.CheckAvailability(context.Background(), CheckRentalRequest{
			PricingID: 1, ProductID: 1, RegionID: 1, RentalPeriodID: 1,
			StartDate: &start, EndDate: &end,
		})
		require.NoError(t, err)
		require.NotNil(t, res.Reason)
		assert.Equal(t, "End date must be after start date", *res.Reason)
	})

	t.Run("overlap with a confirmed booking", func(t *testing.T) {
		svc, _, catalog := setup(t)
		catalog.pricing[1] = activePricing

		_, err := svc.Create(context.Background(), createReq(day(1), day(5)))
		require.NoError(t, err)

		start, end := day(3), day(8)
		res, err := svc.CheckAvailability(context.Background(), CheckRentalRequest{
			PricingID: 1, ProductID: 1, RegionID: 1, RentalPeriodID: 1,
			StartDate: &start, EndDate: &end,
		})
		require.NoError(t, err)
		assert.False(t, res.Available)
		require.NotNil(t, res.Reason)
		assert.Equal(t, "Product is already rented for the requested period", *res.Reason)
	})

	t.Run("available with resolved summaries", func(t *testing.T) {
		svc, _, catalog := setup(t)
		catalog.pricing[1] = activePricing

		start, end := day(1), day(5)
		res, err := svc.CheckAvailability(context.Background(), CheckRentalRequest{
			PricingID: 1, ProductID: 1, RegionID: 1, RentalPeriodID: 1,
			StartDate: &start, EndDate: &end,
		})
		require.NoError(t, err)
		assert.True(t, res.Available)
		assert.Nil(t, res.Reason)
		require.NotNil(t, res.Product)
		assert.Equal(t, "Camera", res.Product.Name)
		require.NotNil(t, res.RentalPeriod)
		assert.Equal(t, 7, res.RentalPeriod.Days)
		require.NotNil(t, res.Pricing)
		assert.True(t, res.Pricing.IsActive)
	})
}

func TestConfirmedBookingsNeverOverlap(t *testing.T) {
	svc, store, _ := setup(t)

	// ずらしながら大量に作り、成功した confirmed 同士が重ならないことを確かめる
	for i := 1; i <= 30; i += 2 {
		svc.Create(context.Background(), createReq(day(i), day(i+1)))
	}

	var confirmed []*RentalTransaction
	for _, m := range store.rows {
		if m.Status == StatusConfirmed {
			confirmed = append(confirmed, m)
		}
	}
	sort.Slice(confirmed, func(i, j int) bool { return confirmed[i].ID < confirmed[j].ID })
	for i := range confirmed {
		for j := i + 1; j < len(confirmed); j++ {
			a, b := confirmed[i], confirmed[j]
			assert.False(t, overlaps(a.StartDate, a.EndDate, b.StartDate, b.EndDate),
				"transactions %d and %d overlap", a.ID, b.ID)
		}
	}
}

func assertAppErr(t *testing.T, err error, code apperr.Code, msg string) {
	t.Helper()
	require.Error(t, err)
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae), "expected apperr.Error, got %v", err)
	assert.Equal(t, code, ae.Code)
	assert.Equal(t, msg, ae.Message)
}

// ===== fakes =====

type fixedClock struct{}

func (fixedClock) Now() time.Time { return testNow }

type seqIDGen struct{ n int }

func (g *seqIDGen) New() (string, error) {
	g.n++
	return fmt.Sprintf("01TESTULID%016d", g.n), nil
}

type fakeTxStore struct {
	seq            int64
	rows           map[int64]*RentalTransaction
	overlapCalls   int
	lastOverlapEnd time.Time
}

func (f *fakeTxStore) GetByID(_ context.Context, id int64) (*RentalTransaction, error) {
	if m, ok := f.rows[id]; ok {
		clone := *m
		return &clone, nil
	}
	return nil, apperr.NotFound("Rental transaction not found")
}

func (f *fakeTxStore) GetByULID(_ context.Context, u string) (*RentalTransaction, error) {
	for _, m := range f.rows {
		if m.RentalULID == u {
			clone := *m
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Rental transaction not found")
}

func (f *fakeTxStore) Insert(_ context.Context, m *RentalTransaction) error {
	f.seq++
	m.ID = f.seq
	clone := *m
	f.rows[m.ID] = &clone
	return nil
}

func (f *fakeTxStore) Update(_ context.Context, m *RentalTransaction) error {
	if _, ok := f.rows[m.ID]; !ok {
		return apperr.NotFound("Rental transaction not found")
	}
	clone := *m
	f.rows[m.ID] = &clone
	return nil
}

func (f *fakeTxStore) UpdateStatus(_ context.Context, id int64, st Status) error {
	m, ok := f.rows[id]
	if !ok {
		return apperr.NotFound("Rental transaction not found")
	}
	m.Status = st
	return nil
}

func (f *fakeTxStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return apperr.NotFound("Transaction not found")
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeTxStore) List(_ context.Context, _ Filter, _ Page) ([]RentalTransaction, int64, error) {
	out := make([]RentalTransaction, 0, len(f.rows))
	for _, m := range f.rows {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeTxStore) FindOverlapping(_ context.Context, productID int64, start, end time.Time, excludeID int64) ([]int64, error) {
	f.overlapCalls++
	f.lastOverlapEnd = end
	var ids []int64
	for _, m := range f.rows {
		if m.ProductID != productID || m.Status != StatusConfirmed || m.ID == excludeID {
			continue
		}
		if overlaps(m.StartDate, m.EndDate, start, end) {
			ids = append(ids, m.ID)
		}
	}
	return ids, nil
}

func (f *fakeTxStore) DetailRefs(_ context.Context, id int64) (ProductSummary, RegionSummary, RentalPeriodSummary, error) {
	if _, ok := f.rows[id]; !ok {
		return ProductSummary{}, RegionSummary{}, RentalPeriodSummary{}, apperr.NotFound("Rental transaction not found")
	}
	return ProductSummary{ID: 1}, RegionSummary{ID: 1}, RentalPeriodSummary{ID: 1}, nil
}

type fakeCatalog struct {
	products map[int64]ProductSummary
	regions  map[int64]RegionSummary
	periods  map[int64]RentalPeriodSummary
	pricing  map[int64]PricingInfo
}

func (f *fakeCatalog) ProductExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.products[id]
	return ok, nil
}

func (f *fakeCatalog) RegionExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.regions[id]
	return ok, nil
}

func (f *fakeCatalog) RentalPeriodExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.periods[id]
	return ok, nil
}

func (f *fakeCatalog) RentalPeriodDays(_ context.Context, id int64) (int, bool, error) {
	p, ok := f.periods[id]
	if !ok {
		return 0, false, nil
	}
	return p.Days, true, nil
}

func (f *fakeCatalog) Pricing(_ context.Context, id int64) (*PricingInfo, error) {
	if p, ok := f.pricing[id]; ok {
		clone := p
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeCatalog) GetProductSummary(_ context.Context, id int64) (*ProductSummary, error) {
	if s, ok := f.products[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (f *fakeCatalog) GetRegionSummary(_ context.Context, id int64) (*RegionSummary, error) {
	if s, ok := f.regions[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (f *fakeCatalog) GetRentalPeriodSummary(_ context.Context, id int64) (*RentalPeriodSummary, error) {
	if s, ok := f.periods[id]; ok {
		return &s, nil
	}
	return nil, nil
}
