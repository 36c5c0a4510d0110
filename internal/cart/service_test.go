package cart

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bodegadosparcas/bodega-backend/internal/coupons"
	"github.com/bodegadosparcas/bodega-backend/pkg/db/models"
	pkgerrors "github.com/bodegadosparcas/bodega-backend/pkg/errors"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubStore struct {
	data map[string]string
}

func newStubStore() *stubStore {
	return &stubStore{data: make(map[string]string)}
}

func (s *stubStore) Get(_ context.Context, key string) (string, error) {
	v, ok := s.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (s *stubStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.data[key] = fmt.Sprint(value)
	return nil
}

func (s *stubStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func (s *stubStore) CartKey(userID string) string {
	return "cart:" + userID
}

type stubProducts struct {
	byID map[uuid.UUID]*models.Product
}

func (s *stubProducts) FindProductByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

type stubCoupons struct {
	byCode map[string]*coupons.CouponDTO
	calls  int
}

func (s *stubCoupons) Redeem(_ context.Context, code string) (*coupons.CouponDTO, error) {
	s.calls++
	coupon, ok := s.byCode[code]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cupom não encontrado")
	}
	return coupon, nil
}

func stubProduct(name, price string, stock int) *models.Product {
	return &models.Product{
		ID:       uuid.New(),
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		IsActive: true,
	}
}

func newCartService(t *testing.T, products ...*models.Product) (Service, *stubStore, *stubProducts, *stubCoupons) {
	t.Helper()
	store := newStubStore()
	loader := &stubProducts{byID: make(map[uuid.UUID]*models.Product)}
	for _, p := range products {
		loader.byID[p.ID] = p
	}
	redeemer := &stubCoupons{byCode: map[string]*coupons.CouponDTO{
		"PARCA10": {ID: uuid.New(), Code: "PARCA10", Percentage: decimal.NewFromInt(10), IsActive: true},
	}}
	svc, err := NewService(store, loader, redeemer, decimal.RequireFromString("5.00"))
	require.NoError(t, err)
	return svc, store, loader, redeemer
}

func TestAddItemComputesTotals(t *testing.T) {
	beer := stubProduct("Skol Lata", "3.50", 12)
	svc, _, _, _ := newCartService(t, beer)
	ctx := context.Background()
	userID := uuid.New()

	dto, err := svc.AddItem(ctx, userID, beer.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, dto.ItemCount)
	require.Equal(t, "7", dto.Subtotal.String())
	require.Equal(t, "12", dto.Total.String())

	// Same product merges, not duplicates.
	dto, err = svc.AddItem(ctx, userID, beer.ID, 1)
	require.NoError(t, err)
	require.Len(t, dto.Lines, 1)
	require.Equal(t, 3, dto.ItemCount)
}

func TestAddItemSnapshotsPromoPrice(t *testing.T) {
	promo := decimal.RequireFromString("7.90")
	whisky := stubProduct("Whisky", "10.00", 5)
	whisky.PromoPrice = &promo
	svc, _, _, _ := newCartService(t, whisky)

	dto, err := svc.AddItem(context.Background(), uuid.New(), whisky.ID, 1)
	require.NoError(t, err)
	require.Equal(t, "7.9", dto.Lines[0].UnitPrice.String())
}

func TestAddItemStockChecks(t *testing.T) {
	beer := stubProduct("Skol", "3.50", 3)
	svc, _, _, _ := newCartService(t, beer)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddItem(ctx, userID, beer.ID, 4)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, "estoque insuficiente", coded.Message())

	// Cumulative quantity across calls is what counts.
	_, err = svc.AddItem(ctx, userID, beer.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, beer.ID, 2)
	coded = pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestAddItemUnknownOrInactiveProduct(t *testing.T) {
	inactive := stubProduct("Fora de linha", "2.00", 10)
	inactive.IsActive = false
	svc, _, _, _ := newCartService(t, inactive)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddItem(ctx, userID, uuid.New(), 1)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeNotFound, coded.Code())

	_, err = svc.AddItem(ctx, userID, inactive.ID, 1)
	coded = pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	beer := stubProduct("Skol", "3.50", 10)
	svc, _, _, _ := newCartService(t, beer)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddItem(ctx, userID, beer.ID, 2)
	require.NoError(t, err)

	dto, err := svc.UpdateQuantity(ctx, userID, beer.ID, 0)
	require.NoError(t, err)
	require.Empty(t, dto.Lines)
	require.True(t, dto.Total.Equal(decimal.RequireFromString("5.00")))
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	beer := stubProduct("Skol", "3.50", 10)
	svc, _, _, _ := newCartService(t, beer)

	_, err := svc.UpdateQuantity(context.Background(), uuid.New(), beer.ID, 2)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestApplyCouponAndScenario(t *testing.T) {
	// The canonical pricing walk: two 10.00 items, 10% coupon, remove one.
	item := stubProduct("Cachaça", "10.00", 10)
	svc, _, _, redeemer := newCartService(t, item)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddItem(ctx, userID, item.ID, 2)
	require.NoError(t, err)

	dto, err := svc.ApplyCoupon(ctx, userID, "parca10")
	require.NoError(t, err)
	require.Equal(t, "20", dto.Subtotal.String())
	require.Equal(t, "2", dto.Discount.String())
	require.Equal(t, "23", dto.Total.String())

	// Re-applying the same code is idempotent and skips the lookup.
	lookups := redeemer.calls
	dto, err = svc.ApplyCoupon(ctx, userID, "PARCA10")
	require.NoError(t, err)
	require.Equal(t, lookups, redeemer.calls)
	require.Equal(t, "2", dto.Discount.String())

	// Dropping quantity re-derives the discount from the new subtotal.
	dto, err = svc.UpdateQuantity(ctx, userID, item.ID, 1)
	require.NoError(t, err)
	require.Equal(t, "10", dto.Subtotal.String())
	require.Equal(t, "1", dto.Discount.String())
	require.Equal(t, "14", dto.Total.String())
}

func TestApplyCouponUnknownCode(t *testing.T) {
	svc, _, _, _ := newCartService(t)

	_, err := svc.ApplyCoupon(context.Background(), uuid.New(), "NADA")
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, "cupom não encontrado", coded.Message())
}

func TestRemoveCouponAndClear(t *testing.T) {
	item := stubProduct("Vinho", "30.00", 4)
	svc, store, _, _ := newCartService(t, item)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddItem(ctx, userID, item.ID, 1)
	require.NoError(t, err)
	_, err = svc.ApplyCoupon(ctx, userID, "PARCA10")
	require.NoError(t, err)

	dto, err := svc.RemoveCoupon(ctx, userID)
	require.NoError(t, err)
	require.Nil(t, dto.Coupon)
	require.True(t, dto.Discount.IsZero())

	require.NoError(t, svc.Clear(ctx, userID))
	require.Empty(t, store.data)

	dto, err = svc.Get(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, dto.Lines)
}

func TestCartPersistsAcrossLoads(t *testing.T) {
	item := stubProduct("Gin", "89.90", 2)
	svc, store, loader, _ := newCartService(t, item)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddItem(ctx, userID, item.ID, 1)
	require.NoError(t, err)

	// A second service instance over the same store sees the document.
	redeemer := &stubCoupons{byCode: map[string]*coupons.CouponDTO{}}
	again, err := NewService(store, loader, redeemer, decimal.RequireFromString("5.00"))
	require.NoError(t, err)

	dto, err := again.Get(ctx, userID)
	require.NoError(t, err)
	require.Len(t, dto.Lines, 1)
	require.Equal(t, "89.9", dto.Subtotal.String())
}
