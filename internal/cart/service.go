package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bodegadosparcas/bodega-backend/internal/coupons"
	"github.com/bodegadosparcas/bodega-backend/pkg/db/models"
	pkgerrors "github.com/bodegadosparcas/bodega-backend/pkg/errors"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Carts are long-lived but not immortal; abandoned ones age out.
const cartTTL = 30 * 24 * time.Hour

type cartStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(userID string) string
}

type productLoader interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type couponRedeemer interface {
	Redeem(ctx context.Context, code string) (*coupons.CouponDTO, error)
}

// Service owns the per-customer cart document stored in redis. Every
// mutation loads the document, applies the aggregate operation, recomputes
// totals, and persists the document wholesale.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartDTO, error)
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*CartDTO, error)
	RemoveCoupon(ctx context.Context, userID uuid.UUID) (*CartDTO, error)

	// Load exposes the raw aggregate for the order composer.
	Load(ctx context.Context, userID uuid.UUID) (*Cart, error)
}

// LineDTO is a cart line with its derived total.
type LineDTO struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	ImageURL  *string         `json:"image_url,omitempty"`
}

// CartDTO carries the cart with all totals computed server-side.
type CartDTO struct {
	Lines       []LineDTO       `json:"lines"`
	Coupon      *CouponSnapshot `json:"coupon,omitempty"`
	ItemCount   int             `json:"item_count"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

type service struct {
	store       cartStore
	products    productLoader
	coupons     couponRedeemer
	deliveryFee decimal.Decimal
}

// NewService constructs a cart service instance.
func NewService(store cartStore, products productLoader, redeemer couponRedeemer, deliveryFee decimal.Decimal) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if redeemer == nil {
		return nil, fmt.Errorf("coupon redeemer required")
	}
	if deliveryFee.IsNegative() {
		return nil, fmt.Errorf("delivery fee must be non-negative")
	}
	return &service{
		store:       store,
		products:    products,
		coupons:     redeemer,
		deliveryFee: deliveryFee,
	}, nil
}

// Get returns the cart with computed totals.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	cart, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toDTO(cart), nil
}

// Load reads the cart document, returning an empty cart when none exists.
func (s *service) Load(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	raw, err := s.store.Get(ctx, s.store.CartKey(userID.String()))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return &Cart{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: load cart")
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart document")
	}
	return &cart, nil
}

// AddItem validates the product and stock, then merges the line.
func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartDTO, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantidade deve ser positiva")
	}

	cart, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.loadSellableProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if cart.Quantity(productID)+quantity > product.Stock {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "estoque insuficiente")
	}

	cart.AddLine(Line{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.EffectivePrice(),
		Quantity:  quantity,
		ImageURL:  product.ImageURL,
	})

	if err := s.persist(ctx, userID, cart); err != nil {
		return nil, err
	}
	return s.toDTO(cart), nil
}

// UpdateQuantity replaces the line quantity. Zero or less removes the line.
func (s *service) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartDTO, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	cart, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.Quantity(productID) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item não está no carrinho")
	}

	product, err := s.loadSellableProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Stock {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "estoque insuficiente")
	}

	cart.SetQuantity(productID, quantity)

	if err := s.persist(ctx, userID, cart); err != nil {
		return nil, err
	}
	return s.toDTO(cart), nil
}

// RemoveItem drops the line. Removing an absent line is a no-op.
func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error) {
	cart, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveLine(productID)

	if err := s.persist(ctx, userID, cart); err != nil {
		return nil, err
	}
	return s.toDTO(cart), nil
}

// Clear deletes the whole document, coupon included.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.Del(ctx, s.store.CartKey(userID.String())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: clear cart")
	}
	return nil
}

// ApplyCoupon resolves the code and snapshots it into the cart. Re-applying
// the currently applied code is idempotent and succeeds without a lookup.
func (s *service) ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*CartDTO, error) {
	cart, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	normalized := coupons.NormalizeCode(code)
	if cart.Coupon != nil && cart.Coupon.Code == normalized {
		return s.toDTO(cart), nil
	}

	coupon, err := s.coupons.Redeem(ctx, normalized)
	if err != nil {
		return nil, err
	}

	cart.ApplyCoupon(CouponSnapshot{Code: coupon.Code, Percentage: coupon.Percentage})

	if err := s.persist(ctx, userID, cart); err != nil {
		return nil, err
	}
	return s.toDTO(cart), nil
}

// RemoveCoupon drops the applied coupon, if any.
func (s *service) RemoveCoupon(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	cart, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveCoupon()

	if err := s.persist(ctx, userID, cart); err != nil {
		return nil, err
	}
	return s.toDTO(cart), nil
}

func (s *service) loadSellableProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "produto não encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "produto indisponível")
	}
	return product, nil
}

func (s *service) persist(ctx context.Context, userID uuid.UUID, cart *Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart document")
	}
	if err := s.store.Set(ctx, s.store.CartKey(userID.String()), string(payload), cartTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: persist cart")
	}
	return nil
}

func (s *service) toDTO(cart *Cart) *CartDTO {
	lines := make([]LineDTO, len(cart.Lines))
	for i, l := range cart.Lines {
		lines[i] = LineDTO{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			LineTotal: l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))),
			ImageURL:  l.ImageURL,
		}
	}
	return &CartDTO{
		Lines:       lines,
		Coupon:      cart.Coupon,
		ItemCount:   cart.ItemCount(),
		Subtotal:    cart.Subtotal(),
		Discount:    cart.Discount(),
		DeliveryFee: s.deliveryFee,
		Total:       cart.Total(s.deliveryFee),
	}
}
