package checkout

import (
	"context"
	"strings"
	"testing"

	"github.com/bodegadosparcas/bodega-backend/internal/cart"
	"github.com/bodegadosparcas/bodega-backend/pkg/db/models"
	"github.com/bodegadosparcas/bodega-backend/pkg/enums"
	pkgerrors "github.com/bodegadosparcas/bodega-backend/pkg/errors"
	"github.com/bodegadosparcas/bodega-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCarts struct {
	byUser map[uuid.UUID]*cart.Cart
}

func (s *stubCarts) Load(_ context.Context, userID uuid.UUID) (*cart.Cart, error) {
	if c, ok := s.byUser[userID]; ok {
		return c, nil
	}
	return &cart.Cart{}, nil
}

type stubUsers struct {
	byID map[uuid.UUID]*models.User
}

func (s *stubUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func testAddress() *types.Address {
	comp := "Apto 302"
	return &types.Address{
		CEP:          "50000-000",
		Street:       "Rua das Flores",
		Number:       "123",
		Complement:   &comp,
		Neighborhood: "Boa Viagem",
	}
}

func newComposer(t *testing.T, carts *stubCarts, users *stubUsers) Service {
	t.Helper()
	svc, err := NewService(carts, users, decimal.RequireFromString("5.00"), "5581995016183")
	require.NoError(t, err)
	return svc
}

func TestFormatBRL(t *testing.T) {
	cases := map[string]string{
		"3.50":    "R$ 3,50",
		"0":       "R$ 0,00",
		"1234.5":  "R$ 1.234,50",
		"1000000": "R$ 1.000.000,00",
		"-7.9":    "R$ -7,90",
	}
	for in, want := range cases {
		require.Equal(t, want, FormatBRL(decimal.RequireFromString(in)), "input %s", in)
	}
}

func TestComposeMessageContent(t *testing.T) {
	userID := uuid.New()
	carts := &stubCarts{byUser: map[uuid.UUID]*cart.Cart{
		userID: {Lines: []cart.Line{
			{ProductID: uuid.New(), Name: "Skol Lata 350ml", UnitPrice: decimal.RequireFromString("3.50"), Quantity: 12},
			{ProductID: uuid.New(), Name: "Cachaça 51", UnitPrice: decimal.RequireFromString("15.00"), Quantity: 1},
		}},
	}}
	users := &stubUsers{byID: map[uuid.UUID]*models.User{
		userID: {ID: userID, Name: "João", Address: testAddress()},
	}}
	svc := newComposer(t, carts, users)

	order, err := svc.Compose(context.Background(), userID, enums.PaymentMethodPix)
	require.NoError(t, err)

	require.Equal(t, "57", order.Subtotal.String())
	require.Equal(t, "62", order.Total.String())
	require.Equal(t, 13, order.ItemCount)

	msg := order.Message
	require.True(t, strings.HasPrefix(msg, "🧾 *=== COMPROVANTE DE PEDIDO ===* 🧾"))
	require.Contains(t, msg, "Olá, *Bodega dos Parças*!")
	require.Contains(t, msg, "Rua das Flores, Nº 123")
	require.Contains(t, msg, "Boa Viagem - CEP: 50000-000")
	require.Contains(t, msg, "Comp: Apto 302")
	require.NotContains(t, msg, "Ref:")
	require.Contains(t, msg, "*12x* Skol Lata 350ml ........ R$ 42,00")
	require.Contains(t, msg, "*1x* Cachaça 51 ........ R$ 15,00")
	require.Contains(t, msg, "Subtotal: R$ 57,00")
	require.Contains(t, msg, "Taxa de Entrega: R$ 5,00")
	require.NotContains(t, msg, "Desconto")
	require.Contains(t, msg, "*TOTAL:* *R$ 62,00*")
	require.Contains(t, msg, "✨ PIX")
	require.True(t, strings.HasSuffix(msg, "Agradeço e aguardo a confirmação! 😊"))
}

func TestComposeIncludesDiscountLine(t *testing.T) {
	userID := uuid.New()
	carts := &stubCarts{byUser: map[uuid.UUID]*cart.Cart{
		userID: {
			Lines: []cart.Line{
				{ProductID: uuid.New(), Name: "Vinho Tinto", UnitPrice: decimal.RequireFromString("10.00"), Quantity: 2},
			},
			Coupon: &cart.CouponSnapshot{Code: "PARCA10", Percentage: decimal.NewFromInt(10)},
		},
	}}
	users := &stubUsers{byID: map[uuid.UUID]*models.User{
		userID: {ID: userID, Address: testAddress()},
	}}
	svc := newComposer(t, carts, users)

	order, err := svc.Compose(context.Background(), userID, enums.PaymentMethodCard)
	require.NoError(t, err)
	require.Equal(t, "2", order.Discount.String())
	require.Equal(t, "23", order.Total.String())
	require.Contains(t, order.Message, "Desconto (PARCA10): -R$ 2,00")
	require.Contains(t, order.Message, "*TOTAL:* *R$ 23,00*")
	require.Contains(t, order.Message, "💳 Cartão de Crédito/Débito")
}

func TestComposeIsDeterministic(t *testing.T) {
	userID := uuid.New()
	carts := &stubCarts{byUser: map[uuid.UUID]*cart.Cart{
		userID: {Lines: []cart.Line{
			{ProductID: uuid.New(), Name: "Gin", UnitPrice: decimal.RequireFromString("89.90"), Quantity: 1},
		}},
	}}
	users := &stubUsers{byID: map[uuid.UUID]*models.User{
		userID: {ID: userID, Address: testAddress()},
	}}
	svc := newComposer(t, carts, users)

	first, err := svc.Compose(context.Background(), userID, enums.PaymentMethodCash)
	require.NoError(t, err)
	second, err := svc.Compose(context.Background(), userID, enums.PaymentMethodCash)
	require.NoError(t, err)
	require.Equal(t, first.Message, second.Message)
	require.Equal(t, first.WhatsAppURL, second.WhatsAppURL)
}

func TestComposeWhatsAppURL(t *testing.T) {
	userID := uuid.New()
	carts := &stubCarts{byUser: map[uuid.UUID]*cart.Cart{
		userID: {Lines: []cart.Line{
			{ProductID: uuid.New(), Name: "Cerveja", UnitPrice: decimal.RequireFromString("4.00"), Quantity: 1},
		}},
	}}
	users := &stubUsers{byID: map[uuid.UUID]*models.User{
		userID: {ID: userID, Address: testAddress()},
	}}
	svc := newComposer(t, carts, users)

	order, err := svc.Compose(context.Background(), userID, enums.PaymentMethodPix)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(order.WhatsAppURL, "https://wa.me/5581995016183?text="))
	// Spaces become %20, never '+', and raw newlines never leak through.
	require.NotContains(t, order.WhatsAppURL, "+")
	require.NotContains(t, order.WhatsAppURL, " ")
	require.NotContains(t, order.WhatsAppURL, "\n")
	require.Contains(t, order.WhatsAppURL, "%0A")
}

func TestComposeEmptyCart(t *testing.T) {
	userID := uuid.New()
	carts := &stubCarts{byUser: map[uuid.UUID]*cart.Cart{}}
	users := &stubUsers{byID: map[uuid.UUID]*models.User{
		userID: {ID: userID, Address: testAddress()},
	}}
	svc := newComposer(t, carts, users)

	_, err := svc.Compose(context.Background(), userID, enums.PaymentMethodPix)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeValidation, coded.Code())
	require.Equal(t, "seu carrinho está vazio", coded.Message())
}

func TestComposeMissingAddress(t *testing.T) {
	userID := uuid.New()
	carts := &stubCarts{byUser: map[uuid.UUID]*cart.Cart{
		userID: {Lines: []cart.Line{
			{ProductID: uuid.New(), Name: "Cerveja", UnitPrice: decimal.RequireFromString("4.00"), Quantity: 1},
		}},
	}}
	svc := newComposer(t, carts, &stubUsers{byID: map[uuid.UUID]*models.User{
		userID: {ID: userID},
	}})

	_, err := svc.Compose(context.Background(), userID, enums.PaymentMethodCash)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeValidation, coded.Code())

	// Partially filled addresses fail the same way.
	incomplete := &types.Address{Street: "Rua X"}
	svc = newComposer(t, carts, &stubUsers{byID: map[uuid.UUID]*models.User{
		userID: {ID: userID, Address: incomplete},
	}})
	_, err = svc.Compose(context.Background(), userID, enums.PaymentMethodCash)
	require.NotNil(t, pkgerrors.As(err))
}

func TestComposeInvalidPaymentMethod(t *testing.T) {
	svc := newComposer(t, &stubCarts{byUser: map[uuid.UUID]*cart.Cart{}}, &stubUsers{byID: map[uuid.UUID]*models.User{}})

	_, err := svc.Compose(context.Background(), uuid.New(), enums.PaymentMethod("boleto"))
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeValidation, coded.Code())
}
