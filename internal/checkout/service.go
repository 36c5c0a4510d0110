package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/bodegadosparcas/bodega-backend/internal/cart"
	"github.com/bodegadosparcas/bodega-backend/pkg/db/models"
	"github.com/bodegadosparcas/bodega-backend/pkg/enums"
	pkgerrors "github.com/bodegadosparcas/bodega-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type cartLoader interface {
	Load(ctx context.Context, userID uuid.UUID) (*cart.Cart, error)
}

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// OrderDTO is the composed order handed back to the client. The client opens
// the WhatsApp URL; the backend never sends the message itself.
type OrderDTO struct {
	Message       string          `json:"message"`
	WhatsAppURL   string          `json:"whatsapp_url"`
	ItemCount     int             `json:"item_count"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	DeliveryFee   decimal.Decimal `json:"delivery_fee"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
}

// Service composes the WhatsApp order receipt from the customer's cart and
// saved delivery address.
type Service interface {
	Compose(ctx context.Context, userID uuid.UUID, payment enums.PaymentMethod) (*OrderDTO, error)
}

type service struct {
	carts          cartLoader
	users          userLoader
	deliveryFee    decimal.Decimal
	whatsAppNumber string
}

// NewService constructs the order composer.
func NewService(carts cartLoader, users userLoader, deliveryFee decimal.Decimal, whatsAppNumber string) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart loader required")
	}
	if users == nil {
		return nil, fmt.Errorf("user loader required")
	}
	if whatsAppNumber == "" {
		return nil, fmt.Errorf("whatsapp number required")
	}
	if deliveryFee.IsNegative() {
		return nil, fmt.Errorf("delivery fee must be non-negative")
	}
	return &service{
		carts:          carts,
		users:          users,
		deliveryFee:    deliveryFee,
		whatsAppNumber: whatsAppNumber,
	}, nil
}

// Compose builds the order receipt and deep link. The cart is left untouched;
// it only clears after the customer confirms on the client side.
func (s *service) Compose(ctx context.Context, userID uuid.UUID, payment enums.PaymentMethod) (*OrderDTO, error) {
	if !payment.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "forma de pagamento inválida")
	}

	c, err := s.carts.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seu carrinho está vazio")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "usuário não encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if user.Address == nil || !user.Address.Complete() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cadastre um endereço de entrega antes de finalizar o pedido")
	}

	message := buildMessage(c, *user.Address, payment, s.deliveryFee)

	return &OrderDTO{
		Message:       message,
		WhatsAppURL:   whatsAppURL(s.whatsAppNumber, message),
		ItemCount:     c.ItemCount(),
		Subtotal:      c.Subtotal(),
		Discount:      c.Discount(),
		DeliveryFee:   s.deliveryFee,
		Total:         c.Total(s.deliveryFee),
		PaymentMethod: string(payment),
	}, nil
}
