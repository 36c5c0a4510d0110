package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bodegadosparcas/bodega-backend/internal/cart"
	"github.com/bodegadosparcas/bodega-backend/pkg/enums"
	"github.com/bodegadosparcas/bodega-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// FormatBRL renders a decimal as Brazilian currency: comma decimals, dot
// thousand separators, always two decimal places.
func FormatBRL(value decimal.Decimal) string {
	fixed := value.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("R$ %s%s,%s", sign, grouped.String(), decPart)
}

// buildMessage renders the deterministic Portuguese order receipt. The same
// cart, address, and payment method always produce the same bytes.
func buildMessage(c *cart.Cart, address types.Address, payment enums.PaymentMethod, deliveryFee decimal.Decimal) string {
	var items strings.Builder
	for i, line := range c.Lines {
		if i > 0 {
			items.WriteByte('\n')
		}
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		fmt.Fprintf(&items, "*%dx* %s ........ %s", line.Quantity, line.Name, FormatBRL(lineTotal))
	}

	var addr strings.Builder
	fmt.Fprintf(&addr, "%s, Nº %s\n", address.Street, address.Number)
	fmt.Fprintf(&addr, "%s - CEP: %s", address.Neighborhood, address.CEP)
	if address.Complement != nil && *address.Complement != "" {
		fmt.Fprintf(&addr, "\nComp: %s", *address.Complement)
	}
	if address.Reference != nil && *address.Reference != "" {
		fmt.Fprintf(&addr, "\nRef: %s", *address.Reference)
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "Subtotal: %s\n", FormatBRL(c.Subtotal()))
	fmt.Fprintf(&summary, "Taxa de Entrega: %s\n", FormatBRL(deliveryFee))
	if c.Coupon != nil {
		fmt.Fprintf(&summary, "Desconto (%s): -%s\n", c.Coupon.Code, FormatBRL(c.Discount()))
	}
	summary.WriteString("-----------------------------------\n")
	fmt.Fprintf(&summary, "*TOTAL:* *%s*", FormatBRL(c.Total(deliveryFee)))

	return strings.Join([]string{
		"🧾 *=== COMPROVANTE DE PEDIDO ===* 🧾",
		"",
		"Olá, *Bodega dos Parças*!",
		"Gostaria de fazer um novo pedido.",
		"",
		"🛵 *DETALHES DA ENTREGA*",
		"-----------------------------------",
		"*Endereço:*",
		addr.String(),
		"",
		"📦 *ITENS DO PEDIDO*",
		"-----------------------------------",
		items.String(),
		"",
		"💰 *RESUMO FINANCEIRO*",
		"-----------------------------------",
		summary.String(),
		"",
		"💳 *FORMA DE PAGAMENTO*",
		"-----------------------------------",
		payment.Label(),
		"",
		"Agradeço e aguardo a confirmação! 😊",
	}, "\n")
}

// whatsAppURL builds the wa.me deep link. Spaces are encoded as %20, the
// way browsers encode the text parameter.
func whatsAppURL(number, message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, encoded)
}
