package enums

import "fmt"

// PaymentMethod is the label attached to a composed order; payment itself
// always happens outside the platform, on delivery.
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodPix  PaymentMethod = "pix"
	PaymentMethodCash PaymentMethod = "cash"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCard,
	PaymentMethodPix,
	PaymentMethodCash,
}

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentMethodCard: "💳 Cartão de Crédito/Débito",
	PaymentMethodPix:  "✨ PIX",
	PaymentMethodCash: "💵 Dinheiro",
}

func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// Label returns the human-readable receipt label for the method.
func (p PaymentMethod) Label() string {
	if label, ok := paymentMethodLabels[p]; ok {
		return label
	}
	return "Não especificado"
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
