package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is a snapshot of a sellable product inside the cart. UnitPrice is the
// effective price at the time the line was added (promo when present).
type Line struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageURL  *string         `json:"image_url,omitempty"`
}

// CouponSnapshot is the applied coupon frozen into the cart document. The
// discount is never frozen: it is recomputed from the live subtotal.
type CouponSnapshot struct {
	Code       string          `json:"code"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Cart is the pure pricing aggregate. It performs no I/O; the service layer
// loads and persists it as a redis document.
type Cart struct {
	Lines  []Line          `json:"lines"`
	Coupon *CouponSnapshot `json:"coupon,omitempty"`
}

// AddLine merges the quantity into an existing line for the same product or
// appends a new line at the end.
func (c *Cart) AddLine(line Line) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// RemoveLine drops the line for the product. Unknown products are a no-op.
func (c *Cart) RemoveLine(productID uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the quantity for the product. Zero or negative
// removes the line, same as RemoveLine.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) {
	if quantity <= 0 {
		c.RemoveLine(productID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart, coupon included.
func (c *Cart) Clear() {
	c.Lines = nil
	c.Coupon = nil
}

// Quantity returns the current quantity for the product, zero when absent.
func (c *Cart) Quantity(productID uuid.UUID) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return c.Lines[i].Quantity
		}
	}
	return 0
}

// ItemCount is the sum of quantities across lines.
func (c *Cart) ItemCount() int {
	total := 0
	for i := range c.Lines {
		total += c.Lines[i].Quantity
	}
	return total
}

// Subtotal sums unit price times quantity across lines.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for i := range c.Lines {
		lineTotal := c.Lines[i].UnitPrice.Mul(decimal.NewFromInt(int64(c.Lines[i].Quantity)))
		subtotal = subtotal.Add(lineTotal)
	}
	return subtotal
}

// ApplyCoupon stores the coupon snapshot. Re-applying the same code is
// idempotent.
func (c *Cart) ApplyCoupon(coupon CouponSnapshot) {
	c.Coupon = &coupon
}

// RemoveCoupon drops any applied coupon.
func (c *Cart) RemoveCoupon() {
	c.Coupon = nil
}

// Discount is the coupon percentage applied to the current subtotal. It is
// always derived, so removing lines after applying a coupon shrinks it.
func (c *Cart) Discount() decimal.Decimal {
	if c.Coupon == nil {
		return decimal.Zero
	}
	return c.Subtotal().Mul(c.Coupon.Percentage).Div(decimal.NewFromInt(100))
}

// Total charges subtotal plus delivery fee minus discount, floored at the
// delivery fee so a generous coupon never discounts the delivery itself.
func (c *Cart) Total(deliveryFee decimal.Decimal) decimal.Decimal {
	total := c.Subtotal().Add(deliveryFee).Sub(c.Discount())
	if total.LessThan(deliveryFee) {
		return deliveryFee
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
