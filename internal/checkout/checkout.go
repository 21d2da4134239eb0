// Package checkout implements cart pricing and coupon validation.
package checkout

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/maktabat-alamal/storefront/internal/models"
)

// Flat delivery fee charged on any non-empty cart.
const ShippingFlat = 15

var (
	ErrUnknownCoupon   = errors.New("coupon code not found")
	ErrCouponInactive  = errors.New("coupon is not active")
	ErrCouponExpired   = errors.New("coupon has expired")
	ErrBelowMinimum    = errors.New("subtotal below coupon minimum")
	ErrCouponExhausted = errors.New("coupon usage limit reached")
)

// Summary is the priced cart shown at checkout and stored on the order.
type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Subtotal sums price × quantity over the cart.
func Subtotal(cart []models.CartItem) float64 {
	var sum float64
	for _, it := range cart {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// ApplyCoupon resolves code against the coupon collection and validates it
// for the given subtotal. Codes are matched upper-cased.
func ApplyCoupon(coupons []models.Coupon, code string, subtotal float64, now time.Time) (*models.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for i := range coupons {
		c := coupons[i]
		if c.Code != code {
			continue
		}
		if !c.IsActive {
			return nil, ErrCouponInactive
		}
		if expired(c.ExpiryDate, now) {
			return nil, ErrCouponExpired
		}
		if c.MinAmount > 0 && subtotal < c.MinAmount {
			return nil, fmt.Errorf("%w: need %.0f", ErrBelowMinimum, c.MinAmount)
		}
		if c.MaxUses > 0 && c.UsedCount >= c.MaxUses {
			return nil, ErrCouponExhausted
		}
		return &c, nil
	}
	return nil, ErrUnknownCoupon
}

// Discount returns the amount a coupon takes off the subtotal.
func Discount(c *models.Coupon, subtotal float64) float64 {
	if c == nil {
		return 0
	}
	if c.Type == models.CouponPercentage {
		return subtotal * c.Discount / 100
	}
	return c.Discount
}

// Totals prices the cart: shipping is a flat fee on non-empty carts and the
// grand total is rounded to the nearest pound.
func Totals(cart []models.CartItem, coupon *models.Coupon) Summary {
	sub := Subtotal(cart)
	var shipping float64
	if len(cart) > 0 {
		shipping = ShippingFlat
	}
	disc := Discount(coupon, sub)
	return Summary{
		Subtotal: sub,
		Shipping: shipping,
		Discount: disc,
		Total:    math.Round(sub + shipping - disc),
	}
}

// CustomerInfo is what the checkout form collects.
type CustomerInfo struct {
	Name          string
	Phone         string
	Address       string
	PaymentMethod string
	Notes         string
}

// NewOrder builds the order record for a priced cart. Order ids keep the
// storefront's historic "#<millis>" shape.
func NewOrder(cart []models.CartItem, sum Summary, info CustomerInfo, coupon *models.Coupon, now time.Time) models.Order {
	o := models.Order{
		ID:            fmt.Sprintf("#%d", now.UnixMilli()),
		Customer:      info.Name,
		Phone:         info.Phone,
		Address:       info.Address,
		Items:         append([]models.CartItem(nil), cart...),
		Subtotal:      sum.Subtotal,
		Shipping:      sum.Shipping,
		Discount:      sum.Discount,
		Total:         sum.Total,
		PaymentMethod: info.PaymentMethod,
		Status:        models.OrderStatusNew,
		Date:          now.Format("2006-01-02"),
		Notes:         info.Notes,
	}
	if coupon != nil {
		o.Coupon = coupon.Code
	}
	return o
}

// expired reports whether the date-only expiry string is in the past. An
// unparseable expiry counts as expired rather than valid forever.
func expired(expiry string, now time.Time) bool {
	t, err := time.Parse("2006-01-02", expiry)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, expiry); err != nil {
			return true
		}
	}
	// expiry day itself still honors the coupon
	return now.After(t.Add(24 * time.Hour))
}
