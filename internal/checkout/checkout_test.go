package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maktabat-alamal/storefront/internal/models"
)

func testCoupons() []models.Coupon {
	return []models.Coupon{
		{ID: 1, Code: "WELCOME10", Discount: 10, Type: models.CouponPercentage, MinAmount: 100, ExpiryDate: "2026-12-31", IsActive: true},
		{ID: 2, Code: "FLAT25", Discount: 25, Type: models.CouponFixed, ExpiryDate: "2026-12-31", IsActive: true},
		{ID: 3, Code: "OLD", Discount: 50, Type: models.CouponPercentage, ExpiryDate: "2020-01-01", IsActive: true},
		{ID: 4, Code: "PAUSED", Discount: 5, Type: models.CouponFixed, ExpiryDate: "2026-12-31", IsActive: false},
		{ID: 5, Code: "LIMITED", Discount: 5, Type: models.CouponFixed, ExpiryDate: "2026-12-31", IsActive: true, MaxUses: 2, UsedCount: 2},
	}
}

func cartWorth(price float64, qty int) []models.CartItem {
	return []models.CartItem{{ID: 1, Name: "قلم", Price: price, Quantity: qty}}
}

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func TestPercentageCouponPricing(t *testing.T) {
	coupon, err := ApplyCoupon(testCoupons(), "WELCOME10", 150, now)
	require.NoError(t, err)

	sum := Totals(cartWorth(75, 2), coupon)
	assert.Equal(t, 150.0, sum.Subtotal)
	assert.Equal(t, 15.0, sum.Shipping)
	assert.Equal(t, 15.0, sum.Discount)
	assert.Equal(t, 150.0, sum.Total)
}

func TestFixedCouponPricing(t *testing.T) {
	coupon, err := ApplyCoupon(testCoupons(), "FLAT25", 200, now)
	require.NoError(t, err)

	sum := Totals(cartWorth(100, 2), coupon)
	assert.Equal(t, 25.0, sum.Discount)
	assert.Equal(t, 190.0, sum.Total)
}

func TestCouponCodeIsCaseInsensitive(t *testing.T) {
	_, err := ApplyCoupon(testCoupons(), "  welcome10 ", 150, now)
	assert.NoError(t, err)
}

func TestUnknownCoupon(t *testing.T) {
	_, err := ApplyCoupon(testCoupons(), "NOPE", 150, now)
	assert.ErrorIs(t, err, ErrUnknownCoupon)
}

func TestInactiveCoupon(t *testing.T) {
	_, err := ApplyCoupon(testCoupons(), "PAUSED", 150, now)
	assert.ErrorIs(t, err, ErrCouponInactive)
}

func TestExpiredCoupon(t *testing.T) {
	_, err := ApplyCoupon(testCoupons(), "OLD", 150, now)
	assert.ErrorIs(t, err, ErrCouponExpired)
}

func TestCouponHonoredOnExpiryDay(t *testing.T) {
	endOfDay := time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC)
	_, err := ApplyCoupon(testCoupons(), "WELCOME10", 150, endOfDay)
	assert.NoError(t, err)

	dayAfter := time.Date(2027, 1, 1, 1, 0, 0, 0, time.UTC)
	_, err = ApplyCoupon(testCoupons(), "WELCOME10", 150, dayAfter)
	assert.ErrorIs(t, err, ErrCouponExpired)
}

func TestUnparseableExpiryCountsAsExpired(t *testing.T) {
	coupons := []models.Coupon{{Code: "BROKEN", Discount: 5, Type: models.CouponFixed, ExpiryDate: "soon", IsActive: true}}
	_, err := ApplyCoupon(coupons, "BROKEN", 150, now)
	assert.ErrorIs(t, err, ErrCouponExpired)
}

func TestMinimumAmount(t *testing.T) {
	_, err := ApplyCoupon(testCoupons(), "WELCOME10", 99, now)
	assert.ErrorIs(t, err, ErrBelowMinimum)

	// boundary: exactly the minimum is enough
	_, err = ApplyCoupon(testCoupons(), "WELCOME10", 100, now)
	assert.NoError(t, err)
}

func TestExhaustedCoupon(t *testing.T) {
	_, err := ApplyCoupon(testCoupons(), "LIMITED", 150, now)
	assert.ErrorIs(t, err, ErrCouponExhausted)
}

func TestEmptyCartSkipsShipping(t *testing.T) {
	sum := Totals(nil, nil)
	assert.Equal(t, 0.0, sum.Shipping)
	assert.Equal(t, 0.0, sum.Total)
}

func TestTotalIsRounded(t *testing.T) {
	// 33.335 * 3 = 100.005; 10% off leaves 90.0045 + 15 shipping = 105.0045
	coupon := &models.Coupon{Code: "WELCOME10", Discount: 10, Type: models.CouponPercentage, IsActive: true, ExpiryDate: "2026-12-31"}
	sum := Totals(cartWorth(33.335, 3), coupon)
	assert.Equal(t, 105.0, sum.Total)
}

func TestNewOrder(t *testing.T) {
	cart := cartWorth(75, 2)
	coupon, err := ApplyCoupon(testCoupons(), "WELCOME10", Subtotal(cart), now)
	require.NoError(t, err)

	o := NewOrder(cart, Totals(cart, coupon), CustomerInfo{
		Name:          "أحمد",
		Phone:         "0100000000",
		Address:       "القاهرة",
		PaymentMethod: "cod",
	}, coupon, now)

	assert.Equal(t, "#1780315200000", o.ID)
	assert.Equal(t, models.OrderStatusNew, o.Status)
	assert.Equal(t, "2026-06-01", o.Date)
	assert.Equal(t, "WELCOME10", o.Coupon)
	assert.Equal(t, 150.0, o.Total)
	require.Len(t, o.Items, 1)

	// the order keeps its own copy of the cart
	cart[0].Quantity = 99
	assert.Equal(t, 2, o.Items[0].Quantity)
}
