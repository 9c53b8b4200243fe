package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/neokart/neokart-backend/pkg/errors"
)

func line(price string, qty int) Line {
	return Line{
		ProductID: uuid.New(),
		Quantity:  qty,
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestComputeNeo10(t *testing.T) {
	// 200.00 subtotal, five units: no bulk discount, 10% coupon.
	b, err := Compute([]Line{line("40.00", 5)}, "NEO10")
	require.NoError(t, err)

	assert.Equal(t, "200.00", b.Subtotal.StringFixed(2))
	assert.True(t, b.BulkDiscount.IsZero())
	assert.Equal(t, "20.00", b.CouponDiscount.StringFixed(2))
	assert.Equal(t, "32.40", b.Tax.StringFixed(2))
	assert.Equal(t, "212.40", b.GrandTotal.StringFixed(2))
	assert.Equal(t, CouponNeo10, b.CouponCode)
}

func TestComputeBulkBoundary(t *testing.T) {
	// Exactly five units: no bulk discount.
	b, err := Compute([]Line{line("10.00", 5)}, "")
	require.NoError(t, err)
	assert.True(t, b.BulkDiscount.IsZero())

	// Six units: 20% of subtotal.
	b, err = Compute([]Line{line("10.00", 6)}, "")
	require.NoError(t, err)
	assert.Equal(t, "12.00", b.BulkDiscount.StringFixed(2))
}

func TestComputeNeo10AfterBulk(t *testing.T) {
	// Coupon applies to the amount after bulk, not the raw subtotal.
	b, err := Compute([]Line{line("100.00", 6)}, "NEO10")
	require.NoError(t, err)

	assert.Equal(t, "600.00", b.Subtotal.StringFixed(2))
	assert.Equal(t, "120.00", b.BulkDiscount.StringFixed(2))
	assert.Equal(t, "48.00", b.CouponDiscount.StringFixed(2))
	// beforeTax 432, tax 77.76, grand 509.76
	assert.Equal(t, "77.76", b.Tax.StringFixed(2))
	assert.Equal(t, "509.76", b.GrandTotal.StringFixed(2))
}

func TestComputeFlat100Cap(t *testing.T) {
	// Cheap cart: the flat coupon never pushes the total negative.
	b, err := Compute([]Line{line("30.00", 2)}, "FLAT100")
	require.NoError(t, err)

	assert.Equal(t, "60.00", b.CouponDiscount.StringFixed(2))
	assert.True(t, b.Tax.IsZero())
	assert.True(t, b.GrandTotal.IsZero())

	// Expensive cart: full 100 off.
	b, err = Compute([]Line{line("500.00", 1)}, "FLAT100")
	require.NoError(t, err)
	assert.Equal(t, "100.00", b.CouponDiscount.StringFixed(2))
	assert.Equal(t, "72.00", b.Tax.StringFixed(2))
	assert.Equal(t, "472.00", b.GrandTotal.StringFixed(2))
}

func TestComputeQuantizesEachStep(t *testing.T) {
	// 9.99 x 7 = 69.93; bulk 13.986 rounds to 13.99 before the
	// remaining steps consume it.
	b, err := Compute([]Line{line("9.99", 7)}, "")
	require.NoError(t, err)

	assert.Equal(t, "69.93", b.Subtotal.StringFixed(2))
	assert.Equal(t, "13.99", b.BulkDiscount.StringFixed(2))
	assert.Equal(t, "10.07", b.Tax.StringFixed(2))
	assert.Equal(t, "66.01", b.GrandTotal.StringFixed(2))
}

func TestComputeInvalidCoupon(t *testing.T) {
	_, err := Compute([]Line{line("10.00", 1)}, "SAVEBIG")
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInvalidCoupon, appErr.Code())
}

func TestComputeEmptyAndWhitespaceCoupon(t *testing.T) {
	b, err := Compute([]Line{line("10.00", 1)}, "  ")
	require.NoError(t, err)
	assert.True(t, b.CouponDiscount.IsZero())
	assert.Empty(t, b.CouponCode)

	b, err = Compute([]Line{line("10.00", 1)}, " NEO10 ")
	require.NoError(t, err)
	assert.Equal(t, CouponNeo10, b.CouponCode)
}

func TestComputeEmptyCart(t *testing.T) {
	b, err := Compute(nil, "")
	require.NoError(t, err)
	assert.Zero(t, b.TotalQuantity)
	assert.True(t, b.Subtotal.IsZero())
	assert.True(t, b.GrandTotal.IsZero())
}

func TestComputeCheckoutIgnoresCoupon(t *testing.T) {
	lines := []Line{line("100.00", 6)}

	b := ComputeCheckout(lines)
	assert.Equal(t, "600.00", b.Subtotal.StringFixed(2))
	assert.Equal(t, "120.00", b.BulkDiscount.StringFixed(2))
	assert.True(t, b.CouponDiscount.IsZero())
	assert.Empty(t, b.CouponCode)
	assert.True(t, b.Tax.IsZero())
	assert.Equal(t, "480.00", b.GrandTotal.StringFixed(2))
}

func TestComputeCheckoutChargesNoTax(t *testing.T) {
	// The persisted order total is subtotal less bulk discount. Tax is
	// a cart-view estimate only and never enters the order amount.
	b := ComputeCheckout([]Line{line("100.00", 2)})
	assert.Equal(t, "200.00", b.Subtotal.StringFixed(2))
	assert.True(t, b.BulkDiscount.IsZero())
	assert.True(t, b.Tax.IsZero())
	assert.Equal(t, "200.00", b.GrandTotal.StringFixed(2))
}

func TestValidateCoupon(t *testing.T) {
	assert.NoError(t, ValidateCoupon(""))
	assert.NoError(t, ValidateCoupon("NEO10"))
	assert.NoError(t, ValidateCoupon("FLAT100"))
	assert.NoError(t, ValidateCoupon("neo10"))
	assert.Error(t, ValidateCoupon("TENOFF"))
}

func TestNormalizeCouponUppercases(t *testing.T) {
	assert.Equal(t, "NEO10", NormalizeCoupon(" neo10 "))
	assert.Equal(t, "FLAT100", NormalizeCoupon("flat100"))
	assert.Empty(t, NormalizeCoupon("   "))
}

func TestComputeLowercaseCouponApplies(t *testing.T) {
	b, err := Compute([]Line{line("500.00", 1)}, "flat100")
	require.NoError(t, err)
	assert.Equal(t, CouponFlat100, b.CouponCode)
	assert.Equal(t, "100.00", b.CouponDiscount.StringFixed(2))
}

func TestLineSubtotalUsesUnitPrice(t *testing.T) {
	variantID := uuid.New()
	l := Line{
		ProductID: uuid.New(),
		VariantID: &variantID,
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("12.50"),
	}
	assert.Equal(t, "37.50", l.Subtotal().StringFixed(2))
}

func TestDeliveryWindow(t *testing.T) {
	now := time.Date(2024, time.December, 30, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "02 Jan – 04 Jan", DeliveryWindow(now))

	now = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "04 Mar – 06 Mar", DeliveryWindow(now))
}
