package pricing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "github.com/neokart/neokart-backend/pkg/errors"
)

// Coupon codes accepted at the cart. The whitelist is closed: anything
// else is rejected, never silently ignored.
const (
	CouponNeo10   = "NEO10"
	CouponFlat100 = "FLAT100"
)

// bulkThresholdQty is exclusive: the bulk discount applies only when
// the cart holds strictly more units than this.
const bulkThresholdQty = 5

var (
	bulkRate    = decimal.New(20, -2)  // 0.20
	neo10Rate   = decimal.New(10, -2)  // 0.10
	taxRate     = decimal.New(18, -2)  // 0.18
	flatAmount  = decimal.New(100, 0)  // 100.00
	moneyPlaces = int32(2)
)

// Line is one cart position fed into the engine. UnitPrice is the
// variant price when the line has a variant, else the product price.
type Line struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal returns quantity times unit price, quantized to cents.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(moneyPlaces)
}

// Breakdown carries every intermediate amount so callers can render the
// full bill without recomputing.
type Breakdown struct {
	TotalQuantity  int             `json:"total_quantity"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	BulkDiscount   decimal.Decimal `json:"bulk_discount"`
	CouponCode     string          `json:"coupon_code,omitempty"`
	CouponDiscount decimal.Decimal `json:"coupon_discount"`
	Tax            decimal.Decimal `json:"tax"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// ValidateCoupon rejects anything outside the closed whitelist. An
// empty code is valid and means "no coupon".
func ValidateCoupon(code string) error {
	switch NormalizeCoupon(code) {
	case "", CouponNeo10, CouponFlat100:
		return nil
	default:
		return apperrors.New(apperrors.CodeInvalidCoupon, "coupon code is not recognized").
			WithDetails(map[string]any{"code": code})
	}
}

// NormalizeCoupon trims whitespace and uppercases so stored and
// user-entered codes compare equal regardless of how they were typed.
func NormalizeCoupon(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Compute runs the full order of operations: subtotal, bulk discount,
// coupon, then tax. Every discount and tax amount is quantized to two
// decimal places before the next step consumes it.
func Compute(lines []Line, couponCode string) (Breakdown, error) {
	code := NormalizeCoupon(couponCode)
	if err := ValidateCoupon(code); err != nil {
		return Breakdown{}, err
	}

	b := base(lines)

	afterBulk := floorZero(b.Subtotal.Sub(b.BulkDiscount))

	switch code {
	case CouponNeo10:
		b.CouponCode = code
		b.CouponDiscount = afterBulk.Mul(neo10Rate).Round(moneyPlaces)
	case CouponFlat100:
		b.CouponCode = code
		b.CouponDiscount = decimal.Min(flatAmount, afterBulk).Round(moneyPlaces)
	default:
		b.CouponDiscount = decimal.Zero.Round(moneyPlaces)
	}

	beforeTax := floorZero(afterBulk.Sub(b.CouponDiscount))
	b.Tax = beforeTax.Mul(taxRate).Round(moneyPlaces)
	b.GrandTotal = beforeTax.Add(b.Tax)

	return b, nil
}

// ComputeCheckout prices the final order: subtotal less the bulk
// discount, with no coupon and no tax step. The cart view estimates
// tax for display only; the checkout total is authoritative at order
// creation and never recomputed later.
func ComputeCheckout(lines []Line) Breakdown {
	b := base(lines)

	b.CouponDiscount = decimal.Zero.Round(moneyPlaces)
	b.Tax = decimal.Zero.Round(moneyPlaces)
	b.GrandTotal = floorZero(b.Subtotal.Sub(b.BulkDiscount))

	return b
}

func base(lines []Line) Breakdown {
	subtotal := decimal.Zero
	totalQty := 0
	for _, line := range lines {
		subtotal = subtotal.Add(line.Subtotal())
		totalQty += line.Quantity
	}
	subtotal = subtotal.Round(moneyPlaces)

	bulk := decimal.Zero.Round(moneyPlaces)
	if totalQty > bulkThresholdQty {
		bulk = subtotal.Mul(bulkRate).Round(moneyPlaces)
	}

	return Breakdown{
		TotalQuantity: totalQty,
		Subtotal:      subtotal,
		BulkDiscount:  bulk,
	}
}

func floorZero(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
