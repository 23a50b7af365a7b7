package mathutil

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// TenThousands is the scale of an amount expressed in basis points.
var TenThousands = uint64(10000)

// TenThousandsDecimal is the basis point scale as decimal.Decimal.
var TenThousandsDecimal = decimal.NewFromInt(int64(TenThousands))

func init() {
	decimal.DivisionPrecision = 8
}

// Mul takes two uint64 numbers and multiplies them x * y returning the result as decimal.Decimal
func Mul(x, y uint64) (z decimal.Decimal) {
	X, Y := decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0), decimal.NewFromBigInt(new(big.Int).SetUint64(y), 0)
	z = X.Mul(Y)
	return
}
