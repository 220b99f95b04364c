package calib

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// HiTerm is one range-reduction breakpoint: while the input is at least Exp,
// divide it by Exp and add Val to the accumulated logarithm. Breakpoint n
// encodes cur = maxHiTermVal / 2^n, so Exp strictly decreases along the table.
type HiTerm struct {
	Val *uint256.Int
	Exp *uint256.Int
}

// LoTerm is one rational series coefficient Num/Den, applied after range
// reduction has brought the input near the fixed-point unit.
type LoTerm struct {
	Num *uint256.Int
	Den *uint256.Int
}

// Tables is a finished calibration result. MaxVal is the exclusive upper
// bound of the emitted routine, one unit below the first breakpoint.
type Tables struct {
	One    *uint256.Int
	MaxVal *uint256.Int
	Hi     []HiTerm
	Lo     []LoTerm
}

// BuildHiTerms derives the numHiTerms+1 range-reduction breakpoints by
// geometric halving of maxHiVal. All intermediate arithmetic runs on
// decimals with the given working precision; only the final conversion to
// the fixed-point scale truncates.
func BuildHiTerms(maxHiVal decimal.Decimal, numHiTerms int, one *big.Int, digits int32) ([]HiTerm, error) {
	oneDec := decimal.NewFromBigInt(one, 0)
	terms := make([]HiTerm, 0, numHiTerms+1)
	for n := 0; n <= numHiTerms; n++ {
		pow2 := decimal.NewFromBigInt(new(big.Int).Lsh(big.NewInt(1), uint(n)), 0)
		cur := maxHiVal.DivRound(pow2, digits)
		expCur, err := cur.ExpTaylor(digits)
		if err != nil {
			return nil, fmt.Errorf("exp(%s): %w", cur, err)
		}
		val, err := toFixed(oneDec, cur)
		if err != nil {
			return nil, err
		}
		exp, err := toFixed(oneDec, expCur)
		if err != nil {
			return nil, err
		}
		terms = append(terms, HiTerm{Val: val, Exp: exp})
	}
	return terms, nil
}

// SeedLoTerm is the degenerate first series term (coefficient 1), scaled by
// two so later terms share the num = den/(2k+1) shape.
func SeedLoTerm(one *uint256.Int) LoTerm {
	return LoTerm{
		Num: new(uint256.Int).Lsh(one, 1),
		Den: new(uint256.Int).Lsh(one, 1),
	}
}

// NextLoTerm is the term appended to a table that already holds k terms:
// den = one*(2k+2), num = den/(2k+1) floored. Earlier terms are frozen; the
// new term depends only on the table length. The denominator grows with the
// table, so it is computed exactly and rejected once it no longer fits the
// 256-bit word.
func NextLoTerm(one *uint256.Int, k int) (LoTerm, error) {
	den := new(big.Int).Mul(one.ToBig(), big.NewInt(int64(2*k+2)))
	u, overflow := uint256.FromBig(den)
	if overflow {
		return LoTerm{}, fmt.Errorf("term %d denominator %s exceeds 256 bits", k, den)
	}
	num := new(uint256.Int).Div(u, uint256.NewInt(uint64(2*k+1)))
	return LoTerm{Num: num, Den: u}, nil
}

func toFixed(one, v decimal.Decimal) (*uint256.Int, error) {
	i := one.Mul(v).BigInt()
	if i.Sign() < 0 {
		return nil, fmt.Errorf("negative fixed-point value %s", i)
	}
	u, overflow := uint256.FromBig(i)
	if overflow {
		return nil, fmt.Errorf("fixed-point value %s exceeds 256 bits", i)
	}
	return u, nil
}
