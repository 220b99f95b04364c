package calib

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
)

// PrecisionOracle scores the approximation quality of a table pair. Scores
// are totally ordered and comparable across calls with different low-term
// table lengths; a higher score means a more precise approximation.
type PrecisionOracle interface {
	Evaluate(x *uint256.Int, hi []HiTerm, lo []LoTerm, one *uint256.Int) (*big.Int, error)
}

// LogOracle scores a table pair by running the fixed-point log routine the
// tables will be embedded into: range reduction over the breakpoints, then
// the Horner accumulation of the series terms. All divisions truncate, so
// the routine only ever undershoots the true logarithm and a larger result
// is a tighter approximation.
type LogOracle struct{}

var _ PrecisionOracle = LogOracle{}

func (LogOracle) Evaluate(x *uint256.Int, hi []HiTerm, lo []LoTerm, one *uint256.Int) (*big.Int, error) {
	if len(hi) == 0 {
		return nil, errors.New("empty high-term table")
	}
	if len(lo) == 0 {
		return nil, errors.New("empty low-term table")
	}

	bigOne := one.ToBig()
	cur := x.ToBig()
	res := new(big.Int)
	for _, t := range hi[1:] {
		exp := t.Exp.ToBig()
		if cur.Cmp(exp) >= 0 {
			res.Add(res, t.Val.ToBig())
			cur.Mul(cur, bigOne)
			cur.Div(cur, exp)
		}
	}

	y := new(big.Int).Sub(cur, bigOne)
	z := new(big.Int).Set(y)
	w := new(big.Int).Mul(y, y)
	w.Div(w, bigOne)
	tmp := new(big.Int)
	for _, t := range lo[:len(lo)-1] {
		tmp.Sub(t.Num.ToBig(), y)
		tmp.Mul(tmp, z)
		res.Add(res, tmp.Div(tmp, t.Den.ToBig()))
		z.Mul(z, w)
		z.Div(z, bigOne)
	}
	last := lo[len(lo)-1]
	tmp.Sub(last.Num.ToBig(), y)
	tmp.Mul(tmp, z)
	res.Add(res, tmp.Div(tmp, last.Den.ToBig()))
	return res, nil
}
