// Package refmath provides deterministic fixed-point ln, exp and pow over
// robaho/fixed (7 decimal places). It is an independent reference used to
// sanity-check calibrated tables; the calibration core never depends on it.
package refmath

import (
	"errors"

	"github.com/robaho/fixed"
)

const (
	lnTerms  = 32
	expTerms = 32
)

var (
	one = fixed.NewI(1, 0)
	two = fixed.NewI(2, 0)
)

// Ln returns ln(x) for x > 0 via the atanh series
// ln(x) = 2*(t + t^3/3 + t^5/5 + ...), t = (x-1)/(x+1).
func Ln(x fixed.Fixed) (fixed.Fixed, error) {
	if x.Cmp(fixed.ZERO) <= 0 {
		return fixed.ZERO, errors.New("refmath: ln of non-positive value")
	}
	t := x.Sub(one).Div(x.Add(one))
	t2 := t.Mul(t)

	sum, term := t, t
	for k := 1; k < lnTerms; k++ {
		term = term.Mul(t2)
		sum = sum.Add(term.Div(fixed.NewI(int64(2*k+1), 0)))
	}
	return sum.Mul(two), nil
}

// Exp returns e^x via Horner's expansion
// exp(x) ≈ 1 + x/1*(1 + x/2*(1 + ... (1 + x/N))).
func Exp(x fixed.Fixed) fixed.Fixed {
	s := one
	for n := expTerms; n > 0; n-- {
		s = one.Add(x.Div(fixed.NewI(int64(n), 0)).Mul(s))
	}
	return s
}

// Pow computes x^y = exp(y * ln(x)).
func Pow(x, y fixed.Fixed) (fixed.Fixed, error) {
	lnX, err := Ln(x)
	if err != nil {
		return fixed.ZERO, err
	}
	return Exp(lnX.Mul(y)), nil
}
