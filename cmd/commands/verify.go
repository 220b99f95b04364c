package commands

import (
	"fmt"
	"math"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/robaho/fixed"
	"go.uber.org/zap"

	"github.com/logcal/logcal-go/calib"
	"github.com/logcal/logcal-go/libs/refmath"
)

const (
	verifySamples   = 16
	verifyTolerance = 1e-3
)

// verifyTables evaluates the calibrated routine at evenly spaced points of
// its domain [ONE, MAX_VAL] and compares each result against an independent
// fixed-point ln.
func verifyTables(t calib.Tables) error {
	oneF := new(big.Float).SetInt(t.One.ToBig())
	lower := t.One.ToBig()
	span := new(big.Int).Sub(t.MaxVal.ToBig(), lower)

	worst := 0.0
	for i := 0; i <= verifySamples; i++ {
		xi := new(big.Int).Mul(span, big.NewInt(int64(i)))
		xi.Div(xi, big.NewInt(verifySamples))
		xi.Add(xi, lower)
		x, _ := uint256.FromBig(xi)

		score, err := (calib.LogOracle{}).Evaluate(x, t.Hi, t.Lo, t.One)
		if err != nil {
			return err
		}
		got, _ := new(big.Float).Quo(new(big.Float).SetInt(score), oneF).Float64()
		ratio, _ := new(big.Float).Quo(new(big.Float).SetInt(xi), oneF).Float64()

		want, err := refmath.Ln(fixed.NewF(ratio))
		if err != nil {
			return err
		}
		if d := math.Abs(got - want.Float()); d > worst {
			worst = d
		}
	}

	logger.Info("verified against reference ln", zap.Float64("worst_abs_error", worst))
	if worst > verifyTolerance {
		return fmt.Errorf("worst deviation %.3g exceeds %.3g", worst, verifyTolerance)
	}
	return nil
}
