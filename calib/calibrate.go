// Package calib derives the constant tables of a fixed-point natural-log
// approximation: a ladder of range-reduction breakpoints built from
// closed-form exponentials, and the shortest series-coefficient table that
// still improves the worst-case precision reported by an oracle.
package calib

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// DefaultDigits is the working precision of the decimal arithmetic used
// while deriving the breakpoints, in significant digits.
const DefaultDigits = 100

// maxPrecision keeps the unit and every breakpoint inside a 256-bit word.
// Series denominators grow with the search and are checked per term in
// NextLoTerm; a bound on them cannot be fixed up front.
const maxPrecision = 250

// Config holds the calibration inputs. The fixed-point unit is 1<<Precision;
// every derived constant is an integer scaled by that unit.
type Config struct {
	// Precision is the number of fractional bits of the fixed-point unit.
	Precision uint
	// NumOfHiTerms is the highest breakpoint index; the high-term table
	// holds NumOfHiTerms+1 entries.
	NumOfHiTerms int
	// MaxHiTermVal is the largest reduction step, halved for each further
	// breakpoint.
	MaxHiTermVal decimal.Decimal
	// Digits is the significant-digit count of the decimal working
	// precision.
	Digits int32
}

func (c Config) Validate() error {
	if c.Precision == 0 {
		return errors.New("precision must be positive")
	}
	if c.Precision > maxPrecision {
		return fmt.Errorf("precision %d exceeds %d", c.Precision, maxPrecision)
	}
	if c.NumOfHiTerms < 0 {
		return fmt.Errorf("negative high-term count %d", c.NumOfHiTerms)
	}
	if c.MaxHiTermVal.Sign() <= 0 {
		return fmt.Errorf("max high-term value %s must be positive", c.MaxHiTermVal)
	}
	if c.Digits <= 0 {
		return fmt.Errorf("working precision %d must be positive", c.Digits)
	}
	return nil
}

// Calibrate builds the high-term table, searches for the smallest low-term
// table that is a local precision maximum under single-term growth, and
// returns both together with the routine's validity bound. The result is a
// pure function of the configuration and the oracle.
func Calibrate(cfg Config, oracle PrecisionOracle) (Tables, error) {
	if err := cfg.Validate(); err != nil {
		return Tables{}, err
	}

	oneBig := new(big.Int).Lsh(big.NewInt(1), cfg.Precision)
	hi, err := BuildHiTerms(cfg.MaxHiTermVal, cfg.NumOfHiTerms, oneBig, cfg.Digits)
	if err != nil {
		return Tables{}, fmt.Errorf("building high-term table: %w", err)
	}

	one, _ := uint256.FromBig(oneBig)
	maxVal := new(uint256.Int).SubUint64(hi[0].Exp, 1)
	lo, err := SearchLoTerms(maxVal, hi, one, oracle)
	if err != nil {
		return Tables{}, fmt.Errorf("searching low-term table: %w", err)
	}

	return Tables{One: one, MaxVal: maxVal, Hi: hi, Lo: lo}, nil
}
