package calib

import (
	"fmt"

	"github.com/holiman/uint256"
)

// SearchLoTerms grows the low-term table one rational term at a time,
// accepting a candidate only while the oracle reports a strictly better
// score for the worst-case input. The first candidate that fails to improve
// is discarded and the last accepted table is returned.
//
// The search never backtracks: it assumes the score landscape has a single
// peak reachable from the seed. Once fixed-point rounding dominates the
// marginal contribution of a new term, the score stops increasing and the
// loop terminates.
func SearchLoTerms(maxVal *uint256.Int, hi []HiTerm, one *uint256.Int, oracle PrecisionOracle) ([]LoTerm, error) {
	lo := []LoTerm{SeedLoTerm(one)}
	score, err := oracle.Evaluate(maxVal, hi, lo, one)
	if err != nil {
		return nil, fmt.Errorf("scoring seed table: %w", err)
	}
	for {
		term, err := NextLoTerm(one, len(lo))
		if err != nil {
			return nil, fmt.Errorf("growing %d-term table: %w", len(lo), err)
		}
		next := append(append([]LoTerm(nil), lo...), term)
		nextScore, err := oracle.Evaluate(maxVal, hi, next, one)
		if err != nil {
			return nil, fmt.Errorf("scoring %d-term table: %w", len(next), err)
		}
		if nextScore.Cmp(score) <= 0 {
			return lo, nil
		}
		lo, score = next, nextScore
	}
}
