package calib

import (
	"math/big"
	"testing"

	"github.com/robaho/fixed"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/logcal/logcal-go/libs/refmath"
)

func unitConfig(precision uint, numHi int) Config {
	return Config{
		Precision:    precision,
		NumOfHiTerms: numHi,
		MaxHiTermVal: decimal.NewFromInt(1),
		Digits:       DefaultDigits,
	}
}

func TestCalibrateGolden32(t *testing.T) {
	tables, err := Calibrate(unitConfig(32, 2), LogOracle{})
	require.NoError(t, err)

	require.Equal(t, "0x100000000", tables.One.Hex())
	require.Equal(t, "0x2b7e15161", tables.MaxVal.Hex())

	wantHi := [][2]string{
		{"0x100000000", "0x2b7e15162"},
		{"0x80000000", "0x1a61298e1"},
		{"0x40000000", "0x148b5e3c3"},
	}
	require.Len(t, tables.Hi, len(wantHi))
	for i, w := range wantHi {
		require.Equal(t, w[0], tables.Hi[i].Val.Hex(), "hi val[%d]", i)
		require.Equal(t, w[1], tables.Hi[i].Exp.Hex(), "hi exp[%d]", i)
	}

	wantLo := [][2]string{
		{"0x200000000", "0x200000000"},
		{"0x155555555", "0x400000000"},
		{"0x133333333", "0x600000000"},
		{"0x124924924", "0x800000000"},
		{"0x11c71c71c", "0xa00000000"},
		{"0x11745d174", "0xc00000000"},
		{"0x113b13b13", "0xe00000000"},
		{"0x111111111", "0x1000000000"},
	}
	require.Len(t, tables.Lo, len(wantLo))
	for i, w := range wantLo {
		require.Equal(t, w[0], tables.Lo[i].Num.Hex(), "lo num[%d]", i)
		require.Equal(t, w[1], tables.Lo[i].Den.Hex(), "lo den[%d]", i)
	}
}

// The 127-bit unit ladder is the production configuration; its constants are
// the ones embedded downstream.
func TestCalibrateGolden127(t *testing.T) {
	tables, err := Calibrate(unitConfig(127, 8), LogOracle{})
	require.NoError(t, err)

	require.Equal(t, "0x15bf0a8b1457695355fb8ac404e7a79e2", tables.MaxVal.Hex())

	wantExp := []string{
		"0x15bf0a8b1457695355fb8ac404e7a79e3",
		"0xd3094c70f034de4b96ff7d5b6f99fcd8",
		"0xa45af1e1f40c333b3de1db4dd55f29a7",
		"0x910b022db7ae67ce76b441c27035c6a1",
		"0x88415abbe9a76bead8d00cf112e4d4a8",
		"0x84102b00893f64c705e841d5d4064bd3",
		"0x8204055aaef1c8bd5c3259f4822735a2",
		"0x810100ab00222d861931c15e39b44e99",
		"0x808040155aabbbe9451521693554f733",
	}
	require.Len(t, tables.Hi, len(wantExp))
	for i, w := range wantExp {
		require.Equal(t, w, tables.Hi[i].Exp.Hex(), "hi exp[%d]", i)
	}

	wantNum := []string{
		"0x100000000000000000000000000000000",
		"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"0x99999999999999999999999999999999",
		"0x92492492492492492492492492492492",
		"0x8e38e38e38e38e38e38e38e38e38e38e",
		"0x8ba2e8ba2e8ba2e8ba2e8ba2e8ba2e8b",
		"0x89d89d89d89d89d89d89d89d89d89d89",
		"0x88888888888888888888888888888888",
	}
	require.Len(t, tables.Lo, len(wantNum))
	for i, w := range wantNum {
		require.Equal(t, w, tables.Lo[i].Num.Hex(), "lo num[%d]", i)
	}
}

func TestCalibrateShorterSearchAtWiderLadder(t *testing.T) {
	tables, err := Calibrate(unitConfig(32, 4), LogOracle{})
	require.NoError(t, err)
	require.Len(t, tables.Lo, 4)

	tables, err = Calibrate(unitConfig(16, 3), LogOracle{})
	require.NoError(t, err)
	require.Len(t, tables.Lo, 2)
}

func TestCalibrateInvariants(t *testing.T) {
	tables, err := Calibrate(unitConfig(32, 2), LogOracle{})
	require.NoError(t, err)

	bound := new(big.Int).Sub(tables.Hi[0].Exp.ToBig(), big.NewInt(1))
	require.Zero(t, bound.Cmp(tables.MaxVal.ToBig()))
	require.GreaterOrEqual(t, len(tables.Lo), 1)
}

func TestCalibrateValidation(t *testing.T) {
	oracle := LogOracle{}

	cfg := unitConfig(0, 2)
	_, err := Calibrate(cfg, oracle)
	require.Error(t, err)

	cfg = unitConfig(32, -1)
	_, err = Calibrate(cfg, oracle)
	require.Error(t, err)

	cfg = unitConfig(32, 2)
	cfg.MaxHiTermVal = decimal.Zero
	_, err = Calibrate(cfg, oracle)
	require.Error(t, err)

	cfg = unitConfig(32, 2)
	cfg.Digits = 0
	_, err = Calibrate(cfg, oracle)
	require.Error(t, err)

	cfg = unitConfig(maxPrecision+1, 2)
	_, err = Calibrate(cfg, oracle)
	require.Error(t, err)
}

// At the widest accepted scale the search outgrows the 256-bit word around
// the 31st term. The run must end in an error, never a wrapped denominator.
func TestCalibrateMaxPrecisionFailsFast(t *testing.T) {
	cfg := unitConfig(maxPrecision, 4)
	require.NoError(t, cfg.Validate())

	_, err := Calibrate(cfg, LogOracle{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "exceeds 256 bits")
}

func TestCalibrateOracleFailureAborts(t *testing.T) {
	_, err := Calibrate(unitConfig(32, 2), failingOracle{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "searching low-term table")
}

// Cross-check against an independent fixed-point ln: the calibrated routine
// evaluated at MAX_VAL must agree with refmath.Ln(MAX_VAL/ONE) to well under
// the reference's own granularity.
func TestCalibrateMatchesReferenceLn(t *testing.T) {
	tables, err := Calibrate(unitConfig(32, 2), LogOracle{})
	require.NoError(t, err)

	score, err := LogOracle{}.Evaluate(tables.MaxVal, tables.Hi, tables.Lo, tables.One)
	require.NoError(t, err)

	scale := new(big.Float).SetInt(tables.One.ToBig())
	got, _ := new(big.Float).Quo(new(big.Float).SetInt(score), scale).Float64()
	x, _ := new(big.Float).Quo(new(big.Float).SetInt(tables.MaxVal.ToBig()), scale).Float64()

	want, err := refmath.Ln(fixed.NewF(x))
	require.NoError(t, err)
	require.InDelta(t, want.Float(), got, 1e-4)
}
