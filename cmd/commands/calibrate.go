package commands

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/logcal/logcal-go/calib"
	cfg "github.com/logcal/logcal-go/cmd/config"
	"github.com/logcal/logcal-go/emit"
)

// NewCalibrateCmd returns the command that derives the log constant tables
// and prints the routine body on stdout.
func NewCalibrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Derive the log constant tables and print the routine body",
		RunE:  runCalibrate,
	}
	AddCalibrateFlags(cmd)
	return cmd
}

func AddCalibrateFlags(cmd *cobra.Command) {
	cmd.Flags().Uint("precision", cfg.DefaultPrecision,
		"number of fractional bits of the fixed-point unit")
	cmd.Flags().Int("hi_terms", cfg.DefaultNumOfHiTerms,
		"highest range-reduction breakpoint index")
	cmd.Flags().String("max_hi_term_val", cfg.DefaultMaxHiTermVal,
		"largest reduction step, as a decimal")
	cmd.Flags().Int32("digits", cfg.DefaultDigits,
		"working precision of the decimal arithmetic, in significant digits")
	cmd.Flags().String("format", cfg.FormatCode,
		"output format (code | json)")
	cmd.Flags().Bool("verify", false,
		"cross-check the result against an independent fixed-point ln")
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	if err := rootConfig.Validate(); err != nil {
		return err
	}
	ccfg, err := rootConfig.Calib()
	if err != nil {
		return err
	}

	logger.Info("calibrating",
		zap.Uint("precision", ccfg.Precision),
		zap.Int("hi_terms", ccfg.NumOfHiTerms),
		zap.String("max_hi_term_val", ccfg.MaxHiTermVal.String()))

	oracle := loggingOracle{inner: calib.LogOracle{}, log: logger}
	tables, err := calib.Calibrate(ccfg, oracle)
	if err != nil {
		return err
	}
	logger.Info("calibrated",
		zap.Int("lo_terms", len(tables.Lo)),
		zap.String("max_val", tables.MaxVal.Hex()))

	if rootConfig.Verify {
		if err := verifyTables(tables); err != nil {
			return err
		}
	}

	switch rootConfig.Format {
	case cfg.FormatJSON:
		out, err := emit.JSON(tables, ccfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	default:
		fmt.Fprint(cmd.OutOrStdout(), emit.Function(tables))
	}
	return nil
}

// loggingOracle reports every score the search sees at debug level.
type loggingOracle struct {
	inner calib.PrecisionOracle
	log   *zap.Logger
}

func (o loggingOracle) Evaluate(x *uint256.Int, hi []calib.HiTerm, lo []calib.LoTerm, one *uint256.Int) (*big.Int, error) {
	score, err := o.inner.Evaluate(x, hi, lo, one)
	if err == nil {
		o.log.Debug("oracle score",
			zap.Int("lo_terms", len(lo)),
			zap.String("score", score.String()))
	}
	return score, err
}
