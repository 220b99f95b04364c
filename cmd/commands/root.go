package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	cfg "github.com/logcal/logcal-go/cmd/config"
)

var (
	rootConfig = cfg.DefaultConfig()
	logger     = zap.NewNop()
)

var RootCmd = &cobra.Command{
	Use:   "logcal",
	Short: "Calibrate the constant tables of a fixed-point natural-log routine",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		viper.SetEnvPrefix("LOGCAL")
		viper.AutomaticEnv()
		if err := viper.Unmarshal(rootConfig); err != nil {
			return err
		}
		return setupLogger(viper.GetBool("verbose"))
	},
}

func init() {
	RootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

// setupLogger writes to stderr only; stdout carries the emitted source text.
func setupLogger(verbose bool) error {
	c := zap.NewDevelopmentConfig()
	c.OutputPaths = []string{"stderr"}
	if !verbose {
		c.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	l, err := c.Build()
	if err != nil {
		return err
	}
	logger = l
	return nil
}
