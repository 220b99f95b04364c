package config

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/logcal/logcal-go/calib"
)

// Defaults are the production configuration: the 127-bit table pair used by
// the downstream fixed-point math library.
const (
	DefaultPrecision    = 127
	DefaultNumOfHiTerms = 8
	DefaultMaxHiTermVal = "1"
	DefaultDigits       = calib.DefaultDigits

	FormatCode = "code"
	FormatJSON = "json"
)

type Config struct {
	Precision    uint   `mapstructure:"precision"`
	NumOfHiTerms int    `mapstructure:"hi_terms"`
	MaxHiTermVal string `mapstructure:"max_hi_term_val"`
	Digits       int32  `mapstructure:"digits"`
	Format       string `mapstructure:"format"`
	Verify       bool   `mapstructure:"verify"`
}

func DefaultConfig() *Config {
	return &Config{
		Precision:    DefaultPrecision,
		NumOfHiTerms: DefaultNumOfHiTerms,
		MaxHiTermVal: DefaultMaxHiTermVal,
		Digits:       DefaultDigits,
		Format:       FormatCode,
	}
}

// Calib converts the raw command-line values into a validated calibration
// configuration.
func (c *Config) Calib() (calib.Config, error) {
	maxHi, err := decimal.NewFromString(c.MaxHiTermVal)
	if err != nil {
		return calib.Config{}, fmt.Errorf("invalid max high-term value %q: %w", c.MaxHiTermVal, err)
	}
	ccfg := calib.Config{
		Precision:    c.Precision,
		NumOfHiTerms: c.NumOfHiTerms,
		MaxHiTermVal: maxHi,
		Digits:       c.Digits,
	}
	return ccfg, ccfg.Validate()
}

func (c *Config) Validate() error {
	if c.Format != FormatCode && c.Format != FormatJSON {
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	_, err := c.Calib()
	return err
}
