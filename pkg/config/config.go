// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd/alnstat)
package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// SettingsName is the settings file looked for in the working
// directory and the user's config directory, without its extension.
const SettingsName = "alnstat"

// WeightsConfig is for sequence weights and neff
type WeightsConfig struct {
	// sequences at least this identical are counted as neighbours
	Identity float64 `mapstructure:"identity"`
}

// FilterConfig is for the identity filter
type FilterConfig struct {
	// later sequences less identical than this are thrown out
	MinID float64 `mapstructure:"min-id"`

	// later sequences more identical than this are thrown out
	MaxID float64 `mapstructure:"max-id"`
}

// GappedConfig is for throwing out sequences by their gap content
type GappedConfig struct {
	MinProp float64 `mapstructure:"min-prop"`
	MaxProp float64 `mapstructure:"max-prop"`
}

// PlotConfig is the size of the coverage figure
type PlotConfig struct {
	Width  int     `mapstructure:"width"`
	Height int     `mapstructure:"height"`
	DPI    float64 `mapstructure:"dpi"`
}

// Config is the root-level settings struct and is a mix
// of settings available in alnstat.yaml and those
// available from the command line
type Config struct {
	Weights WeightsConfig `mapstructure:"weights"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Gapped  GappedConfig  `mapstructure:"gapped"`
	Plot    PlotConfig    `mapstructure:"plot"`

	// replace output files which are already there
	Overwrite bool `mapstructure:"overwrite"`

	// print progress to stderr
	Verbose bool `mapstructure:"verbose"`

	// count gaps as a symbol when calculating entropy
	GapsAreChar bool `mapstructure:"gaps-are-char"`
}

// SetDefaults puts the defaults into v. Settings files and flags
// override them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("weights.identity", 0.8)
	v.SetDefault("filter.min-id", 0.3)
	v.SetDefault("filter.max-id", 0.9)
	v.SetDefault("gapped.min-prop", 0.0)
	v.SetDefault("gapped.max-prop", 0.9)
	v.SetDefault("plot.width", 800)
	v.SetDefault("plot.height", 300)
	v.SetDefault("plot.dpi", 72.0)
	v.SetDefault("overwrite", false)
	v.SetDefault("verbose", false)
	v.SetDefault("gaps-are-char", false)
}

// ReadSettings reads a settings file. If fname is empty, we look for
// alnstat.yaml in the working directory and the user's config
// directory, and it is not an error if there is none.
func ReadSettings(v *viper.Viper, fname string) error {
	if fname != "" {
		v.SetConfigFile(fname)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading settings %s: %w", fname, err)
		}
		return nil
	}
	v.SetConfigName(SettingsName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading settings: %w", err)
	}
	return nil
}

// checkFrac returns an error unless 0 <= x <= 1.
func checkFrac(name string, x float64) error {
	if !(x >= 0 && x <= 1) {
		return fmt.Errorf("%s is %g, must be from 0 to 1", name, x)
	}
	return nil
}

// Validate catches settings which make no sense before any work is
// done.
func (c *Config) Validate() error {
	fracs := []struct {
		name string
		x    float64
	}{
		{"weights.identity", c.Weights.Identity},
		{"filter.min-id", c.Filter.MinID},
		{"filter.max-id", c.Filter.MaxID},
		{"gapped.min-prop", c.Gapped.MinProp},
		{"gapped.max-prop", c.Gapped.MaxProp},
	}
	for _, f := range fracs {
		if err := checkFrac(f.name, f.x); err != nil {
			return err
		}
	}
	if c.Filter.MinID > c.Filter.MaxID {
		return fmt.Errorf("filter.min-id %g is above filter.max-id %g", c.Filter.MinID, c.Filter.MaxID)
	}
	if c.Gapped.MinProp > c.Gapped.MaxProp {
		return fmt.Errorf("gapped.min-prop %g is above gapped.max-prop %g", c.Gapped.MinProp, c.Gapped.MaxProp)
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 || c.Plot.DPI <= 0 {
		return fmt.Errorf("plot size %d x %d at %g dpi", c.Plot.Width, c.Plot.Height, c.Plot.DPI)
	}
	return nil
}

// Load unmarshals and checks the settings in v.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// NewConfig returns a new Config struct populated by
// Viper settings (either from alnstat.yaml)
// and/or command line arguments
func NewConfig() Config {
	c, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	return c
}
