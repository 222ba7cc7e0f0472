// internal/workers/scenario/project-scenario/config.go
package projectscenario

import (
	"time"

	"workforce-workers/internal/scenario"
)

type Config struct {
	Timeout            time.Duration
	OverheadRate       float64
	EfficiencyDiscount float64
	PresetsPath        string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:            10 * time.Second,
		OverheadRate:       scenario.DefaultOverheadRate,
		EfficiencyDiscount: scenario.DefaultEfficiencyDiscount,
	}
}

func (c *Config) options() scenario.Options {
	opts := scenario.DefaultOptions()
	if c.OverheadRate > 0 {
		opts.OverheadRate = c.OverheadRate
	}
	if c.EfficiencyDiscount > 0 {
		opts.EfficiencyDiscount = c.EfficiencyDiscount
	}
	return opts
}
