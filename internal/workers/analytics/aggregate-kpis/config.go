// internal/workers/analytics/aggregate-kpis/config.go
package aggregatekpis

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
