// internal/workers/scoring/score-roles/config.go
package scoreroles

import "time"

type Config struct {
	Timeout      time.Duration
	CacheEnabled bool
	CacheTTL     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      30 * time.Second,
		CacheEnabled: true,
		CacheTTL:     time.Hour,
	}
}
