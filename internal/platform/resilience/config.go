package resilience

import "time"

type BreakerConfig struct {
	Enabled     bool
	MaxFailures int
	Cooldown    time.Duration
	ProbeLimit  int
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:     true,
		MaxFailures: 5,
		Cooldown:    15 * time.Second,
		ProbeLimit:  2,
	}
}

func NormalizeBreakerConfig(cfg BreakerConfig) BreakerConfig {
	defaults := DefaultBreakerConfig()
	if cfg.MaxFailures < 1 {
		cfg.MaxFailures = defaults.MaxFailures
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = defaults.Cooldown
	}
	if cfg.ProbeLimit < 1 {
		cfg.ProbeLimit = defaults.ProbeLimit
	}
	return cfg
}
