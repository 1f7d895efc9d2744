package indicator

import "github.com/evdnx/gocycle/config"

// Re-export config defaults and types so callers need only this package.
type CycleConfig = config.CycleConfig

const (
	DefaultFastLimit    = config.DefaultFastLimit
	DefaultSlowLimit    = config.DefaultSlowLimit
	DefaultWarmupBars   = config.DefaultWarmupBars
	DefaultMaxDCPeriod  = config.DefaultMaxDCPeriod
	DefaultHistoryLimit = config.DefaultHistoryLimit
)

func DefaultConfig() CycleConfig {
	return config.DefaultConfig()
}
