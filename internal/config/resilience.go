package config

import (
	"time"

	"github.com/robertgryska01/pro8link/internal/retry"
)

// ResilienceConfig groups retry settings per concern. The sync core itself
// never retries; these presets are applied by callers (the background resync
// loop and the Apps Script trigger path).
type ResilienceConfig struct {
	ResyncLoop    retry.Config
	ScriptTrigger retry.Config
}

var DefaultResilienceConfig = ResilienceConfig{
	ResyncLoop: retry.Config{
		MaxRetries: 3,
		BaseDelay:  5 * time.Second,
		MaxDelay:   60 * time.Second,
		Timeout:    60 * time.Second,
	},
	ScriptTrigger: retry.Config{
		MaxRetries: 2,
		BaseDelay:  2 * time.Second,
		MaxDelay:   30 * time.Second,
		Timeout:    30 * time.Second,
	},
}
