package engineconfig

import (
	"fmt"
	"strconv"
	"time"
)

// EnvPrefix namespaces the variables ApplyEnv reads.
const EnvPrefix = "TOYBOX_"

// ApplyEnv overrides fields from TOYBOX_* variables. lookup is usually os.LookupEnv.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	var firstErr error
	num := func(name string, dst *float64) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			return
		}
		*dst = f
	}
	integer := func(name string, dst *int) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			return
		}
		*dst = n
	}

	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FILE", &cfg.Log.File)
	str("STORAGE_DIR", &cfg.Storage.Dir)
	str("METRICS_ADDR", &cfg.Metrics.Addr)
	integer("WINDOW_WIDTH", &cfg.Window.Width)
	integer("WINDOW_HEIGHT", &cfg.Window.Height)
	integer("FPS", &cfg.Window.FPS)
	num("LAUNCH_SCALE", &cfg.Sandbox.LaunchScale)
	num("TIME_SCALE", &cfg.Orbit.TimeScale)
	if v, ok := lookup(EnvPrefix + "LIFE_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%sLIFE_INTERVAL: %w", EnvPrefix, err)
		} else if err == nil {
			cfg.Life.Interval = d
		}
	}
	return firstErr
}
