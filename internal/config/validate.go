package config

import (
	"fmt"
	"strings"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// validate checks the config for internal consistency and returns a
// ValidationError if any checks fail. All checks run — errors are
// collected, not short-circuited.
func validate(cfg *Config) error {
	var errs []string

	if cfg.Server.Command == "" {
		errs = append(errs, "server.command must not be empty")
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port %d must be in 1..65535", cfg.Server.Port))
	}
	if !strings.HasSuffix(cfg.Server.Protocol, "://") {
		errs = append(errs, fmt.Sprintf("server.protocol %q must end with %q", cfg.Server.Protocol, "://"))
	}

	if cfg.Watch.DebounceMs < 0 {
		errs = append(errs, "watch.debounce_ms must not be negative")
	}
	if len(cfg.Watch.Paths) == 0 {
		errs = append(errs, "watch.paths must not be empty")
	}

	seen := make(map[string]bool)
	for i, w := range cfg.Workers {
		if w.ID == "" {
			errs = append(errs, fmt.Sprintf("workers[%d] is missing an id", i))
			continue
		}
		if seen[w.ID] {
			errs = append(errs, fmt.Sprintf("worker id %q appears more than once", w.ID))
		}
		seen[w.ID] = true
		if w.Command == "" {
			errs = append(errs, fmt.Sprintf("worker %q is missing a command", w.ID))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
