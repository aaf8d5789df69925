package dash

import "strings"

// Suppressor reports whether a worker's accumulated output should be
// hidden from the dashboard. Suppression is presentation only: the
// output keeps accumulating in the model either way.
type Suppressor func(output string) bool

// SuppressContains builds a Suppressor that hides output containing any
// of the given substrings, typically the "no issues" sentinel of a tool
// whose output is noise when everything passes.
func SuppressContains(substrs ...string) Suppressor {
	return func(output string) bool {
		for _, s := range substrs {
			if s != "" && strings.Contains(output, s) {
				return true
			}
		}
		return false
	}
}

// DefaultSuppressors knows the zero-error sentinels of stock workers.
// Config-supplied patterns extend or replace these per worker id.
func DefaultSuppressors() map[string]Suppressor {
	return map[string]Suppressor{
		"tsc": SuppressContains("Found 0 errors"),
	}
}
