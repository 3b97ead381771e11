// Package logging provides slog attribute helpers and shared key constants
// so log output stays uniform across packages.
package logging
