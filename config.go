package luapattern

import "fmt"

// EngineConfig controls the match engine's optional, non-semantic
// tunables. Everything here affects performance or defense-in-depth
// only; no EngineConfig field changes what a well-formed pattern
// matches.
//
// Example:
//
//	cfg := luapattern.DefaultEngineConfig()
//	cfg.StepBudget = 1_000_000 // abort pathological patterns early
//	p, err := luapattern.CompilePatternWithConfig([]byte(`(a*)*b`), cfg)
type EngineConfig struct {
	// EnablePrefilter turns on the leading-byte/leading-class prefilter
	// (package prefilter) ahead of the top-level start-position loop.
	// Default: true.
	EnablePrefilter bool

	// StepBudget caps the number of recursive match steps the engine may
	// take at any one start position before it gives up with
	// engine.ErrStepBudgetExceeded (which Pattern.Match raises as a panic);
	// the count starts again at each start position tried.
	// This is a cooperative guard rail, not preemption: a pathological
	// pattern still runs to its own completion inside whatever step it
	// is on when the budget is checked. Zero means unbounded, matching
	// the engine's default "caller's responsibility" cancellation
	// posture.
	// Default: 0 (unbounded).
	StepBudget int
}

// DefaultEngineConfig returns the default tuning: prefilter enabled, no
// step budget.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		EnablePrefilter: true,
		StepBudget:      0,
	}
}

// ConfigError reports an invalid EngineConfig field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("luapattern: invalid config field %s: %s", e.Field, e.Message)
}

// Validate checks that c's fields are in range. StepBudget must be
// non-negative; EnablePrefilter has no invalid value.
func (c EngineConfig) Validate() error {
	if c.StepBudget < 0 {
		return &ConfigError{Field: "StepBudget", Message: "must be >= 0"}
	}
	return nil
}
