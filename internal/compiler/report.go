package compiler

import "github.com/fbkclanna/tsrefs/internal/tsconfig"

// UnitResult is the outcome of processing one package or the root aggregate.
type UnitResult struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	// ConfigPath is relative to the repository root.
	ConfigPath string           `json:"config_path"`
	Root       bool             `json:"root,omitempty"`
	Outcome    tsconfig.Outcome `json:"outcome,omitempty"`
	References []string         `json:"references"`
	Added      []string         `json:"added,omitempty"`
}

// Report collects the results of a run in processing order.
type Report struct {
	DryRun bool         `json:"dry_run"`
	Units  []UnitResult `json:"units"`
}

// Count returns the number of units with the given outcome.
func (r *Report) Count(o tsconfig.Outcome) int {
	n := 0
	for _, u := range r.Units {
		if u.Outcome == o {
			n++
		}
	}
	return n
}

// Changed returns the units that were, or would be, rewritten.
func (r *Report) Changed() []UnitResult {
	var out []UnitResult
	for _, u := range r.Units {
		if u.Outcome == tsconfig.OutcomeWritten || u.Outcome == tsconfig.OutcomePending {
			out = append(out, u)
		}
	}
	return out
}
