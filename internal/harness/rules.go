package harness

import "strings"

// IterationRule maps a benchmark-name prefix to the number of primitive
// operations batched inside one timed outer call. Rules are evaluated in
// order; the first match wins.
type IterationRule struct {
	Prefix     string
	Iterations int
}

// DefaultIterationRules carries the per-family batch sizes. Fast operations
// batch more primitive calls per sample to keep each sample's duration above
// clock-resolution noise; expensive scans batch fewer.
var DefaultIterationRules = []IterationRule{
	{Prefix: "literal_match", Iterations: 100},
	{Prefix: "wildcard_match", Iterations: 50},
	{Prefix: "quantifier_", Iterations: 50},
	{Prefix: "range_", Iterations: 50},
	{Prefix: "anchor_", Iterations: 100},
	{Prefix: "alternation_common_prefix", Iterations: 1},
	{Prefix: "alternation_", Iterations: 50},
	{Prefix: "group_", Iterations: 50},
	{Prefix: "match_all_", Iterations: 10},
	{Prefix: "complex_email", Iterations: 2},
	{Prefix: "complex_number", Iterations: 25},
	{Prefix: "simd_", Iterations: 10},
	{Prefix: "literal_prefix_", Iterations: 1},
	{Prefix: "required_literal_", Iterations: 1},
	{Prefix: "no_literal_baseline", Iterations: 1},
}

// InternalIterations resolves the batch size for a benchmark name against
// the default rules. Names matching no rule run one primitive operation per
// outer call.
func InternalIterations(name string) int {
	return internalIterations(name, DefaultIterationRules)
}

func internalIterations(name string, rules []IterationRule) int {
	for _, rule := range rules {
		if strings.HasPrefix(name, rule.Prefix) {
			return rule.Iterations
		}
	}
	return 1
}
