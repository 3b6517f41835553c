// Package viz groups benchmark names into semantic buckets and renders
// comparative charts from comparator output. It never recomputes
// statistics; every value plotted comes from the comparison artifact.
package viz

import (
	"strings"

	"rexbench/internal/compare"
)

// CategoryRule assigns a category label to benchmark names containing a
// substring. Rules are evaluated top to bottom; the first match wins.
type CategoryRule struct {
	Substring string
	Label     string
}

// DefaultCategoryRules buckets the curated suite by regex feature family.
var DefaultCategoryRules = []CategoryRule{
	{Substring: "literal_match", Label: "Literal Matching"},
	{Substring: "range_", Label: "Character Classes"},
	{Substring: "char_class", Label: "Character Classes"},
	{Substring: "quantifier", Label: "Quantifiers"},
	{Substring: "wildcard", Label: "Quantifiers"},
	{Substring: "anchor", Label: "Anchors"},
	{Substring: "alternation", Label: "Alternation"},
	{Substring: "group", Label: "Groups"},
	{Substring: "complex", Label: "Complex Patterns"},
	{Substring: "simd", Label: "SIMD Optimized"},
	{Substring: "literal_prefix", Label: "Literal Optimization"},
	{Substring: "required_literal", Label: "Literal Optimization"},
}

// FallbackCategoryRules catches the exhaustive-match style names that the
// primary rules miss. Names matching neither list are excluded from
// category aggregation.
var FallbackCategoryRules = []CategoryRule{
	{Substring: "match_all", Label: "Quantifiers"},
}

// Category is an ephemeral aggregation of the speedups of its members.
type Category struct {
	Label    string
	Speedups []float64
}

// Mean returns the arithmetic mean speedup of the category's members.
func (c Category) Mean() float64 {
	if len(c.Speedups) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range c.Speedups {
		sum += s
	}
	return sum / float64(len(c.Speedups))
}

func categoryFor(name string) (string, bool) {
	for _, rule := range DefaultCategoryRules {
		if strings.Contains(name, rule.Substring) {
			return rule.Label, true
		}
	}
	for _, rule := range FallbackCategoryRules {
		if strings.Contains(name, rule.Substring) {
			return rule.Label, true
		}
	}
	return "", false
}

// Categorize buckets comparison entries, preserving the rule declaration
// order of the labels and dropping empty categories. Uncategorizable names
// are skipped, not errors.
func Categorize(entries []compare.Entry) []Category {
	order := make([]string, 0, len(DefaultCategoryRules)+len(FallbackCategoryRules))
	seen := make(map[string]int)
	for _, rule := range DefaultCategoryRules {
		if _, ok := seen[rule.Label]; !ok {
			seen[rule.Label] = len(order)
			order = append(order, rule.Label)
		}
	}
	for _, rule := range FallbackCategoryRules {
		if _, ok := seen[rule.Label]; !ok {
			seen[rule.Label] = len(order)
			order = append(order, rule.Label)
		}
	}

	buckets := make(map[string][]float64)
	for _, e := range entries {
		label, ok := categoryFor(e.Name)
		if !ok {
			continue
		}
		buckets[label] = append(buckets[label], float64(e.Speedup))
	}

	var categories []Category
	for _, label := range order {
		if speedups, ok := buckets[label]; ok {
			categories = append(categories, Category{Label: label, Speedups: speedups})
		}
	}
	return categories
}
