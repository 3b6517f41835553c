package engine

import "rexbench/internal/workload"

// Case is one benchmark scenario: a pattern, a text, and the operation to
// time. RequireMatch marks cases where a zero hit count means the probe is
// broken rather than the input being a legitimate non-match.
type Case struct {
	Name         string
	Op           Op
	Pattern      string
	Text         string
	RequireMatch bool
}

// Suite returns the curated benchmark workload. Texts are built once here
// so every engine measures byte-identical inputs.
func Suite() []Case {
	text1000 := workload.Lowercase(1000)
	text10000 := workload.Lowercase(10000)
	textRange1000 := workload.RangeHeavy(1000)
	textGroup1000 := workload.Generate(1000, "abcabcabc")

	literalShort := text1000 + " hello world" + text1000
	literalLong := text10000 + " hello world" + text1000

	mixedLarge := workload.MixedContent(10000)
	mixedXLarge := workload.MixedContent(50000)
	digitLarge := workload.DigitHeavy(10000)
	digitXLarge := workload.DigitHeavy(50000)
	spaceLarge := workload.SpaceHeavy(10000)
	spaceXLarge := workload.SpaceHeavy(50000)

	return []Case{
		// Basic literal matching.
		{Name: "literal_match_short", Op: OpSearch, Pattern: "hello", Text: literalShort, RequireMatch: true},
		{Name: "literal_match_long", Op: OpSearch, Pattern: "hello", Text: literalLong, RequireMatch: true},

		// Wildcards and quantifiers, anchored at the start of the text.
		{Name: "wildcard_match_any", Op: OpMatchAt, Pattern: ".*", Text: text1000, RequireMatch: true},
		{Name: "quantifier_zero_or_more", Op: OpMatchAt, Pattern: "a*", Text: text1000, RequireMatch: true},
		{Name: "quantifier_one_or_more", Op: OpMatchAt, Pattern: "a+", Text: text1000, RequireMatch: true},
		{Name: "quantifier_zero_or_one", Op: OpMatchAt, Pattern: "a?", Text: text1000, RequireMatch: true},

		// Character ranges. The text starts with lowercase letters, so only
		// the lowercase case is guaranteed a match at position zero.
		{Name: "range_lowercase", Op: OpMatchAt, Pattern: "[a-z]+", Text: textRange1000, RequireMatch: true},
		{Name: "range_digits", Op: OpMatchAt, Pattern: "[0-9]+", Text: textRange1000},
		{Name: "range_alphanumeric", Op: OpMatchAt, Pattern: "[a-zA-Z0-9]+", Text: textRange1000, RequireMatch: true},

		// Anchors. The generated text does not end in "xyz".
		{Name: "anchor_start", Op: OpMatchAt, Pattern: "^abc", Text: text1000, RequireMatch: true},
		{Name: "anchor_end", Op: OpMatchAt, Pattern: "xyz$", Text: text1000},

		// Alternation.
		{Name: "alternation_simple", Op: OpSearch, Pattern: "a|b|c", Text: text1000, RequireMatch: true},
		{Name: "alternation_words", Op: OpSearch, Pattern: "abc|def|ghi", Text: text1000, RequireMatch: true},

		// Groups.
		{Name: "group_quantified", Op: OpSearch, Pattern: "(abc)+", Text: textGroup1000, RequireMatch: true},
		{Name: "group_alternation", Op: OpSearch, Pattern: "(a|b)*", Text: textGroup1000, RequireMatch: true},

		// Global matching.
		{Name: "match_all_simple", Op: OpFindAll, Pattern: "a", Text: text1000, RequireMatch: true},
		{Name: "match_all_pattern", Op: OpFindAll, Pattern: "[a-z]+", Text: text1000, RequireMatch: true},

		// Complex real-world patterns.
		{Name: "complex_email_extraction", Op: OpFindAll, Pattern: `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`, Text: workload.EmbeddedEmailText(), RequireMatch: true},
		{Name: "complex_number_extraction", Op: OpFindAll, Pattern: `\d+\.?\d*`, Text: workload.NumberText(), RequireMatch: true},
		{Name: "complex_phone_extraction", Op: OpFindAll, Pattern: `\(?\d{3}\)?[ -]?\d{3,4}[- ]?\d{4}`, Text: workload.PhoneText(), RequireMatch: true},
		{Name: "complex_id_extraction", Op: OpFindAll, Pattern: `[A-Z]{3}[-_][0-9A-Z]{4,}`, Text: workload.StructuredIDText(), RequireMatch: true},

		// Character-class heavy scans over large mixed content.
		{Name: "simd_alphanumeric_large", Op: OpMatchAt, Pattern: "[a-zA-Z0-9]+", Text: mixedLarge, RequireMatch: true},
		{Name: "simd_alphanumeric_xlarge", Op: OpMatchAt, Pattern: "[a-zA-Z0-9]+", Text: mixedXLarge, RequireMatch: true},
		{Name: "simd_negated_alphanumeric", Op: OpMatchAt, Pattern: "[^a-zA-Z0-9]+", Text: mixedLarge},
		{Name: "simd_multi_char_class", Op: OpMatchAt, Pattern: "[a-z]+[0-9]+", Text: mixedLarge},
		{Name: "simd_digits_large", Op: OpFindAll, Pattern: "[0-9]+", Text: digitLarge, RequireMatch: true},
		{Name: "simd_digits_xlarge", Op: OpFindAll, Pattern: "[0-9]+", Text: digitXLarge, RequireMatch: true},
		{Name: "simd_whitespace_large", Op: OpFindAll, Pattern: `\s+`, Text: spaceLarge, RequireMatch: true},
		{Name: "simd_whitespace_xlarge", Op: OpFindAll, Pattern: `\s+`, Text: spaceXLarge, RequireMatch: true},
		{Name: "simd_quantified_range", Op: OpFindAll, Pattern: "[0-9]{2,4}", Text: workload.RangeHeavy(10000), RequireMatch: true},

		// Literal-optimization scans.
		{Name: "literal_prefix_short", Op: OpFindAll, Pattern: "hello.*world", Text: workload.ShortText, RequireMatch: true},
		{Name: "literal_prefix_medium", Op: OpFindAll, Pattern: "hello.*", Text: workload.MediumText, RequireMatch: true},
		{Name: "literal_prefix_long", Op: OpFindAll, Pattern: "hello.*", Text: workload.LongText, RequireMatch: true},
		{Name: "required_literal_short", Op: OpFindAll, Pattern: `.*@example\.com`, Text: workload.EmailText, RequireMatch: true},
		{Name: "required_literal_long", Op: OpFindAll, Pattern: `.*@example\.com`, Text: workload.EmailLong, RequireMatch: true},
		{Name: "no_literal_baseline", Op: OpFindAll, Pattern: "[a-z]+", Text: workload.MediumText, RequireMatch: true},
		{Name: "alternation_common_prefix", Op: OpFindAll, Pattern: "(hello|help|helicopter)", Text: workload.MediumText, RequireMatch: true},
	}
}
