// Package workload builds the deterministic text corpora used by the
// benchmark suite. Every generator tiles a small literal unit to a target
// length so that two independent runs see byte-identical inputs.
package workload

import "strings"

// Base texts for the literal-optimization benchmarks.
const (
	ShortText = "hello world this is a test with hello again and hello there"
	EmailText = "test@example.com user@test.org admin@example.com support@example.com no-reply@example.com"
)

// MediumText and LongText scale ShortText for prefix-scan benchmarks.
var (
	MediumText = strings.Repeat(ShortText, 10)
	LongText   = strings.Repeat(ShortText, 100)
	EmailLong  = strings.Repeat(EmailText, 5)
)

// Generate returns a string of exactly length bytes built by tiling unit,
// truncating the final repetition to fit. A non-positive length yields the
// empty string.
func Generate(length int, unit string) string {
	if length <= 0 || unit == "" {
		return ""
	}

	unitLen := len(unit)
	fullRepeats := length / unitLen
	remainder := length % unitLen

	var b strings.Builder
	b.Grow(length)
	for i := 0; i < fullRepeats; i++ {
		b.WriteString(unit)
	}
	b.WriteString(unit[:remainder])

	return b.String()
}

// Lowercase returns length bytes of cycling lowercase letters, the default
// corpus for literal and anchor benchmarks.
func Lowercase(length int) string {
	return Generate(length, "abcdefghijklmnopqrstuvwxyz")
}

// MixedContent returns realistic mixed alphanumeric/punctuation text sized
// for character-class heavy scans.
func MixedContent(length int) string {
	return Generate(length, "User123 sent email to user456@domain.com with ID abc789! Status: ACTIVE_2024 (priority=HIGH). ")
}

// DigitHeavy returns text dominated by digit runs.
func DigitHeavy(length int) string {
	return Generate(length, "abc123def456ghi789jkl012mno345pqr678stu901vwx234yz567")
}

// SpaceHeavy returns text dominated by whitespace runs, including tabs and
// newlines.
func SpaceHeavy(length int) string {
	return Generate(length, "word1 \t word2\n\rword3   word4\t\t\nword5 word6")
}

// RangeHeavy returns text mixing lowercase, digits, uppercase, and
// punctuation for character-range benchmarks.
func RangeHeavy(length int) string {
	return Generate(length, "abc123XYZ!@#def456GHI$%^jkl789MNO&*()pqr012STU+={}wxy345VWZ")
}

// NumberText embeds a handful of numeric literals inside filler prose for
// the number-extraction benchmark.
func NumberText() string {
	base := Generate(500, "abc def ghi ")
	return base + " 123 price $456.78 quantity 789 " + base
}

// EmbeddedEmailText surrounds a fixed set of addresses with filler text for
// the email-extraction benchmark.
func EmbeddedEmailText() string {
	base := Generate(100, "abcdefghijklmnopqrstuvwxyz")
	emails := " user@example.com more text john@test.org "
	return base + " " + emails + " " + base + " " + emails + " " + base
}

// PhoneText interleaves a cyclic set of phone-number fragments with filler
// words, for dial-plan style extraction benchmarks.
func PhoneText() string {
	return Generate(4000, "call 555-0123 or (415) 555-0199 fax +1-800-555-0110 ext 42 then ")
}

// StructuredIDText cycles order/ticket style identifiers through separator
// text, for structured-ID extraction benchmarks.
func StructuredIDText() string {
	return Generate(4000, "ref ORD-2024-00187 ship SKU_A9X3 case TCK-55120 rev v2.14.7; ")
}
