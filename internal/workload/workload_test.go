package workload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateLength(t *testing.T) {
	cases := []struct {
		length int
		unit   string
	}{
		{0, "abc"},
		{1, "abc"},
		{3, "abc"},
		{10, "abc"},
		{1000, "abcdefghijklmnopqrstuvwxyz"},
		{26, "abcdefghijklmnopqrstuvwxyz"},
		{27, "abcdefghijklmnopqrstuvwxyz"},
	}

	for _, tc := range cases {
		got := Generate(tc.length, tc.unit)
		assert.Len(t, got, tc.length, "Generate(%d, %q)", tc.length, tc.unit)
	}
}

func TestGenerateEmptyAndNegative(t *testing.T) {
	assert.Equal(t, "", Generate(0, "abc"))
	assert.Equal(t, "", Generate(-5, "abc"))
}

func TestGenerateStartsWithUnit(t *testing.T) {
	unit := "abc123XYZ"
	got := Generate(100, unit)
	assert.True(t, strings.HasPrefix(got, unit))
}

func TestGenerateTruncatesFinalRepetition(t *testing.T) {
	assert.Equal(t, "abcab", Generate(5, "abc"))
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(12345, "abc123XYZ")
	b := Generate(12345, "abc123XYZ")
	assert.Equal(t, a, b)
}

func TestCorporaLengthsAndDeterminism(t *testing.T) {
	gens := map[string]func(int) string{
		"mixed": MixedContent,
		"digit": DigitHeavy,
		"space": SpaceHeavy,
		"range": RangeHeavy,
	}

	for name, gen := range gens {
		assert.Len(t, gen(10000), 10000, name)
		assert.Equal(t, gen(5000), gen(5000), name)
		assert.Equal(t, "", gen(0), name)
	}
}

func TestScaledTexts(t *testing.T) {
	assert.Len(t, MediumText, len(ShortText)*10)
	assert.Len(t, LongText, len(ShortText)*100)
	assert.Len(t, EmailLong, len(EmailText)*5)
}

func TestDomainCorpora(t *testing.T) {
	assert.Contains(t, PhoneText(), "555-0123")
	assert.Contains(t, StructuredIDText(), "ORD-2024-00187")
	assert.Contains(t, NumberText(), "$456.78")
	assert.Contains(t, EmbeddedEmailText(), "user@example.com")

	// Deterministic across calls.
	assert.Equal(t, PhoneText(), PhoneText())
	assert.Equal(t, StructuredIDText(), StructuredIDText())
}
