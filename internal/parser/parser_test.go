package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `
=== Benchmark Results ===
| name                      | met (ms)              | iters  |
|---------------------------|-----------------------|--------|
| literal_match_short       |   0.00001621246337890 |   8300 |
| anchor_start              |   0.00000042199999999 | 100000 |

some unrelated log line
| match_all_simple          |   0.01250000000000000 |  12000 |
`

func TestParseReportExtractsDataLines(t *testing.T) {
	records, err := ParseReport(strings.NewReader(sampleReport))
	require.NoError(t, err)
	require.Len(t, records, 3)

	rec := records["literal_match_short"]
	assert.InDelta(t, 0.00001621246337890, rec.TimeMs, 1e-18)
	assert.InDelta(t, 16.2124633789, rec.TimeNs, 1e-9)
	assert.Equal(t, int64(8300), rec.Iterations)

	assert.Contains(t, records, "anchor_start")
	assert.Contains(t, records, "match_all_simple")
}

func TestParseReportIgnoresHeadersAndSeparators(t *testing.T) {
	input := `| name | met (ms) | iters |
|------|----------|-------|
| only_one | 2.5 | 10 |`

	records, err := ParseReport(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.InDelta(t, 2.5, records["only_one"].TimeMs, 1e-12)
	assert.InDelta(t, 2_500_000.0, records["only_one"].TimeNs, 1e-6)
}

func TestParseReportArbitraryWhitespace(t *testing.T) {
	input := "   |   padded_name   |   1.5   |   42   |   trailing junk"
	records, err := ParseReport(strings.NewReader(input))
	require.NoError(t, err)
	require.Contains(t, records, "padded_name")
	assert.Equal(t, int64(42), records["padded_name"].Iterations)
}

func TestParseReportZeroRecordsIsWarning(t *testing.T) {
	records, err := ParseReport(strings.NewReader("just some logs\nnothing tabular here\n"))
	assert.ErrorIs(t, err, ErrNoRecords)
	assert.Empty(t, records)
}

func TestParseReportEmptyInput(t *testing.T) {
	records, err := ParseReport(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseToResultSetTagsEngine(t *testing.T) {
	rs, err := ParseToResultSet(strings.NewReader(sampleReport), "regexp2")
	require.NoError(t, err)
	assert.Equal(t, "regexp2", rs.Engine)
	assert.NotEmpty(t, rs.Timestamp)
	assert.Len(t, rs.Results, 3)
}

func TestParseToResultSetPropagatesWarning(t *testing.T) {
	rs, err := ParseToResultSet(strings.NewReader("noise only\n"), "regexp2")
	assert.ErrorIs(t, err, ErrNoRecords)
	require.NotNil(t, rs)
	assert.Empty(t, rs.Results)
}
