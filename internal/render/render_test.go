package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/refgenome-id/refgenome-id/internal/refmatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults(t *testing.T) []*refmatch.MatchResult {
	t.Helper()
	ref, err := refmatch.NewKnownReference("hg38_ucsc", "UCSC hg38", refmatch.AssemblyGRCh38, refmatch.SourceUCSC,
		[]refmatch.Contig{{Name: "chr1", Length: 248956422, MD5: "2648ae1bacce4ec4b6cf337dcae37816"}},
		"", "")
	require.NoError(t, err)
	return []*refmatch.MatchResult{
		{
			Reference:  ref,
			MatchType:  refmatch.MatchExact,
			Confidence: refmatch.ConfidenceExact,
			Breakdown:  refmatch.ScoreBreakdown{MD5Jaccard: 1, NameLengthJaccard: 1, MD5Coverage: 1, Order: 1, Composite: 1},
			Counts:     map[refmatch.ContigMatchStatus]int{refmatch.StatusExact: 1},
			Suggestions: []refmatch.Suggestion{
				{Kind: refmatch.SuggestUseAsIs},
			},
			ContigDetails: []refmatch.ContigPairing{
				{QueryName: "chr1", ReferenceName: "chr1", Status: refmatch.StatusExact},
			},
		},
	}
}

func TestTextWriter_WritesSummary(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTextWriter(&buf, false)
	require.NoError(t, tw.Write(sampleResults(t)))
	require.NoError(t, tw.Flush())

	out := buf.String()
	assert.Contains(t, out, "UCSC hg38")
	assert.Contains(t, out, "Exact")
	assert.NotContains(t, out, "chr1                 chr1")
}

func TestTextWriter_ExplainIncludesContigDetail(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTextWriter(&buf, true)
	require.NoError(t, tw.Write(sampleResults(t)))
	require.NoError(t, tw.Flush())

	assert.Contains(t, buf.String(), "chr1")
}

func TestTextWriter_EmptyResults(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTextWriter(&buf, false)
	require.NoError(t, tw.Write(nil))
	require.NoError(t, tw.Flush())
	assert.Contains(t, buf.String(), "no candidate")
}

func TestWriteJSON_OmitsContigDetailsByDefault(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResults(t), false))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "hg38_ucsc", decoded[0]["reference_id"])
	_, hasDetails := decoded[0]["contig_details"]
	assert.False(t, hasDetails)
}

func TestWriteJSON_IncludesContigDetailsWhenExplain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResults(t), true))
	assert.Contains(t, buf.String(), "contig_details")
}

func TestWriteTSV_OneRowPerResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, sampleResults(t)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "reference_id")
	assert.Contains(t, lines[1], "hg38_ucsc")
}
