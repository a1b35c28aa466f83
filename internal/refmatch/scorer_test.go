package refmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_SelfMatchIsExact(t *testing.T) {
	ref := mustReference(t, "hg38_ucsc", AssemblyGRCh38, SourceUCSC, ucscContigs())
	query := mustQueryHeader(t, ucscContigs())

	result := Score(query, ref, DefaultMatchingConfig())

	assert.Equal(t, 1.0, result.Breakdown.Composite)
	assert.Equal(t, MatchExact, result.MatchType)
	assert.Zero(t, result.Counts[StatusUnmatchedQuery])
	assert.Zero(t, result.Counts[StatusUnmatchedReference])
	assert.Zero(t, result.Counts[StatusConflict])
	assert.Equal(t, 1.0, result.Breakdown.Order)
	assert.Equal(t, ConfidenceExact, result.Confidence)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, SuggestUseAsIs, result.Suggestions[0].Kind)
}

func TestScore_ShuffledSelfMatchIsReordered(t *testing.T) {
	ref := mustReference(t, "hg38_ucsc", AssemblyGRCh38, SourceUCSC, ucscContigs())

	shuffled := ucscContigs()
	shuffled[0], shuffled[1] = shuffled[1], shuffled[0]
	query := mustQueryHeader(t, shuffled)

	result := Score(query, ref, DefaultMatchingConfig())

	assert.Less(t, result.Breakdown.Composite, 1.0)
	assert.Equal(t, MatchReordered, result.MatchType)
	assert.True(t, result.Reordered)
	assert.Less(t, result.Breakdown.Order, 1.0)
}

func TestScore_RenamingInvariance(t *testing.T) {
	ref := mustReference(t, "hg38_ucsc", AssemblyGRCh38, SourceUCSC, ucscContigs())
	query := mustQueryHeader(t, ncbiContigs())

	result := Score(query, ref, DefaultMatchingConfig())

	assert.Equal(t, MatchRenamed, result.MatchType)
	assert.Equal(t, 1.0, result.Breakdown.MD5Jaccard)
	assert.Less(t, result.Breakdown.NameLengthJaccard, 1.0)

	var foundRename bool
	for _, s := range result.Suggestions {
		if s.Kind == SuggestRename {
			foundRename = true
		}
	}
	assert.True(t, foundRename, "expected a Rename suggestion")
}

func TestScore_SubsetDetection(t *testing.T) {
	ref := mustReference(t, "hg38_ucsc", AssemblyGRCh38, SourceUCSC, ucscContigs())
	subset := ucscContigs()[:5]
	query := mustQueryHeader(t, subset)

	result := Score(query, ref, DefaultMatchingConfig())

	assert.Equal(t, MatchSubset, result.MatchType)
	assert.Equal(t, 20, result.Counts[StatusUnmatchedReference])
	assert.Zero(t, result.Counts[StatusUnmatchedQuery])
	assert.Equal(t, 1.0, result.Breakdown.MD5Coverage)
}

func TestScore_MitoConflictDetection(t *testing.T) {
	refContigs := ucscContigs()
	query := mustQueryHeader(t, []Contig{
		{Name: "chrM", Length: 16571}, // old Cambridge, no MD5
	})
	ref := mustReference(t, "hg38_ucsc", AssemblyGRCh38, SourceUCSC, refContigs)

	result := Score(query, ref, DefaultMatchingConfig())

	assert.Equal(t, 1, result.Counts[StatusConflict])

	var found bool
	for _, s := range result.Suggestions {
		if s.Kind == SuggestReplace && s.Reason == "rCRS vs old Cambridge mitochondrial sequence" {
			found = true
		}
	}
	assert.True(t, found, "expected rCRS/Cambridge Replace suggestion")
}

func TestScore_CompositeBoundsAndConfidenceTable(t *testing.T) {
	cfg := DefaultMatchingConfig()
	ref := mustReference(t, "hg38_ucsc", AssemblyGRCh38, SourceUCSC, ucscContigs())

	fixtures := [][]Contig{
		ucscContigs(),
		ucscContigs()[:1],
		{{Name: "unrelated", Length: 42}},
		ncbiContigs()[:10],
	}
	for _, contigs := range fixtures {
		query := mustQueryHeader(t, contigs)
		result := Score(query, ref, cfg)

		assert.GreaterOrEqual(t, result.Breakdown.Composite, 0.0)
		assert.LessOrEqual(t, result.Breakdown.Composite, 1.0)

		switch {
		case result.Breakdown.Composite >= 1.0:
			assert.Equal(t, ConfidenceExact, result.Confidence)
		case result.Breakdown.Composite >= 0.95:
			assert.Equal(t, ConfidenceHigh, result.Confidence)
		case result.Breakdown.Composite >= 0.80:
			assert.Equal(t, ConfidenceMedium, result.Confidence)
		default:
			assert.Equal(t, ConfidenceLow, result.Confidence)
		}
	}
}

func TestScore_NoMD5sStillExactByNameLength(t *testing.T) {
	ref := mustReference(t, "hg38_ucsc", AssemblyGRCh38, SourceUCSC, ucscContigs())

	noMD5 := ucscContigs()
	for i := range noMD5 {
		noMD5[i].MD5 = ""
	}
	query := mustQueryHeader(t, noMD5)

	result := Score(query, ref, DefaultMatchingConfig())

	assert.Equal(t, MatchExact, result.MatchType)
	assert.LessOrEqual(t, result.Breakdown.Composite, 1.0)
}

func TestScore_SelfMatchWithNoMD5AnywhereIsStillExact(t *testing.T) {
	noMD5 := ucscContigs()
	for i := range noMD5 {
		noMD5[i].MD5 = ""
	}
	ref := mustReference(t, "hg38_ucsc", AssemblyGRCh38, SourceUCSC, noMD5)
	query := mustQueryHeader(t, noMD5)

	result := Score(query, ref, DefaultMatchingConfig())

	assert.Equal(t, 1.0, result.Breakdown.Composite)
	assert.Equal(t, MatchExact, result.MatchType)
}

func TestScore_Determinism(t *testing.T) {
	ref := mustReference(t, "hg38_ucsc", AssemblyGRCh38, SourceUCSC, ucscContigs())
	query := mustQueryHeader(t, ncbiContigs())
	cfg := DefaultMatchingConfig()

	first := Score(query, ref, cfg)
	second := Score(query, ref, cfg)

	assert.Equal(t, first.Breakdown, second.Breakdown)
	assert.Equal(t, first.MatchType, second.MatchType)
	assert.Equal(t, first.Counts, second.Counts)
}

func TestScore_Monotonicity(t *testing.T) {
	ref := mustReference(t, "hg38_ucsc", AssemblyGRCh38, SourceUCSC, ucscContigs())
	cfg := DefaultMatchingConfig()

	small := mustQueryHeader(t, ucscContigs()[:3])
	larger := mustQueryHeader(t, ucscContigs()[:4])

	smallResult := Score(small, ref, cfg)
	largerResult := Score(larger, ref, cfg)

	assert.GreaterOrEqual(t, largerResult.Breakdown.Composite, smallResult.Breakdown.Composite)
}

func TestClassifyMatchType_Table(t *testing.T) {
	tests := []struct {
		name        string
		counts      map[ContigMatchStatus]int
		order       float64
		pairedQuery int
		largerSide  int
		want        MatchType
	}{
		{"exact", map[ContigMatchStatus]int{}, 1.0, 5, 5, MatchExact},
		{"renamed", map[ContigMatchStatus]int{StatusRenamed: 2}, 1.0, 5, 5, MatchRenamed},
		{"reordered", map[ContigMatchStatus]int{}, 0.8, 5, 5, MatchReordered},
		{"subset", map[ContigMatchStatus]int{StatusUnmatchedReference: 3}, 1.0, 5, 8, MatchSubset},
		{"superset", map[ContigMatchStatus]int{StatusUnmatchedQuery: 2}, 1.0, 5, 7, MatchSuperset},
		{"partial", map[ContigMatchStatus]int{StatusUnmatchedQuery: 1, StatusUnmatchedReference: 1}, 1.0, 5, 6, MatchPartial},
		{"nomatch-low-overlap", map[ContigMatchStatus]int{StatusUnmatchedQuery: 8, StatusUnmatchedReference: 8}, 1.0, 2, 10, MatchNoMatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyMatchType(tc.counts, tc.order, tc.pairedQuery, tc.largerSide)
			assert.Equal(t, tc.want, got)
		})
	}
}
