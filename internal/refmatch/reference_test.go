package refmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKnownReference_RejectsNonPositiveLength(t *testing.T) {
	_, err := NewKnownReference("bad", "bad", AssemblyOther, SourceOther,
		[]Contig{{Name: "chr1", Length: 0}}, "", "")
	require.Error(t, err)
	var invalid *InvalidCatalogError
	assert.ErrorAs(t, err, &invalid)
}

func TestNewKnownReference_RejectsMalformedMD5(t *testing.T) {
	_, err := NewKnownReference("bad", "bad", AssemblyOther, SourceOther,
		[]Contig{{Name: "chr1", Length: 100, MD5: "not-a-valid-md5"}}, "", "")
	require.Error(t, err)
}

func TestNewKnownReference_RejectsAliasEqualToName(t *testing.T) {
	_, err := NewKnownReference("bad", "bad", AssemblyOther, SourceOther,
		[]Contig{{Name: "chr1", Length: 100, Aliases: []string{"chr1"}}}, "", "")
	require.Error(t, err)
}

func TestNewKnownReference_ComputesSignatureAndKeys(t *testing.T) {
	ref := mustReference(t, "hg38_ucsc", AssemblyGRCh38, SourceUCSC, ucscContigs())
	assert.Len(t, ref.Signature(), 25)
	assert.True(t, ref.HasCompleteMD5Coverage())
	_, ok := ref.NameLengthKeys()[NameLengthKey{Name: "chr1", Length: chromLengths["chr1"]}]
	assert.True(t, ok)
}

func TestValidateCatalogEntry_DuplicateName(t *testing.T) {
	ref := mustReference(t, "ok", AssemblyOther, SourceOther, []Contig{{Name: "chr1", Length: 100}})
	ref.Contigs = append(ref.Contigs, Contig{Name: "chr1", Length: 200})

	err := ValidateCatalogEntry(ref)
	require.Error(t, err)
	var invalid *InvalidCatalogError
	assert.ErrorAs(t, err, &invalid)
}

func TestNewQueryHeader_RejectsDuplicateNames(t *testing.T) {
	_, err := NewQueryHeader([]Contig{
		{Name: "chr1", Length: 100},
		{Name: "chr1", Length: 200},
	})
	require.Error(t, err)
	var invalid *InvalidQueryHeaderError
	assert.ErrorAs(t, err, &invalid)
}

func TestNewQueryHeader_EmptyIsValid(t *testing.T) {
	q, err := NewQueryHeader(nil)
	require.NoError(t, err)
	assert.Empty(t, q.Contigs)
	assert.Empty(t, q.Signature())
}
