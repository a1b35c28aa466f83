package tsvheader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTSV(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.tsv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParse_NameLengthOnly(t *testing.T) {
	path := writeTSV(t, "chr1\t248956422\nchr2\t242193529\n")
	contigs, err := NewParser(path).Parse()
	require.NoError(t, err)
	require.Len(t, contigs, 2)
	assert.Equal(t, "chr1", contigs[0].Name)
	assert.Equal(t, int64(248956422), contigs[0].Length)
	assert.Empty(t, contigs[0].MD5)
}

func TestParse_WithMD5Column(t *testing.T) {
	path := writeTSV(t, "chr1\t248956422\t2648AE1BACCE4EC4B6CF337DCAE37816\n")
	contigs, err := NewParser(path).Parse()
	require.NoError(t, err)
	require.Len(t, contigs, 1)
	assert.Equal(t, "2648ae1bacce4ec4b6cf337dcae37816", contigs[0].MD5)
}

func TestParse_CSVWithHeaderRow(t *testing.T) {
	path := writeTSV(t, "name,length,md5\nchr1,248956422,2648ae1bacce4ec4b6cf337dcae37816\n")
	contigs, err := NewParser(path, WithDelimiter(','), WithHeaderRow()).Parse()
	require.NoError(t, err)
	require.Len(t, contigs, 1)
	assert.Equal(t, "chr1", contigs[0].Name)
	assert.Equal(t, int64(248956422), contigs[0].Length)
}

func TestParse_TooFewFieldsIsError(t *testing.T) {
	path := writeTSV(t, "chr1\n")
	_, err := NewParser(path).Parse()
	assert.Error(t, err)
}

func TestParse_InvalidLengthIsError(t *testing.T) {
	path := writeTSV(t, "chr1\tnope\n")
	_, err := NewParser(path).Parse()
	assert.Error(t, err)
}

func TestParse_SkipsBlankLines(t *testing.T) {
	path := writeTSV(t, "chr1\t100\n\nchr2\t200\n")
	contigs, err := NewParser(path).Parse()
	require.NoError(t, err)
	require.Len(t, contigs, 2)
}
