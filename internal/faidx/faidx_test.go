package faidx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFai(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.fa.fai")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParse_ReadsNameAndLength(t *testing.T) {
	body := "chr1\t248956422\t6\t60\t61\n" +
		"chr2\t242193529\t252513167\t60\t61\n"
	path := writeFai(t, body)

	contigs, err := NewParser(path).Parse()
	require.NoError(t, err)
	require.Len(t, contigs, 2)
	assert.Equal(t, "chr1", contigs[0].Name)
	assert.Equal(t, int64(248956422), contigs[0].Length)
	assert.Empty(t, contigs[0].MD5)
	assert.Equal(t, "chr2", contigs[1].Name)
}

func TestParse_TooFewColumnsIsError(t *testing.T) {
	path := writeFai(t, "chr1\n")
	_, err := NewParser(path).Parse()
	assert.Error(t, err)
}

func TestParse_InvalidLengthIsError(t *testing.T) {
	path := writeFai(t, "chr1\tnotanumber\t6\t60\t61\n")
	_, err := NewParser(path).Parse()
	assert.Error(t, err)
}

func TestParse_MissingFileIsError(t *testing.T) {
	_, err := NewParser("/nonexistent/path.fai").Parse()
	assert.Error(t, err)
}
