package embedded

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DecodesThreeReferences(t *testing.T) {
	refs, err := Load()
	require.NoError(t, err)
	require.Len(t, refs, 3)

	ids := make(map[string]bool)
	for _, r := range refs {
		ids[r.ID] = true
		assert.True(t, r.HasCompleteMD5Coverage(), "starter catalog entry %s should carry MD5 for every contig", r.ID)
	}
	assert.True(t, ids["hg38_ucsc"])
	assert.True(t, ids["hg19_ucsc"])
	assert.True(t, ids["t2t_chm13"])
}

func TestMustLoad_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		refs := MustLoad()
		assert.NotEmpty(t, refs)
	})
}
