package refmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchingConfig_ValidateDefaults(t *testing.T) {
	require.NoError(t, DefaultMatchingConfig().Validate())
}

func TestMatchingConfig_RejectsNegativeWeight(t *testing.T) {
	cfg := DefaultMatchingConfig()
	cfg.WeightOrder = -0.1
	err := cfg.Validate()
	require.Error(t, err)
	var invalid *ConfigInvalidError
	assert.ErrorAs(t, err, &invalid)
}

func TestMatchingConfig_RejectsNonPositiveMaxCandidates(t *testing.T) {
	cfg := DefaultMatchingConfig()
	cfg.MaxCandidates = 0
	require.Error(t, cfg.Validate())
}

func TestMatchingConfig_RejectsThresholdOutOfRange(t *testing.T) {
	cfg := DefaultMatchingConfig()
	cfg.ScoreThreshold = 1.5
	require.Error(t, cfg.Validate())

	cfg.ScoreThreshold = -0.1
	require.Error(t, cfg.Validate())
}

func TestMatchingConfig_RejectsAllZeroWeights(t *testing.T) {
	cfg := MatchingConfig{MaxCandidates: 1, ScoreThreshold: 0}
	require.Error(t, cfg.Validate())
}
