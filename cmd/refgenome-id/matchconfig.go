package main

import (
	"github.com/spf13/viper"

	"github.com/refgenome-id/refgenome-id/internal/refmatch"
)

// loadMatchingConfig builds a MatchingConfig from viper settings,
// falling back to refmatch.DefaultMatchingConfig for any key the user
// never set (config file, environment, or `config set`).
func loadMatchingConfig() (refmatch.MatchingConfig, error) {
	cfg := refmatch.DefaultMatchingConfig()

	if viper.IsSet("matching.weight_md5_jaccard") {
		cfg.WeightMD5Jaccard = viper.GetFloat64("matching.weight_md5_jaccard")
	}
	if viper.IsSet("matching.weight_name_length") {
		cfg.WeightNameLength = viper.GetFloat64("matching.weight_name_length")
	}
	if viper.IsSet("matching.weight_md5_coverage") {
		cfg.WeightMD5Coverage = viper.GetFloat64("matching.weight_md5_coverage")
	}
	if viper.IsSet("matching.weight_order") {
		cfg.WeightOrder = viper.GetFloat64("matching.weight_order")
	}
	if viper.IsSet("matching.max_candidates") {
		cfg.MaxCandidates = viper.GetInt("matching.max_candidates")
	}
	if viper.IsSet("matching.score_threshold") {
		cfg.ScoreThreshold = viper.GetFloat64("matching.score_threshold")
	}

	if err := cfg.Validate(); err != nil {
		return refmatch.MatchingConfig{}, err
	}
	return cfg, nil
}
