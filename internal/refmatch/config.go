package refmatch

// Validate checks a MatchingConfig against §7's ConfigInvalid rules:
// negative weights, a non-positive MaxCandidates, or a ScoreThreshold
// outside [0,1].
func (c MatchingConfig) Validate() error {
	if c.WeightMD5Jaccard < 0 || c.WeightNameLength < 0 || c.WeightMD5Coverage < 0 || c.WeightOrder < 0 {
		return &ConfigInvalidError{Reason: "weights must be non-negative"}
	}
	if c.WeightMD5Jaccard+c.WeightNameLength+c.WeightMD5Coverage+c.WeightOrder <= 0 {
		return &ConfigInvalidError{Reason: "at least one weight must be positive"}
	}
	if c.MaxCandidates < 1 {
		return &ConfigInvalidError{Reason: "max_candidates must be >= 1"}
	}
	if c.ScoreThreshold < 0 || c.ScoreThreshold > 1 {
		return &ConfigInvalidError{Reason: "score_threshold must be within [0,1]"}
	}
	return nil
}
