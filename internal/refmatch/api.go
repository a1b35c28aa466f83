package refmatch

import "sort"

// mixedThresholdFraction is the fraction of the query's total contigs
// that a disjoint second-best candidate must explain before a result
// is reclassified as Mixed (§9 open question; spec fixes this at 20%).
const mixedThresholdFraction = 0.20

// FindMatches is the core's primary entry point: it fingerprints-
// derived fields are already on query, selects a short list of
// candidate references from idx, scores each, detects cross-assembly
// Mixed matches, drops results below cfg.ScoreThreshold, and returns
// the remainder ranked by descending composite (ties broken by
// ascending reference contig count, then reference ID). FindMatches is
// pure and deterministic for a given (query, idx, cfg).
func FindMatches(query *QueryHeader, idx *CatalogIndex, cfg MatchingConfig) ([]*MatchResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	candidates := SelectCandidates(query, idx, cfg.MaxCandidates)
	results := make([]*MatchResult, 0, len(candidates))
	for _, ref := range candidates {
		results = append(results, Score(query, ref, cfg))
	}

	detectMixed(results, query)

	kept := results[:0:0]
	for _, r := range results {
		if r.Breakdown.Composite >= cfg.ScoreThreshold {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.Breakdown.Composite != b.Breakdown.Composite {
			return a.Breakdown.Composite > b.Breakdown.Composite
		}
		if len(a.Reference.Contigs) != len(b.Reference.Contigs) {
			return len(a.Reference.Contigs) < len(b.Reference.Contigs)
		}
		return a.Reference.ID < b.Reference.ID
	})

	return kept, nil
}

// detectMixed implements the §9 open-question resolution: when the
// best-scoring candidate and a different-assembly second-best each
// pair a large, disjoint subset of the query's contigs, the best
// result's MatchType is upgraded to Mixed. "Large" is fixed at >=20%
// of the query's total contigs (mixedThresholdFraction).
func detectMixed(results []*MatchResult, query *QueryHeader) {
	if len(results) < 2 || len(query.Contigs) == 0 {
		return
	}

	ranked := make([]*MatchResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Breakdown.Composite > ranked[j].Breakdown.Composite
	})

	best, second := ranked[0], ranked[1]
	if best.MatchType == MatchExact || best.MatchType == MatchRenamed {
		return
	}
	if best.Reference.Assembly == second.Reference.Assembly {
		return
	}

	bestPaired := pairedQueryNames(best)
	secondPaired := pairedQueryNames(second)

	disjoint := 0
	for name := range secondPaired {
		if _, ok := bestPaired[name]; !ok {
			disjoint++
		}
	}

	if float64(disjoint) >= mixedThresholdFraction*float64(len(query.Contigs)) {
		best.MatchType = MatchMixed
	}
}

// pairedQueryNames is the set of query contig names resolved to a real
// structural correspondence (Exact, Renamed, NameLength, or Conflict)
// in a scored result.
func pairedQueryNames(result *MatchResult) map[string]struct{} {
	out := make(map[string]struct{})
	for _, d := range result.ContigDetails {
		if d.QueryName != "" && pairedStatuses[d.Status] {
			out[d.QueryName] = struct{}{}
		}
	}
	return out
}
