package refmatch

import (
	"sort"
	"strings"
)

// refPool is the mutable, per-scoring-pass view of a reference's
// contigs: available for pairing until consumed, indexed three ways so
// each of the Scorer's pairing steps can look a query contig up in
// O(1) amortized time.
type refPool struct {
	contigs  []Contig
	consumed []bool
	byMD5    map[string][]int
	byKey    map[NameLengthKey][]int
	byName   map[string][]int
}

func newRefPool(r *KnownReference) *refPool {
	p := &refPool{
		contigs:  r.Contigs,
		consumed: make([]bool, len(r.Contigs)),
		byMD5:    make(map[string][]int),
		byKey:    make(map[NameLengthKey][]int),
		byName:   make(map[string][]int),
	}
	for i, c := range r.Contigs {
		if c.HasMD5() {
			p.byMD5[c.MD5] = append(p.byMD5[c.MD5], i)
		}
		for _, n := range contigNameVariants(c) {
			p.byName[n] = append(p.byName[n], i)
			p.byKey[NameLengthKey{Name: n, Length: c.Length}] = append(p.byKey[NameLengthKey{Name: n, Length: c.Length}], i)
		}
	}
	return p
}

// contigNameVariants lists every string form a contig can be looked up
// by: its raw name, both canonical views, and the same for every
// declared alias.
func contigNameVariants(c Contig) []string {
	seen := make(map[string]struct{})
	add := func(s string) {
		if s != "" {
			seen[s] = struct{}{}
		}
	}
	norm := Normalize(c.Name)
	add(c.Name)
	add(norm.CanonicalUCSC)
	add(norm.CanonicalBare)
	for _, a := range norm.Aliases {
		add(a)
	}
	for _, alias := range c.Aliases {
		add(alias)
		an := Normalize(alias)
		add(an.CanonicalUCSC)
		add(an.CanonicalBare)
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func firstAvailable(p *refPool, indices []int) int {
	for _, i := range indices {
		if !p.consumed[i] {
			return i
		}
	}
	return -1
}

func allAvailable(p *refPool, indices []int) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, i := range indices {
		if p.consumed[i] {
			continue
		}
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func rolesOf(p *refPool, indices []int, role SequenceRole) []int {
	var out []int
	for _, i := range indices {
		if p.contigs[i].SequenceRole == role {
			out = append(out, i)
		}
	}
	return out
}

// pairing is the Scorer's intermediate result for a single query contig:
// its resolved status and, if matched, the reference contig index.
type pairing struct {
	queryIndex int
	refIndex   int // -1 when unmatched
	status     ContigMatchStatus
}

// pairContigs runs the §4.5.1 per-contig classification: each query
// contig is resolved, in order, against the reference's pool of not-
// yet-consumed contigs by MD5, then by normalized name+length, then by
// name-only (conflict), else left unmatched. Reference contigs never
// claimed by a pairing are reported as UnmatchedReference.
func pairContigs(query *QueryHeader, ref *KnownReference) ([]pairing, []int) {
	pool := newRefPool(ref)
	pairings := make([]pairing, 0, len(query.Contigs))

	for qi, q := range query.Contigs {
		if q.HasMD5() {
			if ri := firstAvailable(pool, pool.byMD5[q.MD5]); ri >= 0 {
				pool.consumed[ri] = true
				// Names "agree under canonical form" here means agree
				// modulo case only (rule 5): a literal cross-convention
				// rename (e.g. "1" vs "chr1") is Renamed even though both
				// normalize to the same chromosome for name+length
				// matching purposes in step 2.
				status := StatusExact
				if !strings.EqualFold(q.Name, pool.contigs[ri].Name) {
					status = StatusRenamed
				}
				pairings = append(pairings, pairing{qi, ri, status})
				continue
			}
		}

		qn := Normalize(q.Name)
		key1 := NameLengthKey{Name: qn.CanonicalUCSC, Length: q.Length}
		key2 := NameLengthKey{Name: qn.CanonicalBare, Length: q.Length}
		candidates := allAvailable(pool, append(append([]int{}, pool.byKey[key1]...), pool.byKey[key2]...))

		if len(candidates) == 1 {
			ri := candidates[0]
			pool.consumed[ri] = true
			pairings = append(pairings, pairing{qi, ri, StatusNameLength})
			continue
		}
		if len(candidates) > 1 {
			preferred := rolesOf(pool, candidates, RoleAssembledMolecule)
			if len(preferred) == 1 {
				ri := preferred[0]
				pool.consumed[ri] = true
				pairings = append(pairings, pairing{qi, ri, StatusNameLength})
				continue
			}
			pairings = append(pairings, pairing{qi, -1, StatusConflict})
			continue
		}

		var nameCandidates []int
		for _, n := range contigNameVariants(q) {
			nameCandidates = append(nameCandidates, pool.byName[n]...)
		}
		nameCandidates = allAvailable(pool, nameCandidates)
		if len(nameCandidates) > 0 {
			ri := nameCandidates[0]
			pool.consumed[ri] = true
			pairings = append(pairings, pairing{qi, ri, StatusConflict})
			continue
		}

		pairings = append(pairings, pairing{qi, -1, StatusUnmatchedQuery})
	}

	var unmatchedRef []int
	for i, used := range pool.consumed {
		if !used {
			unmatchedRef = append(unmatchedRef, i)
		}
	}
	return pairings, unmatchedRef
}

// pairedStatuses are the statuses that represent a real structural
// correspondence between a query and reference contig, as opposed to
// no correspondence at all.
var pairedStatuses = map[ContigMatchStatus]bool{
	StatusExact:      true,
	StatusRenamed:    true,
	StatusNameLength: true,
	StatusConflict:   true,
}

// orderScore computes the Kendall-tau-like order agreement: the
// fraction of consecutive pairs of paired query contigs whose
// corresponding reference indices are strictly increasing. Fewer than
// two pairings trivially agree in order.
func orderScore(pairings []pairing) float64 {
	var refSeq []int
	for _, p := range pairings {
		if p.refIndex >= 0 && pairedStatuses[p.status] {
			refSeq = append(refSeq, p.refIndex)
		}
	}
	if len(refSeq) < 2 {
		return 1.0
	}
	increasing := 0
	for i := 1; i < len(refSeq); i++ {
		if refSeq[i] > refSeq[i-1] {
			increasing++
		}
	}
	return float64(increasing) / float64(len(refSeq)-1)
}

func md5Set(contigs []Contig) map[string]struct{} {
	out := make(map[string]struct{})
	for _, c := range contigs {
		if c.HasMD5() {
			out[c.MD5] = struct{}{}
		}
	}
	return out
}

func jaccard[T comparable](a, b map[T]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// computeBreakdown derives the four factor scores and their weighted
// composite for a scored pairing.
func computeBreakdown(query *QueryHeader, ref *KnownReference, pairings []pairing, cfg MatchingConfig) ScoreBreakdown {
	querySet := md5Set(query.Contigs)
	refSet := md5Set(ref.Contigs)
	md5Defined := len(querySet) > 0 || len(refSet) > 0
	md5Jaccard := jaccard(querySet, refSet)
	nlJaccard := jaccard(query.RawNameLengthKeys(), ref.RawNameLengthKeys())

	var withMD5, md5Paired int
	for _, p := range pairings {
		q := query.Contigs[p.queryIndex]
		if q.HasMD5() {
			withMD5++
			if p.status == StatusExact || p.status == StatusRenamed {
				md5Paired++
			}
		}
	}
	var md5Coverage float64
	if withMD5 == 0 {
		md5Coverage = nlJaccard
	} else {
		md5Coverage = float64(md5Paired) / float64(withMD5)
	}

	order := orderScore(pairings)

	// md5_jaccard is undefined, not zero, when neither side carries any
	// MD5 at all (an empty/empty union has no overlap to measure); drop
	// it from the composite and reweight the rest rather than scoring it
	// as total disagreement. (md5_coverage's withMD5==0 case above is
	// handled differently: it stays in the composite, taking nlJaccard's
	// value.)
	weightSum := cfg.WeightNameLength + cfg.WeightMD5Coverage + cfg.WeightOrder
	weighted := cfg.WeightNameLength*nlJaccard + cfg.WeightMD5Coverage*md5Coverage + cfg.WeightOrder*order
	if md5Defined {
		weightSum += cfg.WeightMD5Jaccard
		weighted += cfg.WeightMD5Jaccard * md5Jaccard
	}
	var composite float64
	if weightSum > 0 {
		composite = weighted / weightSum
	}

	return ScoreBreakdown{
		MD5Jaccard:        md5Jaccard,
		NameLengthJaccard: nlJaccard,
		MD5Coverage:       md5Coverage,
		Order:             order,
		Composite:         clamp01(composite),
	}
}

// classifyMatchType decides the MatchType from the per-contig counts
// and the order factor, per §4.5.3. The NoMatch-by-composite rule is
// applied by the caller after this structural classification.
func classifyMatchType(counts map[ContigMatchStatus]int, order float64, pairedQuery, largerSide int) MatchType {
	uq := counts[StatusUnmatchedQuery]
	ur := counts[StatusUnmatchedReference]
	conflicts := counts[StatusConflict]
	renamed := counts[StatusRenamed]

	switch {
	case uq == 0 && ur == 0 && conflicts == 0 && renamed == 0 && order == 1.0:
		return MatchExact
	case uq == 0 && conflicts == 0 && renamed > 0 && order == 1.0:
		return MatchRenamed
	case uq == 0 && conflicts == 0 && order < 1.0:
		return MatchReordered
	case uq == 0 && conflicts == 0 && ur > 0:
		return MatchSubset
	case ur == 0 && uq > 0 && conflicts == 0:
		return MatchSuperset
	}

	if (uq > 0 && ur > 0) || conflicts > 0 {
		if largerSide > 0 && float64(pairedQuery)/float64(largerSide) >= 0.5 {
			return MatchPartial
		}
	}
	return MatchNoMatch
}

// Score produces the MatchResult for one (query, reference) pair: the
// per-contig classification, the four factor scores and their
// composite, the MatchType, and a diagnosis (remediation suggestions).
// Score is pure: the same inputs always produce the same output.
func Score(query *QueryHeader, ref *KnownReference, cfg MatchingConfig) *MatchResult {
	pairings, unmatchedRef := pairContigs(query, ref)

	counts := make(map[ContigMatchStatus]int, 6)
	details := make([]ContigPairing, 0, len(pairings)+len(unmatchedRef))
	for _, p := range pairings {
		counts[p.status]++
		d := ContigPairing{QueryName: query.Contigs[p.queryIndex].Name, Status: p.status}
		if p.refIndex >= 0 {
			d.ReferenceName = ref.Contigs[p.refIndex].Name
		}
		details = append(details, d)
	}
	for _, ri := range unmatchedRef {
		counts[StatusUnmatchedReference]++
		details = append(details, ContigPairing{ReferenceName: ref.Contigs[ri].Name, Status: StatusUnmatchedReference})
	}

	breakdown := computeBreakdown(query, ref, pairings, cfg)

	pairedQuery := len(query.Contigs) - counts[StatusUnmatchedQuery]
	largerSide := len(query.Contigs)
	if len(ref.Contigs) > largerSide {
		largerSide = len(ref.Contigs)
	}

	matchType := classifyMatchType(counts, breakdown.Order, pairedQuery, largerSide)
	if breakdown.Composite < 0.25 {
		matchType = MatchNoMatch
	}

	result := &MatchResult{
		Reference:     ref,
		Breakdown:     breakdown,
		MatchType:     matchType,
		Confidence:    ConfidenceFor(breakdown.Composite),
		Counts:        counts,
		Reordered:     matchType == MatchReordered,
		ContigDetails: details,
	}
	result.Suggestions = Diagnose(query, result)
	return result
}
