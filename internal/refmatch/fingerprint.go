package refmatch

import "sync"

// QueryHeader is the sequence dictionary extracted from an input file:
// an ordered, deduplicated list of contigs, plus a set of derived
// quantities computed once and cached on first access.
//
// A QueryHeader is created per request and is not safe for concurrent
// mutation; its lazily-computed fields may, however, be read
// concurrently once populated, since they only ever compute to the same
// value.
type QueryHeader struct {
	Contigs []Contig

	once              sync.Once
	md5Coverage       float64
	convention        NamingConvention
	signature         []string
	nameLengthKeys    map[NameLengthKey]struct{}
	rawNameLengthKeys map[NameLengthKey]struct{}
}

// NewQueryHeader validates contigs against the invariants of spec §3
// (non-empty name, positive length, well-formed MD5, no name collisions
// with aliases, no duplicate names across the header) and, if valid,
// returns a QueryHeader ready for fingerprinting. On the first
// violation found it returns an *InvalidQueryHeaderError naming the
// offending contig.
func NewQueryHeader(contigs []Contig) (*QueryHeader, error) {
	for _, c := range contigs {
		if reason := validateContig(c); reason != "" {
			return nil, &InvalidQueryHeaderError{Reason: reason, Offending: c}
		}
	}
	if dup, ok := validateNoDuplicateNames(contigs); !ok {
		return nil, &InvalidQueryHeaderError{Reason: "duplicate contig name", Offending: dup}
	}
	return &QueryHeader{Contigs: contigs}, nil
}

// ensureDerived computes the Fingerprinter's derived quantities exactly
// once: MD5 coverage fraction, detected naming convention, the sorted-
// MD5 signature, and the name+length key set.
func (q *QueryHeader) ensureDerived() {
	q.once.Do(func() {
		q.convention = DetectNamingConvention(q.Contigs)

		var withMD5 int
		md5s := make([]string, 0, len(q.Contigs))
		keys := make(map[NameLengthKey]struct{}, len(q.Contigs)*2)
		rawKeys := make(map[NameLengthKey]struct{}, len(q.Contigs))

		for _, c := range q.Contigs {
			if c.HasMD5() {
				withMD5++
				md5s = append(md5s, c.MD5)
			}
			addNameLengthKeys(keys, c)
			rawKeys[NameLengthKey{Name: c.Name, Length: c.Length}] = struct{}{}
		}

		if len(q.Contigs) > 0 {
			q.md5Coverage = float64(withMD5) / float64(len(q.Contigs))
		}
		q.signature = sortedSignature(md5s)
		q.nameLengthKeys = keys
		q.rawNameLengthKeys = rawKeys
	})
}

// addNameLengthKeys indexes a contig under every (normalized name,
// length) view: the UCSC canonical, the bare canonical, and each of its
// declared aliases, so a query and a reference that disagree on naming
// convention still share a key.
func addNameLengthKeys(keys map[NameLengthKey]struct{}, c Contig) {
	norm := Normalize(c.Name)
	keys[NameLengthKey{Name: norm.CanonicalUCSC, Length: c.Length}] = struct{}{}
	keys[NameLengthKey{Name: norm.CanonicalBare, Length: c.Length}] = struct{}{}
	for _, alias := range norm.Aliases {
		keys[NameLengthKey{Name: alias, Length: c.Length}] = struct{}{}
	}
	for _, alias := range c.Aliases {
		an := Normalize(alias)
		keys[NameLengthKey{Name: an.CanonicalUCSC, Length: c.Length}] = struct{}{}
		keys[NameLengthKey{Name: an.CanonicalBare, Length: c.Length}] = struct{}{}
	}
}

// MD5Coverage is the fraction of contigs carrying an MD5.
func (q *QueryHeader) MD5Coverage() float64 {
	q.ensureDerived()
	return q.md5Coverage
}

// NamingConvention is the detected chromosome-naming scheme.
func (q *QueryHeader) NamingConvention() NamingConvention {
	q.ensureDerived()
	return q.convention
}

// Signature is the sorted tuple of all MD5s present (empty if none).
func (q *QueryHeader) Signature() []string {
	q.ensureDerived()
	return q.signature
}

// NameLengthKeys is the set of (normalized name, length) pairs present
// in the header, expanded across both the UCSC and bare canonical
// views plus declared aliases. This is the candidate-shortlisting view
// used by CatalogIndex/selector: it deliberately erases naming
// convention so a chr-style query still finds a bare-style reference
// (and vice versa) in the index.
func (q *QueryHeader) NameLengthKeys() map[NameLengthKey]struct{} {
	q.ensureDerived()
	return q.nameLengthKeys
}

// RawNameLengthKeys is the set of (literal name, length) pairs present
// in the header, with no normalization applied. Unlike NameLengthKeys,
// this view preserves naming convention, so it is what the scorer's
// name_length_jaccard factor is computed over: a pure chr<->bare rename
// must show up as name disagreement there, even though it is invisible
// to the convention-blind candidate index.
func (q *QueryHeader) RawNameLengthKeys() map[NameLengthKey]struct{} {
	q.ensureDerived()
	return q.rawNameLengthKeys
}
