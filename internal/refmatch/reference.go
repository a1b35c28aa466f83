package refmatch

// KnownReference is one catalog entry: the full expected dictionary of
// a named, versioned genome build, plus pre-computed lookup structures
// in the same form as a QueryHeader's derived fields.
//
// KnownReference values are built once at catalog load time by
// NewKnownReference and are immutable thereafter; they are safe to
// share by reference across concurrent requests.
type KnownReference struct {
	ID          string
	DisplayName string
	Assembly    Assembly
	Source      CatalogSource
	Contigs     []Contig
	Description string
	DownloadURL string

	signature         []string
	nameLengthKeys    map[NameLengthKey]struct{}
	rawNameLengthKeys map[NameLengthKey]struct{}
}

// NewKnownReference validates contigs against the §3 Contig invariants
// and builds the reference's signature and name_length_keys. Unlike
// QueryHeader, duplicate contig names are not rejected here (a catalog
// entry describing e.g. PAR regions under non-unique scaffold names is
// plausible); callers that want stricter catalog hygiene should run
// ValidateCatalogEntry, which additionally flags duplicates.
func NewKnownReference(id, displayName string, assembly Assembly, source CatalogSource, contigs []Contig, description, downloadURL string) (*KnownReference, error) {
	for _, c := range contigs {
		if reason := validateContig(c); reason != "" {
			return nil, &InvalidCatalogError{ReferenceID: id, Reason: reason, Offending: c}
		}
	}

	md5s := make([]string, 0, len(contigs))
	keys := make(map[NameLengthKey]struct{}, len(contigs)*2)
	rawKeys := make(map[NameLengthKey]struct{}, len(contigs))
	for _, c := range contigs {
		if c.HasMD5() {
			md5s = append(md5s, c.MD5)
		}
		addNameLengthKeys(keys, c)
		rawKeys[NameLengthKey{Name: c.Name, Length: c.Length}] = struct{}{}
	}

	return &KnownReference{
		ID:                id,
		DisplayName:       displayName,
		Assembly:          assembly,
		Source:            source,
		Contigs:           contigs,
		Description:       description,
		DownloadURL:       downloadURL,
		signature:         sortedSignature(md5s),
		nameLengthKeys:    keys,
		rawNameLengthKeys: rawKeys,
	}, nil
}

// Signature is the sorted tuple of all MD5s present across the
// reference's contigs.
func (r *KnownReference) Signature() []string { return r.signature }

// NameLengthKeys is the set of (normalized name, length) pairs present
// across the reference's contigs, expanded across both canonical
// views plus aliases. See QueryHeader.NameLengthKeys for why.
func (r *KnownReference) NameLengthKeys() map[NameLengthKey]struct{} {
	return r.nameLengthKeys
}

// RawNameLengthKeys is the set of (literal name, length) pairs present
// across the reference's contigs, with no normalization applied. See
// QueryHeader.RawNameLengthKeys for why the scorer uses this view
// instead of NameLengthKeys for name_length_jaccard.
func (r *KnownReference) RawNameLengthKeys() map[NameLengthKey]struct{} {
	return r.rawNameLengthKeys
}

// HasCompleteMD5Coverage reports whether every contig in the reference
// carries an MD5 — the precondition for indexing it under by_signature.
func (r *KnownReference) HasCompleteMD5Coverage() bool {
	for _, c := range r.Contigs {
		if !c.HasMD5() {
			return false
		}
	}
	return true
}

// ValidateCatalogEntry runs the full §7 InvalidCatalog check set against
// an already-constructed reference, additionally flagging duplicate
// contig names — stricter than NewKnownReference, intended for a
// "catalog validate" pass over the whole catalog rather than for the
// load path itself.
func ValidateCatalogEntry(r *KnownReference) error {
	for _, c := range r.Contigs {
		if reason := validateContig(c); reason != "" {
			return &InvalidCatalogError{ReferenceID: r.ID, Reason: reason, Offending: c}
		}
	}
	if dup, ok := validateNoDuplicateNames(r.Contigs); !ok {
		return &InvalidCatalogError{ReferenceID: r.ID, Reason: "duplicate contig name", Offending: dup}
	}
	return nil
}
