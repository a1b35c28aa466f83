package refmatch

import "sort"

// CatalogIndex holds the three lookup tables derived from a catalog:
// by full-set signature, by single contig MD5, and by (normalized name,
// length). It is built once per catalog and is immutable thereafter,
// safe to share by reference across concurrent requests.
type CatalogIndex struct {
	References []*KnownReference

	bySignature   map[string][]*KnownReference
	byContigMD5   map[string][]*KnownReference
	byNameLength  map[NameLengthKey][]*KnownReference
}

// NewCatalogIndex builds the three lookup tables from a set of
// references. References are sorted by ID first so that every
// downstream candidate list is built in a deterministic order,
// regardless of the order the catalog loader produced them in.
func NewCatalogIndex(refs []*KnownReference) *CatalogIndex {
	sorted := make([]*KnownReference, len(refs))
	copy(sorted, refs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	idx := &CatalogIndex{
		References:   sorted,
		bySignature:  make(map[string][]*KnownReference),
		byContigMD5:  make(map[string][]*KnownReference),
		byNameLength: make(map[NameLengthKey][]*KnownReference),
	}

	for _, r := range sorted {
		if r.HasCompleteMD5Coverage() && len(r.Signature()) > 0 {
			key := signatureKey(r.Signature())
			idx.bySignature[key] = append(idx.bySignature[key], r)
		}
		for _, md5 := range r.Signature() {
			idx.byContigMD5[md5] = append(idx.byContigMD5[md5], r)
		}
		for key := range r.NameLengthKeys() {
			idx.byNameLength[key] = append(idx.byNameLength[key], r)
		}
	}

	return idx
}

// BySignature returns the references whose full signature exactly
// equals sig (only references with complete MD5 coverage are indexed
// here).
func (idx *CatalogIndex) BySignature(sig []string) []*KnownReference {
	return idx.bySignature[signatureKey(sig)]
}

// ByContigMD5 returns the references containing a contig with the given
// MD5.
func (idx *CatalogIndex) ByContigMD5(md5 string) []*KnownReference {
	return idx.byContigMD5[md5]
}

// ByNameLength returns the references containing a contig with the
// given (normalized name, length) key.
func (idx *CatalogIndex) ByNameLength(key NameLengthKey) []*KnownReference {
	return idx.byNameLength[key]
}
