package refmatch

import "sort"

// SelectCandidates bounds the work of the Scorer: it returns the short
// list of references worth scoring in detail for a query, given a
// catalog index.
//
//  1. An exact signature hit returns only those references (they will
//     score 1.0 modulo ordering).
//  2. Otherwise, references are scored by the cardinality of the
//     intersection between the query's MD5 set and each reference's
//     MD5 set; references with a name_length_keys intersection but no
//     MD5 intersection form a lower-priority pool.
//  3. The top maxCandidates references are returned, ranked by MD5
//     intersection count, then name_length_keys agreement count, then
//     ascending contig count (smaller references explain the query
//     with less unused structure), then reference ID for full
//     determinism.
func SelectCandidates(query *QueryHeader, idx *CatalogIndex, maxCandidates int) []*KnownReference {
	if sig := query.Signature(); len(sig) > 0 {
		if exact := idx.BySignature(sig); len(exact) > 0 {
			out := make([]*KnownReference, len(exact))
			copy(out, exact)
			sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
			return out
		}
	}

	md5Count := make(map[string]int)
	md5Hit := make(map[string]*KnownReference)
	for _, md5 := range query.Signature() {
		for _, r := range idx.ByContigMD5(md5) {
			md5Count[r.ID]++
			md5Hit[r.ID] = r
		}
	}

	nlCount := make(map[string]int)
	nlHit := make(map[string]*KnownReference)
	for key := range query.NameLengthKeys() {
		for _, r := range idx.ByNameLength(key) {
			nlCount[r.ID]++
			nlHit[r.ID] = r
		}
	}

	type candidate struct {
		ref      *KnownReference
		md5Hits  int
		nlHits   int
	}

	seen := make(map[string]bool)
	var pool []candidate
	for id, r := range md5Hit {
		pool = append(pool, candidate{ref: r, md5Hits: md5Count[id], nlHits: nlCount[id]})
		seen[id] = true
	}
	for id, r := range nlHit {
		if seen[id] {
			continue
		}
		pool = append(pool, candidate{ref: r, md5Hits: 0, nlHits: nlCount[id]})
	}

	sort.Slice(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if a.md5Hits != b.md5Hits {
			return a.md5Hits > b.md5Hits
		}
		if a.nlHits != b.nlHits {
			return a.nlHits > b.nlHits
		}
		if len(a.ref.Contigs) != len(b.ref.Contigs) {
			return len(a.ref.Contigs) < len(b.ref.Contigs)
		}
		return a.ref.ID < b.ref.ID
	})

	if len(pool) > maxCandidates {
		pool = pool[:maxCandidates]
	}

	out := make([]*KnownReference, len(pool))
	for i, c := range pool {
		out[i] = c.ref
	}
	return out
}
