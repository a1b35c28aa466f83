package refmatch

import "fmt"

// chromLengths is the GRCh38 length for each primary human molecule,
// used to build a realistic 25-contig fixture for property tests.
var chromLengths = map[string]int64{
	"chr1": 248956422, "chr2": 242193529, "chr3": 198295559,
	"chr4": 190214555, "chr5": 181538259, "chr6": 170805979,
	"chr7": 159345973, "chr8": 145138636, "chr9": 138394717,
	"chr10": 133797422, "chr11": 135086622, "chr12": 133275309,
	"chr13": 114364328, "chr14": 107043718, "chr15": 101991189,
	"chr16": 90338345, "chr17": 83257441, "chr18": 80373285,
	"chr19": 58617616, "chr20": 64444167, "chr21": 46709983,
	"chr22": 50818468, "chrX": 156040895, "chrY": 57227415,
	"chrM": 16569,
}

var primaryOrder = []string{
	"chr1", "chr2", "chr3", "chr4", "chr5", "chr6", "chr7", "chr8", "chr9", "chr10",
	"chr11", "chr12", "chr13", "chr14", "chr15", "chr16", "chr17", "chr18", "chr19", "chr20",
	"chr21", "chr22", "chrX", "chrY", "chrM",
}

// knownMD5 carries the literal MD5s spec.md's scenario 1 names; the
// rest are synthesized but fixed, so fixtures are deterministic.
var knownMD5 = map[string]string{
	"chr1": "6aef897c3d6ff0c78aff06ac189178dd",
	"chrM": "c68f52674c9fb33aef52dcf399755519",
}

func fixtureMD5(name string, i int) string {
	if md5, ok := knownMD5[name]; ok {
		return md5
	}
	return fmt.Sprintf("%032x", i+1)
}

// ucscContigs returns the 25-contig hg38-like dictionary in UCSC naming.
func ucscContigs() []Contig {
	out := make([]Contig, 0, len(primaryOrder))
	for i, name := range primaryOrder {
		out = append(out, Contig{
			Name:         name,
			Length:       chromLengths[name],
			MD5:          fixtureMD5(name, i),
			SequenceRole: RoleAssembledMolecule,
		})
	}
	return out
}

// ncbiContigs returns the same 25 contigs with NCBI-style bare names and
// the same MD5s (a pure renaming, no other change).
func ncbiContigs() []Contig {
	ucsc := ucscContigs()
	out := make([]Contig, len(ucsc))
	for i, c := range ucsc {
		bare := Normalize(c.Name).CanonicalBare
		out[i] = Contig{Name: bare, Length: c.Length, MD5: c.MD5, SequenceRole: c.SequenceRole}
	}
	return out
}

func mustReference(t interface{ Fatalf(string, ...interface{}) }, id string, assembly Assembly, source CatalogSource, contigs []Contig) *KnownReference {
	r, err := NewKnownReference(id, id, assembly, source, contigs, "test fixture", "")
	if err != nil {
		t.Fatalf("building fixture reference %s: %v", id, err)
	}
	return r
}

func mustQueryHeader(t interface{ Fatalf(string, ...interface{}) }, contigs []Contig) *QueryHeader {
	q, err := NewQueryHeader(contigs)
	if err != nil {
		t.Fatalf("building fixture query: %v", err)
	}
	return q
}
