package refmatch

import (
	"regexp"
	"strings"
)

// NormalizedName is the output of Normalize: two canonical views of a
// contig name (UCSC-style and bare), plus any aliases implied by the
// name itself (e.g. the accession embedded in a UCSC patch name).
type NormalizedName struct {
	CanonicalUCSC string
	CanonicalBare string
	Aliases       []string
}

var (
	reMito       = regexp.MustCompile(`(?i)^(chrm|chrmt|m|mt)$`)
	reChrPrimary = regexp.MustCompile(`(?i)^chr([0-9]{1,2}|x|y)$`)
	reBarePrimary = regexp.MustCompile(`(?i)^([0-9]{1,2}|x|y)$`)
	reAccession  = regexp.MustCompile(`^(NC_\d+\.\d+|CM\d+\.\d+|KN\d+\.\d+|KQ\d+\.\d+|KV\d+\.\d+|GL\d+\.\d+)$`)
	rePatch      = regexp.MustCompile(`(?i)^chr([0-9]{1,2}|x|y)_([A-Za-z0-9]+)v(\d+)_(fix|alt)$`)
)

// accessionToChromosome maps a handful of well-known GenBank/RefSeq
// molecule accessions (GRCh37 and GRCh38 primary assembly) to their
// equivalent chromosome token, so an accession-named header can still
// be scored against a chr-named or bare-named catalog entry.
var accessionToChromosome = map[string]string{
	// GRCh38
	"NC_000001.11": "1", "NC_000002.12": "2", "NC_000003.12": "3",
	"NC_000004.12": "4", "NC_000005.10": "5", "NC_000006.12": "6",
	"NC_000007.14": "7", "NC_000008.11": "8", "NC_000009.12": "9",
	"NC_000010.11": "10", "NC_000011.10": "11", "NC_000012.12": "12",
	"NC_000013.11": "13", "NC_000014.9": "14", "NC_000015.10": "15",
	"NC_000016.10": "16", "NC_000017.11": "17", "NC_000018.10": "18",
	"NC_000019.10": "19", "NC_000020.11": "20", "NC_000021.9": "21",
	"NC_000022.11": "22", "NC_000023.11": "X", "NC_000024.10": "Y",
	// GRCh37
	"NC_000001.10": "1", "NC_000002.11": "2", "NC_000003.11": "3",
	"NC_000004.11": "4", "NC_000005.9": "5", "NC_000006.11": "6",
	"NC_000007.13": "7", "NC_000008.10": "8", "NC_000009.11": "9",
	"NC_000010.10": "10", "NC_000011.9": "11", "NC_000012.11": "12",
	"NC_000013.10": "13", "NC_000014.8": "14", "NC_000015.9": "15",
	"NC_000016.9": "16", "NC_000017.10": "17", "NC_000018.9": "18",
	"NC_000019.9": "19", "NC_000020.10": "20", "NC_000021.8": "21",
	"NC_000022.10": "22", "NC_000023.10": "X", "NC_000024.9": "Y",
	// rCRS mitochondrion, shared by both assemblies.
	"NC_012920.1": "MT",
}

// normalizeToken upper-cases X/Y and leaves numeric tokens as-is; it
// never lower-cases a numeric chromosome number.
func normalizeToken(tok string) string {
	if strings.EqualFold(tok, "x") {
		return "X"
	}
	if strings.EqualFold(tok, "y") {
		return "Y"
	}
	return tok
}

// Normalize produces the canonical forms of a contig name. It is
// deterministic, total, and pure: the same input always yields the
// same output, and every input (however unrecognized) yields some
// canonical form.
//
// Rules are applied in order, first match wins:
//  1. chrM/chrMT/M/MT (any case) -> mitochondrial canonical forms.
//  2. chr-prefixed primary chromosome token -> chr-prefixed/bare pair.
//  3. bare primary chromosome token -> chr-prefixed/bare pair.
//  4. UCSC patch name (chr{chr}_{ACC}v{ver}_fix|_alt) -> name preserved
//     verbatim, embedded accession emitted as an alias.
//  5. GenBank/RefSeq molecule accession -> when the accession is a known
//     primary-chromosome accession, the equivalent chromosome's canonical
//     forms are used and the accession is emitted as an alias; any other
//     accession is preserved verbatim.
//  6. Anything else -> preserved verbatim in both canonical views.
func Normalize(name string) NormalizedName {
	trimmed := strings.TrimSpace(name)

	switch {
	case reMito.MatchString(trimmed):
		return NormalizedName{CanonicalUCSC: "chrM", CanonicalBare: "MT"}

	case reChrPrimary.MatchString(trimmed):
		tok := normalizeToken(reChrPrimary.FindStringSubmatch(trimmed)[1])
		return NormalizedName{CanonicalUCSC: "chr" + tok, CanonicalBare: tok}

	case reBarePrimary.MatchString(trimmed):
		tok := normalizeToken(trimmed)
		return NormalizedName{CanonicalUCSC: "chr" + tok, CanonicalBare: tok}

	case rePatch.MatchString(trimmed):
		m := rePatch.FindStringSubmatch(trimmed)
		accession := strings.ToUpper(m[2]) + "." + m[3]
		return NormalizedName{
			CanonicalUCSC: trimmed,
			CanonicalBare: trimmed,
			Aliases:       []string{accession},
		}

	case reAccession.MatchString(trimmed):
		if chrom, ok := accessionToChromosome[trimmed]; ok {
			n := Normalize(chrom)
			n.Aliases = []string{trimmed}
			return n
		}
		return NormalizedName{CanonicalUCSC: trimmed, CanonicalBare: trimmed}

	default:
		return NormalizedName{CanonicalUCSC: trimmed, CanonicalBare: trimmed}
	}
}

// isPrimaryChromosome reports whether a normalized name resolves to one
// of the 25 primary human molecules (1-22, X, Y, MT).
func isPrimaryChromosome(n NormalizedName) bool {
	if n.CanonicalUCSC == "chrM" {
		return true
	}
	return reBarePrimary.MatchString(n.CanonicalBare)
}

// DetectNamingConvention classifies the dominant naming scheme across a
// set of contigs, by inspecting only the primary chromosomes (scaffolds,
// decoys, and patches carry no naming-convention signal of their own).
func DetectNamingConvention(contigs []Contig) NamingConvention {
	var primary, prefixed, accessionLike int
	for _, c := range contigs {
		norm := Normalize(c.Name)
		if !isPrimaryChromosome(norm) {
			continue
		}
		primary++
		if reAccession.MatchString(strings.TrimSpace(c.Name)) {
			accessionLike++
		} else if strings.HasPrefix(strings.ToLower(strings.TrimSpace(c.Name)), "chr") {
			prefixed++
		}
	}
	if primary == 0 {
		return ConventionUnknown
	}

	bare := primary - prefixed - accessionLike
	switch {
	case float64(accessionLike)/float64(primary) > 0.90:
		return ConventionAccession
	case float64(prefixed)/float64(primary) > 0.90:
		return ConventionUCSC
	case float64(bare)/float64(primary) > 0.90 && prefixed == 0 && accessionLike == 0:
		return ConventionNCBI
	case prefixed > 0 && bare > 0:
		return ConventionMixed
	default:
		return ConventionUnknown
	}
}
