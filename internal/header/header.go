// Package header is the small contract between format-specific parsers
// (SAM/BAM/CRAM, dict, FASTA index, VCF, assembly report, TSV/CSV) and
// the matching core: every parser produces a refmatch.QueryHeader by
// implementing Source.
package header

import "github.com/refgenome-id/refgenome-id/internal/refmatch"

// Source is implemented by every format-specific header parser. Parse
// returns the contigs found, in file order; Build turns that into a
// validated refmatch.QueryHeader.
type Source interface {
	Parse() ([]refmatch.Contig, error)
}

// Build runs a Source and validates its output into a QueryHeader,
// surfacing the core's InvalidQueryHeaderError unchanged on violation.
func Build(src Source) (*refmatch.QueryHeader, error) {
	contigs, err := src.Parse()
	if err != nil {
		return nil, err
	}
	return refmatch.NewQueryHeader(contigs)
}
