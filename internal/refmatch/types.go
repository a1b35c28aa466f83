// Package refmatch identifies which reference genome an alignment file's
// sequence dictionary was built against, by matching it against a catalog
// of known references and scoring the candidates.
package refmatch

// SequenceRole classifies a contig's role within an assembly.
type SequenceRole string

// Recognized sequence roles.
const (
	RoleAssembledMolecule  SequenceRole = "assembled-molecule"
	RoleUnlocalizedScaffold SequenceRole = "unlocalized-scaffold"
	RoleUnplacedScaffold   SequenceRole = "unplaced-scaffold"
	RoleAltScaffold        SequenceRole = "alt-scaffold"
	RoleFixPatch           SequenceRole = "fix-patch"
	RoleNovelPatch         SequenceRole = "novel-patch"
	RoleDecoy              SequenceRole = "decoy"
	RoleHLA                SequenceRole = "hla"
	RoleViral              SequenceRole = "viral"
	RoleOther              SequenceRole = "other"
)

// Contig is one sequence entry in a dictionary: a chromosome, scaffold,
// decoy, or patch.
type Contig struct {
	Name         string
	Length       int64
	MD5          string // lowercase 32-hex, empty if unknown
	Aliases      []string
	SequenceRole SequenceRole // empty if unspecified
}

// HasMD5 reports whether the contig carries an MD5 (a non-empty MD5
// field; its syntax is not checked here).
func (c Contig) HasMD5() bool {
	return c.MD5 != ""
}

// Assembly is a named, versioned genome build.
type Assembly string

// Recognized assemblies.
const (
	AssemblyGRCh37  Assembly = "GRCh37"
	AssemblyGRCh38  Assembly = "GRCh38"
	AssemblyT2TCHM13 Assembly = "T2T-CHM13"
	AssemblyOther   Assembly = "Other"
)

// CatalogSource is the origin/distributor of a catalog entry.
type CatalogSource string

// Recognized catalog sources.
const (
	SourceUCSC     CatalogSource = "UCSC"
	SourceNCBI     CatalogSource = "NCBI"
	SourceBroad    CatalogSource = "Broad"
	SourceDRAGEN   CatalogSource = "DRAGEN"
	SourceIllumina CatalogSource = "Illumina"
	Source1000G    CatalogSource = "1000G"
	SourceGDC      CatalogSource = "GDC"
	SourceT2T      CatalogSource = "T2T"
	SourceOther    CatalogSource = "Other"
)

// NamingConvention is the systematic chromosome-naming scheme detected in
// a header.
type NamingConvention string

// Recognized naming conventions.
const (
	ConventionUCSC       NamingConvention = "UCSC"
	ConventionNCBI       NamingConvention = "NCBI"
	ConventionAccession  NamingConvention = "Accession"
	ConventionMixed      NamingConvention = "Mixed"
	ConventionUnknown    NamingConvention = "Unknown"
)

// NameLengthKey is a (normalized name, length) pair used for cross-
// naming-convention matching when MD5s are unavailable or disagree.
type NameLengthKey struct {
	Name   string
	Length int64
}

// MatchType categorizes how a query dictionary relates to a reference.
type MatchType string

// Recognized match types.
const (
	MatchExact     MatchType = "Exact"
	MatchRenamed   MatchType = "Renamed"
	MatchReordered MatchType = "Reordered"
	MatchSubset    MatchType = "Subset"
	MatchSuperset  MatchType = "Superset"
	MatchPartial   MatchType = "Partial"
	MatchMixed     MatchType = "Mixed"
	MatchNoMatch   MatchType = "NoMatch"
)

// Confidence buckets the composite score into an actionable category.
type Confidence string

// Recognized confidence levels.
const (
	ConfidenceExact  Confidence = "Exact"
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// ConfidenceFor derives a Confidence from a composite score. It is the
// only way a Confidence value is produced.
func ConfidenceFor(composite float64) Confidence {
	switch {
	case composite >= 1.0:
		return ConfidenceExact
	case composite >= 0.95:
		return ConfidenceHigh
	case composite >= 0.80:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// ContigMatchStatus is the per-contig outcome of pairing a query contig
// against a reference during scoring.
type ContigMatchStatus string

// Recognized per-contig statuses.
const (
	StatusExact               ContigMatchStatus = "Exact"
	StatusRenamed             ContigMatchStatus = "Renamed"
	StatusNameLength          ContigMatchStatus = "NameLength"
	StatusConflict            ContigMatchStatus = "Conflict"
	StatusUnmatchedQuery      ContigMatchStatus = "UnmatchedQuery"
	StatusUnmatchedReference  ContigMatchStatus = "UnmatchedReference"
)

// ScoreBreakdown holds the four factor scores and their weighted
// composite, each in [0,1].
type ScoreBreakdown struct {
	MD5Jaccard        float64
	NameLengthJaccard float64
	MD5Coverage       float64
	Order             float64
	Composite         float64
}

// ContigPairing records how one query contig was resolved against a
// reference during scoring; used for detailed ("explain") output.
type ContigPairing struct {
	QueryName     string
	ReferenceName string
	Status        ContigMatchStatus
}

// SuggestionKind discriminates the Suggestion tagged variant.
type SuggestionKind string

// Recognized suggestion kinds.
const (
	SuggestRename  SuggestionKind = "rename"
	SuggestReorder SuggestionKind = "reorder"
	SuggestReplace SuggestionKind = "replace"
	SuggestUseAsIs SuggestionKind = "use_as_is"
	SuggestRealign SuggestionKind = "realign"
)

// Suggestion is a single actionable remediation, tagged by Kind. Only the
// fields relevant to Kind are populated.
type Suggestion struct {
	Kind     SuggestionKind
	From     string // Rename
	To       string // Rename
	ToolHint string // Rename, Reorder
	Command  string // Rename, Reorder
	Contig   string // Replace
	Reason   string // Replace, Realign
}

// MatchResult is the scored outcome for one (query, reference) pair.
type MatchResult struct {
	Reference     *KnownReference
	Breakdown     ScoreBreakdown
	MatchType     MatchType
	Confidence    Confidence
	Counts        map[ContigMatchStatus]int
	Reordered     bool
	Suggestions   []Suggestion
	ContigDetails []ContigPairing
}

// MatchingConfig holds the scoring weights and selection/ranking
// thresholds. Weights need not sum to 1; the composite normalizes by
// their sum.
type MatchingConfig struct {
	WeightMD5Jaccard  float64
	WeightNameLength  float64
	WeightMD5Coverage float64
	WeightOrder       float64
	MaxCandidates     int
	ScoreThreshold    float64
}

// DefaultMatchingConfig returns the weights used when none are supplied
// by the caller: MD5 identity and name+length agreement dominate,
// coverage and ordering act as tie-breaking signals.
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		WeightMD5Jaccard:  0.40,
		WeightNameLength:  0.35,
		WeightMD5Coverage: 0.15,
		WeightOrder:       0.10,
		MaxCandidates:     5,
		ScoreThreshold:    0.25,
	}
}
