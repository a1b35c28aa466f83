package refmatch

import (
	"fmt"
	"sort"
	"strings"
)

// rcrsLength and oldCambridge are the well-known rCRS-vs-old-Cambridge length
// discrepancy for human mitochondrial DNA.
const (
	rcrsLength    = 16569
	oldCambridge  = 16571
)

// Diagnose converts a scored MatchResult into a prioritized list of
// remediation suggestions, per §4.6. Rules are evaluated in order;
// each may contribute zero or more suggestions. Diagnose is pure.
func Diagnose(query *QueryHeader, result *MatchResult) []Suggestion {
	if result.MatchType == MatchExact {
		return []Suggestion{{Kind: SuggestUseAsIs}}
	}

	var suggestions []Suggestion

	if s, ok := renameSuggestion(query, result); ok {
		suggestions = append(suggestions, s)
	}

	if result.MatchType == MatchReordered {
		suggestions = append(suggestions, Suggestion{
			Kind:     SuggestReorder,
			ToolHint: "picard ReorderSam",
			Command:  fmt.Sprintf("picard ReorderSam I=input.bam O=reordered.bam SEQUENCE_DICTIONARY=%s.dict", result.Reference.ID),
		})
	}

	suggestions = append(suggestions, conflictSuggestions(query, result)...)

	if result.Breakdown.Composite < 0.50 || result.MatchType == MatchNoMatch {
		suggestions = append(suggestions, Suggestion{
			Kind:   SuggestRealign,
			Reason: realignReason(result),
		})
	}

	return suggestions
}

// renameSuggestion looks for a single, consistent chr-prefix rename
// direction across every contig that paired as Renamed, and if found,
// emits one Rename suggestion carrying the appropriate external
// command for that direction. It declines (ok=false) when the
// evidence is mixed or there is nothing to rename.
func renameSuggestion(query *QueryHeader, result *MatchResult) (Suggestion, bool) {
	var added, stripped, other int
	var fromSample, toSample string

	for _, d := range result.ContigDetails {
		if d.Status != StatusRenamed {
			continue
		}
		hadPrefix := strings.HasPrefix(strings.ToLower(d.QueryName), "chr")
		refHasPrefix := strings.HasPrefix(strings.ToLower(d.ReferenceName), "chr")
		switch {
		case !hadPrefix && refHasPrefix:
			added++
			fromSample, toSample = d.QueryName, d.ReferenceName
		case hadPrefix && !refHasPrefix:
			stripped++
			fromSample, toSample = d.QueryName, d.ReferenceName
		default:
			other++
		}
	}

	total := added + stripped + other
	if total == 0 || other > 0 {
		return Suggestion{}, false
	}
	if added > 0 && stripped > 0 {
		return Suggestion{}, false
	}

	if added > 0 {
		return Suggestion{
			Kind:     SuggestRename,
			From:     fromSample,
			To:       toSample,
			ToolHint: "bcftools annotate --rename-chrs",
			Command:  "bcftools annotate --rename-chrs chr_add.txt input.vcf.gz -O z -o renamed.vcf.gz",
		}, true
	}
	return Suggestion{
		Kind:     SuggestRename,
		From:     fromSample,
		To:       toSample,
		ToolHint: "bcftools annotate --rename-chrs",
		Command:  "bcftools annotate --rename-chrs chr_strip.txt input.vcf.gz -O z -o renamed.vcf.gz",
	}, true
}

// conflictSuggestions emits one Replace suggestion per Conflict contig:
// the well-known rCRS/old-Cambridge mitochondrial length discrepancy
// gets its own reason, other length-matched MD5 disagreements get a
// generic "content differs" reason.
func conflictSuggestions(query *QueryHeader, result *MatchResult) []Suggestion {
	var out []Suggestion
	for _, d := range result.ContigDetails {
		if d.Status != StatusConflict {
			continue
		}
		qc := findContigByName(query.Contigs, d.QueryName)
		rc := findContigByName(result.Reference.Contigs, d.ReferenceName)
		if qc == nil || rc == nil {
			continue
		}

		norm := Normalize(qc.Name)
		if norm.CanonicalUCSC == "chrM" &&
			((qc.Length == rcrsLength && rc.Length == oldCambridge) ||
				(qc.Length == oldCambridge && rc.Length == rcrsLength)) {
			out = append(out, Suggestion{
				Kind:   SuggestReplace,
				Contig: d.ReferenceName,
				Reason: "rCRS vs old Cambridge mitochondrial sequence",
			})
			continue
		}

		if qc.Length == rc.Length && qc.MD5 != "" && rc.MD5 != "" && qc.MD5 != rc.MD5 {
			out = append(out, Suggestion{
				Kind:   SuggestReplace,
				Contig: d.ReferenceName,
				Reason: "sequence content differs despite identical length",
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Contig < out[j].Contig })
	return out
}

func findContigByName(contigs []Contig, name string) *Contig {
	for i := range contigs {
		if contigs[i].Name == name {
			return &contigs[i]
		}
	}
	return nil
}

// realignReason summarizes the evidence behind a low-confidence or
// no-match result.
func realignReason(result *MatchResult) string {
	return fmt.Sprintf(
		"low composite score (%.2f) against best candidate %s: %d unmatched query, %d unmatched reference, %d conflicting contigs",
		result.Breakdown.Composite, result.Reference.ID,
		result.Counts[StatusUnmatchedQuery], result.Counts[StatusUnmatchedReference], result.Counts[StatusConflict],
	)
}
