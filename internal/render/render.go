// Package render formats a ranked list of refmatch.MatchResult values
// for human and machine consumption: a text summary table, JSON for
// programmatic callers, and TSV for spreadsheet/pipeline consumption.
package render

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/refgenome-id/refgenome-id/internal/refmatch"
)

// TextWriter writes a human-readable summary, one reference per
// block, most similar to `identify`'s default console output.
type TextWriter struct {
	w       *bufio.Writer
	explain bool
}

// NewTextWriter creates a TextWriter. When explain is true, each
// result's per-contig pairing detail is printed alongside the summary.
func NewTextWriter(w io.Writer, explain bool) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w), explain: explain}
}

// Write renders results in rank order.
func (tw *TextWriter) Write(results []*refmatch.MatchResult) error {
	if len(results) == 0 {
		_, err := tw.w.WriteString("no candidate reference matched\n")
		return err
	}
	for i, r := range results {
		if err := tw.writeOne(i+1, r); err != nil {
			return err
		}
	}
	return nil
}

func (tw *TextWriter) writeOne(rank int, r *refmatch.MatchResult) error {
	fmt.Fprintf(tw.w, "%d. %s (%s, %s)\n", rank, r.Reference.DisplayName, r.Reference.Assembly, r.Reference.Source)
	fmt.Fprintf(tw.w, "   match: %s   confidence: %s   composite: %.4f\n", r.MatchType, r.Confidence, r.Breakdown.Composite)
	fmt.Fprintf(tw.w, "   md5_jaccard=%.4f  name_length_jaccard=%.4f  md5_coverage=%.4f  order=%.4f\n",
		r.Breakdown.MD5Jaccard, r.Breakdown.NameLengthJaccard, r.Breakdown.MD5Coverage, r.Breakdown.Order)
	if len(r.Counts) > 0 {
		parts := make([]string, 0, len(r.Counts))
		for _, status := range []refmatch.ContigMatchStatus{
			refmatch.StatusExact, refmatch.StatusRenamed, refmatch.StatusNameLength,
			refmatch.StatusConflict, refmatch.StatusUnmatchedQuery, refmatch.StatusUnmatchedReference,
		} {
			if n, ok := r.Counts[status]; ok {
				parts = append(parts, fmt.Sprintf("%s=%d", status, n))
			}
		}
		fmt.Fprintf(tw.w, "   contigs: %s\n", strings.Join(parts, " "))
	}
	for _, s := range r.Suggestions {
		fmt.Fprintf(tw.w, "   suggestion: %s\n", formatSuggestion(s))
	}
	if tw.explain {
		for _, d := range r.ContigDetails {
			fmt.Fprintf(tw.w, "     %-20s %-20s %s\n", d.QueryName, d.ReferenceName, d.Status)
		}
	}
	_, err := tw.w.WriteString("\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TextWriter) Flush() error {
	return tw.w.Flush()
}

func formatSuggestion(s refmatch.Suggestion) string {
	switch s.Kind {
	case refmatch.SuggestRename:
		return fmt.Sprintf("rename %q to %q (%s)", s.From, s.To, s.Command)
	case refmatch.SuggestReorder:
		return fmt.Sprintf("reorder contigs to match reference (%s)", s.Command)
	case refmatch.SuggestReplace:
		return fmt.Sprintf("replace contig %q: %s", s.Contig, s.Reason)
	case refmatch.SuggestRealign:
		return fmt.Sprintf("realign recommended: %s", s.Reason)
	case refmatch.SuggestUseAsIs:
		return "no changes needed"
	default:
		return string(s.Kind)
	}
}

// jsonSuggestion and jsonResult mirror MatchResult in a stable
// wire-friendly shape; a renderer, not a storage format, so it is free
// to flatten the reference pointer into its identifying fields.
type jsonSuggestion struct {
	Kind     refmatch.SuggestionKind `json:"kind"`
	From     string                  `json:"from,omitempty"`
	To       string                  `json:"to,omitempty"`
	ToolHint string                  `json:"tool_hint,omitempty"`
	Command  string                  `json:"command,omitempty"`
	Contig   string                  `json:"contig,omitempty"`
	Reason   string                  `json:"reason,omitempty"`
}

type jsonContigDetail struct {
	QueryName     string                      `json:"query_name"`
	ReferenceName string                      `json:"reference_name"`
	Status        refmatch.ContigMatchStatus  `json:"status"`
}

type jsonResult struct {
	ReferenceID   string                            `json:"reference_id"`
	DisplayName   string                            `json:"display_name"`
	Assembly      refmatch.Assembly                 `json:"assembly"`
	Source        refmatch.CatalogSource             `json:"source"`
	MatchType     refmatch.MatchType                `json:"match_type"`
	Confidence    refmatch.Confidence               `json:"confidence"`
	Breakdown     refmatch.ScoreBreakdown           `json:"breakdown"`
	Reordered     bool                              `json:"reordered"`
	Counts        map[refmatch.ContigMatchStatus]int `json:"counts,omitempty"`
	Suggestions   []jsonSuggestion                  `json:"suggestions,omitempty"`
	ContigDetails []jsonContigDetail                `json:"contig_details,omitempty"`
}

// WriteJSON encodes results as a JSON array, omitting per-contig detail
// unless explain is true (the detail can be large for big dictionaries).
func WriteJSON(w io.Writer, results []*refmatch.MatchResult, explain bool) error {
	out := make([]jsonResult, 0, len(results))
	for _, r := range results {
		jr := jsonResult{
			ReferenceID: r.Reference.ID,
			DisplayName: r.Reference.DisplayName,
			Assembly:    r.Reference.Assembly,
			Source:      r.Reference.Source,
			MatchType:   r.MatchType,
			Confidence:  r.Confidence,
			Breakdown:   r.Breakdown,
			Reordered:   r.Reordered,
			Counts:      r.Counts,
		}
		for _, s := range r.Suggestions {
			jr.Suggestions = append(jr.Suggestions, jsonSuggestion{
				Kind: s.Kind, From: s.From, To: s.To, ToolHint: s.ToolHint,
				Command: s.Command, Contig: s.Contig, Reason: s.Reason,
			})
		}
		if explain {
			for _, d := range r.ContigDetails {
				jr.ContigDetails = append(jr.ContigDetails, jsonContigDetail{
					QueryName: d.QueryName, ReferenceName: d.ReferenceName, Status: d.Status,
				})
			}
		}
		out = append(out, jr)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteTSV writes one row per result: reference id, assembly, source,
// match type, confidence, the composite score, and the four factor
// scores.
func WriteTSV(w io.Writer, results []*refmatch.MatchResult) error {
	bw := bufio.NewWriter(w)
	header := []string{
		"reference_id", "assembly", "source", "match_type", "confidence",
		"composite", "md5_jaccard", "name_length_jaccard", "md5_coverage", "order",
	}
	if _, err := bw.WriteString(strings.Join(header, "\t") + "\n"); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Reference.ID,
			string(r.Reference.Assembly),
			string(r.Reference.Source),
			string(r.MatchType),
			string(r.Confidence),
			fmt.Sprintf("%.4f", r.Breakdown.Composite),
			fmt.Sprintf("%.4f", r.Breakdown.MD5Jaccard),
			fmt.Sprintf("%.4f", r.Breakdown.NameLengthJaccard),
			fmt.Sprintf("%.4f", r.Breakdown.MD5Coverage),
			fmt.Sprintf("%.4f", r.Breakdown.Order),
		}
		if _, err := bw.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
