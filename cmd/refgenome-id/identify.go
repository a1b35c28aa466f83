package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/refgenome-id/refgenome-id/internal/asmreport"
	"github.com/refgenome-id/refgenome-id/internal/faidx"
	"github.com/refgenome-id/refgenome-id/internal/header"
	"github.com/refgenome-id/refgenome-id/internal/refmatch"
	"github.com/refgenome-id/refgenome-id/internal/render"
	"github.com/refgenome-id/refgenome-id/internal/samheader"
	"github.com/refgenome-id/refgenome-id/internal/tsvheader"
	"github.com/refgenome-id/refgenome-id/internal/vcfheader"
)

func newIdentifyCmd() *cobra.Command {
	var (
		inputFormat string
		outputFormat string
		explain      bool
	)

	cmd := &cobra.Command{
		Use:   "identify <input-file>",
		Short: "Identify which reference genome an input's sequence dictionary matches",
		Long: `Reads a sequence dictionary from a SAM/BAM/CRAM text header, a .dict file,
a FASTA index (.fai), a VCF's ##contig lines, or an NCBI assembly
report, and reports the ranked list of catalog references it best
matches.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIdentify(args[0], inputFormat, outputFormat, explain)
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "", "Input format: sam, dict, fai, vcf, asmreport, tsv (auto-detected from extension if not specified)")
	cmd.Flags().StringVarP(&outputFormat, "output-format", "f", "text", "Output format: text, json, tsv")
	cmd.Flags().BoolVar(&explain, "explain", false, "Print the full per-contig pairing breakdown for every match")

	return cmd
}

func runIdentify(path, inputFormat, outputFormat string, explain bool) error {
	query, err := buildQueryHeader(path, inputFormat)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	refs, err := loadCatalog()
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	idx := refmatch.NewCatalogIndex(refs)

	cfg, err := loadMatchingConfig()
	if err != nil {
		return fmt.Errorf("invalid matching config: %w", err)
	}

	results, err := refmatch.FindMatches(query, idx, cfg)
	if err != nil {
		return fmt.Errorf("matching: %w", err)
	}

	switch outputFormat {
	case "json":
		return render.WriteJSON(os.Stdout, results, explain)
	case "tsv":
		return render.WriteTSV(os.Stdout, results)
	case "text", "":
		tw := render.NewTextWriter(os.Stdout, explain)
		if err := tw.Write(results); err != nil {
			return err
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q (expected text, json, or tsv)", outputFormat)
	}
}

func buildQueryHeader(path, inputFormat string) (*refmatch.QueryHeader, error) {
	format := inputFormat
	if format == "" {
		format = detectInputFormat(path)
	}

	switch format {
	case "sam", "dict":
		parser, closeFn, err := samheader.NewParserFromFile(path)
		if err != nil {
			return nil, err
		}
		defer closeFn()
		return header.Build(parser)
	case "fai":
		return header.Build(faidx.NewParser(path))
	case "vcf":
		return header.Build(vcfheader.NewParser(path))
	case "asmreport":
		return header.Build(asmreport.NewParser(path))
	case "tsv":
		var opts []tsvheader.Option
		if strings.HasSuffix(strings.ToLower(path), ".csv") {
			opts = append(opts, tsvheader.WithDelimiter(','))
		}
		return header.Build(tsvheader.NewParser(path, opts...))
	default:
		return nil, fmt.Errorf("unknown input format %q; pass --input-format explicitly", format)
	}
}

// detectInputFormat guesses the input format from path's extension and
// a few well-known filename conventions: "-" (stdin) is SAM, .fai is a
// FASTA index, .vcf/.vcf.gz is VCF, .dict is a sequence dictionary, a
// name containing "assembly_report" is an NCBI assembly report, and
// .tsv/.csv is the generic tabular format. Everything else defaults to
// the SAM-style text header (the most common case: output of
// `samtools view -H`).
func detectInputFormat(path string) string {
	lower := strings.ToLower(path)
	switch {
	case path == "-":
		return "sam"
	case strings.HasSuffix(lower, ".fai"):
		return "fai"
	case strings.HasSuffix(lower, ".vcf"), strings.HasSuffix(lower, ".vcf.gz"):
		return "vcf"
	case strings.HasSuffix(lower, ".dict"):
		return "dict"
	case strings.Contains(lower, "assembly_report"):
		return "asmreport"
	case strings.HasSuffix(lower, ".tsv"), strings.HasSuffix(lower, ".csv"):
		return "tsv"
	default:
		return "sam"
	}
}
