// Package vcfheader parses ##contig header lines out of a VCF (or
// VCF.gz) file, without reading the variant records that follow.
package vcfheader

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/refgenome-id/refgenome-id/internal/refmatch"
)

// Parser reads ##contig lines from a VCF header.
type Parser struct {
	path string
}

// NewParser creates a Parser for the VCF (or VCF.gz) file at path.
func NewParser(path string) *Parser {
	return &Parser{path: path}
}

// Parse reads the VCF header and returns the contigs declared by its
// ##contig lines, in file order. It stops at the #CHROM column header
// line, never touching variant records.
func (p *Parser) Parse() ([]refmatch.Contig, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(p.path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open vcf.gz: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	var contigs []refmatch.Contig
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.HasPrefix(line, "#CHROM") {
			break
		}
		if !strings.HasPrefix(line, "##contig=<") {
			continue
		}
		c, err := parseContigLine(line)
		if err != nil {
			return nil, fmt.Errorf("vcf header line %d: %w", lineNum, err)
		}
		contigs = append(contigs, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vcf header: %w", err)
	}
	return contigs, nil
}

// parseContigLine parses `##contig=<ID=chr1,length=249250621,md5=...>`.
// Fields are comma-separated key=value pairs inside the angle brackets.
func parseContigLine(line string) (refmatch.Contig, error) {
	var c refmatch.Contig
	inner := strings.TrimSuffix(strings.TrimPrefix(line, "##contig=<"), ">")

	for _, kv := range splitContigFields(inner) {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		switch strings.ToUpper(key) {
		case "ID":
			c.Name = value
		case "LENGTH":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return c, fmt.Errorf("invalid length %q: %w", value, err)
			}
			c.Length = n
		case "MD5":
			c.MD5 = strings.ToLower(value)
		}
	}
	if c.Name == "" {
		return c, fmt.Errorf("##contig line missing ID")
	}
	return c, nil
}

// splitContigFields splits a comma-separated ##contig attribute list,
// respecting double-quoted values that may themselves contain commas.
func splitContigFields(s string) []string {
	var out []string
	var inQuotes bool
	start := 0
	for i, r := range s {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}
