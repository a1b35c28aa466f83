// Package tsvheader parses a generic delimited sequence dictionary:
// one contig per line as name, length, and an optional MD5 column.
// This is the catch-all adapter for hand-rolled or third-party tools
// that export a dictionary as plain TSV or CSV rather than one of the
// recognized bioinformatics formats.
package tsvheader

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/refgenome-id/refgenome-id/internal/refmatch"
)

// Parser reads contigs from a delimited name,length[,md5] file.
type Parser struct {
	path      string
	delimiter rune
	hasHeader bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithDelimiter overrides the default tab delimiter, e.g. for CSV.
func WithDelimiter(d rune) Option {
	return func(p *Parser) { p.delimiter = d }
}

// WithHeaderRow tells the parser to skip the file's first line.
func WithHeaderRow() Option {
	return func(p *Parser) { p.hasHeader = true }
}

// NewParser creates a Parser for the delimited file at path, tab
// delimited with no header row by default.
func NewParser(path string, opts ...Option) *Parser {
	p := &Parser{path: path, delimiter: '\t'}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads every data row and returns the contigs it describes, in
// file order. Each row must have at least two columns: name and
// length. A third column, if present, is taken as the MD5.
func (p *Parser) Parse() ([]refmatch.Contig, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("open tsv file: %w", err)
	}
	defer f.Close()

	var contigs []refmatch.Contig
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if p.hasHeader && lineNum == 1 {
			continue
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, string(p.delimiter))
		if len(fields) < 2 {
			return nil, fmt.Errorf("tsv line %d: expected at least 2 fields, got %d", lineNum, len(fields))
		}
		length, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("tsv line %d: invalid length %q: %w", lineNum, fields[1], err)
		}
		c := refmatch.Contig{Name: strings.TrimSpace(fields[0]), Length: length}
		if len(fields) >= 3 {
			c.MD5 = strings.ToLower(strings.TrimSpace(fields[2]))
		}
		contigs = append(contigs, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tsv file: %w", err)
	}
	return contigs, nil
}
