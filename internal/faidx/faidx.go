// Package faidx parses a FASTA index (.fai) file: name, length, and
// three byte-offset columns this package ignores. MD5 is never present
// in .fai output, so every contig it produces has an empty MD5.
package faidx

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/refgenome-id/refgenome-id/internal/refmatch"
)

// Parser reads contigs from a .fai file.
type Parser struct {
	path string
}

// NewParser creates a Parser for the .fai file at path.
func NewParser(path string) *Parser {
	return &Parser{path: path}
}

// Parse reads every row of the index and returns the contigs it
// describes, in file order.
func (p *Parser) Parse() ([]refmatch.Contig, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("open fai file: %w", err)
	}
	defer f.Close()

	var contigs []refmatch.Contig
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\n")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("fai line %d: expected at least 2 tab-separated fields, got %d", lineNum, len(fields))
		}
		length, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("fai line %d: invalid length %q: %w", lineNum, fields[1], err)
		}
		contigs = append(contigs, refmatch.Contig{Name: fields[0], Length: length})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read fai file: %w", err)
	}
	return contigs, nil
}
