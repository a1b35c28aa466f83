// Package samheader parses the @SQ sequence-dictionary lines from a
// SAM, BAM, or CRAM text header (or a standalone .dict file, which
// uses the same @SQ line format). Binary BAM/CRAM containers are
// expected to have already been reduced to their text header (e.g. via
// `samtools view -H`) before reaching this package — decoding the BGZF
// container itself is transport/ingestion plumbing, not header
// matching.
package samheader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/refgenome-id/refgenome-id/internal/refmatch"
)

// Parser reads @SQ records from a SAM-style text header.
type Parser struct {
	r io.Reader
}

// NewParser creates a Parser over an already-open reader positioned at
// the start of a SAM header (or a .dict file).
func NewParser(r io.Reader) *Parser {
	return &Parser{r: r}
}

// NewParserFromFile opens path and wraps it in a Parser. Pass "-" to
// read from stdin.
func NewParserFromFile(path string) (*Parser, func() error, error) {
	if path == "-" {
		return NewParser(os.Stdin), func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open sam header file: %w", err)
	}
	return NewParser(f), f.Close, nil
}

// Parse reads every @SQ line until the header ends (the first
// non-@-prefixed line, or EOF) and returns the contigs it describes, in
// file order.
func (p *Parser) Parse() ([]refmatch.Contig, error) {
	scanner := bufio.NewScanner(p.r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var contigs []refmatch.Contig
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "@") {
			break // end of header
		}
		if !strings.HasPrefix(line, "@SQ\t") {
			continue
		}
		c, err := parseSQLine(line)
		if err != nil {
			return nil, fmt.Errorf("sam header line %d: %w", lineNum, err)
		}
		contigs = append(contigs, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read sam header: %w", err)
	}
	return contigs, nil
}

// parseSQLine parses one @SQ record: tab-delimited TAG:VALUE fields.
// SN and LN are required; M5 (lowercased) becomes the MD5.
func parseSQLine(line string) (refmatch.Contig, error) {
	var c refmatch.Contig
	var haveName, haveLength bool

	fields := strings.Split(line, "\t")
	for _, field := range fields[1:] {
		tag, value, ok := strings.Cut(field, ":")
		if !ok {
			continue
		}
		switch tag {
		case "SN":
			c.Name = value
			haveName = true
		case "LN":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return c, fmt.Errorf("invalid LN %q: %w", value, err)
			}
			c.Length = n
			haveLength = true
		case "M5":
			c.MD5 = strings.ToLower(value)
		case "AN":
			c.Aliases = append(c.Aliases, strings.Split(value, ",")...)
		}
	}
	if !haveName {
		return c, fmt.Errorf("@SQ line missing SN tag")
	}
	if !haveLength {
		return c, fmt.Errorf("@SQ line missing LN tag")
	}
	return c, nil
}
