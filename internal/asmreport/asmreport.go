// Package asmreport parses an NCBI assembly_report.txt file: the
// tab-delimited "Sequence-Report" table NCBI ships alongside every
// assembly, keyed on GenBank/RefSeq accession with a UCSC-style name
// column that is "na" for most non-primary sequences.
package asmreport

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/refgenome-id/refgenome-id/internal/refmatch"
)

// column indexes within the report's tab-delimited body, per NCBI's
// documented header:
// Sequence-Name, Sequence-Role, Assigned-Molecule, Assigned-Molecule-Location/Type,
// GenBank-Accn, Relationship, RefSeq-Accn, Assembly-Unit, Sequence-Length, UCSC-style-name
const (
	colSequenceName = 0
	colSequenceRole = 1
	colGenBankAccn  = 4
	colRefSeqAccn   = 6
	colSequenceLen  = 8
	colUCSCName     = 9
	minColumns      = 10
)

// Parser reads contigs out of an assembly_report.txt file.
type Parser struct {
	path string
}

// NewParser creates a Parser for the assembly report at path.
func NewParser(path string) *Parser {
	return &Parser{path: path}
}

// Parse reads the report body (skipping "#"-prefixed comment and
// header lines) and returns one contig per row. The contig's Name
// prefers the UCSC-style-name column when it is present and not "na";
// otherwise it falls back to Sequence-Name. GenBank and RefSeq
// accessions are recorded as aliases. MD5 is never present in an
// assembly report.
func (p *Parser) Parse() ([]refmatch.Contig, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("open assembly report: %w", err)
	}
	defer f.Close()

	var contigs []refmatch.Contig
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < minColumns {
			return nil, fmt.Errorf("assembly report line %d: expected at least %d columns, got %d", lineNum, minColumns, len(fields))
		}

		length, err := strconv.ParseInt(strings.TrimSpace(fields[colSequenceLen]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("assembly report line %d: invalid Sequence-Length %q: %w", lineNum, fields[colSequenceLen], err)
		}

		c := refmatch.Contig{
			Name:         resolveName(fields[colSequenceName], fields[colUCSCName]),
			Length:       length,
			SequenceRole: resolveRole(fields[colSequenceRole]),
		}
		if gb := strings.TrimSpace(fields[colGenBankAccn]); gb != "" && gb != "na" {
			c.Aliases = append(c.Aliases, gb)
		}
		if rs := strings.TrimSpace(fields[colRefSeqAccn]); rs != "" && rs != "na" {
			c.Aliases = append(c.Aliases, rs)
		}
		contigs = append(contigs, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read assembly report: %w", err)
	}
	return contigs, nil
}

// resolveName prefers the UCSC-style-name column whenever NCBI actually
// populated it; most scaffolds and patches carry "na" there and fall
// back to the plain Sequence-Name column.
func resolveName(sequenceName, ucscName string) string {
	ucscName = strings.TrimSpace(ucscName)
	if ucscName != "" && ucscName != "na" {
		return ucscName
	}
	return strings.TrimSpace(sequenceName)
}

func resolveRole(role string) refmatch.SequenceRole {
	switch strings.TrimSpace(role) {
	case "assembled-molecule":
		return refmatch.RoleAssembledMolecule
	case "fix-patch":
		return refmatch.RoleFixPatch
	case "novel-patch":
		return refmatch.RoleNovelPatch
	case "alt-scaffold":
		return refmatch.RoleAltScaffold
	case "unlocalized-scaffold":
		return refmatch.RoleUnlocalizedScaffold
	case "unplaced-scaffold":
		return refmatch.RoleUnplacedScaffold
	default:
		return refmatch.RoleOther
	}
}
