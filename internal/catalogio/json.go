// Package catalogio decodes a reference catalog from its wire forms
// (the required JSON document and a supplementary YAML flavor for
// hand-authored catalogs) into refmatch.KnownReference values.
package catalogio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/refgenome-id/refgenome-id/internal/refmatch"
)

// catalogDoc mirrors the wire document's top-level shape. Unknown
// fields are ignored by encoding/json by default; missing optional
// fields take their Go zero value, matching "missing optional fields
// default".
type catalogDoc struct {
	Version    string           `json:"version"`
	References []referenceEntry `json:"references"`
}

type referenceEntry struct {
	ID          string       `json:"id"`
	DisplayName string       `json:"display_name"`
	Assembly    string       `json:"assembly"`
	Source      string       `json:"source"`
	Description string       `json:"description"`
	DownloadURL string       `json:"download_url"`
	Contigs     []contigEntry `json:"contigs"`
}

type contigEntry struct {
	Name         string   `json:"name"`
	Length       int64    `json:"length"`
	MD5          string   `json:"md5"`
	Aliases      []string `json:"aliases"`
	SequenceRole string   `json:"sequence_role"`
}

// LoadJSONFile reads and decodes a JSON catalog document from path.
func LoadJSONFile(path string) ([]*refmatch.KnownReference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()
	return DecodeJSON(f)
}

// DecodeJSON reads a JSON catalog document from r and builds the
// KnownReference values it describes, validating each entry against
// the core's InvalidCatalog rules via refmatch.NewKnownReference.
func DecodeJSON(r io.Reader) ([]*refmatch.KnownReference, error) {
	var doc catalogDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog json: %w", err)
	}
	return buildReferences(doc.References)
}

// EncodeJSON writes refs back out as the wire-format JSON document,
// indented for readability. Used by catalog export/round-trip paths.
func EncodeJSON(w io.Writer, refs []*refmatch.KnownReference) error {
	doc := catalogDoc{Version: "1.0", References: make([]referenceEntry, 0, len(refs))}
	for _, r := range refs {
		doc.References = append(doc.References, toEntry(r))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func buildReferences(entries []referenceEntry) ([]*refmatch.KnownReference, error) {
	refs := make([]*refmatch.KnownReference, 0, len(entries))
	for _, e := range entries {
		contigs := make([]refmatch.Contig, 0, len(e.Contigs))
		for _, c := range e.Contigs {
			contigs = append(contigs, refmatch.Contig{
				Name:         c.Name,
				Length:       c.Length,
				MD5:          c.MD5,
				Aliases:      c.Aliases,
				SequenceRole: refmatch.SequenceRole(c.SequenceRole),
			})
		}
		ref, err := refmatch.NewKnownReference(
			e.ID, e.DisplayName, refmatch.Assembly(e.Assembly), refmatch.CatalogSource(e.Source),
			contigs, e.Description, e.DownloadURL,
		)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func toEntry(r *refmatch.KnownReference) referenceEntry {
	contigs := make([]contigEntry, 0, len(r.Contigs))
	for _, c := range r.Contigs {
		contigs = append(contigs, contigEntry{
			Name:         c.Name,
			Length:       c.Length,
			MD5:          c.MD5,
			Aliases:      c.Aliases,
			SequenceRole: string(c.SequenceRole),
		})
	}
	return referenceEntry{
		ID:          r.ID,
		DisplayName: r.DisplayName,
		Assembly:    string(r.Assembly),
		Source:      string(r.Source),
		Description: r.Description,
		DownloadURL: r.DownloadURL,
		Contigs:     contigs,
	}
}
