package catalogio

import (
	"fmt"
	"io"
	"os"

	"github.com/refgenome-id/refgenome-id/internal/refmatch"
	"gopkg.in/yaml.v3"
)

// yamlDoc is the hand-authored-catalog flavor: the same shape as the
// JSON wire document, with the same field names, and the looser
// quoting YAML allows. Small curated catalogs (lab-specific references,
// a handful of custom assemblies) are easier to maintain by hand in
// this form than in JSON.
type yamlDoc struct {
	Version    string               `yaml:"version"`
	References []yamlReferenceEntry `yaml:"references"`
}

type yamlReferenceEntry struct {
	ID          string            `yaml:"id"`
	DisplayName string            `yaml:"display_name"`
	Assembly    string            `yaml:"assembly"`
	Source      string            `yaml:"source"`
	Description string            `yaml:"description"`
	DownloadURL string            `yaml:"download_url"`
	Contigs     []yamlContigEntry `yaml:"contigs"`
}

type yamlContigEntry struct {
	Name         string   `yaml:"name"`
	Length       int64    `yaml:"length"`
	MD5          string   `yaml:"md5"`
	Aliases      []string `yaml:"aliases"`
	SequenceRole string   `yaml:"sequence_role"`
}

// LoadYAMLFile reads and decodes a YAML catalog document from path.
func LoadYAMLFile(path string) ([]*refmatch.KnownReference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()
	return DecodeYAML(f)
}

// DecodeYAML reads a YAML catalog document from r and builds the
// KnownReference values it describes, sharing validation with the
// JSON path via refmatch.NewKnownReference.
func DecodeYAML(r io.Reader) ([]*refmatch.KnownReference, error) {
	var doc yamlDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog yaml: %w", err)
	}

	entries := make([]referenceEntry, 0, len(doc.References))
	for _, e := range doc.References {
		contigs := make([]contigEntry, 0, len(e.Contigs))
		for _, c := range e.Contigs {
			contigs = append(contigs, contigEntry{
				Name:         c.Name,
				Length:       c.Length,
				MD5:          c.MD5,
				Aliases:      c.Aliases,
				SequenceRole: c.SequenceRole,
			})
		}
		entries = append(entries, referenceEntry{
			ID:          e.ID,
			DisplayName: e.DisplayName,
			Assembly:    e.Assembly,
			Source:      e.Source,
			Description: e.Description,
			DownloadURL: e.DownloadURL,
			Contigs:     contigs,
		})
	}
	return buildReferences(entries)
}
