// Package embedded ships a small starter catalog compiled into the
// binary, so refgenome-id works out of the box without a network
// fetch or a hand-built catalog file: hg38 (UCSC-style GRCh38), hg19
// (UCSC-style GRCh37), and T2T-CHM13 v2.0.
package embedded

import (
	"bytes"
	_ "embed"

	"github.com/refgenome-id/refgenome-id/internal/catalogio"
	"github.com/refgenome-id/refgenome-id/internal/refmatch"
)

//go:embed catalog.json
var catalogJSON []byte

// Load decodes the embedded starter catalog into KnownReference values.
func Load() ([]*refmatch.KnownReference, error) {
	return catalogio.DecodeJSON(bytes.NewReader(catalogJSON))
}

// MustLoad is Load, panicking on error. The embedded catalog is fixed
// at build time, so a decode failure here means the embedded fixture
// itself is broken, not bad runtime input.
func MustLoad() []*refmatch.KnownReference {
	refs, err := Load()
	if err != nil {
		panic("embedded starter catalog failed to decode: " + err.Error())
	}
	return refs
}
