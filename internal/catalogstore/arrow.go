package catalogstore

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/marcboeker/go-duckdb"

	"github.com/refgenome-id/refgenome-id/internal/refmatch"
)

// LoadAllArrow is the bulk-load counterpart to LoadAll: it streams the
// contigs table through DuckDB's Arrow query path instead of
// database/sql row-by-row scanning, for catalogs large enough that
// per-row scan overhead matters (a full GRCh38 dictionary plus decoys
// and HLA contigs is several thousand rows).
func (s *Store) LoadAllArrow(ctx context.Context) ([]*refmatch.KnownReference, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	refsByID := make(map[string]*refRecord)
	var order []string
	if err := conn.Raw(func(driverConn any) error {
		arrowConn, ok := driverConn.(*duckdb.Conn)
		if !ok {
			return fmt.Errorf("connection does not support Arrow export")
		}
		reader, err := duckdb.NewArrowFromConn(arrowConn)
		if err != nil {
			return fmt.Errorf("create arrow reader: %w", err)
		}
		rr, err := reader.QueryContext(ctx, `
			SELECT r.id, r.display_name, r.assembly, r.source, r.description, r.download_url,
			       c.name, c.length, c.md5, c.aliases, c.sequence_role
			FROM references_ r JOIN contigs c ON c.reference_id = r.id
			ORDER BY r.id, c.ordinal
		`)
		if err != nil {
			return fmt.Errorf("arrow query: %w", err)
		}
		defer rr.Release()

		for rr.Next() {
			rec := rr.Record()
			if err := appendArrowRecord(rec, refsByID, &order); err != nil {
				return err
			}
		}
		return rr.Err()
	}); err != nil {
		return nil, err
	}

	refs := make([]*refmatch.KnownReference, 0, len(order))
	for _, id := range order {
		rr := refsByID[id]
		ref, err := refmatch.NewKnownReference(rr.id, rr.displayName, refmatch.Assembly(rr.assembly),
			refmatch.CatalogSource(rr.source), rr.contigs, rr.description, rr.downloadURL)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

type refRecord struct {
	id, displayName, assembly, source, description, downloadURL string
	contigs                                                      []refmatch.Contig
}

// appendArrowRecord folds one Arrow record batch's rows into the
// per-reference accumulator, preserving first-seen reference order.
func appendArrowRecord(rec arrow.Record, refsByID map[string]*refRecord, order *[]string) error {
	idCol, ok := rec.Column(0).(*array.String)
	if !ok {
		return fmt.Errorf("unexpected column type for id")
	}
	displayNameCol := rec.Column(1).(*array.String)
	assemblyCol := rec.Column(2).(*array.String)
	sourceCol := rec.Column(3).(*array.String)
	descriptionCol := rec.Column(4).(*array.String)
	downloadURLCol := rec.Column(5).(*array.String)
	nameCol := rec.Column(6).(*array.String)
	lengthCol := rec.Column(7).(*array.Int64)
	md5Col := rec.Column(8).(*array.String)
	aliasesCol := rec.Column(9).(*array.String)
	roleCol := rec.Column(10).(*array.String)

	for i := 0; i < int(rec.NumRows()); i++ {
		id := idCol.Value(i)
		rr, exists := refsByID[id]
		if !exists {
			rr = &refRecord{
				id:          id,
				displayName: displayNameCol.Value(i),
				assembly:    assemblyCol.Value(i),
				source:      sourceCol.Value(i),
				description: descriptionCol.Value(i),
				downloadURL: downloadURLCol.Value(i),
			}
			refsByID[id] = rr
			*order = append(*order, id)
		}

		var aliases []string
		if av := aliasesCol.Value(i); av != "" {
			aliases = splitCSV(av)
		}
		rr.contigs = append(rr.contigs, refmatch.Contig{
			Name:         nameCol.Value(i),
			Length:       lengthCol.Value(i),
			MD5:          md5Col.Value(i),
			Aliases:      aliases,
			SequenceRole: refmatch.SequenceRole(roleCol.Value(i)),
		})
	}
	return nil
}

func splitCSV(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
