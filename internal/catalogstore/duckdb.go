// Package catalogstore persists a reference catalog in DuckDB:
// references and their contigs as two related tables, queryable
// locally or straight off S3 via DuckDB's httpfs extension.
package catalogstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/refgenome-id/refgenome-id/internal/refmatch"
)

// Store manages a DuckDB connection backing the reference catalog.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB-backed catalog store at path. An
// empty path opens an in-memory database. A path starting with
// "s3://" loads the httpfs extension so the catalog file itself can
// live in object storage.
func Open(path string) (*Store, error) {
	if path != "" && !strings.HasPrefix(path, "s3://") {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create catalog store directory: %w", err)
			}
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	if strings.HasPrefix(path, "s3://") {
		if _, err := db.Exec("INSTALL httpfs; LOAD httpfs;"); err != nil {
			db.Close()
			return nil, fmt.Errorf("load httpfs extension: %w", err)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure catalog schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB, for the Arrow bulk-load path.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS references_ (
			id VARCHAR PRIMARY KEY,
			display_name VARCHAR,
			assembly VARCHAR,
			source VARCHAR,
			description VARCHAR,
			download_url VARCHAR
		);

		CREATE TABLE IF NOT EXISTS contigs (
			reference_id VARCHAR,
			ordinal INTEGER,
			name VARCHAR,
			length BIGINT,
			md5 VARCHAR,
			aliases VARCHAR,
			sequence_role VARCHAR,
			PRIMARY KEY (reference_id, ordinal)
		);

		CREATE INDEX IF NOT EXISTS idx_contigs_md5 ON contigs(md5);
		CREATE INDEX IF NOT EXISTS idx_contigs_name_length ON contigs(name, length);
	`)
	return err
}

// Put upserts a reference and its contigs.
func (s *Store) Put(r *refmatch.KnownReference) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin catalog tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO references_ (id, display_name, assembly, source, description, download_url)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.ID, r.DisplayName, string(r.Assembly), string(r.Source), r.Description, r.DownloadURL)
	if err != nil {
		return fmt.Errorf("upsert reference %s: %w", r.ID, err)
	}

	if _, err := tx.Exec(`DELETE FROM contigs WHERE reference_id = ?`, r.ID); err != nil {
		return fmt.Errorf("clear contigs for %s: %w", r.ID, err)
	}
	for i, c := range r.Contigs {
		_, err := tx.Exec(`
			INSERT INTO contigs (reference_id, ordinal, name, length, md5, aliases, sequence_role)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, r.ID, i, c.Name, c.Length, nullString(c.MD5), strings.Join(c.Aliases, ","), string(c.SequenceRole))
		if err != nil {
			return fmt.Errorf("insert contig %s/%s: %w", r.ID, c.Name, err)
		}
	}
	return tx.Commit()
}

// PutAll upserts every reference in refs.
func (s *Store) PutAll(refs []*refmatch.KnownReference) error {
	for _, r := range refs {
		if err := s.Put(r); err != nil {
			return err
		}
	}
	return nil
}

// LoadAll reads every reference and its contigs back out, rebuilding
// each as a validated refmatch.KnownReference.
func (s *Store) LoadAll() ([]*refmatch.KnownReference, error) {
	rows, err := s.db.Query(`
		SELECT id, display_name, assembly, source, description, download_url
		FROM references_ ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query references: %w", err)
	}
	defer rows.Close()

	type refRow struct {
		id, displayName, assembly, source, description, downloadURL string
	}
	var refRows []refRow
	for rows.Next() {
		var rr refRow
		if err := rows.Scan(&rr.id, &rr.displayName, &rr.assembly, &rr.source, &rr.description, &rr.downloadURL); err != nil {
			return nil, fmt.Errorf("scan reference: %w", err)
		}
		refRows = append(refRows, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*refmatch.KnownReference, 0, len(refRows))
	for _, rr := range refRows {
		contigs, err := s.loadContigs(rr.id)
		if err != nil {
			return nil, err
		}
		ref, err := refmatch.NewKnownReference(rr.id, rr.displayName, refmatch.Assembly(rr.assembly),
			refmatch.CatalogSource(rr.source), contigs, rr.description, rr.downloadURL)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (s *Store) loadContigs(referenceID string) ([]refmatch.Contig, error) {
	rows, err := s.db.Query(`
		SELECT name, length, md5, aliases, sequence_role
		FROM contigs WHERE reference_id = ? ORDER BY ordinal
	`, referenceID)
	if err != nil {
		return nil, fmt.Errorf("query contigs for %s: %w", referenceID, err)
	}
	defer rows.Close()

	var contigs []refmatch.Contig
	for rows.Next() {
		var name, assemblyRole string
		var length int64
		var md5, aliases sql.NullString
		if err := rows.Scan(&name, &length, &md5, &aliases, &assemblyRole); err != nil {
			return nil, fmt.Errorf("scan contig: %w", err)
		}
		c := refmatch.Contig{
			Name:         name,
			Length:       length,
			MD5:          md5.String,
			SequenceRole: refmatch.SequenceRole(assemblyRole),
		}
		if aliases.String != "" {
			c.Aliases = strings.Split(aliases.String, ",")
		}
		contigs = append(contigs, c)
	}
	return contigs, rows.Err()
}

// ReferenceCount returns the number of references stored.
func (s *Store) ReferenceCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM references_`).Scan(&n)
	return n, err
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
