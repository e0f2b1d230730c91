// Package repository persists fetched corpus documents in PostgreSQL.
//
// Only raw corpora and their provenance are stored here; generation
// results never touch storage.
package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq" // postgres driver
	"golang.org/x/text/language"
)

// Document is one fetched piece of corpus text.
type Document struct {
	Title     string
	Body      string
	URI       string
	Source    string
	Language  language.Tag
	Retrieved time.Time
}

// Repository stores corpus documents and hands them back as corpus text
// for dictionary building.
type Repository interface {
	// SaveDocument inserts a document; re-saving the same URI is a no-op.
	SaveDocument(d *Document) error

	// CorpusText concatenates the bodies of every document fetched from
	// source, in insertion order. An empty source selects everything.
	CorpusText(source string) (string, error)

	// Close releases the underlying connections.
	Close() error
}

type repository struct {
	db *sql.DB
}

// Open connects to PostgreSQL using a lib/pq connection string, e.g.
// "user=sibyl dbname=sibyl sslmode=disable", and prepares the schema.
func Open(conninfo string) (Repository, error) {
	db, err := sql.Open("postgres", conninfo)
	if err != nil {
		return nil, fmt.Errorf("open corpus database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping corpus database: %w", err)
	}

	db.SetMaxOpenConns(20)

	if err := initDatabase(db); err != nil {
		db.Close()
		return nil, err
	}

	return &repository{db: db}, nil
}

func initDatabase(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS corpus_documents (
		id SERIAL PRIMARY KEY,
		title VARCHAR NOT NULL,
		body TEXT NOT NULL,
		uri VARCHAR UNIQUE NOT NULL,
		source VARCHAR NOT NULL,
		lang VARCHAR NOT NULL,
		retrieved TIMESTAMP NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("init corpus schema: %w", err)
	}
	return nil
}

func (r *repository) SaveDocument(d *Document) error {
	retrieved := d.Retrieved
	if retrieved.IsZero() {
		retrieved = time.Now().UTC()
	}

	_, err := r.db.Exec(
		`INSERT INTO corpus_documents (title, body, uri, source, lang, retrieved)
		 VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (uri) DO NOTHING`,
		d.Title, d.Body, d.URI, d.Source, d.Language.String(), retrieved,
	)
	if err != nil {
		return fmt.Errorf("save corpus document %s: %w", d.URI, err)
	}
	return nil
}

func (r *repository) CorpusText(source string) (string, error) {
	query := `SELECT body FROM corpus_documents ORDER BY id`
	args := []any{}
	if source != "" {
		query = `SELECT body FROM corpus_documents WHERE source = $1 ORDER BY id`
		args = append(args, source)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return "", fmt.Errorf("query corpus documents: %w", err)
	}
	defer rows.Close()

	var b strings.Builder
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return "", fmt.Errorf("scan corpus document: %w", err)
		}
		b.WriteString(body)
		b.WriteString("\n")
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate corpus documents: %w", err)
	}

	return b.String(), nil
}

func (r *repository) Close() error {
	return r.db.Close()
}
