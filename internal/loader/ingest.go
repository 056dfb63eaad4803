package loader

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/relgraph/relgraph/pkg/logger"
)

// tripleColumns is the CopyFrom column order for the triples table.
var tripleColumns = []string{
	"public_id", "doc_id", "ts", "actor", "action", "target", "location", "tags", "top_cluster_ids",
}

type copyConn interface {
	CopyFrom(ctx context.Context, tableName pgxv5.Identifier, columnNames []string, rowSrc pgxv5.CopyFromSource) (int64, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// IngestTriplesCSV bulk-loads an extraction-job triples export. Expected
// header: doc_id, timestamp, actor, action, target, location, tags,
// top_cluster_ids (tags semicolon separated, clusters a JSON int array).
// Rows missing actor or target are skipped and logged; a single bad row
// never fails the batch. Returns the number of rows inserted.
func IngestTriplesCSV(ctx context.Context, conn copyConn, r io.Reader) (int64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read triples header: %w", err)
	}
	col := headerIndex(header)
	for _, required := range []string{"actor", "target"} {
		if _, ok := col[required]; !ok {
			return 0, fmt.Errorf("triples export missing %q column", required)
		}
	}

	rows := make([][]any, 0)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.Warn("Skipping unreadable triples row", "line", line, "err", err)
			continue
		}

		actor := strings.TrimSpace(field(record, col, "actor"))
		target := strings.TrimSpace(field(record, col, "target"))
		if actor == "" || target == "" {
			logger.Warn("Skipping triple without actor or target", "line", line)
			continue
		}

		publicID, err := gonanoid.New()
		if err != nil {
			return 0, fmt.Errorf("failed to generate public id: %w", err)
		}

		rows = append(rows, []any{
			publicID,
			strings.TrimSpace(field(record, col, "doc_id")),
			strings.TrimSpace(field(record, col, "timestamp")),
			actor,
			strings.TrimSpace(field(record, col, "action")),
			target,
			strings.TrimSpace(field(record, col, "location")),
			splitTags(field(record, col, "tags")),
			normalizeClusterJSON(field(record, col, "top_cluster_ids")),
		})
	}

	if len(rows) == 0 {
		return 0, nil
	}

	inserted, err := conn.CopyFrom(ctx, pgxv5.Identifier{"triples"}, tripleColumns, pgxv5.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("failed to copy triples: %w", err)
	}
	return inserted, nil
}

// IngestAliasesCSV replaces the alias table with an alias-job export.
// Expected header: original_name, canonical_name.
func IngestAliasesCSV(ctx context.Context, conn copyConn, r io.Reader) (int64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read aliases header: %w", err)
	}
	col := headerIndex(header)

	rows := make([][]any, 0)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.Warn("Skipping unreadable alias row", "line", line, "err", err)
			continue
		}

		original := strings.TrimSpace(field(record, col, "original_name"))
		canonical := strings.TrimSpace(field(record, col, "canonical_name"))
		if original == "" || canonical == "" || original == canonical {
			continue
		}
		rows = append(rows, []any{original, canonical})
	}

	if _, err := conn.Exec(ctx, "DELETE FROM aliases"); err != nil {
		return 0, fmt.Errorf("failed to clear aliases: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	inserted, err := conn.CopyFrom(
		ctx,
		pgxv5.Identifier{"aliases"},
		[]string{"original_name", "canonical_name"},
		pgxv5.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy aliases: %w", err)
	}
	return inserted, nil
}

const upsertDocumentSQL = `
INSERT INTO documents (doc_id, filename, category)
VALUES ($1, $2, $3)
ON CONFLICT (doc_id) DO UPDATE SET filename = EXCLUDED.filename, category = EXCLUDED.category
`

// SaveDocuments upserts concordance document records. The category applies
// to the whole load file, matching how the release groups volumes.
func SaveDocuments(ctx context.Context, conn copyConn, docs []DocumentRecord, category string) error {
	for _, doc := range docs {
		_, err := conn.Exec(ctx, upsertDocumentSQL, doc.DocIDStart, doc.Filename, category)
		if err != nil {
			return fmt.Errorf("failed to upsert document %s: %w", doc.DocIDStart, err)
		}
	}
	return nil
}

func headerIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return col
}

func field(record []string, col map[string]int, name string) string {
	idx, ok := col[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func splitTags(raw string) []string {
	tags := make([]string, 0)
	for _, tag := range strings.Split(raw, ";") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// normalizeClusterJSON validates the exported cluster column and returns
// nil for anything unparsable, so bad data lands as NULL instead of
// poisoning the column.
func normalizeClusterJSON(raw string) any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	return raw
}
