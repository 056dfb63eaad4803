package pgx

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/relgraph/relgraph/pkg/graph"
	"github.com/relgraph/relgraph/pkg/logger"
	"github.com/relgraph/relgraph/pkg/store"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
}

// TripleDBStorage implements store.TripleStorage on PostgreSQL. All reads
// are single statements over immutable batch-job output, so no transaction
// or locking is needed.
type TripleDBStorage struct {
	conn pgxIConn
}

// NewTripleDBStorage creates a TripleDBStorage over an existing connection
// or pool.
func NewTripleDBStorage(conn pgxIConn) *TripleDBStorage {
	return &TripleDBStorage{conn: conn}
}

const loadTriplesSQL = `
SELECT t.id, t.public_id, t.doc_id, COALESCE(t.ts, ''),
       t.actor, COALESCE(t.action, ''), t.target, COALESCE(t.location, ''),
       COALESCE(t.tags, '{}'), COALESCE(t.top_cluster_ids::text, ''),
       COALESCE(d.category, '')
FROM triples t
LEFT JOIN documents d ON d.doc_id = t.doc_id
ORDER BY t.id
LIMIT $1
`

// LoadTriples reads up to maxRows triples in id order. A row with malformed
// cluster data is kept with ClustersValid=false so it can still serve
// unclustered queries; a row that fails to scan entirely is skipped and
// logged, never failing the batch.
func (s *TripleDBStorage) LoadTriples(ctx context.Context, maxRows int) ([]graph.Triple, error) {
	if maxRows <= 0 || maxRows > store.MaxQueryRows {
		maxRows = store.MaxQueryRows
	}

	rows, err := s.conn.Query(ctx, loadTriplesSQL, maxRows)
	if err != nil {
		return nil, fmt.Errorf("failed to query triples: %w", err)
	}
	defer rows.Close()

	triples := make([]graph.Triple, 0)
	for rows.Next() {
		var t graph.Triple
		var clusterJSON string
		err := rows.Scan(
			&t.ID, &t.PublicID, &t.DocID, &t.Timestamp,
			&t.Actor, &t.Action, &t.Target, &t.Location,
			&t.Tags, &clusterJSON, &t.Category,
		)
		if err != nil {
			logger.Warn("Skipping unreadable triple row", "err", err)
			continue
		}
		if t.Actor == "" || t.Target == "" {
			continue
		}
		t.TopClusters, t.ClustersValid = parseClusterIDs(clusterJSON)
		triples = append(triples, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read triples: %w", err)
	}

	return triples, nil
}

const loadAliasesSQL = `
SELECT original_name, canonical_name
FROM aliases
ORDER BY original_name
`

// LoadAliases reads the full alias table produced by the offline alias job.
func (s *TripleDBStorage) LoadAliases(ctx context.Context) ([]graph.AliasPair, error) {
	rows, err := s.conn.Query(ctx, loadAliasesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query aliases: %w", err)
	}
	defer rows.Close()

	pairs := make([]graph.AliasPair, 0)
	for rows.Next() {
		var p graph.AliasPair
		if err := rows.Scan(&p.Original, &p.Canonical); err != nil {
			logger.Warn("Skipping unreadable alias row", "err", err)
			continue
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read aliases: %w", err)
	}

	return pairs, nil
}

// parseClusterIDs decodes the materialized top_cluster_ids column. The
// second return is false when the persisted JSON is missing or unparsable;
// such triples are excluded from cluster-filtered results but remain
// available otherwise.
func parseClusterIDs(raw string) ([]int64, bool) {
	if raw == "" {
		return nil, false
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, false
	}
	return ids, true
}
