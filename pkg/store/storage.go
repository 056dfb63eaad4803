// Package store defines the read interface of the triple store. The query
// engine never writes through it; triples, aliases and document categories
// are produced by the offline batch jobs and are immutable for the duration
// of a query.
package store

import (
	"context"

	"github.com/relgraph/relgraph/pkg/graph"
)

// MaxQueryRows bounds the number of raw triples a single query may pull
// before graph construction, keeping worst-case latency and memory bounded.
const MaxQueryRows = 100000

// TripleStorage loads the immutable per-request inputs of the query engine.
type TripleStorage interface {
	// LoadTriples returns up to maxRows triples in stable id order, with
	// the document category materialized per triple. maxRows values above
	// MaxQueryRows are capped.
	LoadTriples(ctx context.Context, maxRows int) ([]graph.Triple, error)

	// LoadAliases returns the full alias table.
	LoadAliases(ctx context.Context) ([]graph.AliasPair, error)
}
