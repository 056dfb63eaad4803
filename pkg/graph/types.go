// Package graph implements the relationship graph query and pruning engine.
// It takes a raw set of subject-action-object triples plus user filter
// parameters and produces a bounded, deduplicated, importance-ranked graph.
//
// All derived structures (bundles, degrees, distances) are query-scoped:
// they are built fresh from the inputs of a single call and never shared
// across requests.
package graph

// Triple is a single extracted fact: actor did action to target. Actor and
// target hold canonical names once ResolveTriples has run; before that they
// are the free-text names produced by the extraction job.
type Triple struct {
	ID        int64    `json:"id"`
	PublicID  string   `json:"public_id,omitempty"`
	DocID     string   `json:"doc_id"`
	Timestamp string   `json:"timestamp,omitempty"`
	Actor     string   `json:"actor"`
	Action    string   `json:"action"`
	Target    string   `json:"target"`
	Location  string   `json:"location,omitempty"`
	Tags      []string `json:"tags,omitempty"`

	// TopClusters holds the up-to-3 most relevant topic cluster IDs,
	// materialized offline per triple. ClustersValid is false when the
	// persisted cluster data could not be parsed; such triples are excluded
	// from cluster-filtered results but pass when no cluster filter is set.
	TopClusters   []int64 `json:"-"`
	ClustersValid bool    `json:"-"`

	// Category of the source document, materialized by the store.
	Category string `json:"-"`
}

// Bundle collapses all triples sharing the same unordered entity pair into
// one graph edge. Triples keeps discovery order.
type Bundle struct {
	A       string
	B       string
	Triples []Triple
}

// Size returns the number of underlying triples.
func (b *Bundle) Size() int {
	return len(b.Triples)
}

// EntityStat carries the per-query derived attributes of an entity.
type EntityStat struct {
	// Degree is the number of distinct bundles touching the entity.
	Degree int
	// HopDistance is the BFS distance from the root entity, -1 if
	// unreachable.
	HopDistance int
	// DirectRootLinks counts raw triples directly connecting the entity to
	// the root entity, before dedup.
	DirectRootLinks int
}

// GlobalResult is the outcome of a global relationship query.
type GlobalResult struct {
	// Relationships is the expansion of all kept bundles, in bundle rank
	// order.
	Relationships []Triple
	// TotalUniqueEdges is the bundle count before the edge budget was
	// applied.
	TotalUniqueEdges int
	// TotalBeforeFilter is the raw triple count before any filtering.
	TotalBeforeFilter int
	// Entities maps canonical names of kept entities to their derived
	// attributes.
	Entities map[string]EntityStat
}

// NeighborhoodResult is the outcome of a single-entity neighborhood query.
// No edge budget is applied; Relationships is the full matching set.
type NeighborhoodResult struct {
	Relationships []Triple
	// TotalBeforeFilter counts all triples touching the entity before the
	// cluster/category/date/keyword filters ran.
	TotalBeforeFilter int
	// Aliases is the alias equivalence set of the queried name, including
	// the canonical form.
	Aliases []string
}
