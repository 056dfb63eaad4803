package graph

// Engine sequences the query stages over a consistent per-request snapshot
// of the alias table. It holds no mutable state and is safe for concurrent
// use as long as the alias table is not mutated, which NewAliasTable
// guarantees.
type Engine struct {
	aliases *AliasTable
	root    string
}

// NewEngine creates an engine over an alias snapshot with the given root
// (reference) entity. The root name is resolved once so that hop distances
// always originate from a canonical identity.
func NewEngine(aliases *AliasTable, root string) *Engine {
	return &Engine{
		aliases: aliases,
		root:    aliases.Resolve(root),
	}
}

// Root returns the canonical reference entity name.
func (e *Engine) Root() string {
	return e.root
}

// GlobalView runs the full pipeline: alias resolution, predicate filtering,
// keyword relevance, BFS hop filtering, edge dedup and density-bounded
// pruning.
func (e *Engine) GlobalView(triples []Triple, p Params) GlobalResult {
	res := GlobalResult{TotalBeforeFilter: len(triples)}

	resolved := e.aliases.ResolveTriples(triples)
	filtered := p.Filter(resolved)
	filtered = FilterByKeywords(filtered, p.Keywords)

	dist := HopDistances(filtered, e.root)
	if p.HasMaxHops {
		filtered = FilterByHops(filtered, dist, p.MaxHops)
	}

	bundles := BundleEdges(filtered)
	res.TotalUniqueEdges = len(bundles)

	deg := Degrees(bundles)
	kept := PruneByDensity(bundles, p.Limit)
	res.Relationships = ExpandBundles(kept)

	rootLinks := directRootLinks(filtered, e.root)
	res.Entities = make(map[string]EntityStat)
	for i := range kept {
		for _, name := range []string{kept[i].A, kept[i].B} {
			if _, ok := res.Entities[name]; ok {
				continue
			}
			hop := Unreachable
			if d, ok := dist[name]; ok {
				hop = d
			}
			res.Entities[name] = EntityStat{
				Degree:          deg[name],
				HopDistance:     hop,
				DirectRootLinks: rootLinks[name],
			}
		}
	}

	return res
}

// NeighborhoodView restricts the triple set to everything touching the
// given entity (under its full alias equivalence set), then applies the
// cluster, category, date and keyword filters. No edge budget is applied:
// the caller gets the full matching set plus the pre-filter total for
// "X of Y" reporting. An entity touching zero triples yields an empty
// result with total 0.
func (e *Engine) NeighborhoodView(triples []Triple, name string, p Params) NeighborhoodResult {
	res := NeighborhoodResult{Aliases: e.aliases.EquivalenceSet(name)}
	canonical := e.aliases.Resolve(name)

	resolved := e.aliases.ResolveTriples(triples)
	touching := make([]Triple, 0)
	for i := range resolved {
		if resolved[i].Actor == canonical || resolved[i].Target == canonical {
			touching = append(touching, resolved[i])
		}
	}
	res.TotalBeforeFilter = len(touching)

	filtered := p.Filter(touching)
	res.Relationships = FilterByKeywords(filtered, p.Keywords)

	return res
}

// directRootLinks counts, per entity, raw triples directly connecting it to
// the root entity, before dedup.
func directRootLinks(triples []Triple, root string) map[string]int {
	links := make(map[string]int)
	for i := range triples {
		a, b := triples[i].Actor, triples[i].Target
		switch {
		case a == root && b == root:
			links[root]++
		case a == root:
			links[b]++
		case b == root:
			links[a]++
		}
	}
	return links
}
