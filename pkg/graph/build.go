package graph

// Unreachable marks entities with no path from the root entity.
const Unreachable = -1

// adjacency is a locally constructed arena: entity names are interned into
// dense int32 ids so per-query maps never leak into shared state.
type adjacency struct {
	ids   map[string]int32
	names []string
	edges [][]int32
}

func newAdjacency(triples []Triple) *adjacency {
	g := &adjacency{ids: make(map[string]int32)}
	for i := range triples {
		a := g.intern(triples[i].Actor)
		b := g.intern(triples[i].Target)
		// Self-loops stay in the structure; BFS ignores them naturally.
		g.edges[a] = append(g.edges[a], b)
		g.edges[b] = append(g.edges[b], a)
	}
	return g
}

func (g *adjacency) intern(name string) int32 {
	if id, ok := g.ids[name]; ok {
		return id
	}
	id := int32(len(g.names))
	g.ids[name] = id
	g.names = append(g.names, name)
	g.edges = append(g.edges, nil)
	return id
}

// distances runs a single-source BFS from root and returns per-id hop
// counts, Unreachable for entities in other components. When root is not in
// the graph every entity is unreachable; callers surface that as zero
// matches, not as an error.
func (g *adjacency) distances(root string) []int {
	dist := make([]int, len(g.names))
	for i := range dist {
		dist[i] = Unreachable
	}

	start, ok := g.ids[root]
	if !ok {
		return dist
	}

	dist[start] = 0
	queue := []int32{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.edges[cur] {
			if dist[next] != Unreachable {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
		}
	}
	return dist
}

// HopDistances maps every entity appearing in the triple set to its BFS
// distance from root.
func HopDistances(triples []Triple, root string) map[string]int {
	g := newAdjacency(triples)
	dist := g.distances(root)
	out := make(map[string]int, len(g.names))
	for i, name := range g.names {
		out[name] = dist[i]
	}
	return out
}

// FilterByHops keeps triples whose both endpoints lie within maxHops of the
// root. Unreachable endpoints never pass a finite bound.
func FilterByHops(triples []Triple, dist map[string]int, maxHops int) []Triple {
	kept := make([]Triple, 0, len(triples))
	for i := range triples {
		da, okA := dist[triples[i].Actor]
		db, okB := dist[triples[i].Target]
		if !okA || !okB || da == Unreachable || db == Unreachable {
			continue
		}
		if da > maxHops || db > maxHops {
			continue
		}
		kept = append(kept, triples[i])
	}
	return kept
}
