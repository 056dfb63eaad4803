package graph

import "sort"

// pairKey identifies an unordered entity pair.
type pairKey struct {
	lo, hi string
}

func newPairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// BundleEdges groups triples by unordered entity pair into edge bundles.
// Bundle order is discovery order over the input slice, which keeps ranking
// reproducible for identical inputs.
func BundleEdges(triples []Triple) []Bundle {
	index := make(map[pairKey]int)
	bundles := make([]Bundle, 0)
	for i := range triples {
		key := newPairKey(triples[i].Actor, triples[i].Target)
		at, ok := index[key]
		if !ok {
			at = len(bundles)
			index[key] = at
			bundles = append(bundles, Bundle{A: key.lo, B: key.hi})
		}
		bundles[at].Triples = append(bundles[at].Triples, triples[i])
	}
	return bundles
}

// Degrees counts distinct bundles touching each entity. A self-loop bundle
// counts once.
func Degrees(bundles []Bundle) map[string]int {
	deg := make(map[string]int)
	for i := range bundles {
		deg[bundles[i].A]++
		if bundles[i].B != bundles[i].A {
			deg[bundles[i].B]++
		}
	}
	return deg
}

// Density scores an edge as the sum of its endpoints' unique-edge degrees.
func Density(b *Bundle, deg map[string]int) int {
	return deg[b.A] + deg[b.B]
}

// PruneByDensity keeps the top limit bundles ranked by density descending.
// The sort is stable with discovery order as tie-break, so growing the
// limit never evicts an edge kept at a smaller limit.
func PruneByDensity(bundles []Bundle, limit int) []Bundle {
	if limit <= 0 || limit >= len(bundles) {
		return bundles
	}

	deg := Degrees(bundles)
	ranked := make([]Bundle, len(bundles))
	copy(ranked, bundles)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Density(&ranked[i], deg) > Density(&ranked[j], deg)
	})
	return ranked[:limit]
}

// ExpandBundles flattens kept bundles back into their full underlying
// triple lists, in bundle rank order. A single kept edge may therefore
// surface several timestamped relationships.
func ExpandBundles(bundles []Bundle) []Triple {
	n := 0
	for i := range bundles {
		n += len(bundles[i].Triples)
	}
	out := make([]Triple, 0, n)
	for i := range bundles {
		out = append(out, bundles[i].Triples...)
	}
	return out
}
