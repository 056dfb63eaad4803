package graph

// AliasPair is one row of the materialized alias table produced by the
// offline alias job.
type AliasPair struct {
	Original  string
	Canonical string
}

// AliasTable maps raw entity names to canonical names. The table is
// many-to-one and flat: no alias is its own canonical and there are no
// chains, so resolution is a single lookup rather than a traversal.
//
// An AliasTable is immutable after construction and safe for concurrent
// readers.
type AliasTable struct {
	canonical map[string]string
	reverse   map[string][]string
}

// NewAliasTable builds an AliasTable from alias rows. Self-referential rows
// are dropped since identity is the default anyway.
func NewAliasTable(pairs []AliasPair) *AliasTable {
	t := &AliasTable{
		canonical: make(map[string]string, len(pairs)),
		reverse:   make(map[string][]string),
	}
	for _, p := range pairs {
		if p.Original == "" || p.Canonical == "" || p.Original == p.Canonical {
			continue
		}
		t.canonical[p.Original] = p.Canonical
		t.reverse[p.Canonical] = append(t.reverse[p.Canonical], p.Original)
	}
	return t
}

// Resolve maps a raw entity name to its canonical name. Names without an
// alias row resolve to themselves; absence is the expected default case.
func (t *AliasTable) Resolve(name string) string {
	if t == nil {
		return name
	}
	if c, ok := t.canonical[name]; ok {
		return c
	}
	return name
}

// EquivalenceSet returns every name that identifies the same entity as the
// given name: the canonical form plus all originals mapping to it. The
// result always contains the canonical name first and the input name if it
// differs. The lookup is a flat union over the table, never transitive.
func (t *AliasTable) EquivalenceSet(name string) []string {
	c := t.Resolve(name)
	set := []string{c}
	seen := map[string]struct{}{c: {}}
	if name != c {
		set = append(set, name)
		seen[name] = struct{}{}
	}
	if t == nil {
		return set
	}
	for _, orig := range t.reverse[c] {
		if _, ok := seen[orig]; ok {
			continue
		}
		seen[orig] = struct{}{}
		set = append(set, orig)
	}
	return set
}

// ResolveTriples rewrites actor and target of every triple to canonical
// names. It must run before any other stage so that adjacency, degree and
// distance all operate on canonical identities.
func (t *AliasTable) ResolveTriples(triples []Triple) []Triple {
	resolved := make([]Triple, len(triples))
	for i, tr := range triples {
		tr.Actor = t.Resolve(tr.Actor)
		tr.Target = t.Resolve(tr.Target)
		resolved[i] = tr
	}
	return resolved
}
