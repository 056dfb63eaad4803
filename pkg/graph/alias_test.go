package graph

import (
	"reflect"
	"sort"
	"testing"
)

func testAliasTable() *AliasTable {
	return NewAliasTable([]AliasPair{
		{Original: "J. Epstein", Canonical: "Jeffrey Epstein"},
		{Original: "Jeff Epstein", Canonical: "Jeffrey Epstein"},
		{Original: "G. Maxwell", Canonical: "Ghislaine Maxwell"},
	})
}

func TestResolve(t *testing.T) {
	table := testAliasTable()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"aliased name", "J. Epstein", "Jeffrey Epstein"},
		{"second alias", "Jeff Epstein", "Jeffrey Epstein"},
		{"canonical passes through", "Jeffrey Epstein", "Jeffrey Epstein"},
		{"unknown passes through", "Unknown Person", "Unknown Person"},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Resolve(tt.in)
			if got != tt.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	table := testAliasTable()
	for _, name := range []string{"J. Epstein", "Jeffrey Epstein", "Nobody"} {
		once := table.Resolve(name)
		twice := table.Resolve(once)
		if once != twice {
			t.Fatalf("Resolve not idempotent for %q: %q != %q", name, once, twice)
		}
	}
}

func TestResolveDropsSelfReferentialRows(t *testing.T) {
	table := NewAliasTable([]AliasPair{{Original: "A", Canonical: "A"}})
	if got := table.Resolve("A"); got != "A" {
		t.Fatalf("Resolve(\"A\") = %q, want \"A\"", got)
	}
	if got := table.EquivalenceSet("A"); !reflect.DeepEqual(got, []string{"A"}) {
		t.Fatalf("EquivalenceSet(\"A\") = %v, want [A]", got)
	}
}

func TestEquivalenceSet(t *testing.T) {
	table := testAliasTable()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"from alias", "J. Epstein", []string{"J. Epstein", "Jeff Epstein", "Jeffrey Epstein"}},
		{"from canonical", "Jeffrey Epstein", []string{"J. Epstein", "Jeff Epstein", "Jeffrey Epstein"}},
		{"unknown name", "Nobody", []string{"Nobody"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.EquivalenceSet(tt.in)
			sort.Strings(got)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("EquivalenceSet(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveTriples(t *testing.T) {
	table := testAliasTable()
	triples := []Triple{
		{Actor: "J. Epstein", Target: "G. Maxwell"},
		{Actor: "Someone", Target: "Jeff Epstein"},
	}

	resolved := table.ResolveTriples(triples)

	if resolved[0].Actor != "Jeffrey Epstein" || resolved[0].Target != "Ghislaine Maxwell" {
		t.Fatalf("unexpected first triple: %+v", resolved[0])
	}
	if resolved[1].Actor != "Someone" || resolved[1].Target != "Jeffrey Epstein" {
		t.Fatalf("unexpected second triple: %+v", resolved[1])
	}
	// Input must stay untouched.
	if triples[0].Actor != "J. Epstein" {
		t.Fatalf("ResolveTriples mutated its input: %+v", triples[0])
	}
}
