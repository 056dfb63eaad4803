package graph

import (
	"sort"
	"testing"
)

func testEngine() *Engine {
	aliases := NewAliasTable([]AliasPair{
		{Original: "J. Epstein", Canonical: "Jeffrey Epstein"},
		{Original: "G. Maxwell", Canonical: "Ghislaine Maxwell"},
	})
	return NewEngine(aliases, "Jeffrey Epstein")
}

func testTriples() []Triple {
	return []Triple{
		{ID: 1, Actor: "J. Epstein", Action: "flew with", Target: "Ghislaine Maxwell", Timestamp: "2001-03-10", ClustersValid: true, TopClusters: []int64{1}},
		{ID: 2, Actor: "Jeffrey Epstein", Action: "called", Target: "G. Maxwell", ClustersValid: true, TopClusters: []int64{2}},
		{ID: 3, Actor: "Ghislaine Maxwell", Action: "hired", Target: "Pilot", Timestamp: "2002-07-01", ClustersValid: true, TopClusters: []int64{1}},
		{ID: 4, Actor: "Pilot", Action: "flew", Target: "Mechanic", Timestamp: "1995-01-01", ClustersValid: true},
		{ID: 5, Actor: "Stranger", Action: "met", Target: "Other Stranger", ClustersValid: true},
	}
}

func TestGlobalViewCounts(t *testing.T) {
	e := testEngine()
	res := e.GlobalView(testTriples(), BuildParams(RawParams{Limit: 100}))

	if res.TotalBeforeFilter != 5 {
		t.Fatalf("TotalBeforeFilter = %d, want 5", res.TotalBeforeFilter)
	}
	// Triples 1 and 2 collapse into one Epstein-Maxwell bundle.
	if res.TotalUniqueEdges != 4 {
		t.Fatalf("TotalUniqueEdges = %d, want 4", res.TotalUniqueEdges)
	}
	if len(res.Relationships) != 5 {
		t.Fatalf("got %d relationships, want 5", len(res.Relationships))
	}
}

func TestGlobalViewAliasResolutionMergesEdges(t *testing.T) {
	e := testEngine()
	res := e.GlobalView(testTriples(), BuildParams(RawParams{Limit: 2}))

	// Maxwell-Pilot ranks first (density 2+2), then the merged two-triple
	// Epstein-Maxwell bundle wins its density tie by discovery order.
	if len(res.Relationships) != 3 {
		t.Fatalf("got %d relationships, want 3", len(res.Relationships))
	}
	if res.Relationships[0].ID != 3 {
		t.Fatalf("expected Maxwell-Pilot triple first, got %d", res.Relationships[0].ID)
	}
	for _, rel := range res.Relationships[1:] {
		if rel.Actor != "Jeffrey Epstein" && rel.Target != "Jeffrey Epstein" {
			t.Fatalf("kept relationship does not touch the merged canonical entity: %+v", rel)
		}
	}
}

func TestGlobalViewHopFilter(t *testing.T) {
	e := testEngine()
	res := e.GlobalView(testTriples(), BuildParams(RawParams{Limit: 100, MaxHops: "1"}))

	// Only the Epstein-Maxwell edge is within one hop of the root; the
	// Maxwell-Pilot edge has a distance-2 endpoint and must go, as must the
	// disconnected component.
	for _, rel := range res.Relationships {
		if rel.ID == 3 || rel.ID == 4 || rel.ID == 5 {
			t.Fatalf("triple %d should be excluded by maxHops=1", rel.ID)
		}
	}
	if len(res.Relationships) != 2 {
		t.Fatalf("got %d relationships, want 2", len(res.Relationships))
	}
}

func TestGlobalViewMissingRootWithHopBound(t *testing.T) {
	aliases := NewAliasTable(nil)
	e := NewEngine(aliases, "Absent Entity")
	res := e.GlobalView(testTriples(), BuildParams(RawParams{Limit: 100, MaxHops: "2"}))

	if len(res.Relationships) != 0 {
		t.Fatalf("expected zero matches when the root is absent and a hop bound is set, got %d", len(res.Relationships))
	}
	if res.TotalUniqueEdges != 0 {
		t.Fatalf("TotalUniqueEdges = %d, want 0", res.TotalUniqueEdges)
	}
}

func TestGlobalViewEntityStats(t *testing.T) {
	e := testEngine()
	res := e.GlobalView(testTriples(), BuildParams(RawParams{Limit: 100}))

	root := res.Entities["Jeffrey Epstein"]
	if root.HopDistance != 0 {
		t.Fatalf("root hop distance = %d, want 0", root.HopDistance)
	}
	maxwell := res.Entities["Ghislaine Maxwell"]
	if maxwell.Degree != 2 {
		t.Fatalf("Maxwell degree = %d, want 2", maxwell.Degree)
	}
	if maxwell.HopDistance != 1 {
		t.Fatalf("Maxwell hop distance = %d, want 1", maxwell.HopDistance)
	}
	if maxwell.DirectRootLinks != 2 {
		t.Fatalf("Maxwell direct root links = %d, want 2", maxwell.DirectRootLinks)
	}
	if stranger := res.Entities["Stranger"]; stranger.HopDistance != Unreachable {
		t.Fatalf("Stranger hop distance = %d, want unreachable", stranger.HopDistance)
	}
}

func TestGlobalViewDateFilter(t *testing.T) {
	e := testEngine()
	p := BuildParams(RawParams{Limit: 100, YearMin: 2000, YearMax: 2005, IncludeUndated: "false"})
	res := e.GlobalView(testTriples(), p)

	ids := make([]int64, 0)
	for _, rel := range res.Relationships {
		ids = append(ids, rel.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	// Undated triples 2 and 5 are out, as is 1995's triple 4.
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Fatalf("kept ids = %v, want [1 3]", ids)
	}
}

func TestGlobalViewKeywordFilter(t *testing.T) {
	e := testEngine()
	p := BuildParams(RawParams{Limit: 100, Keywords: "flew"})
	res := e.GlobalView(testTriples(), p)

	for _, rel := range res.Relationships {
		if rel.ID != 1 && rel.ID != 4 {
			t.Fatalf("triple %d does not match keyword 'flew'", rel.ID)
		}
	}
	if len(res.Relationships) != 2 {
		t.Fatalf("got %d relationships, want 2", len(res.Relationships))
	}
}

func TestNeighborhoodView(t *testing.T) {
	e := testEngine()
	res := e.NeighborhoodView(testTriples(), "G. Maxwell", BuildParams(RawParams{Limit: 1}))

	if res.TotalBeforeFilter != 3 {
		t.Fatalf("TotalBeforeFilter = %d, want 3", res.TotalBeforeFilter)
	}
	// Limit must not prune neighborhood results.
	if len(res.Relationships) != 3 {
		t.Fatalf("got %d relationships, want 3", len(res.Relationships))
	}

	found := false
	for _, a := range res.Aliases {
		if a == "Ghislaine Maxwell" {
			found = true
		}
	}
	if !found {
		t.Fatalf("aliases %v missing canonical name", res.Aliases)
	}
}

func TestNeighborhoodViewWithFilters(t *testing.T) {
	e := testEngine()
	p := BuildParams(RawParams{Clusters: "1"})
	res := e.NeighborhoodView(testTriples(), "Ghislaine Maxwell", p)

	if res.TotalBeforeFilter != 3 {
		t.Fatalf("TotalBeforeFilter = %d, want 3", res.TotalBeforeFilter)
	}
	if len(res.Relationships) != 2 {
		t.Fatalf("got %d relationships after cluster filter, want 2", len(res.Relationships))
	}
}

func TestNeighborhoodViewUnknownEntity(t *testing.T) {
	e := testEngine()
	res := e.NeighborhoodView(testTriples(), "Nobody At All", BuildParams(RawParams{}))

	if res.TotalBeforeFilter != 0 || len(res.Relationships) != 0 {
		t.Fatalf("expected empty result for unknown entity, got %+v", res)
	}
}
