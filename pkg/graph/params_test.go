package graph

import (
	"reflect"
	"testing"
)

func TestBuildParamsLimitClamp(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"unset gets the default", 0, 500},
		{"negative clamps to one", -5, 1},
		{"in range passes", 500, 500},
		{"over max clamps", 50000, 20000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildParams(RawParams{Limit: tt.in})
			if p.Limit != tt.want {
				t.Fatalf("Limit = %d, want %d", p.Limit, tt.want)
			}
		})
	}
}

func TestBuildParamsClusters(t *testing.T) {
	p := BuildParams(RawParams{Clusters: "3, 7,abc,-1, 3 ,12"})
	want := map[int64]struct{}{3: {}, 7: {}, 12: {}}
	if !reflect.DeepEqual(p.Clusters, want) {
		t.Fatalf("Clusters = %v, want %v", p.Clusters, want)
	}
}

func TestBuildParamsCategories(t *testing.T) {
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'x'
	}
	p := BuildParams(RawParams{Categories: " flight logs ,," + string(long) + ",depositions"})
	want := map[string]struct{}{"flight logs": {}, "depositions": {}}
	if !reflect.DeepEqual(p.Categories, want) {
		t.Fatalf("Categories = %v, want %v", p.Categories, want)
	}
}

func TestBuildParamsYearRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		want     bool
	}{
		{"valid range", 2000, 2005, true},
		{"single year", 1999, 1999, true},
		{"min below floor", 1960, 2000, false},
		{"max above ceiling", 2000, 2030, false},
		{"inverted", 2005, 2000, false},
		{"unset", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildParams(RawParams{YearMin: tt.min, YearMax: tt.max})
			if p.HasYearRange != tt.want {
				t.Fatalf("HasYearRange = %v, want %v", p.HasYearRange, tt.want)
			}
		})
	}
}

func TestBuildParamsKeywords(t *testing.T) {
	p := BuildParams(RawParams{Keywords: "Flight, MASSAGE ,,flight"})
	want := []string{"flight", "massage"}
	if !reflect.DeepEqual(p.Keywords, want) {
		t.Fatalf("Keywords = %v, want %v", p.Keywords, want)
	}
}

func TestBuildParamsMaxHops(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		bounded bool
	}{
		{"unset means unbounded", "", 0, false},
		{"any means unbounded", "any", 0, false},
		{"valid bound", "3", 3, true},
		{"zero rejected", "0", 0, false},
		{"over max rejected", "11", 0, false},
		{"garbage rejected", "lots", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildParams(RawParams{MaxHops: tt.in})
			if p.HasMaxHops != tt.bounded || p.MaxHops != tt.want {
				t.Fatalf("MaxHops = (%d, %v), want (%d, %v)", p.MaxHops, p.HasMaxHops, tt.want, tt.bounded)
			}
		})
	}
}

func TestMatchClusterFilter(t *testing.T) {
	p := BuildParams(RawParams{Clusters: "5,9"})

	tests := []struct {
		name   string
		triple Triple
		want   bool
	}{
		{"intersects", Triple{TopClusters: []int64{1, 5}, ClustersValid: true}, true},
		{"disjoint", Triple{TopClusters: []int64{2, 3}, ClustersValid: true}, false},
		{"unparsable clusters excluded", Triple{ClustersValid: false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Match(&tt.triple); got != tt.want {
				t.Fatalf("Match = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchNoClusterFilterPassesInvalidClusters(t *testing.T) {
	p := BuildParams(RawParams{})
	triple := Triple{ClustersValid: false}
	if !p.Match(&triple) {
		t.Fatal("triple with unparsable clusters should pass when no cluster filter is set")
	}
}

func TestMatchDateFilter(t *testing.T) {
	tests := []struct {
		name           string
		timestamp      string
		includeUndated string
		want           bool
	}{
		{"in range", "2003-06-12", "", true},
		{"datetime in range", "2001-01-05T14:00:00Z", "", true},
		{"before range", "1998-01-01", "", false},
		{"after range", "2007-01-01", "", false},
		{"undated included by default", "", "", true},
		{"undated excluded on request", "", "false", false},
		{"unparsable counts as undated", "sometime later", "false", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildParams(RawParams{YearMin: 2000, YearMax: 2005, IncludeUndated: tt.includeUndated})
			triple := Triple{Timestamp: tt.timestamp}
			if got := p.Match(&triple); got != tt.want {
				t.Fatalf("Match(%q) = %v, want %v", tt.timestamp, got, tt.want)
			}
		})
	}
}

func TestMatchCategoryFilter(t *testing.T) {
	p := BuildParams(RawParams{Categories: "depositions"})
	in := Triple{Category: "depositions"}
	out := Triple{Category: "flight logs"}
	if !p.Match(&in) {
		t.Fatal("matching category should pass")
	}
	if p.Match(&out) {
		t.Fatal("non-matching category should fail")
	}
}
