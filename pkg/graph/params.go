package graph

import (
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
)

const (
	minLimit     = 1
	maxLimit     = 20000
	defaultLimit = 500

	maxClusterFilters  = 50
	maxCategoryFilters = 50
	maxKeywords        = 20
	maxFilterValueLen  = 100

	minFilterYear = 1970
	maxFilterYear = 2025

	minHopBound = 1
	maxHopBound = 10
)

// RawParams carries filter inputs exactly as they arrived on the request,
// before any validation. CSV fields are comma separated.
type RawParams struct {
	Limit          int
	Clusters       string
	Categories     string
	YearMin        int
	YearMax        int
	IncludeUndated string
	Keywords       string
	MaxHops        string
}

// Params is the validated, bounded form of the request filters. Out-of-range
// inputs are clamped or dropped during construction; building Params never
// fails.
type Params struct {
	Limit      int
	Clusters   map[int64]struct{}
	Categories map[string]struct{}

	YearMin, YearMax int
	HasYearRange     bool
	IncludeUndated   bool

	Keywords []string

	MaxHops    int
	HasMaxHops bool
}

// BuildParams validates and bounds raw filter inputs. Malformed entries are
// ignored rather than failing the request.
func BuildParams(raw RawParams) Params {
	p := Params{
		Limit:          raw.Limit,
		IncludeUndated: true,
	}

	if p.Limit == 0 {
		p.Limit = defaultLimit
	}
	if p.Limit < minLimit {
		p.Limit = minLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}

	p.Clusters = parseClusterSet(raw.Clusters)
	p.Categories = parseCategorySet(raw.Categories)
	p.Keywords = parseKeywords(raw.Keywords)

	if raw.YearMin >= minFilterYear &&
		raw.YearMin <= raw.YearMax &&
		raw.YearMax <= maxFilterYear {
		p.YearMin = raw.YearMin
		p.YearMax = raw.YearMax
		p.HasYearRange = true
	}
	if strings.EqualFold(strings.TrimSpace(raw.IncludeUndated), "false") {
		p.IncludeUndated = false
	}

	hops := strings.TrimSpace(raw.MaxHops)
	if hops != "" && !strings.EqualFold(hops, "any") {
		if n, err := strconv.Atoi(hops); err == nil && n >= minHopBound && n <= maxHopBound {
			p.MaxHops = n
			p.HasMaxHops = true
		}
	}

	return p
}

func parseClusterSet(csv string) map[int64]struct{} {
	set := make(map[int64]struct{})
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id < 0 {
			continue
		}
		set[id] = struct{}{}
		if len(set) >= maxClusterFilters {
			break
		}
	}
	return set
}

func parseCategorySet(csv string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" || len(part) >= maxFilterValueLen {
			continue
		}
		set[part] = struct{}{}
		if len(set) >= maxCategoryFilters {
			break
		}
	}
	return set
}

func parseKeywords(csv string) []string {
	keywords := make([]string, 0)
	seen := make(map[string]struct{})
	for _, part := range strings.Split(csv, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" || len(part) >= maxFilterValueLen {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		keywords = append(keywords, part)
		if len(keywords) >= maxKeywords {
			break
		}
	}
	return keywords
}

// Match reports whether a triple passes the cluster, category and date
// predicates. The hop predicate is evaluated separately after the distance
// pass, and the keyword predicate by the relevance scorer.
func (p *Params) Match(t *Triple) bool {
	if len(p.Clusters) > 0 {
		if !t.ClustersValid {
			return false
		}
		hit := false
		for _, id := range t.TopClusters {
			if _, ok := p.Clusters[id]; ok {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	if len(p.Categories) > 0 {
		if _, ok := p.Categories[t.Category]; !ok {
			return false
		}
	}

	if p.HasYearRange {
		year, ok := tripleYear(t.Timestamp)
		if !ok {
			return p.IncludeUndated
		}
		if year < p.YearMin || year > p.YearMax {
			return false
		}
	}

	return true
}

// Filter applies Match over a triple slice, preserving order.
func (p *Params) Filter(triples []Triple) []Triple {
	kept := make([]Triple, 0, len(triples))
	for i := range triples {
		if p.Match(&triples[i]) {
			kept = append(kept, triples[i])
		}
	}
	return kept
}

// tripleYear extracts the calendar year from a triple timestamp. Timestamps
// are free-form date or date-time strings; anything unparsable counts as
// undated.
func tripleYear(ts string) (int, bool) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return 0, false
	}
	parsed, err := dateparse.ParseAny(ts)
	if err != nil {
		return 0, false
	}
	return parsed.Year(), true
}
