package graph

import "strings"

// BM25-style scoring constants. The average document length and the IDF are
// fixed assumptions rather than corpus statistics: the scorer is a cheap
// relevance heuristic over a few hundred characters of composed text, not
// an index-backed search.
const (
	bm25K1     = 1.2
	bm25B      = 0.75
	bm25AvgLen = 100.0
	bm25IDF    = 1.0
)

// Score computes the aggregate BM25-style relevance of a triple's composed
// text (actor + action + target + location) against a lowercased keyword
// set. Term frequency is substring containment per token, so "massage"
// also counts "massages" and "massaging".
func Score(t *Triple, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	composed := strings.ToLower(t.Actor + " " + t.Action + " " + t.Target + " " + t.Location)
	tokens := strings.Fields(composed)
	docLen := float64(len(tokens))

	var total float64
	for _, kw := range keywords {
		tf := 0.0
		for _, token := range tokens {
			if strings.Contains(token, kw) {
				tf++
			}
		}
		if tf == 0 {
			continue
		}
		norm := bm25K1 * (1 - bm25B + bm25B*docLen/bm25AvgLen)
		total += bm25IDF * (tf * (bm25K1 + 1)) / (tf + norm)
	}
	return total
}

// FilterByKeywords retains triples whose aggregate keyword score is strictly
// positive, preserving input order. An empty keyword list keeps everything.
func FilterByKeywords(triples []Triple, keywords []string) []Triple {
	if len(keywords) == 0 {
		return triples
	}
	kept := make([]Triple, 0, len(triples))
	for i := range triples {
		if Score(&triples[i], keywords) > 0 {
			kept = append(kept, triples[i])
		}
	}
	return kept
}
