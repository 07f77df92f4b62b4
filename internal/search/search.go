// Package search filters and ranks catalog entries by a free-text keyword.
//
// A token matches an entry when it is a substring of the lower-cased title or
// of one of the tags as stored; tags are not case-folded. Any matching token
// includes the entry. Title word matches weigh twice as much as tag matches.
package search

import (
	"sort"
	"strings"
)

const (
	titleWeight = 2
	tagWeight   = 1
)

// Entry is anything with a title and search tags
type Entry interface {
	Title() string
	SearchTags() []string
}

// Result is an included entry and its relevance score
type Result[E Entry] struct {
	Entry E
	Score int
}

// Tokenize splits keyword on whitespace runs and lower-cases each token
func Tokenize(keyword string) []string {
	fields := strings.Fields(keyword)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, strings.ToLower(f))
	}
	return tokens
}

// Matches reports whether any token matches the title or any tag
func Matches(e Entry, tokens []string) bool {
	title := strings.ToLower(e.Title())
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if strings.Contains(title, t) {
			return true
		}
		for _, tag := range e.SearchTags() {
			if strings.Contains(tag, t) {
				return true
			}
		}
	}
	return false
}

// Score sums, over tokens, twice the matching title words plus the matching tags
func Score(e Entry, tokens []string) int {
	words := Tokenize(e.Title())
	score := 0
	for _, t := range tokens {
		if t == "" {
			continue
		}
		for _, w := range words {
			if strings.Contains(w, t) {
				score += titleWeight
			}
		}
		for _, tag := range e.SearchTags() {
			if strings.Contains(tag, t) {
				score += tagWeight
			}
		}
	}
	return score
}

// Rank returns the entries shown for keyword. An empty keyword returns every
// entry in order with score 0. Otherwise entries are filtered, scored, sorted
// by descending score (ties keep input order), and zero scores are dropped.
func Rank[E Entry](entries []E, keyword string) []Result[E] {
	tokens := Tokenize(keyword)
	if len(tokens) == 0 {
		results := make([]Result[E], len(entries))
		for i, e := range entries {
			results[i] = Result[E]{Entry: e}
		}
		return results
	}

	var results []Result[E]
	for _, e := range entries {
		if !Matches(e, tokens) {
			continue
		}
		results = append(results, Result[E]{Entry: e, Score: Score(e, tokens)})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	kept := results[:0]
	for _, r := range results {
		if r.Score > 0 {
			kept = append(kept, r)
		}
	}
	return kept
}

// Filter is Rank without the scores
func Filter[E Entry](entries []E, keyword string) []E {
	results := Rank(entries, keyword)
	out := make([]E, len(results))
	for i, r := range results {
		out[i] = r.Entry
	}
	return out
}
