// Package utils holds small string helpers shared by the CLI.
package utils

import (
	"sort"
	"strings"
)

// ComputeDistance computes the case-insensitive Levenshtein distance
// between two strings, counted in runes.
func ComputeDistance(s1, s2 string) int {
	a := []rune(strings.ToLower(s1))
	b := []rune(strings.ToLower(s2))

	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// IsSubsequence reports whether the runes of short appear in long in
// order, not necessarily adjacent, case-insensitively. Abbreviations match
// ("UAE" in "United Arab Emirates"); scrambled letters do not ("EAU").
func IsSubsequence(short, long string) bool {
	s := []rune(strings.ToLower(short))
	l := []rune(strings.ToLower(long))

	i := 0
	for j := 0; i < len(s) && j < len(l); j++ {
		if s[i] == l[j] {
			i++
		}
	}
	return i == len(s)
}

// Suggest returns up to limit candidates close to name: those within
// maxDist edits, closest first, then those containing name as a
// subsequence. Exact (case-insensitive) matches are returned first.
func Suggest(name string, candidates []string, maxDist, limit int) []string {
	type scored struct {
		name string
		dist int
	}
	var matches []scored
	seen := make(map[string]bool)
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		if d := ComputeDistance(name, c); d <= maxDist {
			matches = append(matches, scored{c, d})
		} else if len([]rune(name)) >= 3 && IsSubsequence(name, c) {
			matches = append(matches, scored{c, maxDist + 1})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].name < matches[j].name
	})

	out := make([]string, 0, limit)
	for _, s := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, s.name)
	}
	return out
}
