// Package features builds the character-pattern multisets (S_K for
// keywords, S_T for wildcard queries) that Z&N's Bloom filters index and
// search against. The construction is ported from
// JeroenWeener/Libertas's src/zhao_nishide/client.py, keeping its
// occurrence-numbering trick (turning repeated pair-patterns into
// distinct, individually-countable features) but expressed the way Go
// code builds up string slices rather than Python comprehensions.
package features

import (
	"fmt"
	"strings"
)

// Keyword returns S_K(w): the positional set S_K^o plus the pair sets
// S_K^p1 (distance-tagged) and S_K^p2 (distance-erased), plus a length
// tag every keyword carries (see lengthFeature).
func Keyword(w string) []string {
	out := sKO(w)
	out = append(out, pairFeatures(w, true)...)
	out = append(out, pairFeatures(w, false)...)
	out = append(out, lengthFeature(len(w)))
	return out
}

// Query returns S_T(q): the prefix-positional set S_T^o (truncated at
// the first '*'), the within-group pair set S_T^p1, and S_T^p2 (S_K^p2
// of q with all wildcards stripped). When q contains no '*', q also
// pins down the keyword's exact length, so the same length tag
// Keyword emits is included here too; a '*' makes the length open, so
// it is omitted.
func Query(q string) []string {
	out := sTO(q)
	out = append(out, sTP1(q)...)
	out = append(out, pairFeatures(stripWildcards(q), false)...)
	if !strings.Contains(q, "*") {
		out = append(out, lengthFeature(len(q)))
	}
	return out
}

// lengthFeature is the feature tying a keyword (or a '*'-free query)
// to its exact character count. Without it, "_" positional and pair
// features alone cannot tell a keyword from one of its own prefixes:
// S_T("test") would be a subset of S_K("testcase") even though "test"
// the bare keyword must not match "testcase" (only "test*" may).
func lengthFeature(n int) string {
	return fmt.Sprintf("len:%d", n)
}

// sKO builds '{1-based position}:{character}' for every character in w.
func sKO(w string) []string {
	out := make([]string, 0, len(w))
	for i, c := range w {
		out = append(out, fmt.Sprintf("%d:%c", i+1, c))
	}
	return out
}

// sTO builds '{1-based position}:{character}' for every non-'_'
// character in the prefix of q up to (but excluding) the first '*'. A
// query starting with '*' contributes nothing.
func sTO(q string) []string {
	prefix := q
	if idx := strings.IndexByte(q, '*'); idx >= 0 {
		prefix = q[:idx]
	}
	out := make([]string, 0, len(prefix))
	for i, c := range prefix {
		if c == '_' {
			continue
		}
		out = append(out, fmt.Sprintf("%d:%c", i+1, c))
	}
	return out
}

// sTP1 splits q on '*' and, within each group, forms all ordered pairs
// of non-'_' characters tagged with their intra-group distance, then
// applies occurrence numbering.
func sTP1(q string) []string {
	groups := strings.Split(q, "*")
	var pairs []string
	for _, group := range groups {
		runes := []rune(group)
		for i := 0; i < len(runes); i++ {
			if runes[i] == '_' {
				continue
			}
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == '_' {
					continue
				}
				pairs = append(pairs, fmt.Sprintf("%d:%c,%c", j-i, runes[i], runes[j]))
			}
		}
	}
	return numberOccurrences(pairs)
}

// pairFeatures generates all ordered index pairs (i<j) of w, formatted
// either with the character distance prefixed (withDistance=true, S_K^p1
// / "{j-i}:{c1},{c2}") or with the literal "-" placeholder in that slot
// (withDistance=false, S_K^p2 / "-:{c1},{c2}"), then applies occurrence
// numbering to both.
func pairFeatures(w string, withDistance bool) []string {
	runes := []rune(w)
	var raw []string
	for i := 0; i < len(runes); i++ {
		for j := i + 1; j < len(runes); j++ {
			if withDistance {
				raw = append(raw, fmt.Sprintf("%d:%c,%c", j-i, runes[i], runes[j]))
			} else {
				raw = append(raw, fmt.Sprintf("-:%c,%c", runes[i], runes[j]))
			}
		}
	}
	return numberOccurrences(raw)
}

// numberOccurrences turns a multiset of pattern strings into a set of
// "{1}:{pattern}", "{2}:{pattern}", ... entries, one per occurrence, so
// multiset containment reduces to set containment downstream.
func numberOccurrences(patterns []string) []string {
	counts := make(map[string]int, len(patterns))
	order := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if counts[p] == 0 {
			order = append(order, p)
		}
		counts[p]++
	}

	out := make([]string, 0, len(patterns))
	for _, p := range order {
		for n := 1; n <= counts[p]; n++ {
			out = append(out, fmt.Sprintf("%d:%s", n, p))
		}
	}
	return out
}

func stripWildcards(q string) string {
	return strings.NewReplacer("*", "", "_", "").Replace(q)
}
