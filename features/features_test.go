package features

import "testing"

func contains(set []string, want string) bool {
	for _, s := range set {
		if s == want {
			return true
		}
	}
	return false
}

func TestKeywordPositional(t *testing.T) {
	set := Keyword("cat")
	for _, want := range []string{"1:c", "2:a", "3:t"} {
		if !contains(set, want) {
			t.Errorf("Keyword(\"cat\") missing positional feature %q in %v", want, set)
		}
	}
}

func TestKeywordPairOccurrenceNumbering(t *testing.T) {
	// "aa" produces the p2 pattern "-:a,a" once (there is exactly one
	// ordered pair for a 2-character string), so it must come out
	// numbered once, as "1:-:a,a".
	set := Keyword("aa")
	if !contains(set, "1:-:a,a") {
		t.Errorf("Keyword(\"aa\") missing occurrence-numbered pair feature, got %v", set)
	}

	// "aaa" has three ordered pairs, all with the p2 pattern "-:a,a",
	// so it needs three distinct numbered entries.
	set = Keyword("aaa")
	count := 0
	for _, s := range set {
		if s == "1:-:a,a" || s == "2:-:a,a" || s == "3:-:a,a" {
			count++
		}
	}
	if count != 3 {
		t.Errorf("Keyword(\"aaa\") expected 3 numbered occurrences of a,a, found %d in %v", count, set)
	}
}

func TestQueryTruncatesAtWildcard(t *testing.T) {
	set := Query("ab*z")
	if contains(set, "4:z") {
		t.Errorf("Query(\"ab*z\") must not include positions beyond the wildcard")
	}
	for _, want := range []string{"1:a", "2:b"} {
		if !contains(set, want) {
			t.Errorf("Query(\"ab*z\") missing prefix feature %q in %v", want, set)
		}
	}
}

func TestQuerySkipsSingleWildcardPositions(t *testing.T) {
	set := Query("a_c")
	if contains(set, "2:_") {
		t.Errorf("Query(\"a_c\") must not emit a positional feature for the '_' itself")
	}
	if !contains(set, "1:a") || !contains(set, "3:c") {
		t.Errorf("Query(\"a_c\") missing surrounding positional features, got %v", set)
	}
}

func TestQueryP2StripsWildcards(t *testing.T) {
	// Query("a_c") and Keyword("ac") must share the same p2 pair
	// pattern once numbered, since S_T^p2 strips wildcards before
	// pairing (spec.md §4.2).
	q := Query("a_c")
	k := Keyword("ac")
	if !contains(q, "1:-:a,c") || !contains(k, "1:-:a,c") {
		t.Errorf("expected both Query(\"a_c\") and Keyword(\"ac\") to contain 1:-:a,c; got q=%v k=%v", q, k)
	}
}
