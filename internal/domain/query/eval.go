package query

// Document exposes the stored values of a candidate record.
type Document interface {
	Values(field string) []string
}

// Fields is a Document backed by a map.
type Fields map[string][]string

// Values returns the values of field.
func (f Fields) Values(field string) []string { return f[field] }

// Matches evaluates n against doc. Term comparison is exact and
// case-sensitive; Fuzzy follows WithinEdits.
func Matches(n Node, doc Document) bool {
	switch q := n.(type) {
	case Term:
		for _, v := range doc.Values(q.Field) {
			if v == q.Text {
				return true
			}
		}
		return false
	case Fuzzy:
		for _, v := range doc.Values(q.Field) {
			if WithinEdits(q.Text, v, q.MaxEdits, q.PrefixLength) {
				return true
			}
		}
		return false
	case And:
		for _, c := range q.Clauses {
			if !Matches(c, doc) {
				return false
			}
		}
		return true
	case Or:
		for _, c := range q.Clauses {
			if Matches(c, doc) {
				return true
			}
		}
		return false
	case Filter:
		return q.Clause != nil && Matches(q.Clause, doc)
	default:
		return false
	}
}

// WithinEdits reports whether candidate starts with the first prefixLength
// characters of term and the two differ by at most maxEdits single
// character insertions, deletions or substitutions.
func WithinEdits(term, candidate string, maxEdits, prefixLength int) bool {
	a := []rune(term)
	b := []rune(candidate)

	p := min(prefixLength, len(a))
	if len(b) < p {
		return false
	}
	for i := 0; i < p; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return Distance(a[p:], b[p:], maxEdits) <= maxEdits
}

// Distance returns the Levenshtein distance between a and b, or maxEdits+1
// as soon as it is known to exceed maxEdits.
func Distance(a, b []rune, maxEdits int) int {
	if abs(len(a)-len(b)) > maxEdits {
		return maxEdits + 1
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	row := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		row[0] = i
		best := row[0]
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			row[j] = min(row[j-1]+1, prev[j]+1, prev[j-1]+cost)
			best = min(best, row[j])
		}
		if best > maxEdits {
			return maxEdits + 1
		}
		row, prev = prev, row
	}
	return prev[len(b)]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
