// Package filter selects statements by exact subject, predicate, and
// object match. There is no substring matching: a filter string is
// normalized to whichever shape it already has (prefixed or absolute)
// and compared for equality.
package filter

import (
	"strings"

	"github.com/rdfless/rdfless/pkg/rdf"
)

// Filter holds the optional per-position match strings. An empty
// string means the position is unconstrained. All present filters must
// hold for a statement to pass.
type Filter struct {
	Subject   string
	Predicate string
	Object    string
}

// Empty reports whether no filters are set, so filtering can be
// skipped entirely.
func (f Filter) Empty() bool {
	return f.Subject == "" && f.Predicate == "" && f.Object == ""
}

// Matches reports whether the quad satisfies every present filter.
// Subjects and predicates match on their compacted or absolute form;
// objects additionally match literals on their exact lexical value,
// ignoring datatype and language.
func (f Filter) Matches(quad *rdf.Quad, prefixes *rdf.PrefixMap) bool {
	if f.Subject != "" && !matchResource(quad.Subject, f.Subject, prefixes) {
		return false
	}
	if f.Predicate != "" && !matchResource(quad.Predicate, f.Predicate, prefixes) {
		return false
	}
	if f.Object != "" && !matchObject(quad.Object, f.Object, prefixes) {
		return false
	}
	return true
}

func matchObject(term rdf.Term, filter string, prefixes *rdf.PrefixMap) bool {
	if lit, ok := term.(*rdf.Literal); ok {
		return lit.Value == filter
	}
	return matchResource(term, filter, prefixes)
}

// matchResource matches named and blank nodes. A named node matches if
// its compacted form equals the filter, or its absolute reference
// equals the filter once the filter is expanded to its own shape: a
// string with ':' but no '://' is taken as already prefixed, one with
// a scheme as already absolute.
func matchResource(term rdf.Term, filter string, prefixes *rdf.PrefixMap) bool {
	switch t := term.(type) {
	case *rdf.BlankNode:
		return t.String() == filter
	case *rdf.NamedNode:
		if compacted, ok := prefixes.Compact(t.IRI); ok && compacted == filter {
			return true
		}
		return t.IRI == expandFilter(filter, prefixes)
	default:
		return false
	}
}

func expandFilter(filter string, prefixes *rdf.PrefixMap) string {
	idx := strings.Index(filter, ":")
	if idx < 0 || strings.Contains(filter, "://") {
		return filter
	}
	expanded, err := prefixes.Expand(filter[:idx], filter[idx+1:])
	if err != nil {
		return filter
	}
	return expanded
}
