package rdf

import (
	"fmt"
	"sort"
)

// AreGraphsIsomorphic checks if two sets of triples are isomorphic,
// accounting for blank node label differences.
// Two graphs are isomorphic if there exists a bijection between their
// blank nodes such that when applied, the graphs are identical.
func AreGraphsIsomorphic(expected, actual []*Triple) bool {
	eq := make([]*Quad, len(expected))
	for i, t := range expected {
		eq[i] = NewTripleQuad(t.Subject, t.Predicate, t.Object)
	}
	aq := make([]*Quad, len(actual))
	for i, t := range actual {
		aq[i] = NewTripleQuad(t.Subject, t.Predicate, t.Object)
	}
	return AreQuadsIsomorphic(eq, aq)
}

// AreQuadsIsomorphic checks if two sets of quads are isomorphic,
// accounting for blank node label differences in both triples and graph names.
func AreQuadsIsomorphic(expected, actual []*Quad) bool {
	if len(expected) != len(actual) {
		return false
	}

	expectedBlanks := extractBlankNodeLabels(expected)
	actualBlanks := extractBlankNodeLabels(actual)

	if len(expectedBlanks) != len(actualBlanks) {
		return false
	}

	// If no blank nodes, set comparison suffices
	if len(expectedBlanks) == 0 {
		return simpleCompare(expected, actual)
	}

	// Match high-degree nodes first to prune the search early
	expectedBlanks = sortByDegree(expectedBlanks, expected)
	actualBlanks = sortByDegree(actualBlanks, actual)

	mapping := make(map[string]string)
	usedTargets := make(map[string]bool)
	return backtrack(expected, actual, expectedBlanks, actualBlanks, mapping, usedTargets, 0)
}

// extractBlankNodeLabels extracts all unique blank node labels from quads
func extractBlankNodeLabels(quads []*Quad) []string {
	blanks := make(map[string]bool)
	for _, quad := range quads {
		extractBlanksFromTerm(quad.Subject, blanks)
		extractBlanksFromTerm(quad.Object, blanks)
		if quad.Graph != nil {
			extractBlanksFromTerm(quad.Graph, blanks)
		}
	}

	result := make([]string, 0, len(blanks))
	for label := range blanks {
		result = append(result, label)
	}
	sort.Strings(result)
	return result
}

// extractBlanksFromTerm recursively extracts blank nodes from a term,
// including those inside triple terms and quoted triples
func extractBlanksFromTerm(term Term, blanks map[string]bool) {
	switch t := term.(type) {
	case *BlankNode:
		blanks[t.ID] = true
	case *TripleTerm:
		extractBlanksFromTerm(t.Subject, blanks)
		extractBlanksFromTerm(t.Predicate, blanks)
		extractBlanksFromTerm(t.Object, blanks)
	case *QuotedTriple:
		extractBlanksFromTerm(t.Subject, blanks)
		extractBlanksFromTerm(t.Predicate, blanks)
		extractBlanksFromTerm(t.Object, blanks)
	}
}

// countBlanksInTerm recursively counts occurrences of blank nodes in a term
func countBlanksInTerm(term Term, degrees map[string]int) {
	switch t := term.(type) {
	case *BlankNode:
		degrees[t.ID]++
	case *TripleTerm:
		countBlanksInTerm(t.Subject, degrees)
		countBlanksInTerm(t.Predicate, degrees)
		countBlanksInTerm(t.Object, degrees)
	case *QuotedTriple:
		countBlanksInTerm(t.Subject, degrees)
		countBlanksInTerm(t.Predicate, degrees)
		countBlanksInTerm(t.Object, degrees)
	}
}

// sortByDegree sorts blank nodes by the number of quads they appear in
func sortByDegree(blanks []string, quads []*Quad) []string {
	degrees := make(map[string]int)
	for _, blank := range blanks {
		degrees[blank] = 0
	}

	for _, quad := range quads {
		countBlanksInTerm(quad.Subject, degrees)
		countBlanksInTerm(quad.Object, degrees)
		if quad.Graph != nil {
			countBlanksInTerm(quad.Graph, degrees)
		}
	}

	sort.Slice(blanks, func(i, j int) bool {
		return degrees[blanks[i]] > degrees[blanks[j]]
	})

	return blanks
}

// simpleCompare compares two quad sets without considering blank node isomorphism
func simpleCompare(expected, actual []*Quad) bool {
	expectedMap := make(map[string]bool)
	for _, quad := range expected {
		expectedMap[quadKey(quad, nil)] = true
	}

	for _, quad := range actual {
		if !expectedMap[quadKey(quad, nil)] {
			return false
		}
	}

	return true
}

// backtrack recursively tries to find a valid mapping between blank nodes
func backtrack(expected, actual []*Quad, expectedBlanks, actualBlanks []string,
	mapping map[string]string, usedTargets map[string]bool, index int) bool {

	// Base case: all blank nodes have been mapped
	if index == len(expectedBlanks) {
		return verifyMapping(expected, actual, mapping)
	}

	currentBlank := expectedBlanks[index]

	for _, candidateBlank := range actualBlanks {
		if usedTargets[candidateBlank] {
			continue
		}

		mapping[currentBlank] = candidateBlank
		usedTargets[candidateBlank] = true

		if isConsistentSoFar(expected, actual, mapping) {
			if backtrack(expected, actual, expectedBlanks, actualBlanks, mapping, usedTargets, index+1) {
				return true
			}
		}

		delete(mapping, currentBlank)
		delete(usedTargets, candidateBlank)
	}

	return false
}

// isTermFullyMapped recursively checks if all blank nodes in a term are mapped
func isTermFullyMapped(term Term, mapping map[string]string) bool {
	switch t := term.(type) {
	case *BlankNode:
		_, exists := mapping[t.ID]
		return exists
	case *TripleTerm:
		return isTermFullyMapped(t.Subject, mapping) &&
			isTermFullyMapped(t.Predicate, mapping) &&
			isTermFullyMapped(t.Object, mapping)
	case *QuotedTriple:
		return isTermFullyMapped(t.Subject, mapping) &&
			isTermFullyMapped(t.Predicate, mapping) &&
			isTermFullyMapped(t.Object, mapping)
	default:
		return true
	}
}

// isConsistentSoFar checks if the current partial mapping is consistent.
// Quads whose blank nodes are all mapped must already exist in actual.
func isConsistentSoFar(expected, actual []*Quad, mapping map[string]string) bool {
	for _, quad := range expected {
		subjectMapped := isTermFullyMapped(quad.Subject, mapping)
		objectMapped := isTermFullyMapped(quad.Object, mapping)
		graphMapped := quad.Graph == nil || isTermFullyMapped(quad.Graph, mapping)

		if subjectMapped && objectMapped && graphMapped {
			found := false
			mappedKey := quadKey(quad, mapping)

			for _, actualQuad := range actual {
				if quadKey(actualQuad, nil) == mappedKey {
					found = true
					break
				}
			}

			if !found {
				return false
			}
		}
	}

	return true
}

// verifyMapping checks if the given mapping makes the quad sets identical
func verifyMapping(expected, actual []*Quad, mapping map[string]string) bool {
	expectedMapped := make(map[string]bool)
	for _, quad := range expected {
		expectedMapped[quadKey(quad, mapping)] = true
	}

	actualSet := make(map[string]bool)
	for _, quad := range actual {
		actualSet[quadKey(quad, nil)] = true
	}

	if len(expectedMapped) != len(actualSet) {
		return false
	}

	for key := range expectedMapped {
		if !actualSet[key] {
			return false
		}
	}

	return true
}

// quadKey creates a string key for a quad, applying blank node mapping if provided
func quadKey(quad *Quad, mapping map[string]string) string {
	subject := termString(quad.Subject, mapping)
	predicate := termString(quad.Predicate, mapping)
	object := termString(quad.Object, mapping)
	graph := ""
	if quad.Graph != nil {
		graph = termString(quad.Graph, mapping)
	}
	return fmt.Sprintf("%s|%s|%s|%s", subject, predicate, object, graph)
}

// termString converts a term to string, applying blank node mapping if applicable
func termString(term Term, mapping map[string]string) string {
	if mapping == nil {
		return term.String()
	}

	switch t := term.(type) {
	case *BlankNode:
		if mapped, exists := mapping[t.ID]; exists {
			return "_:" + mapped
		}
		return term.String()
	case *TripleTerm:
		return fmt.Sprintf("<<( %s %s %s )>>",
			termString(t.Subject, mapping),
			termString(t.Predicate, mapping),
			termString(t.Object, mapping))
	case *QuotedTriple:
		return fmt.Sprintf("<< %s %s %s >>",
			termString(t.Subject, mapping),
			termString(t.Predicate, mapping),
			termString(t.Object, mapping))
	default:
		return term.String()
	}
}
