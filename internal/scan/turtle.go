package scan

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rdfless/rdfless/pkg/rdf"
)

type parseMode int

const (
	modeTurtle parseMode = iota
	modeTriG
	modeNTriples
	modeNQuads
)

// turtleScanner scans Turtle, TriG, N-Triples, and N-Quads documents
// one statement at a time. A single source statement can expand to
// several quads (collections, property lists, annotations), which are
// queued and handed out by Next in document order.
type turtleScanner struct {
	input            string
	pos              int
	length           int
	mode             parseMode
	prefixes         *rdf.PrefixMap
	blankNodeCounter int

	pending []*rdf.Quad
	extras  []*rdf.Quad // quads produced while parsing a single term

	graph   rdf.Term // current graph context, nil means default graph
	inGraph bool

	lastTermWasPropertyList bool
	lastTermWasAKeyword     bool
	termMadeStructure       bool // collection or property list seen inside the current term
}

func newTurtleScanner(input string, mode parseMode) *turtleScanner {
	return &turtleScanner{
		input:    input,
		length:   len(input),
		mode:     mode,
		prefixes: rdf.NewPrefixMap(),
	}
}

func (s *turtleScanner) strict() bool {
	return s.mode == modeNTriples || s.mode == modeNQuads
}

func (s *turtleScanner) Prefixes() *rdf.PrefixMap {
	return s.prefixes
}

// Next returns the next statement, io.EOF at end of input, or a
// *ParseError on bad syntax.
func (s *turtleScanner) Next() (*rdf.Quad, error) {
	for len(s.pending) == 0 {
		s.skipWhitespaceAndComments()
		if s.pos >= s.length {
			if s.inGraph {
				return nil, s.parseError("unexpected end of input, expected '}'")
			}
			return nil, io.EOF
		}
		if err := s.parseStatement(); err != nil {
			if pe, ok := err.(*ParseError); ok {
				return nil, pe
			}
			return nil, s.parseError(err.Error())
		}
	}

	quad := s.pending[0]
	s.pending = s.pending[1:]
	return quad, nil
}

// Recover skips past the statement that failed to parse. For the
// line-based formats the rest of the line is dropped; for Turtle and
// TriG everything up to the next top-level '.' or '}' is dropped.
func (s *turtleScanner) Recover() {
	s.extras = nil
	s.termMadeStructure = false
	s.lastTermWasPropertyList = false

	if s.strict() {
		for s.pos < s.length && s.input[s.pos] != '\n' {
			s.pos++
		}
		return
	}

	for s.pos < s.length {
		ch := s.input[s.pos]
		switch ch {
		case '"', '\'':
			s.skipQuoted(ch)
		case '#':
			for s.pos < s.length && s.input[s.pos] != '\n' {
				s.pos++
			}
		case '.':
			s.pos++
			return
		case '}':
			return
		default:
			s.pos++
		}
	}
}

// skipQuoted advances past a string literal during error recovery.
func (s *turtleScanner) skipQuoted(quote byte) {
	delim := string(quote)
	if s.pos+3 <= s.length && s.input[s.pos:s.pos+3] == strings.Repeat(delim, 3) {
		delim = strings.Repeat(delim, 3)
	}
	s.pos += len(delim)
	for s.pos < s.length {
		if s.input[s.pos] == '\\' {
			s.pos += 2
			continue
		}
		if strings.HasPrefix(s.input[s.pos:], delim) {
			s.pos += len(delim)
			return
		}
		s.pos++
	}
}

func (s *turtleScanner) line() int {
	return strings.Count(s.input[:min(s.pos, s.length)], "\n") + 1
}

func (s *turtleScanner) parseError(format string, args ...interface{}) *ParseError {
	return &ParseError{Line: s.line(), Msg: fmt.Sprintf(format, args...)}
}

func (s *turtleScanner) emit(subject, predicate, object rdf.Term) {
	s.pending = append(s.pending, rdf.NewQuad(subject, predicate, object, s.graph))
}

func (s *turtleScanner) emitExtra(subject, predicate, object rdf.Term) {
	s.extras = append(s.extras, rdf.NewQuad(subject, predicate, object, s.graph))
}

func (s *turtleScanner) flushExtras() {
	s.pending = append(s.pending, s.extras...)
	s.extras = nil
}

func (s *turtleScanner) newBlankNode() *rdf.BlankNode {
	s.blankNodeCounter++
	return rdf.NewBlankNode(fmt.Sprintf("anon%d", s.blankNodeCounter))
}

// parseStatement parses one directive, graph block boundary, or triple
// block, queuing the resulting quads.
func (s *turtleScanner) parseStatement() error {
	if !s.strict() && !s.inGraph {
		// @version must be lowercase (case-sensitive), VERSION can be any case
		if s.matchExactKeyword("@version") || s.matchKeyword("VERSION") {
			return s.parseVersion()
		}
		if s.matchExactKeyword("@prefix") || s.matchKeyword("PREFIX") {
			return s.parsePrefix()
		}
		isTurtleBase := s.matchExactKeyword("@base")
		if isTurtleBase || s.matchKeyword("BASE") {
			return s.parseBase(isTurtleBase)
		}
	}

	if s.mode == modeTriG {
		if s.inGraph && s.input[s.pos] == '}' {
			s.pos++
			s.inGraph = false
			s.graph = nil
			return nil
		}
		if !s.inGraph {
			if s.matchKeyword("GRAPH") {
				return s.openGraphBlock(true)
			}
			if s.input[s.pos] == '{' {
				// Unlabeled block scopes the default graph
				s.pos++
				s.inGraph = true
				s.graph = nil
				return nil
			}
			// Lookahead for a labeled block without the GRAPH keyword
			saved := s.pos
			savedCounter := s.blankNodeCounter
			if label, err := s.parseGraphLabel(); err == nil {
				s.skipWhitespaceAndComments()
				if s.pos < s.length && s.input[s.pos] == '{' {
					s.pos++
					s.inGraph = true
					s.graph = label
					return nil
				}
			}
			s.pos = saved
			s.blankNodeCounter = savedCounter
		}
	}

	return s.parseTripleBlock()
}

// openGraphBlock handles GRAPH <label> { after the keyword was consumed.
func (s *turtleScanner) openGraphBlock(expectBrace bool) error {
	s.skipWhitespaceAndComments()

	label, err := s.parseGraphLabel()
	if err != nil {
		return fmt.Errorf("expected graph name after GRAPH: %w", err)
	}

	s.skipWhitespaceAndComments()
	if expectBrace {
		if s.pos >= s.length || s.input[s.pos] != '{' {
			return fmt.Errorf("expected '{' after graph name")
		}
		s.pos++
	}

	s.inGraph = true
	s.graph = label
	return nil
}

// parseGraphLabel parses an IRI or blank node acting as a graph name.
func (s *turtleScanner) parseGraphLabel() (rdf.Term, error) {
	s.skipWhitespaceAndComments()
	if s.pos >= s.length {
		return nil, fmt.Errorf("unexpected end of input")
	}

	ch := s.input[s.pos]
	switch {
	case ch == '<' && !strings.HasPrefix(s.input[s.pos:], "<<"):
		iri, err := s.parseIRI()
		if err != nil {
			return nil, err
		}
		return rdf.NewNamedNode(iri), nil
	case ch == '_' && s.pos+1 < s.length && s.input[s.pos+1] == ':':
		return s.parseBlankNode()
	case ch == '[':
		s.pos++
		s.skipWhitespaceAndComments()
		if s.pos >= s.length || s.input[s.pos] != ']' {
			return nil, fmt.Errorf("graph name blank node must be empty")
		}
		s.pos++
		return s.newBlankNode(), nil
	case (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == ':':
		return s.parsePrefixedName()
	default:
		return nil, fmt.Errorf("invalid graph name start: %c", ch)
	}
}

// parseVersion parses a VERSION declaration (RDF 1.2)
func (s *turtleScanner) parseVersion() error {
	s.skipWhitespaceAndComments()

	if s.pos >= s.length || (s.input[s.pos] != '"' && s.input[s.pos] != '\'') {
		return fmt.Errorf("expected string literal after VERSION")
	}
	if s.pos+2 < s.length {
		if s.input[s.pos:s.pos+3] == `"""` || s.input[s.pos:s.pos+3] == `'''` {
			return fmt.Errorf("VERSION directive does not accept triple-quoted strings")
		}
	}

	// Validate the version string syntax, the value itself is unused
	if _, err := s.parseLiteral(); err != nil {
		return fmt.Errorf("failed to parse version string: %w", err)
	}

	s.skipWhitespaceAndComments()
	if s.pos < s.length && (s.input[s.pos] == '.' || s.input[s.pos] == ';') {
		s.pos++
	}
	return nil
}

func (s *turtleScanner) parsePrefix() error {
	s.skipWhitespaceAndComments()

	prefixStart := s.pos
	for s.pos < s.length && s.input[s.pos] != ':' {
		s.pos++
	}
	prefix := strings.TrimSpace(s.input[prefixStart:s.pos])

	if s.pos >= s.length || s.input[s.pos] != ':' {
		return fmt.Errorf("expected ':' after prefix name")
	}
	s.pos++

	s.skipWhitespaceAndComments()

	iri, err := s.parseIRI()
	if err != nil {
		return fmt.Errorf("failed to parse prefix IRI: %w", err)
	}

	s.prefixes.Declare(prefix, iri)

	s.skipWhitespaceAndComments()
	if s.pos < s.length && (s.input[s.pos] == '.' || s.input[s.pos] == ';') {
		s.pos++
	}
	return nil
}

func (s *turtleScanner) parseBase(isTurtleStyle bool) error {
	s.skipWhitespaceAndComments()

	baseIRI, err := s.parseIRI()
	if err != nil {
		return fmt.Errorf("failed to parse base IRI: %w", err)
	}

	// SetBase resolves a relative argument against the previous base
	s.prefixes.SetBase(baseIRI)

	s.skipWhitespaceAndComments()
	if s.pos < s.length {
		if s.input[s.pos] == '.' {
			if isTurtleStyle {
				s.pos++
			} else {
				return fmt.Errorf("SPARQL-style BASE should not be followed by '.'")
			}
		} else if s.input[s.pos] == ';' {
			s.pos++
		}
	}
	return nil
}

// parseTripleBlock parses one subject with its predicate-object lists.
func (s *turtleScanner) parseTripleBlock() error {
	subject, err := s.parseTerm()
	if err != nil {
		return fmt.Errorf("failed to parse subject: %w", err)
	}

	// Triple terms cannot be subjects
	if _, ok := subject.(*rdf.TripleTerm); ok {
		return fmt.Errorf("triple terms cannot be used as subjects")
	}
	if s.strict() {
		if _, ok := subject.(*rdf.QuotedTriple); ok {
			return fmt.Errorf("quoted triples cannot be used as subjects in %s", s.mode.modeName())
		}
	}
	if _, ok := subject.(*rdf.Literal); ok {
		return fmt.Errorf("literals cannot be used as subjects")
	}
	if s.lastTermWasAKeyword {
		return fmt.Errorf("keyword 'a' cannot be used as subject")
	}

	hadPropertyList := s.lastTermWasPropertyList
	s.flushExtras()

	s.skipWhitespaceAndComments()

	// Sole blank node property list: [ <p> <o> ] .
	if hadPropertyList && s.pos < s.length && s.input[s.pos] == '.' {
		s.pos++
		return nil
	}

	// Standalone quoted triple assertion: << s p o >> . asserts only
	// the reification record.
	if qt, ok := subject.(*rdf.QuotedTriple); ok {
		if s.pos < s.length && s.input[s.pos] == '.' {
			s.pos++
			reifier := s.newBlankNode()
			s.emit(reifier, rdf.RDFReifies, rdf.NewTripleTerm(qt.Subject, qt.Predicate, qt.Object))
			return nil
		}
	}

	// Predicate-object pairs
	for {
		s.skipWhitespaceAndComments()

		predicate, err := s.parseTerm()
		if err != nil {
			return fmt.Errorf("failed to parse predicate: %w", err)
		}
		switch predicate.(type) {
		case *rdf.Literal:
			return fmt.Errorf("literals cannot be used as predicates")
		case *rdf.BlankNode:
			return fmt.Errorf("blank nodes cannot be used as predicates")
		case *rdf.QuotedTriple, *rdf.TripleTerm:
			return fmt.Errorf("quoted triples cannot be used as predicates")
		}
		s.flushExtras()

		// Objects, comma-separated
		for {
			s.skipWhitespaceAndComments()

			object, err := s.parseTerm()
			if err != nil {
				return fmt.Errorf("failed to parse object: %w", err)
			}

			if s.strict() {
				// Only the <<( )>> triple term form is allowed as object
				if _, ok := object.(*rdf.QuotedTriple); ok {
					return fmt.Errorf("quoted triples cannot be used as objects in %s", s.mode.modeName())
				}
			}
			if s.lastTermWasAKeyword {
				return fmt.Errorf("keyword 'a' cannot be used as object")
			}
			s.flushExtras()

			s.emit(subject, predicate, object)

			s.skipWhitespaceAndComments()

			// Annotation blocks {| ... |} attach to this triple
			if s.pos < s.length && strings.HasPrefix(s.input[s.pos:], "{|") {
				if s.strict() {
					return fmt.Errorf("annotation syntax not allowed in %s", s.mode.modeName())
				}
				for s.pos < s.length && strings.HasPrefix(s.input[s.pos:], "{|") {
					if err := s.parseAnnotation(subject, predicate, object, nil); err != nil {
						return fmt.Errorf("error parsing annotation: %w", err)
					}
					s.skipWhitespaceAndComments()
				}
			}

			// Reifier syntax: o ~ <identifier>
			if s.pos < s.length && s.input[s.pos] == '~' {
				if s.strict() {
					return fmt.Errorf("reifier syntax not allowed in %s", s.mode.modeName())
				}
			}
			for s.pos < s.length && s.input[s.pos] == '~' {
				s.pos++
				s.skipWhitespaceAndComments()

				var reifier rdf.Term
				if s.pos < s.length && s.input[s.pos] != '.' && s.input[s.pos] != ',' && s.input[s.pos] != ';' && s.input[s.pos] != '{' {
					reifier, err = s.parseTerm()
					if err != nil {
						return fmt.Errorf("error parsing reifier: %w", err)
					}
					switch reifier.(type) {
					case *rdf.NamedNode, *rdf.BlankNode:
					default:
						return fmt.Errorf("reifier must be IRI or blank node, got %T", reifier)
					}
				} else {
					reifier = s.newBlankNode()
				}

				s.emit(reifier, rdf.RDFReifies, termOfTriple(subject, predicate, object))

				s.skipWhitespaceAndComments()

				// Annotation after the reifier adds properties to it
				for s.pos < s.length && strings.HasPrefix(s.input[s.pos:], "{|") {
					if err := s.parseAnnotation(subject, predicate, object, reifier); err != nil {
						return fmt.Errorf("error parsing reifier annotation: %w", err)
					}
					s.skipWhitespaceAndComments()
				}
			}

			if s.pos < s.length && s.input[s.pos] == ',' {
				if s.strict() {
					return fmt.Errorf("comma abbreviation not allowed in %s", s.mode.modeName())
				}
				s.pos++
				continue
			}
			break
		}

		s.skipWhitespaceAndComments()

		if s.pos < s.length && s.input[s.pos] == ';' {
			if s.strict() {
				return fmt.Errorf("semicolon abbreviation not allowed in %s", s.mode.modeName())
			}
			for s.pos < s.length && s.input[s.pos] == ';' {
				s.pos++
				s.skipWhitespaceAndComments()
			}
			if s.pos < s.length && s.input[s.pos] != '.' && s.input[s.pos] != '}' {
				continue
			}
		}

		break
	}

	// N-Quads: optional graph label before the final '.'
	if s.mode == modeNQuads {
		s.skipWhitespaceAndComments()
		if s.pos < s.length && s.input[s.pos] != '.' {
			label, err := s.parseGraphLabel()
			if err != nil {
				return fmt.Errorf("failed to parse graph label: %w", err)
			}
			for i := range s.pending {
				s.pending[i].Graph = label
			}
		}
	}

	s.skipWhitespaceAndComments()

	// The final '.' is optional right before a closing graph brace
	if s.inGraph && s.pos < s.length && s.input[s.pos] == '}' {
		return nil
	}
	if s.pos >= s.length || s.input[s.pos] != '.' {
		return fmt.Errorf("expected '.' at end of statement")
	}
	s.pos++
	return nil
}

// termOfTriple builds the triple term a reifier points at, unwrapping a
// quoted-triple object into its term form.
func termOfTriple(subject, predicate, object rdf.Term) *rdf.TripleTerm {
	if qt, ok := object.(*rdf.QuotedTriple); ok {
		object = rdf.NewTripleTerm(qt.Subject, qt.Predicate, qt.Object)
	}
	if qt, ok := subject.(*rdf.QuotedTriple); ok {
		subject = rdf.NewTripleTerm(qt.Subject, qt.Predicate, qt.Object)
	}
	return rdf.NewTripleTerm(subject, predicate, object)
}

// parseAnnotation parses {| predicate object |} attached to a triple.
// When reifier is nil a fresh one is introduced along with its
// rdf:reifies record; an explicit reifier already has its record, so
// only the annotation triples are added.
func (s *turtleScanner) parseAnnotation(subject, predicate, object rdf.Term, reifier rdf.Term) error {
	if !strings.HasPrefix(s.input[s.pos:], "{|") {
		return fmt.Errorf("expected '{|' at start of annotation")
	}
	s.pos += 2

	s.skipWhitespaceAndComments()

	if reifier == nil {
		reifier = s.newBlankNode()
		s.emit(reifier, rdf.RDFReifies, termOfTriple(subject, predicate, object))
	}

	// Predicate-object pairs, {||} is allowed
	if s.pos < s.length && !strings.HasPrefix(s.input[s.pos:], "|}") {
		for {
			s.skipWhitespaceAndComments()
			if strings.HasPrefix(s.input[s.pos:], "|}") {
				break
			}

			annotPred, err := s.parseTerm()
			if err != nil {
				return fmt.Errorf("error parsing annotation predicate: %w", err)
			}
			if _, ok := annotPred.(*rdf.NamedNode); !ok {
				return fmt.Errorf("annotation predicate must be IRI, got %T", annotPred)
			}

			for {
				s.skipWhitespaceAndComments()

				annotObj, err := s.parseTerm()
				if err != nil {
					return fmt.Errorf("error parsing annotation object: %w", err)
				}
				s.flushExtras()

				s.emit(reifier, annotPred, annotObj)

				s.skipWhitespaceAndComments()

				// Nested annotation on this annotation triple
				if s.pos < s.length && strings.HasPrefix(s.input[s.pos:], "{|") {
					if err := s.parseAnnotation(reifier, annotPred, annotObj, nil); err != nil {
						return fmt.Errorf("error parsing nested annotation: %w", err)
					}
					s.skipWhitespaceAndComments()
				}

				if s.pos < s.length && s.input[s.pos] == ',' {
					s.pos++
					continue
				}
				break
			}

			s.skipWhitespaceAndComments()

			if s.pos < s.length && s.input[s.pos] == ';' {
				for s.pos < s.length && s.input[s.pos] == ';' {
					s.pos++
					s.skipWhitespaceAndComments()
				}
				if !strings.HasPrefix(s.input[s.pos:], "|}") {
					continue
				}
			}
			break
		}
	}

	if !strings.HasPrefix(s.input[s.pos:], "|}") {
		return fmt.Errorf("expected '|}' at end of annotation")
	}
	s.pos += 2
	return nil
}

// parseTerm parses an RDF term (IRI, blank node, literal, collection,
// or quoted triple)
func (s *turtleScanner) parseTerm() (rdf.Term, error) {
	s.skipWhitespaceAndComments()

	if s.pos >= s.length {
		return nil, fmt.Errorf("unexpected end of input")
	}

	s.lastTermWasPropertyList = false
	s.lastTermWasAKeyword = false

	ch := s.input[s.pos]

	if ch == '<' {
		if strings.HasPrefix(s.input[s.pos:], "<<") {
			return s.parseQuotedTriple()
		}
		iri, err := s.parseIRI()
		if err != nil {
			return nil, err
		}
		return rdf.NewNamedNode(iri), nil
	}

	if ch == '_' && s.pos+1 < s.length && s.input[s.pos+1] == ':' {
		return s.parseBlankNode()
	}

	if ch == '[' {
		if s.strict() {
			return nil, fmt.Errorf("blank node property lists not allowed in %s", s.mode.modeName())
		}
		return s.parseAnonymousBlankNode()
	}

	if ch == '(' {
		if s.strict() {
			return nil, fmt.Errorf("collections not allowed in %s", s.mode.modeName())
		}
		return s.parseCollection()
	}

	if ch == '"' || ch == '\'' {
		return s.parseLiteral()
	}

	// Number literal: digit, sign, or '.' followed by a digit
	isNumber := false
	if ch >= '0' && ch <= '9' {
		isNumber = true
	} else if ch == '-' || ch == '+' {
		if s.pos+1 < s.length {
			nextCh := s.input[s.pos+1]
			if nextCh >= '0' && nextCh <= '9' {
				isNumber = true
			} else if nextCh == '.' && s.pos+2 < s.length && s.input[s.pos+2] >= '0' && s.input[s.pos+2] <= '9' {
				isNumber = true
			}
		}
	} else if ch == '.' {
		if s.pos+1 < s.length && s.input[s.pos+1] >= '0' && s.input[s.pos+1] <= '9' {
			isNumber = true
		}
	}

	if isNumber {
		if s.strict() {
			return nil, fmt.Errorf("bare numeric literals not allowed in %s", s.mode.modeName())
		}
		return s.parseNumber()
	}

	// 'a' keyword (rdf:type) when not part of a prefixed name
	if ch == 'a' {
		nextPos := s.pos + 1
		isStandaloneA := true
		if nextPos < s.length {
			nextRune, _ := utf8.DecodeRuneInString(s.input[nextPos:])
			if rdf.IsPNChars(nextRune) || nextRune == ':' || nextRune == '.' {
				isStandaloneA = false
			}
		}
		if isStandaloneA {
			if s.strict() {
				return nil, fmt.Errorf("'a' abbreviation not allowed in %s", s.mode.modeName())
			}
			s.pos++
			s.lastTermWasAKeyword = true
			return rdf.RDFType, nil
		}
	}

	// Boolean literals are case-sensitive
	if s.matchExactKeyword("true") {
		if s.strict() {
			return nil, fmt.Errorf("bare boolean literals not allowed in %s", s.mode.modeName())
		}
		return rdf.NewBooleanLiteral(true), nil
	}
	if s.matchExactKeyword("false") {
		if s.strict() {
			return nil, fmt.Errorf("bare boolean literals not allowed in %s", s.mode.modeName())
		}
		return rdf.NewBooleanLiteral(false), nil
	}

	if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == ':' {
		if s.strict() {
			return nil, fmt.Errorf("prefixed names not allowed in %s", s.mode.modeName())
		}
		return s.parsePrefixedName()
	}

	return nil, fmt.Errorf("unexpected character: %c", ch)
}

func (m parseMode) modeName() string {
	if m == modeNQuads {
		return "N-Quads"
	}
	return "N-Triples"
}

func (s *turtleScanner) skipWhitespaceAndComments() {
	for s.pos < s.length {
		ch := s.input[s.pos]
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			s.pos++
			continue
		}
		if ch == '#' {
			for s.pos < s.length && s.input[s.pos] != '\n' {
				s.pos++
			}
			continue
		}
		break
	}
}

// matchKeyword checks if the current position matches a keyword (case-insensitive)
func (s *turtleScanner) matchKeyword(keyword string) bool {
	if s.pos+len(keyword) > s.length {
		return false
	}
	if !strings.EqualFold(s.input[s.pos:s.pos+len(keyword)], keyword) {
		return false
	}
	if s.pos+len(keyword) < s.length {
		nextCh := s.input[s.pos+len(keyword)]
		if (nextCh >= 'a' && nextCh <= 'z') || (nextCh >= 'A' && nextCh <= 'Z') || (nextCh >= '0' && nextCh <= '9') {
			return false
		}
	}
	s.pos += len(keyword)
	return true
}

// matchExactKeyword checks if the current position matches a keyword (case-sensitive)
func (s *turtleScanner) matchExactKeyword(keyword string) bool {
	if s.pos+len(keyword) > s.length {
		return false
	}
	if s.input[s.pos:s.pos+len(keyword)] != keyword {
		return false
	}
	if s.pos+len(keyword) < s.length {
		nextCh := s.input[s.pos+len(keyword)]
		if (nextCh >= 'a' && nextCh <= 'z') || (nextCh >= 'A' && nextCh <= 'Z') || (nextCh >= '0' && nextCh <= '9') {
			return false
		}
	}
	s.pos += len(keyword)
	return true
}

func (s *turtleScanner) peekRune() (rune, int) {
	if s.pos >= s.length {
		return 0, 0
	}
	return utf8.DecodeRuneInString(s.input[s.pos:])
}

// parseIRI parses an IRI in angle brackets. Relative IRIs are returned
// verbatim; resolution happens in the conversion stage where the base
// in effect is known.
func (s *turtleScanner) parseIRI() (string, error) {
	if s.pos >= s.length || s.input[s.pos] != '<' {
		return "", fmt.Errorf("expected '<' at start of IRI")
	}
	s.pos++

	var result strings.Builder
	for s.pos < s.length && s.input[s.pos] != '>' {
		ch := s.input[s.pos]

		if ch == '\\' {
			if s.pos+1 < s.length {
				nextCh := s.input[s.pos+1]
				if nextCh == 'u' || nextCh == 'U' {
					escaped, err := s.processUnicodeEscape()
					if err != nil {
						return "", err
					}
					result.WriteString(escaped)
					continue
				}
			}
			return "", fmt.Errorf("invalid escape sequence in IRI")
		}

		// IRIs cannot contain space, <, >, ", or control characters
		if ch == ' ' || ch == '<' || ch == '>' || ch == '"' || ch <= 0x1F {
			return "", fmt.Errorf("invalid character in IRI: %q", ch)
		}

		result.WriteByte(ch)
		s.pos++
	}

	if s.pos >= s.length {
		return "", fmt.Errorf("unclosed IRI")
	}

	iri := result.String()
	s.pos++

	if s.strict() && !strings.Contains(iri, ":") {
		return "", fmt.Errorf("relative IRI not allowed in %s: %s", s.mode.modeName(), iri)
	}

	return iri, nil
}

// processUnicodeEscape processes \uXXXX or \UXXXXXXXX escape sequences
func (s *turtleScanner) processUnicodeEscape() (string, error) {
	if s.pos >= s.length || s.input[s.pos] != '\\' {
		return "", fmt.Errorf("expected '\\' at start of escape sequence")
	}
	s.pos++

	if s.pos >= s.length {
		return "", fmt.Errorf("incomplete escape sequence")
	}

	escapeType := s.input[s.pos]
	s.pos++

	var hexDigits int
	switch escapeType {
	case 'u':
		hexDigits = 4
	case 'U':
		hexDigits = 8
	default:
		return "", fmt.Errorf("invalid escape type: %c", escapeType)
	}

	if s.pos+hexDigits > s.length {
		return "", fmt.Errorf("incomplete Unicode escape sequence")
	}

	hexStr := s.input[s.pos : s.pos+hexDigits]
	s.pos += hexDigits

	codePoint, err := strconv.ParseInt(hexStr, 16, 32)
	if err != nil {
		return "", fmt.Errorf("invalid hex digits in Unicode escape: %s", hexStr)
	}

	// Surrogates are invalid in UTF-8 strings
	if codePoint >= 0xD800 && codePoint <= 0xDFFF {
		return "", fmt.Errorf("invalid Unicode escape: surrogate code point U+%04X not allowed", codePoint)
	}
	if codePoint > 0x10FFFF {
		return "", fmt.Errorf("invalid Unicode escape: code point U+%X exceeds maximum U+10FFFF", codePoint)
	}

	return string(rune(codePoint)), nil
}

// parseBlankNode parses a labeled blank node _:label
func (s *turtleScanner) parseBlankNode() (rdf.Term, error) {
	if s.pos+1 >= s.length || s.input[s.pos] != '_' || s.input[s.pos+1] != ':' {
		return nil, fmt.Errorf("expected '_:' at start of blank node")
	}
	s.pos += 2

	start := s.pos

	// BLANK_NODE_LABEL ::= '_:' (PN_CHARS_U | [0-9]) ((PN_CHARS | '.')* PN_CHARS)?
	if s.pos < s.length {
		r, size := s.peekRune()
		if !rdf.IsPNCharsU(r) && !(r >= '0' && r <= '9') {
			return nil, fmt.Errorf("invalid blank node label start character")
		}
		s.pos += size
	}

	lastCharWasDot := false
	for s.pos < s.length {
		r, size := s.peekRune()
		if !rdf.IsPNChars(r) && r != '.' {
			break
		}
		lastCharWasDot = r == '.'
		s.pos += size
	}

	// Labels cannot end with '.'
	if lastCharWasDot {
		s.pos--
	}

	return rdf.NewBlankNode(s.input[start:s.pos]), nil
}

// parseAnonymousBlankNode parses [] or a blank node property list.
func (s *turtleScanner) parseAnonymousBlankNode() (rdf.Term, error) {
	if s.pos >= s.length || s.input[s.pos] != '[' {
		return nil, fmt.Errorf("expected '[' at start of blank node")
	}
	s.pos++
	s.skipWhitespaceAndComments()

	blankNode := s.newBlankNode()

	if s.pos < s.length && s.input[s.pos] == ']' {
		s.pos++
		return blankNode, nil
	}

	for {
		s.skipWhitespaceAndComments()

		if s.pos >= s.length {
			return nil, fmt.Errorf("unexpected end of input in blank node property list")
		}
		if s.input[s.pos] == ']' {
			break
		}

		predicate, err := s.parseTerm()
		if err != nil {
			return nil, fmt.Errorf("failed to parse predicate in blank node property list: %w", err)
		}
		switch predicate.(type) {
		case *rdf.Literal:
			return nil, fmt.Errorf("literals cannot be used as predicates in blank node property list")
		case *rdf.BlankNode:
			return nil, fmt.Errorf("blank nodes cannot be used as predicates in blank node property list")
		}

		for {
			s.skipWhitespaceAndComments()

			object, err := s.parseTerm()
			if err != nil {
				return nil, fmt.Errorf("failed to parse object in blank node property list: %w", err)
			}
			if s.lastTermWasAKeyword {
				return nil, fmt.Errorf("keyword 'a' cannot be used as object in blank node property list")
			}

			s.emitExtra(blankNode, predicate, object)

			s.skipWhitespaceAndComments()

			if s.pos < s.length && s.input[s.pos] == ',' {
				s.pos++
				continue
			}
			break
		}

		s.skipWhitespaceAndComments()

		if s.pos < s.length && s.input[s.pos] == ';' {
			for s.pos < s.length && s.input[s.pos] == ';' {
				s.pos++
				s.skipWhitespaceAndComments()
			}
			if s.pos < s.length && s.input[s.pos] != ']' {
				continue
			}
		}

		break
	}

	if s.pos >= s.length || s.input[s.pos] != ']' {
		return nil, fmt.Errorf("expected ']' at end of blank node property list")
	}
	s.pos++

	// Set after inner terms so nested parses cannot clear them
	s.lastTermWasPropertyList = true
	s.termMadeStructure = true

	return blankNode, nil
}

// parseCollection parses an RDF list: (item1 item2 ...)
func (s *turtleScanner) parseCollection() (rdf.Term, error) {
	if s.pos >= s.length || s.input[s.pos] != '(' {
		return nil, fmt.Errorf("expected '(' at start of collection")
	}
	s.pos++
	s.skipWhitespaceAndComments()

	if s.pos < s.length && s.input[s.pos] == ')' {
		s.pos++
		return rdf.RDFNil, nil
	}

	var items []rdf.Term
	for {
		s.skipWhitespaceAndComments()
		if s.pos >= s.length {
			return nil, fmt.Errorf("unexpected end of input in collection")
		}
		if s.input[s.pos] == ')' {
			break
		}

		item, err := s.parseTerm()
		if err != nil {
			return nil, fmt.Errorf("failed to parse collection item: %w", err)
		}
		items = append(items, item)

		s.skipWhitespaceAndComments()
	}

	if s.pos >= s.length || s.input[s.pos] != ')' {
		return nil, fmt.Errorf("expected ')' at end of collection")
	}
	s.pos++

	if len(items) == 0 {
		return rdf.RDFNil, nil
	}

	s.termMadeStructure = true

	// Build the rdf:first/rdf:rest chain
	var listHead rdf.Term
	var prevNode rdf.Term

	for i, item := range items {
		node := s.newBlankNode()

		if i == 0 {
			listHead = node
		}

		s.emitExtra(node, rdf.RDFFirst, item)

		if i > 0 && prevNode != nil {
			s.emitExtra(prevNode, rdf.RDFRest, node)
		}
		if i == len(items)-1 {
			s.emitExtra(node, rdf.RDFRest, rdf.RDFNil)
		}

		prevNode = node
	}

	return listHead, nil
}

// parseLiteral parses a string literal with optional language tag or datatype
func (s *turtleScanner) parseLiteral() (rdf.Term, error) {
	if s.pos >= s.length {
		return nil, fmt.Errorf("unexpected end of input when expecting literal")
	}

	// Long literal (""" or ''')
	if s.pos+2 < s.length {
		if s.input[s.pos:s.pos+3] == `"""` {
			if s.strict() {
				return nil, fmt.Errorf("triple-quoted literals not allowed in %s", s.mode.modeName())
			}
			return s.parseLongLiteral(`"""`)
		}
		if s.input[s.pos:s.pos+3] == `'''` {
			if s.strict() {
				return nil, fmt.Errorf("triple-quoted literals not allowed in %s", s.mode.modeName())
			}
			return s.parseLongLiteral(`'''`)
		}
	}

	quoteChar := s.input[s.pos]
	if quoteChar != '"' && quoteChar != '\'' {
		return nil, fmt.Errorf("expected quote at start of literal")
	}
	if quoteChar == '\'' && s.strict() {
		return nil, fmt.Errorf("single-quoted literals not allowed in %s", s.mode.modeName())
	}
	s.pos++

	var value strings.Builder
	for s.pos < s.length {
		ch := s.input[s.pos]
		if ch == quoteChar {
			break
		}
		if ch == '\\' && s.pos+1 < s.length {
			nextCh := s.input[s.pos+1]
			if nextCh == 'u' || nextCh == 'U' {
				escaped, err := s.processUnicodeEscape()
				if err != nil {
					return nil, err
				}
				value.WriteString(escaped)
			} else {
				s.pos++
				if err := writeEscape(&value, s.input[s.pos]); err != nil {
					return nil, err
				}
				s.pos++
			}
		} else {
			value.WriteByte(ch)
			s.pos++
		}
	}

	if s.pos >= s.length {
		return nil, fmt.Errorf("unclosed string literal")
	}
	s.pos++

	return s.parseLiteralSuffix(value.String())
}

// parseLongLiteral parses a triple-quoted string literal
func (s *turtleScanner) parseLongLiteral(delimiter string) (rdf.Term, error) {
	if s.pos+3 > s.length || s.input[s.pos:s.pos+3] != delimiter {
		return nil, fmt.Errorf("expected %s at start of long literal", delimiter)
	}
	s.pos += 3

	closed := false
	var value strings.Builder
	for s.pos < s.length {
		if s.pos+3 <= s.length && s.input[s.pos:s.pos+3] == delimiter {
			s.pos += 3
			closed = true
			break
		}

		ch := s.input[s.pos]
		if ch == '\\' && s.pos+1 < s.length {
			nextCh := s.input[s.pos+1]
			if nextCh == 'u' || nextCh == 'U' {
				escaped, err := s.processUnicodeEscape()
				if err != nil {
					return nil, err
				}
				value.WriteString(escaped)
			} else {
				s.pos++
				if err := writeEscape(&value, s.input[s.pos]); err != nil {
					return nil, err
				}
				s.pos++
			}
		} else {
			value.WriteByte(ch)
			s.pos++
		}
	}

	if !closed {
		return nil, fmt.Errorf("unclosed long string literal")
	}

	return s.parseLiteralSuffix(value.String())
}

func writeEscape(b *strings.Builder, ch byte) error {
	switch ch {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case '"':
		b.WriteByte('"')
	case '\'':
		b.WriteByte('\'')
	case '\\':
		b.WriteByte('\\')
	default:
		return fmt.Errorf("invalid escape sequence \\%c", ch)
	}
	return nil
}

// parseLiteralSuffix parses the optional @lang, @lang--dir, or
// ^^datatype suffix after a string value. The suffix must follow the
// closing quote directly, otherwise '@' would be read as a directive.
func (s *turtleScanner) parseLiteralSuffix(value string) (rdf.Term, error) {
	if s.pos < s.length && s.input[s.pos] == '@' {
		s.pos++
		langStart := s.pos
		for s.pos < s.length && ((s.input[s.pos] >= 'a' && s.input[s.pos] <= 'z') || (s.input[s.pos] >= 'A' && s.input[s.pos] <= 'Z') || (s.input[s.pos] >= '0' && s.input[s.pos] <= '9') || s.input[s.pos] == '-') {
			s.pos++
		}
		langTag := s.input[langStart:s.pos]

		// BCP 47: primary language tag is at most 8 characters
		primaryTag := langTag
		if idx := strings.Index(langTag, "-"); idx != -1 {
			primaryTag = langTag[:idx]
		}
		if len(primaryTag) > 8 {
			return nil, fmt.Errorf("invalid language tag: primary tag %q exceeds maximum length of 8 characters", primaryTag)
		}
		if primaryTag == "" {
			return nil, fmt.Errorf("missing language tag after '@'")
		}

		// Direction suffix: --ltr or --rtl
		if idx := strings.Index(langTag, "--"); idx != -1 {
			lang := langTag[:idx]
			dir := langTag[idx+2:]
			if dir != "ltr" && dir != "rtl" {
				return nil, fmt.Errorf("invalid direction in language tag: %q (must be 'ltr' or 'rtl')", dir)
			}
			if lang == "" {
				return nil, fmt.Errorf("missing language tag before '--'")
			}
			return rdf.NewLiteralWithLanguageAndDirection(value, lang, dir), nil
		}

		return rdf.NewLiteralWithLanguage(value, langTag), nil
	}

	if s.pos+1 < s.length && s.input[s.pos] == '^' && s.input[s.pos+1] == '^' {
		s.pos += 2
		datatypeTerm, err := s.parseTerm()
		if err != nil {
			return nil, fmt.Errorf("failed to parse datatype: %w", err)
		}
		named, ok := datatypeTerm.(*rdf.NamedNode)
		if !ok {
			return nil, fmt.Errorf("datatype must be an IRI or prefixed name")
		}
		// rdf:langString and rdf:dirLangString require tag syntax
		if named.IRI == "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString" {
			return nil, fmt.Errorf("rdf:langString requires language tag syntax (@lang), not datatype syntax (^^)")
		}
		if named.IRI == "http://www.w3.org/1999/02/22-rdf-syntax-ns#dirLangString" {
			return nil, fmt.Errorf("rdf:dirLangString requires language and direction syntax (@lang--dir), not datatype syntax (^^)")
		}
		return rdf.NewLiteralWithDatatype(value, named), nil
	}

	return rdf.NewLiteral(value), nil
}

// parseNumber parses a numeric literal, preserving its lexical form
func (s *turtleScanner) parseNumber() (rdf.Term, error) {
	start := s.pos
	isDecimal := false
	isDouble := false

	if s.pos < s.length && (s.input[s.pos] == '+' || s.input[s.pos] == '-') {
		s.pos++
	}

	hasIntegerDigits := false
	for s.pos < s.length && s.input[s.pos] >= '0' && s.input[s.pos] <= '9' {
		s.pos++
		hasIntegerDigits = true
	}

	if s.pos < s.length && s.input[s.pos] == '.' {
		if s.pos+1 < s.length {
			nextCh := s.input[s.pos+1]
			if nextCh >= '0' && nextCh <= '9' {
				isDecimal = true
				s.pos++
				for s.pos < s.length && s.input[s.pos] >= '0' && s.input[s.pos] <= '9' {
					s.pos++
				}
			} else if (nextCh == 'e' || nextCh == 'E') && hasIntegerDigits {
				isDecimal = true
				s.pos++
			} else if !hasIntegerDigits {
				return nil, fmt.Errorf("expected digits in number")
			}
			// Otherwise the '.' ends the statement, don't consume it
		} else if !hasIntegerDigits {
			return nil, fmt.Errorf("expected digits in number")
		}
	}

	if !hasIntegerDigits && !isDecimal {
		return nil, fmt.Errorf("expected digits in number")
	}

	if s.pos < s.length && (s.input[s.pos] == 'e' || s.input[s.pos] == 'E') {
		isDouble = true
		s.pos++

		if s.pos < s.length && (s.input[s.pos] == '+' || s.input[s.pos] == '-') {
			s.pos++
		}

		expHasDigits := false
		for s.pos < s.length && s.input[s.pos] >= '0' && s.input[s.pos] <= '9' {
			s.pos++
			expHasDigits = true
		}
		if !expHasDigits {
			return nil, fmt.Errorf("expected digits in exponent")
		}
	}

	numStr := s.input[start:s.pos]

	switch {
	case isDouble:
		if _, err := strconv.ParseFloat(numStr, 64); err != nil {
			return nil, fmt.Errorf("failed to parse double: %w", err)
		}
		return rdf.NewLiteralWithDatatype(numStr, rdf.XSDDouble), nil
	case isDecimal:
		if _, err := strconv.ParseFloat(numStr, 64); err != nil {
			return nil, fmt.Errorf("failed to parse decimal: %w", err)
		}
		return rdf.NewLiteralWithDatatype(numStr, rdf.XSDDecimal), nil
	default:
		if _, err := strconv.ParseInt(numStr, 10, 64); err != nil {
			return nil, fmt.Errorf("failed to parse integer: %w", err)
		}
		return rdf.NewLiteralWithDatatype(numStr, rdf.XSDInteger), nil
	}
}

// parsePrefixedName parses a prefixed name (e.g., ex:foo or :foo)
func (s *turtleScanner) parsePrefixedName() (rdf.Term, error) {
	start := s.pos

	// PN_PREFIX ::= PN_CHARS_BASE ((PN_CHARS|'.')* PN_CHARS)?
	if s.pos < s.length && s.input[s.pos] != ':' {
		r, size := s.peekRune()
		if !rdf.IsPNCharsBase(r) {
			return nil, fmt.Errorf("invalid prefix start character")
		}
		s.pos += size

		lastCharWasDot := false
		for s.pos < s.length && s.input[s.pos] != ':' {
			r, size := s.peekRune()
			if !rdf.IsPNChars(r) && r != '.' {
				break
			}
			lastCharWasDot = r == '.'
			s.pos += size
		}

		if lastCharWasDot {
			s.pos--
		}
	}

	if s.pos >= s.length || s.input[s.pos] != ':' {
		return nil, fmt.Errorf("expected ':' in prefixed name")
	}

	prefix := s.input[start:s.pos]
	s.pos++

	// PN_LOCAL ::= (PN_CHARS_U | ':' | [0-9] | PLX) ((PN_CHARS | '.' | ':' | PLX)* (PN_CHARS | ':' | PLX))?
	var localPart strings.Builder
	isFirstChar := true
	for s.pos < s.length {
		r, size := s.peekRune()

		if r == ' ' || r == '\t' || r == '\n' || r == '\r' ||
			r == '>' || r == '<' || r == '"' ||
			r == ';' || r == ',' || r == '#' || r == '(' || r == ')' ||
			r == '[' || r == ']' || r == '{' || r == '}' {
			break
		}

		if isFirstChar {
			if r != '%' && r != '\\' {
				if r == '-' || r == '.' {
					return nil, fmt.Errorf("local name cannot start with '%c' (use \\%c to escape)", r, r)
				}
				if !rdf.IsPNCharsU(r) && r != ':' && !(r >= '0' && r <= '9') {
					return nil, fmt.Errorf("invalid local name start character '%c'", r)
				}
			}
			isFirstChar = false
		}

		// PERCENT ::= '%' HEX HEX
		if r == '%' {
			if s.pos+2 >= s.length {
				return nil, fmt.Errorf("incomplete percent encoding in prefixed name")
			}
			hex1 := s.input[s.pos+1]
			hex2 := s.input[s.pos+2]
			if !rdf.IsHexDigit(hex1) || !rdf.IsHexDigit(hex2) {
				return nil, fmt.Errorf("invalid percent encoding in prefixed name")
			}
			localPart.WriteByte('%')
			localPart.WriteByte(hex1)
			localPart.WriteByte(hex2)
			s.pos += 3
			continue
		}

		// PN_LOCAL_ESC
		if r == '\\' && s.pos+1 < s.length {
			nextCh := s.input[s.pos+1]
			if nextCh == 'u' || nextCh == 'U' {
				return nil, fmt.Errorf("unicode escapes not allowed in prefixed names")
			}
			if strings.IndexByte("_~.-!$&'()*+,;=/?#@%:", nextCh) >= 0 {
				localPart.WriteByte(nextCh)
				s.pos += 2
				continue
			}
			return nil, fmt.Errorf("invalid escape sequence in prefixed name")
		}

		// Characters that require escaping end the name with an error
		if strings.ContainsRune("~!$&'*+=/?@", r) {
			return nil, fmt.Errorf("character %c must be escaped in prefixed name", r)
		}

		if rdf.IsPNChars(r) || r == ':' || r == '.' {
			localPart.WriteRune(r)
			s.pos += size
			continue
		}

		break
	}

	localPartStr := localPart.String()

	// PN_LOCAL cannot end with '.', backtrack over trailing dots
	originalLen := len(localPartStr)
	localPartStr = strings.TrimRight(localPartStr, ".")
	s.pos -= originalLen - len(localPartStr)

	iri, err := s.prefixes.Expand(prefix, localPartStr)
	if err != nil {
		return nil, err
	}
	return rdf.NewNamedNode(iri), nil
}

// parseQuotedTriple parses << s p o >>, << s p o ~ id >>, and the
// triple term form <<( s p o )>>. A bare quoted triple is returned
// as-is for the conversion stage; an explicit reifier produces its
// rdf:reifies record here and the reifier stands in as the term.
func (s *turtleScanner) parseQuotedTriple() (rdf.Term, error) {
	if !strings.HasPrefix(s.input[s.pos:], "<<") {
		return nil, fmt.Errorf("expected '<<' at start of quoted triple")
	}
	s.pos += 2

	s.skipWhitespaceAndComments()

	isTripleTerm := false
	if s.pos < s.length && s.input[s.pos] == '(' {
		isTripleTerm = true
		s.pos++
		s.skipWhitespaceAndComments()
	}

	if s.strict() && !isTripleTerm {
		return nil, fmt.Errorf("quoted triple syntax not allowed in %s, use <<( )>>", s.mode.modeName())
	}

	s.termMadeStructure = false

	subject, err := s.parseTerm()
	if err != nil {
		return nil, fmt.Errorf("error parsing quoted triple subject: %w", err)
	}
	if _, ok := subject.(*rdf.Literal); ok {
		return nil, fmt.Errorf("quoted triple subject cannot be a literal")
	}
	if s.termMadeStructure {
		return nil, fmt.Errorf("quoted triples cannot contain collections or blank node property lists")
	}

	s.skipWhitespaceAndComments()

	predicate, err := s.parseTerm()
	if err != nil {
		return nil, fmt.Errorf("error parsing quoted triple predicate: %w", err)
	}
	if _, ok := predicate.(*rdf.NamedNode); !ok {
		return nil, fmt.Errorf("quoted triple predicate must be an IRI, got %T", predicate)
	}

	s.skipWhitespaceAndComments()

	object, err := s.parseTerm()
	if err != nil {
		return nil, fmt.Errorf("error parsing quoted triple object: %w", err)
	}
	if s.termMadeStructure {
		return nil, fmt.Errorf("quoted triples cannot contain collections or blank node property lists")
	}

	s.skipWhitespaceAndComments()

	// '~' identifier is only valid on quoted triples, not triple terms
	var identifier rdf.Term
	if !isTripleTerm && s.pos < s.length && s.input[s.pos] == '~' {
		s.pos++
		s.skipWhitespaceAndComments()

		if s.pos < s.length && s.input[s.pos] != '>' {
			identifier, err = s.parseTerm()
			if err != nil {
				return nil, fmt.Errorf("error parsing quoted triple reifier: %w", err)
			}
			switch identifier.(type) {
			case *rdf.NamedNode, *rdf.BlankNode:
			default:
				return nil, fmt.Errorf("quoted triple reifier must be IRI or blank node, got %T", identifier)
			}
			s.skipWhitespaceAndComments()
		} else {
			identifier = s.newBlankNode()
		}
	}

	if isTripleTerm {
		if !strings.HasPrefix(s.input[s.pos:], ")>>") {
			return nil, fmt.Errorf("expected ')>>' at end of triple term")
		}
		s.pos += 3
		return rdf.NewTripleTerm(subject, predicate, object), nil
	}

	if !strings.HasPrefix(s.input[s.pos:], ">>") {
		return nil, fmt.Errorf("expected '>>' at end of quoted triple")
	}
	s.pos += 2

	qt, err := rdf.NewQuotedTriple(subject, predicate, object)
	if err != nil {
		return nil, err
	}

	// << s p o ~ id >> asserts id rdf:reifies <<( s p o )>> and the
	// reifier stands in for the quoted triple.
	if identifier != nil {
		s.emitExtra(identifier, rdf.RDFReifies, rdf.NewTripleTerm(qt.Subject, qt.Predicate, qt.Object))
		return identifier, nil
	}

	return qt, nil
}
