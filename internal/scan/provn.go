package scan

import (
	"fmt"
	"io"
	"strings"

	"github.com/rdfless/rdfless/pkg/rdf"
)

const provNamespace = "http://www.w3.org/ns/prov#"

// provnScanner translates PROV-N documents into PROV-O triples. It is
// line-based: prefix declarations are collected in a first pass so
// statements can reference prefixes declared anywhere in the document.
type provnScanner struct {
	lines    []string
	lineIdx  int
	prefixes *rdf.PrefixMap
	pending  []*rdf.Quad
}

// Binary PROV relations translated to their PROV-O properties. The
// subject and object are the first two arguments; remaining arguments
// carry optional information that has no direct triple form and is
// dropped.
var provRelations = map[string]string{
	"wasGeneratedBy":    provNamespace + "wasGeneratedBy",
	"used":              provNamespace + "used",
	"wasAssociatedWith": provNamespace + "wasAssociatedWith",
	"wasAttributedTo":   provNamespace + "wasAttributedTo",
	"wasDerivedFrom":    provNamespace + "wasDerivedFrom",
	"wasInformedBy":     provNamespace + "wasInformedBy",
	"actedOnBehalfOf":   provNamespace + "actedOnBehalfOf",
}

func newPROVNScanner(input string) *provnScanner {
	s := &provnScanner{
		lines:    strings.Split(input, "\n"),
		prefixes: rdf.NewPrefixMap(),
	}
	s.prefixes.Declare("prov", provNamespace)

	// First pass: prefix declarations can appear anywhere
	for _, line := range s.lines {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "prefix ") {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(line, "prefix "))
		parts := strings.Fields(rest)
		if len(parts) != 2 {
			continue
		}
		iri := strings.TrimSuffix(strings.TrimPrefix(parts[1], "<"), ">")
		s.prefixes.Declare(parts[0], iri)
	}

	return s
}

func (s *provnScanner) Prefixes() *rdf.PrefixMap {
	return s.prefixes
}

// Recover skips the statement that failed; statements are one per
// line, so the failed line is already consumed.
func (s *provnScanner) Recover() {}

func (s *provnScanner) Next() (*rdf.Quad, error) {
	for len(s.pending) == 0 {
		if s.lineIdx >= len(s.lines) {
			return nil, io.EOF
		}

		line := strings.TrimSpace(s.lines[s.lineIdx])
		lineNo := s.lineIdx + 1
		s.lineIdx++

		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if line == "document" || line == "endDocument" {
			continue
		}
		if strings.HasPrefix(line, "prefix ") {
			continue
		}

		if err := s.parseLine(line, lineNo); err != nil {
			return nil, err
		}
	}

	quad := s.pending[0]
	s.pending = s.pending[1:]
	return quad, nil
}

func (s *provnScanner) parseLine(line string, lineNo int) error {
	open := strings.Index(line, "(")
	if open < 0 {
		return &ParseError{Line: lineNo, Msg: fmt.Sprintf("expected '(' in statement: %s", line)}
	}
	name := strings.TrimSpace(line[:open])

	end := strings.LastIndex(line, ")")
	if end < open {
		return &ParseError{Line: lineNo, Msg: "unclosed statement"}
	}
	args := splitProvnArgs(line[open+1 : end])

	switch name {
	case "entity":
		return s.parseElement(args, "Entity", lineNo)
	case "agent":
		return s.parseElement(args, "Agent", lineNo)
	case "activity":
		return s.parseActivity(args, lineNo)
	default:
		if property, ok := provRelations[name]; ok {
			return s.parseRelation(args, property, lineNo)
		}
		// Statements without a triple form are dropped
		return nil
	}
}

// parseElement handles entity(id, [attrs]) and agent(id, [attrs]).
func (s *provnScanner) parseElement(args []string, class string, lineNo int) error {
	if len(args) == 0 || args[0] == "" {
		return &ParseError{Line: lineNo, Msg: "missing identifier"}
	}

	subject, err := s.resolveIdentifier(args[0])
	if err != nil {
		return &ParseError{Line: lineNo, Msg: err.Error()}
	}

	s.emit(subject, rdf.RDFType, rdf.NewNamedNode(provNamespace+class))

	for _, arg := range args[1:] {
		if err := s.parseAttributes(subject, arg, lineNo); err != nil {
			return err
		}
	}
	return nil
}

// parseActivity handles activity(id, startTime, endTime, [attrs]).
// The time arguments are optional and may use the '-' placeholder.
func (s *provnScanner) parseActivity(args []string, lineNo int) error {
	if len(args) == 0 || args[0] == "" {
		return &ParseError{Line: lineNo, Msg: "missing identifier"}
	}

	subject, err := s.resolveIdentifier(args[0])
	if err != nil {
		return &ParseError{Line: lineNo, Msg: err.Error()}
	}

	s.emit(subject, rdf.RDFType, rdf.NewNamedNode(provNamespace+"Activity"))

	timeProps := []string{provNamespace + "startedAtTime", provNamespace + "endedAtTime"}
	timeIdx := 0
	for _, arg := range args[1:] {
		if strings.HasPrefix(arg, "[") {
			if err := s.parseAttributes(subject, arg, lineNo); err != nil {
				return err
			}
			continue
		}
		if timeIdx >= len(timeProps) {
			continue
		}
		prop := timeProps[timeIdx]
		timeIdx++
		if arg == "-" || arg == "" {
			continue
		}
		s.emit(subject, rdf.NewNamedNode(prop), rdf.NewLiteralWithDatatype(unquote(arg), rdf.XSDDateTime))
	}
	return nil
}

// parseRelation handles the binary relations: the first two arguments
// become subject and object.
func (s *provnScanner) parseRelation(args []string, property string, lineNo int) error {
	if len(args) < 2 {
		return &ParseError{Line: lineNo, Msg: "relation needs at least two arguments"}
	}

	// Optional relation identifier: wasGeneratedBy(id; e, a, t)
	first := args[0]
	if idx := strings.Index(first, ";"); idx >= 0 {
		first = strings.TrimSpace(first[idx+1:])
	}

	if first == "-" || args[1] == "-" || first == "" || args[1] == "" {
		return nil
	}

	subject, err := s.resolveIdentifier(first)
	if err != nil {
		return &ParseError{Line: lineNo, Msg: err.Error()}
	}
	object, err := s.resolveIdentifier(args[1])
	if err != nil {
		return &ParseError{Line: lineNo, Msg: err.Error()}
	}

	s.emit(subject, rdf.NewNamedNode(property), object)
	return nil
}

// parseAttributes handles the [key=value, ...] attribute block,
// emitting one triple per pair with the value as a literal. Typed
// values ("v" %% xsd:type) keep their datatype.
func (s *provnScanner) parseAttributes(subject rdf.Term, arg string, lineNo int) error {
	arg = strings.TrimSpace(arg)
	if !strings.HasPrefix(arg, "[") || !strings.HasSuffix(arg, "]") {
		return nil
	}

	for _, pair := range splitProvnArgs(arg[1 : len(arg)-1]) {
		eq := strings.Index(pair, "=")
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(pair[:eq])
		val := strings.TrimSpace(pair[eq+1:])
		if key == "" || val == "" {
			continue
		}

		predicate, err := s.resolveIdentifier(key)
		if err != nil {
			return &ParseError{Line: lineNo, Msg: err.Error()}
		}

		var object rdf.Term
		if idx := strings.Index(val, "%%"); idx >= 0 {
			datatype, err := s.resolveIdentifier(strings.TrimSpace(val[idx+2:]))
			if err != nil {
				return &ParseError{Line: lineNo, Msg: err.Error()}
			}
			named, ok := datatype.(*rdf.NamedNode)
			if !ok {
				return &ParseError{Line: lineNo, Msg: "attribute datatype must be an IRI"}
			}
			object = rdf.NewLiteralWithDatatype(unquote(strings.TrimSpace(val[:idx])), named)
		} else {
			object = rdf.NewLiteral(unquote(val))
		}

		s.emit(subject, predicate, object)
	}
	return nil
}

func (s *provnScanner) emit(subject, predicate, object rdf.Term) {
	s.pending = append(s.pending, rdf.NewTripleQuad(subject, predicate, object))
}

// resolveIdentifier maps a PROV-N identifier to an IRI term. Prefixed
// names use the declared prefixes; full IRIs may appear in angle
// brackets; anything else is left for the conversion stage to resolve.
func (s *provnScanner) resolveIdentifier(id string) (rdf.Term, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("empty identifier")
	}

	if strings.HasPrefix(id, "<") && strings.HasSuffix(id, ">") {
		return rdf.NewNamedNode(id[1 : len(id)-1]), nil
	}

	if idx := strings.Index(id, ":"); idx >= 0 {
		prefix := id[:idx]
		if _, ok := s.prefixes.Namespace(prefix); ok {
			iri, err := s.prefixes.Expand(prefix, id[idx+1:])
			if err != nil {
				return nil, err
			}
			return rdf.NewNamedNode(iri), nil
		}
		// A scheme rather than a declared prefix
		return rdf.NewNamedNode(id), nil
	}

	return rdf.NewNamedNode(id), nil
}

func unquote(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, "\"") && strings.HasSuffix(v, "\"") {
		return v[1 : len(v)-1]
	}
	return v
}

// splitProvnArgs splits a statement's argument list on top-level
// commas, respecting square brackets and quoted strings.
func splitProvnArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	depth := 0
	inQuotes := false

	for i := 0; i < len(argsStr); i++ {
		ch := argsStr[i]
		switch {
		case ch == '"' && (i == 0 || argsStr[i-1] != '\\'):
			inQuotes = !inQuotes
			current.WriteByte(ch)
		case inQuotes:
			current.WriteByte(ch)
		case ch == '[':
			depth++
			current.WriteByte(ch)
		case ch == ']':
			depth--
			current.WriteByte(ch)
		case ch == ',' && depth == 0:
			args = append(args, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	if current.Len() > 0 || len(args) > 0 {
		args = append(args, strings.TrimSpace(current.String()))
	}
	return args
}
