// Package scan turns serialized RDF documents into a stream of raw
// statements. Scanners expand prefixed names and desugar syntactic
// abbreviations, but leave relative IRIs and bare quoted triples for
// the conversion stage to settle.
package scan

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rdfless/rdfless/pkg/rdf"
)

// Format identifies an input serialization.
type Format int

const (
	FormatTurtle Format = iota
	FormatTriG
	FormatNTriples
	FormatNQuads
	FormatPROVN
)

func (f Format) String() string {
	switch f {
	case FormatTurtle:
		return "turtle"
	case FormatTriG:
		return "trig"
	case FormatNTriples:
		return "ntriples"
	case FormatNQuads:
		return "nquads"
	case FormatPROVN:
		return "provn"
	default:
		return "unknown"
	}
}

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "turtle", "ttl":
		return FormatTurtle, nil
	case "trig":
		return FormatTriG, nil
	case "ntriples", "nt", "n-triples":
		return FormatNTriples, nil
	case "nquads", "nq", "n-quads":
		return FormatNQuads, nil
	case "provn", "prov-n":
		return FormatPROVN, nil
	default:
		return 0, fmt.Errorf("unknown format: %s", name)
	}
}

// DetectFormat guesses the format from a file extension. The second
// return value is false when the extension is not recognized.
func DetectFormat(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttl", ".turtle":
		return FormatTurtle, true
	case ".trig":
		return FormatTriG, true
	case ".nt":
		return FormatNTriples, true
	case ".nq":
		return FormatNQuads, true
	case ".provn":
		return FormatPROVN, true
	default:
		return FormatTurtle, false
	}
}

// ParseError reports a syntax error with its position in the document.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Scanner streams raw statements out of one document. Next returns
// io.EOF after the last statement and *ParseError on bad syntax; after
// a parse error, Recover skips the rest of the failed statement so
// scanning can continue.
type Scanner interface {
	Next() (*rdf.Quad, error)
	Prefixes() *rdf.PrefixMap
	Recover()
}

// New builds a Scanner for the given format, reading the document
// fully before scanning starts.
func New(r io.Reader, format Format) (Scanner, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	input := string(data)

	switch format {
	case FormatTurtle:
		return newTurtleScanner(input, modeTurtle), nil
	case FormatTriG:
		return newTurtleScanner(input, modeTriG), nil
	case FormatNTriples:
		return newTurtleScanner(input, modeNTriples), nil
	case FormatNQuads:
		return newTurtleScanner(input, modeNQuads), nil
	case FormatPROVN:
		return newPROVNScanner(input), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
