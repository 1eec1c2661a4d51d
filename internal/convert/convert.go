// Package convert turns scanned statements into plain RDF 1.2 quads.
// It resolves relative IRIs against the base in effect, settles bare
// quoted triples according to the chosen policy, and deduplicates the
// reifiers it introduces.
package convert

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/zeebo/xxh3"

	"github.com/rdfless/rdfless/internal/scan"
	"github.com/rdfless/rdfless/pkg/rdf"
)

// Policy controls what becomes of a bare quoted triple.
type Policy int

const (
	// PolicyReify replaces the quoted triple with a fresh reifier and
	// asserts its rdf:reifies record.
	PolicyReify Policy = iota
	// PolicyTerm renders the quoted triple as a triple term in object
	// position. Subject positions are still reified, a triple term
	// cannot be a subject.
	PolicyTerm
)

func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "reify":
		return PolicyReify, nil
	case "term":
		return PolicyTerm, nil
	default:
		return 0, fmt.Errorf("unknown quoted-triple policy %q (want reify or term)", name)
	}
}

func (p Policy) String() string {
	if p == PolicyTerm {
		return "term"
	}
	return "reify"
}

type Options struct {
	Policy          Policy
	ContinueOnError bool
	Logger          *slog.Logger
}

// Converter streams converted quads from a scanner. Reification
// records introduced for bare quoted triples are emitted before the
// statement that mentions them, innermost first.
type Converter struct {
	scanner scan.Scanner
	opts    Options
	logger  *slog.Logger

	pending  []*rdf.Quad
	reifiers map[xxh3.Uint128]rdf.Term
	counter  int
	errs     []error
}

func New(scanner scan.Scanner, opts Options) *Converter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		scanner:  scanner,
		opts:     opts,
		logger:   logger,
		reifiers: make(map[xxh3.Uint128]rdf.Term),
	}
}

// Prefixes exposes the scanner's prefix state for rendering.
func (c *Converter) Prefixes() *rdf.PrefixMap {
	return c.scanner.Prefixes()
}

// Errors returns the parse errors skipped so far when running with
// ContinueOnError.
func (c *Converter) Errors() []error {
	return c.errs
}

// Next returns the next converted quad, io.EOF at end of input.
func (c *Converter) Next() (*rdf.Quad, error) {
	for len(c.pending) == 0 {
		quad, err := c.scanner.Next()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			if !c.opts.ContinueOnError {
				return nil, err
			}
			c.errs = append(c.errs, err)
			c.logger.Warn("skipping malformed statement", "error", err)
			c.scanner.Recover()
			continue
		}
		c.process(quad)
	}

	quad := c.pending[0]
	c.pending = c.pending[1:]
	return quad, nil
}

// Drain collects all remaining quads.
func (c *Converter) Drain() ([]*rdf.Quad, error) {
	var quads []*rdf.Quad
	for {
		quad, err := c.Next()
		if err == io.EOF {
			return quads, nil
		}
		if err != nil {
			return quads, err
		}
		quads = append(quads, quad)
	}
}

func (c *Converter) process(quad *rdf.Quad) {
	graph := c.resolveTerm(quad.Graph)
	subject := c.settle(c.resolveTerm(quad.Subject), graph, true)
	predicate := c.resolveTerm(quad.Predicate)
	object := c.settle(c.resolveTerm(quad.Object), graph, false)
	c.pending = append(c.pending, rdf.NewQuad(subject, predicate, object, graph))
}

// settle applies the quoted-triple policy, innermost triples first.
func (c *Converter) settle(term rdf.Term, graph rdf.Term, isSubject bool) rdf.Term {
	switch t := term.(type) {
	case *rdf.QuotedTriple:
		inner := rdf.NewTripleTerm(
			c.settle(t.Subject, graph, true),
			t.Predicate,
			c.settle(t.Object, graph, false),
		)
		if c.opts.Policy == PolicyTerm && !isSubject {
			return inner
		}
		return c.reifierFor(inner, graph)
	case *rdf.TripleTerm:
		return rdf.NewTripleTerm(
			c.settle(t.Subject, graph, true),
			t.Predicate,
			c.settle(t.Object, graph, false),
		)
	default:
		return term
	}
}

// reifierFor returns the reifier standing for a triple term, emitting
// its rdf:reifies record the first time the triple is seen. Identical
// triples share one reifier, keyed by the canonical serialization.
func (c *Converter) reifierFor(tt *rdf.TripleTerm, graph rdf.Term) rdf.Term {
	key := xxh3.Hash128([]byte(rdf.SerializeTermCanonical(tt)))
	if reifier, ok := c.reifiers[key]; ok {
		return reifier
	}

	c.counter++
	reifier := rdf.NewBlankNode(fmt.Sprintf("r%d", c.counter))
	c.reifiers[key] = reifier
	c.pending = append(c.pending, rdf.NewQuad(reifier, rdf.RDFReifies, tt, graph))
	return reifier
}

// resolveTerm resolves relative IRIs against the base currently in
// effect. Resolution happens per statement so a mid-document base
// change applies only to the statements after it. An unresolvable IRI
// is kept verbatim with a warning rather than failing the document.
func (c *Converter) resolveTerm(term rdf.Term) rdf.Term {
	switch t := term.(type) {
	case *rdf.NamedNode:
		resolved, err := c.scanner.Prefixes().Resolve(t.IRI)
		if err != nil {
			c.logger.Warn("keeping relative IRI verbatim", "iri", t.IRI)
			return t
		}
		if resolved == t.IRI {
			return t
		}
		return rdf.NewNamedNode(resolved)
	case *rdf.Literal:
		if t.Datatype == nil {
			return t
		}
		resolved := c.resolveTerm(t.Datatype).(*rdf.NamedNode)
		if resolved == t.Datatype {
			return t
		}
		return rdf.NewLiteralWithDatatype(t.Value, resolved)
	case *rdf.QuotedTriple:
		qt, _ := rdf.NewQuotedTriple(
			c.resolveTerm(t.Subject),
			c.resolveTerm(t.Predicate),
			c.resolveTerm(t.Object),
		)
		return qt
	case *rdf.TripleTerm:
		return rdf.NewTripleTerm(
			c.resolveTerm(t.Subject),
			c.resolveTerm(t.Predicate),
			c.resolveTerm(t.Object),
		)
	default:
		return term
	}
}
