// Package render writes converted statements back out as colorized
// Turtle-style text. Rendering is single-pass and order-preserving:
// consecutive statements sharing a graph and subject merge into one
// block, nothing is sorted or buffered beyond the current line.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/rdfless/rdfless/internal/theme"
	"github.com/rdfless/rdfless/pkg/rdf"
)

const indent = "    "

type Options struct {
	// Expand writes absolute references and omits the prefix block.
	Expand bool
	Theme  theme.Theme
}

// Renderer streams quads grouped by graph and subject in encounter
// order. Call Flush after the last quad to close the open block.
type Renderer struct {
	w        io.Writer
	prefixes *rdf.PrefixMap
	opts     Options

	headerDone     bool
	currentGraph   rdf.Term
	currentSubject rdf.Term
	blockOpen      bool
	firstBlock     bool
	err            error
}

func New(w io.Writer, prefixes *rdf.PrefixMap, opts Options) *Renderer {
	return &Renderer{w: w, prefixes: prefixes, opts: opts, firstBlock: true}
}

func (r *Renderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

// writeHeader emits the prefix block and base directive. In expand
// mode references are written absolute, so the prefix block is
// omitted, but the base line is kept: it documents how relative
// references were resolved.
func (r *Renderer) writeHeader() {
	r.headerDone = true
	wrote := false

	if !r.opts.Expand {
		for _, b := range r.prefixes.Bindings() {
			line := fmt.Sprintf("@prefix %s: <%s> .", b.Prefix, b.Namespace)
			r.write(r.opts.Theme.Prefix(line) + "\n")
			wrote = true
		}
	}
	if base := r.prefixes.Base(); base != "" {
		line := fmt.Sprintf("@base <%s> .", base)
		r.write(r.opts.Theme.Base(line) + "\n")
		wrote = true
	}
	if wrote {
		r.write("\n")
	}
}

// Render writes one quad, opening and closing graph and subject
// blocks as the stream moves between them.
func (r *Renderer) Render(quad *rdf.Quad) error {
	if !r.headerDone {
		r.writeHeader()
	}

	sameGraph := termsEqual(r.currentGraph, quad.Graph)
	if r.blockOpen && sameGraph && termsEqual(r.currentSubject, quad.Subject) {
		r.write(" ;\n")
		r.write(r.subjectIndent() + indent)
		r.writePredicateObject(quad)
		return r.err
	}

	r.closeSubject()
	if !sameGraph {
		r.closeGraph()
		if quad.Graph != nil {
			if !r.firstBlock {
				r.write("\n")
			}
			r.write(r.renderResource(quad.Graph, r.opts.Theme.Graph) + " {\n")
		}
		r.currentGraph = quad.Graph
	}

	if r.firstBlock {
		r.firstBlock = false
	} else if quad.Graph == nil {
		r.write("\n")
	}

	r.currentSubject = quad.Subject
	r.blockOpen = true

	r.write(r.subjectIndent())
	r.write(r.renderResource(quad.Subject, r.opts.Theme.Subject))
	r.write(" ")
	r.writePredicateObject(quad)
	return r.err
}

// Flush closes any open subject and graph block. It is safe when
// nothing was rendered: the header alone is still written.
func (r *Renderer) Flush() error {
	if !r.headerDone {
		r.writeHeader()
	}
	r.closeSubject()
	r.closeGraph()
	return r.err
}

func (r *Renderer) subjectIndent() string {
	if r.currentGraph != nil {
		return indent
	}
	return ""
}

func (r *Renderer) closeSubject() {
	if r.blockOpen {
		r.write(" .\n")
		r.blockOpen = false
	}
	r.currentSubject = nil
}

func (r *Renderer) closeGraph() {
	if r.currentGraph != nil {
		r.write("}\n")
		r.currentGraph = nil
	}
}

func (r *Renderer) writePredicateObject(quad *rdf.Quad) {
	r.write(r.renderPredicate(quad.Predicate))
	r.write(" ")
	r.write(r.renderObject(quad.Object))
}

// renderPredicate writes rdf:type as the emphasized 'a' alias in both
// compact and expand modes.
func (r *Renderer) renderPredicate(term rdf.Term) string {
	if named, ok := term.(*rdf.NamedNode); ok && named.IRI == rdf.RDFType.IRI {
		return r.opts.Theme.Bold("a")
	}
	return r.renderResource(term, r.opts.Theme.Predicate)
}

func (r *Renderer) renderObject(term rdf.Term) string {
	switch t := term.(type) {
	case *rdf.Literal:
		return r.renderLiteral(t)
	case *rdf.TripleTerm:
		return r.renderEmbedded(t.Subject, t.Predicate, t.Object, true)
	case *rdf.QuotedTriple:
		return r.renderEmbedded(t.Subject, t.Predicate, t.Object, false)
	default:
		return r.renderResource(term, r.opts.Theme.Object)
	}
}

// renderEmbedded renders an embedded statement recursively, triple
// terms as <<( s p o )>> so the output re-parses to the same value,
// quoted triples as << s p o >>.
func (r *Renderer) renderEmbedded(subject, predicate, object rdf.Term, isTerm bool) string {
	opening, closing := "<< ", " >>"
	if isTerm {
		opening, closing = "<<( ", " )>>"
	}
	return opening +
		r.renderResource(subject, r.opts.Theme.Subject) + " " +
		r.renderPredicate(predicate) + " " +
		r.renderObject(object) + closing
}

func (r *Renderer) renderResource(term rdf.Term, paint func(string) string) string {
	switch t := term.(type) {
	case *rdf.NamedNode:
		if !r.opts.Expand {
			if compacted, ok := r.prefixes.Compact(t.IRI); ok {
				return paint(compacted)
			}
		}
		return paint("<" + t.IRI + ">")
	case *rdf.BlankNode:
		return paint(t.String())
	case *rdf.TripleTerm:
		return r.renderEmbedded(t.Subject, t.Predicate, t.Object, true)
	case *rdf.QuotedTriple:
		return r.renderEmbedded(t.Subject, t.Predicate, t.Object, false)
	default:
		return paint(term.String())
	}
}

// renderLiteral writes booleans, integers, and decimals bare when
// their lexical form is canonical, everything else quote-delimited
// with its language or datatype suffix.
func (r *Renderer) renderLiteral(lit *rdf.Literal) string {
	paint := r.opts.Theme.Literal

	if lit.Datatype != nil {
		switch lit.Datatype.IRI {
		case rdf.XSDBoolean.IRI:
			if rdf.IsCanonicalBoolean(lit.Value) {
				return paint(lit.Value)
			}
		case rdf.XSDInteger.IRI:
			if rdf.IsCanonicalInteger(lit.Value) {
				return paint(lit.Value)
			}
		case rdf.XSDDecimal.IRI:
			if rdf.IsCanonicalDecimal(lit.Value) {
				return paint(lit.Value)
			}
		}
	}

	quoted := "\"" + escapeLiteral(lit.Value) + "\""

	if lit.Language != "" {
		tag := "@" + lit.Language
		if lit.Direction != "" {
			tag += "--" + lit.Direction
		}
		return paint(quoted + tag)
	}

	if lit.Datatype != nil && lit.Datatype.IRI != rdf.XSDString.IRI {
		var ref string
		if !r.opts.Expand {
			if compacted, ok := r.prefixes.Compact(lit.Datatype.IRI); ok {
				ref = compacted
			}
		}
		if ref == "" {
			ref = "<" + lit.Datatype.IRI + ">"
		}
		return paint(quoted + "^^" + ref)
	}

	return paint(quoted)
}

func escapeLiteral(s string) string {
	var b strings.Builder
	for _, ch := range s {
		switch ch {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if ch < 0x20 || ch == 0x7F {
				b.WriteString(fmt.Sprintf(`\u%04X`, ch))
			} else {
				b.WriteRune(ch)
			}
		}
	}
	return b.String()
}

func termsEqual(a, b rdf.Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}
