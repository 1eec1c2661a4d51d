package rdf

import "fmt"

// TermType represents the type of an RDF term
type TermType byte

const (
	TermTypeNamedNode TermType = iota + 1
	TermTypeBlankNode
	TermTypeLiteral
	TermTypeTripleTerm
	TermTypeQuotedTriple
)

// Term represents an RDF term (IRI, blank node, literal, or triple term)
type Term interface {
	Type() TermType
	String() string
	Equals(other Term) bool
}

// NamedNode represents an IRI
type NamedNode struct {
	IRI string
}

func NewNamedNode(iri string) *NamedNode {
	return &NamedNode{IRI: iri}
}

func (n *NamedNode) Type() TermType {
	return TermTypeNamedNode
}

func (n *NamedNode) String() string {
	return fmt.Sprintf("<%s>", n.IRI)
}

func (n *NamedNode) Equals(other Term) bool {
	if on, ok := other.(*NamedNode); ok {
		return n.IRI == on.IRI
	}
	return false
}

// BlankNode represents a blank node. Identifiers are unique within one
// parse run and carry no meaning across runs.
type BlankNode struct {
	ID string
}

func NewBlankNode(id string) *BlankNode {
	return &BlankNode{ID: id}
}

func (b *BlankNode) Type() TermType {
	return TermTypeBlankNode
}

func (b *BlankNode) String() string {
	return fmt.Sprintf("_:%s", b.ID)
}

func (b *BlankNode) Equals(other Term) bool {
	if ob, ok := other.(*BlankNode); ok {
		return b.ID == ob.ID
	}
	return false
}

// Literal represents an RDF literal. At most one of Language/Datatype is
// set; neither set means xsd:string.
type Literal struct {
	Value     string
	Language  string     // for language-tagged strings
	Direction string     // optional base direction (ltr/rtl), requires Language
	Datatype  *NamedNode // for typed literals
}

func NewLiteral(value string) *Literal {
	return &Literal{Value: value}
}

func NewLiteralWithLanguage(value, language string) *Literal {
	return &Literal{Value: value, Language: language}
}

func NewLiteralWithLanguageAndDirection(value, language, direction string) *Literal {
	return &Literal{Value: value, Language: language, Direction: direction}
}

func NewLiteralWithDatatype(value string, datatype *NamedNode) *Literal {
	return &Literal{Value: value, Datatype: datatype}
}

func (l *Literal) Type() TermType {
	return TermTypeLiteral
}

func (l *Literal) String() string {
	result := fmt.Sprintf(`"%s"`, l.Value)
	if l.Language != "" {
		result += "@" + l.Language
		if l.Direction != "" {
			result += "--" + l.Direction
		}
	} else if l.Datatype != nil {
		result += "^^" + l.Datatype.String()
	}
	return result
}

func (l *Literal) Equals(other Term) bool {
	ol, ok := other.(*Literal)
	if !ok {
		return false
	}
	if l.Value != ol.Value || l.Language != ol.Language || l.Direction != ol.Direction {
		return false
	}
	if l.Datatype == nil && ol.Datatype == nil {
		return true
	}
	if l.Datatype != nil && ol.Datatype != nil {
		return l.Datatype.Equals(ol.Datatype)
	}
	return false
}

// TripleTerm is a statement used as a value, not asserted as fact
// (N-Triples syntax <<( s p o )>>).
type TripleTerm struct {
	Subject   Term
	Predicate Term
	Object    Term
}

func NewTripleTerm(subject, predicate, object Term) *TripleTerm {
	return &TripleTerm{Subject: subject, Predicate: predicate, Object: object}
}

func (tt *TripleTerm) Type() TermType {
	return TermTypeTripleTerm
}

func (tt *TripleTerm) String() string {
	return fmt.Sprintf("<<( %s %s %s )>>", tt.Subject, tt.Predicate, tt.Object)
}

func (tt *TripleTerm) Equals(other Term) bool {
	if ot, ok := other.(*TripleTerm); ok {
		return tt.Subject.Equals(ot.Subject) &&
			tt.Predicate.Equals(ot.Predicate) &&
			tt.Object.Equals(ot.Object)
	}
	return false
}

// QuotedTriple is a quoted statement (Turtle syntax << s p o >>) before
// the conversion stage has decided whether it becomes a reified record
// or a plain triple term.
type QuotedTriple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

func NewQuotedTriple(subject, predicate, object Term) (*QuotedTriple, error) {
	if _, ok := subject.(*Literal); ok {
		return nil, fmt.Errorf("quoted triple subject cannot be a literal")
	}
	if _, ok := predicate.(*NamedNode); !ok {
		return nil, fmt.Errorf("quoted triple predicate must be an IRI, got %T", predicate)
	}
	return &QuotedTriple{Subject: subject, Predicate: predicate, Object: object}, nil
}

func (q *QuotedTriple) Type() TermType {
	return TermTypeQuotedTriple
}

func (q *QuotedTriple) String() string {
	return fmt.Sprintf("<< %s %s %s >>", q.Subject, q.Predicate, q.Object)
}

func (q *QuotedTriple) Equals(other Term) bool {
	if oq, ok := other.(*QuotedTriple); ok {
		return q.Subject.Equals(oq.Subject) &&
			q.Predicate.Equals(oq.Predicate) &&
			q.Object.Equals(oq.Object)
	}
	return false
}

// Triple represents an RDF triple (subject, predicate, object)
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

func NewTriple(subject, predicate, object Term) *Triple {
	return &Triple{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	}
}

func (t *Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}

// Quad represents an RDF quad. A nil Graph denotes the default graph.
type Quad struct {
	Subject   Term
	Predicate Term
	Object    Term
	Graph     Term
}

func NewQuad(subject, predicate, object, graph Term) *Quad {
	return &Quad{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
		Graph:     graph,
	}
}

func NewTripleQuad(subject, predicate, object Term) *Quad {
	return &Quad{Subject: subject, Predicate: predicate, Object: object}
}

func (q *Quad) String() string {
	if q.Graph == nil {
		return fmt.Sprintf("%s %s %s .", q.Subject, q.Predicate, q.Object)
	}
	return fmt.Sprintf("%s %s %s %s .", q.Subject, q.Predicate, q.Object, q.Graph)
}

// Triple returns the triple part of the quad.
func (q *Quad) Triple() *Triple {
	return &Triple{Subject: q.Subject, Predicate: q.Predicate, Object: q.Object}
}

// Well-known vocabulary IRIs
var (
	RDFType    = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")
	RDFReifies = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#reifies")
	RDFFirst   = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#first")
	RDFRest    = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#rest")
	RDFNil     = NewNamedNode("http://www.w3.org/1999/02/22-rdf-syntax-ns#nil")

	XSDString   = NewNamedNode("http://www.w3.org/2001/XMLSchema#string")
	XSDInteger  = NewNamedNode("http://www.w3.org/2001/XMLSchema#integer")
	XSDDecimal  = NewNamedNode("http://www.w3.org/2001/XMLSchema#decimal")
	XSDDouble   = NewNamedNode("http://www.w3.org/2001/XMLSchema#double")
	XSDFloat    = NewNamedNode("http://www.w3.org/2001/XMLSchema#float")
	XSDBoolean  = NewNamedNode("http://www.w3.org/2001/XMLSchema#boolean")
	XSDDate     = NewNamedNode("http://www.w3.org/2001/XMLSchema#date")
	XSDTime     = NewNamedNode("http://www.w3.org/2001/XMLSchema#time")
	XSDDateTime = NewNamedNode("http://www.w3.org/2001/XMLSchema#dateTime")
)

func NewIntegerLiteral(value int64) *Literal {
	return NewLiteralWithDatatype(fmt.Sprintf("%d", value), XSDInteger)
}

func NewBooleanLiteral(value bool) *Literal {
	return NewLiteralWithDatatype(fmt.Sprintf("%t", value), XSDBoolean)
}
