package scan

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdfless/rdfless/pkg/rdf"
)

func collect(t *testing.T, input string, format Format) []*rdf.Quad {
	t.Helper()
	sc, err := New(strings.NewReader(input), format)
	require.NoError(t, err)

	var quads []*rdf.Quad
	for {
		q, err := sc.Next()
		if errors.Is(err, io.EOF) {
			return quads
		}
		require.NoError(t, err)
		quads = append(quads, q)
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"turtle":   FormatTurtle,
		"ttl":      FormatTurtle,
		"trig":     FormatTriG,
		"ntriples": FormatNTriples,
		"nt":       FormatNTriples,
		"n-quads":  FormatNQuads,
		"nq":       FormatNQuads,
		"provn":    FormatPROVN,
	}
	for name, want := range cases {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormat("rdfxml")
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	f, ok := DetectFormat("data/graph.trig")
	assert.True(t, ok)
	assert.Equal(t, FormatTriG, f)

	f, ok = DetectFormat("dump.nq")
	assert.True(t, ok)
	assert.Equal(t, FormatNQuads, f)

	_, ok = DetectFormat("notes.txt")
	assert.False(t, ok)
}

func TestTurtleBasicTriple(t *testing.T) {
	quads := collect(t, `<http://example.org/s> <http://example.org/p> <http://example.org/o> .`, FormatTurtle)
	require.Len(t, quads, 1)
	assert.Equal(t, "<http://example.org/s>", quads[0].Subject.String())
	assert.Equal(t, "<http://example.org/p>", quads[0].Predicate.String())
	assert.Equal(t, "<http://example.org/o>", quads[0].Object.String())
	assert.Nil(t, quads[0].Graph)
}

func TestTurtlePrefixExpansion(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:alice a ex:Person .`
	quads := collect(t, input, FormatTurtle)
	require.Len(t, quads, 1)
	assert.Equal(t, "<http://example.org/alice>", quads[0].Subject.String())
	assert.True(t, quads[0].Predicate.Equals(rdf.RDFType))
	assert.Equal(t, "<http://example.org/Person>", quads[0].Object.String())
}

func TestTurtleSPARQLStyleDirectives(t *testing.T) {
	input := `PREFIX ex: <http://example.org/>
BASE <http://example.org/base/>
ex:s ex:p ex:o .`
	sc, err := New(strings.NewReader(input), FormatTurtle)
	require.NoError(t, err)

	q, err := sc.Next()
	require.NoError(t, err)
	assert.Equal(t, "<http://example.org/s>", q.Subject.String())
	assert.Equal(t, "http://example.org/base/", sc.Prefixes().Base())
}

func TestTurtleRelativeIRIPassthrough(t *testing.T) {
	quads := collect(t, `<s> <http://example.org/p> <o> .`, FormatTurtle)
	require.Len(t, quads, 1)
	assert.Equal(t, "<s>", quads[0].Subject.String())
	assert.Equal(t, "<o>", quads[0].Object.String())
}

func TestTurtleLiterals(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:s ex:plain "hello" ;
     ex:lang "bonjour"@fr ;
     ex:dir "shalom"@he--rtl ;
     ex:typed "42"^^<http://www.w3.org/2001/XMLSchema#byte> ;
     ex:int 42 ;
     ex:dec 3.14 ;
     ex:dbl 1.2e3 ;
     ex:bool true .`
	quads := collect(t, input, FormatTurtle)
	require.Len(t, quads, 8)

	lang := quads[1].Object.(*rdf.Literal)
	assert.Equal(t, "bonjour", lang.Value)
	assert.Equal(t, "fr", lang.Language)

	dir := quads[2].Object.(*rdf.Literal)
	assert.Equal(t, "he", dir.Language)
	assert.Equal(t, "rtl", dir.Direction)

	typed := quads[3].Object.(*rdf.Literal)
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#byte", typed.Datatype.IRI)

	num := quads[4].Object.(*rdf.Literal)
	assert.Equal(t, "42", num.Value)
	assert.True(t, num.Datatype.Equals(rdf.XSDInteger))

	dec := quads[5].Object.(*rdf.Literal)
	assert.True(t, dec.Datatype.Equals(rdf.XSDDecimal))

	dbl := quads[6].Object.(*rdf.Literal)
	assert.True(t, dbl.Datatype.Equals(rdf.XSDDouble))

	boolean := quads[7].Object.(*rdf.Literal)
	assert.Equal(t, "true", boolean.Value)
	assert.True(t, boolean.Datatype.Equals(rdf.XSDBoolean))
}

func TestTurtleLongLiteral(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> \"\"\"line one\nline two\"\"\" ."
	quads := collect(t, input, FormatTurtle)
	require.Len(t, quads, 1)
	assert.Equal(t, "line one\nline two", quads[0].Object.(*rdf.Literal).Value)
}

func TestTurtleEscapes(t *testing.T) {
	quads := collect(t, `<http://example.org/s> <http://example.org/p> "tab\there é" .`, FormatTurtle)
	require.Len(t, quads, 1)
	assert.Equal(t, "tab\there é", quads[0].Object.(*rdf.Literal).Value)
}

func TestTurtleObjectList(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:s ex:p ex:a, ex:b, ex:c .`
	quads := collect(t, input, FormatTurtle)
	require.Len(t, quads, 3)
	for _, q := range quads {
		assert.Equal(t, "<http://example.org/s>", q.Subject.String())
	}
	assert.Equal(t, "<http://example.org/b>", quads[1].Object.String())
}

func TestTurtleCollection(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:s ex:p (1 2) .`
	quads := collect(t, input, FormatTurtle)
	require.Len(t, quads, 5)

	// rdf:first/rdf:rest chain comes before the asserting triple
	assert.True(t, quads[0].Predicate.Equals(rdf.RDFFirst))
	assert.Equal(t, "1", quads[0].Object.(*rdf.Literal).Value)
	assert.True(t, quads[3].Object.Equals(rdf.RDFNil))

	last := quads[4]
	assert.Equal(t, "<http://example.org/s>", last.Subject.String())
	assert.Equal(t, quads[0].Subject.String(), last.Object.String())
}

func TestTurtleEmptyCollection(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:s ex:p () .`
	quads := collect(t, input, FormatTurtle)
	require.Len(t, quads, 1)
	assert.True(t, quads[0].Object.Equals(rdf.RDFNil))
}

func TestTurtleBlankNodePropertyList(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:s ex:knows [ ex:name "Bob" ] .`
	quads := collect(t, input, FormatTurtle)
	require.Len(t, quads, 2)

	assert.Equal(t, "\"Bob\"", quads[0].Object.String())
	bnode, ok := quads[0].Subject.(*rdf.BlankNode)
	require.True(t, ok)
	assert.True(t, quads[1].Object.Equals(bnode))
}

func TestTurtleSoleBlankNodeSubject(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
[ ex:name "Carol" ] .`
	quads := collect(t, input, FormatTurtle)
	require.Len(t, quads, 1)
	assert.Equal(t, "\"Carol\"", quads[0].Object.String())
}

func TestTurtleQuotedTripleObject(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:s ex:says << ex:a ex:b ex:c >> .`
	quads := collect(t, input, FormatTurtle)
	require.Len(t, quads, 1)

	qt, ok := quads[0].Object.(*rdf.QuotedTriple)
	require.True(t, ok)
	assert.Equal(t, "<http://example.org/a>", qt.Subject.String())
}

func TestTurtleTripleTermObject(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:r ex:p <<( ex:a ex:b ex:c )>> .`
	quads := collect(t, input, FormatTurtle)
	require.Len(t, quads, 1)

	tt, ok := quads[0].Object.(*rdf.TripleTerm)
	require.True(t, ok)
	assert.Equal(t, "<http://example.org/b>", tt.Predicate.String())
}

func TestTurtleExplicitReifierInQuotedTriple(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:s ex:p << ex:a ex:b ex:c ~ ex:id >> .`
	quads := collect(t, input, FormatTurtle)
	require.Len(t, quads, 2)

	// The reifies record is emitted first, the reifier replaces the term
	assert.Equal(t, "<http://example.org/id>", quads[0].Subject.String())
	assert.True(t, quads[0].Predicate.Equals(rdf.RDFReifies))
	_, ok := quads[0].Object.(*rdf.TripleTerm)
	assert.True(t, ok)

	assert.Equal(t, "<http://example.org/id>", quads[1].Object.String())
}

func TestTurtleStandaloneQuotedTriple(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
<< ex:a ex:b ex:c >> .`
	quads := collect(t, input, FormatTurtle)
	require.Len(t, quads, 1)

	_, ok := quads[0].Subject.(*rdf.BlankNode)
	assert.True(t, ok)
	assert.True(t, quads[0].Predicate.Equals(rdf.RDFReifies))
}

func TestTurtleReifierAfterObject(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:s ex:p ex:o ~ ex:r .`
	quads := collect(t, input, FormatTurtle)
	require.Len(t, quads, 2)

	assert.Equal(t, "<http://example.org/o>", quads[0].Object.String())
	assert.Equal(t, "<http://example.org/r>", quads[1].Subject.String())
	assert.True(t, quads[1].Predicate.Equals(rdf.RDFReifies))
}

func TestTurtleAnnotation(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:s ex:p ex:o {| ex:since 2020 |} .`
	quads := collect(t, input, FormatTurtle)
	require.Len(t, quads, 3)

	assert.Equal(t, "<http://example.org/o>", quads[0].Object.String())

	reifier, ok := quads[1].Subject.(*rdf.BlankNode)
	require.True(t, ok)
	assert.True(t, quads[1].Predicate.Equals(rdf.RDFReifies))

	assert.True(t, quads[2].Subject.Equals(reifier))
	assert.Equal(t, "<http://example.org/since>", quads[2].Predicate.String())
}

func TestTurtleAnnotationOnExplicitReifier(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:s ex:p ex:o ~ ex:r {| ex:since 2020 |} .`
	quads := collect(t, input, FormatTurtle)
	require.Len(t, quads, 3)

	// The explicit reifier already has its record; the annotation adds
	// properties without introducing a second one.
	assert.True(t, quads[1].Predicate.Equals(rdf.RDFReifies))
	assert.Equal(t, "<http://example.org/r>", quads[1].Subject.String())
	assert.Equal(t, "<http://example.org/r>", quads[2].Subject.String())
	assert.Equal(t, "<http://example.org/since>", quads[2].Predicate.String())
}

func TestTurtleQuotedTripleRejectsCollections(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:s ex:p << ex:a ex:b (1 2) >> .`
	sc, err := New(strings.NewReader(input), FormatTurtle)
	require.NoError(t, err)

	_, err = sc.Next()
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Msg, "collections")
}

func TestTurtleParseErrorHasLine(t *testing.T) {
	input := `<http://example.org/s> <http://example.org/p> <http://example.org/o> .
<http://example.org/s> %%% .`
	sc, err := New(strings.NewReader(input), FormatTurtle)
	require.NoError(t, err)

	_, err = sc.Next()
	require.NoError(t, err)

	_, err = sc.Next()
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
}

func TestTurtleRecover(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:bad ex:p %%% .
ex:good ex:p ex:o .`
	sc, err := New(strings.NewReader(input), FormatTurtle)
	require.NoError(t, err)

	_, err = sc.Next()
	require.Error(t, err)
	sc.Recover()

	q, err := sc.Next()
	require.NoError(t, err)
	assert.Equal(t, "<http://example.org/good>", q.Subject.String())
}

func TestTriGNamedGraph(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:g { ex:s ex:p ex:o }`
	quads := collect(t, input, FormatTriG)
	require.Len(t, quads, 1)
	require.NotNil(t, quads[0].Graph)
	assert.Equal(t, "<http://example.org/g>", quads[0].Graph.String())
}

func TestTriGGraphKeyword(t *testing.T) {
	input := `GRAPH <http://example.org/g> {
  <http://example.org/s> <http://example.org/p> <http://example.org/o> .
}`
	quads := collect(t, input, FormatTriG)
	require.Len(t, quads, 1)
	assert.Equal(t, "<http://example.org/g>", quads[0].Graph.String())
}

func TestTriGAnonymousBlockIsDefaultGraph(t *testing.T) {
	input := `{ <http://example.org/s> <http://example.org/p> <http://example.org/o> . }`
	quads := collect(t, input, FormatTriG)
	require.Len(t, quads, 1)
	assert.Nil(t, quads[0].Graph)
}

func TestTriGMixedGraphs(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:s ex:p ex:inDefault .
ex:g1 { ex:s ex:p ex:inG1 . }
ex:s ex:p ex:alsoDefault .`
	quads := collect(t, input, FormatTriG)
	require.Len(t, quads, 3)
	assert.Nil(t, quads[0].Graph)
	assert.Equal(t, "<http://example.org/g1>", quads[1].Graph.String())
	assert.Nil(t, quads[2].Graph)
}

func TestNTriplesRejectsAbbreviations(t *testing.T) {
	cases := []string{
		`@prefix ex: <http://example.org/> .`,
		`ex:s ex:p ex:o .`,
		`<http://e.org/s> a <http://e.org/C> .`,
		`<http://e.org/s> <http://e.org/p> <http://e.org/a>, <http://e.org/b> .`,
		`<s> <http://e.org/p> <http://e.org/o> .`,
		`<http://e.org/s> <http://e.org/p> 42 .`,
	}
	for _, input := range cases {
		sc, err := New(strings.NewReader(input), FormatNTriples)
		require.NoError(t, err)
		_, err = sc.Next()
		assert.Error(t, err, input)
	}
}

func TestNTriplesAcceptsTripleTerm(t *testing.T) {
	input := `<http://e.org/r> <http://www.w3.org/1999/02/22-rdf-syntax-ns#reifies> <<( <http://e.org/a> <http://e.org/b> <http://e.org/c> )>> .`
	quads := collect(t, input, FormatNTriples)
	require.Len(t, quads, 1)
	_, ok := quads[0].Object.(*rdf.TripleTerm)
	assert.True(t, ok)
}

func TestNQuadsGraphLabel(t *testing.T) {
	input := `<http://e.org/s> <http://e.org/p> "o" <http://e.org/g> .
<http://e.org/s> <http://e.org/p> "o2" .`
	quads := collect(t, input, FormatNQuads)
	require.Len(t, quads, 2)
	assert.Equal(t, "<http://e.org/g>", quads[0].Graph.String())
	assert.Nil(t, quads[1].Graph)
}

func TestPROVNElements(t *testing.T) {
	input := `document
prefix ex <http://example.org/>
entity(ex:e1, [ex:note="an entity"])
agent(ex:ag1)
activity(ex:a1, 2011-11-16T16:05:00, -)
endDocument`
	quads := collect(t, input, FormatPROVN)
	require.Len(t, quads, 5)

	assert.Equal(t, "<http://example.org/e1>", quads[0].Subject.String())
	assert.True(t, quads[0].Predicate.Equals(rdf.RDFType))
	assert.Equal(t, "<http://www.w3.org/ns/prov#Entity>", quads[0].Object.String())

	assert.Equal(t, "<http://example.org/note>", quads[1].Predicate.String())
	assert.Equal(t, "an entity", quads[1].Object.(*rdf.Literal).Value)

	assert.Equal(t, "<http://www.w3.org/ns/prov#Agent>", quads[2].Object.String())

	assert.Equal(t, "<http://www.w3.org/ns/prov#Activity>", quads[3].Object.String())
	started := quads[4]
	assert.Equal(t, "<http://www.w3.org/ns/prov#startedAtTime>", started.Predicate.String())
	lit := started.Object.(*rdf.Literal)
	assert.Equal(t, "2011-11-16T16:05:00", lit.Value)
	assert.True(t, lit.Datatype.Equals(rdf.XSDDateTime))
}

func TestPROVNRelations(t *testing.T) {
	input := `prefix ex <http://example.org/>
wasGeneratedBy(ex:e1, ex:a1, -)
used(u1; ex:a1, ex:e0)
wasDerivedFrom(ex:e1, -, -)
specializationOf(ex:e1, ex:e2)`
	quads := collect(t, input, FormatPROVN)
	require.Len(t, quads, 2)

	assert.Equal(t, "<http://example.org/e1>", quads[0].Subject.String())
	assert.Equal(t, "<http://www.w3.org/ns/prov#wasGeneratedBy>", quads[0].Predicate.String())
	assert.Equal(t, "<http://example.org/a1>", quads[0].Object.String())

	// The optional relation identifier before ';' is skipped
	assert.Equal(t, "<http://example.org/a1>", quads[1].Subject.String())
	assert.Equal(t, "<http://www.w3.org/ns/prov#used>", quads[1].Predicate.String())
}

func TestPROVNTypedAttribute(t *testing.T) {
	input := `prefix ex <http://example.org/>
prefix xsd <http://www.w3.org/2001/XMLSchema#>
entity(ex:e1, [ex:size="5" %% xsd:int])`
	quads := collect(t, input, FormatPROVN)
	require.Len(t, quads, 2)

	lit := quads[1].Object.(*rdf.Literal)
	assert.Equal(t, "5", lit.Value)
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#int", lit.Datatype.IRI)
}

func TestPROVNDeclaresProvPrefix(t *testing.T) {
	sc, err := New(strings.NewReader("entity(e1)"), FormatPROVN)
	require.NoError(t, err)

	ns, ok := sc.Prefixes().Namespace("prov")
	assert.True(t, ok)
	assert.Equal(t, "http://www.w3.org/ns/prov#", ns)
}
