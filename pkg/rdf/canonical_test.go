package rdf

import "testing"

func TestSerializeTermCanonical_StringDatatypeOmitted(t *testing.T) {
	lit := NewLiteralWithDatatype("hello", XSDString)
	got := SerializeTermCanonical(lit)
	if got != `"hello"` {
		t.Errorf("Expected xsd:string datatype omitted, got %s", got)
	}
}

func TestSerializeTermCanonical_LanguageLowercased(t *testing.T) {
	lit := NewLiteralWithLanguage("hello", "EN-US")
	got := SerializeTermCanonical(lit)
	if got != `"hello"@en-us` {
		t.Errorf("Expected lowercased language tag, got %s", got)
	}
}

func TestSerializeTermCanonical_TripleTerm(t *testing.T) {
	tt := NewTripleTerm(
		NewNamedNode("http://example.org/s"),
		NewNamedNode("http://example.org/p"),
		NewLiteral("o"),
	)
	got := SerializeTermCanonical(tt)
	expected := `<<( <http://example.org/s> <http://example.org/p> "o" )>>`
	if got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestSerializeTermCanonical_QuotedTripleSameForm(t *testing.T) {
	qt, _ := NewQuotedTriple(
		NewNamedNode("http://example.org/s"),
		NewNamedNode("http://example.org/p"),
		NewLiteral("o"),
	)
	tt := NewTripleTerm(qt.Subject, qt.Predicate, qt.Object)
	if SerializeTermCanonical(qt) != SerializeTermCanonical(tt) {
		t.Error("Quoted triple and triple term should share canonical form")
	}
}

func TestEscapeStringCanonical(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"tab\there", `tab\there`},
		{"line\nbreak", `line\nbreak`},
		{`quote"mark`, `quote\"mark`},
		{`back\slash`, `back\\slash`},
		{"bell\x07", `bell\u0007`},
		{"del\x7f", `del\u007F`},
	}

	for _, tt := range tests {
		got := EscapeStringCanonical(tt.input)
		if got != tt.expected {
			t.Errorf("EscapeStringCanonical(%q): expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}

func TestSerializeQuadsCanonical(t *testing.T) {
	quads := []*Quad{
		NewTripleQuad(
			NewNamedNode("http://example.org/s"),
			NewNamedNode("http://example.org/p"),
			NewLiteral("o"),
		),
		NewQuad(
			NewNamedNode("http://example.org/s"),
			NewNamedNode("http://example.org/p"),
			NewIntegerLiteral(1),
			NewNamedNode("http://example.org/g"),
		),
	}

	got := SerializeQuadsCanonical(quads)
	expected := `<http://example.org/s> <http://example.org/p> "o" .
<http://example.org/s> <http://example.org/p> "1"^^<http://www.w3.org/2001/XMLSchema#integer> <http://example.org/g> .
`
	if got != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, got)
	}
}

func TestIsCanonicalInteger(t *testing.T) {
	valid := []string{"0", "1", "42", "-7", "1000"}
	invalid := []string{"", "+1", "01", "-01", "1.0", "1e3", "abc", "-"}

	for _, s := range valid {
		if !IsCanonicalInteger(s) {
			t.Errorf("Expected %q to be canonical integer", s)
		}
	}
	for _, s := range invalid {
		if IsCanonicalInteger(s) {
			t.Errorf("Expected %q to not be canonical integer", s)
		}
	}
}

func TestIsCanonicalDecimal(t *testing.T) {
	valid := []string{"0.5", "1.0", "-3.14", "10.25"}
	invalid := []string{"", "1", ".5", "1.", "+1.0", "01.0", "1.0e3"}

	for _, s := range valid {
		if !IsCanonicalDecimal(s) {
			t.Errorf("Expected %q to be canonical decimal", s)
		}
	}
	for _, s := range invalid {
		if IsCanonicalDecimal(s) {
			t.Errorf("Expected %q to not be canonical decimal", s)
		}
	}
}

func TestIsCanonicalBoolean(t *testing.T) {
	if !IsCanonicalBoolean("true") || !IsCanonicalBoolean("false") {
		t.Error("Expected true/false to be canonical booleans")
	}
	if IsCanonicalBoolean("TRUE") || IsCanonicalBoolean("1") {
		t.Error("Expected TRUE/1 to not be canonical booleans")
	}
}
