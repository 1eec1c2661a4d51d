package rdf

import "testing"

func TestPrefixMap_DeclareAndExpand(t *testing.T) {
	pm := NewPrefixMap()
	pm.Declare("ex", "http://example.org/")

	iri, err := pm.Expand("ex", "name")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if iri != "http://example.org/name" {
		t.Errorf("Expected http://example.org/name, got %s", iri)
	}
}

func TestPrefixMap_ExpandUndefinedPrefix(t *testing.T) {
	pm := NewPrefixMap()
	if _, err := pm.Expand("ex", "name"); err == nil {
		t.Error("Expected error for undefined prefix")
	}
}

func TestPrefixMap_LastWriteWins(t *testing.T) {
	pm := NewPrefixMap()
	pm.Declare("ex", "http://example.org/old/")
	pm.Declare("other", "http://other.org/")
	pm.Declare("ex", "http://example.org/new/")

	ns, ok := pm.Namespace("ex")
	if !ok || ns != "http://example.org/new/" {
		t.Errorf("Expected redeclared namespace, got %s", ns)
	}

	// Redeclaration keeps the original position
	bindings := pm.Bindings()
	if len(bindings) != 2 {
		t.Fatalf("Expected 2 bindings, got %d", len(bindings))
	}
	if bindings[0].Prefix != "ex" || bindings[1].Prefix != "other" {
		t.Errorf("Expected declaration order preserved, got %v", bindings)
	}
}

func TestPrefixMap_SetBaseRelative(t *testing.T) {
	pm := NewPrefixMap()
	pm.SetBase("http://example.org/a/b")
	pm.SetBase("c/")

	if pm.Base() != "http://example.org/a/c/" {
		t.Errorf("Expected relative base resolved against old base, got %s", pm.Base())
	}
}

func TestPrefixMap_Resolve(t *testing.T) {
	pm := NewPrefixMap()
	pm.SetBase("http://example.org/dir/doc")

	tests := []struct {
		relative string
		expected string
	}{
		{"http://other.org/abs", "http://other.org/abs"},
		{"name", "http://example.org/dir/name"},
		{"./name", "http://example.org/dir/name"},
		{"../up", "http://example.org/up"},
		{"/root", "http://example.org/root"},
		{"#frag", "http://example.org/dir/doc#frag"},
		{"?q=1", "http://example.org/dir/doc?q=1"},
		{"//other.org/net", "http://other.org/net"},
		{"", "http://example.org/dir/doc"},
	}

	for _, tt := range tests {
		got, err := pm.Resolve(tt.relative)
		if err != nil {
			t.Errorf("Resolve(%q): unexpected error: %v", tt.relative, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("Resolve(%q): expected %s, got %s", tt.relative, tt.expected, got)
		}
	}
}

func TestPrefixMap_ResolveWithoutBase(t *testing.T) {
	pm := NewPrefixMap()
	if _, err := pm.Resolve("relative"); err == nil {
		t.Error("Expected error resolving relative IRI without base")
	}
}

func TestPrefixMap_Compact(t *testing.T) {
	pm := NewPrefixMap()
	pm.Declare("ex", "http://example.org/")
	pm.Declare("voc", "http://example.org/voc/")

	// Longest namespace wins
	got, ok := pm.Compact("http://example.org/voc/name")
	if !ok || got != "voc:name" {
		t.Errorf("Expected voc:name, got %s (ok=%v)", got, ok)
	}

	got, ok = pm.Compact("http://example.org/name")
	if !ok || got != "ex:name" {
		t.Errorf("Expected ex:name, got %s (ok=%v)", got, ok)
	}
}

func TestPrefixMap_CompactTieBreak(t *testing.T) {
	pm := NewPrefixMap()
	pm.Declare("a", "http://example.org/")
	pm.Declare("b", "http://example.org/")

	got, ok := pm.Compact("http://example.org/x")
	if !ok || got != "a:x" {
		t.Errorf("Expected first declaration to win the tie, got %s", got)
	}
}

func TestPrefixMap_CompactNoMatch(t *testing.T) {
	pm := NewPrefixMap()
	pm.Declare("ex", "http://example.org/")

	if _, ok := pm.Compact("http://other.org/x"); ok {
		t.Error("Expected no compaction for unmatched IRI")
	}
}

func TestPrefixMap_CompactInvalidLocalName(t *testing.T) {
	pm := NewPrefixMap()
	pm.Declare("ex", "http://example.org/")

	// Slash is not a PN_CHARS character
	if _, ok := pm.Compact("http://example.org/a/b"); ok {
		t.Error("Expected no compaction when local name would be invalid")
	}

	// Trailing dot is not allowed
	if _, ok := pm.Compact("http://example.org/name."); ok {
		t.Error("Expected no compaction for trailing dot")
	}
}

func TestPrefixMap_CompactEmptyLocal(t *testing.T) {
	pm := NewPrefixMap()
	pm.Declare("ex", "http://example.org/ns#")

	got, ok := pm.Compact("http://example.org/ns#")
	if !ok || got != "ex:" {
		t.Errorf("Expected ex: for empty local name, got %s (ok=%v)", got, ok)
	}
}

func TestResolveRelativeIRI_DotSegments(t *testing.T) {
	base := "http://example.org/a/b/c"

	tests := []struct {
		relative string
		expected string
	}{
		{"../../g", "http://example.org/g"},
		{"../../../g", "http://example.org/g"},
		{".", "http://example.org/a/b/"},
		{"..", "http://example.org/a/"},
	}

	for _, tt := range tests {
		got := ResolveRelativeIRI(base, tt.relative)
		if got != tt.expected {
			t.Errorf("ResolveRelativeIRI(%q): expected %s, got %s", tt.relative, tt.expected, got)
		}
	}
}
