package rdf

import (
	"fmt"
	"strings"
)

// SerializeTriplesCanonical serializes triples to canonical N-Triples format (C14N)
// Implements RDF 1.2 canonicalization rules (escape sequences, whitespace)
// Note: Canonical form specifies representation, NOT ordering. Input order is preserved.
func SerializeTriplesCanonical(triples []*Triple) string {
	if len(triples) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, triple := range triples {
		builder.WriteString(SerializeTermCanonical(triple.Subject))
		builder.WriteString(" ")
		builder.WriteString(SerializeTermCanonical(triple.Predicate))
		builder.WriteString(" ")
		builder.WriteString(SerializeTermCanonical(triple.Object))
		builder.WriteString(" .\n")
	}

	return builder.String()
}

// SerializeQuadsCanonical serializes quads to canonical N-Quads format (C14N)
// Implements RDF 1.2 canonicalization rules (escape sequences, whitespace)
// Note: Canonical form specifies representation, NOT ordering. Input order is preserved.
func SerializeQuadsCanonical(quads []*Quad) string {
	if len(quads) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, quad := range quads {
		builder.WriteString(SerializeTermCanonical(quad.Subject))
		builder.WriteString(" ")
		builder.WriteString(SerializeTermCanonical(quad.Predicate))
		builder.WriteString(" ")
		builder.WriteString(SerializeTermCanonical(quad.Object))

		if quad.Graph != nil {
			builder.WriteString(" ")
			builder.WriteString(SerializeTermCanonical(quad.Graph))
		}

		builder.WriteString(" .\n")
	}

	return builder.String()
}

// SerializeTermCanonical serializes a single RDF term in canonical format
func SerializeTermCanonical(term Term) string {
	switch t := term.(type) {
	case *NamedNode:
		return fmt.Sprintf("<%s>", t.IRI)
	case *BlankNode:
		return fmt.Sprintf("_:%s", t.ID)
	case *Literal:
		return serializeLiteralCanonical(t)
	case *TripleTerm:
		return fmt.Sprintf("<<( %s %s %s )>>",
			SerializeTermCanonical(t.Subject),
			SerializeTermCanonical(t.Predicate),
			SerializeTermCanonical(t.Object))
	case *QuotedTriple:
		return fmt.Sprintf("<<( %s %s %s )>>",
			SerializeTermCanonical(t.Subject),
			SerializeTermCanonical(t.Predicate),
			SerializeTermCanonical(t.Object))
	default:
		return ""
	}
}

// serializeLiteralCanonical serializes a literal in canonical format
func serializeLiteralCanonical(lit *Literal) string {
	escaped := EscapeStringCanonical(lit.Value)

	// Language tag with optional directionality
	if lit.Language != "" {
		// Normalize language tag to lowercase
		langTag := strings.ToLower(lit.Language)

		if lit.Direction != "" {
			direction := strings.ToLower(lit.Direction)
			return fmt.Sprintf(`"%s"@%s--%s`, escaped, langTag, direction)
		}
		return fmt.Sprintf(`"%s"@%s`, escaped, langTag)
	}

	// Datatype
	if lit.Datatype != nil {
		// Omit xsd:string datatype in canonical format (it's the default)
		if lit.Datatype.IRI != XSDString.IRI {
			return fmt.Sprintf(`"%s"^^<%s>`, escaped, lit.Datatype.IRI)
		}
	}

	// Plain literal (xsd:string is implicit)
	return fmt.Sprintf(`"%s"`, escaped)
}

// EscapeStringCanonical escapes a string value for canonical N-Triples/N-Quads output
// Implements RDF 1.2 escape rules:
// - Special named escapes: \t \b \n \r \f \" \\
// - Unicode: \uXXXX for control characters and noncharacters
func EscapeStringCanonical(s string) string {
	var builder strings.Builder
	builder.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\t': // 0x09 TAB
			builder.WriteString(`\t`)
		case '\b': // 0x08 BACKSPACE
			builder.WriteString(`\b`)
		case '\n': // 0x0A LINE FEED
			builder.WriteString(`\n`)
		case '\r': // 0x0D CARRIAGE RETURN
			builder.WriteString(`\r`)
		case '\f': // 0x0C FORM FEED
			builder.WriteString(`\f`)
		case '"': // 0x22 QUOTATION MARK
			builder.WriteString(`\"`)
		case '\\': // 0x5C REVERSE SOLIDUS
			builder.WriteString(`\\`)
		default:
			if r < 0x20 {
				// Control characters (0x00-0x1F): Use \uXXXX
				builder.WriteString(fmt.Sprintf(`\u%04X`, r))
			} else if r == 0x7F {
				// DEL character: Use \uXXXX
				builder.WriteString(fmt.Sprintf(`\u%04X`, r))
			} else if r >= 0xFFFE && r <= 0xFFFF {
				// Noncharacters U+FFFE and U+FFFF: Use \uXXXX
				builder.WriteString(fmt.Sprintf(`\u%04X`, r))
			} else {
				builder.WriteRune(r)
			}
		}
	}

	return builder.String()
}

// IsCanonicalInteger reports whether a lexical form is the canonical
// xsd:integer representation (optional minus sign, no leading zeros).
func IsCanonicalInteger(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' {
		i = 1
	} else if s[0] == '+' {
		return false
	}
	if i >= len(s) {
		return false
	}
	if s[i] == '0' && len(s) > i+1 {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsCanonicalDecimal reports whether a lexical form is a canonical
// xsd:decimal representation (digits, one '.', digits on both sides).
func IsCanonicalDecimal(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' {
		i = 1
	} else if s[0] == '+' {
		return false
	}
	dot := strings.IndexByte(s[i:], '.')
	if dot < 0 {
		return false
	}
	intPart := s[i : i+dot]
	fracPart := s[i+dot+1:]
	if intPart == "" || fracPart == "" {
		return false
	}
	if intPart[0] == '0' && len(intPart) > 1 {
		return false
	}
	for _, part := range []string{intPart, fracPart} {
		for j := 0; j < len(part); j++ {
			if part[j] < '0' || part[j] > '9' {
				return false
			}
		}
	}
	return true
}

// IsCanonicalBoolean reports whether a lexical form is "true" or "false".
func IsCanonicalBoolean(s string) bool {
	return s == "true" || s == "false"
}
