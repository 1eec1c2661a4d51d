package rdf

import (
	"fmt"
	"strings"
)

// PrefixBinding is one prefix declaration in document order.
type PrefixBinding struct {
	Prefix    string
	Namespace string
}

// PrefixMap tracks prefix and base declarations of one document.
// Redeclaring a prefix overwrites its namespace but keeps the position
// it first appeared at, so output order follows the document.
type PrefixMap struct {
	bindings []PrefixBinding
	index    map[string]int
	base     string
}

func NewPrefixMap() *PrefixMap {
	return &PrefixMap{index: make(map[string]int)}
}

// Declare binds a prefix to a namespace IRI. Last write wins.
func (pm *PrefixMap) Declare(prefix, namespace string) {
	if i, ok := pm.index[prefix]; ok {
		pm.bindings[i].Namespace = namespace
		return
	}
	pm.index[prefix] = len(pm.bindings)
	pm.bindings = append(pm.bindings, PrefixBinding{Prefix: prefix, Namespace: namespace})
}

// SetBase sets the base IRI. A relative argument resolves against the
// base in effect before this call.
func (pm *PrefixMap) SetBase(iri string) {
	if !strings.Contains(iri, ":") && pm.base != "" {
		iri = ResolveRelativeIRI(pm.base, iri)
	}
	pm.base = iri
}

// Base returns the current base IRI, or "" when none was declared.
func (pm *PrefixMap) Base() string {
	return pm.base
}

// Bindings returns the declarations in first-appearance order.
func (pm *PrefixMap) Bindings() []PrefixBinding {
	return pm.bindings
}

// Namespace returns the namespace bound to a prefix.
func (pm *PrefixMap) Namespace(prefix string) (string, bool) {
	i, ok := pm.index[prefix]
	if !ok {
		return "", false
	}
	return pm.bindings[i].Namespace, true
}

// Expand turns a prefixed name into a full IRI.
func (pm *PrefixMap) Expand(prefix, local string) (string, error) {
	ns, ok := pm.Namespace(prefix)
	if !ok {
		return "", fmt.Errorf("undefined prefix: %s", prefix)
	}
	return ns + local, nil
}

// Resolve resolves a possibly-relative IRI against the current base.
// A relative IRI with no base in effect is an error; callers decide
// whether to keep the verbatim form.
func (pm *PrefixMap) Resolve(iri string) (string, error) {
	if strings.Contains(iri, ":") {
		return iri, nil
	}
	if pm.base == "" {
		return "", fmt.Errorf("relative IRI %q with no base in effect", iri)
	}
	return ResolveRelativeIRI(pm.base, iri), nil
}

// Compact rewrites an IRI as prefix:local using the longest declared
// namespace that is a prefix of the IRI. Ties go to the earliest
// declaration. Returns false when no binding applies or the remainder
// is not a valid local name.
func (pm *PrefixMap) Compact(iri string) (string, bool) {
	best := -1
	bestLen := -1
	for i, b := range pm.bindings {
		if b.Namespace == "" || !strings.HasPrefix(iri, b.Namespace) {
			continue
		}
		if len(b.Namespace) > bestLen {
			best = i
			bestLen = len(b.Namespace)
		}
	}
	if best < 0 {
		return "", false
	}
	local := iri[bestLen:]
	if !isValidLocalName(local) {
		return "", false
	}
	return pm.bindings[best].Prefix + ":" + local, true
}

// isValidLocalName checks the remainder against the PN_LOCAL production,
// without the escape and percent forms. IRIs needing escapes stay in
// angle brackets.
func isValidLocalName(local string) bool {
	if local == "" {
		return true
	}
	runes := []rune(local)
	first := runes[0]
	if !IsPNCharsU(first) && first != ':' && !(first >= '0' && first <= '9') {
		return false
	}
	for _, r := range runes[1:] {
		if !IsPNChars(r) && r != '.' && r != ':' {
			return false
		}
	}
	return runes[len(runes)-1] != '.'
}

// ResolveRelativeIRI resolves a relative IRI against a base IRI.
// This is a simplified implementation of RFC 3986 resolution.
func ResolveRelativeIRI(base, relative string) string {
	// Empty relative IRI → use base
	if relative == "" {
		return base
	}

	// Fragment only (#foo) → base without fragment + new fragment
	if strings.HasPrefix(relative, "#") {
		if idx := strings.Index(base, "#"); idx >= 0 {
			base = base[:idx]
		}
		return base + relative
	}

	// Query (?foo) → base without query/fragment + relative
	if strings.HasPrefix(relative, "?") {
		if idx := strings.Index(base, "?"); idx >= 0 {
			base = base[:idx]
		} else if idx := strings.Index(base, "#"); idx >= 0 {
			base = base[:idx]
		}
		return base + relative
	}

	// Network-path reference (//authority/path) → scheme + relative
	// RFC 3986 section 5.2.2
	if strings.HasPrefix(relative, "//") {
		schemeEnd := strings.Index(base, ":")
		if schemeEnd < 0 {
			return relative // shouldn't happen
		}
		return base[:schemeEnd+1] + relative
	}

	// Absolute path (/foo) → scheme + authority + relative path (normalized)
	if strings.HasPrefix(relative, "/") {
		schemeEnd := strings.Index(base, ":")
		if schemeEnd < 0 {
			return relative // shouldn't happen
		}

		if schemeEnd+2 < len(base) && base[schemeEnd:schemeEnd+3] == "://" {
			authorityStart := schemeEnd + 3
			pathStart := strings.Index(base[authorityStart:], "/")
			if pathStart >= 0 {
				merged := base[:authorityStart+pathStart] + relative
				return normalizePath(merged)
			}
			merged := base + relative
			return normalizePath(merged)
		}

		merged := base[:schemeEnd+1] + relative
		return normalizePath(merged)
	}

	// Relative path (foo or ./foo or ../foo) → resolve against base path
	baseWithoutQF := base
	if idx := strings.Index(baseWithoutQF, "?"); idx >= 0 {
		baseWithoutQF = baseWithoutQF[:idx]
	} else if idx := strings.Index(baseWithoutQF, "#"); idx >= 0 {
		baseWithoutQF = baseWithoutQF[:idx]
	}

	// Find the last / in base to get the directory
	lastSlash := strings.LastIndex(baseWithoutQF, "/")
	var merged string
	if lastSlash >= 0 {
		merged = baseWithoutQF[:lastSlash+1] + relative
	} else {
		merged = baseWithoutQF + "/" + relative
	}

	// Normalize the path (remove . and .. segments per RFC 3986)
	return normalizePath(merged)
}

// normalizePath normalizes a URI path by removing . and .. segments (RFC 3986 section 5.2.4)
func normalizePath(uri string) string {
	// Find where the path starts (after scheme://authority)
	schemeEnd := strings.Index(uri, ":")
	if schemeEnd < 0 {
		return uri // No scheme, shouldn't happen
	}

	var pathStart int
	if schemeEnd+2 < len(uri) && uri[schemeEnd:schemeEnd+3] == "://" {
		authorityStart := schemeEnd + 3
		slashIdx := strings.Index(uri[authorityStart:], "/")
		if slashIdx < 0 {
			return uri // No path
		}
		pathStart = authorityStart + slashIdx
	} else {
		pathStart = schemeEnd + 1
	}

	prefix := uri[:pathStart]
	pathAndRest := uri[pathStart:]

	// Separate path from query and fragment
	var path, queryAndFragment string
	if idx := strings.IndexAny(pathAndRest, "?#"); idx >= 0 {
		path = pathAndRest[:idx]
		queryAndFragment = pathAndRest[idx:]
	} else {
		path = pathAndRest
	}

	segments := strings.Split(path, "/")
	var normalized []string

	// True if path ends with "/", "/.", or "/.."
	needsTrailingSlash := strings.HasSuffix(path, "/") ||
		strings.HasSuffix(path, "/.") ||
		strings.HasSuffix(path, "/..")

	for _, segment := range segments {
		if segment == "." {
			continue
		} else if segment == ".." {
			// Never go above the root (keep the leading empty segment)
			if len(normalized) > 1 && normalized[len(normalized)-1] != ".." {
				normalized = normalized[:len(normalized)-1]
			} else if len(normalized) == 1 && normalized[0] != "" {
				normalized = normalized[:len(normalized)-1]
			}
		} else {
			normalized = append(normalized, segment)
		}
	}

	normalizedPath := strings.Join(normalized, "/")

	if needsTrailingSlash && !strings.HasSuffix(normalizedPath, "/") {
		normalizedPath += "/"
	}

	return prefix + normalizedPath + queryAndFragment
}
