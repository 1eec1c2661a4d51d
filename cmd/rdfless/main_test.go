package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdfless/rdfless/internal/convert"
	"github.com/rdfless/rdfless/internal/filter"
	"github.com/rdfless/rdfless/internal/scan"
	"github.com/rdfless/rdfless/internal/theme"
)

func TestRenderInputCompact(t *testing.T) {
	input := `@prefix ex: <https://example.org/> .
ex:john a ex:Person .`

	var out strings.Builder
	err := renderInput(&out, strings.NewReader(input), scan.FormatTurtle, "",
		convert.Options{}, filter.Filter{}, false, theme.Disabled())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "@prefix ex: <https://example.org/> .")
	assert.Contains(t, out.String(), "ex:john a ex:Person .")
}

func TestRenderInputFormatOverride(t *testing.T) {
	input := `<https://e.org/s> <https://e.org/p> "v" .`

	var out strings.Builder
	err := renderInput(&out, strings.NewReader(input), scan.FormatTurtle, "ntriples",
		convert.Options{}, filter.Filter{}, false, theme.Disabled())
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"v"`)

	err = renderInput(&strings.Builder{}, strings.NewReader(input), scan.FormatTurtle, "nope",
		convert.Options{}, filter.Filter{}, false, theme.Disabled())
	assert.Error(t, err)
}

func TestRenderInputObjectFilter(t *testing.T) {
	input := `@prefix ex: <https://example.org/> .
ex:john ex:name "John Doe" .
ex:john ex:age 42 .`

	var out strings.Builder
	err := renderInput(&out, strings.NewReader(input), scan.FormatTurtle, "",
		convert.Options{}, filter.Filter{Object: "John Doe"}, false, theme.Disabled())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "John Doe")
	assert.NotContains(t, out.String(), "ex:age")
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"format", "expand", "compact", "output", "pager", "no-pager",
		"dark-theme", "light-theme", "no-auto-theme", "quoted", "subject", "predicate", "object",
		"continue-on-error"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
