// Command rdfless pretty-prints RDF documents for the terminal: it
// parses Turtle, TriG, N-Triples, N-Quads, or PROV-N, applies optional
// filters, and writes colorized, prefix-compacted output through a
// pager when it would overflow the screen.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/rdfless/rdfless/internal/config"
	"github.com/rdfless/rdfless/internal/convert"
	"github.com/rdfless/rdfless/internal/filter"
	"github.com/rdfless/rdfless/internal/pager"
	"github.com/rdfless/rdfless/internal/render"
	"github.com/rdfless/rdfless/internal/scan"
	"github.com/rdfless/rdfless/internal/theme"
)

var version = "dev"

type cliOptions struct {
	format          string
	expand          bool
	compact         bool
	output          string
	usePager        bool
	noPager         bool
	darkTheme       bool
	lightTheme      bool
	noAutoTheme     bool
	quoted          string
	subjectFilter   string
	predicateFilter string
	objectFilter    string
	continueOnError bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:           "rdfless [files...]",
		Short:         "A colorful pretty-printer for RDF data",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", "", "input format (turtle, trig, ntriples, nquads, provn); detected from the file extension by default")
	f.BoolVarP(&opts.expand, "expand", "e", false, "write absolute references instead of prefixed names")
	f.BoolVar(&opts.compact, "compact", false, "write prefixed names (overrides --expand and the config default)")
	f.StringVarP(&opts.output, "output", "o", "", "write to a file instead of standard output")
	f.BoolVar(&opts.usePager, "pager", false, "always pipe output through the pager")
	f.BoolVar(&opts.noPager, "no-pager", false, "never pipe output through the pager")
	f.BoolVar(&opts.darkTheme, "dark-theme", false, "use the dark background theme")
	f.BoolVar(&opts.lightTheme, "light-theme", false, "use the light background theme")
	f.BoolVar(&opts.noAutoTheme, "no-auto-theme", false, "skip terminal background detection")
	f.StringVar(&opts.quoted, "quoted", "reify", "quoted-triple handling: reify or term")
	f.StringVar(&opts.subjectFilter, "subject", "", "only statements whose subject matches")
	f.StringVar(&opts.predicateFilter, "predicate", "", "only statements whose predicate matches")
	f.StringVar(&opts.objectFilter, "object", "", "only statements whose object matches")
	f.BoolVar(&opts.continueOnError, "continue-on-error", false, "skip malformed statements instead of stopping")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the rdfless version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rdfless %s\n", version)
		},
	})

	return cmd
}

func run(cmd *cobra.Command, args []string, opts *cliOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	policy, err := convert.ParsePolicy(opts.quoted)
	if err != nil {
		return err
	}

	stdinIsTerminal := pager.IsTerminal(os.Stdin.Fd())
	if len(args) == 0 && stdinIsTerminal {
		_ = cmd.Usage()
		return fmt.Errorf("no input: provide files or pipe a document to stdin")
	}

	expand := cfg.Output.Expand || opts.expand
	if opts.compact {
		expand = false
	}

	th := resolveTheme(cfg, opts)
	flt := filter.Filter{
		Subject:   opts.subjectFilter,
		Predicate: opts.predicateFilter,
		Object:    opts.objectFilter,
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	convOpts := convert.Options{
		Policy:          policy,
		ContinueOnError: opts.continueOnError,
		Logger:          logger,
	}

	var out strings.Builder
	if len(args) == 0 {
		if err := renderInput(&out, os.Stdin, scan.FormatTurtle, opts.format, convOpts, flt, expand, th); err != nil {
			return err
		}
	} else {
		for _, path := range args {
			if err := renderFile(&out, path, opts.format, convOpts, flt, expand, th); err != nil {
				return err
			}
		}
	}

	return writeOutput(out.String(), cfg, opts)
}

// resolveTheme decides whether and how output is colorized. Writing to
// a file disables colors unless a theme was asked for explicitly; on a
// terminal the background is detected unless overridden.
func resolveTheme(cfg config.Config, opts *cliOptions) theme.Theme {
	forced := opts.darkTheme || opts.lightTheme
	toFile := opts.output != ""
	toTerminal := pager.IsTerminal(os.Stdout.Fd())

	if (toFile || !toTerminal) && !forced {
		return theme.Disabled()
	}

	dark := true
	switch {
	case opts.darkTheme:
	case opts.lightTheme:
		dark = false
	case cfg.Themes.AutoDetect && !opts.noAutoTheme:
		dark = theme.IsDarkBackground()
	}

	// Escape codes must survive the pager pipe and forced file output
	color.ForceColor()
	return theme.New(cfg.ThemeColors(dark), true)
}

func renderFile(out *strings.Builder, path, formatOverride string, convOpts convert.Options, flt filter.Filter, expand bool, th theme.Theme) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	format, ok := scan.DetectFormat(path)
	if !ok {
		format = scan.FormatTurtle
	}
	return renderInput(out, f, format, formatOverride, convOpts, flt, expand, th)
}

func renderInput(out *strings.Builder, r io.Reader, detected scan.Format, formatOverride string, convOpts convert.Options, flt filter.Filter, expand bool, th theme.Theme) error {
	format := detected
	if formatOverride != "" {
		var err error
		format, err = scan.ParseFormat(formatOverride)
		if err != nil {
			return err
		}
	}

	sc, err := scan.New(r, format)
	if err != nil {
		return err
	}
	conv := convert.New(sc, convOpts)

	// Drain before rendering: prefixes may be declared anywhere in the
	// document and the header must list them all.
	quads, err := conv.Drain()
	if err != nil {
		return err
	}

	renderer := render.New(out, conv.Prefixes(), render.Options{Expand: expand, Theme: th})
	for _, quad := range quads {
		if !flt.Empty() && !flt.Matches(quad, conv.Prefixes()) {
			continue
		}
		if err := renderer.Render(quad); err != nil {
			return err
		}
	}
	return renderer.Flush()
}

func writeOutput(content string, cfg config.Config, opts *cliOptions) error {
	if opts.output != "" {
		return os.WriteFile(opts.output, []byte(content), 0o644)
	}

	if shouldPage(content, cfg, opts) {
		return pager.Run(content)
	}

	_, err := os.Stdout.WriteString(content)
	return err
}

func shouldPage(content string, cfg config.Config, opts *cliOptions) bool {
	if opts.noPager || !pager.IsTerminal(os.Stdout.Fd()) {
		return false
	}
	if opts.usePager || cfg.Output.Pager {
		return true
	}
	if !cfg.Output.AutoPager {
		return false
	}
	threshold := pager.Threshold(cfg.Output.AutoPagerThreshold, os.Stdout.Fd())
	if threshold <= 0 {
		return false
	}
	return strings.Count(content, "\n") > threshold
}
