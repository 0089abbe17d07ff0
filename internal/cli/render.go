package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/surfrank/surfrank/pkg/cache"
	"github.com/surfrank/surfrank/pkg/graphio"
	"github.com/surfrank/surfrank/pkg/rank"
	"github.com/surfrank/surfrank/pkg/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file path
	format    string // output format: "dot", "svg", "png"
	title     string // diagram title
	precision int    // score decimal places in node labels
	scores    string // result JSON from a prior rank run
	plain     bool   // skip ranking, draw uniform node sizes
	noCache   bool   // bypass the render artifact cache
}

// renderCommand creates the render command for generating visualizations.
// Nodes are scaled and labeled by their PageRank score unless --plain is
// given.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		format:    formatSVG,
		precision: 4,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a graph with score-scaled nodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return runRender(ctx, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input path with the format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().StringVar(&opts.title, "title", "", "diagram title")
	cmd.Flags().IntVar(&opts.precision, "precision", opts.precision, "score decimal places in node labels")
	cmd.Flags().StringVar(&opts.scores, "scores", "", "result JSON from a prior rank run (skips recomputation)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "skip ranking and draw uniform node sizes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render artifact cache")

	return cmd
}

// newCache picks the render artifact cache. Falls back to a no-op
// cache when disabled or when no cache directory is available.
func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return c
}

// cacheDir returns the cache directory using XDG standard (~/.cache/surfrank/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatDOT: true, formatSVG: true, formatPNG: true}

// validateFormat checks that the requested format is supported.
func validateFormat(f string) error {
	if !validFormats[f] {
		return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', or 'png')", f)
	}
	return nil
}

// outputPath derives the output file path. If output is empty, the
// input path gets the format's extension.
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}

// runRender loads the graph from input, ranks it unless --plain, and
// writes the visualization in the requested format.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	doc, err := graphio.ReadFile(input)
	if err != nil {
		return err
	}
	g, _ := graphio.ToGraph(doc)
	logger.Infof("Loaded graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	var scores map[string]float64
	switch {
	case opts.plain:
	case opts.scores != "":
		scores, err = readScores(opts.scores)
		if err != nil {
			return err
		}
	default:
		res, err := rank.Compute(ctx, g, rank.DefaultOptions())
		if err != nil {
			return err
		}
		scores = res.ByLabel()
	}

	dot := render.ToDOT(g, scores, render.Options{
		Title:     opts.title,
		Precision: opts.precision,
	})

	out := outputPath(opts.output, input, opts.format)
	var data []byte
	switch opts.format {
	case formatDOT:
		data = []byte(dot)
	case formatSVG, formatPNG:
		data, err = renderArtifact(ctx, dot, opts)
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	printSuccess("Rendered %s", out)
	printFile(out)
	return nil
}

// readScores loads the scores map from a rank --output file.
func readScores(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var res rankResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("parse scores %s: %w", path, err)
	}
	return res.Scores, nil
}

// renderArtifact renders dot to the requested format, consulting the
// artifact cache first. Artifacts are keyed by the DOT text and format,
// so any graph or score change produces a fresh render.
func renderArtifact(ctx context.Context, dot string, opts *renderOpts) ([]byte, error) {
	logger := loggerFromContext(ctx)
	artifacts := newCache(opts.noCache)
	defer artifacts.Close()

	key := cache.RenderKey(dot, opts.format)
	if data, ok, err := artifacts.Get(ctx, key); err == nil && ok {
		logger.Debugf("render cache hit for %s", opts.format)
		return data, nil
	}

	spinner := newSpinner(ctx, "rendering "+opts.format)
	spinner.Start()

	var data []byte
	var err error
	if opts.format == formatSVG {
		data, err = render.SVG(ctx, dot)
	} else {
		data, err = render.PNG(ctx, dot)
	}
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("render failed: %v", err))
		return nil, err
	}
	spinner.Stop()

	if err := artifacts.Set(ctx, key, data, 0); err != nil {
		logger.Debugf("render cache write failed: %v", err)
	}
	return data, nil
}
