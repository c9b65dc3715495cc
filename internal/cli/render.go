package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/etchlab/etchmark/pkg/errors"
	"github.com/etchlab/etchmark/pkg/pipeline"
	"github.com/etchlab/etchmark/pkg/profile"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file path or base path for multiple formats
	formats     []string // output formats: svg, png, pdf
	profilePath string   // device profile TOML (empty = built-in default)
	noCache     bool     // bypass the artifact cache
	pngScale    float64  // raster scale factor for PNG output
}

// renderCommand creates the render command for generating engraving documents.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{pngScale: pipeline.DefaultPNGScale}

	cmd := &cobra.Command{
		Use:   "render [request.toml]",
		Short: "Render an engraving document from a request file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&opts.profilePath, "profile", "p", "", "device profile TOML file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", opts.pngScale, "raster scale factor for PNG output")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

func (c *CLI) runRender(ctx context.Context, requestPath string, opts *renderOpts) error {
	req, err := LoadRequest(requestPath)
	if err != nil {
		return err
	}

	prof := profile.Default()
	if opts.profilePath != "" {
		prof, err = profile.Load(opts.profilePath)
		if err != nil {
			return err
		}
	}

	runner := c.newRunner(opts.noCache)

	spin := newSpinner(ctx, "rendering "+filepath.Base(requestPath))
	spin.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		Request:  req,
		Profile:  prof,
		Formats:  opts.formats,
		PNGScale: opts.pngScale,
		Logger:   c.Logger,
	})
	spin.Stop()
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(requestPath, filepath.Ext(requestPath))
	}

	for _, format := range opts.formats {
		path := outputPath(base, format, len(opts.formats) == 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printSuccess("wrote %s (%d bytes)", path, len(result.Artifacts[format]))
	}
	printDetail("document %s, %d slots", result.DocumentID, result.Stats.SlotCount)

	return nil
}

// outputPath derives the output filename for a format. A single explicit
// output path that already carries an extension is used as-is.
func outputPath(base, format string, single bool) string {
	if single && strings.HasSuffix(base, "."+format) {
		return base
	}
	return base + "." + format
}
