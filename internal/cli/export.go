package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillboard/skillboard/pkg/errors"
	"github.com/skillboard/skillboard/pkg/pipeline"
	"github.com/skillboard/skillboard/pkg/render/layout"
	"github.com/skillboard/skillboard/pkg/render/sink"
)

// exportCommand creates the artifact export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output       string
		formatsStr   string
		width        int
		seed         int64
		title        string
		dark         bool
		refresh      bool
		fromSnapshot string
	)

	cmd := &cobra.Command{
		Use:   "export [source]",
		Short: "Export the packed board as SVG, JSON, or text",
		Long: `Export packs a feed and writes the board as SVG, JSON, or text. With
--from-snapshot a JSON snapshot written earlier (pack --out or a previous
JSON export) is re-rendered instead, reproducing the exact same layout
without loading or packing the feed again.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromSnapshot != "" {
				return exportSnapshot(fromSnapshot, output, pipeline.Options{
					Seed:    seed,
					Formats: parseFormats(formatsStr),
					Title:   title,
					Dark:    dark,
				})
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			source := cfg.Feed
			if len(args) > 0 {
				source = args[0]
			}

			runner, err := c.newRunner(cfg)
			if err != nil {
				return err
			}

			spinner := newSpinner("Packing and rendering...")
			spinner.Start()
			result, err := runner.Execute(cmd.Context(), pipeline.Options{
				Source:  source,
				Width:   pickWidth(width, cfg.Width),
				Seed:    seed,
				Formats: parseFormats(formatsStr),
				Board:   cfg.BoardConfig(),
				Refresh: refresh,
				Title:   title,
				Dark:    dark,
			})
			spinner.Stop()
			if err != nil {
				return err
			}

			written, err := writeArtifacts(result.Artifacts, output, source)
			if err != nil {
				return err
			}

			freshness := "fresh"
			if result.CacheInfo.RenderHit {
				freshness = "cached"
			}
			printSuccess("Exported %d artifact(s) (%s)", len(written), freshness)
			for _, path := range written {
				printFile(path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, text (comma-separated)")
	cmd.Flags().IntVar(&width, "width", 0, "container width in cells")
	cmd.Flags().Int64Var(&seed, "seed", 0, "packing seed; negative for random")
	cmd.Flags().StringVar(&title, "title", "", "heading drawn above the SVG board")
	cmd.Flags().BoolVar(&dark, "dark", false, "dark color scheme for SVG")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass caches")
	cmd.Flags().StringVar(&fromSnapshot, "from-snapshot", "", "re-render a JSON board snapshot instead of packing a feed")

	return cmd
}

// exportSnapshot re-renders a saved board snapshot into the requested
// formats. The layout is taken verbatim from the snapshot, so the output
// matches the original pack regardless of the current feed or config.
func exportSnapshot(path, output string, opts pipeline.Options) error {
	l, err := loadSnapshot(path)
	if err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}

	artifacts, err := pipeline.RenderArtifacts(l, opts)
	if err != nil {
		return err
	}
	written, err := writeArtifacts(artifacts, output, path)
	if err != nil {
		return err
	}

	printSuccess("Exported %d artifact(s) from snapshot", len(written))
	for _, p := range written {
		printFile(p)
	}
	return nil
}

// loadSnapshot reads a JSON board snapshot back into a layout.
func loadSnapshot(path string) (layout.Layout, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return layout.Layout{}, errors.New(errors.ErrCodeFileNotFound, "snapshot not found: %s", path)
	}
	if err != nil {
		return layout.Layout{}, errors.Wrap(errors.ErrCodeInvalidSource, err, "read snapshot %s", path)
	}
	return sink.ParseJSON(data)
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			formats = append(formats, p)
		}
	}
	return formats
}

// writeArtifacts writes each artifact to disk and returns the paths.
//
// With one format, output names the file directly. With several, output is
// a base path and each file gets the format's extension. An empty output
// derives a base name from the source.
func writeArtifacts(artifacts map[string][]byte, output, source string) ([]string, error) {
	base := output
	if base == "" {
		name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
		if name == "" || name == "." {
			name = "board"
		}
		base = name
	}

	single := len(artifacts) == 1 && output != "" && filepath.Ext(output) != ""
	formats := make([]string, 0, len(artifacts))
	for format := range artifacts {
		formats = append(formats, format)
	}
	sort.Strings(formats)

	written := make([]string, 0, len(artifacts))
	for _, format := range formats {
		data := artifacts[format]
		path := base + "." + extFor(format)
		if single {
			path = output
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func extFor(format string) string {
	if format == pipeline.FormatText {
		return "txt"
	}
	return format
}
