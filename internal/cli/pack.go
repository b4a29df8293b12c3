package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillboard/skillboard/pkg/pipeline"
)

// packCommand creates the one-shot pack command.
func (c *CLI) packCommand() *cobra.Command {
	var (
		width   int
		seed    int64
		refresh bool
		out     string
	)

	cmd := &cobra.Command{
		Use:   "pack [source]",
		Short: "Pack a feed once and print the board",
		Long: `Pack loads a skill feed, fills the board lines, and prints the result as
plain text. With the same seed the output is reproducible. With --out the
packed board is also written as a JSON snapshot, which export can re-render
later without another pack.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
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

			formats := []string{pipeline.FormatText}
			if out != "" {
				formats = append(formats, pipeline.FormatJSON)
			}

			p := newProgress(logger)
			result, err := runner.Execute(cmd.Context(), pipeline.Options{
				Source:  source,
				Width:   pickWidth(width, cfg.Width),
				Seed:    seed,
				Formats: formats,
				Board:   cfg.BoardConfig(),
				Refresh: refresh,
			})
			if err != nil {
				return err
			}
			p.done(fmt.Sprintf("Packed %d of %d labels", result.Layout.BoxCount(), len(result.Pool)))

			os.Stdout.Write(result.Artifacts[pipeline.FormatText])

			for i := range result.Layout.Lines {
				printDetail("line %d: %d cells (%.0f%% of budget)",
					i+1, result.Layout.Lines[i].Width, result.Layout.Fill(i)*100)
			}

			if out != "" {
				if err := os.WriteFile(out, result.Artifacts[pipeline.FormatJSON], 0644); err != nil {
					return fmt.Errorf("write snapshot %s: %w", out, err)
				}
				printFile(out)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "container width in cells (default from config, then 80)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "packing seed; negative for random")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass caches")
	cmd.Flags().StringVar(&out, "out", "", "also write a JSON board snapshot to this file")

	return cmd
}

// pickWidth resolves the container width: flag beats config beats default.
func pickWidth(flag, cfg int) int {
	if flag > 0 {
		return flag
	}
	return cfg
}
