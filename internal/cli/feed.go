package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillboard/skillboard/pkg/board"
	"github.com/skillboard/skillboard/pkg/measure"
)

// feedCommand creates the feed inspection command.
func (c *CLI) feedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Inspect and validate skill feeds",
	}

	cmd.AddCommand(c.feedCheckCommand())
	cmd.AddCommand(c.feedShowCommand())

	return cmd
}

// feedCheckCommand creates the "feed check" subcommand.
func (c *CLI) feedCheckCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "check <source>",
		Short: "Validate a feed and report its label count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cfg)
			if err != nil {
				return err
			}
			labels, err := runner.Fetcher.Load(cmd.Context(), args[0], refresh)
			if err != nil {
				printError("Feed is invalid: %v", err)
				return err
			}
			printSuccess("Feed is valid")
			printKeyValue("source", args[0])
			printKeyValue("labels", fmt.Sprintf("%d", len(labels)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the feed cache")
	return cmd
}

// feedShowCommand creates the "feed show" subcommand.
func (c *CLI) feedShowCommand() *cobra.Command {
	var (
		refresh bool
		widths  bool
	)

	cmd := &cobra.Command{
		Use:   "show <source>",
		Short: "Print a feed's labels, optionally with measured widths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cfg)
			if err != nil {
				return err
			}
			labels, err := runner.Fetcher.Load(cmd.Context(), args[0], refresh)
			if err != nil {
				return err
			}

			if !widths {
				for _, label := range labels {
					fmt.Println(label)
				}
				return nil
			}

			m := measure.New(measure.Style{PadLeft: 1, PadRight: 1})
			for _, l := range board.MeasureLabels(labels, m) {
				fmt.Printf("%3d  %s\n", l.Width, l.Text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the feed cache")
	cmd.Flags().BoolVar(&widths, "widths", false, "include measured cell widths")
	return cmd
}
