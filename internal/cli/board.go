package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/skillboard/skillboard/pkg/board"
	"github.com/skillboard/skillboard/pkg/errors"
	"github.com/skillboard/skillboard/pkg/feed"
	"github.com/skillboard/skillboard/pkg/measure"
	"github.com/skillboard/skillboard/pkg/prefs"
	"github.com/skillboard/skillboard/pkg/timer"
)

// boardCommand creates the live board command.
func (c *CLI) boardCommand() *cobra.Command {
	var (
		source  string
		watch   bool
		noAnim  bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Run the live skill board in the terminal",
		Long: `Board fills the terminal with packed skill labels and keeps the view
alive by swapping runs of labels in and out. Backgrounding the terminal
pauses new swaps; in-flight animations finish on their own.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if source == "" {
				source = cfg.Feed
			}
			if source == "" {
				return errors.New(errors.ErrCodeInvalidSource, "no feed source: pass --feed or set feed in the config file")
			}

			runner, err := c.newRunner(cfg)
			if err != nil {
				return err
			}
			labels, err := runner.Fetcher.Load(cmd.Context(), source, refresh)
			if err != nil {
				return err
			}

			store, err := openPrefs()
			if err != nil {
				return err
			}
			defer store.Close()
			if noAnim {
				// Session-only override: the probe always reports
				// animations disabled, the stored preference is untouched.
				return c.runBoard(cmd, cfg.BoardConfig(), labels, source, watch, store, animationsOff)
			}
			return c.runBoard(cmd, cfg.BoardConfig(), labels, source, watch, store, store.Animations)
		},
	}

	cmd.Flags().StringVarP(&source, "feed", "f", "", "feed source: file path or URL")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the board when a feed file changes")
	cmd.Flags().BoolVar(&noAnim, "no-anim", false, "freeze the board: no swaps this session")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the feed cache")

	return cmd
}

// animationsOff is the probe used by --no-anim: the board never swaps.
func animationsOff() bool { return false }

// runBoard wires the engine to the terminal and blocks until quit.
func (c *CLI) runBoard(cmd *cobra.Command, cfg board.Config, labels []string, source string, watch bool, store *prefs.Store, anims func() bool) error {
	renderer := newTUIRenderer(cfg.Lines)
	engine := board.New(labels,
		measure.New(measure.Style{PadLeft: 1, PadRight: 1}),
		renderer,
		timer.NewSystem(),
		cfg,
		board.WithAnimations(anims),
	)
	defer engine.Stop()

	model := newBoardModel(engine, renderer, store, cfg)
	program := tea.NewProgram(model,
		tea.WithContext(cmd.Context()),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	// External preference edits reach the running board through the
	// engine's animations probe; watching just forces a prompt repaint.
	if err := store.Watch(nil); err != nil {
		c.Logger.Debug("prefs watch unavailable", "err", err)
	}

	if watch {
		if feed.IsURL(source) {
			printWarning("--watch only applies to feed files, ignoring for %s", source)
		} else {
			watcher, err := feed.Watch(source, func(labels []string, err error) {
				program.Send(feedMsg{labels: labels, err: err})
			})
			if err != nil {
				return err
			}
			defer watcher.Close()
		}
	}

	_, err := program.Run()
	return err
}
