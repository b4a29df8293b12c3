package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillboard/skillboard/pkg/prefs"
)

// prefsCommand creates the preference management command.
func (c *CLI) prefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage board preferences",
	}

	cmd.AddCommand(c.prefsAnimationsCommand())
	cmd.AddCommand(c.prefsPathCommand())

	return cmd
}

// prefsAnimationsCommand creates the "prefs animations" subcommand. A
// running board picks the change up through its preference watcher.
func (c *CLI) prefsAnimationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "animations [on|off|status]",
		Short:     "Enable, disable, or show the swap animation preference",
		ValidArgs: []string{"on", "off", "status"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPrefs()
			if err != nil {
				return err
			}
			defer store.Close()

			switch args[0] {
			case "status":
				if store.Animations() {
					printInfo("Animations are on")
				} else {
					printInfo("Animations are off")
				}
				return nil
			case "on":
				if err := store.SetAnimations(true); err != nil {
					return err
				}
				printSuccess("Animations on")
				return nil
			default:
				if err := store.SetAnimations(false); err != nil {
					return err
				}
				printSuccess("Animations off")
				return nil
			}
		},
	}
}

// prefsPathCommand creates the "prefs path" subcommand.
func (c *CLI) prefsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the preference file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := prefsLocation()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}

// prefsLocation resolves the preference file path. SKILLBOARD_PREFS
// overrides the standard location.
func prefsLocation() (string, error) {
	if path := os.Getenv("SKILLBOARD_PREFS"); path != "" {
		return path, nil
	}
	return prefs.DefaultPath()
}

// openPrefs opens the preference store at its resolved location.
func openPrefs() (*prefs.Store, error) {
	path, err := prefsLocation()
	if err != nil {
		return nil, err
	}
	return prefs.Open(path)
}
