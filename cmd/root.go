/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cristianoliveira/cliptray/internal/colors"
	"github.com/cristianoliveira/cliptray/internal/config"
	"github.com/cristianoliveira/cliptray/internal/logging"
	"github.com/cristianoliveira/cliptray/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const rootDescription = "A clipboard history tray for the terminal."

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	debug      bool
	quiet      bool
}

var flags globalFlags

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cliptray",
	Short: rootDescription,
	Long: `A clipboard history tray for the terminal.

Running cliptray without a command opens the tray.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTray(cmd, openHistory, newClipboard)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	defer func() { _ = logging.ShutdownGlobal() }()
	return rootCmd.Execute()
}

func init() {
	// Set version for use in help output
	rootCmd.Version = version.String()

	// Hide the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		PrintHelp(cmd.Root())
	})

	registerGlobalFlags(rootCmd.PersistentFlags(), &flags)

	rootCmd.AddCommand(
		NewTrayCmd(openHistory, newClipboard),
		NewListCmd(openHistory),
		NewCopyCmd(openHistory, newClipboard),
		NewClearCmd(openHistory),
		NewVersionCmd(buildInfo{}),
	)
}

func registerGlobalFlags(fs *pflag.FlagSet, f *globalFlags) {
	fs.StringVarP(&f.configPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/cliptray/config.toml)")
	fs.BoolVarP(&f.debug, "debug", "d", false, "Enable debug output")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "Only print errors")
}

// setup loads configuration and starts logging before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	if flags.configPath != "" {
		if err := os.Setenv(config.EnvPrefix+"CONFIG_PATH", flags.configPath); err != nil {
			return fmt.Errorf("set config path: %w", err)
		}
	}
	config.Load()
	applyFlagOverrides(cmd.Flags())

	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))
	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("logging disabled: %v", err))
	}
	logging.Debug("command started", "command", cmd.Name())
	return nil
}

// applyFlagOverrides lets explicit flags win over file and environment.
func applyFlagOverrides(fs *pflag.FlagSet) {
	if fs.Changed("debug") {
		config.Set("debug", fmt.Sprint(flags.debug))
	}
	if fs.Changed("quiet") {
		config.Set("quiet", fmt.Sprint(flags.quiet))
	}
}

// PrintHelp writes the command overview to cmd's output.
func PrintHelp(cmd *cobra.Command) {
	commandOrder := []string{
		"tray",
		"list",
		"copy",
		"clear",
		"help",
		"version",
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Use, found.Short))
	}

	helpText := fmt.Sprintf(`cliptray v%s

%s

USAGE:
    cliptray [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -c, --config    Config file path
    -d, --debug     Enable debug output
    -q, --quiet     Only print errors
    -h, --help      Show help message
`, cmd.Version, rootDescription, strings.Join(cmdLines, "\n"))
	fmt.Fprint(cmd.OutOrStdout(), helpText)
}
