// Package app wires the CLI surface around the snapshot pipeline.
package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pranshuparmar/portwho/internal/output"
	"github.com/pranshuparmar/portwho/internal/pipeline"
	"github.com/pranshuparmar/portwho/internal/tui"
)

var (
	flagPort        int
	flagJSON        bool
	flagUDP         bool
	flagInteractive bool
	flagNoColor     bool

	versionString = "dev"
)

var rootCmd = &cobra.Command{
	Use:           "portwho",
	Short:         "List ports in use and the processes that own them",
	Long:          "portwho takes one point-in-time snapshot of the kernel socket table,\nattributes each socket to its owning processes and users, and prints the\nresult as a table, a per-port detail view, or JSON.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().IntVarP(&flagPort, "port", "p", 0, "show only sockets bound to this local port")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "emit records as JSON")
	rootCmd.Flags().BoolVarP(&flagUDP, "udp", "u", false, "include UDP sockets")
	rootCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "browse the snapshot in an interactive terminal UI")
	rootCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
}

func run(cmd *cobra.Command, args []string) error {
	if flagInteractive {
		return tui.Start(versionString, flagUDP)
	}

	records, err := pipeline.Take(pipeline.Config{Port: flagPort, UDP: flagUDP})
	if err != nil {
		if errors.Is(err, pipeline.ErrPortNotFound) {
			return fmt.Errorf("port %d is not in use", flagPort)
		}
		return err
	}

	if flagJSON {
		out, err := output.ToJSON(records)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	if flagPort > 0 {
		output.RenderDetail(cmd.OutOrStdout(), records)
		return nil
	}

	color := !flagNoColor && isatty.IsTerminal(os.Stdout.Fd())
	return output.RenderTable(cmd.OutOrStdout(), records, color)
}

func SetVersionBuildCommitString(version, commit, buildDate string) {
	if version == "" {
		version = "dev"
	}
	versionString = version
	full := version
	if commit != "" {
		full += " (" + commit
		if buildDate != "" {
			full += ", " + buildDate
		}
		full += ")"
	}
	rootCmd.Version = full
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "portwho:", err)
		os.Exit(1)
	}
}
