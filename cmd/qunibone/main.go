// qunibone is the command-line interface to the bus engine: a software model of the QUniBone
// PDP-11/LSI-11 backplane bus coprocessor.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/qunibone/busengine/internal/cli"
	"github.com/qunibone/busengine/internal/cli/cmd"
	"github.com/qunibone/busengine/internal/log"
)

// commands lists every internal/cli.Command the binary exposes, mounted here as cobra
// subcommands rather than dispatched through a bare flag.FlagSet.
var commands = []cli.Command{
	cmd.Demo(),
	cmd.Selftest(),
}

func main() {
	root := &cobra.Command{
		Use:   "qunibone",
		Short: "software model of the QUniBone backplane bus engine",
	}

	logger := log.NewFormattedLogger(os.Stderr)
	log.SetDefault(logger)

	for _, c := range commands {
		root.AddCommand(wrapCommand(c, logger))
	}

	root.AddCommand(wrapCommand(cmd.Help(commands), logger))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// wrapCommand adapts one internal/cli.Command into a *cobra.Command: its stdlib flag.FlagSet is
// folded into the cobra command's pflag.FlagSet via AddGoFlagSet, so flags keep working exactly as
// internal/cli.Commander's own dispatcher parses them, and RunE hands off to Command.Run unchanged.
func wrapCommand(c cli.Command, logger *log.Logger) *cobra.Command {
	fs := c.FlagSet()

	cc := &cobra.Command{
		Use:   fs.Name(),
		Short: c.Description(),
		RunE: func(_ *cobra.Command, args []string) error {
			code := c.Run(context.Background(), args, os.Stdout, logger)
			if code != 0 {
				os.Exit(code)
			}

			return nil
		},
	}

	pfs := pflag.NewFlagSet(fs.Name(), pflag.ContinueOnError)
	pfs.AddGoFlagSet(fs)
	cc.Flags().AddFlagSet(pfs)

	return cc
}
