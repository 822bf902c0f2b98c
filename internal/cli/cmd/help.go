package cmd

// help.go is the built-in help command.

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/qunibone/busengine/internal/cli"
	"github.com/qunibone/busengine/internal/log"
)

type help struct {
	cmd []cli.Command
}

var _ cli.Command = (*help)(nil)

func (help) Description() string {
	return "display help for commands"
}

func (h help) FlagSet() *cli.FlagSet {
	return flag.NewFlagSet("help", flag.ExitOnError)
}

func (h help) Run(_ context.Context, args []string, out io.Writer, _ *log.Logger) int {
	if len(args) == 1 {
		for _, c := range h.cmd {
			if args[0] == c.FlagSet().Name() {
				h.printCommandHelp(out, c)
			}
		}
	} else if err := h.Usage(out); err != nil {
		return 1
	}

	return 0
}

func (h *help) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `
qunibone is a software model of the QUniBone PDP-11/LSI-11 backplane bus engine.

Usage:

        qunibone <command> [option]... [arg]...

Commands:`)
	if err != nil {
		return err
	}

	for _, c := range h.cmd {
		fs := c.FlagSet()
		fmt.Fprintf(out, "  %-20s %s\n", fs.Name(), c.Description())
	}

	fmt.Fprintf(out, "  %-20s %s\n", h.FlagSet().Name(), h.Description())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Use `qunibone help <command>` to get help for a command.")

	return err
}

func (h *help) printCommandHelp(out io.Writer, c cli.Command) {
	_ = c.FlagSet().Parse(nil)

	fmt.Fprint(out, "Usage:\n\n        qunibone ")

	if err := c.Usage(out); err != nil {
		return
	}

	fmt.Fprintln(out, "\nOptions:")
	c.FlagSet().PrintDefaults()
}

// Help constructs the help command over the full command list.
func Help(cmd []cli.Command) *help {
	return &help{cmd: cmd}
}
