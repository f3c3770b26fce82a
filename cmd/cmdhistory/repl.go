package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/cmdhistory/internal/app"
	"github.com/dshills/cmdhistory/internal/script"
	"github.com/dshills/cmdhistory/internal/ui"
)

const replHelp = `commands:
  append <text>       add a line
  delete <n>          delete line n
  set <n> <text>      replace line n
  undo [n]            undo n edits (default 1)
  redo [n]            redo n edits (default 1)
  reset               clear the history
  show                print the document and history
  begin / end         open / close a scope
  keep                leave a scope without retracting it
  quit                exit
`

func newReplCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl [file]",
		Short: "Edit a document interactively",
		Long: `Start an interactive session. If file is given its lines seed the
document; the file itself is never written.

` + replHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var lines []string
			if len(args) == 1 {
				var err error
				if lines, err = readLines(args[0]); err != nil {
					return err
				}
			}

			a, err := opts.newApp(cmd.ErrOrStderr(), app.NewDocument(lines...))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			session := script.NewSession(script.NewInterpreter(a, out))
			err = errors.Join(repl(cmd, session, out), session.Close())

			if opts.stats {
				fmt.Fprint(out, script.RenderStats(a.Dispatcher().Metrics()))
			}
			return err
		},
	}
}

func repl(cmd *cobra.Command, session *script.Session, out io.Writer) error {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	ctx := cmd.Context()

	for {
		fmt.Fprint(out, ui.RenderAccent(session.Prompt()))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "help" {
			fmt.Fprint(out, ui.RenderMuted(replHelp))
			continue
		}

		quit, err := session.Exec(line)
		if err != nil {
			fmt.Fprintf(out, "%s %v\n", ui.RenderFail(ui.IconFail), err)
			continue
		}
		if quit {
			return nil
		}
	}
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}
