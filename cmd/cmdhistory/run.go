package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/cmdhistory/internal/app"
	"github.com/dshills/cmdhistory/internal/script"
	"github.com/dshills/cmdhistory/internal/ui"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Run a YAML edit script",
		Long: `Run the steps of a YAML script against a fresh document.

Script format:
  name: demo
  lines: [alpha, beta]        # initial document
  steps:
    - append: gamma
    - set: {line: 0, text: ALPHA}
    - delete: 1
    - undo 2                  # single-line REPL syntax also works
    - redo: 1
    - scope:                  # edits here are retracted from the history
        steps:                # when the block ends, unless keep: true
          - append: scratch
    - reset: true
    - show: true

The final document is printed unless --quiet is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := script.LoadFile(args[0])
			if err != nil {
				return err
			}

			a, err := opts.newApp(cmd.ErrOrStderr(), app.NewDocument(s.Lines...))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			in := script.NewInterpreter(a, out)
			runErr := in.Run(cmd.Context(), s)

			if !quiet {
				fmt.Fprint(out, script.RenderDocument(a.Document()))
			}
			if opts.stats {
				fmt.Fprint(out, script.RenderStats(a.Dispatcher().Metrics()))
			}
			if runErr != nil {
				return runErr
			}

			if !quiet {
				fmt.Fprintf(out, "%s %s\n", ui.RenderPass(ui.IconPass),
					fmt.Sprintf("ran %d steps from %s", len(s.Steps), s.Name))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the final document")
	return cmd
}
