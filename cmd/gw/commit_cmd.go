package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/git"
	"github.com/raphi011/gw/internal/hooks"
	"github.com/raphi011/gw/internal/output"
	"github.com/raphi011/gw/internal/ui/prompt"
)

func newCommitCmd() *cobra.Command {
	var (
		message string
		extra   []string
		addAll  bool
		noHook  bool
	)

	cmd := &cobra.Command{
		Use:     "commit [<path>...]",
		Short:   "Record staged changes",
		Aliases: []string{"ci"},
		GroupID: GroupCore,
		Long: `Record staged changes.

Without -m, asks for a message when run in a terminal. Paths limit the
commit to those files. Extra git commit arguments are passed with --arg.
Hooks with on = ["commit"] run afterwards unless --no-hook is given.`,
		Example: `  gw commit -m "Fix parser"           # Commit staged changes
  gw commit -a -m "WIP"                # Stage everything first
  gw commit -m "Docs" README.md        # Commit one file
  gw commit --arg=--amend --arg=--no-edit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			r, err := openRepo(ctx)
			if err != nil {
				return err
			}

			if message == "" && len(extra) == 0 && interactive() {
				res, err := prompt.TextInput("Commit message:", prompt.TextInputOptions{
					Placeholder: "Describe the change",
					Validate:    prompt.NotEmpty("commit message"),
				})
				if err != nil {
					return err
				}
				if res.Cancelled {
					return nil
				}
				message = res.Value
			}

			if addAll {
				if err := r.client.Add(ctx, "."); err != nil {
					return err
				}
			}

			summary, err := r.client.Commit(ctx, git.CommitOptions{
				Message: message,
				Args:    extra,
				Files:   args,
			})
			if err != nil {
				return err
			}
			out.Println(summary)
			runAutoHooks(ctx, r, hooks.TriggerCommit, noHook)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")
	cmd.Flags().StringArrayVar(&extra, "arg", nil, "Extra argument for git commit (repeatable)")
	cmd.Flags().BoolVarP(&addAll, "all", "a", false, "Stage all changes before committing")
	cmd.Flags().BoolVar(&noHook, "no-hook", false, "Skip commit hooks")

	return cmd
}
