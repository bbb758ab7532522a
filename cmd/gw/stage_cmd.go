package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/log"
	"github.com/raphi011/gw/internal/ui/prompt"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add [<path>...]",
		Short:   "Stage files",
		GroupID: GroupCore,
		Long: `Stage files for the next commit.

Without paths, stages everything below the current directory.`,
		Example: `  gw add                # Stage everything
  gw add main.go doc.go # Stage two files`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			r, err := openRepo(ctx)
			if err != nil {
				return err
			}

			paths := args
			if len(paths) == 0 {
				paths = []string{"."}
			}
			if err := r.client.Add(ctx, paths...); err != nil {
				return err
			}
			if msg := r.client.Response().LastMessage(); msg != "" {
				l.Println(msg)
			}
			return nil
		},
	}

	return cmd
}

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "reset",
		Short:   "Unstage all staged changes",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Unstage all staged changes. The working tree is left untouched.

Asks for confirmation when run in a terminal, unless --yes is given.`,
		Example: `  gw reset      # Ask, then unstage
  gw reset -y   # Unstage without asking`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			r, err := openRepo(ctx)
			if err != nil {
				return err
			}

			if !yes && interactive() {
				res, err := prompt.Confirm("Unstage all staged changes?")
				if err != nil {
					return err
				}
				if !res.Confirmed {
					l.Println("Aborted")
					return nil
				}
			}

			if err := r.client.Reset(ctx); err != nil {
				return err
			}
			if msg := r.client.Response().LastMessage(); msg != "" {
				l.Println(msg)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}
